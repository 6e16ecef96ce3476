package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fitness-league/internal/config"
	"github.com/riskibarqy/fitness-league/internal/domain/athlete"
	"github.com/riskibarqy/fitness-league/internal/domain/points"
	"github.com/riskibarqy/fitness-league/internal/domain/pointtype"
	"github.com/riskibarqy/fitness-league/internal/domain/score"
	"github.com/riskibarqy/fitness-league/internal/domain/team"
	"github.com/riskibarqy/fitness-league/internal/domain/workout"
	"github.com/riskibarqy/fitness-league/internal/infrastructure/auth"
	cacherepo "github.com/riskibarqy/fitness-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fitness-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fitness-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fitness-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/fitness-league/internal/observability"
	basecache "github.com/riskibarqy/fitness-league/internal/platform/cache"
	idgen "github.com/riskibarqy/fitness-league/internal/platform/id"
	"github.com/riskibarqy/fitness-league/internal/platform/logging"
	"github.com/riskibarqy/fitness-league/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const dbPingTimeout = 5 * time.Second

type repositories struct {
	athletes   athlete.Repository
	teams      team.Repository
	pointTypes pointtype.Repository
	workouts   workout.Repository
	points     points.Repository
	scores     score.Repository
}

// NewHTTPServer wires stores, services and the router. The returned cleanup
// releases the database pool, if one was opened.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	cleanup := func() error { return nil }
	var repos repositories
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Warn("DB_URL is empty, using in-memory demo store")
		repos = memoryRepositories(time.Now().UTC())
	} else {
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		cleanup = db.Close
		if cfg.SeedDemoData {
			if err := postgres.BootstrapSeed(ctx, db, time.Now().UTC()); err != nil {
				_ = db.Close()
				return nil, nil, fmt.Errorf("bootstrap seed: %w", err)
			}
		}
		repos = postgresRepositories(db)
		logger.Info("postgres store ready", "db_name", dbNameFromURL(cfg.DBURL))
	}
	if cfg.CacheEnabled {
		repos = withReferenceCache(repos, basecache.NewStore(cfg.CacheTTL))
	}

	verifier, err := auth.NewJWTVerifier(cfg.AuthJWTSecret, cfg.AuthJWTIssuer, cfg.AuthJWTAudience)
	if err != nil {
		_ = cleanup()
		return nil, nil, fmt.Errorf("build token verifier: %w", err)
	}

	var (
		exporter      httpapi.MetricsExporter
		grantObserver usecase.GrantObserver
		scoreRecorder usecase.ScoreRecorder
	)
	if cfg.MetricsEnabled {
		metrics := observability.NewMetrics()
		exporter = metrics
		grantObserver = metrics
		scoreRecorder = metrics
	}

	ids := idgen.NewUUIDGenerator()
	pointSvc := usecase.NewPointService(
		repos.athletes,
		repos.teams,
		repos.pointTypes,
		repos.workouts,
		repos.points,
		ids,
		usecase.CompletionGrantConfig{PointTypeID: cfg.CompletionPointTypeID, Points: cfg.CompletionPoints},
		cfg.ReconcileWorkers,
		grantObserver,
	)
	scoreSvc := usecase.NewScoreService(
		repos.athletes,
		repos.workouts,
		repos.scores,
		pointSvc,
		workout.NewWindow(cfg.ScoringWindow),
		cfg.ScoringLocation,
		scoreRecorder,
	)
	leaderboardSvc := usecase.NewLeaderboardService(
		repos.athletes,
		repos.teams,
		repos.pointTypes,
		repos.workouts,
		repos.points,
		repos.scores,
		cfg.StandingsTieBreak,
		cfg.SpiritPointTypeName,
	)

	handler := httpapi.NewHandler(
		usecase.NewIdentityService(repos.athletes),
		usecase.NewAthleteService(repos.athletes, repos.teams, ids),
		usecase.NewTeamService(repos.teams, repos.athletes, ids),
		usecase.NewWorkoutService(repos.workouts, ids),
		pointSvc,
		scoreSvc,
		leaderboardSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, verifier, exporter, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, cleanup, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	opts := []otelsql.Option{
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	}
	db, err := otelsqlx.Open("postgres", dsn, opts...)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	otelsql.ReportDBStatsMetrics(db.DB, opts...)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping database: %v", usecase.ErrDependencyUnavailable, err)
	}

	return db, nil
}

func memoryRepositories(now time.Time) repositories {
	scores := memory.NewScoreRepository()
	return repositories{
		athletes:   memory.NewAthleteRepository(memory.SeedAthletes()),
		teams:      memory.NewTeamRepository(memory.SeedTeams(), memory.SeedMemberships(now)),
		pointTypes: memory.NewPointTypeRepository(memory.SeedPointTypes()),
		workouts:   memory.NewWorkoutRepository(memory.SeedWorkouts(now)),
		points:     memory.NewPointsRepository(scores),
		scores:     scores,
	}
}

func postgresRepositories(db *sqlx.DB) repositories {
	return repositories{
		athletes:   postgres.NewAthleteRepository(db),
		teams:      postgres.NewTeamRepository(db),
		pointTypes: postgres.NewPointTypeRepository(db),
		workouts:   postgres.NewWorkoutRepository(db),
		points:     postgres.NewPointsRepository(db),
		scores:     postgres.NewScoreRepository(db),
	}
}

// withReferenceCache caches teams, point types and workouts. Points, scores
// and athletes are always read through.
func withReferenceCache(repos repositories, store *basecache.Store) repositories {
	repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
	repos.pointTypes = cacherepo.NewPointTypeRepository(repos.pointTypes, store)
	repos.workouts = cacherepo.NewWorkoutRepository(repos.workouts, store)
	return repos
}
