package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fitness-league/internal/domain/athlete"
	"github.com/riskibarqy/fitness-league/internal/domain/team"
	idgen "github.com/riskibarqy/fitness-league/internal/platform/id"
)

// TeamSummary is a team with its active roster size and captains.
type TeamSummary struct {
	Team     team.Team
	Members  int
	Captains []athlete.Athlete
}

type TeamService struct {
	teamRepo    team.Repository
	athleteRepo athlete.Repository
	idGen       idgen.Generator
	now         func() time.Time
}

func NewTeamService(teamRepo team.Repository, athleteRepo athlete.Repository, idGen idgen.Generator) *TeamService {
	return &TeamService{
		teamRepo:    teamRepo,
		athleteRepo: athleteRepo,
		idGen:       idGen,
		now:         time.Now,
	}
}

func (s *TeamService) List(ctx context.Context) ([]TeamSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	memberships, err := s.teamRepo.ListActiveMemberships(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active memberships: %w", err)
	}
	roster, err := s.athleteRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list athletes: %w", err)
	}

	byID := make(map[string]athlete.Athlete, len(roster))
	for _, a := range roster {
		byID[a.ID] = a
	}
	members := team.ActiveMembers(memberships)

	out := make([]TeamSummary, 0, len(teams))
	for _, t := range teams {
		summary := TeamSummary{Team: t, Members: len(members[t.ID])}
		for _, athleteID := range members[t.ID] {
			if a, ok := byID[athleteID]; ok && a.Role == athlete.RoleCaptain {
				summary.Captains = append(summary.Captains, a)
			}
		}
		out = append(out, summary)
	}
	return out, nil
}

func (s *TeamService) Create(ctx context.Context, identity athlete.Identity, name string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	if err := requireAdmin(identity); err != nil {
		return team.Team{}, err
	}
	newID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	item := team.Team{ID: newID, Name: strings.TrimSpace(name), CreatedAt: s.now().UTC()}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.teamRepo.Create(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}
	return item, nil
}
