package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fitness-league/internal/domain/athlete"
	"github.com/riskibarqy/fitness-league/internal/domain/points"
	"github.com/riskibarqy/fitness-league/internal/domain/pointtype"
	"github.com/riskibarqy/fitness-league/internal/domain/team"
	"github.com/riskibarqy/fitness-league/internal/domain/workout"
	idgen "github.com/riskibarqy/fitness-league/internal/platform/id"
	"github.com/riskibarqy/fitness-league/internal/platform/logging"
)

const defaultReconcileWorkers = 4

// AssignPointsInput selects the cross product of assignees and point types.
// Points overrides the canonical point type value when set.
type AssignPointsInput struct {
	AssigneeIDs  []string
	PointTypeIDs []string
	WorkoutID    string
	Notes        string
	Points       *int
}

// CompletionGrantConfig identifies the point type granted when a score is first logged.
// Points overrides the point type value when positive.
type CompletionGrantConfig struct {
	PointTypeID string
	Points      int
}

type ReconcileResult struct {
	Scanned  int
	Restored int
	Failed   int
}

// GrantObserver receives counts of written grants.
type GrantObserver interface {
	ObserveGrants(mode points.GrantMode, count int)
}

type noopGrantObserver struct{}

func (noopGrantObserver) ObserveGrants(points.GrantMode, int) {}

type PointService struct {
	athleteRepo      athlete.Repository
	teamRepo         team.Repository
	pointTypeRepo    pointtype.Repository
	workoutRepo      workout.Repository
	pointsRepo       points.Repository
	idGen            idgen.Generator
	completion       CompletionGrantConfig
	reconcileWorkers int
	observer         GrantObserver
	logger           *logging.Logger
	now              func() time.Time
}

func NewPointService(
	athleteRepo athlete.Repository,
	teamRepo team.Repository,
	pointTypeRepo pointtype.Repository,
	workoutRepo workout.Repository,
	pointsRepo points.Repository,
	idGen idgen.Generator,
	completion CompletionGrantConfig,
	reconcileWorkers int,
	observer GrantObserver,
) *PointService {
	if reconcileWorkers <= 0 {
		reconcileWorkers = defaultReconcileWorkers
	}
	if observer == nil {
		observer = noopGrantObserver{}
	}

	return &PointService{
		athleteRepo:      athleteRepo,
		teamRepo:         teamRepo,
		pointTypeRepo:    pointTypeRepo,
		workoutRepo:      workoutRepo,
		pointsRepo:       pointsRepo,
		idGen:            idGen,
		completion:       completion,
		reconcileWorkers: reconcileWorkers,
		observer:         observer,
		logger:           logging.Default(),
		now:              time.Now,
	}
}

// AssignBulk lets an admin grant any point types to any athletes. Every call
// appends new ledger rows.
func (s *PointService) AssignBulk(ctx context.Context, identity athlete.Identity, input AssignPointsInput) ([]points.Grant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointService.AssignBulk")
	defer span.End()

	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	plan, err := s.planAssignment(ctx, identity, input)
	if err != nil {
		return nil, err
	}

	return s.writeGrants(ctx, identity, plan, input)
}

// AssignWeekly grants weekly-category points. Captains may only target their
// own active teammates.
func (s *PointService) AssignWeekly(ctx context.Context, identity athlete.Identity, input AssignPointsInput) ([]points.Grant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointService.AssignWeekly")
	defer span.End()

	if err := requireAthlete(identity); err != nil {
		return nil, err
	}
	if !identity.Athlete.CanAssignWeekly() {
		return nil, fmt.Errorf("%w: captain or admin role required", ErrForbidden)
	}

	plan, err := s.planAssignment(ctx, identity, input)
	if err != nil {
		return nil, err
	}
	for _, pt := range plan.pointTypes {
		if pt.Category != pointtype.CategoryWeekly {
			return nil, fmt.Errorf("%w: point type %s is not a weekly category", ErrInvalidInput, pt.ID)
		}
	}

	if !identity.Athlete.IsAdmin() {
		memberships, err := s.teamRepo.ListActiveMemberships(ctx)
		if err != nil {
			return nil, fmt.Errorf("list active memberships: %w", err)
		}
		captainTeam, ok := team.TeamOf(memberships, identity.AthleteID())
		if !ok {
			return nil, fmt.Errorf("%w: captain has no active team", ErrForbidden)
		}
		for _, assigneeID := range plan.assigneeIDs {
			teamID, ok := team.TeamOf(memberships, assigneeID)
			if !ok || teamID != captainTeam {
				return nil, fmt.Errorf("%w: athlete=%s is not on the captain's team", ErrForbidden, assigneeID)
			}
		}
	}

	return s.writeGrants(ctx, identity, plan, input)
}

type assignmentPlan struct {
	assigneeIDs []string
	pointTypes  []pointtype.PointType
	workoutID   *string
}

func (s *PointService) planAssignment(ctx context.Context, identity athlete.Identity, input AssignPointsInput) (assignmentPlan, error) {
	assigneeIDs := uniqueIDs(input.AssigneeIDs)
	pointTypeIDs := uniqueIDs(input.PointTypeIDs)
	if len(assigneeIDs) == 0 {
		return assignmentPlan{}, fmt.Errorf("%w: at least one athlete is required", ErrInvalidInput)
	}
	if len(pointTypeIDs) == 0 {
		return assignmentPlan{}, fmt.Errorf("%w: at least one point type is required", ErrInvalidInput)
	}
	if input.Points != nil && *input.Points < 0 {
		return assignmentPlan{}, fmt.Errorf("%w: points must be >= 0", ErrInvalidInput)
	}

	if _, exists, err := s.athleteRepo.GetByID(ctx, identity.AthleteID()); err != nil {
		return assignmentPlan{}, fmt.Errorf("get assigner: %w", err)
	} else if !exists {
		return assignmentPlan{}, fmt.Errorf("%w: assigner athlete=%s", ErrNotFound, identity.AthleteID())
	}

	roster, err := s.athleteRepo.List(ctx)
	if err != nil {
		return assignmentPlan{}, fmt.Errorf("list athletes: %w", err)
	}
	known := make(map[string]struct{}, len(roster))
	for _, a := range roster {
		known[a.ID] = struct{}{}
	}
	for _, assigneeID := range assigneeIDs {
		if _, ok := known[assigneeID]; !ok {
			return assignmentPlan{}, fmt.Errorf("%w: athlete=%s", ErrNotFound, assigneeID)
		}
	}

	types, err := s.pointTypeRepo.GetByIDs(ctx, pointTypeIDs)
	if err != nil {
		return assignmentPlan{}, fmt.Errorf("get point types: %w", err)
	}
	byID := pointtype.Index(types)
	ordered := make([]pointtype.PointType, 0, len(pointTypeIDs))
	for _, ptID := range pointTypeIDs {
		pt, ok := byID[ptID]
		if !ok {
			return assignmentPlan{}, fmt.Errorf("%w: point type=%s", ErrNotFound, ptID)
		}
		ordered = append(ordered, pt)
	}

	workoutID := optionalID(input.WorkoutID)
	if workoutID != nil {
		if _, exists, err := s.workoutRepo.GetByID(ctx, *workoutID); err != nil {
			return assignmentPlan{}, fmt.Errorf("get workout: %w", err)
		} else if !exists {
			return assignmentPlan{}, fmt.Errorf("%w: workout=%s", ErrNotFound, *workoutID)
		}
	}

	return assignmentPlan{assigneeIDs: assigneeIDs, pointTypes: ordered, workoutID: workoutID}, nil
}

func (s *PointService) writeGrants(ctx context.Context, identity athlete.Identity, plan assignmentPlan, input AssignPointsInput) ([]points.Grant, error) {
	now := s.now().UTC()
	notes := strings.TrimSpace(input.Notes)

	grants := make([]points.Grant, 0, len(plan.assigneeIDs)*len(plan.pointTypes))
	for _, assigneeID := range plan.assigneeIDs {
		for _, pt := range plan.pointTypes {
			value := pt.Points
			if input.Points != nil {
				value = *input.Points
			}
			grant, err := s.newGrant(points.Assignment{
				AssignerID:  identity.AthleteID(),
				AssigneeID:  assigneeID,
				PointTypeID: pt.ID,
				WorkoutID:   plan.workoutID,
				Points:      value,
				Notes:       notes,
				Mode:        points.GrantModeAppend,
				AssignedAt:  now,
			})
			if err != nil {
				return nil, err
			}
			grants = append(grants, grant)
		}
	}

	if err := s.pointsRepo.CreateGrants(ctx, grants); err != nil {
		return nil, fmt.Errorf("create grants: %w", err)
	}
	s.observer.ObserveGrants(points.GrantModeAppend, len(grants))

	return grants, nil
}

func (s *PointService) newGrant(assignment points.Assignment) (points.Grant, error) {
	assignmentID, err := s.idGen.NewID()
	if err != nil {
		return points.Grant{}, fmt.Errorf("generate assignment id: %w", err)
	}
	athletePointID, err := s.idGen.NewID()
	if err != nil {
		return points.Grant{}, fmt.Errorf("generate athlete point id: %w", err)
	}
	assignment.ID = assignmentID

	grant := points.NewGrant(assignment, athletePointID)
	if err := grant.Validate(); err != nil {
		return points.Grant{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return grant, nil
}

// GrantCompletion awards the completion point type at most once per athlete
// and workout. Repeating it overwrites the stored value and notes.
func (s *PointService) GrantCompletion(ctx context.Context, assignerID, athleteID, workoutID, notes string) (points.AthletePoint, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointService.GrantCompletion")
	defer span.End()

	assignerID = strings.TrimSpace(assignerID)
	athleteID = strings.TrimSpace(athleteID)
	workoutID = strings.TrimSpace(workoutID)
	if assignerID == "" || athleteID == "" || workoutID == "" {
		return points.AthletePoint{}, fmt.Errorf("%w: assigner, athlete and workout are required", ErrInvalidInput)
	}

	pt, err := s.completionPointType(ctx)
	if err != nil {
		return points.AthletePoint{}, err
	}
	value := pt.Points
	if s.completion.Points > 0 {
		value = s.completion.Points
	}

	grant, err := s.newGrant(points.Assignment{
		AssignerID:  assignerID,
		AssigneeID:  athleteID,
		PointTypeID: pt.ID,
		WorkoutID:   &workoutID,
		Points:      value,
		Notes:       strings.TrimSpace(notes),
		Mode:        points.GrantModeOnce,
		AssignedAt:  s.now().UTC(),
	})
	if err != nil {
		return points.AthletePoint{}, err
	}

	stored, err := s.pointsRepo.GrantOnce(ctx, grant)
	if err != nil {
		return points.AthletePoint{}, fmt.Errorf("grant completion: %w", err)
	}
	s.observer.ObserveGrants(points.GrantModeOnce, 1)

	return stored, nil
}

func (s *PointService) completionPointType(ctx context.Context) (pointtype.PointType, error) {
	if id := strings.TrimSpace(s.completion.PointTypeID); id != "" {
		items, err := s.pointTypeRepo.GetByIDs(ctx, []string{id})
		if err != nil {
			return pointtype.PointType{}, fmt.Errorf("get completion point type: %w", err)
		}
		for _, item := range items {
			if item.ID == id {
				return item, nil
			}
		}
		return pointtype.PointType{}, fmt.Errorf("%w: completion point type=%s", ErrNotFound, id)
	}

	category := pointtype.CategoryCompletion
	items, err := s.pointTypeRepo.List(ctx, &category)
	if err != nil {
		return pointtype.PointType{}, fmt.Errorf("list completion point types: %w", err)
	}
	if len(items) == 0 {
		return pointtype.PointType{}, fmt.Errorf("%w: no completion point type configured", ErrNotFound)
	}
	return items[0], nil
}

// ListAssignments returns ledger rows. Non-admins only see grants they received.
func (s *PointService) ListAssignments(ctx context.Context, identity athlete.Identity, filter points.Filter) ([]points.Assignment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointService.ListAssignments")
	defer span.End()

	if err := requireAthlete(identity); err != nil {
		return nil, err
	}
	if !identity.Athlete.IsAdmin() {
		filter.AthleteID = identity.AthleteID()
	}

	items, err := s.pointsRepo.ListAssignments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return items, nil
}

func (s *PointService) ListAthletePoints(ctx context.Context, filter points.Filter) ([]points.AthletePoint, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointService.ListAthletePoints")
	defer span.End()

	items, err := s.pointsRepo.ListAthletePoints(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list athlete points: %w", err)
	}
	return items, nil
}

// DeleteAssignment removes a ledger row together with its athlete point.
func (s *PointService) DeleteAssignment(ctx context.Context, identity athlete.Identity, assignmentID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointService.DeleteAssignment")
	defer span.End()

	if err := requireAdmin(identity); err != nil {
		return err
	}
	assignmentID = strings.TrimSpace(assignmentID)
	if assignmentID == "" {
		return fmt.Errorf("%w: assignment id is required", ErrInvalidInput)
	}

	_, exists, err := s.pointsRepo.GetAssignment(ctx, assignmentID)
	if err != nil {
		return fmt.Errorf("get assignment: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: assignment=%s", ErrNotFound, assignmentID)
	}

	if err := s.pointsRepo.DeleteAssignment(ctx, assignmentID); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}

// Reconcile replays the athlete point row of every assignment that lacks one.
func (s *PointService) Reconcile(ctx context.Context, identity athlete.Identity) (ReconcileResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointService.Reconcile")
	defer span.End()

	if err := requireAdmin(identity); err != nil {
		return ReconcileResult{}, err
	}

	orphans, err := s.pointsRepo.ListOrphanedAssignments(ctx)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("list orphaned assignments: %w", err)
	}
	result := ReconcileResult{Scanned: len(orphans)}
	if len(orphans) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(s.reconcileWorkers)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var restored atomic.Int32
	var failed atomic.Int32
	tasks := make([]func(), 0, len(orphans))
	for _, orphan := range orphans {
		tasks = append(tasks, func() {
			pointID, err := s.idGen.NewID()
			if err == nil {
				err = s.pointsRepo.RestoreAthletePoint(ctx, points.ProjectAssignment(orphan, pointID))
			}
			if err != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "restore athlete point failed", "assignment_id", orphan.ID, "error", err)
				return
			}
			restored.Add(1)
		})
	}
	if err := submitAndWait(pool, tasks); err != nil {
		return ReconcileResult{}, fmt.Errorf("submit task to worker pool: %w", err)
	}

	result.Restored = int(restored.Load())
	result.Failed = int(failed.Load())
	if result.Restored > 0 {
		s.observer.ObserveGrants(points.GrantModeAppend, result.Restored)
	}
	return result, nil
}

// submitAndWait runs tasks on the pool and returns only after every submitted
// task has finished, including when a later submit fails.
func submitAndWait(pool *ants.Pool, tasks []func()) error {
	var workers sync.WaitGroup
	defer workers.Wait()

	for _, task := range tasks {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			task()
		}); err != nil {
			workers.Done()
			return err
		}
	}
	return nil
}

func (s *PointService) ListPointTypes(ctx context.Context, category string) ([]pointtype.PointType, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointService.ListPointTypes")
	defer span.End()

	var filter *pointtype.Category
	if strings.TrimSpace(category) != "" {
		parsed, err := pointtype.ParseCategory(category)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter = &parsed
	}

	items, err := s.pointTypeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list point types: %w", err)
	}
	return items, nil
}

type CreatePointTypeInput struct {
	Name     string
	Category string
	Points   int
}

func (s *PointService) CreatePointType(ctx context.Context, identity athlete.Identity, input CreatePointTypeInput) (pointtype.PointType, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointService.CreatePointType")
	defer span.End()

	if err := requireAdmin(identity); err != nil {
		return pointtype.PointType{}, err
	}
	category, err := pointtype.ParseCategory(input.Category)
	if err != nil {
		return pointtype.PointType{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	newID, err := s.idGen.NewID()
	if err != nil {
		return pointtype.PointType{}, fmt.Errorf("generate point type id: %w", err)
	}

	item := pointtype.PointType{
		ID:        newID,
		Name:      strings.TrimSpace(input.Name),
		Category:  category,
		Points:    input.Points,
		CreatedAt: s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return pointtype.PointType{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.pointTypeRepo.Create(ctx, item); err != nil {
		return pointtype.PointType{}, fmt.Errorf("create point type: %w", err)
	}
	return item, nil
}
