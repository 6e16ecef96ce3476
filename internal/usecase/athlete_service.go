package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fitness-league/internal/domain/athlete"
	"github.com/riskibarqy/fitness-league/internal/domain/team"
	"github.com/riskibarqy/fitness-league/internal/domain/user"
	idgen "github.com/riskibarqy/fitness-league/internal/platform/id"
)

// AthleteProfile is an athlete with its active team, if any.
type AthleteProfile struct {
	Athlete athlete.Athlete
	Team    *team.Team
}

type ProfileInput struct {
	Name       string
	Email      string
	CrossfitID string
	Division   string
}

func (in ProfileInput) toProfile() (athlete.Profile, error) {
	division, err := athlete.ParseDivision(in.Division)
	if err != nil {
		return athlete.Profile{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	profile := athlete.Profile{
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.TrimSpace(in.Email),
		CrossfitID: strings.TrimSpace(in.CrossfitID),
		Division:   division,
	}
	if err := profile.Validate(); err != nil {
		return athlete.Profile{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return profile, nil
}

type ClaimInput struct {
	AthleteID string
	TeamID    string
	Profile   ProfileInput
}

type AthleteService struct {
	athleteRepo athlete.Repository
	teamRepo    team.Repository
	idGen       idgen.Generator
	now         func() time.Time
}

func NewAthleteService(athleteRepo athlete.Repository, teamRepo team.Repository, idGen idgen.Generator) *AthleteService {
	return &AthleteService{
		athleteRepo: athleteRepo,
		teamRepo:    teamRepo,
		idGen:       idGen,
		now:         time.Now,
	}
}

func (s *AthleteService) List(ctx context.Context) ([]athlete.Athlete, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AthleteService.List")
	defer span.End()

	items, err := s.athleteRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list athletes: %w", err)
	}
	return items, nil
}

func (s *AthleteService) Me(ctx context.Context, identity athlete.Identity) (AthleteProfile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AthleteService.Me")
	defer span.End()

	if err := requireAthlete(identity); err != nil {
		return AthleteProfile{}, err
	}

	out := AthleteProfile{Athlete: identity.Athlete}
	memberships, err := s.teamRepo.ListActiveMemberships(ctx)
	if err != nil {
		return AthleteProfile{}, fmt.Errorf("list active memberships: %w", err)
	}
	teamID, ok := team.TeamOf(memberships, identity.AthleteID())
	if !ok {
		return out, nil
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return AthleteProfile{}, fmt.Errorf("get team: %w", err)
	}
	if exists {
		out.Team = &item
	}
	return out, nil
}

// UpdateProfile edits the caller's own name, contact and division.
func (s *AthleteService) UpdateProfile(ctx context.Context, identity athlete.Identity, input ProfileInput) (athlete.Athlete, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AthleteService.UpdateProfile")
	defer span.End()

	if err := requireAthlete(identity); err != nil {
		return athlete.Athlete{}, err
	}
	profile, err := input.toProfile()
	if err != nil {
		return athlete.Athlete{}, err
	}

	if err := s.athleteRepo.UpdateProfile(ctx, identity.AthleteID(), profile); err != nil {
		return athlete.Athlete{}, fmt.Errorf("update profile: %w", err)
	}
	return s.mustGet(ctx, identity.AthleteID())
}

func (s *AthleteService) SetRole(ctx context.Context, identity athlete.Identity, athleteID, role string) (athlete.Athlete, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AthleteService.SetRole")
	defer span.End()

	if err := requireAdmin(identity); err != nil {
		return athlete.Athlete{}, err
	}
	parsed, err := athlete.ParseRole(role)
	if err != nil {
		return athlete.Athlete{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := s.mustGet(ctx, athleteID); err != nil {
		return athlete.Athlete{}, err
	}

	if err := s.athleteRepo.UpdateRole(ctx, athleteID, parsed); err != nil {
		return athlete.Athlete{}, fmt.Errorf("update role: %w", err)
	}
	return s.mustGet(ctx, athleteID)
}

// AssignTeam moves an athlete to a team, leaving exactly one active membership.
func (s *AthleteService) AssignTeam(ctx context.Context, identity athlete.Identity, athleteID, teamID string) (team.Membership, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AthleteService.AssignTeam")
	defer span.End()

	if err := requireAdmin(identity); err != nil {
		return team.Membership{}, err
	}
	if _, err := s.mustGet(ctx, athleteID); err != nil {
		return team.Membership{}, err
	}
	return s.assign(ctx, athleteID, teamID)
}

func (s *AthleteService) assign(ctx context.Context, athleteID, teamID string) (team.Membership, error) {
	item, err := s.getTeam(ctx, teamID)
	if err != nil {
		return team.Membership{}, err
	}
	return s.join(ctx, athleteID, item.ID)
}

func (s *AthleteService) getTeam(ctx context.Context, teamID string) (team.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return item, nil
}

func (s *AthleteService) join(ctx context.Context, athleteID, teamID string) (team.Membership, error) {
	membershipID, err := s.idGen.NewID()
	if err != nil {
		return team.Membership{}, fmt.Errorf("generate membership id: %w", err)
	}
	membership := team.Membership{
		ID:         membershipID,
		AthleteID:  athleteID,
		TeamID:     teamID,
		IsActive:   true,
		AssignedAt: s.now().UTC(),
	}
	if err := s.teamRepo.AssignAthlete(ctx, membership); err != nil {
		return team.Membership{}, fmt.Errorf("assign athlete to team: %w", err)
	}
	return membership, nil
}

// SeedUnassigned pre-creates athletes that nobody has claimed yet.
func (s *AthleteService) SeedUnassigned(ctx context.Context, identity athlete.Identity, inputs []ProfileInput) ([]athlete.Athlete, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AthleteService.SeedUnassigned")
	defer span.End()

	if err := requireAdmin(identity); err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: at least one athlete is required", ErrInvalidInput)
	}

	now := s.now().UTC()
	items := make([]athlete.Athlete, 0, len(inputs))
	for _, input := range inputs {
		profile, err := input.toProfile()
		if err != nil {
			return nil, err
		}
		newID, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate athlete id: %w", err)
		}
		items = append(items, athlete.Athlete{
			ID:         newID,
			Name:       profile.Name,
			Email:      profile.Email,
			CrossfitID: profile.CrossfitID,
			Division:   profile.Division,
			Role:       athlete.RoleAthlete,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	if err := s.athleteRepo.Create(ctx, items); err != nil {
		return nil, fmt.Errorf("create athletes: %w", err)
	}
	return items, nil
}

func (s *AthleteService) ListUnassigned(ctx context.Context) ([]athlete.Athlete, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AthleteService.ListUnassigned")
	defer span.End()

	items, err := s.athleteRepo.ListUnassigned(ctx)
	if err != nil {
		return nil, fmt.Errorf("list unassigned athletes: %w", err)
	}
	return items, nil
}

// Claim links the principal to a pre-seeded athlete during onboarding and
// optionally joins a team.
func (s *AthleteService) Claim(ctx context.Context, principal user.Principal, input ClaimInput) (AthleteProfile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AthleteService.Claim")
	defer span.End()

	userID := strings.TrimSpace(principal.UserID)
	if userID == "" {
		return AthleteProfile{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	profile, err := input.Profile.toProfile()
	if err != nil {
		return AthleteProfile{}, err
	}

	if _, exists, err := s.athleteRepo.GetByUserID(ctx, userID); err != nil {
		return AthleteProfile{}, fmt.Errorf("get athlete by user id: %w", err)
	} else if exists {
		return AthleteProfile{}, fmt.Errorf("%w: user=%s already has an athlete profile", ErrInvalidInput, userID)
	}

	target, err := s.mustGet(ctx, input.AthleteID)
	if err != nil {
		return AthleteProfile{}, err
	}
	if !target.IsUnassigned() {
		return AthleteProfile{}, fmt.Errorf("%w: athlete=%s is already claimed", ErrInvalidInput, target.ID)
	}

	var joined *team.Team
	if strings.TrimSpace(input.TeamID) != "" {
		item, err := s.getTeam(ctx, input.TeamID)
		if err != nil {
			return AthleteProfile{}, err
		}
		joined = &item
	}

	if err := s.athleteRepo.Claim(ctx, target.ID, userID, profile); err != nil {
		return AthleteProfile{}, fmt.Errorf("claim athlete: %w", err)
	}

	claimed, err := s.mustGet(ctx, target.ID)
	if err != nil {
		return AthleteProfile{}, err
	}
	if joined != nil {
		if _, err := s.join(ctx, claimed.ID, joined.ID); err != nil {
			return AthleteProfile{}, err
		}
	}
	return AthleteProfile{Athlete: claimed, Team: joined}, nil
}

func (s *AthleteService) mustGet(ctx context.Context, athleteID string) (athlete.Athlete, error) {
	athleteID = strings.TrimSpace(athleteID)
	if athleteID == "" {
		return athlete.Athlete{}, fmt.Errorf("%w: athlete id is required", ErrInvalidInput)
	}
	item, exists, err := s.athleteRepo.GetByID(ctx, athleteID)
	if err != nil {
		return athlete.Athlete{}, fmt.Errorf("get athlete: %w", err)
	}
	if !exists {
		return athlete.Athlete{}, fmt.Errorf("%w: athlete=%s", ErrNotFound, athleteID)
	}
	return item, nil
}
