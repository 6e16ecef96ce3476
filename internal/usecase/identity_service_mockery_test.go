package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/fitness-league/internal/domain/athlete"
	"github.com/riskibarqy/fitness-league/internal/domain/user"
	athletemock "github.com/riskibarqy/fitness-league/internal/mocks/domain/athlete"
	"github.com/stretchr/testify/mock"
)

func TestIdentityService_ResolveUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), "trace_id", "trace-123")
	athleteRepo := athletemock.NewRepository(t)
	service := NewIdentityService(athleteRepo)

	athleteRepo.
		On("GetByUserID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "user-1").
		Return(athlete.Athlete{ID: "a1", UserID: "user-1", Role: athlete.RoleCaptain}, true, nil).
		Once()

	identity, err := service.Resolve(ctx, user.Principal{UserID: "user-1"})
	if err != nil {
		t.Fatalf("resolve identity: %v", err)
	}
	if identity.AthleteID() != "a1" || identity.Role() != athlete.RoleCaptain {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestIdentityService_ResolveWithoutProfileUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	athleteRepo := athletemock.NewRepository(t)
	service := NewIdentityService(athleteRepo)

	athleteRepo.
		On("GetByUserID", mock.Anything, "user-new").
		Return(athlete.Athlete{}, false, nil).
		Once()

	_, err := service.Resolve(ctx, user.Principal{UserID: "user-new"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	_, err = service.Resolve(ctx, user.Principal{})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAthleteService_SetRoleUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	athleteRepo := athletemock.NewRepository(t)
	service := NewAthleteService(athleteRepo, nil, &sequenceIDGenerator{})
	admin := athlete.Identity{UserID: "user-admin", Athlete: athlete.Athlete{ID: "admin", Role: athlete.RoleAdmin}}

	athleteRepo.
		On("GetByID", mock.Anything, "a1").
		Return(athlete.Athlete{ID: "a1", Role: athlete.RoleAthlete}, true, nil).
		Once()
	athleteRepo.
		On("UpdateRole", mock.Anything, "a1", athlete.RoleCaptain).
		Return(nil).
		Once()
	athleteRepo.
		On("GetByID", mock.Anything, "a1").
		Return(athlete.Athlete{ID: "a1", Role: athlete.RoleCaptain}, true, nil).
		Once()

	got, err := service.SetRole(ctx, admin, "a1", "Captain")
	if err != nil {
		t.Fatalf("set role: %v", err)
	}
	if got.Role != athlete.RoleCaptain {
		t.Fatalf("unexpected role: %s", got.Role)
	}

	if _, err := service.SetRole(ctx, admin, "a1", "coach"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
