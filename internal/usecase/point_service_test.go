package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fitness-league/internal/domain/points"
	"github.com/stretchr/testify/require"
)

func TestPointService_AssignBulkCrossProduct(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stores := newTestStores()
	svc := stores.pointService()

	grants, err := svc.AssignBulk(ctx, identityOf(stores, "admin"), AssignPointsInput{
		AssigneeIDs:  []string{"a1", "a2", "a3"},
		PointTypeIDs: []string{"pt-pr", "pt-podium"},
		WorkoutID:    "w1",
		Notes:        "great week",
	})
	require.NoError(t, err)
	require.Len(t, grants, 6)

	assignments, err := stores.points.ListAssignments(ctx, points.Filter{})
	require.NoError(t, err)
	athletePoints, err := stores.points.ListAthletePoints(ctx, points.Filter{})
	require.NoError(t, err)
	if len(assignments) != 6 || len(athletePoints) != 6 {
		t.Fatalf("expected 6 assignments and 6 athlete points, got=%d/%d", len(assignments), len(athletePoints))
	}

	pairs := make(map[string]int)
	byAssignment := make(map[string]points.AthletePoint, len(athletePoints))
	for _, pt := range athletePoints {
		byAssignment[pt.AssignmentID] = pt
	}
	for _, a := range assignments {
		pairs[a.AssigneeID+"/"+a.PointTypeID]++
		if a.WorkoutID == nil || *a.WorkoutID != "w1" || a.Notes != "great week" {
			t.Fatalf("assignment must carry shared workout and notes: %+v", a)
		}
		if a.Mode != points.GrantModeAppend {
			t.Fatalf("bulk assignment must append, got mode=%s", a.Mode)
		}
		pt, ok := byAssignment[a.ID]
		if !ok {
			t.Fatalf("assignment %s has no linked athlete point", a.ID)
		}
		if pt.AthleteID != a.AssigneeID || pt.PointTypeID != a.PointTypeID || pt.Points != a.Points {
			t.Fatalf("athlete point does not mirror assignment: %+v vs %+v", pt, a)
		}
	}
	for _, athleteID := range []string{"a1", "a2", "a3"} {
		for _, ptID := range []string{"pt-pr", "pt-podium"} {
			if pairs[athleteID+"/"+ptID] != 1 {
				t.Fatalf("missing pair %s/%s", athleteID, ptID)
			}
		}
	}
	if byAssignment[assignments[1].ID].Points != 3 {
		t.Fatalf("expected canonical podium value 3, got=%d", byAssignment[assignments[1].ID].Points)
	}
}

func TestPointService_AssignBulkAppendsOnRepeat(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stores := newTestStores()
	svc := stores.pointService()
	input := AssignPointsInput{AssigneeIDs: []string{"a1"}, PointTypeIDs: []string{"pt-pr"}}

	for i := 0; i < 2; i++ {
		if _, err := svc.AssignBulk(ctx, identityOf(stores, "admin"), input); err != nil {
			t.Fatalf("assign bulk: %v", err)
		}
	}

	rows, err := stores.points.ListAthletePoints(ctx, points.Filter{AthleteID: "a1"})
	require.NoError(t, err)
	if len(rows) != 2 {
		t.Fatalf("admin bulk assignment must append, got=%d rows", len(rows))
	}
}

func TestPointService_AssignBulkValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stores := newTestStores()
	svc := stores.pointService()
	admin := identityOf(stores, "admin")

	tests := []struct {
		name     string
		identity string
		input    AssignPointsInput
		want     error
	}{
		{name: "no athletes", identity: "admin", input: AssignPointsInput{PointTypeIDs: []string{"pt-pr"}}, want: ErrInvalidInput},
		{name: "no point types", identity: "admin", input: AssignPointsInput{AssigneeIDs: []string{"a1"}}, want: ErrInvalidInput},
		{name: "unknown point type", identity: "admin", input: AssignPointsInput{AssigneeIDs: []string{"a1"}, PointTypeIDs: []string{"missing"}}, want: ErrNotFound},
		{name: "unknown athlete", identity: "admin", input: AssignPointsInput{AssigneeIDs: []string{"ghost"}, PointTypeIDs: []string{"pt-pr"}}, want: ErrNotFound},
		{name: "unknown workout", identity: "admin", input: AssignPointsInput{AssigneeIDs: []string{"a1"}, PointTypeIDs: []string{"pt-pr"}, WorkoutID: "nope"}, want: ErrNotFound},
		{name: "not admin", identity: "a1", input: AssignPointsInput{AssigneeIDs: []string{"a1"}, PointTypeIDs: []string{"pt-pr"}}, want: ErrForbidden},
	}

	for _, tc := range tests {
		identity := admin
		if tc.identity != "admin" {
			identity = identityOf(stores, tc.identity)
		}
		_, err := svc.AssignBulk(ctx, identity, tc.input)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	rows, err := stores.points.ListAssignments(ctx, points.Filter{})
	require.NoError(t, err)
	if len(rows) != 0 {
		t.Fatalf("rejected input must not write, got=%d rows", len(rows))
	}
}

func TestPointService_GrantCompletionIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stores := newTestStores()
	svc := stores.pointService()

	first, err := svc.GrantCompletion(ctx, "a1", "a1", "w1", "first")
	require.NoError(t, err)

	svc.completion.Points = 2
	second, err := svc.GrantCompletion(ctx, "a1", "a1", "w1", "second")
	require.NoError(t, err)

	if first.ID != second.ID {
		t.Fatalf("repeat grant must keep the same row, got=%s and %s", first.ID, second.ID)
	}

	rows, err := stores.points.ListAthletePoints(ctx, points.Filter{AthleteID: "a1", WorkoutID: "w1", PointTypeID: "pt-done"})
	require.NoError(t, err)
	if len(rows) != 1 {
		t.Fatalf("expected exactly one athlete point, got=%d", len(rows))
	}
	if rows[0].Notes != "second" || rows[0].Points != 2 {
		t.Fatalf("second submission must overwrite, got=%+v", rows[0])
	}

	assignments, err := stores.points.ListAssignments(ctx, points.Filter{AthleteID: "a1"})
	require.NoError(t, err)
	if len(assignments) != 1 {
		t.Fatalf("expected exactly one assignment, got=%d", len(assignments))
	}
}

func TestPointService_AssignWeekly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stores := newTestStores()
	svc := stores.pointService()
	captain := identityOf(stores, "captain")

	grants, err := svc.AssignWeekly(ctx, captain, AssignPointsInput{AssigneeIDs: []string{"a1"}, PointTypeIDs: []string{"pt-pr"}})
	require.NoError(t, err)
	require.Len(t, grants, 1)

	_, err = svc.AssignWeekly(ctx, captain, AssignPointsInput{AssigneeIDs: []string{"a2"}, PointTypeIDs: []string{"pt-pr"}})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("captain must not grant outside own team, got %v", err)
	}

	_, err = svc.AssignWeekly(ctx, captain, AssignPointsInput{AssigneeIDs: []string{"a1"}, PointTypeIDs: []string{"pt-podium"}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("weekly assignment must reject other categories, got %v", err)
	}

	_, err = svc.AssignWeekly(ctx, identityOf(stores, "a1"), AssignPointsInput{AssigneeIDs: []string{"a1"}, PointTypeIDs: []string{"pt-pr"}})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("plain athlete must not assign weekly points, got %v", err)
	}

	if _, err := svc.AssignWeekly(ctx, identityOf(stores, "admin"), AssignPointsInput{AssigneeIDs: []string{"a2"}, PointTypeIDs: []string{"pt-pr"}}); err != nil {
		t.Fatalf("admin may assign weekly points to anyone: %v", err)
	}
}

func TestPointService_ReconcileRestoresOrphans(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stores := newTestStores()
	svc := stores.pointService()
	admin := identityOf(stores, "admin")

	grants, err := svc.AssignBulk(ctx, admin, AssignPointsInput{AssigneeIDs: []string{"a1", "a2"}, PointTypeIDs: []string{"pt-pr"}})
	require.NoError(t, err)
	stores.points.DropAthletePoint(grants[0].Assignment.ID)

	result, err := svc.Reconcile(ctx, admin)
	require.NoError(t, err)
	if result.Scanned != 1 || result.Restored != 1 || result.Failed != 0 {
		t.Fatalf("unexpected reconcile result: %+v", result)
	}

	orphans, err := stores.points.ListOrphanedAssignments(ctx)
	require.NoError(t, err)
	if len(orphans) != 0 {
		t.Fatalf("expected no orphans after reconcile, got=%d", len(orphans))
	}

	again, err := svc.Reconcile(ctx, admin)
	require.NoError(t, err)
	if again.Scanned != 0 {
		t.Fatalf("second reconcile must find nothing, got=%+v", again)
	}
}

func TestPointService_DeleteAssignment(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stores := newTestStores()
	svc := stores.pointService()
	admin := identityOf(stores, "admin")

	grants, err := svc.AssignBulk(ctx, admin, AssignPointsInput{AssigneeIDs: []string{"a1"}, PointTypeIDs: []string{"pt-pr"}})
	require.NoError(t, err)

	if err := svc.DeleteAssignment(ctx, identityOf(stores, "a1"), grants[0].Assignment.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	require.NoError(t, svc.DeleteAssignment(ctx, admin, grants[0].Assignment.ID))

	rows, err := stores.points.ListAthletePoints(ctx, points.Filter{AthleteID: "a1"})
	require.NoError(t, err)
	if len(rows) != 0 {
		t.Fatalf("deleting an assignment must remove its athlete point, got=%d", len(rows))
	}
	if err := svc.DeleteAssignment(ctx, admin, grants[0].Assignment.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on repeat delete, got %v", err)
	}
}

func TestPointService_ListAssignmentsScopedForAthletes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stores := newTestStores()
	svc := stores.pointService()

	_, err := svc.AssignBulk(ctx, identityOf(stores, "admin"), AssignPointsInput{AssigneeIDs: []string{"a1", "a2"}, PointTypeIDs: []string{"pt-pr"}})
	require.NoError(t, err)

	own, err := svc.ListAssignments(ctx, identityOf(stores, "a2"), points.Filter{})
	require.NoError(t, err)
	if len(own) != 1 || own[0].AssigneeID != "a2" {
		t.Fatalf("athlete must only see own grants, got=%+v", own)
	}

	all, err := svc.ListAssignments(ctx, identityOf(stores, "admin"), points.Filter{})
	require.NoError(t, err)
	if len(all) != 2 {
		t.Fatalf("admin must see every grant, got=%d", len(all))
	}
}

func TestPointService_CreatePointType(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stores := newTestStores()
	svc := stores.pointService()

	created, err := svc.CreatePointType(ctx, identityOf(stores, "admin"), CreatePointTypeInput{Name: "Judge", Category: "one_time", Points: 1})
	require.NoError(t, err)
	require.Equal(t, "Judge", created.Name)

	if _, err := svc.CreatePointType(ctx, identityOf(stores, "admin"), CreatePointTypeInput{Name: "Bad", Category: "daily"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	oneTime, err := svc.ListPointTypes(ctx, "one_time")
	require.NoError(t, err)
	if len(oneTime) != 2 {
		t.Fatalf("expected 2 one_time point types, got=%d", len(oneTime))
	}
}

func TestSubmitAndWait_WaitsForRunningTasksWhenSubmitFails(t *testing.T) {
	t.Parallel()

	pool, err := ants.NewPool(1, ants.WithNonblocking(true))
	require.NoError(t, err)
	defer pool.Release()

	release := make(chan struct{})
	var finished atomic.Bool
	tasks := []func(){
		func() {
			<-release
			finished.Store(true)
		},
		func() {},
	}

	done := make(chan error, 1)
	go func() { done <- submitAndWait(pool, tasks) }()

	select {
	case err := <-done:
		t.Fatalf("returned while a task was still running: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	err = <-done
	if !errors.Is(err, ants.ErrPoolOverload) {
		t.Fatalf("expected ErrPoolOverload, got %v", err)
	}
	if !finished.Load() {
		t.Fatal("running task must finish before submitAndWait returns")
	}
}
