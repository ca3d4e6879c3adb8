package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmcdole/sous/internal/domain"
	"github.com/mmcdole/sous/internal/store"
)

func newPlannerFixture(t *testing.T) *PlannerService {
	t.Helper()
	st, err := store.New("")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewPlannerService(st, discardLogger())
}

func TestPlannerService_AssignAndClear(t *testing.T) {
	ctx := context.Background()
	svc := newPlannerFixture(t)

	require.NoError(t, svc.Assign(ctx, 0, domain.SlotDinner, 7))
	require.NoError(t, svc.Assign(ctx, 6, domain.SlotBreakfast, 3))

	plan, err := svc.Plan(ctx)
	require.NoError(t, err)
	require.Equal(t, 7, plan.Days[0].Get(domain.SlotDinner))
	require.Equal(t, 3, plan.Days[6].Get(domain.SlotBreakfast))
	require.Equal(t, 2, plan.Assigned())

	require.NoError(t, svc.Clear(ctx, 0, domain.SlotDinner))

	plan, _ = svc.Plan(ctx)
	require.Zero(t, plan.Days[0].Get(domain.SlotDinner))
	require.Equal(t, 1, plan.Assigned())
}

func TestPlannerService_AssignRejectsBadDay(t *testing.T) {
	ctx := context.Background()
	svc := newPlannerFixture(t)

	require.Error(t, svc.Assign(ctx, -1, domain.SlotLunch, 1))
	require.Error(t, svc.Assign(ctx, 7, domain.SlotLunch, 1))
}

func TestPlannerService_ReassignReplaces(t *testing.T) {
	ctx := context.Background()
	svc := newPlannerFixture(t)

	require.NoError(t, svc.Assign(ctx, 2, domain.SlotLunch, 5))
	require.NoError(t, svc.Assign(ctx, 2, domain.SlotLunch, 9))

	plan, _ := svc.Plan(ctx)
	require.Equal(t, 9, plan.Days[2].Get(domain.SlotLunch))
	require.Equal(t, 1, plan.Assigned())
}

func TestPlannerService_AssignedRecipeIDs(t *testing.T) {
	ctx := context.Background()
	svc := newPlannerFixture(t)

	require.NoError(t, svc.Assign(ctx, 0, domain.SlotBreakfast, 5))
	require.NoError(t, svc.Assign(ctx, 0, domain.SlotDinner, 8))
	require.NoError(t, svc.Assign(ctx, 3, domain.SlotLunch, 5)) // repeat

	ids, err := svc.AssignedRecipeIDs(ctx)
	require.NoError(t, err)
	require.Equal(t, []int{5, 8}, ids, "distinct IDs in day and slot order")
}

func TestPlannerService_ClearAll(t *testing.T) {
	ctx := context.Background()
	svc := newPlannerFixture(t)

	for day := 0; day < 7; day++ {
		require.NoError(t, svc.Assign(ctx, day, domain.SlotDinner, day+1))
	}

	require.NoError(t, svc.ClearAll(ctx))

	plan, err := svc.Plan(ctx)
	require.NoError(t, err)
	require.Zero(t, plan.Assigned())
}
