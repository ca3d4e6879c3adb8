package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmcdole/sous/internal/domain"
	"github.com/mmcdole/sous/internal/store"
)

func newGroceryFixture(t *testing.T) *GroceryService {
	t.Helper()
	st, err := store.New("")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewGroceryService(st, discardLogger())
}

func TestGroceryService_Add(t *testing.T) {
	ctx := context.Background()
	svc := newGroceryFixture(t)

	item, err := svc.Add(ctx, "  2 lemons  ", "", 0)
	require.NoError(t, err)
	require.Equal(t, "2 lemons", item.Label)
	require.Len(t, item.ID, 26, "grocery IDs are ULIDs")
	require.False(t, item.Done)
	require.Zero(t, item.RecipeID)

	_, err = svc.Add(ctx, "   ", "", 0)
	require.ErrorIs(t, err, domain.ErrEmptyTitle)

	items, err := svc.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestGroceryService_AddRecipeIngredients(t *testing.T) {
	ctx := context.Background()
	svc := newGroceryFixture(t)

	r := &domain.Recipe{
		ID:    42,
		Title: "Lemon Pasta",
		Ingredients: []domain.Ingredient{
			{Quantity: "200", Unit: "g", Name: "spaghetti"},
			{Quantity: "2", Name: "lemons"},
			{Name: "parmesan"},
			{Quantity: "1", Unit: "tbsp"}, // no name, skipped
		},
	}

	added, err := svc.AddRecipeIngredients(ctx, r)
	require.NoError(t, err)
	require.Equal(t, 3, added)

	items, err := svc.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, "spaghetti", items[0].Label)
	require.Equal(t, "200 g", items[0].Quantity)
	require.Equal(t, "2", items[1].Quantity)
	require.Equal(t, 42, items[0].RecipeID, "recipe items keep their source ID")
}

func TestGroceryService_Toggle(t *testing.T) {
	ctx := context.Background()
	svc := newGroceryFixture(t)

	item, err := svc.Add(ctx, "flour", "", 0)
	require.NoError(t, err)

	done, err := svc.Toggle(ctx, item.ID)
	require.NoError(t, err)
	require.True(t, done)

	done, err = svc.Toggle(ctx, item.ID)
	require.NoError(t, err)
	require.False(t, done)

	_, err = svc.Toggle(ctx, "nope")
	require.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestGroceryService_RemoveAndClearChecked(t *testing.T) {
	ctx := context.Background()
	svc := newGroceryFixture(t)

	a, _ := svc.Add(ctx, "eggs", "", 0)
	b, _ := svc.Add(ctx, "milk", "", 0)
	_, err := svc.Add(ctx, "bread", "", 0)
	require.NoError(t, err)

	_, err = svc.Toggle(ctx, a.ID)
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, b.ID)
	require.NoError(t, err)

	removed, err := svc.ClearChecked(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, removed)

	items, _ := svc.Items(ctx)
	require.Len(t, items, 1)
	require.Equal(t, "bread", items[0].Label)

	require.NoError(t, svc.Remove(ctx, items[0].ID))
	require.ErrorIs(t, svc.Remove(ctx, items[0].ID), domain.ErrItemNotFound)

	removed, err = svc.ClearChecked(ctx)
	require.NoError(t, err)
	require.Zero(t, removed, "nothing left to clear")
}
