package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mmcdole/sous/internal/domain"
	"github.com/mmcdole/sous/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeCatalog is a fixed in-memory CatalogSource. It hands out copies the
// same way the real catalog does, so overlays never touch the originals.
type fakeCatalog struct {
	recipes []*domain.Recipe
}

func (f *fakeCatalog) List(ctx context.Context) ([]*domain.Recipe, error) {
	out := make([]*domain.Recipe, len(f.recipes))
	for i, r := range f.recipes {
		cp := *r
		out[i] = &cp
	}
	return out, nil
}

func (f *fakeCatalog) Get(ctx context.Context, id int) (*domain.Recipe, error) {
	for _, r := range f.recipes {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, domain.ErrRecipeNotFound
}

func (f *fakeCatalog) ByCategory(ctx context.Context, name string) ([]*domain.Recipe, error) {
	var out []*domain.Recipe
	for _, r := range f.recipes {
		if r.Category == name {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeCatalog) Categories(ctx context.Context) ([]domain.CategoryCount, error) {
	counts := make(map[string]int)
	for _, r := range f.recipes {
		counts[r.Category]++
	}
	var out []domain.CategoryCount
	for name, n := range counts {
		out = append(out, domain.CategoryCount{Name: name, Count: n})
	}
	return out, nil
}

func newRecipeFixture(t *testing.T) (*RecipeService, *store.Store) {
	t.Helper()

	st, err := store.New("")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cat := &fakeCatalog{recipes: []*domain.Recipe{
		{ID: 1, Title: "Seed Carbonara", Category: "Dinner", Upvotes: 120},
		{ID: 2, Title: "Seed Pancakes", Category: "Breakfast", Upvotes: 1999},
		{ID: 3, Title: "Seed Ramen", Category: "Dinner", Upvotes: 4},
	}}

	return NewRecipeService(cat, st, discardLogger()), st
}

func TestRecipeService_AllMergesCatalogAndMine(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRecipeFixture(t)

	_, err := svc.Save(ctx, &domain.Recipe{Title: "My Stew", Category: "Dinner"})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = svc.Save(ctx, &domain.Recipe{Title: "My Salad", Category: "Lunch"})
	require.NoError(t, err)

	all, err := svc.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)

	// Catalog order first, then user recipes newest-first
	require.Equal(t, "Seed Carbonara", all[0].Title)
	require.Equal(t, "Seed Ramen", all[2].Title)
	require.Equal(t, "My Salad", all[3].Title)
	require.Equal(t, "My Stew", all[4].Title)
}

func TestRecipeService_RecipeFallsBackToStore(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRecipeFixture(t)

	id, err := svc.Save(ctx, &domain.Recipe{Title: "Only Mine"})
	require.NoError(t, err)

	r, err := svc.Recipe(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Only Mine", r.Title)
	require.True(t, r.Mine)

	seed, err := svc.Recipe(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, "Seed Pancakes", seed.Title)

	_, err = svc.Recipe(ctx, 777)
	require.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestRecipeService_ByCategoryIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRecipeFixture(t)

	_, err := svc.Save(ctx, &domain.Recipe{Title: "My Curry", Category: "dinner"})
	require.NoError(t, err)

	dinner, err := svc.ByCategory(ctx, "DINNER")
	require.NoError(t, err)
	require.Len(t, dinner, 3)
}

func TestRecipeService_ByCategoryEmptyNameListsAll(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRecipeFixture(t)

	// The empty name is the route-decode fallback
	all, err := svc.ByCategory(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestRecipeService_CategoriesCountMerged(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRecipeFixture(t)

	_, err := svc.Save(ctx, &domain.Recipe{Title: "My Waffles", Category: "Breakfast"})
	require.NoError(t, err)

	cats, err := svc.Categories(ctx)
	require.NoError(t, err)

	// Sorted by name: Breakfast (seed + mine), Dinner (two seeds)
	require.Equal(t, "Breakfast", cats[0].Name)
	require.Equal(t, 2, cats[0].Count)
	require.Equal(t, "Dinner", cats[1].Name)
	require.Equal(t, 2, cats[1].Count)
}

func TestRecipeService_ToggleBookmarkInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRecipeFixture(t)

	// Warm the cache first
	_, err := svc.All(ctx)
	require.NoError(t, err)

	on, err := svc.ToggleBookmark(ctx, 1)
	require.NoError(t, err)
	require.True(t, on)

	all, err := svc.All(ctx)
	require.NoError(t, err)
	require.True(t, all[0].Bookmarked, "reload after toggle should show the bookmark")

	off, err := svc.ToggleBookmark(ctx, 1)
	require.NoError(t, err)
	require.False(t, off)

	_, err = svc.ToggleBookmark(ctx, 999)
	require.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestRecipeService_BookmarkedSubset(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRecipeFixture(t)

	_, err := svc.ToggleBookmark(ctx, 2)
	require.NoError(t, err)
	_, err = svc.ToggleBookmark(ctx, 3)
	require.NoError(t, err)

	saved, err := svc.Bookmarked(ctx)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	require.Equal(t, "Seed Pancakes", saved[0].Title)
	require.Equal(t, "Seed Ramen", saved[1].Title)
}

func TestRecipeService_UpvoteAddsDisplayDelta(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRecipeFixture(t)

	total, err := svc.Upvote(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, 2000, total, "1999 seed votes plus one local vote")

	r, err := svc.Recipe(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, 2000, r.Upvotes)

	// Voting twice keeps stacking
	total, err = svc.Upvote(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, 2001, total)

	_, err = svc.Upvote(ctx, 404)
	require.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestRecipeService_DeleteRefusesCatalogRecipes(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRecipeFixture(t)

	err := svc.Delete(ctx, 1)
	require.ErrorIs(t, err, domain.ErrReadOnlyRecipe)

	id, err := svc.Save(ctx, &domain.Recipe{Title: "Removable"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, id))

	_, err = svc.Recipe(ctx, id)
	require.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestRecipeService_MineOnlyUserRecipes(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRecipeFixture(t)

	mine, err := svc.Mine(ctx)
	require.NoError(t, err)
	require.Empty(t, mine)

	_, err = svc.Save(ctx, &domain.Recipe{Title: "Mine Alone"})
	require.NoError(t, err)

	mine, err = svc.Mine(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "Mine Alone", mine[0].Title)
}
