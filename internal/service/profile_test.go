package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mmcdole/sous/internal/domain"
	"github.com/mmcdole/sous/internal/store"
)

func newProfileFixture(t *testing.T) (*ProfileService, *store.Store) {
	t.Helper()
	st, err := store.New("")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewProfileService(st, discardLogger()), st
}

func TestProfileService_DefaultBeforeFirstSave(t *testing.T) {
	ctx := context.Background()
	svc, _ := newProfileFixture(t)

	p, err := svc.Profile(ctx)
	require.NoError(t, err)
	require.Equal(t, "Chef", p.Name)
	require.Empty(t, p.FavoriteCuisine)
}

func TestProfileService_SaveKeepsJoinDate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newProfileFixture(t)

	first, err := svc.SaveProfile(ctx, "  Sam  ", " Thai ")
	require.NoError(t, err)
	require.Equal(t, "Sam", first.Name)
	require.Equal(t, "Thai", first.FavoriteCuisine)
	require.False(t, first.JoinedAt.IsZero())

	time.Sleep(2 * time.Millisecond)

	second, err := svc.SaveProfile(ctx, "Sam Again", "Mexican")
	require.NoError(t, err)
	require.True(t, second.JoinedAt.Equal(first.JoinedAt), "join date survives renames")

	_, err = svc.SaveProfile(ctx, "   ", "")
	require.ErrorIs(t, err, domain.ErrEmptyTitle)
}

func TestProfileService_HistoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, _ := newProfileFixture(t)

	for id := 1; id <= 4; id++ {
		require.NoError(t, svc.RecordCooked(ctx, id))
	}

	history, err := svc.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, 4, history[0].RecipeID)
	require.Equal(t, 3, history[1].RecipeID)
}

func TestProfileService_Stats(t *testing.T) {
	ctx := context.Background()
	svc, st := newProfileFixture(t)

	require.NoError(t, svc.RecordCooked(ctx, 1))
	require.NoError(t, svc.RecordCooked(ctx, 1))
	require.NoError(t, st.SetBookmark(2, true))
	_, err := st.SaveRecipe(&domain.Recipe{Title: "Authored"})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, stats.Cooked)
	require.Equal(t, 1, stats.Saved)
	require.Equal(t, 1, stats.Created)
}
