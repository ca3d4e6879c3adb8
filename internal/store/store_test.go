package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/sous/internal/domain"
)

func TestNew_CreatesDatabase(t *testing.T) {
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "nested", "data")

	s, err := New(dataDir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	dbPath := filepath.Join(dataDir, "sous.db")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file not created at %s", dbPath)
	}
}

func TestNew_MemoryMode(t *testing.T) {
	s, err := New("")
	if err != nil {
		t.Fatalf("New(\"\") error = %v", err)
	}
	defer s.Close()

	id, err := s.SaveRecipe(&domain.Recipe{Title: "Toast"})
	if err != nil {
		t.Fatalf("SaveRecipe in memory mode: %v", err)
	}
	if id <= 1000 {
		t.Errorf("user recipe id = %d, want above the seed range", id)
	}

	got, err := s.UserRecipe(id)
	if err != nil {
		t.Fatalf("UserRecipe: %v", err)
	}
	if got.Title != "Toast" {
		t.Errorf("round-trip title = %q", got.Title)
	}
}

func TestSaveRecipe_AllocatesAndStamps(t *testing.T) {
	s, _ := New("")
	defer s.Close()

	r := &domain.Recipe{Title: "Frittata", Category: "Breakfast"}
	id, err := s.SaveRecipe(r)
	if err != nil {
		t.Fatalf("SaveRecipe: %v", err)
	}

	if r.ID != id {
		t.Errorf("recipe ID not written back: %d vs %d", r.ID, id)
	}
	if !r.Mine {
		t.Error("saved recipe should be marked mine")
	}
	if r.CreatedAt.IsZero() || r.UpdatedAt.IsZero() {
		t.Error("timestamps not set on first save")
	}

	// A second save with the same ID updates in place
	r.Title = "Veggie Frittata"
	id2, err := s.SaveRecipe(r)
	if err != nil {
		t.Fatalf("update save: %v", err)
	}
	if id2 != id {
		t.Errorf("update allocated a new id: %d vs %d", id2, id)
	}

	all, _ := s.UserRecipes()
	if len(all) != 1 {
		t.Fatalf("recipe count after update = %d, want 1", len(all))
	}
	if all[0].Title != "Veggie Frittata" {
		t.Errorf("updated title = %q", all[0].Title)
	}
}

func TestSaveRecipe_RejectsEmptyTitle(t *testing.T) {
	s, _ := New("")
	defer s.Close()

	_, err := s.SaveRecipe(&domain.Recipe{Title: "   "})
	if !errors.Is(err, domain.ErrEmptyTitle) {
		t.Errorf("SaveRecipe with blank title = %v, want ErrEmptyTitle", err)
	}
}

func TestUserRecipes_NewestFirst(t *testing.T) {
	s, _ := New("")
	defer s.Close()

	for _, title := range []string{"First", "Second", "Third"} {
		if _, err := s.SaveRecipe(&domain.Recipe{Title: title}); err != nil {
			t.Fatalf("SaveRecipe(%s): %v", title, err)
		}
		// Saves in the same nanosecond tie on CreatedAt
		time.Sleep(2 * time.Millisecond)
	}

	all, err := s.UserRecipes()
	if err != nil {
		t.Fatalf("UserRecipes: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("count = %d, want 3", len(all))
	}
	if all[0].Title != "Third" || all[2].Title != "First" {
		t.Errorf("order = %s, %s, %s; want newest first", all[0].Title, all[1].Title, all[2].Title)
	}
}

func TestDeleteRecipe(t *testing.T) {
	s, _ := New("")
	defer s.Close()

	id, _ := s.SaveRecipe(&domain.Recipe{Title: "Goner"})
	if err := s.SetBookmark(id, true); err != nil {
		t.Fatalf("SetBookmark: %v", err)
	}

	if err := s.DeleteRecipe(id); err != nil {
		t.Fatalf("DeleteRecipe: %v", err)
	}

	if _, err := s.UserRecipe(id); !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Errorf("UserRecipe after delete = %v, want ErrRecipeNotFound", err)
	}

	marks, _ := s.Bookmarks()
	if marks[id] {
		t.Error("bookmark should be cleared with the recipe")
	}

	if err := s.DeleteRecipe(99999); !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Errorf("deleting a missing recipe = %v, want ErrRecipeNotFound", err)
	}
}

func TestBookmarks(t *testing.T) {
	s, _ := New("")
	defer s.Close()

	require.NoError(t, s.SetBookmark(3, true))
	require.NoError(t, s.SetBookmark(8, true))
	require.NoError(t, s.SetBookmark(3, false))

	marks, err := s.Bookmarks()
	require.NoError(t, err)
	require.False(t, marks[3])
	require.True(t, marks[8])
	require.Len(t, marks, 1)
}

func TestAddUpvote(t *testing.T) {
	s, _ := New("")
	defer s.Close()

	for want := 1; want <= 3; want++ {
		got, err := s.AddUpvote(5)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	deltas, err := s.UpvoteDeltas()
	require.NoError(t, err)
	require.Equal(t, 3, deltas[5])
	require.Zero(t, deltas[6])
}

func TestPlanRoundTrip(t *testing.T) {
	s, _ := New("")
	defer s.Close()

	// An unsaved plan reads back as an all-empty week
	p, err := s.Plan()
	require.NoError(t, err)
	require.Zero(t, p.Assigned())

	p.Days[0].Set(domain.SlotDinner, 12)
	p.Days[4].Set(domain.SlotBreakfast, 3)
	require.NoError(t, s.SavePlan(p))

	got, err := s.Plan()
	require.NoError(t, err)
	require.Equal(t, 12, got.Days[0].Get(domain.SlotDinner))
	require.Equal(t, 3, got.Days[4].Get(domain.SlotBreakfast))
	require.Equal(t, 2, got.Assigned())
}

func TestGroceryItems(t *testing.T) {
	s, _ := New("")
	defer s.Close()

	require.Error(t, s.SaveGroceryItem(domain.GroceryItem{Label: "no id"}))

	a := domain.GroceryItem{ID: ulid.Make().String(), Label: "Lemons", Quantity: "2"}
	b := domain.GroceryItem{ID: ulid.Make().String(), Label: "Flour", Done: true}
	c := domain.GroceryItem{ID: ulid.Make().String(), Label: "Eggs", Done: true}
	for _, item := range []domain.GroceryItem{a, b, c} {
		require.NoError(t, s.SaveGroceryItem(item))
	}

	items, err := s.GroceryItems()
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, "Lemons", items[0].Label, "ULID keys keep insertion order")

	removed, err := s.DeleteCheckedGrocery()
	require.NoError(t, err)
	require.Equal(t, 2, removed)

	items, _ = s.GroceryItems()
	require.Len(t, items, 1)
	require.Equal(t, "Lemons", items[0].Label)

	require.NoError(t, s.DeleteGroceryItem(a.ID))
	require.ErrorIs(t, s.DeleteGroceryItem(a.ID), domain.ErrItemNotFound)
}

func TestProfile(t *testing.T) {
	s, _ := New("")
	defer s.Close()

	p, err := s.Profile()
	require.NoError(t, err)
	require.Nil(t, p, "no profile before first save")

	joined := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveProfile(domain.Profile{Name: "Sam", FavoriteCuisine: "Thai", JoinedAt: joined}))

	p, err = s.Profile()
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Equal(t, "Sam", p.Name)
	require.Equal(t, "Thai", p.FavoriteCuisine)
	require.True(t, p.JoinedAt.Equal(joined))
}

func TestHistory(t *testing.T) {
	s, _ := New("")
	defer s.Close()

	for id := 1; id <= 5; id++ {
		require.NoError(t, s.AppendHistory(domain.HistoryEntry{RecipeID: id, CookedAt: time.Now()}))
	}

	entries, err := s.History(3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, 5, entries[0].RecipeID, "newest entry first")
	require.Equal(t, 3, entries[2].RecipeID)

	all, err := s.History(0)
	require.NoError(t, err)
	require.Len(t, all, 5)
}

// TestPersistence exercises the full disk lifecycle: write, close, reopen,
// read everything back.
func TestPersistence(t *testing.T) {
	dataDir := t.TempDir()

	s, err := New(dataDir)
	require.NoError(t, err)

	id, err := s.SaveRecipe(&domain.Recipe{
		Title:       "Overnight Oats",
		Category:    "Breakfast",
		Ingredients: []domain.Ingredient{{Quantity: "1", Unit: "cup", Name: "rolled oats"}},
		Steps:       []domain.Step{{Instruction: "Mix and refrigerate overnight."}},
	})
	require.NoError(t, err)
	require.NoError(t, s.SetBookmark(id, true))
	_, err = s.AddUpvote(id)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := New(dataDir)
	require.NoError(t, err)
	defer s2.Close()

	r, err := s2.UserRecipe(id)
	require.NoError(t, err)
	require.Equal(t, "Overnight Oats", r.Title)
	require.Len(t, r.Ingredients, 1)
	require.Equal(t, "1 cup rolled oats", r.Ingredients[0].Label())

	marks, _ := s2.Bookmarks()
	require.True(t, marks[id])

	deltas, _ := s2.UpvoteDeltas()
	require.Equal(t, 1, deltas[id])

	// The ID sequence continues past the reopened database
	id2, err := s2.SaveRecipe(&domain.Recipe{Title: "Second"})
	require.NoError(t, err)
	require.Greater(t, id2, id)
}
