package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmcdole/sous/internal/domain"
)

func TestNewSource_ParsesSeed(t *testing.T) {
	t.Parallel()

	src, err := NewSource()
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}

	recipes, err := src.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recipes) != 14 {
		t.Fatalf("seed count = %d, want 14", len(recipes))
	}

	// Seed order is file order, with creation dates spaced a day apart
	if recipes[0].Title != "Shakshuka" {
		t.Errorf("first recipe = %q", recipes[0].Title)
	}
	if got := recipes[1].CreatedAt.Sub(recipes[0].CreatedAt); got != 24*time.Hour {
		t.Errorf("creation spacing = %v, want 24h", got)
	}

	for _, r := range recipes {
		if r.ID <= 0 || r.Title == "" {
			t.Errorf("recipe %d %q: incomplete seed entry", r.ID, r.Title)
		}
		if r.Mine {
			t.Errorf("recipe %d: seed recipes are never user-owned", r.ID)
		}
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	src, err := NewSource()
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	ctx := context.Background()

	r, err := src.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get(1): %v", err)
	}
	if r.Title != "Shakshuka" || r.Category != "Breakfast" {
		t.Errorf("Get(1) = %q/%q", r.Title, r.Category)
	}
	if r.Difficulty != domain.DifficultyEasy {
		t.Errorf("difficulty = %v", r.Difficulty)
	}
	if r.Upvotes != 1834 {
		t.Errorf("upvotes = %d", r.Upvotes)
	}

	if _, err := src.Get(ctx, 9999); !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Errorf("Get(9999) = %v, want ErrRecipeNotFound", err)
	}
}

func TestGet_ReturnsCopies(t *testing.T) {
	t.Parallel()

	src, err := NewSource()
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	ctx := context.Background()

	first, _ := src.Get(ctx, 1)
	first.Title = "Vandalized"
	first.Upvotes += 1000

	second, _ := src.Get(ctx, 1)
	if second.Title != "Shakshuka" || second.Upvotes != 1834 {
		t.Error("mutating a returned recipe leaked into the seed data")
	}
}

func TestByCategory(t *testing.T) {
	t.Parallel()

	src, err := NewSource()
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	ctx := context.Background()

	dinner, err := src.ByCategory(ctx, "DINNER")
	if err != nil {
		t.Fatalf("ByCategory: %v", err)
	}
	if len(dinner) != 4 {
		t.Errorf("dinner count = %d, want case-insensitive match on 4", len(dinner))
	}

	none, err := src.ByCategory(ctx, "Snacks")
	if err != nil {
		t.Fatalf("ByCategory: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("unknown category returned %d recipes", len(none))
	}
}

func TestCategories_SortedWithCounts(t *testing.T) {
	t.Parallel()

	src, err := NewSource()
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}

	cats, err := src.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}

	want := []domain.CategoryCount{
		{Name: "Breakfast", Count: 3},
		{Name: "Dessert", Count: 2},
		{Name: "Dinner", Count: 4},
		{Name: "Lunch", Count: 2},
		{Name: "Soup", Count: 2},
		{Name: "Vegan", Count: 1},
	}
	if len(cats) != len(want) {
		t.Fatalf("category count = %d, want %d", len(cats), len(want))
	}
	for i, c := range cats {
		if c != want[i] {
			t.Errorf("categories[%d] = %+v, want %+v", i, c, want[i])
		}
	}
}

func TestNewFromYAML_RejectsBadSeeds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{"duplicate id", `
recipes:
  - { id: 1, title: First }
  - { id: 1, title: Second }
`},
		{"zero id", `
recipes:
  - { id: 0, title: Orphan }
`},
		{"blank title", `
recipes:
  - { id: 3, title: "   " }
`},
		{"malformed yaml", `recipes: [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := newFromYAML([]byte(tt.yaml)); err == nil {
				t.Error("newFromYAML accepted a bad seed")
			}
		})
	}
}

func TestNewFromYAML_EmptyTitleError(t *testing.T) {
	t.Parallel()

	_, err := newFromYAML([]byte("recipes:\n  - { id: 7, title: \"\" }\n"))
	if !errors.Is(err, domain.ErrEmptyTitle) {
		t.Errorf("err = %v, want ErrEmptyTitle", err)
	}
}

func TestParseDifficulty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want domain.Difficulty
	}{
		{"easy", domain.DifficultyEasy},
		{"Medium", domain.DifficultyMedium},
		{" HARD ", domain.DifficultyHard},
		{"", domain.DifficultyEasy},
		{"expert", domain.DifficultyEasy},
	}

	for _, tt := range tests {
		if got := parseDifficulty(tt.in); got != tt.want {
			t.Errorf("parseDifficulty(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
