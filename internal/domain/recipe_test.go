package domain

import "testing"

func TestIngredientLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ing  Ingredient
		want string
	}{
		{Ingredient{Quantity: "250", Unit: "g", Name: "flour"}, "250 g flour"},
		{Ingredient{Quantity: "2", Name: "eggs"}, "2 eggs"},
		{Ingredient{Name: "salt to taste"}, "salt to taste"},
		{Ingredient{Quantity: "a pinch", Name: "saffron"}, "a pinch saffron"},
	}

	for _, tt := range tests {
		if got := tt.ing.Label(); got != tt.want {
			t.Errorf("Label(%+v) = %q, want %q", tt.ing, got, tt.want)
		}
	}
}

func TestDurationLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prep, cook int
		want       string
	}{
		{0, 0, "—"},
		{10, 15, "25 min"},
		{0, 59, "59 min"},
		{30, 30, "1h"},
		{60, 30, "1h 30m"},
		{120, 5, "2h 5m"},
	}

	for _, tt := range tests {
		r := Recipe{PrepMinutes: tt.prep, CookMinutes: tt.cook}
		if got := r.DurationLabel(); got != tt.want {
			t.Errorf("DurationLabel(%d+%d) = %q, want %q", tt.prep, tt.cook, got, tt.want)
		}
	}
}

func TestSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		desc string
		want string
	}{
		{"empty", "", ""},
		{"single line", "A cozy stew.", "A cozy stew."},
		{"first line only", "A cozy stew.\nSimmers for hours.", "A cozy stew."},
		{"markdown heading", "# Grandma's Stew\nThe family classic.", "Grandma's Stew"},
		{"surrounding whitespace", "  \n  Crispy edges.  \n", "Crispy edges."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Recipe{Description: tt.desc}
			if got := r.Summary(); got != tt.want {
				t.Errorf("Summary(%q) = %q, want %q", tt.desc, got, tt.want)
			}
		})
	}
}

func TestDifficultyString(t *testing.T) {
	t.Parallel()

	if DifficultyEasy.String() != "Easy" || DifficultyMedium.String() != "Medium" || DifficultyHard.String() != "Hard" {
		t.Error("difficulty names drifted from their display labels")
	}
	if Difficulty(42).String() != "Unknown" {
		t.Error("out-of-range difficulty should read Unknown")
	}
}
