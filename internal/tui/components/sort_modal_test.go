package components

import (
	"testing"
	"time"

	"github.com/mmcdole/sous/internal/domain"
)

func sortFixture() []*domain.Recipe {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []*domain.Recipe{
		{ID: 1, Title: "zucchini Fritters", Upvotes: 50, CookMinutes: 25, CreatedAt: base},
		{ID: 2, Title: "Apple Pie", Upvotes: 900, PrepMinutes: 30, CookMinutes: 60, CreatedAt: base.AddDate(0, 0, 2)},
		{ID: 3, Title: "miso Soup", Upvotes: 200, CookMinutes: 10, CreatedAt: base.AddDate(0, 0, 1)},
	}
}

func ids(recipes []*domain.Recipe) []int {
	out := make([]int, len(recipes))
	for i, r := range recipes {
		out[i] = r.ID
	}
	return out
}

func TestSortRecipes(t *testing.T) {
	tests := []struct {
		name string
		sel  SortSelection
		want []int
	}{
		{"default keeps order", SortSelection{Field: SortDefault}, []int{1, 2, 3}},
		{"title is case-insensitive", SortSelection{Field: SortTitle, Direction: SortAsc}, []int{2, 3, 1}},
		{"time quickest first", SortSelection{Field: SortTime, Direction: SortAsc}, []int{3, 1, 2}},
		{"votes most first", SortSelection{Field: SortVotes, Direction: SortDesc}, []int{2, 3, 1}},
		{"newest first", SortSelection{Field: SortNewest, Direction: SortDesc}, []int{2, 3, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipes := sortFixture()
			SortRecipes(recipes, tt.sel)
			got := ids(recipes)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("order = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestDefaultDirection(t *testing.T) {
	if DefaultDirection(SortTitle) != SortAsc {
		t.Error("title should default to ascending")
	}
	if DefaultDirection(SortTime) != SortAsc {
		t.Error("time should default to ascending")
	}
	if DefaultDirection(SortVotes) != SortDesc {
		t.Error("votes should default to descending")
	}
	if DefaultDirection(SortNewest) != SortDesc {
		t.Error("newest should default to descending")
	}
}

func TestSortModal_EnterPicksFieldWithDefaultDirection(t *testing.T) {
	m := NewSortModal()
	m.Show(RecipeSortOptions(), SortDefault, SortDesc)

	// Move to Upvotes (Default, Title, Time, Upvotes)
	for i := 0; i < 3; i++ {
		if handled, sel := m.HandleKey("j"); !handled || sel != nil {
			t.Fatal("j should be handled without selecting")
		}
	}

	handled, sel := m.HandleKey("enter")
	if !handled || sel == nil {
		t.Fatal("enter should confirm a selection")
	}
	if sel.Field != SortVotes || sel.Direction != SortDesc {
		t.Errorf("selection = %+v, want votes descending", sel)
	}
	if m.IsVisible() {
		t.Error("modal should close after confirm")
	}
}

func TestSortModal_ReselectTogglesDirection(t *testing.T) {
	m := NewSortModal()
	m.Show(RecipeSortOptions(), SortTitle, SortAsc)

	// Show positions the cursor on the active field, so enter re-picks it
	_, sel := m.HandleKey("enter")
	if sel == nil {
		t.Fatal("enter should confirm")
	}
	if sel.Field != SortTitle || sel.Direction != SortDesc {
		t.Errorf("re-selecting the active field should flip direction, got %+v", sel)
	}
}

func TestSortModal_EscClosesWithoutSelection(t *testing.T) {
	m := NewSortModal()
	m.Show(RecipeSortOptions(), SortDefault, SortDesc)

	handled, sel := m.HandleKey("esc")
	if !handled || sel != nil {
		t.Error("esc should close without a selection")
	}
	if m.IsVisible() {
		t.Error("modal should be hidden after esc")
	}
}

func TestSortModal_ConsumesAllKeysWhileVisible(t *testing.T) {
	m := NewSortModal()
	m.Show(RecipeSortOptions(), SortDefault, SortDesc)

	if handled, _ := m.HandleKey("q"); !handled {
		t.Error("visible modal should swallow unrelated keys")
	}
	m.Hide()
	if handled, _ := m.HandleKey("j"); handled {
		t.Error("hidden modal should not handle keys")
	}
}
