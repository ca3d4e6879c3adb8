package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/sous/internal/domain"
)

func gridRecipes() []*domain.Recipe {
	return []*domain.Recipe{
		{ID: 1, Title: "Carbonara"},
		{ID: 2, Title: "Pad Thai"},
		{ID: 3, Title: "Shakshuka"},
		{ID: 4, Title: "Ramen"},
		{ID: 5, Title: "Tacos"},
	}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestCardGrid_CursorMovesByColumn(t *testing.T) {
	g := NewCardGrid(2)
	g.SetRecipes(gridRecipes())
	g.SetSize(80, 30)
	g.SetFocused(true)

	// j moves a full row down (one column stride)
	g, _ = g.Update(keyRune('j'))
	if g.Cursor() != 2 {
		t.Errorf("cursor after j = %d, want 2", g.Cursor())
	}

	// l moves right within the row
	g, _ = g.Update(keyRune('l'))
	if g.Cursor() != 3 {
		t.Errorf("cursor after l = %d, want 3", g.Cursor())
	}

	// j from the second-to-last row lands on the last item, not past it
	g, _ = g.Update(keyRune('j'))
	if g.Cursor() != 4 {
		t.Errorf("cursor after j at bottom = %d, want 4 (clamped to last)", g.Cursor())
	}

	// G jumps to the end, g back to the start
	g, _ = g.Update(keyRune('g'))
	if g.Cursor() != 0 {
		t.Errorf("cursor after g = %d, want 0", g.Cursor())
	}
}

func TestCardGrid_UnfocusedIgnoresKeys(t *testing.T) {
	g := NewCardGrid(2)
	g.SetRecipes(gridRecipes())
	g.SetFocused(false)

	g, _ = g.Update(keyRune('j'))
	if g.Cursor() != 0 {
		t.Errorf("unfocused grid moved cursor to %d", g.Cursor())
	}
}

func TestCardGrid_SetCursorClamps(t *testing.T) {
	g := NewCardGrid(3)
	g.SetRecipes(gridRecipes())

	g.SetCursor(99)
	if g.Cursor() != 4 {
		t.Errorf("SetCursor(99) = %d, want 4", g.Cursor())
	}

	g.SetCursor(-5)
	if g.Cursor() != 0 {
		t.Errorf("SetCursor(-5) = %d, want 0", g.Cursor())
	}

	g.SetRecipes(nil)
	g.SetCursor(2)
	if g.Cursor() != 0 {
		t.Errorf("SetCursor on empty grid = %d, want 0", g.Cursor())
	}
}

func TestCardGrid_RefreshKeepsCursor(t *testing.T) {
	g := NewCardGrid(2)
	g.SetRecipes(gridRecipes())
	g.SetCursor(3)

	g.Refresh(gridRecipes())
	if g.Cursor() != 3 {
		t.Errorf("Refresh moved cursor to %d, want 3", g.Cursor())
	}

	// A shrunken reload clamps instead of pointing past the end
	g.Refresh(gridRecipes()[:2])
	if g.Cursor() != 1 {
		t.Errorf("Refresh with fewer items left cursor at %d, want 1", g.Cursor())
	}

	// SetRecipes resets outright
	g.SetRecipes(gridRecipes())
	if g.Cursor() != 0 {
		t.Errorf("SetRecipes left cursor at %d, want 0", g.Cursor())
	}
}

func TestCardGrid_BookmarkRoutesSelectedID(t *testing.T) {
	var gotID int
	g := NewCardGrid(2)
	g.OnBookmark = func(recipeID int) tea.Msg {
		gotID = recipeID
		return "bookmarked"
	}
	g.SetRecipes(gridRecipes())
	g.SetCursor(2)

	cmd := g.ClickBookmark()
	if cmd == nil {
		t.Fatal("ClickBookmark returned nil")
	}
	cmd()
	if gotID != 3 {
		t.Errorf("bookmark callback got id %d, want 3", gotID)
	}
}

func TestCardGrid_DeleteSuppressedWhenHidden(t *testing.T) {
	calls := 0
	g := NewCardGrid(2)
	g.OnDelete = func(recipeID int) tea.Msg { calls++; return nil }
	g.SetHideDelete(true)
	g.SetRecipes(gridRecipes())

	if cmd := g.ClickDelete(); cmd != nil {
		t.Error("ClickDelete should return nil when the control is hidden")
	}
	if calls != 0 {
		t.Errorf("delete fired %d times on a hidden control", calls)
	}
}

func TestCardGrid_ClicksOnEmptyGridAreNil(t *testing.T) {
	g := NewCardGrid(2)
	g.OnBookmark = func(recipeID int) tea.Msg { return nil }
	g.OnDelete = func(recipeID int) tea.Msg { return nil }

	if g.ClickBookmark() != nil {
		t.Error("ClickBookmark on empty grid should be nil")
	}
	if g.ClickDelete() != nil {
		t.Error("ClickDelete on empty grid should be nil")
	}
}

func TestCardGrid_FilterNarrowsAndEscClears(t *testing.T) {
	g := NewCardGrid(2)
	g.SetRecipes(gridRecipes())
	g.SetSize(80, 30)
	g.SetFocused(true)

	g.ToggleFilter()
	if !g.IsFiltering() || !g.IsFilterTyping() {
		t.Fatal("ToggleFilter should enter typing mode")
	}

	for _, r := range "pad" {
		g, _ = g.Update(keyRune(r))
	}

	sel := g.SelectedRecipe()
	if sel == nil || sel.Title != "Pad Thai" {
		t.Fatalf("filter %q selected %+v, want Pad Thai", "pad", sel)
	}

	// Enter accepts the filter and returns keys to navigation
	g, _ = g.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if g.IsFilterTyping() {
		t.Error("enter should blur the filter input")
	}
	if !g.IsFiltering() {
		t.Error("enter should keep the filter applied")
	}

	// Esc drops the filter entirely
	g, _ = g.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if g.IsFiltering() {
		t.Error("esc should clear the filter")
	}
	if g.IsEmpty() {
		t.Error("clearing the filter should restore all recipes")
	}
}

func TestCardGrid_SelectedRecipeRespectsFilter(t *testing.T) {
	g := NewCardGrid(2)
	g.SetRecipes(gridRecipes())
	g.SetFocused(true)
	g.ToggleFilter()

	for _, r := range "ramen" {
		g, _ = g.Update(keyRune(r))
	}

	sel := g.SelectedRecipe()
	if sel == nil || sel.ID != 4 {
		t.Errorf("filtered selection = %+v, want recipe 4", sel)
	}
}
