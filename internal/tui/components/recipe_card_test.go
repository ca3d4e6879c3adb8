package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/sous/internal/domain"
	"github.com/mmcdole/sous/internal/tui/styles"
)

func TestFormatUpvotes(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{1, "1"},
		{42, "42"},
		{999, "999"},
		{1000, "1k"},
		{1234, "1k"},
		{1999, "1k"},
		{2000, "2k"},
		{2500, "2k"},
		{999999, "999k"},
		{1000000, "1000k"},
	}

	for _, tt := range tests {
		if got := FormatUpvotes(tt.n); got != tt.want {
			t.Errorf("FormatUpvotes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestRenderBookmark_SameShapeBothStates(t *testing.T) {
	on := RenderBookmark(true)
	off := RenderBookmark(false)

	// Only the fill color changes with state; the outline frame and the
	// glyphs themselves are identical whether saved or not.
	for _, rendered := range []string{on, off} {
		if !strings.Contains(rendered, styles.BookmarkOutlineLeft) {
			t.Errorf("bookmark %q missing left outline %q", rendered, styles.BookmarkOutlineLeft)
		}
		if !strings.Contains(rendered, styles.BookmarkFillChar) {
			t.Errorf("bookmark %q missing fill %q", rendered, styles.BookmarkFillChar)
		}
		if !strings.Contains(rendered, styles.BookmarkOutlineRight) {
			t.Errorf("bookmark %q missing right outline %q", rendered, styles.BookmarkOutlineRight)
		}
		if w := lipgloss.Width(rendered); w != 3 {
			t.Errorf("bookmark width = %d, want 3", w)
		}
	}
}

func TestCard_ClickBookmark_FiresOnce(t *testing.T) {
	calls := 0
	card := Card{
		Recipe:     &domain.Recipe{ID: 7, Title: "Carbonara"},
		OnBookmark: func() tea.Msg { calls++; return "toggled" },
	}

	cmd := card.ClickBookmark()
	if cmd == nil {
		t.Fatal("ClickBookmark returned nil with a callback set")
	}
	if calls != 0 {
		t.Fatalf("callback fired %d times before the command ran", calls)
	}

	msg := cmd()
	if calls != 1 {
		t.Errorf("callback fired %d times, want 1", calls)
	}
	if msg != "toggled" {
		t.Errorf("command returned %v, want the callback's message", msg)
	}
}

func TestCard_ClickBookmark_NilCallback(t *testing.T) {
	card := Card{Recipe: &domain.Recipe{ID: 1}}
	if cmd := card.ClickBookmark(); cmd != nil {
		t.Error("ClickBookmark should return nil without a callback")
	}
}

func TestCard_ClickDelete_HiddenNeverFires(t *testing.T) {
	calls := 0
	card := Card{
		Recipe:     &domain.Recipe{ID: 7},
		HideDelete: true,
		OnDelete:   func() tea.Msg { calls++; return nil },
	}

	if cmd := card.ClickDelete(); cmd != nil {
		t.Error("ClickDelete should return nil when the control is hidden")
	}
	if calls != 0 {
		t.Errorf("hidden delete fired %d times", calls)
	}
}

func TestCard_ClickDelete_FiresOnce(t *testing.T) {
	calls := 0
	card := Card{
		Recipe:   &domain.Recipe{ID: 7},
		OnDelete: func() tea.Msg { calls++; return "deleted" },
	}

	cmd := card.ClickDelete()
	if cmd == nil {
		t.Fatal("ClickDelete returned nil with a visible control")
	}
	cmd()
	if calls != 1 {
		t.Errorf("callback fired %d times, want 1", calls)
	}
}

func TestCard_ViewShowsDeleteOnlyWhenAllowed(t *testing.T) {
	r := &domain.Recipe{ID: 1, Title: "Soup", Upvotes: 12, PrepMinutes: 5, CookMinutes: 20}

	shown := Card{Recipe: r, Width: 30}.View()
	hidden := Card{Recipe: r, Width: 30, HideDelete: true}.View()

	if !strings.Contains(shown, styles.DeleteChar) {
		t.Error("card without HideDelete should render the delete glyph")
	}
	if strings.Contains(hidden, styles.DeleteChar) {
		t.Error("card with HideDelete should not render the delete glyph")
	}
}

func TestCard_ViewBadges(t *testing.T) {
	r := &domain.Recipe{
		ID:          1,
		Title:       "Pad Thai",
		Description: "Street-style noodles.",
		Upvotes:     2500,
		PrepMinutes: 20,
		CookMinutes: 70,
	}

	view := Card{Recipe: r, Width: 40}.View()

	if !strings.Contains(view, "2k") {
		t.Errorf("card should abbreviate 2500 upvotes to 2k:\n%s", view)
	}
	if !strings.Contains(view, "1h 30m") {
		t.Errorf("card should show the total duration 1h 30m:\n%s", view)
	}
	if !strings.Contains(view, "Pad Thai") {
		t.Errorf("card should show the title:\n%s", view)
	}
}
