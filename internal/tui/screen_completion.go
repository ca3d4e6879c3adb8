package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/sous/internal/domain"
	"github.com/mmcdole/sous/internal/tui/components"
	"github.com/mmcdole/sous/internal/tui/styles"
)

// CompletionScreen celebrates a finished cook, records it in the
// history, and offers the upvote and bookmark before heading home.
type CompletionScreen struct {
	deps     *Services
	recipeID int

	recipe  *domain.Recipe
	upvoted bool

	width  int
	height int
}

// NewCompletionScreen creates the celebration screen
func NewCompletionScreen(deps *Services, recipeID int) *CompletionScreen {
	return &CompletionScreen{
		deps:     deps,
		recipeID: recipeID,
	}
}

// Init records the cook and loads the recipe for display
func (s *CompletionScreen) Init() tea.Cmd {
	return tea.Batch(
		RecordCookedCmd(s.deps.Profile, s.recipeID),
		LoadRecipeCmd(s.deps.Recipes, s.recipeID),
	)
}

// Title returns the screen title
func (s *CompletionScreen) Title() string {
	return "Done!"
}

// Cursor is unused here
func (s *CompletionScreen) Cursor() int {
	return 0
}

// SetCursor is unused here
func (s *CompletionScreen) SetCursor(int) {}

// Refresh re-fetches the recipe
func (s *CompletionScreen) Refresh() tea.Cmd {
	return LoadRecipeCmd(s.deps.Recipes, s.recipeID)
}

// CapturesInput always reports false
func (s *CompletionScreen) CapturesInput() bool {
	return false
}

// SetSize stores dimensions
func (s *CompletionScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// HandleBack sends the cook home instead of popping back into the
// finished step list
func (s *CompletionScreen) HandleBack() tea.Cmd {
	return NavigateCmd(Route{Kind: RouteHome})
}

// Update handles messages
func (s *CompletionScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case RecipeLoadedMsg:
		s.recipe = msg.Recipe
		return nil

	case UpvotedMsg:
		s.upvoted = true
		return LoadRecipeCmd(s.deps.Recipes, s.recipeID)

	case BookmarkToggledMsg:
		return LoadRecipeCmd(s.deps.Recipes, s.recipeID)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return nil
}

func (s *CompletionScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, Keys.Enter):
		return NavigateCmd(Route{Kind: RouteHome})

	case key.Matches(msg, Keys.Upvote):
		if s.upvoted {
			return nil
		}
		return UpvoteCmd(s.deps.Recipes, s.recipeID)

	case key.Matches(msg, Keys.Bookmark):
		return ToggleBookmarkCmd(s.deps.Recipes, s.recipeID)
	}
	return nil
}

// View renders the centered celebration card
func (s *CompletionScreen) View() string {
	var lines []string

	lines = append(lines,
		styles.AccentStyle.Render("  ✦ ✦ ✦"),
		styles.TitleStyle.Render("Dinner is served!"),
		"",
	)

	if s.recipe != nil {
		lines = append(lines,
			"You cooked "+styles.HighlightStyle.Render(s.recipe.Title),
		)
		if s.recipe.TotalMinutes() > 0 {
			lines = append(lines,
				styles.DimStyle.Render(fmt.Sprintf("about %s at the stove", s.recipe.DurationLabel())),
			)
		}
		lines = append(lines, "")

		vote := "u: Upvote it (" + components.FormatUpvotes(s.recipe.Upvotes) + ")"
		if s.upvoted {
			vote = styles.SuccessStyle.Render("▲ Upvoted, thanks!")
		}
		save := "b: Save for later " + components.RenderBookmark(s.recipe.Bookmarked)
		if s.recipe.Bookmarked {
			save = "b: Saved " + components.RenderBookmark(true)
		}
		lines = append(lines, vote, save, "")
	}

	lines = append(lines, styles.SubtitleStyle.Render("Enter: Back Home"))

	card := styles.ModalStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, card)
}
