package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/sous/internal/domain"
	"github.com/mmcdole/sous/internal/tui/components"
)

// SavedScreen lists bookmarked recipes. Toggling a bookmark here
// removes the card on the next reload.
type SavedScreen struct {
	deps *Services

	grid    components.CardGrid
	recipes []*domain.Recipe
	sortSel components.SortSelection

	width  int
	height int
}

// NewSavedScreen creates the saved-recipes grid
func NewSavedScreen(deps *Services) *SavedScreen {
	grid := components.NewCardGrid(deps.Config.UI.GridColumns)
	grid.SetHideDelete(true)
	grid.SetFocused(true)
	grid.SetBreadcrumb("Saved")
	grid.OnBookmark = func(id int) tea.Msg {
		return ToggleBookmarkCmd(deps.Recipes, id)()
	}

	return &SavedScreen{
		deps: deps,
		grid: grid,
	}
}

// Init loads bookmarked recipes
func (s *SavedScreen) Init() tea.Cmd {
	return LoadSavedRecipesCmd(s.deps.Recipes)
}

// Title returns the screen title
func (s *SavedScreen) Title() string {
	return "Saved"
}

// Cursor returns the grid cursor
func (s *SavedScreen) Cursor() int {
	return s.grid.Cursor()
}

// SetCursor restores the grid cursor
func (s *SavedScreen) SetCursor(pos int) {
	s.grid.SetCursor(pos)
}

// Refresh reloads without resetting the cursor
func (s *SavedScreen) Refresh() tea.Cmd {
	return LoadSavedRecipesCmd(s.deps.Recipes)
}

// CapturesInput reports whether the grid filter is typing
func (s *SavedScreen) CapturesInput() bool {
	return s.grid.IsFilterTyping()
}

// SetSize sizes the grid
func (s *SavedScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.grid.SetSize(width, height)
}

// SortOptions implements sortable
func (s *SavedScreen) SortOptions() []components.SortField {
	return components.RecipeSortOptions()
}

// SortState implements sortable
func (s *SavedScreen) SortState() (components.SortField, components.SortDirection) {
	return s.sortSel.Field, s.sortSel.Direction
}

// ApplySort implements sortable
func (s *SavedScreen) ApplySort(sel components.SortSelection) {
	s.sortSel = sel
	s.refreshGrid()
}

func (s *SavedScreen) refreshGrid() {
	sorted := make([]*domain.Recipe, len(s.recipes))
	copy(sorted, s.recipes)
	components.SortRecipes(sorted, s.sortSel)

	if s.grid.IsEmpty() {
		s.grid.SetRecipes(sorted)
	} else {
		s.grid.Refresh(sorted)
	}
	s.grid.SetBreadcrumb(fmt.Sprintf("Saved · %d", len(sorted)))
}

// Update handles messages
func (s *SavedScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case SavedRecipesLoadedMsg:
		s.recipes = msg.Recipes
		// A reload can shrink the list when a bookmark is removed, so
		// rebuild instead of refreshing in place
		sorted := make([]*domain.Recipe, len(msg.Recipes))
		copy(sorted, msg.Recipes)
		components.SortRecipes(sorted, s.sortSel)
		cursor := s.grid.Cursor()
		s.grid.SetRecipes(sorted)
		s.grid.SetCursor(cursor)
		s.grid.SetBreadcrumb(fmt.Sprintf("Saved · %d", len(sorted)))
		return nil

	case BookmarkToggledMsg, UpvotedMsg:
		return LoadSavedRecipesCmd(s.deps.Recipes)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return nil
}

func (s *SavedScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.CapturesInput() {
		return s.updateGrid(msg)
	}

	switch {
	case key.Matches(msg, Keys.Filter):
		s.grid.ToggleFilter()
		return nil

	case key.Matches(msg, Keys.Enter):
		if r := s.grid.SelectedRecipe(); r != nil {
			return NavigateCmd(Route{Kind: RouteDetail, RecipeID: r.ID})
		}
		return nil

	case key.Matches(msg, Keys.Bookmark):
		return s.grid.ClickBookmark()

	case key.Matches(msg, Keys.Upvote):
		if r := s.grid.SelectedRecipe(); r != nil {
			return UpvoteCmd(s.deps.Recipes, r.ID)
		}
		return nil

	case key.Matches(msg, Keys.Ingredients):
		if r := s.grid.SelectedRecipe(); r != nil {
			return AddIngredientsCmd(s.deps.Grocery, r)
		}
		return nil
	}

	return s.updateGrid(msg)
}

func (s *SavedScreen) updateGrid(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.grid, cmd = s.grid.Update(msg)
	return cmd
}

// View renders the grid
func (s *SavedScreen) View() string {
	return s.grid.View()
}
