package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/sous/internal/domain"
	"github.com/mmcdole/sous/internal/tui/components"
)

// CategoryScreen lists every recipe in one category. An empty category
// name is the decode fallback and lists the whole collection.
type CategoryScreen struct {
	deps     *Services
	category string
	label    string

	grid    components.CardGrid
	recipes []*domain.Recipe
	sortSel components.SortSelection

	width  int
	height int
}

// NewCategoryScreen creates a grid scoped to a single category
func NewCategoryScreen(deps *Services, category string) *CategoryScreen {
	label := category
	if label == "" {
		label = "All Recipes"
	}

	grid := components.NewCardGrid(deps.Config.UI.GridColumns)
	grid.SetHideDelete(true)
	grid.SetFocused(true)
	grid.SetBreadcrumb("Home > " + label)
	grid.OnBookmark = func(id int) tea.Msg {
		return ToggleBookmarkCmd(deps.Recipes, id)()
	}

	return &CategoryScreen{
		deps:     deps,
		category: category,
		label:    label,
		grid:     grid,
	}
}

// Init loads the category's recipes
func (s *CategoryScreen) Init() tea.Cmd {
	return LoadCategoryRecipesCmd(s.deps.Recipes, s.category)
}

// Title returns the category name
func (s *CategoryScreen) Title() string {
	return s.label
}

// Cursor returns the grid cursor
func (s *CategoryScreen) Cursor() int {
	return s.grid.Cursor()
}

// SetCursor restores the grid cursor
func (s *CategoryScreen) SetCursor(pos int) {
	s.grid.SetCursor(pos)
}

// Refresh reloads without resetting the cursor
func (s *CategoryScreen) Refresh() tea.Cmd {
	return LoadCategoryRecipesCmd(s.deps.Recipes, s.category)
}

// CapturesInput reports whether the grid filter is typing
func (s *CategoryScreen) CapturesInput() bool {
	return s.grid.IsFilterTyping()
}

// SetSize sizes the grid
func (s *CategoryScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.grid.SetSize(width, height)
}

// SortOptions implements sortable
func (s *CategoryScreen) SortOptions() []components.SortField {
	return components.RecipeSortOptions()
}

// SortState implements sortable
func (s *CategoryScreen) SortState() (components.SortField, components.SortDirection) {
	return s.sortSel.Field, s.sortSel.Direction
}

// ApplySort implements sortable
func (s *CategoryScreen) ApplySort(sel components.SortSelection) {
	s.sortSel = sel
	s.refreshGrid()
}

func (s *CategoryScreen) refreshGrid() {
	sorted := make([]*domain.Recipe, len(s.recipes))
	copy(sorted, s.recipes)
	components.SortRecipes(sorted, s.sortSel)

	if s.grid.IsEmpty() {
		s.grid.SetRecipes(sorted)
	} else {
		s.grid.Refresh(sorted)
	}
	s.grid.SetBreadcrumb(fmt.Sprintf("Home > %s · %d recipes", s.label, len(sorted)))
}

// Update handles messages
func (s *CategoryScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case CategoryRecipesLoadedMsg:
		if msg.Category != s.category {
			return nil
		}
		s.recipes = msg.Recipes
		s.refreshGrid()
		return nil

	case BookmarkToggledMsg, UpvotedMsg:
		return LoadCategoryRecipesCmd(s.deps.Recipes, s.category)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return nil
}

func (s *CategoryScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
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

func (s *CategoryScreen) updateGrid(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.grid, cmd = s.grid.Update(msg)
	return cmd
}

// View renders the grid
func (s *CategoryScreen) View() string {
	return s.grid.View()
}
