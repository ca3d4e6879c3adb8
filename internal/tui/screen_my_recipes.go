package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/sous/internal/domain"
	"github.com/mmcdole/sous/internal/tui/components"
)

// MyRecipesScreen lists the user's own recipes with edit and delete
type MyRecipesScreen struct {
	deps *Services

	grid    components.CardGrid
	recipes []*domain.Recipe
	sortSel components.SortSelection

	width  int
	height int
}

// NewMyRecipesScreen creates the my-recipes grid
func NewMyRecipesScreen(deps *Services) *MyRecipesScreen {
	grid := components.NewCardGrid(deps.Config.UI.GridColumns)
	grid.SetHideDelete(false)
	grid.SetFocused(true)
	grid.SetBreadcrumb("My Recipes")
	grid.OnBookmark = func(id int) tea.Msg {
		return ToggleBookmarkCmd(deps.Recipes, id)()
	}
	grid.OnDelete = func(id int) tea.Msg {
		return ConfirmDeleteCmd(deps.Recipes, id)()
	}

	return &MyRecipesScreen{
		deps: deps,
		grid: grid,
	}
}

// Init loads the user's recipes
func (s *MyRecipesScreen) Init() tea.Cmd {
	return LoadMyRecipesCmd(s.deps.Recipes)
}

// Title returns the screen title
func (s *MyRecipesScreen) Title() string {
	return "My Recipes"
}

// Cursor returns the grid cursor
func (s *MyRecipesScreen) Cursor() int {
	return s.grid.Cursor()
}

// SetCursor restores the grid cursor
func (s *MyRecipesScreen) SetCursor(pos int) {
	s.grid.SetCursor(pos)
}

// Refresh reloads without resetting the cursor
func (s *MyRecipesScreen) Refresh() tea.Cmd {
	return LoadMyRecipesCmd(s.deps.Recipes)
}

// CapturesInput reports whether the grid filter is typing
func (s *MyRecipesScreen) CapturesInput() bool {
	return s.grid.IsFilterTyping()
}

// SetSize sizes the grid
func (s *MyRecipesScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.grid.SetSize(width, height)
}

// SortOptions implements sortable
func (s *MyRecipesScreen) SortOptions() []components.SortField {
	return components.RecipeSortOptions()
}

// SortState implements sortable
func (s *MyRecipesScreen) SortState() (components.SortField, components.SortDirection) {
	return s.sortSel.Field, s.sortSel.Direction
}

// ApplySort implements sortable
func (s *MyRecipesScreen) ApplySort(sel components.SortSelection) {
	s.sortSel = sel
	s.refreshGrid()
}

func (s *MyRecipesScreen) refreshGrid() {
	sorted := make([]*domain.Recipe, len(s.recipes))
	copy(sorted, s.recipes)
	components.SortRecipes(sorted, s.sortSel)

	if s.grid.IsEmpty() {
		s.grid.SetRecipes(sorted)
	} else {
		s.grid.Refresh(sorted)
	}
	s.grid.SetBreadcrumb(fmt.Sprintf("My Recipes · %d", len(sorted)))
}

// Update handles messages
func (s *MyRecipesScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case MyRecipesLoadedMsg:
		s.recipes = msg.Recipes
		s.refreshGrid()
		return nil

	case BookmarkToggledMsg, UpvotedMsg, RecipeDeletedMsg:
		return LoadMyRecipesCmd(s.deps.Recipes)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return nil
}

func (s *MyRecipesScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
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

	case key.Matches(msg, Keys.Delete):
		return s.grid.ClickDelete()

	case key.Matches(msg, Keys.Edit):
		if r := s.grid.SelectedRecipe(); r != nil {
			return func() tea.Msg {
				return NavigateMsg{Route: Route{Kind: RouteAdd}, Recipe: r}
			}
		}
		return nil

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

func (s *MyRecipesScreen) updateGrid(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.grid, cmd = s.grid.Update(msg)
	return cmd
}

// View renders the grid
func (s *MyRecipesScreen) View() string {
	return s.grid.View()
}
