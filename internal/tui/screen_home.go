package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/sous/internal/domain"
	"github.com/mmcdole/sous/internal/tui/components"
)

// Category rail proportions
const (
	CategoryPanePercent = 28
	MinPaneWidth        = 18
)

// allCategories is the synthetic rail entry that selects everything
const allCategories = "All"

// HomeScreen is the root screen: every recipe as a card grid, with a
// category rail on the left for drilling into one category.
type HomeScreen struct {
	deps *Services

	grid components.CardGrid
	cats *components.PickerList

	recipes []*domain.Recipe
	sortSel components.SortSelection

	focusGrid bool
	tick      int
	width     int
	height    int
}

// NewHomeScreen creates the home screen
func NewHomeScreen(deps *Services) *HomeScreen {
	grid := components.NewCardGrid(deps.Config.UI.GridColumns)
	grid.SetHideDelete(true)
	grid.SetFocused(true)
	grid.SetBreadcrumb("Home")
	grid.OnBookmark = func(id int) tea.Msg {
		return ToggleBookmarkCmd(deps.Recipes, id)()
	}

	cats := components.NewPickerList("Categories")
	cats.SetFocused(false)

	return &HomeScreen{
		deps:      deps,
		grid:      grid,
		cats:      cats,
		focusGrid: true,
	}
}

// Init loads recipes and categories
func (s *HomeScreen) Init() tea.Cmd {
	s.cats.SetLoading(true)
	return tea.Batch(
		LoadAllRecipesCmd(s.deps.Recipes),
		LoadCategoriesCmd(s.deps.Recipes),
	)
}

// Title returns the screen title
func (s *HomeScreen) Title() string {
	return "Home"
}

// Cursor returns the grid cursor for back-navigation restore
func (s *HomeScreen) Cursor() int {
	return s.grid.Cursor()
}

// SetCursor restores the grid cursor
func (s *HomeScreen) SetCursor(pos int) {
	s.grid.SetCursor(pos)
}

// Refresh reloads data keeping the cursor in place
func (s *HomeScreen) Refresh() tea.Cmd {
	return tea.Batch(
		LoadAllRecipesCmd(s.deps.Recipes),
		LoadCategoriesCmd(s.deps.Recipes),
	)
}

// CapturesInput reports whether a filter input is typing
func (s *HomeScreen) CapturesInput() bool {
	return s.grid.IsFilterTyping() || s.cats.IsFilterTyping()
}

// SetSize splits the width between the category rail and the grid
func (s *HomeScreen) SetSize(width, height int) {
	s.width = width
	s.height = height

	catWidth := width * CategoryPanePercent / 100
	if catWidth < MinPaneWidth {
		catWidth = MinPaneWidth
	}
	s.cats.SetSize(catWidth, height)
	s.grid.SetSize(width-catWidth, height)
}

// SortOptions implements sortable
func (s *HomeScreen) SortOptions() []components.SortField {
	return components.RecipeSortOptions()
}

// SortState implements sortable
func (s *HomeScreen) SortState() (components.SortField, components.SortDirection) {
	return s.sortSel.Field, s.sortSel.Direction
}

// ApplySort implements sortable
func (s *HomeScreen) ApplySort(sel components.SortSelection) {
	s.sortSel = sel
	s.refreshGrid()
}

// refreshGrid re-sorts the working copy and pushes it into the grid
func (s *HomeScreen) refreshGrid() {
	sorted := make([]*domain.Recipe, len(s.recipes))
	copy(sorted, s.recipes)
	components.SortRecipes(sorted, s.sortSel)

	if s.grid.IsEmpty() {
		s.grid.SetRecipes(sorted)
	} else {
		s.grid.Refresh(sorted)
	}
	s.grid.SetBreadcrumb(fmt.Sprintf("Home · %d recipes", len(sorted)))
}

// Update handles messages
func (s *HomeScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case RecipesLoadedMsg:
		s.recipes = msg.Recipes
		s.refreshGrid()
		return nil

	case CategoriesLoadedMsg:
		s.cats.SetLoading(false)
		total := 0
		for _, c := range msg.Categories {
			total += c.Count
		}
		rows := make([]components.Row, 0, len(msg.Categories)+1)
		rows = append(rows, components.CategoryRow{
			Category: domain.CategoryCount{Name: allCategories, Count: total},
		})
		rows = append(rows, components.WrapCategories(msg.Categories)...)
		s.cats.RefreshRows(rows)
		return nil

	case BookmarkToggledMsg, UpvotedMsg:
		return LoadAllRecipesCmd(s.deps.Recipes)

	case TickMsg:
		s.tick++
		s.cats.SetSpinnerFrame(s.tick)
		return nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return nil
}

func (s *HomeScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	// A typing filter input owns the keyboard
	if s.CapturesInput() {
		return s.updateFocused(msg)
	}

	switch {
	case msg.String() == "tab":
		s.focusGrid = !s.focusGrid
		s.grid.SetFocused(s.focusGrid)
		s.cats.SetFocused(!s.focusGrid)
		return nil

	case key.Matches(msg, Keys.Filter):
		if s.focusGrid {
			s.grid.ToggleFilter()
		} else {
			s.cats.ToggleFilter()
		}
		return nil

	case key.Matches(msg, Keys.Enter):
		return s.openSelection()

	case key.Matches(msg, Keys.Bookmark):
		if s.focusGrid {
			return s.grid.ClickBookmark()
		}
		return nil

	case key.Matches(msg, Keys.Upvote):
		if r := s.selectedRecipe(); r != nil {
			return UpvoteCmd(s.deps.Recipes, r.ID)
		}
		return nil

	case key.Matches(msg, Keys.Ingredients):
		if r := s.selectedRecipe(); r != nil {
			return AddIngredientsCmd(s.deps.Grocery, r)
		}
		return nil
	}

	return s.updateFocused(msg)
}

// openSelection opens the recipe under the cursor, or drills into the
// selected category
func (s *HomeScreen) openSelection() tea.Cmd {
	if s.focusGrid {
		if r := s.grid.SelectedRecipe(); r != nil {
			return NavigateCmd(Route{Kind: RouteDetail, RecipeID: r.ID})
		}
		return nil
	}

	row := s.cats.SelectedRow()
	cr, ok := row.(components.CategoryRow)
	if !ok {
		return nil
	}
	if cr.Category.Name == allCategories {
		s.focusGrid = true
		s.grid.SetFocused(true)
		s.cats.SetFocused(false)
		return nil
	}
	return NavigateCmd(Route{Kind: RouteCategory, CategoryName: cr.Category.Name})
}

func (s *HomeScreen) selectedRecipe() *domain.Recipe {
	if !s.focusGrid {
		return nil
	}
	return s.grid.SelectedRecipe()
}

// updateFocused routes remaining input to the focused pane
func (s *HomeScreen) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if s.focusGrid {
		s.grid, cmd = s.grid.Update(msg)
		return cmd
	}
	s.cats, cmd = s.cats.Update(msg)
	return cmd
}

// View renders the category rail beside the grid
func (s *HomeScreen) View() string {
	return lipgloss.JoinHorizontal(lipgloss.Top, s.cats.View(), s.grid.View())
}
