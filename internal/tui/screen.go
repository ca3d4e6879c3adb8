package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/sous/internal/adapter"
	"github.com/mmcdole/sous/internal/domain"
	"github.com/mmcdole/sous/internal/importer"
	"github.com/mmcdole/sous/internal/service"
	"github.com/mmcdole/sous/internal/tui/components"
)

// Services bundles everything a screen needs to do its work
type Services struct {
	Recipes  *service.RecipeService
	Search   *service.SearchService
	Planner  *service.PlannerService
	Grocery  *service.GroceryService
	Profile  *service.ProfileService
	Importer *importer.Importer
	Opener   *adapter.Opener
	Config   *adapter.Config
	Logger   *slog.Logger
}

// Screen is one navigable page of the app. Screens live on the route
// stack; the top screen gets messages and renders.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	Title() string

	// Cursor preservation across push/pop
	Cursor() int
	SetCursor(pos int)

	// Refresh reloads the screen's data without resetting the cursor,
	// used when a screen is revealed by popping back to it
	Refresh() tea.Cmd

	// CapturesInput reports whether the screen is in a text-entry mode
	// and global key bindings should stand down
	CapturesInput() bool
}

// sortable is implemented by screens whose content the sort modal can
// reorder
type sortable interface {
	SortOptions() []components.SortField
	SortState() (components.SortField, components.SortDirection)
	ApplySort(sel components.SortSelection)
}

// backOverrider lets a screen replace the default pop when the user
// backs out. A nil command falls through to the normal pop.
type backOverrider interface {
	HandleBack() tea.Cmd
}

// newScreenFor builds the screen for a route. The prefill recipe rides
// along for the add screen's edit and import flows.
func newScreenFor(route Route, deps *Services, prefill *domain.Recipe) Screen {
	switch route.Kind {
	case RouteMyRecipes:
		return NewMyRecipesScreen(deps)
	case RouteDetail:
		return NewDetailScreen(deps, route.RecipeID)
	case RouteAdd:
		return NewAddScreen(deps, prefill)
	case RoutePlanner:
		return NewPlannerScreen(deps)
	case RouteGrocery:
		return NewGroceryScreen(deps)
	case RouteProfile:
		return NewProfileScreen(deps)
	case RouteSaved:
		return NewSavedScreen(deps)
	case RouteInstruction:
		return NewInstructionScreen(deps, route.RecipeID)
	case RouteCompletion:
		return NewCompletionScreen(deps, route.RecipeID)
	case RouteCategory:
		return NewCategoryScreen(deps, route.CategoryName)
	default:
		return NewHomeScreen(deps)
	}
}
