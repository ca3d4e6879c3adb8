package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/sous/internal/tui/components"
	"github.com/mmcdole/sous/internal/tui/styles"
)

// ApplicationState represents the current mode of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
	StateConfirm
)

// Layout constants
const (
	MinWidth     = 60
	MinHeight    = 16
	FooterHeight = 1

	spinnerInterval = 100 * time.Millisecond
	statusTimeout   = 3 * time.Second
)

// Model is the top-level application model. It owns the route stack,
// one live screen per route, and the overlays that sit above whatever
// screen is current.
type Model struct {
	State ApplicationState
	Ready bool

	deps *Services

	// routes and screens move together; screens[i] renders routes[i]
	routes  *RouteStack
	screens []Screen

	search    components.SearchOverlay
	sortModal components.SortModal

	confirmPrompt string
	confirmCmd    tea.Cmd

	StatusMessage string
	StatusIsError bool

	Width  int
	Height int
}

// NewModel creates the application model rooted at the home screen
func NewModel(deps *Services) Model {
	return Model{
		State:     StateBrowsing,
		deps:      deps,
		routes:    NewRouteStack(),
		screens:   []Screen{NewHomeScreen(deps)},
		search:    components.NewSearchOverlay(),
		sortModal: components.NewSortModal(),
	}
}

// topScreen returns the screen for the current route
func (m *Model) topScreen() Screen {
	return m.screens[len(m.screens)-1]
}

// Init starts the home screen, the spinner tick, and the search index
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.screens[0].Init(),
		TickCmd(spinnerInterval),
		IndexSearchCmd(m.deps.Recipes, m.deps.Search),
	}

	// A configured start screen is pushed on top of home so that
	// backing out still lands on home
	if m.deps.Config != nil {
		if r := ParseRoute("/" + m.deps.Config.UI.DefaultScreen); r.Kind != RouteHome {
			cmds = append(cmds, NavigateCmd(r))
		}
	}
	return tea.Batch(cmds...)
}

// Update handles all incoming messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		// Wheel scrolling maps to cursor movement on the top screen
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return m, m.topScreen().Update(tea.KeyMsg{Type: tea.KeyUp})
		case tea.MouseButtonWheelDown:
			return m, m.topScreen().Update(tea.KeyMsg{Type: tea.KeyDown})
		}
		return m, nil

	case TickMsg:
		return m, tea.Batch(TickCmd(spinnerInterval), m.topScreen().Update(msg))

	case NavigateMsg:
		return m, m.navigate(msg)

	case NavigateBackMsg:
		return m, m.handleBack()

	case ShowConfirmMsg:
		m.State = StateConfirm
		m.confirmPrompt = msg.Prompt
		m.confirmCmd, _ = msg.Confirm.(tea.Cmd)
		return m, nil

	case SearchIndexReadyMsg:
		if m.search.IsVisible() && m.search.Query() != "" {
			m.search.SetResults(m.deps.Search.FilterLocal(m.search.Query()))
		}
		return m, nil

	case ErrMsg:
		m.StatusMessage = msg.Error()
		m.StatusIsError = true
		return m, tea.Batch(ClearStatusCmd(statusTimeout), m.topScreen().Update(msg))

	case StatusMsg:
		m.StatusMessage = msg.Message
		m.StatusIsError = msg.IsError
		return m, ClearStatusCmd(statusTimeout)

	case ClearStatusMsg:
		m.StatusMessage = ""
		m.StatusIsError = false
		return m, nil
	}

	// Everything else is screen data; surface a status line for the
	// mutations and let the current screen react
	var cmds []tea.Cmd
	if text, ok := statusText(msg); ok {
		m.StatusMessage = text
		m.StatusIsError = false
		cmds = append(cmds, ClearStatusCmd(statusTimeout))
	}
	cmds = append(cmds, m.topScreen().Update(msg))
	return m, tea.Batch(cmds...)
}

// statusText maps result messages to the line shown in the footer
func statusText(msg tea.Msg) (string, bool) {
	switch msg := msg.(type) {
	case BookmarkToggledMsg:
		if msg.Bookmarked {
			return "Saved to your recipes", true
		}
		return "Removed from saved", true
	case UpvotedMsg:
		return fmt.Sprintf("Upvoted · now %s", components.FormatUpvotes(msg.Upvotes)), true
	case RecipeSavedMsg:
		return fmt.Sprintf("Saved %q", msg.Title), true
	case RecipeDeletedMsg:
		return fmt.Sprintf("Deleted %q", msg.Title), true
	case RecipeImportedMsg:
		return fmt.Sprintf("Imported %q, review and save", msg.Recipe.Title), true
	case GroceryItemAddedMsg:
		return fmt.Sprintf("Added %q to groceries", msg.Item.Label), true
	case IngredientsAddedMsg:
		return fmt.Sprintf("%d ingredients from %q added to groceries", msg.Count, msg.Title), true
	case CheckedClearedMsg:
		return fmt.Sprintf("Cleared %d checked items", msg.Count), true
	case SlotAssignedMsg:
		if msg.RecipeID == 0 {
			return "Slot cleared", true
		}
		return "Meal planned", true
	case PlanClearedMsg:
		return "Week plan cleared", true
	case CookedRecordedMsg:
		return "Added to your cooking history", true
	case ProfileSavedMsg:
		return "Profile updated", true
	case SourceOpenedMsg:
		return "Opened in your browser", true
	}
	return "", false
}

// navigate pushes a new screen for the route. Navigating home always
// collapses the stack back to the root.
func (m *Model) navigate(msg NavigateMsg) tea.Cmd {
	if msg.Route.Kind == RouteHome {
		return m.resetTo(Route{Kind: RouteHome})
	}

	screen := newScreenFor(msg.Route, m.deps, msg.Recipe)
	if msg.Replace && m.routes.Len() > 1 {
		m.routes.Replace(msg.Route)
		m.screens[len(m.screens)-1] = screen
	} else {
		m.routes.Push(msg.Route, m.topScreen().Cursor())
		m.screens = append(m.screens, screen)
	}
	m.updateLayout()
	return screen.Init()
}

// resetTo collapses the stack to home, then opens the section on top
// of it. The home screen instance survives so its cursor holds.
func (m *Model) resetTo(route Route) tea.Cmd {
	m.routes.Reset(Route{Kind: RouteHome})
	m.screens = m.screens[:1]
	m.updateLayout()

	if route.Kind == RouteHome {
		return m.screens[0].Refresh()
	}

	screen := newScreenFor(route, m.deps, nil)
	m.routes.Push(route, m.screens[0].Cursor())
	m.screens = append(m.screens, screen)
	m.updateLayout()
	return screen.Init()
}

// handleBack pops the current screen and restores the one beneath it.
// At the root there is nothing to pop.
func (m *Model) handleBack() tea.Cmd {
	if bo, ok := m.topScreen().(backOverrider); ok {
		if cmd := bo.HandleBack(); cmd != nil {
			return cmd
		}
	}

	_, savedCursor, ok := m.routes.Pop()
	if !ok {
		return nil
	}
	m.screens = m.screens[:len(m.screens)-1]
	top := m.topScreen()
	top.SetCursor(savedCursor)
	m.updateLayout()
	return top.Refresh()
}

// handleKeyMsg routes keyboard input by precedence: modal states
// first, then overlays, then screens that are capturing text, then
// the global bindings, and finally the screen itself.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.State == StateHelp {
		m.State = StateBrowsing
		return m, nil
	}

	if m.State == StateConfirm {
		switch {
		case key.Matches(msg, Keys.Confirm):
			cmd := m.confirmCmd
			m.confirmCmd = nil
			m.confirmPrompt = ""
			m.State = StateBrowsing
			return m, cmd
		case key.Matches(msg, Keys.Deny):
			m.confirmCmd = nil
			m.confirmPrompt = ""
			m.State = StateBrowsing
			return m, nil
		}
		return m, nil
	}

	if m.search.IsVisible() {
		var cmd tea.Cmd
		var selected bool
		m.search, cmd, selected = m.search.Update(msg)
		if selected {
			if r := m.search.Selected(); r != nil {
				m.search.Hide()
				return m, NavigateCmd(Route{Kind: RouteDetail, RecipeID: r.ID})
			}
		}
		if m.search.QueryChanged() {
			m.search.SetResults(m.deps.Search.FilterLocal(m.search.Query()))
		}
		return m, cmd
	}

	if m.sortModal.IsVisible() {
		_, selection := m.sortModal.HandleKey(msg.String())
		if selection != nil {
			if srt, ok := m.topScreen().(sortable); ok {
				srt.ApplySort(*selection)
			}
		}
		return m, nil
	}

	if m.topScreen().CapturesInput() {
		return m, m.topScreen().Update(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Search):
		m.search.Show()
		return m, tea.Batch(m.search.Init(), IndexSearchCmd(m.deps.Recipes, m.deps.Search))

	case key.Matches(msg, Keys.Sort):
		if srt, ok := m.topScreen().(sortable); ok {
			field, dir := srt.SortState()
			m.sortModal.Show(srt.SortOptions(), field, dir)
			return m, nil
		}
		return m, m.topScreen().Update(msg)

	case key.Matches(msg, Keys.Refresh):
		return m, m.topScreen().Refresh()

	case key.Matches(msg, Keys.Back):
		return m, m.handleBack()

	case key.Matches(msg, Keys.GotoHome):
		return m, m.resetTo(Route{Kind: RouteHome})

	case key.Matches(msg, Keys.GotoMyRecipes):
		return m, m.resetTo(Route{Kind: RouteMyRecipes})

	case key.Matches(msg, Keys.GotoSaved):
		return m, m.resetTo(Route{Kind: RouteSaved})

	case key.Matches(msg, Keys.GotoPlanner):
		return m, m.resetTo(Route{Kind: RoutePlanner})

	case key.Matches(msg, Keys.GotoGrocery):
		return m, m.resetTo(Route{Kind: RouteGrocery})

	case key.Matches(msg, Keys.GotoProfile):
		return m, m.resetTo(Route{Kind: RouteProfile})

	case key.Matches(msg, Keys.Add):
		return m, NavigateCmd(Route{Kind: RouteAdd})
	}

	return m, m.topScreen().Update(msg)
}

// updateLayout pushes the window size into every live screen and the
// overlays
func (m *Model) updateLayout() {
	if !m.Ready {
		return
	}
	contentHeight := m.Height - FooterHeight
	if contentHeight < 1 {
		contentHeight = 1
	}
	for _, s := range m.screens {
		s.SetSize(m.Width, contentHeight)
	}
	m.search.SetSize(m.Width, contentHeight)
}

// View renders the current screen with the footer, or whichever
// overlay is active in its place
func (m Model) View() string {
	if !m.Ready {
		return "Starting sous..."
	}
	if m.Width < MinWidth || m.Height < MinHeight {
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center,
			styles.DimStyle.Render(fmt.Sprintf("Terminal too small (need %dx%d)", MinWidth, MinHeight)))
	}

	contentHeight := m.Height - FooterHeight
	var content string
	switch {
	case m.search.IsVisible():
		content = m.search.View()
	case m.State == StateHelp:
		content = m.renderHelp(contentHeight)
	case m.State == StateConfirm:
		content = m.renderConfirm(contentHeight)
	case m.sortModal.IsVisible():
		content = lipgloss.Place(m.Width, contentHeight, lipgloss.Center, lipgloss.Center, m.sortModal.View())
	default:
		content = m.topScreen().View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderFooter())
}

// renderFooter draws the status line: status or hints on the left,
// help reminder on the right
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.StatusIsError:
		left = styles.ErrorStyle.Render(styles.Truncate(m.StatusMessage, m.Width-12))
	case m.StatusMessage != "":
		left = styles.SuccessStyle.Render(styles.Truncate(m.StatusMessage, m.Width-12))
	default:
		left = styles.DimStyle.Render(styles.Truncate(m.hints(), m.Width-12))
	}

	right := styles.DimStyle.Render("? help")

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return " " + left + strings.Repeat(" ", gap) + right + " "
}

// hints returns the footer hint line for the current route
func (m Model) hints() string {
	switch m.routes.Current().Kind {
	case RouteHome:
		return "enter open · b save · f search · a add · 1-6 screens"
	case RouteMyRecipes:
		return "enter open · e edit · x delete · a add"
	case RouteSaved:
		return "enter open · b unsave"
	case RouteDetail:
		return "enter cook · b save · u upvote · i groceries · o source"
	case RouteAdd:
		return "tab next field · ctrl+s save · esc cancel"
	case RoutePlanner:
		return "enter assign · x clear slot · C clear week · i groceries"
	case RouteGrocery:
		return "space check · n new item · x remove · C clear done"
	case RouteProfile:
		return "e edit profile · enter open recipe"
	case RouteInstruction:
		return "space check step · esc stop cooking"
	case RouteCompletion:
		return "u upvote · b save · enter home"
	case RouteCategory:
		return "enter open · b save · esc back"
	}
	return ""
}

// renderConfirm draws the yes/no modal in place of the content
func (m Model) renderConfirm(contentHeight int) string {
	prompt := m.confirmPrompt
	if prompt == "" {
		prompt = "Are you sure?"
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("Confirm"),
		"",
		prompt,
		"",
		styles.HelpKeyStyle.Render("y")+styles.HelpDescStyle.Render(" yes   ")+
			styles.HelpKeyStyle.Render("n")+styles.HelpDescStyle.Render(" no"),
	)
	return lipgloss.Place(m.Width, contentHeight, lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(body))
}

// renderHelp draws the full key reference in place of the content
func (m Model) renderHelp(contentHeight int) string {
	section := func(title string) string {
		return styles.AccentStyle.Render(title)
	}
	line := func(keys, desc string) string {
		return styles.HelpKeyStyle.Render(fmt.Sprintf("  %-12s", keys)) +
			styles.HelpDescStyle.Render(desc)
	}

	left := strings.Join([]string{
		section("Navigation"),
		line("j/k ↑/↓", "move"),
		line("h/l ←/→", "move across"),
		line("enter", "open / select"),
		line("esc", "back"),
		line("g/G", "first / last"),
		line("ctrl+u/d", "half page"),
		"",
		section("Screens"),
		line("1", "home"),
		line("2", "my recipes"),
		line("3", "saved"),
		line("4", "planner"),
		line("5", "groceries"),
		line("6", "profile"),
		line("a", "add recipe"),
	}, "\n")

	right := strings.Join([]string{
		section("Actions"),
		line("b", "save / unsave"),
		line("u", "upvote"),
		line("c", "start cooking"),
		line("e", "edit"),
		line("x", "delete / clear"),
		line("i", "ingredients to groceries"),
		line("o", "open source page"),
		line("space", "toggle"),
		"",
		section("Lists"),
		line("/", "filter list"),
		line("f", "search everywhere"),
		line("s", "sort"),
		line("r", "refresh"),
		line("q", "quit"),
	}, "\n")

	cols := lipgloss.JoinHorizontal(lipgloss.Top, left, "      ", right)
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("Keyboard Reference"),
		"",
		cols,
		"",
		styles.DimStyle.Render("press any key to close"),
	)

	return lipgloss.Place(m.Width, contentHeight, lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(body))
}
