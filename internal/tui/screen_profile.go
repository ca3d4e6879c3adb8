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

const profileHistoryLimit = 20

// ProfileScreen shows the local identity, cooking stats, and the
// recent cooking history.
type ProfileScreen struct {
	deps *Services

	profile *domain.Profile
	stats   domain.CookStats

	history   *components.PickerList
	editModal components.InputModal

	// pendingName holds the submitted name while the cuisine modal is
	// still open
	pendingName *string

	tick   int
	width  int
	height int
}

// NewProfileScreen creates the profile screen
func NewProfileScreen(deps *Services) *ProfileScreen {
	history := components.NewPickerList("Cooking History")
	history.SetFocused(true)

	return &ProfileScreen{
		deps:      deps,
		history:   history,
		editModal: components.NewInputModal(),
	}
}

// Init loads profile, stats, and history
func (s *ProfileScreen) Init() tea.Cmd {
	s.history.SetLoading(true)
	return LoadProfileCmd(s.deps.Profile, s.deps.Recipes)
}

// Title returns the screen title
func (s *ProfileScreen) Title() string {
	return "Profile"
}

// Cursor returns the history cursor
func (s *ProfileScreen) Cursor() int {
	return s.history.SelectedIndex()
}

// SetCursor restores the history cursor
func (s *ProfileScreen) SetCursor(pos int) {
	s.history.SetSelectedIndex(pos)
}

// Refresh reloads everything
func (s *ProfileScreen) Refresh() tea.Cmd {
	return LoadProfileCmd(s.deps.Profile, s.deps.Recipes)
}

// CapturesInput reports whether the edit modal or filter is typing
func (s *ProfileScreen) CapturesInput() bool {
	return s.editModal.IsVisible() || s.history.IsFilterTyping()
}

// SetSize splits the height between the stats block and the history
func (s *ProfileScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	listHeight := height - s.statsHeight()
	if listHeight < 4 {
		listHeight = 4
	}
	s.history.SetSize(width, listHeight)
}

func (s *ProfileScreen) statsHeight() int {
	return 7 // name, cuisine, joined, blank, counters, blank, hint
}

// Update handles messages
func (s *ProfileScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ProfileLoadedMsg:
		s.history.SetLoading(false)
		s.profile = msg.Profile
		s.stats = msg.Stats
		rows := make([]components.Row, 0, len(msg.History))
		for _, entry := range msg.History {
			rows = append(rows, components.HistoryRow{
				Entry: entry,
				Title: msg.Titles[entry.RecipeID],
			})
		}
		s.history.RefreshRows(rows)
		s.history.SetTitle(fmt.Sprintf("Cooking History · last %d", profileHistoryLimit))
		return nil

	case ProfileSavedMsg:
		s.profile = msg.Profile
		return LoadProfileCmd(s.deps.Profile, s.deps.Recipes)

	case CookedRecordedMsg:
		return LoadProfileCmd(s.deps.Profile, s.deps.Recipes)

	case TickMsg:
		s.tick++
		s.history.SetSpinnerFrame(s.tick)
		return nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return nil
}

func (s *ProfileScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.editModal.IsVisible() {
		return s.handleModalKey(msg)
	}
	if s.history.IsFilterTyping() {
		return s.updateList(msg)
	}

	switch {
	case key.Matches(msg, Keys.Edit):
		name := ""
		if s.profile != nil {
			name = s.profile.Name
		}
		s.pendingName = nil
		s.editModal.ShowWithValue("Your Name", name)
		return nil

	case key.Matches(msg, Keys.Enter):
		if row, ok := s.history.SelectedRow().(components.HistoryRow); ok {
			return NavigateCmd(Route{Kind: RouteDetail, RecipeID: row.Entry.RecipeID})
		}
		return nil

	case key.Matches(msg, Keys.Filter):
		s.history.ToggleFilter()
		return nil
	}

	return s.updateList(msg)
}

// handleModalKey walks the two-step edit: name first, cuisine second
func (s *ProfileScreen) handleModalKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	var submitted bool
	s.editModal, cmd, submitted = s.editModal.Update(msg)
	if !submitted {
		return cmd
	}

	value := strings.TrimSpace(s.editModal.Value())
	s.editModal.Hide()

	if s.pendingName == nil {
		name := value
		s.pendingName = &name
		cuisine := ""
		if s.profile != nil {
			cuisine = s.profile.FavoriteCuisine
		}
		s.editModal.ShowWithValue("Favorite Cuisine", cuisine)
		return cmd
	}

	name := *s.pendingName
	s.pendingName = nil
	return tea.Batch(cmd, SaveProfileCmd(s.deps.Profile, name, value))
}

func (s *ProfileScreen) updateList(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.history, cmd = s.history.Update(msg)
	return cmd
}

// renderStats draws the identity block above the history list
func (s *ProfileScreen) renderStats() string {
	var b strings.Builder

	name := "Anonymous Cook"
	cuisine := ""
	joined := ""
	if s.profile != nil {
		if s.profile.Name != "" {
			name = s.profile.Name
		}
		cuisine = s.profile.FavoriteCuisine
		if !s.profile.JoinedAt.IsZero() {
			joined = s.profile.JoinedAt.Format("Jan 2006")
		}
	}

	b.WriteString(styles.TitleStyle.Render(styles.Truncate(name, s.width-4)))
	b.WriteString("\n")
	if cuisine != "" {
		b.WriteString(styles.SubtitleStyle.Render("loves " + cuisine + " food"))
	} else {
		b.WriteString(styles.DimStyle.Render("no favorite cuisine yet"))
	}
	b.WriteString("\n")
	if joined != "" {
		b.WriteString(styles.DimStyle.Render("cooking here since " + joined))
	} else {
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	counters := []string{
		styles.AccentStyle.Render(fmt.Sprintf("%d cooked", s.stats.Cooked)),
		styles.SuccessStyle.Render(fmt.Sprintf("%d saved", s.stats.Saved)),
		styles.SubtitleStyle.Render(fmt.Sprintf("%d created", s.stats.Created)),
	}
	b.WriteString(strings.Join(counters, "   "))
	b.WriteString("\n\n")
	b.WriteString(styles.DimStyle.Render("e: Edit Profile"))

	return b.String()
}

// View renders the stats block over the history list, with the edit
// modal centered on top
func (s *ProfileScreen) View() string {
	if s.editModal.IsVisible() {
		return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, s.editModal.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, s.renderStats(), s.history.View())
}
