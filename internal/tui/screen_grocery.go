package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/sous/internal/tui/components"
)

// GroceryScreen is the shopping list: check items off, add new ones,
// sweep the checked ones away.
type GroceryScreen struct {
	deps *Services

	list     *components.PickerList
	addModal components.InputModal

	tick   int
	width  int
	height int
}

// NewGroceryScreen creates the grocery list screen
func NewGroceryScreen(deps *Services) *GroceryScreen {
	list := components.NewPickerList("Groceries")
	list.SetFocused(true)

	return &GroceryScreen{
		deps:     deps,
		list:     list,
		addModal: components.NewInputModal(),
	}
}

// Init loads the list
func (s *GroceryScreen) Init() tea.Cmd {
	s.list.SetLoading(true)
	return LoadGroceryCmd(s.deps.Grocery)
}

// Title returns the screen title
func (s *GroceryScreen) Title() string {
	return "Groceries"
}

// Cursor returns the list cursor
func (s *GroceryScreen) Cursor() int {
	return s.list.SelectedIndex()
}

// SetCursor restores the list cursor
func (s *GroceryScreen) SetCursor(pos int) {
	s.list.SetSelectedIndex(pos)
}

// Refresh reloads the list
func (s *GroceryScreen) Refresh() tea.Cmd {
	return LoadGroceryCmd(s.deps.Grocery)
}

// CapturesInput reports whether the add modal or filter is typing
func (s *GroceryScreen) CapturesInput() bool {
	return s.addModal.IsVisible() || s.list.IsFilterTyping()
}

// SetSize sizes the list
func (s *GroceryScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.list.SetSize(width, height)
}

func (s *GroceryScreen) selectedItem() (components.GroceryRow, bool) {
	row, ok := s.list.SelectedRow().(components.GroceryRow)
	return row, ok
}

// Update handles messages
func (s *GroceryScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case GroceryLoadedMsg:
		s.list.SetLoading(false)
		done := 0
		for _, item := range msg.Items {
			if item.Done {
				done++
			}
		}
		s.list.RefreshRows(components.WrapGroceryItems(msg.Items))
		s.list.SetTitle(fmt.Sprintf("Groceries · %d/%d done", done, len(msg.Items)))
		return nil

	case GroceryItemAddedMsg, GroceryToggledMsg, GroceryRemovedMsg, CheckedClearedMsg:
		return LoadGroceryCmd(s.deps.Grocery)

	case TickMsg:
		s.tick++
		s.list.SetSpinnerFrame(s.tick)
		return nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return nil
}

func (s *GroceryScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.addModal.IsVisible() {
		var cmd tea.Cmd
		var submitted bool
		s.addModal, cmd, submitted = s.addModal.Update(msg)
		if submitted {
			label := strings.TrimSpace(s.addModal.Value())
			s.addModal.Hide()
			if label == "" {
				return cmd
			}
			return tea.Batch(cmd, AddGroceryItemCmd(s.deps.Grocery, label))
		}
		return cmd
	}
	if s.list.IsFilterTyping() {
		return s.updateList(msg)
	}

	switch {
	case key.Matches(msg, Keys.Toggle), key.Matches(msg, Keys.Enter):
		if row, ok := s.selectedItem(); ok {
			return ToggleGroceryCmd(s.deps.Grocery, row.Item.ID)
		}
		return nil

	case key.Matches(msg, Keys.New):
		s.addModal.Show("Add Grocery Item", "2 lemons")
		return nil

	case key.Matches(msg, Keys.Delete):
		if row, ok := s.selectedItem(); ok {
			return RemoveGroceryCmd(s.deps.Grocery, row.Item.ID)
		}
		return nil

	case key.Matches(msg, Keys.ClearDone):
		return func() tea.Msg {
			return ShowConfirmMsg{
				Prompt:  "Remove all checked items?",
				Confirm: ClearCheckedCmd(s.deps.Grocery),
			}
		}

	case key.Matches(msg, Keys.Filter):
		s.list.ToggleFilter()
		return nil
	}

	return s.updateList(msg)
}

func (s *GroceryScreen) updateList(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return cmd
}

// View renders the list, with the add modal centered on top
func (s *GroceryScreen) View() string {
	if s.addModal.IsVisible() {
		return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, s.addModal.View())
	}
	return s.list.View()
}
