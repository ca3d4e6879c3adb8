package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/sous/internal/domain"
	"github.com/mmcdole/sous/internal/tui/components"
)

// PlannerScreen shows the week as 21 meal slots and assigns recipes
// to them through a picker modal.
type PlannerScreen struct {
	deps *Services

	list   *components.PickerList
	picker components.RecipePicker

	plan       *domain.WeekPlan
	allRecipes []*domain.Recipe

	tick   int
	width  int
	height int
}

// NewPlannerScreen creates the week planner
func NewPlannerScreen(deps *Services) *PlannerScreen {
	list := components.NewPickerList("Week Plan")
	list.SetFocused(true)

	return &PlannerScreen{
		deps:   deps,
		list:   list,
		picker: components.NewRecipePicker(),
	}
}

// Init loads the plan and the recipes the picker offers
func (s *PlannerScreen) Init() tea.Cmd {
	s.list.SetLoading(true)
	return tea.Batch(
		LoadPlanCmd(s.deps.Planner, s.deps.Recipes),
		LoadAllRecipesCmd(s.deps.Recipes),
	)
}

// Title returns the screen title
func (s *PlannerScreen) Title() string {
	return "Planner"
}

// Cursor returns the list cursor
func (s *PlannerScreen) Cursor() int {
	return s.list.SelectedIndex()
}

// SetCursor restores the list cursor
func (s *PlannerScreen) SetCursor(pos int) {
	s.list.SetSelectedIndex(pos)
}

// Refresh reloads the plan
func (s *PlannerScreen) Refresh() tea.Cmd {
	return tea.Batch(
		LoadPlanCmd(s.deps.Planner, s.deps.Recipes),
		LoadAllRecipesCmd(s.deps.Recipes),
	)
}

// CapturesInput reports whether the picker or the list filter is open
func (s *PlannerScreen) CapturesInput() bool {
	return s.picker.IsVisible() || s.list.IsFilterTyping()
}

// SetSize sizes the list and the picker
func (s *PlannerScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.list.SetSize(width, height)
	s.picker.SetSize(width, height)
}

// selectedSlot returns the slot under the cursor
func (s *PlannerScreen) selectedSlot() (components.PlanSlotRow, bool) {
	row, ok := s.list.SelectedRow().(components.PlanSlotRow)
	return row, ok
}

// Update handles messages
func (s *PlannerScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PlanLoadedMsg:
		s.list.SetLoading(false)
		s.plan = msg.Plan
		rows := make([]components.Row, 0, len(msg.Plan.Days)*3)
		for day := range msg.Plan.Days {
			for _, slot := range domain.MealSlots() {
				id := msg.Plan.Days[day].Get(slot)
				rows = append(rows, components.PlanSlotRow{
					Day:         day,
					Slot:        slot,
					RecipeTitle: msg.Titles[id],
				})
			}
		}
		s.list.RefreshRows(rows)
		s.list.SetTitle(fmt.Sprintf("Week Plan · %d/21 planned", msg.Plan.Assigned()))
		return nil

	case RecipesLoadedMsg:
		s.allRecipes = msg.Recipes
		return nil

	case SlotAssignedMsg, PlanClearedMsg:
		return LoadPlanCmd(s.deps.Planner, s.deps.Recipes)

	case TickMsg:
		s.tick++
		s.list.SetSpinnerFrame(s.tick)
		return nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return nil
}

func (s *PlannerScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.picker.IsVisible() {
		return s.handlePickerKey(msg)
	}
	if s.list.IsFilterTyping() {
		return s.updateList(msg)
	}

	switch {
	case key.Matches(msg, Keys.Enter):
		row, ok := s.selectedSlot()
		if !ok {
			return nil
		}
		label := fmt.Sprintf("%s %s", domain.DayNames()[row.Day], row.Slot)
		s.picker.Show(label, s.allRecipes)
		return nil

	case key.Matches(msg, Keys.Delete):
		row, ok := s.selectedSlot()
		if !ok || row.RecipeTitle == "" {
			return nil
		}
		return ClearSlotCmd(s.deps.Planner, row.Day, row.Slot)

	case key.Matches(msg, Keys.ClearDone):
		if s.plan == nil || s.plan.Assigned() == 0 {
			return nil
		}
		return func() tea.Msg {
			return ShowConfirmMsg{
				Prompt:  "Clear the whole week plan?",
				Confirm: ClearPlanCmd(s.deps.Planner),
			}
		}

	case key.Matches(msg, Keys.Ingredients):
		row, ok := s.selectedSlot()
		if !ok || row.RecipeTitle == "" {
			return nil
		}
		if r := s.recipeForSlot(row); r != nil {
			return AddIngredientsCmd(s.deps.Grocery, r)
		}
		return nil

	case key.Matches(msg, Keys.Filter):
		s.list.ToggleFilter()
		return nil
	}

	return s.updateList(msg)
}

func (s *PlannerScreen) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	handled, shouldClose, shouldApply := s.picker.HandleKeyMsg(msg)
	if !handled {
		return nil
	}

	var cmd tea.Cmd
	if shouldApply {
		if row, ok := s.selectedSlot(); ok {
			if r := s.picker.Selected(); r != nil {
				cmd = AssignSlotCmd(s.deps.Planner, row.Day, row.Slot, r.ID)
			} else {
				cmd = ClearSlotCmd(s.deps.Planner, row.Day, row.Slot)
			}
		}
	}
	if shouldClose {
		s.picker.Hide()
	}
	return cmd
}

// recipeForSlot resolves the slot's recipe from the loaded list
func (s *PlannerScreen) recipeForSlot(row components.PlanSlotRow) *domain.Recipe {
	if s.plan == nil {
		return nil
	}
	id := s.plan.Days[row.Day].Get(row.Slot)
	for _, r := range s.allRecipes {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (s *PlannerScreen) updateList(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return cmd
}

// View renders the slot list, with the picker centered on top
func (s *PlannerScreen) View() string {
	if s.picker.IsVisible() {
		return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, s.picker.View())
	}
	return s.list.View()
}
