package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/sous/internal/domain"
	"github.com/mmcdole/sous/internal/tui/components"
	"github.com/mmcdole/sous/internal/tui/styles"
)

// InstructionScreen is cooking mode: the steps of one recipe, checked
// off as the cook works through them. Finishing the last step moves to
// the completion screen.
type InstructionScreen struct {
	deps     *Services
	recipeID int

	recipe *domain.Recipe
	done   []bool
	list   *components.PickerList

	tick   int
	width  int
	height int
}

// NewInstructionScreen creates cooking mode for one recipe
func NewInstructionScreen(deps *Services, recipeID int) *InstructionScreen {
	list := components.NewPickerList("Steps")
	list.SetFocused(true)

	return &InstructionScreen{
		deps:     deps,
		recipeID: recipeID,
		list:     list,
	}
}

// Init loads the recipe
func (s *InstructionScreen) Init() tea.Cmd {
	s.list.SetLoading(true)
	return LoadRecipeCmd(s.deps.Recipes, s.recipeID)
}

// Title returns the screen title
func (s *InstructionScreen) Title() string {
	if s.recipe != nil {
		return "Cooking: " + s.recipe.Title
	}
	return "Cooking"
}

// Cursor returns the step cursor
func (s *InstructionScreen) Cursor() int {
	return s.list.SelectedIndex()
}

// SetCursor restores the step cursor
func (s *InstructionScreen) SetCursor(pos int) {
	s.list.SetSelectedIndex(pos)
}

// Refresh keeps the check state; a reload would wipe progress
func (s *InstructionScreen) Refresh() tea.Cmd {
	return nil
}

// CapturesInput reports whether the step filter is typing
func (s *InstructionScreen) CapturesInput() bool {
	return s.list.IsFilterTyping()
}

// SetSize splits the height between the progress header and the list
func (s *InstructionScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	listHeight := height - 3
	if listHeight < 4 {
		listHeight = 4
	}
	s.list.SetSize(width, listHeight)
}

func (s *InstructionScreen) doneCount() int {
	n := 0
	for _, d := range s.done {
		if d {
			n++
		}
	}
	return n
}

// rebuildRows pushes the current check state into the list
func (s *InstructionScreen) rebuildRows() {
	if s.recipe == nil {
		return
	}
	rows := make([]components.Row, 0, len(s.recipe.Steps))
	for i, step := range s.recipe.Steps {
		rows = append(rows, components.StepRow{
			Index: i,
			Step:  step,
			Done:  s.done[i],
		})
	}
	s.list.RefreshRows(rows)
	s.list.SetTitle(fmt.Sprintf("Steps · %d/%d done", s.doneCount(), len(s.recipe.Steps)))
}

// Update handles messages
func (s *InstructionScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case RecipeLoadedMsg:
		s.list.SetLoading(false)
		s.recipe = msg.Recipe
		if s.recipe != nil && len(s.done) != len(s.recipe.Steps) {
			s.done = make([]bool, len(s.recipe.Steps))
		}
		s.rebuildRows()
		return nil

	case ErrMsg:
		// Unknown recipe IDs land here; drop the spinner
		s.list.SetLoading(false)
		return nil

	case TickMsg:
		s.tick++
		s.list.SetSpinnerFrame(s.tick)
		return nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return nil
}

func (s *InstructionScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.list.IsFilterTyping() {
		return s.updateList(msg)
	}

	switch {
	case key.Matches(msg, Keys.Toggle), key.Matches(msg, Keys.Enter):
		return s.toggleSelected()

	case key.Matches(msg, Keys.Filter):
		s.list.ToggleFilter()
		return nil
	}

	return s.updateList(msg)
}

// toggleSelected flips the step under the cursor. Checking the last
// open step finishes the cook.
func (s *InstructionScreen) toggleSelected() tea.Cmd {
	row, ok := s.list.SelectedRow().(components.StepRow)
	if !ok || s.recipe == nil {
		return nil
	}
	s.done[row.Index] = !s.done[row.Index]
	s.rebuildRows()

	if s.doneCount() == len(s.recipe.Steps) && len(s.recipe.Steps) > 0 {
		return NavigateCmd(Route{Kind: RouteCompletion, RecipeID: s.recipeID})
	}
	return nil
}

func (s *InstructionScreen) updateList(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return cmd
}

// renderProgress draws the header: title and progress bar
func (s *InstructionScreen) renderProgress() string {
	if s.recipe == nil {
		return styles.DimStyle.Render("Loading steps...")
	}

	total := len(s.recipe.Steps)
	percent := 0.0
	if total > 0 {
		percent = float64(s.doneCount()) / float64(total) * 100
	}

	barWidth := s.width - 20
	if barWidth > 40 {
		barWidth = 40
	}
	if barWidth < 10 {
		barWidth = 10
	}

	title := styles.TitleStyle.Render(styles.Truncate(s.recipe.Title, s.width-4))
	bar := styles.RenderProgressBar(percent, barWidth) +
		styles.DimStyle.Render(fmt.Sprintf(" %d/%d · space to check off", s.doneCount(), total))

	return lipgloss.JoinVertical(lipgloss.Left, title, bar, "")
}

// View renders the progress header over the step list
func (s *InstructionScreen) View() string {
	if s.recipe != nil && len(s.recipe.Steps) == 0 {
		empty := lipgloss.JoinVertical(lipgloss.Left,
			styles.TitleStyle.Render(styles.Truncate(s.recipe.Title, s.width-4)),
			"",
			styles.DimStyle.Render("This recipe has no steps written down."),
			styles.DimStyle.Render("Press e on the detail screen to add some."),
		)
		return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, empty)
	}
	return lipgloss.JoinVertical(lipgloss.Left, s.renderProgress(), s.list.View())
}
