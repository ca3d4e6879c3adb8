package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/sous/internal/domain"
	"github.com/mmcdole/sous/internal/tui/styles"
)

// pickerMaxRows caps how many recipes the picker shows at once; the
// cursor window slides past it.
const pickerMaxRows = 9

// RecipePicker is a modal for assigning a recipe to a planner slot.
// The last row is a pseudo-entry that clears the slot instead.
type RecipePicker struct {
	visible    bool
	slotLabel  string
	recipes    []*domain.Recipe
	filtered   []*domain.Recipe
	filter     textinput.Model
	filterMode bool

	cursor int

	width  int
	height int
}

// NewRecipePicker creates a new recipe picker modal
func NewRecipePicker() RecipePicker {
	ti := textinput.New()
	ti.Placeholder = "Filter recipes..."
	ti.Prompt = "/ "
	ti.CharLimit = 50

	return RecipePicker{
		filter: ti,
	}
}

// Show displays the picker for the given slot with the given recipes
func (m *RecipePicker) Show(slotLabel string, recipes []*domain.Recipe) {
	m.visible = true
	m.slotLabel = slotLabel
	m.recipes = recipes
	m.filtered = recipes
	m.filterMode = false
	m.filter.SetValue("")
	m.filter.Blur()
	m.cursor = 0
}

// Hide dismisses the picker
func (m *RecipePicker) Hide() {
	m.visible = false
	m.filterMode = false
	m.filter.Blur()
}

// IsVisible returns whether the picker is shown
func (m *RecipePicker) IsVisible() bool {
	return m.visible
}

// IsFilterMode returns whether the filter input is capturing keys
func (m *RecipePicker) IsFilterMode() bool {
	return m.filterMode
}

// SlotLabel returns the label of the slot being assigned
func (m *RecipePicker) SlotLabel() string {
	return m.slotLabel
}

// SetSize sets the modal dimensions
func (m *RecipePicker) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected returns the recipe under the cursor, or nil when the
// clear-slot row is selected.
func (m *RecipePicker) Selected() *domain.Recipe {
	if m.cursor < len(m.filtered) {
		return m.filtered[m.cursor]
	}
	return nil
}

// applyFilter recomputes the visible subset from the filter text
func (m *RecipePicker) applyFilter() {
	query := strings.TrimSpace(m.filter.Value())
	if query == "" {
		m.filtered = m.recipes
	} else {
		out := make([]*domain.Recipe, 0, len(m.recipes))
		for _, r := range m.recipes {
			if fuzzy.MatchFold(query, r.Title) {
				out = append(out, r)
			}
		}
		m.filtered = out
	}
	if m.cursor > len(m.filtered) {
		m.cursor = len(m.filtered)
	}
}

// HandleKeyMsg processes a key message, returns (handled, shouldClose, shouldApply).
// When shouldApply is true the caller assigns Selected() to the slot;
// a nil Selected() means clear the slot.
func (m *RecipePicker) HandleKeyMsg(msg tea.KeyMsg) (handled bool, shouldClose bool, shouldApply bool) {
	if !m.visible {
		return false, false, false
	}

	// Handle filter mode (text input active)
	if m.filterMode {
		switch {
		case key.Matches(msg, RecipePickerKeys.Escape):
			m.filterMode = false
			m.filter.Blur()
			m.filter.SetValue("")
			m.applyFilter()
			return true, false, false
		case key.Matches(msg, RecipePickerKeys.Enter):
			m.filterMode = false
			m.filter.Blur()
			return true, false, false
		default:
			m.filter, _ = m.filter.Update(msg)
			m.applyFilter()
			return true, false, false
		}
	}

	// Normal navigation mode
	switch {
	case key.Matches(msg, RecipePickerKeys.Down):
		// +1 for the clear-slot row at the end
		maxIdx := len(m.filtered)
		if m.cursor < maxIdx {
			m.cursor++
		}
		return true, false, false
	case key.Matches(msg, RecipePickerKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return true, false, false
	case key.Matches(msg, RecipePickerKeys.Filter):
		m.filterMode = true
		m.filter.Focus()
		return true, false, false
	case key.Matches(msg, RecipePickerKeys.Clear):
		// Shortcut: apply with nothing selected
		m.cursor = len(m.filtered)
		return true, false, true
	case key.Matches(msg, RecipePickerKeys.Enter):
		return true, false, true
	case key.Matches(msg, RecipePickerKeys.Escape):
		return true, true, false
	}

	return true, false, false // Consume all keys when visible
}

// View renders the recipe picker
func (m *RecipePicker) View() string {
	if !m.visible {
		return ""
	}

	// Modal width
	modalWidth := 44
	if m.width > 0 && m.width < 60 {
		modalWidth = m.width - 10
	}

	var lines []string

	// Title
	titleLine := styles.ModalTitleStyle.Render("Assign Recipe")
	lines = append(lines, titleLine)
	if m.slotLabel != "" {
		lines = append(lines, styles.DimStyle.Render(m.slotLabel))
	}
	lines = append(lines, "")

	if m.filterMode || m.filter.Value() != "" {
		lines = append(lines, "  "+m.filter.View())
		lines = append(lines, "")
	}

	// Window the list around the cursor
	start := 0
	if m.cursor >= pickerMaxRows {
		start = m.cursor - pickerMaxRows + 1
	}
	end := start + pickerMaxRows
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	for i := start; i < end; i++ {
		selected := i == m.cursor
		row := RecipeRow{Recipe: m.filtered[i]}
		lines = append(lines, " "+styles.RenderListRow(row.RowParts(selected, modalWidth-4), selected, modalWidth-4))
	}

	if rest := len(m.filtered) - end; rest > 0 {
		lines = append(lines, "  "+styles.DimStyle.Render(fmt.Sprintf("... and %d more", rest)))
	}
	if len(m.filtered) == 0 {
		lines = append(lines, "  "+styles.DimStyle.Render("No recipes match"))
	}

	// Clear-slot row
	clearSelected := m.cursor == len(m.filtered)
	clearLine := "[x] Clear this slot..."
	if clearSelected {
		clearLine = lipgloss.NewStyle().
			Foreground(styles.White).
			Background(styles.SlateLight).
			Render(styles.Pad(clearLine, modalWidth-4))
	} else {
		clearLine = lipgloss.NewStyle().
			Foreground(styles.DimGray).
			Render(styles.Pad(clearLine, modalWidth-4))
	}
	lines = append(lines, "")
	lines = append(lines, "  "+clearLine)

	// Help text
	lines = append(lines, "")
	helpText := styles.DimStyle.Render("Enter: Assign  /: Filter  x: Clear  Esc: Cancel")
	lines = append(lines, helpText)

	content := strings.Join(lines, "\n")

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Paprika).
		Background(styles.SlateDark).
		Padding(1, 2).
		Width(modalWidth).
		Render(content)

	return modal
}
