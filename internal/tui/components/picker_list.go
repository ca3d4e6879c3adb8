package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/sous/internal/tui/styles"
)

// Spinner frames for loading animation
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// SpinnerFrame returns the frame glyph for a tick counter
func SpinnerFrame(tick int) string {
	return spinnerFrames[tick%len(spinnerFrames)]
}

// Row is one renderable picker entry
type Row interface {
	RowParts(selected bool, width int) []styles.RowPart
	FilterText() string
}

// PickerList is a scrollable, filterable single-column list of rows.
// Screens feed it rows and read the selection back.
type PickerList struct {
	rows  []Row
	title string

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	// Loading state
	loading      bool
	spinnerFrame int

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into the rows slice
}

// NewPickerList creates a picker with the given title
func NewPickerList(title string) *PickerList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &PickerList{
		title:       title,
		filterInput: ti,
	}
}

// SetRows replaces the content and resets selection and filter
func (p *PickerList) SetRows(rows []Row) {
	p.rows = rows
	p.loading = false
	p.cursor = 0
	p.offset = 0
	p.clearFilter()
}

// RefreshRows replaces the content but keeps the cursor position
func (p *PickerList) RefreshRows(rows []Row) {
	p.rows = rows
	p.loading = false
	if p.filterQuery != "" {
		p.applyFilter()
	}
	p.SetSelectedIndex(p.cursor)
}

// Title returns the list title
func (p *PickerList) Title() string {
	return p.title
}

// SetTitle updates the list title
func (p *PickerList) SetTitle(title string) {
	p.title = title
}

// SetSize updates the component dimensions
func (p *PickerList) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.recalcMaxVisible()
	p.ensureVisible()
}

// SetFocused sets the focus state
func (p *PickerList) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns the focus state
func (p *PickerList) IsFocused() bool {
	return p.focused
}

// SetLoading toggles the loading spinner
func (p *PickerList) SetLoading(loading bool) {
	p.loading = loading
}

// IsLoading returns the loading state
func (p *PickerList) IsLoading() bool {
	return p.loading
}

// SetSpinnerFrame updates the spinner animation frame
func (p *PickerList) SetSpinnerFrame(frame int) {
	p.spinnerFrame = frame
}

// SelectedRow returns the row under the cursor, nil when empty
func (p *PickerList) SelectedRow() Row {
	count := p.ItemCount()
	if count == 0 || p.cursor >= count {
		return nil
	}
	return p.rows[p.mapIndex(p.cursor)]
}

// SelectedIndex returns the cursor position
func (p *PickerList) SelectedIndex() int {
	return p.cursor
}

// SetSelectedIndex sets the cursor position, clamped to the row range
func (p *PickerList) SetSelectedIndex(idx int) {
	max := p.ItemCount() - 1
	if max < 0 {
		p.cursor = 0
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx > max {
		idx = max
	}
	p.cursor = idx
	p.ensureVisible()
}

// ItemCount returns the number of rows (accounting for filter)
func (p *PickerList) ItemCount() int {
	if p.filteredIdx != nil {
		return len(p.filteredIdx)
	}
	return len(p.rows)
}

// IsEmpty returns true if there are no rows
func (p *PickerList) IsEmpty() bool {
	return p.ItemCount() == 0
}

// ToggleFilter activates the filter input
func (p *PickerList) ToggleFilter() {
	p.filterActive = true
	p.filterInput.Focus()
	p.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active
func (p *PickerList) IsFiltering() bool {
	return p.filterActive
}

// IsFilterTyping returns true if the filter input has focus
func (p *PickerList) IsFilterTyping() bool {
	return p.filterActive && p.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all rows
func (p *PickerList) ClearFilter() {
	p.clearFilter()
}

// Internal methods

func (p *PickerList) recalcMaxVisible() {
	// Interior height = total - border, minus title and scroll indicators
	interiorHeight := p.height - BorderHeight
	p.maxVisible = interiorHeight - ScrollIndicatorLines - 1
	if p.filterActive {
		p.maxVisible--
	}
	if p.maxVisible < 1 {
		p.maxVisible = 1
	}
}

func (p *PickerList) ensureVisible() {
	// Don't adjust offset if size hasn't been set yet
	if p.maxVisible <= 0 {
		return
	}
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+p.maxVisible {
		p.offset = p.cursor - p.maxVisible + 1
	}
}

func (p *PickerList) clearFilter() {
	p.filterActive = false
	p.filterQuery = ""
	p.filteredIdx = nil
	p.filterInput.SetValue("")
	p.filterInput.Blur()
	p.recalcMaxVisible()
}

func (p *PickerList) applyFilter() {
	query := p.filterInput.Value()
	p.filterQuery = query

	if query == "" {
		p.filteredIdx = nil
		return
	}

	lowerTexts := make([]string, len(p.rows))
	for i, row := range p.rows {
		lowerTexts[i] = strings.ToLower(row.FilterText())
	}

	matches := fuzzy.Find(strings.ToLower(query), lowerTexts)

	p.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		p.filteredIdx[i] = match.Index
	}

	// Reset cursor to first match
	p.cursor = 0
	p.offset = 0
}

func (p *PickerList) mapIndex(i int) int {
	if p.filteredIdx != nil && i < len(p.filteredIdx) {
		return p.filteredIdx[i]
	}
	return i
}

// Init initializes the component
func (p *PickerList) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (p *PickerList) Update(msg tea.Msg) (*PickerList, tea.Cmd) {
	if !p.focused {
		return p, nil
	}

	// Handle filter input when active AND focused (typing mode)
	if p.filterActive && p.filterInput.Focused() {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch msg.String() {
			case "esc":
				p.clearFilter()
				return p, nil
			case "enter":
				// Accept filter, blur input to allow navigation
				p.filterInput.Blur()
				return p, nil
			case "backspace":
				if p.filterInput.Value() == "" {
					p.clearFilter()
					return p, nil
				}
			}
		}

		var cmd tea.Cmd
		p.filterInput, cmd = p.filterInput.Update(msg)
		p.applyFilter()
		return p, cmd
	}

	// Filter active but blurred: navigation over filtered results
	if p.filterActive {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch msg.String() {
			case "esc":
				p.clearFilter()
				return p, nil
			case "/":
				p.filterInput.Focus()
				return p, nil
			}
		}
	}

	count := p.ItemCount()
	if count == 0 {
		return p, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if p.cursor < count-1 {
				p.cursor++
				p.ensureVisible()
			}
		case "k", "up":
			if p.cursor > 0 {
				p.cursor--
				p.ensureVisible()
			}
		case "g":
			p.cursor = 0
			p.offset = 0
		case "G":
			p.cursor = count - 1
			p.ensureVisible()
		case "ctrl+d":
			// Page down
			p.cursor += p.maxVisible / 2
			if p.cursor >= count {
				p.cursor = count - 1
			}
			p.ensureVisible()
		case "ctrl+u":
			// Page up
			p.cursor -= p.maxVisible / 2
			if p.cursor < 0 {
				p.cursor = 0
			}
			p.ensureVisible()
		}
	}

	return p, nil
}

// View renders the component
func (p *PickerList) View() string {
	style := styles.InactiveBorder
	if p.focused {
		style = styles.ActiveBorder
	}

	content := p.renderContent()

	frameW, frameH := style.GetFrameSize()

	return style.
		Width(p.width - frameW).
		Height(p.height - frameH).
		Render(content)
}

func (p *PickerList) renderContent() string {
	itemWidth := p.width - BorderWidth
	if itemWidth < 10 {
		itemWidth = 10
	}

	titleLine := styles.AccentStyle.Render(styles.Truncate(p.title, itemWidth))

	if p.loading {
		loadingLine := styles.DimStyle.Render(SpinnerFrame(p.spinnerFrame) + " Loading...")
		return titleLine + "\n" + " " + "\n" + loadingLine + "\n" + " "
	}

	count := p.ItemCount()
	if count == 0 {
		emptyMsg := styles.DimStyle.Render("No items")
		if p.filterActive && p.filterQuery != "" {
			emptyMsg = styles.DimStyle.Render("No matches")
		}
		return titleLine + "\n" + " " + "\n" + emptyMsg + "\n" + " "
	}

	var lines []string

	end := p.offset + p.maxVisible
	if end > count {
		end = count
	}

	for i := p.offset; i < end; i++ {
		selected := i == p.cursor
		row := p.rows[p.mapIndex(i)]
		lines = append(lines, styles.RenderListRow(row.RowParts(selected, itemWidth), selected, itemWidth))
	}

	// ALWAYS reserve space for header (even if empty) to prevent layout shifts
	header := " "
	if p.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}

	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer

	// Add filter bar at bottom if active
	if p.filterActive {
		content += "\n" + p.renderFilterBar()
	}

	return content
}

func (p *PickerList) renderFilterBar() string {
	input := p.filterInput.View()

	countStr := ""
	if p.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", p.ItemCount(), len(p.rows)))
	}

	return input + countStr
}
