package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/sous/internal/domain"
	"github.com/mmcdole/sous/internal/tui/styles"
)

// Layout constants for the grid
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Padding inside the border (Padding(0,1) = 1 left + 1 right)
	HorizontalPadding = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2

	// Breadcrumb line at top of content area
	BreadcrumbLines = 1

	// Space between card columns
	CardGap = 1
)

// CardGrid lays recipe cards out in columns with a movable cursor.
// Bookmark and delete clicks route through the selected card's callbacks.
type CardGrid struct {
	recipes []*domain.Recipe
	columns int

	// Selection
	cursor    int
	rowOffset int
	maxRows   int

	// Dimensions
	width   int
	height  int
	focused bool

	// Border title (breadcrumb)
	breadcrumb string

	// Card options
	hideDelete bool
	OnBookmark func(recipeID int) tea.Msg
	OnDelete   func(recipeID int) tea.Msg

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into the recipes slice
}

// NewCardGrid creates a grid with the given column count
func NewCardGrid(columns int) CardGrid {
	if columns < 1 {
		columns = 1
	}

	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return CardGrid{
		columns:     columns,
		filterInput: ti,
	}
}

// SetRecipes replaces the content and resets the cursor
func (g *CardGrid) SetRecipes(recipes []*domain.Recipe) {
	g.recipes = recipes
	g.cursor = 0
	g.rowOffset = 0
	g.clearFilter()
}

// Refresh replaces the content but keeps cursor and filter, for in-place
// reloads after a bookmark or vote round-trip
func (g *CardGrid) Refresh(recipes []*domain.Recipe) {
	g.recipes = recipes
	if g.filterQuery != "" {
		g.applyFilter()
	}
	if max := g.itemCount() - 1; g.cursor > max {
		g.cursor = max
	}
	if g.cursor < 0 {
		g.cursor = 0
	}
	g.ensureVisible()
}

// SetHideDelete controls whether cards show the delete glyph
func (g *CardGrid) SetHideDelete(hide bool) {
	g.hideDelete = hide
}

// SetSize updates the component dimensions
func (g *CardGrid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.recalcMaxRows()
}

// SetBreadcrumb sets the text displayed above the cards
func (g *CardGrid) SetBreadcrumb(crumb string) {
	g.breadcrumb = crumb
}

// recalcMaxRows accounts for breadcrumb, scroll indicators and filter bar
func (g *CardGrid) recalcMaxRows() {
	interior := g.height - BorderHeight - ScrollIndicatorLines - BreadcrumbLines
	if g.filterActive {
		interior--
	}
	g.maxRows = interior / CardHeight
	if g.maxRows < 1 {
		g.maxRows = 1
	}
}

// SetFocused sets the focus state
func (g *CardGrid) SetFocused(focused bool) {
	g.focused = focused
}

// IsFocused returns the focus state
func (g CardGrid) IsFocused() bool {
	return g.focused
}

// Cursor returns the current cursor position
func (g CardGrid) Cursor() int {
	return g.cursor
}

// SetCursor sets the cursor position, clamped to the item range
func (g *CardGrid) SetCursor(pos int) {
	max := g.itemCount() - 1
	if max < 0 {
		g.cursor = 0
		return
	}
	if pos < 0 {
		pos = 0
	}
	if pos > max {
		pos = max
	}
	g.cursor = pos
	g.ensureVisible()
}

// itemCount returns the number of items (accounting for filter)
func (g CardGrid) itemCount() int {
	if g.filteredIdx != nil {
		return len(g.filteredIdx)
	}
	return len(g.recipes)
}

// IsEmpty returns true if there are no items
func (g CardGrid) IsEmpty() bool {
	return g.itemCount() == 0
}

// SelectedRecipe returns the recipe under the cursor
func (g CardGrid) SelectedRecipe() *domain.Recipe {
	count := g.itemCount()
	if count == 0 || g.cursor >= count {
		return nil
	}
	return g.recipes[g.mapIndex(g.cursor)]
}

// ClickBookmark fires the bookmark callback for the selected card
func (g CardGrid) ClickBookmark() tea.Cmd {
	r := g.SelectedRecipe()
	if r == nil {
		return nil
	}
	return g.cardFor(r, true).ClickBookmark()
}

// ClickDelete fires the delete callback for the selected card
func (g CardGrid) ClickDelete() tea.Cmd {
	r := g.SelectedRecipe()
	if r == nil {
		return nil
	}
	return g.cardFor(r, true).ClickDelete()
}

// cardFor builds the card for one recipe, wiring grid callbacks in
func (g CardGrid) cardFor(r *domain.Recipe, selected bool) Card {
	card := Card{
		Recipe:     r,
		Width:      g.cardWidth(),
		Selected:   selected && g.focused,
		HideDelete: g.hideDelete,
	}
	if g.OnBookmark != nil {
		id := r.ID
		cb := g.OnBookmark
		card.OnBookmark = func() tea.Msg { return cb(id) }
	}
	if g.OnDelete != nil {
		id := r.ID
		cb := g.OnDelete
		card.OnDelete = func() tea.Msg { return cb(id) }
	}
	return card
}

// cardWidth divides the interior width across columns
func (g CardGrid) cardWidth() int {
	interior := g.width - BorderWidth - HorizontalPadding
	w := (interior - (g.columns-1)*CardGap) / g.columns
	if w < MinCardWidth {
		w = MinCardWidth
	}
	return w
}

// ensureVisible keeps the cursor row inside the viewport
func (g *CardGrid) ensureVisible() {
	row := g.cursor / g.columns
	if row < g.rowOffset {
		g.rowOffset = row
	}
	if row >= g.rowOffset+g.maxRows {
		g.rowOffset = row - g.maxRows + 1
	}
}

// ToggleFilter activates the filter input
func (g *CardGrid) ToggleFilter() {
	g.filterActive = true
	g.filterInput.Focus()
	g.recalcMaxRows()
}

// IsFiltering returns true if filter mode is active
func (g CardGrid) IsFiltering() bool {
	return g.filterActive
}

// IsFilterTyping returns true if the filter input has focus (typing mode)
func (g CardGrid) IsFilterTyping() bool {
	return g.filterActive && g.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (g *CardGrid) ClearFilter() {
	g.clearFilter()
}

func (g *CardGrid) clearFilter() {
	g.filterActive = false
	g.filterQuery = ""
	g.filteredIdx = nil
	g.filterInput.SetValue("")
	g.filterInput.Blur()
	g.recalcMaxRows()
}

// applyFilter filters recipes by fuzzy title match
func (g *CardGrid) applyFilter() {
	query := g.filterInput.Value()
	g.filterQuery = query

	if query == "" {
		g.filteredIdx = nil
		return
	}

	lowerTitles := make([]string, len(g.recipes))
	for i, r := range g.recipes {
		lowerTitles[i] = strings.ToLower(r.Title)
	}

	matches := fuzzy.Find(strings.ToLower(query), lowerTitles)

	g.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		g.filteredIdx[i] = match.Index
	}

	// Reset cursor to first match
	g.cursor = 0
	g.rowOffset = 0
}

// mapIndex maps a cursor position to the actual index in the data
func (g CardGrid) mapIndex(i int) int {
	if g.filteredIdx != nil && i < len(g.filteredIdx) {
		return g.filteredIdx[i]
	}
	return i
}

// Init initializes the component
func (g CardGrid) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (g CardGrid) Update(msg tea.Msg) (CardGrid, tea.Cmd) {
	if !g.focused {
		return g, nil
	}

	// Handle filter input when active AND focused (typing mode)
	if g.filterActive && g.filterInput.Focused() {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch msg.String() {
			case "esc":
				g.clearFilter()
				return g, nil
			case "enter":
				// Accept filter, blur input to allow navigation
				g.filterInput.Blur()
				return g, nil
			case "backspace":
				if g.filterInput.Value() == "" {
					g.clearFilter()
					return g, nil
				}
			}
		}

		var cmd tea.Cmd
		g.filterInput, cmd = g.filterInput.Update(msg)
		g.applyFilter()
		return g, cmd
	}

	// Filter active but blurred: navigation over filtered results
	if g.filterActive {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch msg.String() {
			case "esc":
				g.clearFilter()
				return g, nil
			case "/":
				g.filterInput.Focus()
				return g, nil
			}
		}
	}

	count := g.itemCount()
	if count == 0 {
		return g, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if g.cursor+g.columns < count {
				g.cursor += g.columns
			} else if g.cursor < count-1 {
				g.cursor = count - 1
			}
			g.ensureVisible()
		case "k", "up":
			if g.cursor-g.columns >= 0 {
				g.cursor -= g.columns
			}
			g.ensureVisible()
		case "h", "left":
			if g.cursor > 0 {
				g.cursor--
				g.ensureVisible()
			}
		case "l", "right":
			if g.cursor < count-1 {
				g.cursor++
				g.ensureVisible()
			}
		case "g":
			g.cursor = 0
			g.rowOffset = 0
		case "G":
			g.cursor = count - 1
			g.ensureVisible()
		case "ctrl+d":
			// Page down
			g.cursor += (g.maxRows / 2) * g.columns
			if g.cursor >= count {
				g.cursor = count - 1
			}
			g.ensureVisible()
		case "ctrl+u":
			// Page up
			g.cursor -= (g.maxRows / 2) * g.columns
			if g.cursor < 0 {
				g.cursor = 0
			}
			g.ensureVisible()
		}
	}

	return g, nil
}

// View renders the component
func (g CardGrid) View() string {
	style := styles.InactiveBorder
	if g.focused {
		style = styles.ActiveBorder
	}

	content := g.renderCards()

	// Subtract frame (border) size so total rendered size equals width x height
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(g.width - frameW).
		Height(g.height - frameH).
		Render(content)
}

// renderCards renders the visible card rows with scroll indicators
func (g CardGrid) renderCards() string {
	itemWidth := g.width - BorderWidth - HorizontalPadding

	// Breadcrumb is always first line (even if empty, for consistent layout)
	breadcrumbLine := " "
	if g.breadcrumb != "" {
		crumb := styles.Truncate(g.breadcrumb, itemWidth)
		breadcrumbLine = styles.AccentStyle.Render(crumb)
	}

	count := g.itemCount()
	if count == 0 {
		emptyMsg := styles.DimStyle.Render("No recipes")
		if g.filterActive && g.filterQuery != "" {
			emptyMsg = styles.DimStyle.Render("No matches")
		}
		return breadcrumbLine + "\n" + " " + "\n" + emptyMsg + "\n" + " "
	}

	totalRows := (count + g.columns - 1) / g.columns
	endRow := g.rowOffset + g.maxRows
	if endRow > totalRows {
		endRow = totalRows
	}

	var rows []string
	for row := g.rowOffset; row < endRow; row++ {
		var cells []string
		for col := 0; col < g.columns; col++ {
			i := row*g.columns + col
			if i >= count {
				break
			}
			if col > 0 {
				cells = append(cells, strings.Repeat(" ", CardGap))
			}
			r := g.recipes[g.mapIndex(i)]
			cells = append(cells, g.cardFor(r, i == g.cursor).View())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	// ALWAYS reserve space for header (even if empty) to prevent layout shifts
	header := " "
	if g.rowOffset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}

	footer := " "
	if endRow < totalRows {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := breadcrumbLine + "\n" + header + "\n" + strings.Join(rows, "\n") + "\n" + footer

	// Add filter bar at bottom if active
	if g.filterActive {
		content += "\n" + g.renderFilterBar()
	}

	return content
}

// renderFilterBar renders the filter input bar with a match count
func (g CardGrid) renderFilterBar() string {
	input := g.filterInput.View()

	countStr := ""
	if g.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", g.itemCount(), len(g.recipes)))
	}

	return input + countStr
}
