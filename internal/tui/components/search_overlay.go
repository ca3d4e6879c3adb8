package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/sous/internal/domain"
	"github.com/mmcdole/sous/internal/service"
	"github.com/mmcdole/sous/internal/tui/styles"
)

// SearchOverlay is the fuzzy search modal component
type SearchOverlay struct {
	input     textinput.Model
	results   []service.FilterResult
	cursor    int
	visible   bool
	width     int
	height    int
	searching bool
	prevQuery string
}

// NewSearchOverlay creates a new search overlay component
func NewSearchOverlay() SearchOverlay {
	ti := textinput.New()
	ti.Placeholder = "Search recipes..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return SearchOverlay{
		input: ti,
	}
}

// Show makes the search overlay visible and focuses the input
func (o *SearchOverlay) Show() {
	o.visible = true
	o.input.Focus()
	o.input.SetValue("")
	o.input.Placeholder = "Type to search..."
	o.input.Prompt = "🔍 "
	o.results = nil
	o.cursor = 0
	o.searching = false
	o.prevQuery = ""
}

// Hide hides the search overlay
func (o *SearchOverlay) Hide() {
	o.visible = false
	o.input.Blur()
}

// IsVisible returns true if the search overlay is visible
func (o SearchOverlay) IsVisible() bool {
	return o.visible
}

// SetResults sets the search results with match highlighting data
func (o *SearchOverlay) SetResults(results []service.FilterResult) {
	o.results = results
	o.cursor = 0
	o.searching = false
}

// SetSize updates the component dimensions
func (o *SearchOverlay) SetSize(width, height int) {
	o.width = width
	o.height = height
	o.input.Width = width - 10
}

// Query returns the current search query
func (o SearchOverlay) Query() string {
	return o.input.Value()
}

// QueryChanged returns true if the query changed since last check and updates prevQuery
func (o *SearchOverlay) QueryChanged() bool {
	current := o.input.Value()
	if current != o.prevQuery {
		o.prevQuery = current
		return true
	}
	return false
}

// Selected returns the recipe under the cursor
func (o SearchOverlay) Selected() *domain.Recipe {
	if len(o.results) == 0 || o.cursor >= len(o.results) {
		return nil
	}
	return o.results[o.cursor].Recipe
}

// ResultCount returns the number of results
func (o SearchOverlay) ResultCount() int {
	return len(o.results)
}

// Init initializes the component
func (o SearchOverlay) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (o SearchOverlay) Update(msg tea.Msg) (SearchOverlay, tea.Cmd, bool) {
	if !o.visible {
		return o, nil, false
	}

	var cmd tea.Cmd
	resultCount := o.ResultCount()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, SearchOverlayKeys.Escape):
			o.Hide()
			return o, nil, false

		case key.Matches(msg, SearchOverlayKeys.Enter):
			if resultCount > 0 {
				return o, nil, true // Selected
			}
			return o, nil, false

		case key.Matches(msg, SearchOverlayKeys.Down):
			if o.cursor < resultCount-1 {
				o.cursor++
			}
			return o, nil, false

		case key.Matches(msg, SearchOverlayKeys.Up):
			if o.cursor > 0 {
				o.cursor--
			}
			return o, nil, false

		default:
			// Pass to text input
			o.input, cmd = o.input.Update(msg)
			return o, cmd, false
		}
	}

	// Handle other messages
	o.input, cmd = o.input.Update(msg)
	return o, cmd, false
}

// View renders the component
func (o SearchOverlay) View() string {
	if !o.visible {
		return ""
	}

	// Modal dimensions
	modalWidth := o.width * 2 / 3
	if modalWidth < 40 {
		modalWidth = 40
	}
	if modalWidth > 80 {
		modalWidth = 80
	}
	maxResults := 10

	var b strings.Builder

	// Title
	b.WriteString("Search Recipes")
	b.WriteString("\n\n")

	// Input field
	b.WriteString(o.input.View())
	b.WriteString("\n\n")

	// Results
	if o.searching {
		b.WriteString(styles.SpinnerStyle.Render("Searching..."))
	} else {
		o.renderResults(&b, modalWidth, maxResults)
	}

	// Center the modal
	content := lipgloss.NewStyle().
		Width(modalWidth - 4).
		Render(b.String())

	modal := styles.ModalStyle.
		Width(modalWidth).
		Render(content)

	// Center horizontally and vertically
	return lipgloss.Place(
		o.width,
		o.height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
	)
}

// highlightMatches renders text with matched characters highlighted
// Uses ANSI codes directly to avoid lipgloss padding issues
func highlightMatches(text string, matchedIndexes []int, selected bool) string {
	if len(matchedIndexes) == 0 {
		if selected {
			return styles.SelectedItemStyle.Render(text)
		}
		return styles.NormalItemStyle.Render(text)
	}

	// Create a set of matched indexes for O(1) lookup
	matchSet := make(map[int]bool)
	for _, idx := range matchedIndexes {
		matchSet[idx] = true
	}

	// ANSI escape codes for inline styling (no padding)
	const (
		reset       = "\033[0m"
		paprikaBold = "\033[38;5;209;1m" // Paprika approximate
		gray        = "\033[38;5;250m"   // LightGray approximate
		white       = "\033[38;5;255m"
		bgSlate     = "\033[48;5;238m" // SlateLight approximate
	)

	var matchStart, matchEnd, normalStart, normalEnd string
	if selected {
		// Selected: white on slate for normal, paprika bold on slate for match
		normalStart = white + bgSlate
		normalEnd = reset
		matchStart = paprikaBold + bgSlate
		matchEnd = reset
	} else {
		// Not selected: gray for normal, paprika bold for match
		normalStart = gray
		normalEnd = reset
		matchStart = paprikaBold
		matchEnd = reset
	}

	// Batch consecutive characters with the same style
	var result strings.Builder
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		isMatch := matchSet[i]

		// Collect consecutive characters with the same match state
		var batch strings.Builder
		for i < len(runes) && matchSet[i] == isMatch {
			batch.WriteRune(runes[i])
			i++
		}

		// Render the batch with ANSI codes
		if isMatch {
			result.WriteString(matchStart)
			result.WriteString(batch.String())
			result.WriteString(matchEnd)
		} else {
			result.WriteString(normalStart)
			result.WriteString(batch.String())
			result.WriteString(normalEnd)
		}
	}

	return result.String()
}

// renderResults renders the search results
func (o SearchOverlay) renderResults(b *strings.Builder, modalWidth, maxResults int) {
	if len(o.results) == 0 && o.input.Value() != "" {
		b.WriteString(styles.DimStyle.Render("No matches found"))
		return
	}
	if len(o.results) == 0 {
		// Don't show anything when empty - placeholder already guides the user
		return
	}

	displayCount := len(o.results)
	if displayCount > maxResults {
		displayCount = maxResults
	}

	for i := 0; i < displayCount; i++ {
		result := o.results[i]
		selected := i == o.cursor

		var line strings.Builder

		// Category badge
		if cat := result.Recipe.Category; cat != "" {
			line.WriteString(styles.DimBadgeStyle.Render(strings.ToUpper(styles.Truncate(cat, 10))))
			line.WriteString(" ")
		}

		// Build display title
		title := result.Recipe.Title
		matchedIndexes := result.MatchedIndexes
		maxTitleWidth := modalWidth - 25
		if result.Recipe.Mine {
			title = fmt.Sprintf("%s (mine)", result.Recipe.Title)
			// Matched indexes still apply to the title portion
		}
		title = styles.Truncate(title, maxTitleWidth)

		// Apply highlighting to the title
		line.WriteString(highlightMatches(title, matchedIndexes, selected))

		b.WriteString(line.String())
		b.WriteString("\n")
	}

	if len(o.results) > maxResults {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("... and %d more", len(o.results)-maxResults)))
	}
}
