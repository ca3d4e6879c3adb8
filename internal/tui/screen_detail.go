package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/mmcdole/sous/internal/domain"
	"github.com/mmcdole/sous/internal/tui/components"
	"github.com/mmcdole/sous/internal/tui/styles"
)

// Detail layout constants
const (
	detailChromeHeight = 4 // title zone + scroll indicators
	detailMaxBodyWidth = 80
)

// DetailScreen shows one recipe in full: metadata, the markdown
// description, and the ingredient list. Cooking starts from here.
type DetailScreen struct {
	deps     *Services
	recipeID int

	recipe  *domain.Recipe
	loading bool

	renderer *glamour.TermRenderer
	rendered string // cached glamour output

	offset int
	width  int
	height int
}

// NewDetailScreen creates a detail screen for one recipe
func NewDetailScreen(deps *Services, recipeID int) *DetailScreen {
	return &DetailScreen{
		deps:     deps,
		recipeID: recipeID,
		loading:  true,
	}
}

// Init loads the recipe
func (s *DetailScreen) Init() tea.Cmd {
	return LoadRecipeCmd(s.deps.Recipes, s.recipeID)
}

// Title returns the recipe title once loaded
func (s *DetailScreen) Title() string {
	if s.recipe != nil {
		return s.recipe.Title
	}
	return "Recipe"
}

// Cursor returns the scroll offset
func (s *DetailScreen) Cursor() int {
	return s.offset
}

// SetCursor restores the scroll offset
func (s *DetailScreen) SetCursor(pos int) {
	s.offset = pos
}

// Refresh re-fetches the recipe
func (s *DetailScreen) Refresh() tea.Cmd {
	return LoadRecipeCmd(s.deps.Recipes, s.recipeID)
}

// CapturesInput always reports false; the detail screen has no inputs
func (s *DetailScreen) CapturesInput() bool {
	return false
}

// SetSize stores dimensions and rebuilds the markdown renderer at the
// new wrap width
func (s *DetailScreen) SetSize(width, height int) {
	s.width = width
	s.height = height

	bodyWidth := s.bodyWidth()
	s.renderer, _ = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(bodyWidth),
	)
	s.rendered = ""
}

func (s *DetailScreen) bodyWidth() int {
	w := s.width - 6
	if w > detailMaxBodyWidth {
		w = detailMaxBodyWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderMarkdown runs the description through glamour, falling back to
// plain text when rendering fails
func (s *DetailScreen) renderMarkdown() string {
	if s.recipe == nil || s.recipe.Description == "" {
		return ""
	}
	if s.rendered != "" {
		return s.rendered
	}
	if s.renderer == nil {
		return s.recipe.Description
	}
	out, err := s.renderer.Render(s.recipe.Description)
	if err != nil {
		out = s.recipe.Description
	}
	s.rendered = strings.Trim(out, "\n")
	return s.rendered
}

// Update handles messages
func (s *DetailScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case RecipeLoadedMsg:
		s.loading = false
		s.recipe = msg.Recipe
		s.rendered = ""
		return nil

	case ErrMsg:
		// Unknown IDs (including the 0 decode fallback) land here and
		// leave the not-found body up instead of a stuck loading state
		s.loading = false
		return nil

	case BookmarkToggledMsg, UpvotedMsg:
		return LoadRecipeCmd(s.deps.Recipes, s.recipeID)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return nil
}

func (s *DetailScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, Keys.Up):
		if s.offset > 0 {
			s.offset--
		}
		return nil

	case key.Matches(msg, Keys.Down):
		s.offset++ // clamped against content during render
		return nil

	case key.Matches(msg, Keys.HalfUp):
		s.offset -= s.height / 2
		if s.offset < 0 {
			s.offset = 0
		}
		return nil

	case key.Matches(msg, Keys.HalfDown):
		s.offset += s.height / 2
		return nil

	case key.Matches(msg, Keys.Home):
		s.offset = 0
		return nil

	case key.Matches(msg, Keys.Enter), key.Matches(msg, Keys.Cook):
		if s.recipe == nil {
			return nil
		}
		return NavigateCmd(Route{Kind: RouteInstruction, RecipeID: s.recipeID})

	case key.Matches(msg, Keys.Bookmark):
		if s.recipe == nil {
			return nil
		}
		return ToggleBookmarkCmd(s.deps.Recipes, s.recipeID)

	case key.Matches(msg, Keys.Upvote):
		if s.recipe == nil {
			return nil
		}
		return UpvoteCmd(s.deps.Recipes, s.recipeID)

	case key.Matches(msg, Keys.Ingredients):
		if s.recipe == nil {
			return nil
		}
		return AddIngredientsCmd(s.deps.Grocery, s.recipe)

	case key.Matches(msg, Keys.OpenSource):
		if s.recipe == nil || s.recipe.SourceURL == "" {
			return nil
		}
		return OpenSourceCmd(s.deps.Opener, s.recipe.SourceURL)

	case key.Matches(msg, Keys.Edit):
		if s.recipe == nil || !s.recipe.Mine {
			return nil
		}
		r := s.recipe
		return func() tea.Msg {
			return NavigateMsg{Route: Route{Kind: RouteAdd}, Recipe: r}
		}
	}
	return nil
}

// renderHeader draws the fixed metadata zone
func (s *DetailScreen) renderHeader(width int) string {
	r := s.recipe
	var b strings.Builder

	title := r.Title
	if r.Mine {
		title += " (mine)"
	}
	b.WriteString(styles.TitleStyle.Render(styles.Truncate(title, width)))
	b.WriteString("\n")

	var crumbs []string
	if r.Category != "" {
		crumbs = append(crumbs, r.Category)
	}
	if r.Cuisine != "" {
		crumbs = append(crumbs, r.Cuisine)
	}
	if len(crumbs) > 0 {
		b.WriteString(styles.SubtitleStyle.Render(strings.Join(crumbs, " · ")))
		b.WriteString("\n")
	}

	var meta []string
	if r.Servings > 0 {
		meta = append(meta, fmt.Sprintf("serves %d", r.Servings))
	}
	if r.PrepMinutes > 0 {
		meta = append(meta, fmt.Sprintf("prep %dm", r.PrepMinutes))
	}
	if r.CookMinutes > 0 {
		meta = append(meta, fmt.Sprintf("cook %dm", r.CookMinutes))
	}
	meta = append(meta, r.Difficulty.String())
	b.WriteString(styles.DimStyle.Render(strings.Join(meta, " · ")))
	b.WriteString("\n")

	status := []string{
		styles.AccentStyle.Render("▲ " + components.FormatUpvotes(r.Upvotes)),
		components.RenderBookmark(r.Bookmarked),
	}
	if r.Bookmarked {
		status = append(status, styles.DimStyle.Render("saved"))
	}
	b.WriteString(strings.Join(status, "  "))

	return b.String()
}

// renderBody draws the scrollable zone: description, ingredients, and
// a step summary
func (s *DetailScreen) renderBody(width int) string {
	r := s.recipe
	var sections []string

	if md := s.renderMarkdown(); md != "" {
		sections = append(sections, md)
	}

	if len(r.Ingredients) > 0 {
		var b strings.Builder
		b.WriteString(styles.AccentStyle.Render(fmt.Sprintf("Ingredients (%d)", len(r.Ingredients))))
		for _, ing := range r.Ingredients {
			b.WriteString("\n")
			b.WriteString("  " + styles.Truncate(ing.Label(), width-2))
		}
		sections = append(sections, b.String())
	}

	if len(r.Steps) > 0 {
		var b strings.Builder
		b.WriteString(styles.AccentStyle.Render(fmt.Sprintf("Steps (%d)", len(r.Steps))))
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("  about %s · press Enter to start cooking", r.DurationLabel())))
		sections = append(sections, b.String())
	}

	return strings.Join(sections, "\n\n")
}

// renderFooter draws the fixed bottom zone
func (s *DetailScreen) renderFooter(width int) string {
	r := s.recipe
	var b strings.Builder
	b.WriteString(styles.DimStyle.Render(strings.Repeat("─", width)))
	if r.SourceURL != "" {
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render(styles.Truncate("source: "+r.SourceURL, width)))
	}
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render("Enter: Start Cooking"))
	return b.String()
}

// View renders the three zones with the body windowed at the scroll
// offset
func (s *DetailScreen) View() string {
	style := styles.ActiveBorder
	frameW, frameH := style.GetFrameSize()
	contentWidth := s.width - frameW - 2
	if contentWidth < 20 {
		contentWidth = 20
	}

	if s.loading {
		return style.
			Width(s.width - frameW).
			Height(s.height - frameH).
			Render(styles.DimStyle.Render("Loading recipe..."))
	}
	if s.recipe == nil {
		return style.
			Width(s.width - frameW).
			Height(s.height - frameH).
			Render(styles.ErrorStyle.Render("Recipe not found"))
	}

	headerLines := strings.Split(s.renderHeader(contentWidth), "\n")
	bodyLines := strings.Split(s.renderBody(contentWidth), "\n")
	footerLines := strings.Split(s.renderFooter(contentWidth), "\n")

	innerHeight := s.height - frameH
	available := innerHeight - len(headerLines) - len(footerLines) - detailChromeHeight
	if available < 1 {
		available = 1
	}

	maxOffset := len(bodyLines) - available
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.offset > maxOffset {
		s.offset = maxOffset
	}
	end := s.offset + available
	if end > len(bodyLines) {
		end = len(bodyLines)
	}
	visible := bodyLines[s.offset:end]

	up := " "
	if s.offset > 0 {
		up = styles.DimStyle.Render("↑ more")
	}
	down := " "
	if end < len(bodyLines) {
		down = styles.DimStyle.Render("↓ more")
	}

	var parts []string
	parts = append(parts, headerLines...)
	parts = append(parts, "", up)
	parts = append(parts, visible...)
	for i := len(visible); i < available; i++ {
		parts = append(parts, "")
	}
	parts = append(parts, down)
	parts = append(parts, footerLines...)

	return style.
		Width(s.width - frameW).
		Height(innerHeight).
		Render(strings.Join(parts, "\n"))
}
