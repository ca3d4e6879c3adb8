package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/sous/internal/domain"
	"github.com/mmcdole/sous/internal/tui/styles"
)

// Form fields in traversal order
type formField int

const (
	fieldImport formField = iota
	fieldTitle
	fieldCategory
	fieldCuisine
	fieldServings
	fieldPrep
	fieldCook
	fieldDifficulty
	fieldImage
	fieldSource
	fieldDescription
	fieldIngredients
	fieldSteps
	fieldCount
)

// AddScreen is the recipe form. It creates new recipes, edits the
// user's own, and prefills from a scraped web page.
type AddScreen struct {
	deps *Services

	inputs     map[formField]textinput.Model
	descArea   textarea.Model
	ingrArea   textarea.Model
	stepsArea  textarea.Model
	difficulty domain.Difficulty

	focus     formField
	base      *domain.Recipe // carries ID, votes, timestamps on edit
	importing bool

	width  int
	height int
}

// NewAddScreen creates the form, prefilled when editing or importing
func NewAddScreen(deps *Services, prefill *domain.Recipe) *AddScreen {
	newInput := func(placeholder string, limit int) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = limit
		ti.Prompt = ""
		return ti
	}

	inputs := map[formField]textinput.Model{
		fieldImport:   newInput("https://... (Enter to import)", 200),
		fieldTitle:    newInput("Weeknight carbonara", 80),
		fieldCategory: newInput("Pasta", 40),
		fieldCuisine:  newInput("Italian", 40),
		fieldServings: newInput("4", 3),
		fieldPrep:     newInput("15", 4),
		fieldCook:     newInput("30", 4),
		fieldImage:    newInput("https://... or leave empty", 200),
		fieldSource:   newInput("https://... or leave empty", 200),
	}

	newArea := func(placeholder string, height int) textarea.Model {
		ta := textarea.New()
		ta.Placeholder = placeholder
		ta.SetHeight(height)
		ta.ShowLineNumbers = false
		ta.CharLimit = 0
		return ta
	}

	s := &AddScreen{
		deps:      deps,
		inputs:    inputs,
		descArea:  newArea("Describe the dish (markdown works here)", 3),
		ingrArea:  newArea("One ingredient per line: 200 g spaghetti", 4),
		stepsArea: newArea("One step per line", 4),
		focus:     fieldTitle,
	}

	if prefill != nil {
		s.prefill(prefill)
	}
	s.setFocus(s.focus)
	return s
}

// prefill loads a recipe into the form. Editing keeps the identity,
// importing starts a fresh one.
func (s *AddScreen) prefill(r *domain.Recipe) {
	if r.Mine {
		s.base = r
	}

	set := func(f formField, v string) {
		ti := s.inputs[f]
		ti.SetValue(v)
		s.inputs[f] = ti
	}
	setInt := func(f formField, v int) {
		if v > 0 {
			set(f, strconv.Itoa(v))
		} else {
			set(f, "")
		}
	}

	set(fieldTitle, r.Title)
	set(fieldCategory, r.Category)
	set(fieldCuisine, r.Cuisine)
	setInt(fieldServings, r.Servings)
	setInt(fieldPrep, r.PrepMinutes)
	setInt(fieldCook, r.CookMinutes)
	set(fieldImage, r.ImageURL)
	set(fieldSource, r.SourceURL)
	s.difficulty = r.Difficulty

	s.descArea.SetValue(r.Description)

	lines := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		lines = append(lines, ing.Label())
	}
	s.ingrArea.SetValue(strings.Join(lines, "\n"))

	steps := make([]string, 0, len(r.Steps))
	for _, st := range r.Steps {
		steps = append(steps, st.Instruction)
	}
	s.stepsArea.SetValue(strings.Join(steps, "\n"))
}

// Init starts the cursor blink
func (s *AddScreen) Init() tea.Cmd {
	return textinput.Blink
}

// Title names the screen for the footer
func (s *AddScreen) Title() string {
	if s.base != nil {
		return "Edit Recipe"
	}
	return "Add Recipe"
}

// Cursor returns the focused field index
func (s *AddScreen) Cursor() int {
	return int(s.focus)
}

// SetCursor restores the focused field
func (s *AddScreen) SetCursor(pos int) {
	if pos >= 0 && pos < int(fieldCount) {
		s.setFocus(formField(pos))
	}
}

// Refresh is a no-op; the form owns its state
func (s *AddScreen) Refresh() tea.Cmd {
	return nil
}

// CapturesInput always reports true: every key belongs to the form
func (s *AddScreen) CapturesInput() bool {
	return true
}

// SetSize resizes the inputs
func (s *AddScreen) SetSize(width, height int) {
	s.width = width
	s.height = height

	inputWidth := width - 16
	if inputWidth > 70 {
		inputWidth = 70
	}
	if inputWidth < 20 {
		inputWidth = 20
	}
	for f, ti := range s.inputs {
		ti.Width = inputWidth
		s.inputs[f] = ti
	}
	s.descArea.SetWidth(inputWidth)
	s.ingrArea.SetWidth(inputWidth)
	s.stepsArea.SetWidth(inputWidth)
}

// setFocus moves focus to one widget, blurring the rest
func (s *AddScreen) setFocus(f formField) {
	s.focus = f
	for k, ti := range s.inputs {
		if k == f {
			ti.Focus()
		} else {
			ti.Blur()
		}
		s.inputs[k] = ti
	}

	s.descArea.Blur()
	s.ingrArea.Blur()
	s.stepsArea.Blur()
	switch f {
	case fieldDescription:
		s.descArea.Focus()
	case fieldIngredients:
		s.ingrArea.Focus()
	case fieldSteps:
		s.stepsArea.Focus()
	}
}

func (s *AddScreen) nextField() {
	s.setFocus((s.focus + 1) % fieldCount)
}

func (s *AddScreen) prevField() {
	s.setFocus((s.focus + fieldCount - 1) % fieldCount)
}

// Update handles messages
func (s *AddScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case RecipeImportedMsg:
		s.importing = false
		s.prefill(msg.Recipe)
		ti := s.inputs[fieldImport]
		ti.SetValue("")
		s.inputs[fieldImport] = ti
		s.setFocus(fieldTitle)
		return nil

	case RecipeSavedMsg:
		if s.base != nil {
			// Editing: the screen beneath refreshes on reveal
			return func() tea.Msg { return NavigateBackMsg{} }
		}
		id := msg.RecipeID
		return func() tea.Msg {
			return NavigateMsg{Route: Route{Kind: RouteDetail, RecipeID: id}, Replace: true}
		}

	case ErrMsg:
		s.importing = false
		return nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s.updateFocused(msg)
}

func (s *AddScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		return func() tea.Msg { return NavigateBackMsg{} }

	case "tab", "shift+tab":
		if msg.String() == "tab" {
			s.nextField()
		} else {
			s.prevField()
		}
		return nil

	case "ctrl+s":
		return s.save()

	case "enter":
		switch s.focus {
		case fieldImport:
			url := strings.TrimSpace(s.inputs[fieldImport].Value())
			if url == "" {
				s.nextField()
				return nil
			}
			if s.importing {
				return nil
			}
			s.importing = true
			return ImportRecipeCmd(s.deps.Importer, url)
		case fieldDescription, fieldIngredients, fieldSteps:
			return s.updateFocused(msg) // newline inside the textarea
		default:
			s.nextField()
			return nil
		}
	}

	if s.focus == fieldDifficulty {
		switch msg.String() {
		case "left", "h", "up", "k":
			s.difficulty = (s.difficulty + 2) % 3
			return nil
		case "right", "l", "down", "j", " ":
			s.difficulty = (s.difficulty + 1) % 3
			return nil
		}
		return nil
	}

	return s.updateFocused(msg)
}

// updateFocused routes input to the focused widget
func (s *AddScreen) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focus {
	case fieldDescription:
		s.descArea, cmd = s.descArea.Update(msg)
	case fieldIngredients:
		s.ingrArea, cmd = s.ingrArea.Update(msg)
	case fieldSteps:
		s.stepsArea, cmd = s.stepsArea.Update(msg)
	case fieldDifficulty:
		// nothing to type into
	default:
		ti := s.inputs[s.focus]
		ti, cmd = ti.Update(msg)
		s.inputs[s.focus] = ti
	}
	return cmd
}

// save validates and persists the form
func (s *AddScreen) save() tea.Cmd {
	r := s.buildRecipe()
	if strings.TrimSpace(r.Title) == "" {
		s.setFocus(fieldTitle)
		return func() tea.Msg {
			return StatusMsg{Message: "Title is required", IsError: true}
		}
	}
	return SaveRecipeCmd(s.deps.Recipes, r)
}

// buildRecipe assembles a recipe from the form values
func (s *AddScreen) buildRecipe() *domain.Recipe {
	atoi := func(f formField) int {
		n, err := strconv.Atoi(strings.TrimSpace(s.inputs[f].Value()))
		if err != nil || n < 0 {
			return 0
		}
		return n
	}

	r := &domain.Recipe{
		Title:       strings.TrimSpace(s.inputs[fieldTitle].Value()),
		Description: strings.TrimSpace(s.descArea.Value()),
		ImageURL:    strings.TrimSpace(s.inputs[fieldImage].Value()),
		SourceURL:   strings.TrimSpace(s.inputs[fieldSource].Value()),
		Category:    strings.TrimSpace(s.inputs[fieldCategory].Value()),
		Cuisine:     strings.TrimSpace(s.inputs[fieldCuisine].Value()),
		Servings:    atoi(fieldServings),
		PrepMinutes: atoi(fieldPrep),
		CookMinutes: atoi(fieldCook),
		Difficulty:  s.difficulty,
		Mine:        true,
	}
	if s.base != nil {
		r.ID = s.base.ID
		r.Upvotes = s.base.Upvotes
		r.CreatedAt = s.base.CreatedAt
	}

	for _, line := range strings.Split(s.ingrArea.Value(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.Ingredients = append(r.Ingredients, domain.Ingredient{Name: line})
	}
	for _, line := range strings.Split(s.stepsArea.Value(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.Steps = append(r.Steps, domain.Step{Instruction: line})
	}
	return r
}

// label renders a field label, accented when focused
func (s *AddScreen) label(f formField, text string) string {
	padded := fmt.Sprintf("%-12s", text)
	if s.focus == f {
		return styles.AccentStyle.Render(padded)
	}
	return styles.DimStyle.Render(padded)
}

// View renders the form, windowed vertically around the focused field
func (s *AddScreen) View() string {
	style := styles.ActiveBorder
	frameW, frameH := style.GetFrameSize()

	header := styles.TitleStyle.Render(s.Title())
	if s.importing {
		header += "  " + styles.AccentStyle.Render("importing...")
	}

	// Each block is one field; track which lines belong to the focused
	// field so the window can keep it visible
	type block struct {
		field formField
		text  string
	}
	diffLabel := fmt.Sprintf("〈 %s 〉", s.difficulty)
	if s.focus == fieldDifficulty {
		diffLabel = styles.HighlightStyle.Render(diffLabel)
	}
	blocks := []block{
		{fieldImport, s.label(fieldImport, "Import URL") + s.inputs[fieldImport].View()},
		{fieldTitle, s.label(fieldTitle, "Title") + s.inputs[fieldTitle].View()},
		{fieldCategory, s.label(fieldCategory, "Category") + s.inputs[fieldCategory].View()},
		{fieldCuisine, s.label(fieldCuisine, "Cuisine") + s.inputs[fieldCuisine].View()},
		{fieldServings, s.label(fieldServings, "Servings") + s.inputs[fieldServings].View()},
		{fieldPrep, s.label(fieldPrep, "Prep (min)") + s.inputs[fieldPrep].View()},
		{fieldCook, s.label(fieldCook, "Cook (min)") + s.inputs[fieldCook].View()},
		{fieldDifficulty, s.label(fieldDifficulty, "Difficulty") + diffLabel},
		{fieldImage, s.label(fieldImage, "Image URL") + s.inputs[fieldImage].View()},
		{fieldSource, s.label(fieldSource, "Source URL") + s.inputs[fieldSource].View()},
		{fieldDescription, s.label(fieldDescription, "Description") + "\n" + s.descArea.View()},
		{fieldIngredients, s.label(fieldIngredients, "Ingredients") + "\n" + s.ingrArea.View()},
		{fieldSteps, s.label(fieldSteps, "Steps") + "\n" + s.stepsArea.View()},
	}

	var lines []string
	focusStart, focusEnd := 0, 0
	for _, bl := range blocks {
		blLines := strings.Split(bl.text, "\n")
		if bl.field == s.focus {
			focusStart = len(lines)
			focusEnd = focusStart + len(blLines)
		}
		lines = append(lines, blLines...)
	}

	footer := styles.DimStyle.Render("Tab: Next Field   Ctrl+S: Save   Esc: Cancel")

	available := s.height - frameH - 3 // header, blank, footer
	if available < 4 {
		available = 4
	}
	start := 0
	if len(lines) > available {
		// Slide the window to keep the focused block on screen
		if focusEnd > available {
			start = focusEnd - available
		}
		if start > focusStart {
			start = focusStart
		}
		if start+available > len(lines) {
			start = len(lines) - available
		}
		lines = lines[start : start+available]
	}

	content := header + "\n\n" + strings.Join(lines, "\n") + "\n" + footer
	return style.
		Width(s.width - frameW).
		Height(s.height - frameH).
		Render(content)
}
