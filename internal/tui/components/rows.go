package components

import (
	"fmt"
	"time"

	"github.com/mmcdole/sous/internal/domain"
	"github.com/mmcdole/sous/internal/tui/styles"
)

// Row implementations for the picker list. Each wraps one domain value
// and knows how to lay itself out as styled row parts.

// RecipeRow renders a recipe as a one-line list entry
type RecipeRow struct {
	Recipe *domain.Recipe
}

func (r RecipeRow) FilterText() string { return r.Recipe.Title }

func (r RecipeRow) RowParts(selected bool, width int) []styles.RowPart {
	mark := styles.BookmarkFillChar
	markFg := styles.DimGray
	if r.Recipe.Bookmarked {
		markFg = styles.Paprika
	}

	duration := " " + r.Recipe.DurationLabel()
	dimGray := styles.DimGray

	// Available space: width - mark(1) - space(1) - duration - margins(2)
	availableForTitle := width - 4 - len(duration)
	if availableForTitle < 5 {
		availableForTitle = 5
	}
	title := styles.Truncate(r.Recipe.Title, availableForTitle)

	return []styles.RowPart{
		{Text: mark, Foreground: &markFg},
		{Text: " " + title, Foreground: nil},
		{Text: duration, Foreground: &dimGray},
	}
}

// CategoryRow renders a category with its recipe count
type CategoryRow struct {
	Category domain.CategoryCount
}

func (c CategoryRow) FilterText() string { return c.Category.Name }

func (c CategoryRow) RowParts(selected bool, width int) []styles.RowPart {
	paprika := styles.Paprika
	dimGray := styles.DimGray

	badge := fmt.Sprintf(" %d recipes", c.Category.Count)
	if c.Category.Count == 1 {
		badge = " 1 recipe"
	}

	availableForTitle := width - 4 - len(badge)
	if availableForTitle < 5 {
		availableForTitle = 5
	}

	return []styles.RowPart{
		{Text: "▸", Foreground: &paprika},
		{Text: " " + styles.Truncate(c.Category.Name, availableForTitle), Foreground: nil},
		{Text: badge, Foreground: &dimGray},
	}
}

// WrapCategories converts category counts into picker rows
func WrapCategories(categories []domain.CategoryCount) []Row {
	rows := make([]Row, len(categories))
	for i, c := range categories {
		rows[i] = CategoryRow{Category: c}
	}
	return rows
}

// GroceryRow renders a shopping list item
type GroceryRow struct {
	Item domain.GroceryItem
}

func (g GroceryRow) FilterText() string { return g.Item.Label }

func (g GroceryRow) RowParts(selected bool, width int) []styles.RowPart {
	mark := styles.PendingChar
	markFg := styles.Paprika
	if g.Item.Done {
		mark = styles.DoneChar
		markFg = styles.Green
	}

	quantity := ""
	if g.Item.Quantity != "" {
		quantity = " " + g.Item.Quantity
	}
	dimGray := styles.DimGray

	availableForLabel := width - 4 - len(quantity)
	if availableForLabel < 5 {
		availableForLabel = 5
	}

	return []styles.RowPart{
		{Text: mark, Foreground: &markFg},
		{Text: " " + styles.Truncate(g.Item.Label, availableForLabel), Foreground: nil},
		{Text: quantity, Foreground: &dimGray},
	}
}

// WrapGroceryItems converts grocery items into picker rows
func WrapGroceryItems(items []domain.GroceryItem) []Row {
	rows := make([]Row, len(items))
	for i, item := range items {
		rows[i] = GroceryRow{Item: item}
	}
	return rows
}

// StepRow renders a numbered instruction step
type StepRow struct {
	Index int // zero-based
	Step  domain.Step
	Done  bool
}

func (s StepRow) FilterText() string { return s.Step.Instruction }

func (s StepRow) RowParts(selected bool, width int) []styles.RowPart {
	num := fmt.Sprintf("%2d.", s.Index+1)
	numFg := styles.Paprika
	if s.Done {
		numFg = styles.Green
	}

	minutes := ""
	if s.Step.Minutes > 0 {
		minutes = fmt.Sprintf(" %dm", s.Step.Minutes)
	}
	dimGray := styles.DimGray

	availableForText := width - 4 - len(num) - len(minutes)
	if availableForText < 5 {
		availableForText = 5
	}

	return []styles.RowPart{
		{Text: num, Foreground: &numFg},
		{Text: " " + styles.Truncate(s.Step.Instruction, availableForText), Foreground: nil},
		{Text: minutes, Foreground: &dimGray},
	}
}

// PlanSlotRow renders one meal slot of the week plan
type PlanSlotRow struct {
	Day         int
	Slot        domain.MealSlot
	RecipeTitle string // empty when the slot is unplanned
}

func (p PlanSlotRow) FilterText() string { return p.RecipeTitle }

func (p PlanSlotRow) RowParts(selected bool, width int) []styles.RowPart {
	paprika := styles.Paprika
	dimGray := styles.DimGray

	label := fmt.Sprintf("%s %s", domain.DayNames()[p.Day], p.Slot.String())

	availableForTitle := width - 4 - len(label)
	if availableForTitle < 5 {
		availableForTitle = 5
	}

	if p.RecipeTitle == "" {
		return []styles.RowPart{
			{Text: label, Foreground: &paprika},
			{Text: " " + styles.Truncate("not planned", availableForTitle), Foreground: &dimGray},
		}
	}
	return []styles.RowPart{
		{Text: label, Foreground: &paprika},
		{Text: " " + styles.Truncate(p.RecipeTitle, availableForTitle), Foreground: nil},
	}
}

// HistoryRow renders one cooked-recipe history entry
type HistoryRow struct {
	Entry domain.HistoryEntry
	Title string
}

func (h HistoryRow) FilterText() string { return h.Title }

func (h HistoryRow) RowParts(selected bool, width int) []styles.RowPart {
	green := styles.Green
	dimGray := styles.DimGray

	when := " " + h.Entry.CookedAt.Format("Jan 2")
	if time.Since(h.Entry.CookedAt) < 24*time.Hour {
		when = " today"
	}

	availableForTitle := width - 4 - len(when)
	if availableForTitle < 5 {
		availableForTitle = 5
	}

	return []styles.RowPart{
		{Text: styles.DoneChar, Foreground: &green},
		{Text: " " + styles.Truncate(h.Title, availableForTitle), Foreground: nil},
		{Text: when, Foreground: &dimGray},
	}
}
