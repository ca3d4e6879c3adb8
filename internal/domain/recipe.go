package domain

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty grades how demanding a recipe is to cook
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

// String returns the display name for the difficulty
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return "Unknown"
	}
}

// Ingredient is one line of a recipe's shopping list
type Ingredient struct {
	Quantity string `json:"quantity"` // "2", "1/2", "a pinch"
	Unit     string `json:"unit,omitempty"`
	Name     string `json:"name"`
}

// Label renders the ingredient as a single grocery-style line
func (i Ingredient) Label() string {
	parts := make([]string, 0, 3)
	if i.Quantity != "" {
		parts = append(parts, i.Quantity)
	}
	if i.Unit != "" {
		parts = append(parts, i.Unit)
	}
	parts = append(parts, i.Name)
	return strings.Join(parts, " ")
}

// Step is one instruction in cooking order
type Step struct {
	Instruction string `json:"instruction"`
	Minutes     int    `json:"minutes,omitempty"` // 0 = untimed
}

// Recipe is the central entity: seed recipes ship with the binary, user
// recipes live in the local store. IDs below the user sequence offset are
// seeds and stay read-only.
type Recipe struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"` // markdown
	ImageURL    string       `json:"image_url,omitempty"`
	SourceURL   string       `json:"source_url,omitempty"`
	Category    string       `json:"category"`
	Cuisine     string       `json:"cuisine,omitempty"`
	Servings    int          `json:"servings"`
	PrepMinutes int          `json:"prep_minutes"`
	CookMinutes int          `json:"cook_minutes"`
	Difficulty  Difficulty   `json:"difficulty"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []Step       `json:"steps"`
	Upvotes     int          `json:"upvotes"`
	Mine        bool         `json:"mine"` // authored on this machine
	Bookmarked  bool         `json:"-"`    // overlay from the bookmark store, never persisted here
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TotalMinutes is prep plus cook time
func (r *Recipe) TotalMinutes() int {
	return r.PrepMinutes + r.CookMinutes
}

// DurationLabel formats total time for the card badge ("25 min", "1h 30m")
func (r *Recipe) DurationLabel() string {
	m := r.TotalMinutes()
	if m <= 0 {
		return "—"
	}
	if m < 60 {
		return fmt.Sprintf("%d min", m)
	}
	if m%60 == 0 {
		return fmt.Sprintf("%dh", m/60)
	}
	return fmt.Sprintf("%dh %dm", m/60, m%60)
}

// Summary returns the first line of the description, for card subtitles
func (r *Recipe) Summary() string {
	desc := strings.TrimSpace(r.Description)
	if desc == "" {
		return ""
	}
	if i := strings.IndexAny(desc, "\n"); i >= 0 {
		desc = desc[:i]
	}
	return strings.TrimSpace(strings.TrimPrefix(desc, "#"))
}

// CategoryCount pairs a category name with how many recipes it holds
type CategoryCount struct {
	Name  string
	Count int
}
