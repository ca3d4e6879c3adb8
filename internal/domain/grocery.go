package domain

import "time"

// GroceryItem is one line on the shopping list. Items added from a recipe
// keep the recipe ID so the list can show where they came from.
type GroceryItem struct {
	ID       string    `json:"id"` // ULID, sorts by insertion time
	Label    string    `json:"label"`
	Quantity string    `json:"quantity,omitempty"`
	Done     bool      `json:"done"`
	RecipeID int       `json:"recipe_id,omitempty"` // 0 = added by hand
	AddedAt  time.Time `json:"added_at"`
}
