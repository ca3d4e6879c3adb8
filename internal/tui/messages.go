package tui

import (
	"github.com/mmcdole/sous/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// RecipesLoadedMsg signals that the full recipe list has been loaded
type RecipesLoadedMsg struct {
	Recipes []*domain.Recipe
}

// MyRecipesLoadedMsg signals that the user's own recipes have been loaded
type MyRecipesLoadedMsg struct {
	Recipes []*domain.Recipe
}

// SavedRecipesLoadedMsg signals that bookmarked recipes have been loaded
type SavedRecipesLoadedMsg struct {
	Recipes []*domain.Recipe
}

// CategoryRecipesLoadedMsg signals that one category's recipes have been loaded
type CategoryRecipesLoadedMsg struct {
	Recipes  []*domain.Recipe
	Category string
}

// CategoriesLoadedMsg signals that category counts have been loaded
type CategoriesLoadedMsg struct {
	Categories []domain.CategoryCount
}

// RecipeLoadedMsg signals that a single recipe has been loaded
type RecipeLoadedMsg struct {
	Recipe *domain.Recipe
}

// PlanLoadedMsg signals that the week plan has been loaded. Titles maps
// assigned recipe IDs to display titles so the planner renders without
// further lookups.
type PlanLoadedMsg struct {
	Plan   *domain.WeekPlan
	Titles map[int]string
}

// GroceryLoadedMsg signals that the grocery list has been loaded
type GroceryLoadedMsg struct {
	Items []domain.GroceryItem
}

// ProfileLoadedMsg signals that the profile screen data has been loaded
type ProfileLoadedMsg struct {
	Profile *domain.Profile
	Stats   domain.CookStats
	History []domain.HistoryEntry
	Titles  map[int]string
}

// BookmarkToggledMsg signals that a recipe's bookmark state flipped
type BookmarkToggledMsg struct {
	RecipeID   int
	Bookmarked bool
}

// UpvotedMsg signals that an upvote was recorded
type UpvotedMsg struct {
	RecipeID int
	Upvotes  int
}

// RecipeSavedMsg signals that a recipe was created or updated
type RecipeSavedMsg struct {
	RecipeID int
	Title    string
}

// RecipeDeletedMsg signals that a recipe was removed
type RecipeDeletedMsg struct {
	RecipeID int
	Title    string
}

// RecipeImportedMsg signals that a recipe was scraped from a URL
type RecipeImportedMsg struct {
	Recipe *domain.Recipe
}

// GroceryItemAddedMsg signals that one item landed on the grocery list
type GroceryItemAddedMsg struct {
	Item domain.GroceryItem
}

// IngredientsAddedMsg signals that a recipe's ingredients landed on the
// grocery list
type IngredientsAddedMsg struct {
	Count int
	Title string
}

// GroceryToggledMsg signals that a grocery item's done state flipped
type GroceryToggledMsg struct {
	ItemID string
	Done   bool
}

// GroceryRemovedMsg signals that a grocery item was removed
type GroceryRemovedMsg struct {
	ItemID string
}

// CheckedClearedMsg signals that completed grocery items were swept
type CheckedClearedMsg struct {
	Count int
}

// SlotAssignedMsg signals that a planner slot changed
type SlotAssignedMsg struct {
	Day      int
	Slot     domain.MealSlot
	RecipeID int // 0 = cleared
}

// PlanClearedMsg signals that the whole week plan was reset
type PlanClearedMsg struct{}

// CookedRecordedMsg signals that a completed cook was written to history
type CookedRecordedMsg struct {
	RecipeID int
}

// ProfileSavedMsg signals that the profile was updated
type ProfileSavedMsg struct {
	Profile *domain.Profile
}

// SearchIndexReadyMsg signals that all recipes are indexed for search
type SearchIndexReadyMsg struct {
	Count int
}

// SourceOpenedMsg signals that a source URL was handed to the browser
type SourceOpenedMsg struct {
	URL string
}

// NavigateMsg signals navigation to a new route. Recipe optionally
// carries a prefill for the add screen (edit and import flows).
// Replace swaps the current screen instead of pushing, so back skips it.
type NavigateMsg struct {
	Route   Route
	Recipe  *domain.Recipe
	Replace bool
}

// NavigateBackMsg signals navigation back one level
type NavigateBackMsg struct{}

// ShowConfirmMsg asks the app to display a yes/no prompt; Confirm runs
// on yes. Declining discards it.
type ShowConfirmMsg struct {
	Prompt  string
	Confirm interface{} // tea.Cmd
}

// RefreshMsg triggers a refresh of the current screen
type RefreshMsg struct{}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
