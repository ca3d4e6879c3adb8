package domain

import "context"

// CatalogSource provides the built-in recipe catalog. Implementations are
// read-only; user-authored recipes live behind RecipeStore instead.
type CatalogSource interface {
	// List returns every seed recipe
	List(ctx context.Context) ([]*Recipe, error)

	// Get returns one recipe by ID, or ErrRecipeNotFound
	Get(ctx context.Context, id int) (*Recipe, error)

	// ByCategory returns recipes whose category matches (case-insensitive)
	ByCategory(ctx context.Context, name string) ([]*Recipe, error)

	// Categories returns category names with recipe counts, sorted by name
	Categories(ctx context.Context) ([]CategoryCount, error)
}

// RecipeStore persists user-authored recipes
type RecipeStore interface {
	// SaveRecipe stores a recipe, allocating an ID when the recipe has none
	SaveRecipe(r *Recipe) (int, error)

	// UserRecipes returns all stored recipes, newest first
	UserRecipes() ([]*Recipe, error)

	// UserRecipe returns one stored recipe, or ErrRecipeNotFound
	UserRecipe(id int) (*Recipe, error)

	// DeleteRecipe removes a stored recipe
	DeleteRecipe(id int) error
}

// BookmarkStore persists the saved-recipe flags
type BookmarkStore interface {
	SetBookmark(recipeID int, on bool) error
	Bookmarks() (map[int]bool, error)
}

// VoteStore persists local upvote deltas layered over seed counts
type VoteStore interface {
	// AddUpvote bumps the delta for a recipe and returns the new delta
	AddUpvote(recipeID int) (int, error)
	UpvoteDeltas() (map[int]int, error)
}

// PlanStore persists the week plan
type PlanStore interface {
	SavePlan(p *WeekPlan) error
	// Plan returns the stored plan, or a zero plan when none was saved yet
	Plan() (*WeekPlan, error)
}

// GroceryStore persists the shopping list
type GroceryStore interface {
	SaveGroceryItem(item GroceryItem) error
	GroceryItems() ([]GroceryItem, error)
	DeleteGroceryItem(id string) error
	// DeleteCheckedGrocery removes all done items and reports how many
	DeleteCheckedGrocery() (int, error)
}

// ProfileStore persists the local profile
type ProfileStore interface {
	SaveProfile(p Profile) error
	// Profile returns the stored profile, or nil when none was saved yet
	Profile() (*Profile, error)
}

// HistoryStore persists completed cooking sessions
type HistoryStore interface {
	AppendHistory(e HistoryEntry) error
	// History returns the most recent entries, newest first
	History(limit int) ([]HistoryEntry, error)
}
