package domain

import "time"

// Profile is the single local user identity
type Profile struct {
	Name            string    `json:"name"`
	FavoriteCuisine string    `json:"favorite_cuisine,omitempty"`
	JoinedAt        time.Time `json:"joined_at"`
}

// HistoryEntry records one completed cook
type HistoryEntry struct {
	RecipeID int       `json:"recipe_id"`
	CookedAt time.Time `json:"cooked_at"`
}

// CookStats summarizes activity for the profile screen
type CookStats struct {
	Cooked  int // completed cooking sessions
	Saved   int // bookmarked recipes
	Created int // recipes authored locally
}
