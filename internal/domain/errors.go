package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrRecipeNotFound indicates the requested recipe does not exist
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrEmptyTitle indicates a recipe was submitted without a title
	ErrEmptyTitle = errors.New("recipe title is empty")

	// ErrReadOnlyRecipe indicates an attempt to modify a seed recipe
	ErrReadOnlyRecipe = errors.New("seed recipes are read-only")

	// ErrItemNotFound indicates a grocery or plan entry does not exist
	ErrItemNotFound = errors.New("item not found")
)
