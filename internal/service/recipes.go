package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/sous/internal/domain"
)

// cachedResult stores cached data with timestamp
type cachedResult struct {
	Items     interface{}
	FetchedAt time.Time
}

// RecipeStores is the slice of the store the recipe service needs
type RecipeStores interface {
	domain.RecipeStore
	domain.BookmarkStore
	domain.VoteStore
}

// RecipeService merges the seed catalog with user-authored recipes and
// overlays bookmarks and local upvotes on both.
// Cache invalidation happens on mutation, not by TTL.
type RecipeService struct {
	catalog domain.CatalogSource
	store   RecipeStores
	logger  *slog.Logger

	cache   map[string]cachedResult
	cacheMu sync.RWMutex
}

// NewRecipeService creates a new recipe service
func NewRecipeService(catalog domain.CatalogSource, store RecipeStores, logger *slog.Logger) *RecipeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecipeService{
		catalog: catalog,
		store:   store,
		logger:  logger,
		cache:   make(map[string]cachedResult),
	}
}

// All returns every recipe, catalog first then user recipes newest-first,
// with bookmark and upvote overlays applied.
func (s *RecipeService) All(ctx context.Context) ([]*domain.Recipe, error) {
	cacheKey := "all"

	// Check cache
	if cached, ok := s.getFromCache(cacheKey); ok {
		s.logger.Debug("cache hit", "key", cacheKey)
		return cached.([]*domain.Recipe), nil
	}

	seeded, err := s.catalog.List(ctx)
	if err != nil {
		s.logger.Error("failed to list catalog", "error", err)
		return nil, err
	}

	mine, err := s.store.UserRecipes()
	if err != nil {
		s.logger.Error("failed to list user recipes", "error", err)
		return nil, err
	}

	merged := make([]*domain.Recipe, 0, len(seeded)+len(mine))
	merged = append(merged, seeded...)
	merged = append(merged, mine...)

	if err := s.overlay(merged); err != nil {
		return nil, err
	}

	s.setCache(cacheKey, merged)
	s.logger.Info("loaded recipes", "catalog", len(seeded), "user", len(mine))

	return merged, nil
}

// Recipe returns one recipe by ID, checking the catalog before the store
func (s *RecipeService) Recipe(ctx context.Context, id int) (*domain.Recipe, error) {
	r, err := s.catalog.Get(ctx, id)
	if err != nil {
		r, err = s.store.UserRecipe(id)
		if err != nil {
			return nil, err
		}
	}

	if err := s.overlay([]*domain.Recipe{r}); err != nil {
		return nil, err
	}
	return r, nil
}

// ByCategory returns merged recipes filtered by category name,
// case-insensitive. An empty name lists everything.
func (s *RecipeService) ByCategory(ctx context.Context, category string) ([]*domain.Recipe, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	if category == "" {
		return append([]*domain.Recipe(nil), all...), nil
	}

	filtered := make([]*domain.Recipe, 0)
	for _, r := range all {
		if strings.EqualFold(r.Category, category) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// Categories returns category names with recipe counts, sorted by name
func (s *RecipeService) Categories(ctx context.Context) ([]domain.CategoryCount, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, r := range all {
		if r.Category != "" {
			counts[r.Category]++
		}
	}

	out := make([]domain.CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, domain.CategoryCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

// Mine returns only user-authored recipes, newest first
func (s *RecipeService) Mine(ctx context.Context) ([]*domain.Recipe, error) {
	recipes, err := s.store.UserRecipes()
	if err != nil {
		s.logger.Error("failed to list user recipes", "error", err)
		return nil, err
	}
	if err := s.overlay(recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// Bookmarked returns all bookmarked recipes in merged order
func (s *RecipeService) Bookmarked(ctx context.Context) ([]*domain.Recipe, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	saved := make([]*domain.Recipe, 0)
	for _, r := range all {
		if r.Bookmarked {
			saved = append(saved, r)
		}
	}
	return saved, nil
}

// ToggleBookmark flips the bookmark for a recipe and returns the new state
func (s *RecipeService) ToggleBookmark(ctx context.Context, id int) (bool, error) {
	if _, err := s.Recipe(ctx, id); err != nil {
		return false, err
	}

	marks, err := s.store.Bookmarks()
	if err != nil {
		return false, err
	}

	next := !marks[id]
	if err := s.store.SetBookmark(id, next); err != nil {
		s.logger.Error("failed to set bookmark", "error", err, "recipeID", id)
		return false, err
	}

	s.invalidate()
	s.logger.Debug("toggled bookmark", "recipeID", id, "bookmarked", next)
	return next, nil
}

// Upvote adds one local upvote and returns the new displayed total
func (s *RecipeService) Upvote(ctx context.Context, id int) (int, error) {
	r, err := s.Recipe(ctx, id)
	if err != nil {
		return 0, err
	}

	if _, err := s.store.AddUpvote(id); err != nil {
		s.logger.Error("failed to add upvote", "error", err, "recipeID", id)
		return 0, err
	}

	s.invalidate()
	return r.Upvotes + 1, nil
}

// Save stores a user recipe and returns its ID
func (s *RecipeService) Save(ctx context.Context, r *domain.Recipe) (int, error) {
	id, err := s.store.SaveRecipe(r)
	if err != nil {
		s.logger.Error("failed to save recipe", "error", err, "title", r.Title)
		return 0, err
	}

	s.invalidate()
	s.logger.Info("saved recipe", "recipeID", id, "title", r.Title)
	return id, nil
}

// Delete removes a user recipe. Catalog recipes cannot be deleted.
func (s *RecipeService) Delete(ctx context.Context, id int) error {
	if _, err := s.catalog.Get(ctx, id); err == nil {
		return domain.ErrReadOnlyRecipe
	}

	if err := s.store.DeleteRecipe(id); err != nil {
		s.logger.Error("failed to delete recipe", "error", err, "recipeID", id)
		return err
	}

	s.invalidate()
	s.logger.Info("deleted recipe", "recipeID", id)
	return nil
}

// overlay applies bookmark and upvote-delta state onto recipes in place
func (s *RecipeService) overlay(recipes []*domain.Recipe) error {
	marks, err := s.store.Bookmarks()
	if err != nil {
		return err
	}
	deltas, err := s.store.UpvoteDeltas()
	if err != nil {
		return err
	}

	for _, r := range recipes {
		r.Bookmarked = marks[r.ID]
		if d := deltas[r.ID]; d > 0 {
			r.Upvotes += d
		}
	}
	return nil
}

// invalidate clears the merged-list cache after any mutation
func (s *RecipeService) invalidate() {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.cache = make(map[string]cachedResult)
}

// getFromCache retrieves an item from memory cache
func (s *RecipeService) getFromCache(key string) (interface{}, bool) {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()

	cached, ok := s.cache[key]
	if !ok {
		return nil, false
	}
	return cached.Items, true
}

// setCache stores an item in cache
func (s *RecipeService) setCache(key string, items interface{}) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.cache[key] = cachedResult{
		Items:     items,
		FetchedAt: time.Now(),
	}
}
