package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/mmcdole/sous/internal/domain"
)

// GroceryService manages the shopping list
type GroceryService struct {
	store  domain.GroceryStore
	logger *slog.Logger
}

// NewGroceryService creates a new grocery service
func NewGroceryService(store domain.GroceryStore, logger *slog.Logger) *GroceryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GroceryService{store: store, logger: logger}
}

// Items returns the shopping list in insertion order
func (s *GroceryService) Items(ctx context.Context) ([]domain.GroceryItem, error) {
	items, err := s.store.GroceryItems()
	if err != nil {
		s.logger.Error("failed to load grocery items", "error", err)
		return nil, err
	}
	return items, nil
}

// Add appends an item to the list. RecipeID is zero for hand-typed items.
func (s *GroceryService) Add(ctx context.Context, label, quantity string, recipeID int) (domain.GroceryItem, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return domain.GroceryItem{}, domain.ErrEmptyTitle
	}

	item := domain.GroceryItem{
		ID:       ulid.Make().String(),
		Label:    label,
		Quantity: strings.TrimSpace(quantity),
		RecipeID: recipeID,
		AddedAt:  time.Now(),
	}

	if err := s.store.SaveGroceryItem(item); err != nil {
		s.logger.Error("failed to save grocery item", "error", err, "label", label)
		return domain.GroceryItem{}, err
	}

	s.logger.Debug("added grocery item", "label", label)
	return item, nil
}

// AddRecipeIngredients adds every ingredient of a recipe to the list
// and reports how many were added
func (s *GroceryService) AddRecipeIngredients(ctx context.Context, r *domain.Recipe) (int, error) {
	added := 0
	for _, ing := range r.Ingredients {
		if ing.Name == "" {
			continue
		}
		quantity := strings.TrimSpace(ing.Quantity + " " + ing.Unit)
		if _, err := s.Add(ctx, ing.Name, quantity, r.ID); err != nil {
			return added, err
		}
		added++
	}

	s.logger.Info("added recipe ingredients", "recipeID", r.ID, "count", added)
	return added, nil
}

// Toggle flips an item's done state and returns the new state
func (s *GroceryService) Toggle(ctx context.Context, id string) (bool, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return false, err
	}

	for _, item := range items {
		if item.ID != id {
			continue
		}
		item.Done = !item.Done
		if err := s.store.SaveGroceryItem(item); err != nil {
			s.logger.Error("failed to toggle grocery item", "error", err, "id", id)
			return false, err
		}
		return item.Done, nil
	}
	return false, domain.ErrItemNotFound
}

// Remove deletes one item
func (s *GroceryService) Remove(ctx context.Context, id string) error {
	if err := s.store.DeleteGroceryItem(id); err != nil {
		return err
	}
	s.logger.Debug("removed grocery item", "id", id)
	return nil
}

// ClearChecked removes all done items and reports how many
func (s *GroceryService) ClearChecked(ctx context.Context) (int, error) {
	removed, err := s.store.DeleteCheckedGrocery()
	if err != nil {
		s.logger.Error("failed to clear checked items", "error", err)
		return 0, err
	}
	if removed > 0 {
		s.logger.Info("cleared checked grocery items", "count", removed)
	}
	return removed, nil
}
