package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/mmcdole/sous/internal/domain"
)

// ProfileStores is the slice of the store the profile service needs
type ProfileStores interface {
	domain.ProfileStore
	domain.HistoryStore
	domain.BookmarkStore
	domain.RecipeStore
}

// ProfileService manages the local cook profile and cooking history
type ProfileService struct {
	store  ProfileStores
	logger *slog.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(store ProfileStores, logger *slog.Logger) *ProfileService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileService{store: store, logger: logger}
}

// Profile returns the stored profile, or a default one before first save
func (s *ProfileService) Profile(ctx context.Context) (*domain.Profile, error) {
	p, err := s.store.Profile()
	if err != nil {
		s.logger.Error("failed to load profile", "error", err)
		return nil, err
	}
	if p == nil {
		return &domain.Profile{Name: "Chef"}, nil
	}
	return p, nil
}

// SaveProfile stores the profile, keeping the original join date
func (s *ProfileService) SaveProfile(ctx context.Context, name, favoriteCuisine string) (*domain.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrEmptyTitle
	}

	p := domain.Profile{
		Name:            name,
		FavoriteCuisine: strings.TrimSpace(favoriteCuisine),
		JoinedAt:        time.Now(),
	}
	if existing, err := s.store.Profile(); err == nil && existing != nil && !existing.JoinedAt.IsZero() {
		p.JoinedAt = existing.JoinedAt
	}

	if err := s.store.SaveProfile(p); err != nil {
		s.logger.Error("failed to save profile", "error", err)
		return nil, err
	}

	s.logger.Info("saved profile", "name", name)
	return &p, nil
}

// RecordCooked appends a history entry for a finished recipe
func (s *ProfileService) RecordCooked(ctx context.Context, recipeID int) error {
	entry := domain.HistoryEntry{RecipeID: recipeID, CookedAt: time.Now()}
	if err := s.store.AppendHistory(entry); err != nil {
		s.logger.Error("failed to record cooked recipe", "error", err, "recipeID", recipeID)
		return err
	}
	s.logger.Debug("recorded cooked recipe", "recipeID", recipeID)
	return nil
}

// History returns the most recent cooking history, newest first
func (s *ProfileService) History(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	return s.store.History(limit)
}

// Stats summarizes the profile counters shown on the profile screen
func (s *ProfileService) Stats(ctx context.Context) (domain.CookStats, error) {
	var stats domain.CookStats

	history, err := s.store.History(0)
	if err != nil {
		return stats, err
	}
	stats.Cooked = len(history)

	marks, err := s.store.Bookmarks()
	if err != nil {
		return stats, err
	}
	stats.Saved = len(marks)

	mine, err := s.store.UserRecipes()
	if err != nil {
		return stats, err
	}
	stats.Created = len(mine)

	return stats, nil
}
