package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmcdole/sous/internal/domain"
)

// PlannerService manages the weekly meal plan
type PlannerService struct {
	store  domain.PlanStore
	logger *slog.Logger
}

// NewPlannerService creates a new planner service
func NewPlannerService(store domain.PlanStore, logger *slog.Logger) *PlannerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlannerService{store: store, logger: logger}
}

// Plan returns the current week plan, empty when nothing was planned yet
func (s *PlannerService) Plan(ctx context.Context) (*domain.WeekPlan, error) {
	plan, err := s.store.Plan()
	if err != nil {
		s.logger.Error("failed to load plan", "error", err)
		return nil, err
	}
	return plan, nil
}

// Assign puts a recipe into a day and meal slot
func (s *PlannerService) Assign(ctx context.Context, day int, slot domain.MealSlot, recipeID int) error {
	if day < 0 || day > 6 {
		return fmt.Errorf("day %d out of range", day)
	}

	plan, err := s.Plan(ctx)
	if err != nil {
		return err
	}

	plan.Days[day].Set(slot, recipeID)
	if err := s.store.SavePlan(plan); err != nil {
		s.logger.Error("failed to save plan", "error", err)
		return err
	}

	s.logger.Debug("assigned meal", "day", day, "slot", slot.String(), "recipeID", recipeID)
	return nil
}

// Clear empties a day and meal slot
func (s *PlannerService) Clear(ctx context.Context, day int, slot domain.MealSlot) error {
	return s.Assign(ctx, day, slot, 0)
}

// ClearAll drops the whole week plan
func (s *PlannerService) ClearAll(ctx context.Context) error {
	if err := s.store.SavePlan(&domain.WeekPlan{}); err != nil {
		s.logger.Error("failed to clear plan", "error", err)
		return err
	}
	s.logger.Info("cleared week plan")
	return nil
}

// AssignedRecipeIDs returns the distinct recipe IDs in the plan, in
// day and slot order
func (s *PlannerService) AssignedRecipeIDs(ctx context.Context) ([]int, error) {
	plan, err := s.Plan(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	var ids []int
	for day := range plan.Days {
		for _, slot := range domain.MealSlots() {
			id := plan.Days[day].Get(slot)
			if id > 0 && !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}
