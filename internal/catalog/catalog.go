// Package catalog provides the built-in recipe catalog, parsed once from an
// embedded YAML seed file and served from memory.
package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mmcdole/sous/internal/domain"
)

//go:embed seed.yaml
var seedData []byte

// seed DTOs keep the YAML shape out of the domain package
type seedFile struct {
	Recipes []seedRecipe `yaml:"recipes"`
}

type seedIngredient struct {
	Quantity string `yaml:"quantity"`
	Unit     string `yaml:"unit"`
	Name     string `yaml:"name"`
}

type seedStep struct {
	Instruction string `yaml:"instruction"`
	Minutes     int    `yaml:"minutes"`
}

type seedRecipe struct {
	ID          int              `yaml:"id"`
	Title       string           `yaml:"title"`
	Category    string           `yaml:"category"`
	Cuisine     string           `yaml:"cuisine"`
	Servings    int              `yaml:"servings"`
	PrepMinutes int              `yaml:"prep_minutes"`
	CookMinutes int              `yaml:"cook_minutes"`
	Difficulty  string           `yaml:"difficulty"`
	Upvotes     int              `yaml:"upvotes"`
	ImageURL    string           `yaml:"image_url"`
	Description string           `yaml:"description"`
	Ingredients []seedIngredient `yaml:"ingredients"`
	Steps       []seedStep       `yaml:"steps"`
}

// Source serves the seed catalog from memory
type Source struct {
	mu      sync.RWMutex
	recipes map[int]*domain.Recipe
	order   []int // seed file order
}

// Compile-time interface check
var _ domain.CatalogSource = (*Source)(nil)

// NewSource parses the embedded seed file
func NewSource() (*Source, error) {
	return newFromYAML(seedData)
}

func newFromYAML(data []byte) (*Source, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing seed catalog: %w", err)
	}

	s := &Source{recipes: make(map[int]*domain.Recipe, len(file.Recipes))}
	base := time.Date(2025, time.January, 6, 12, 0, 0, 0, time.UTC)

	for i, sr := range file.Recipes {
		r, err := mapSeedRecipe(sr)
		if err != nil {
			return nil, fmt.Errorf("seed recipe %d: %w", sr.ID, err)
		}
		if _, dup := s.recipes[r.ID]; dup {
			return nil, fmt.Errorf("seed recipe %d: duplicate id", r.ID)
		}
		r.CreatedAt = base.AddDate(0, 0, i)
		r.UpdatedAt = r.CreatedAt
		s.recipes[r.ID] = r
		s.order = append(s.order, r.ID)
	}

	return s, nil
}

func mapSeedRecipe(sr seedRecipe) (*domain.Recipe, error) {
	if sr.ID <= 0 {
		return nil, fmt.Errorf("invalid id %d", sr.ID)
	}
	if strings.TrimSpace(sr.Title) == "" {
		return nil, domain.ErrEmptyTitle
	}

	r := &domain.Recipe{
		ID:          sr.ID,
		Title:       sr.Title,
		Description: sr.Description,
		ImageURL:    sr.ImageURL,
		Category:    sr.Category,
		Cuisine:     sr.Cuisine,
		Servings:    sr.Servings,
		PrepMinutes: sr.PrepMinutes,
		CookMinutes: sr.CookMinutes,
		Difficulty:  parseDifficulty(sr.Difficulty),
		Upvotes:     sr.Upvotes,
	}

	for _, ing := range sr.Ingredients {
		r.Ingredients = append(r.Ingredients, domain.Ingredient{
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
			Name:     ing.Name,
		})
	}
	for _, st := range sr.Steps {
		r.Steps = append(r.Steps, domain.Step{
			Instruction: st.Instruction,
			Minutes:     st.Minutes,
		})
	}

	return r, nil
}

func parseDifficulty(s string) domain.Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "medium":
		return domain.DifficultyMedium
	case "hard":
		return domain.DifficultyHard
	default:
		return domain.DifficultyEasy
	}
}

// List returns every seed recipe in seed order
func (s *Source) List(ctx context.Context) ([]*domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Recipe, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, copyRecipe(s.recipes[id]))
	}
	return out, nil
}

// Get returns one seed recipe by ID
func (s *Source) Get(ctx context.Context, id int) (*domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[id]
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}
	return copyRecipe(r), nil
}

// ByCategory returns seed recipes matching the category, case-insensitive
func (s *Source) ByCategory(ctx context.Context, name string) ([]*domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Recipe
	for _, id := range s.order {
		r := s.recipes[id]
		if strings.EqualFold(r.Category, name) {
			out = append(out, copyRecipe(r))
		}
	}
	return out, nil
}

// Categories returns category names with counts, sorted by name
func (s *Source) Categories(ctx context.Context) ([]domain.CategoryCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, r := range s.recipes {
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

// copyRecipe returns a shallow copy so callers can overlay mutable state
// without touching the seed data. Ingredients and steps are read-only.
func copyRecipe(r *domain.Recipe) *domain.Recipe {
	out := *r
	return &out
}
