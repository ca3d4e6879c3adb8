package service

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sahilm "github.com/sahilm/fuzzy"

	"github.com/mmcdole/sous/internal/domain"
)

// FilterResult is a search hit with match metadata for highlighting
type FilterResult struct {
	Recipe         *domain.Recipe
	MatchedIndexes []int // Character positions that matched
	Score          int
}

// filterIndex implements sahilm/fuzzy.Source for zero-allocation matching
type filterIndex struct {
	recipes     []*domain.Recipe
	lowerTitles []string // Pre-computed lowercase titles
}

func (idx *filterIndex) String(i int) string { return idx.lowerTitles[i] }
func (idx *filterIndex) Len() int            { return len(idx.recipes) }

// SearchService ranks recipes against free-text queries.
// The index is rebuilt whenever the recipe list reloads.
type SearchService struct {
	logger *slog.Logger

	mu    sync.RWMutex
	index *filterIndex
	seen  map[int]bool // Recipe IDs already indexed
}

// NewSearchService creates a new search service
func NewSearchService(logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchService{
		logger: logger,
		index:  &filterIndex{},
		seen:   make(map[int]bool),
	}
}

// Index replaces the search index with the given recipes
func (s *SearchService) Index(recipes []*domain.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.index = &filterIndex{}
	s.seen = make(map[int]bool)

	for _, r := range recipes {
		if s.seen[r.ID] {
			continue
		}
		s.seen[r.ID] = true
		s.index.recipes = append(s.index.recipes, r)
		s.index.lowerTitles = append(s.index.lowerTitles, strings.ToLower(r.Title))
	}

	s.logger.Debug("indexed recipes", "count", len(s.index.recipes))
}

// Count returns the number of indexed recipes
func (s *SearchService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Len()
}

// Search returns recipes matching the query, best match first
func (s *SearchService) Search(query string) []*domain.Recipe {
	if query == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(query)

	type rankedItem struct {
		recipe *domain.Recipe
		score  int
	}

	ranked := make([]rankedItem, 0)
	for i, title := range s.index.lowerTitles {
		r := s.index.recipes[i]
		if !fuzzy.MatchFold(query, title) && !strings.Contains(strings.ToLower(r.Category), query) {
			continue
		}
		ranked = append(ranked, rankedItem{recipe: r, score: matchScore(title, query, r)})
	}

	// Lower score is better; ties keep index order
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score < ranked[j].score
	})

	results := make([]*domain.Recipe, len(ranked))
	for i, item := range ranked {
		results[i] = item.recipe
	}

	s.logger.Debug("search complete", "query", query, "results", len(results))
	return results
}

// FilterLocal matches the query against titles and returns hits with
// matched character positions for highlighting. Best match first.
func (s *SearchService) FilterLocal(query string) []FilterResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if query == "" || s.index.Len() == 0 {
		return nil
	}

	matches := sahilm.FindFrom(strings.ToLower(query), s.index)

	results := make([]FilterResult, len(matches))
	for i, match := range matches {
		results[i] = FilterResult{
			Recipe:         s.index.recipes[match.Index],
			MatchedIndexes: match.MatchedIndexes,
			Score:          match.Score,
		}
	}
	return results
}

// matchScore ranks a match. Lower score = better match.
func matchScore(title, query string, r *domain.Recipe) int {
	// Exact match is best
	if title == query {
		return 0
	}

	// Prefix match is very good
	if strings.HasPrefix(title, query) {
		return 10
	}

	// Contains match is good
	if strings.Contains(title, query) {
		return 50
	}

	// Fuzzy distance
	score := 100 + fuzzy.LevenshteinDistance(query, title)

	// Bookmarked recipes surface first among weak matches
	if r.Bookmarked {
		score -= 10
	}

	return score
}
