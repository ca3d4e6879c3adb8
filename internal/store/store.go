package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/sous/internal/domain"
)

// Bucket names
var (
	bucketRecipes   = []byte("recipes")
	bucketBookmarks = []byte("bookmarks")
	bucketVotes     = []byte("votes")
	bucketPlan      = []byte("plan")
	bucketGrocery   = []byte("grocery")
	bucketProfile   = []byte("profile")
	bucketHistory   = []byte("history")
)

// userIDStart keeps user recipe IDs clear of the seed catalog range
const userIDStart = 1000

// Store persists user data in BoltDB. With an empty directory it runs
// memory-only, which the tests rely on.
type Store struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache and seq

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte

	// ID sequence for memory-only mode
	memSeq int
}

// Compile-time interface checks
var (
	_ domain.RecipeStore   = (*Store)(nil)
	_ domain.BookmarkStore = (*Store)(nil)
	_ domain.VoteStore     = (*Store)(nil)
	_ domain.PlanStore     = (*Store)(nil)
	_ domain.GroceryStore  = (*Store)(nil)
	_ domain.ProfileStore  = (*Store)(nil)
	_ domain.HistoryStore  = (*Store)(nil)
)

func New(dataDir string) (*Store, error) {
	if dataDir == "" {
		// Memory-only mode (no persistence)
		return &Store{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dataDir, "sous.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketRecipes, bucketBookmarks, bucketVotes, bucketPlan, bucketGrocery, bucketProfile, bucketHistory} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, cache: make(map[string][]byte)}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *Store) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	// Read from BoltDB
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *Store) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	// Update memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	// Write to BoltDB
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

func (s *Store) delete(bucket []byte, key string) {
	cacheKey := string(bucket) + ":" + key

	// Clear from memory cache
	s.mu.Lock()
	delete(s.cache, cacheKey)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	// Delete from BoltDB
	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b != nil {
			b.Delete([]byte(key))
		}
		return nil
	})
}

// scan returns all values under keys with the given prefix, in key order.
// BoltDB reads come straight from the cursor; memory-only mode sorts the
// cache keys to match.
func (s *Store) scan(bucket []byte, prefix string) [][]byte {
	if s.db == nil {
		cachePrefix := string(bucket) + ":" + prefix

		s.mu.RLock()
		keys := make([]string, 0)
		for k := range s.cache {
			if strings.HasPrefix(k, cachePrefix) {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		out := make([][]byte, 0, len(keys))
		for _, k := range keys {
			out = append(out, s.cache[k])
		}
		s.mu.RUnlock()
		return out
	}

	var out [][]byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		prefixBytes := []byte(prefix)
		for k, v := c.Seek(prefixBytes); k != nil && strings.HasPrefix(string(k), prefix); k, v = c.Next() {
			data := make([]byte, len(v))
			copy(data, v)
			out = append(out, data)
		}
		return nil
	})
	return out
}

// === Recipes (user-authored) ===

func recipeKey(id int) string {
	return fmt.Sprintf("r:%08d", id)
}

// SaveRecipe stores a user recipe, allocating an ID above the seed range
// when the recipe has none.
func (s *Store) SaveRecipe(r *domain.Recipe) (int, error) {
	if strings.TrimSpace(r.Title) == "" {
		return 0, domain.ErrEmptyTitle
	}

	if r.ID == 0 {
		id, err := s.nextRecipeID()
		if err != nil {
			return 0, err
		}
		r.ID = id
		r.CreatedAt = time.Now()
	}
	r.Mine = true
	r.UpdatedAt = time.Now()

	if err := s.set(bucketRecipes, recipeKey(r.ID), r); err != nil {
		return 0, err
	}
	return r.ID, nil
}

func (s *Store) nextRecipeID() (int, error) {
	if s.db == nil {
		s.mu.Lock()
		s.memSeq++
		id := userIDStart + s.memSeq
		s.mu.Unlock()
		return id, nil
	}

	var id int
	err := s.db.Update(func(tx *bolt.Tx) error {
		seq, err := tx.Bucket(bucketRecipes).NextSequence()
		if err != nil {
			return err
		}
		id = userIDStart + int(seq)
		return nil
	})
	return id, err
}

// UserRecipes returns all stored recipes, newest first
func (s *Store) UserRecipes() ([]*domain.Recipe, error) {
	var out []*domain.Recipe
	for _, data := range s.scan(bucketRecipes, "r:") {
		var r domain.Recipe
		if err := json.Unmarshal(data, &r); err != nil {
			continue
		}
		out = append(out, &r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// UserRecipe returns one stored recipe
func (s *Store) UserRecipe(id int) (*domain.Recipe, error) {
	var r domain.Recipe
	if !s.get(bucketRecipes, recipeKey(id), &r) {
		return nil, domain.ErrRecipeNotFound
	}
	return &r, nil
}

// DeleteRecipe removes a stored recipe and its bookmark
func (s *Store) DeleteRecipe(id int) error {
	if _, err := s.UserRecipe(id); err != nil {
		return err
	}
	s.delete(bucketRecipes, recipeKey(id))
	return s.SetBookmark(id, false)
}

// === Bookmarks ===

func (s *Store) Bookmarks() (map[int]bool, error) {
	marks := make(map[int]bool)
	s.get(bucketBookmarks, "map", &marks)
	return marks, nil
}

func (s *Store) SetBookmark(recipeID int, on bool) error {
	marks, _ := s.Bookmarks()
	if on {
		marks[recipeID] = true
	} else {
		delete(marks, recipeID)
	}
	return s.set(bucketBookmarks, "map", marks)
}

// === Votes (local deltas over seed counts) ===

func (s *Store) UpvoteDeltas() (map[int]int, error) {
	deltas := make(map[int]int)
	s.get(bucketVotes, "map", &deltas)
	return deltas, nil
}

func (s *Store) AddUpvote(recipeID int) (int, error) {
	deltas, _ := s.UpvoteDeltas()
	deltas[recipeID]++
	if err := s.set(bucketVotes, "map", deltas); err != nil {
		return 0, err
	}
	return deltas[recipeID], nil
}

// === Week plan ===

func (s *Store) SavePlan(p *domain.WeekPlan) error {
	return s.set(bucketPlan, "week", p)
}

func (s *Store) Plan() (*domain.WeekPlan, error) {
	var p domain.WeekPlan
	s.get(bucketPlan, "week", &p)
	return &p, nil
}

// === Grocery list ===

func groceryKey(id string) string {
	return "item:" + id
}

func (s *Store) SaveGroceryItem(item domain.GroceryItem) error {
	if item.ID == "" {
		return fmt.Errorf("grocery item has no id")
	}
	return s.set(bucketGrocery, groceryKey(item.ID), item)
}

// GroceryItems returns the list in insertion order (ULID keys sort by time)
func (s *Store) GroceryItems() ([]domain.GroceryItem, error) {
	var out []domain.GroceryItem
	for _, data := range s.scan(bucketGrocery, "item:") {
		var item domain.GroceryItem
		if err := json.Unmarshal(data, &item); err != nil {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *Store) DeleteGroceryItem(id string) error {
	var item domain.GroceryItem
	if !s.get(bucketGrocery, groceryKey(id), &item) {
		return domain.ErrItemNotFound
	}
	s.delete(bucketGrocery, groceryKey(id))
	return nil
}

// DeleteCheckedGrocery removes all done items and reports how many
func (s *Store) DeleteCheckedGrocery() (int, error) {
	items, err := s.GroceryItems()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, item := range items {
		if item.Done {
			s.delete(bucketGrocery, groceryKey(item.ID))
			removed++
		}
	}
	return removed, nil
}

// === Profile ===

func (s *Store) SaveProfile(p domain.Profile) error {
	return s.set(bucketProfile, "current", p)
}

// Profile returns the stored profile, or nil when none was saved yet
func (s *Store) Profile() (*domain.Profile, error) {
	var p domain.Profile
	if !s.get(bucketProfile, "current", &p) {
		return nil, nil
	}
	return &p, nil
}

// === Cooking history ===

func (s *Store) AppendHistory(e domain.HistoryEntry) error {
	key := "e:" + ulid.Make().String()
	return s.set(bucketHistory, key, e)
}

// History returns the most recent entries, newest first
func (s *Store) History(limit int) ([]domain.HistoryEntry, error) {
	var out []domain.HistoryEntry
	for _, data := range s.scan(bucketHistory, "e:") {
		var e domain.HistoryEntry
		if err := json.Unmarshal(data, &e); err != nil {
			continue
		}
		out = append(out, e)
	}
	// scan is oldest-first; flip it
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
