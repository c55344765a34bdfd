package catalog

import (
	"encoding/json"
	"log"
	"math"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/stylelens/backend/internal/domain"
)

// StoreConfig holds configuration for the catalog store
type StoreConfig struct {
	Path               string
	MaxResults         int
	ScoreThreshold     float64
	EnableDebugLogging bool
}

// Store owns the in-memory product collection and answers read queries.
// The product slice is an immutable snapshot: readers take it under RLock and
// keep iterating it lock-free, mutations build a new slice and swap it.
type Store struct {
	mu       sync.RWMutex
	products []domain.Product

	path               string
	maxResults         int
	scoreThreshold     float64
	enableDebugLogging bool
}

// NewStore creates a catalog store and loads the catalog file. A load failure
// leaves the store empty rather than failing: the engine degrades to "no
// recommendations" instead of crashing.
func NewStore(config StoreConfig) *Store {
	maxResults := config.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}

	s := &Store{
		products:           []domain.Product{},
		path:               config.Path,
		maxResults:         maxResults,
		scoreThreshold:     config.ScoreThreshold,
		enableDebugLogging: config.EnableDebugLogging,
	}

	if config.Path != "" {
		if err := s.Load(config.Path); err != nil {
			log.Printf("[CATALOG] Failed to load catalog: %v", err)
		}
	}

	return s
}

// Load parses the UTF-8 array-of-records catalog file at path and replaces
// the current snapshot with the validated entries. Records that fail the
// Product invariant are skipped, not fatal.
func (s *Store) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ErrCatalogLoad
	}

	var records []domain.Product
	if err := json.Unmarshal(data, &records); err != nil {
		return domain.ErrCatalogLoad
	}

	products := make([]domain.Product, 0, len(records))
	skipped := 0
	for _, p := range records {
		if p.Tags == nil {
			p.Tags = []string{}
		}
		if err := p.Validate(); err != nil {
			skipped++
			if s.enableDebugLogging {
				log.Printf("[CATALOG] Skipping invalid record %q: %v", p.ID, err)
			}
			continue
		}
		products = append(products, p)
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()

	log.Printf("[CATALOG] Loaded %d products from %s (%d skipped)", len(products), path, skipped)
	return nil
}

// Reload re-reads the catalog file and atomically swaps the snapshot.
// Returns false when the file cannot be parsed; the old snapshot is kept.
func (s *Store) Reload() bool {
	if s.path == "" {
		return false
	}
	return s.Load(s.path) == nil
}

// Snapshot returns the current product slice. Callers must not mutate it.
func (s *Store) Snapshot() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products
}

// Size returns the number of products currently in the catalog
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// GetByID looks up a single product by its id
func (s *Store) GetByID(id string) (domain.Product, bool) {
	for _, p := range s.Snapshot() {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// GetByCategory returns all products in the given category, in catalog order
func (s *Store) GetByCategory(category domain.Category) []domain.Product {
	out := []domain.Product{}
	for _, p := range s.Snapshot() {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Search scores every candidate against the keywords and returns matches
// sorted by score descending, catalog order on ties, truncated to MaxResults.
// Per keyword a candidate earns 2 points for an exact case-insensitive tag
// match plus 1 point for a substring match anywhere in title + joined tags.
// Candidates scoring at or below ScoreThreshold are dropped.
func (s *Store) Search(keywords []string, opts domain.SearchOptions) []domain.ScoredProduct {
	normalized := normalizeKeywords(keywords)
	if len(normalized) == 0 {
		return []domain.ScoredProduct{}
	}

	categories := opts.Categories
	if len(categories) == 0 {
		categories = domain.Categories()
	}
	allowed := make(map[domain.Category]bool, len(categories))
	for _, c := range categories {
		allowed[c] = true
	}

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}
	threshold := opts.ScoreThreshold
	if threshold <= 0 {
		threshold = s.scoreThreshold
	}

	results := []domain.ScoredProduct{}
	for _, p := range s.Snapshot() {
		if !allowed[p.Category] {
			continue
		}
		score := scoreProduct(&p, normalized)
		if score <= threshold {
			continue
		}
		results = append(results, domain.ScoredProduct{Product: p, Score: score})
	}

	// Stable: ties keep catalog order
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > maxResults {
		results = results[:maxResults]
	}

	if s.enableDebugLogging {
		log.Printf("[CATALOG] Search %v -> %d results", normalized, len(results))
	}

	return results
}

// scoreProduct computes the keyword score for a single product
func scoreProduct(p *domain.Product, keywords []string) float64 {
	haystack := strings.ToLower(p.Title + " " + strings.Join(p.Tags, " "))

	score := 0.0
	for _, kw := range keywords {
		for _, tag := range p.Tags {
			if strings.EqualFold(tag, kw) {
				score += 2.0
				break
			}
		}
		if strings.Contains(haystack, kw) {
			score += 1.0
		}
	}
	return score
}

// normalizeKeywords lowercases and trims keywords, dropping empties
func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// FilterByPriceRange keeps products whose price lies in [min, max]. A max of
// zero or below means unbounded above.
func FilterByPriceRange(items []domain.Product, min, max int) []domain.Product {
	out := []domain.Product{}
	for _, p := range items {
		if p.Price < min {
			continue
		}
		if max > 0 && p.Price > max {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterByTags keeps products carrying every required tag and none of the
// excluded tags. Tag comparison is case-insensitive; any single excluded tag
// removes the item.
func FilterByTags(items []domain.Product, required, excluded []string) []domain.Product {
	req := lowerSet(required)
	exc := lowerSet(excluded)

	out := []domain.Product{}
	for _, p := range items {
		tags := lowerSet(p.Tags)
		if containsAny(tags, exc) {
			continue
		}
		if !containsAll(tags, req) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func lowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = true
	}
	return set
}

func containsAny(tags, wanted map[string]bool) bool {
	for t := range wanted {
		if tags[t] {
			return true
		}
	}
	return false
}

func containsAll(tags, wanted map[string]bool) bool {
	for t := range wanted {
		if !tags[t] {
			return false
		}
	}
	return true
}

// Stats computes aggregate statistics over the current snapshot. Average
// price rounds to the nearest integer; min degenerates to 0 on an empty
// catalog instead of an unbounded sentinel.
func (s *Store) Stats() domain.CatalogStats {
	products := s.Snapshot()

	categories := make(map[domain.Category]int, len(domain.Categories()))
	for _, c := range domain.Categories() {
		categories[c] = 0
	}

	minPrice := math.MaxInt
	maxPrice := 0
	totalPrice := 0
	for _, p := range products {
		categories[p.Category]++
		totalPrice += p.Price
		if p.Price < minPrice {
			minPrice = p.Price
		}
		if p.Price > maxPrice {
			maxPrice = p.Price
		}
	}

	average := 0
	if len(products) > 0 {
		average = int(math.Round(float64(totalPrice) / float64(len(products))))
	}
	if minPrice == math.MaxInt {
		minPrice = 0
	}

	return domain.CatalogStats{
		TotalProducts: len(products),
		Categories:    categories,
		PriceRange: domain.PriceStats{
			Min:     minPrice,
			Max:     maxPrice,
			Average: average,
		},
	}
}

// Add appends a validated product to the catalog. Returns false when the
// product fails validation or its id already exists. Mutation is
// copy-on-write so in-flight readers keep a consistent snapshot.
func (s *Store) Add(p domain.Product) bool {
	if err := p.Validate(); err != nil {
		if s.enableDebugLogging {
			log.Printf("[CATALOG] Add %q rejected: %v", p.ID, err)
		}
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.products {
		if existing.ID == p.ID {
			if s.enableDebugLogging {
				log.Printf("[CATALOG] Add %q rejected: %v", p.ID, domain.ErrDuplicateProduct)
			}
			return false
		}
	}

	next := make([]domain.Product, len(s.products), len(s.products)+1)
	copy(next, s.products)
	s.products = append(next, p)
	return true
}

// Update replaces the product with the same id. Returns false when the
// replacement fails validation or the id does not exist.
func (s *Store) Update(p domain.Product) bool {
	if err := p.Validate(); err != nil {
		if s.enableDebugLogging {
			log.Printf("[CATALOG] Update %q rejected: %v", p.ID, err)
		}
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.products {
		if existing.ID == p.ID {
			next := make([]domain.Product, len(s.products))
			copy(next, s.products)
			next[i] = p
			s.products = next
			return true
		}
	}
	return false
}

// Remove deletes the product with the given id. Returns false when absent.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.products {
		if existing.ID == id {
			next := make([]domain.Product, 0, len(s.products)-1)
			next = append(next, s.products[:i]...)
			next = append(next, s.products[i+1:]...)
			s.products = next
			return true
		}
	}
	return false
}
