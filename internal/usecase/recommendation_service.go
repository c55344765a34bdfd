package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/stylelens/backend/internal/domain"
	"github.com/stylelens/backend/internal/infrastructure/catalog"
)

// Option bounds carried over from the request model
const (
	defaultMaxPerCategory = 3
	maxPerCategoryLimit   = 20
	defaultMinSimilarity  = 0.3
	defaultStyleResults   = 10

	// candidateOverfetch widens the search pool so per-category filtering and
	// truncation still operate on a full candidate set.
	candidateOverfetch = 3
)

// RecommendationConfig holds configuration for the recommendation service
type RecommendationConfig struct {
	MaxPerCategory     int
	MinSimilarity      float64
	EnableDebugLogging bool
}

// RecommendationService runs the recommendation pipeline: candidate lookup,
// similarity scoring, filtering, ranking and categorization/diversification.
type RecommendationService struct {
	store     *catalog.Store
	extractor domain.FeatureExtractor
	scorer    *SimilarityScorer
	ranker    *Ranker

	maxPerCategory     int
	minSimilarity      float64
	enableDebugLogging bool
}

// NewRecommendationService creates a recommendation service with dependencies
func NewRecommendationService(
	store *catalog.Store,
	extractor domain.FeatureExtractor,
	config RecommendationConfig,
) *RecommendationService {
	maxPerCategory := config.MaxPerCategory
	if maxPerCategory < 1 || maxPerCategory > maxPerCategoryLimit {
		maxPerCategory = defaultMaxPerCategory
	}

	minSimilarity := config.MinSimilarity
	if minSimilarity <= 0 || minSimilarity > 1 {
		minSimilarity = defaultMinSimilarity
	}

	return &RecommendationService{
		store:     store,
		extractor: extractor,
		scorer:    NewSimilarityScorer(ScorerConfig{EnableDebugLogging: config.EnableDebugLogging}),
		ranker:    NewRanker(),

		maxPerCategory:     maxPerCategory,
		minSimilarity:      minSimilarity,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// FindSimilarProducts scores the whole catalog against the query features and
// returns the top matches per category. An empty catalog yields empty lists,
// never an error.
func (s *RecommendationService) FindSimilarProducts(
	ctx context.Context,
	features *domain.FeatureSet,
	opts domain.RecommendOptions,
) (domain.CategorizedRecommendations, error) {
	maxPerCategory := opts.MaxPerCategory
	if maxPerCategory < 1 || maxPerCategory > maxPerCategoryLimit {
		maxPerCategory = s.maxPerCategory
	}
	minSimilarity := s.minSimilarity
	if opts.MinSimilarity != nil && *opts.MinSimilarity >= 0 && *opts.MinSimilarity <= 1 {
		minSimilarity = *opts.MinSimilarity
	}

	products := s.store.Snapshot()
	if len(products) == 0 {
		return domain.NewCategorizedRecommendations(), nil
	}

	candidates, err := s.scorer.ScoreCandidates(features, products)
	if err != nil {
		return nil, err
	}

	kept := candidates[:0:0]
	for _, c := range candidates {
		if c.Similarity >= minSimilarity {
			kept = append(kept, c)
		}
	}

	// Filter before truncation so the caps operate on valid candidates only
	kept = filterCandidates(kept, opts.PriceRange, opts.Brands, opts.ExcludeTags)

	ranked := s.ranker.Rank(kept)
	groups := CategorizeStrict(ranked, maxPerCategory)

	out := domain.NewCategorizedRecommendations()
	for category, group := range groups {
		items := make([]domain.RecommendationItem, 0, len(group))
		for _, c := range group {
			items = append(items, candidateItem(c, opts.IncludeScore))
		}
		out[category] = items
	}

	if s.enableDebugLogging {
		log.Printf("[RECOMMEND] FindSimilar: %d candidates, %d kept, maxPerCategory=%d",
			len(candidates), len(kept), maxPerCategory)
	}

	return out, nil
}

// RecommendationsByStyle recommends products from style keywords. With
// Diversify set, results are interleaved round-robin across categories so no
// single category dominates the list.
func (s *RecommendationService) RecommendationsByStyle(
	ctx context.Context,
	keywords []string,
	opts domain.StyleOptions,
) ([]domain.RecommendationItem, error) {
	if len(keywords) == 0 {
		return nil, domain.ErrInvalidRequest
	}

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = defaultStyleResults
	}

	scored := s.store.Search(keywords, domain.SearchOptions{
		MaxResults: maxResults * candidateOverfetch,
	})

	candidates := make([]domain.ScoredCandidate, 0, len(scored))
	for _, sp := range scored {
		candidates = append(candidates, domain.ScoredCandidate{
			Product:    sp.Product,
			Similarity: sp.Score,
		})
	}

	candidates = filterCandidates(candidates, opts.PriceRange, nil, opts.ExcludeTags)
	ranked := s.ranker.Rank(candidates)

	if opts.Diversify {
		ranked = RoundRobin(ranked, maxResults)
	} else if len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}

	items := make([]domain.RecommendationItem, 0, len(ranked))
	for _, c := range ranked {
		items = append(items, candidateItem(c, true))
	}

	if s.enableDebugLogging {
		log.Printf("[RECOMMEND] ByStyle %v: %d results (diversify=%v)", keywords, len(items), opts.Diversify)
	}

	return items, nil
}

// RecommendFromImage extracts features from the image through the configured
// adapter and recommends similar products. The returned provider string names
// the extractor that actually served the request.
func (s *RecommendationService) RecommendFromImage(
	ctx context.Context,
	image []byte,
	mimeType string,
	opts domain.RecommendOptions,
) (domain.CategorizedRecommendations, string, error) {
	features, err := s.extractor.ExtractFeatures(ctx, image, mimeType)
	if err != nil {
		return nil, "", err
	}

	recs, err := s.FindSimilarProducts(ctx, features, opts)
	if err != nil {
		return nil, "", err
	}

	return recs, features.Provider, nil
}

// Search exposes keyword search on the catalog
func (s *RecommendationService) Search(keywords []string, opts domain.SearchOptions) []domain.ScoredProduct {
	return s.store.Search(keywords, opts)
}

// Statistics exposes catalog statistics
func (s *RecommendationService) Statistics() domain.CatalogStats {
	return s.store.Stats()
}

// filterCandidates applies price-range, brand allow-list and tag deny-list
// constraints. Tag and brand comparisons are case-insensitive; any excluded
// tag removes the candidate.
func filterCandidates(
	candidates []domain.ScoredCandidate,
	priceRange *domain.PriceRange,
	brands []string,
	excludeTags []string,
) []domain.ScoredCandidate {
	if priceRange == nil && len(brands) == 0 && len(excludeTags) == 0 {
		return candidates
	}

	allowedBrands := make(map[string]bool, len(brands))
	for _, b := range brands {
		allowedBrands[strings.ToLower(b)] = true
	}
	excluded := make(map[string]bool, len(excludeTags))
	for _, t := range excludeTags {
		excluded[strings.ToLower(t)] = true
	}

	out := candidates[:0:0]
	for _, c := range candidates {
		if priceRange != nil && !priceRange.Contains(c.Product.Price) {
			continue
		}
		if len(allowedBrands) > 0 && !allowedBrands[strings.ToLower(c.Product.Brand)] {
			continue
		}
		if hasExcludedTag(c.Product.Tags, excluded) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func hasExcludedTag(tags []string, excluded map[string]bool) bool {
	for _, tag := range tags {
		if excluded[strings.ToLower(tag)] {
			return true
		}
	}
	return false
}

// candidateItem builds the caller-facing view of a scored candidate
func candidateItem(c domain.ScoredCandidate, includeScore bool) domain.RecommendationItem {
	item := domain.RecommendationItem{
		ID:           c.Product.ID,
		Title:        c.Product.Title,
		Price:        c.Product.Price,
		Tags:         c.Product.Tags,
		Category:     c.Product.Category,
		Brand:        c.Product.Brand,
		ImageURL:     c.Product.ImageURL,
		MatchReasons: c.MatchReasons,
	}
	if includeScore {
		score := c.Similarity
		item.Score = &score
	}
	return item
}
