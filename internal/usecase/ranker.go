package usecase

import (
	"sort"

	"github.com/stylelens/backend/internal/domain"
)

// Business-rule adjustments applied on top of similarity
const (
	popularityWeight    = 0.1
	highRatingBonus     = 0.05
	highRatingThreshold = 4.0
	availabilityBonus   = 0.02
)

// Ranker reorders scored candidates by business rules. It is a pure,
// side-effect-free step: no I/O, stable for ties.
type Ranker struct{}

// NewRanker creates a new ranker
func NewRanker() *Ranker {
	return &Ranker{}
}

// Rank computes the ranking score for every candidate and returns a new
// slice sorted descending by it. The input slice is not modified.
func (r *Ranker) Rank(candidates []domain.ScoredCandidate) []domain.ScoredCandidate {
	ranked := make([]domain.ScoredCandidate, len(candidates))
	copy(ranked, candidates)

	for i := range ranked {
		ranked[i].RankingScore = rankingScore(&ranked[i])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RankingScore > ranked[j].RankingScore
	})

	return ranked
}

// rankingScore is similarity plus popularity, rating and availability bonuses
func rankingScore(c *domain.ScoredCandidate) float64 {
	score := c.Similarity

	if c.Product.Popularity > 0 {
		score += popularityWeight * c.Product.Popularity
	}
	if c.Product.Rating > highRatingThreshold {
		score += highRatingBonus
	}
	if c.Product.Available() {
		score += availabilityBonus
	}

	return score
}
