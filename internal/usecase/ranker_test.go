package usecase

import (
	"math"
	"testing"

	"github.com/stylelens/backend/internal/domain"
)

func candidate(id string, similarity float64, p func(*domain.Product)) domain.ScoredCandidate {
	product := testProduct(id, domain.CategoryTop)
	if p != nil {
		p(&product)
	}
	return domain.ScoredCandidate{Product: product, Similarity: similarity}
}

func TestRankingScore(t *testing.T) {
	ranker := NewRanker()

	t.Run("applies all bonuses", func(t *testing.T) {
		c := candidate("p", 0.6, func(p *domain.Product) {
			p.Popularity = 0.8
			p.Rating = 4.5
		})
		// 0.6 + 0.1*0.8 + 0.05 (rating > 4) + 0.02 (available) = 0.75
		ranked := ranker.Rank([]domain.ScoredCandidate{c})
		if math.Abs(ranked[0].RankingScore-0.75) > 1e-9 {
			t.Errorf("RankingScore = %v, want 0.75", ranked[0].RankingScore)
		}
	})

	t.Run("no rating bonus at exactly 4.0", func(t *testing.T) {
		c := candidate("p", 0.5, func(p *domain.Product) { p.Rating = 4.0 })
		ranked := ranker.Rank([]domain.ScoredCandidate{c})
		if math.Abs(ranked[0].RankingScore-0.52) > 1e-9 {
			t.Errorf("RankingScore = %v, want 0.52 (no rating bonus)", ranked[0].RankingScore)
		}
	})

	t.Run("unavailable product loses availability bonus", func(t *testing.T) {
		unavailable := false
		c := candidate("p", 0.5, func(p *domain.Product) { p.Availability = &unavailable })
		ranked := ranker.Rank([]domain.ScoredCandidate{c})
		if math.Abs(ranked[0].RankingScore-0.5) > 1e-9 {
			t.Errorf("RankingScore = %v, want 0.5", ranked[0].RankingScore)
		}
	})
}

func TestRankOrdering(t *testing.T) {
	ranker := NewRanker()

	t.Run("sorts descending by ranking score", func(t *testing.T) {
		input := []domain.ScoredCandidate{
			candidate("low", 0.3, nil),
			candidate("high", 0.9, nil),
			candidate("mid", 0.6, nil),
		}
		ranked := ranker.Rank(input)

		order := []string{ranked[0].Product.ID, ranked[1].Product.ID, ranked[2].Product.ID}
		want := []string{"high", "mid", "low"}
		for i := range want {
			if order[i] != want[i] {
				t.Errorf("position %d = %q, want %q", i, order[i], want[i])
			}
		}
	})

	t.Run("stable for ties", func(t *testing.T) {
		input := []domain.ScoredCandidate{
			candidate("first", 0.5, nil),
			candidate("second", 0.5, nil),
			candidate("third", 0.5, nil),
		}
		ranked := ranker.Rank(input)
		if ranked[0].Product.ID != "first" || ranked[2].Product.ID != "third" {
			t.Errorf("tie order changed: %q, %q, %q",
				ranked[0].Product.ID, ranked[1].Product.ID, ranked[2].Product.ID)
		}
	})

	t.Run("does not modify the input slice", func(t *testing.T) {
		input := []domain.ScoredCandidate{
			candidate("a", 0.1, nil),
			candidate("b", 0.9, nil),
		}
		_ = ranker.Rank(input)
		if input[0].Product.ID != "a" || input[0].RankingScore != 0 {
			t.Errorf("input slice was mutated")
		}
	})
}
