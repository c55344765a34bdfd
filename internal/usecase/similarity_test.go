package usecase

import (
	"math"
	"testing"

	"github.com/stylelens/backend/internal/domain"
)

func testFeatures(colors []string, categories []domain.Category, style string) *domain.FeatureSet {
	meta := domain.FeatureMetadata{
		DominantColors:     colors,
		DetectedCategories: categories,
		OverallStyle:       style,
	}
	return &domain.FeatureSet{
		Vector:     []float64{0.1, 0.2, 0.3},
		Dimensions: 3,
		Provider:   "test",
		Metadata:   meta,
	}
}

func testProduct(id string, category domain.Category, tags ...string) domain.Product {
	return domain.Product{
		ID:       id,
		Title:    "Product " + id,
		Tags:     append([]string{}, tags...),
		Price:    10000,
		Category: category,
	}
}

func TestScoreWorkedExample(t *testing.T) {
	// Query: colors [black, white], category [top], style "casual".
	// Candidate: tags [black, gray, casual], category top.
	// Color 0.5, category 1.0, style 1.0, tag 0.5 -> 0.4*0.5 + 0.3*1.0 + 0.2*1.0 + 0.1*0.5 = 0.75
	scorer := NewSimilarityScorer(ScorerConfig{})
	features := testFeatures([]string{"black", "white"}, []domain.Category{domain.CategoryTop}, "casual")
	product := testProduct("p1", domain.CategoryTop, "black", "gray", "casual")

	score, reasons := scorer.Score(features, &product)
	if math.Abs(score-0.75) > 1e-9 {
		t.Errorf("score = %v, want exactly 0.75", score)
	}
	if len(reasons) == 0 {
		t.Errorf("expected match reasons, got none")
	}
}

func TestScoreBounds(t *testing.T) {
	scorer := NewSimilarityScorer(ScorerConfig{})

	featureSets := []*domain.FeatureSet{
		testFeatures(nil, nil, ""),
		testFeatures([]string{"black"}, nil, ""),
		testFeatures([]string{"black", "white", "red", "blue"}, []domain.Category{domain.CategoryShoes}, "formal"),
		testFeatures([]string{"teal"}, domain.Categories(), "sporty"),
	}
	products := []domain.Product{
		testProduct("a", domain.CategoryTop),
		testProduct("b", domain.CategoryPants, "black", "white", "red", "blue", "casual"),
		testProduct("c", domain.CategoryShoes, "sneakers", "formal"),
		testProduct("d", domain.CategoryAccessories, "gold", "watch"),
	}

	for _, features := range featureSets {
		for _, p := range products {
			score, _ := scorer.Score(features, &p)
			if score < 0 || score > 1 {
				t.Errorf("score for %q = %v, want in [0,1]", p.ID, score)
			}
		}
	}
}

func TestScoreColorNeutral(t *testing.T) {
	t.Run("candidate without color tags scores neutral", func(t *testing.T) {
		score, shared := scoreColors([]string{"black", "white"}, []string{"casual", "cotton"})
		if score != 0.5 {
			t.Errorf("score = %v, want 0.5 (neutral)", score)
		}
		if len(shared) != 0 {
			t.Errorf("shared = %v, want empty", shared)
		}
	})

	t.Run("query without colors scores neutral", func(t *testing.T) {
		score, _ := scoreColors(nil, []string{"black"})
		if score != 0.5 {
			t.Errorf("score = %v, want 0.5 (neutral)", score)
		}
	})

	t.Run("intersection over larger side", func(t *testing.T) {
		// query {black}, candidate {black, gray, navy} -> 1/3
		score, shared := scoreColors([]string{"black"}, []string{"black", "gray", "navy"})
		if math.Abs(score-1.0/3.0) > 1e-9 {
			t.Errorf("score = %v, want 1/3", score)
		}
		if len(shared) != 1 || shared[0] != "black" {
			t.Errorf("shared = %v, want [black]", shared)
		}
	})

	t.Run("duplicated query colors count once", func(t *testing.T) {
		// Sets are {black} vs {black}: intersection 1, denom 1 -> 1.0, never 2.0
		score, shared := scoreColors([]string{"black", "black"}, []string{"black", "casual"})
		if score != 1.0 {
			t.Errorf("score = %v, want 1.0", score)
		}
		if len(shared) != 1 || shared[0] != "black" {
			t.Errorf("shared = %v, want [black]", shared)
		}
	})

	t.Run("stays within bounds for any duplication", func(t *testing.T) {
		score, _ := scoreColors(
			[]string{"black", "Black", "white", "white", "white"},
			[]string{"black", "white"},
		)
		if score < 0 || score > 1 {
			t.Errorf("score = %v, want in [0,1]", score)
		}
		if score != 1.0 {
			t.Errorf("score = %v, want 1.0 ({black,white} vs {black,white})", score)
		}
	})
}

func TestScoreCategory(t *testing.T) {
	detected := []domain.Category{domain.CategoryTop}

	t.Run("exact category match", func(t *testing.T) {
		p := testProduct("p", domain.CategoryTop)
		if got := scoreCategory(detected, &p); got != 1.0 {
			t.Errorf("score = %v, want 1.0", got)
		}
	})

	t.Run("synonym tag implies detected category", func(t *testing.T) {
		p := testProduct("p", domain.CategoryAccessories, "hoodie")
		if got := scoreCategory(detected, &p); got != 0.7 {
			t.Errorf("score = %v, want 0.7", got)
		}
	})

	t.Run("no relation", func(t *testing.T) {
		p := testProduct("p", domain.CategoryShoes, "sneakers")
		if got := scoreCategory(detected, &p); got != 0.3 {
			t.Errorf("score = %v, want 0.3", got)
		}
	})
}

func TestScoreRenormalization(t *testing.T) {
	scorer := NewSimilarityScorer(ScorerConfig{})

	t.Run("undefined category and style terms are excluded", func(t *testing.T) {
		// Only color (neutral 0.5) and tag (0.5) are defined:
		// (0.4*0.5 + 0.1*0.5) / (0.4 + 0.1) = 0.5
		features := testFeatures([]string{"black"}, nil, "")
		product := testProduct("p", domain.CategoryTop, "casual")

		score, _ := scorer.Score(features, &product)
		if math.Abs(score-0.5) > 1e-9 {
			t.Errorf("score = %v, want 0.5 after renormalization", score)
		}
	})

	t.Run("style term joins when style detected", func(t *testing.T) {
		// Color neutral 0.5, style match 1.0, tag 0.5:
		// (0.4*0.5 + 0.2*1.0 + 0.1*0.5) / 0.7 = 0.45/0.7
		features := testFeatures([]string{"black"}, nil, "casual")
		product := testProduct("p", domain.CategoryTop, "casual")

		score, _ := scorer.Score(features, &product)
		want := 0.45 / 0.7
		if math.Abs(score-want) > 1e-9 {
			t.Errorf("score = %v, want %v", score, want)
		}
	})
}

func TestScoreCandidates(t *testing.T) {
	scorer := NewSimilarityScorer(ScorerConfig{})

	t.Run("rejects malformed feature set", func(t *testing.T) {
		bad := &domain.FeatureSet{
			Vector:     []float64{1, 2},
			Dimensions: 5, // mismatch
			Metadata: domain.FeatureMetadata{
				DominantColors:     []string{},
				DetectedCategories: []domain.Category{},
			},
		}
		_, err := scorer.ScoreCandidates(bad, []domain.Product{testProduct("p", domain.CategoryTop)})
		if err == nil {
			t.Fatalf("expected error for malformed feature set")
		}
	})

	t.Run("skips invalid candidates instead of aborting", func(t *testing.T) {
		features := testFeatures([]string{"black"}, []domain.Category{domain.CategoryTop}, "casual")
		products := []domain.Product{
			testProduct("ok", domain.CategoryTop, "black"),
			{ID: "", Title: "broken", Category: domain.CategoryTop, Tags: []string{}},
			testProduct("ok2", domain.CategoryPants, "jeans"),
		}

		candidates, err := scorer.ScoreCandidates(features, products)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(candidates) != 2 {
			t.Errorf("candidates = %d, want 2 (invalid one skipped)", len(candidates))
		}
	})
}

func TestMatchReasons(t *testing.T) {
	scorer := NewSimilarityScorer(ScorerConfig{})
	features := testFeatures([]string{"black", "white"}, []domain.Category{domain.CategoryTop}, "casual")
	product := testProduct("p", domain.CategoryTop, "black", "white", "casual")

	_, reasons := scorer.Score(features, &product)

	want := map[string]bool{
		"Similar colors: black, white": true,
		"Same category: top":           true,
		"Matching style: casual":       true,
	}
	if len(reasons) != len(want) {
		t.Fatalf("reasons = %v, want %d entries", reasons, len(want))
	}
	for _, r := range reasons {
		if !want[r] {
			t.Errorf("unexpected reason %q", r)
		}
	}
}
