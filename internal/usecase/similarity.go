package usecase

import (
	"fmt"
	"log"
	"strings"

	"github.com/stylelens/backend/internal/domain"
)

// Sub-score weights. They sum to 1.0; when a sub-score is undefined for a
// candidate its weight is excluded from both numerator and denominator so the
// final score stays normalized in [0,1].
const (
	weightColor    = 0.4
	weightCategory = 0.3
	weightStyle    = 0.2
	weightTag      = 0.1
)

const (
	// colorScoreNeutral is used when either side has no color information,
	// so candidates without color tags are not biased toward zero.
	colorScoreNeutral = 0.5

	// Category sub-score levels
	categoryScoreExact   = 1.0 // candidate category is in the detected set
	categoryScoreSynonym = 0.7 // a candidate tag implies a detected category
	categoryScoreNone    = 0.3

	// Style sub-score levels
	styleScoreMatch   = 1.0
	styleScoreNeutral = 0.5

	// tagScoreNeutral is the tag-overlap sub-score. It is a deliberate
	// placeholder: the tag metric is an extension point and the baseline
	// returns this constant regardless of inputs.
	tagScoreNeutral = 0.5
)

// recognizedColors is the fixed color vocabulary used to pull color tags out
// of a candidate's tag list.
var recognizedColors = map[string]bool{
	"black": true, "white": true, "gray": true, "grey": true,
	"red": true, "blue": true, "navy": true, "green": true,
	"yellow": true, "orange": true, "purple": true, "pink": true,
	"brown": true, "beige": true, "khaki": true, "cream": true,
	"ivory": true, "maroon": true, "olive": true, "teal": true,
	"silver": true, "gold": true, "tan": true, "burgundy": true,
}

// categorySynonyms maps garment tags to the category they imply
var categorySynonyms = map[string]domain.Category{
	// top
	"shirt": domain.CategoryTop, "t-shirt": domain.CategoryTop,
	"tshirt": domain.CategoryTop, "tee": domain.CategoryTop,
	"hoodie": domain.CategoryTop, "sweater": domain.CategoryTop,
	"sweatshirt": domain.CategoryTop, "blouse": domain.CategoryTop,
	"cardigan": domain.CategoryTop, "jacket": domain.CategoryTop,
	"coat": domain.CategoryTop, "blazer": domain.CategoryTop,
	// pants
	"jeans": domain.CategoryPants, "trousers": domain.CategoryPants,
	"slacks": domain.CategoryPants, "chinos": domain.CategoryPants,
	"shorts": domain.CategoryPants, "leggings": domain.CategoryPants,
	"joggers": domain.CategoryPants,
	// shoes
	"sneakers": domain.CategoryShoes, "boots": domain.CategoryShoes,
	"sandals": domain.CategoryShoes, "loafers": domain.CategoryShoes,
	"heels": domain.CategoryShoes, "trainers": domain.CategoryShoes,
	"flats": domain.CategoryShoes,
	// accessories
	"hat": domain.CategoryAccessories, "cap": domain.CategoryAccessories,
	"scarf": domain.CategoryAccessories, "belt": domain.CategoryAccessories,
	"bag": domain.CategoryAccessories, "watch": domain.CategoryAccessories,
	"necklace": domain.CategoryAccessories, "sunglasses": domain.CategoryAccessories,
}

// ScorerConfig holds configuration for the similarity scorer
type ScorerConfig struct {
	EnableDebugLogging bool
}

// SimilarityScorer computes a bounded [0,1] match score between a query
// FeatureSet and catalog products, with human-readable match reasons.
type SimilarityScorer struct {
	enableDebugLogging bool
}

// NewSimilarityScorer creates a new similarity scorer
func NewSimilarityScorer(config ScorerConfig) *SimilarityScorer {
	return &SimilarityScorer{
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// ScoreCandidates scores every product against the query features. A failure
// on a single candidate skips that candidate rather than aborting the batch.
func (s *SimilarityScorer) ScoreCandidates(features *domain.FeatureSet, products []domain.Product) ([]domain.ScoredCandidate, error) {
	if err := features.Validate(); err != nil {
		return nil, err
	}

	candidates := make([]domain.ScoredCandidate, 0, len(products))
	for _, p := range products {
		if err := p.Validate(); err != nil {
			if s.enableDebugLogging {
				log.Printf("[SCORE] Skipping candidate %q: %v", p.ID, err)
			}
			continue
		}

		similarity, reasons := s.Score(features, &p)
		candidates = append(candidates, domain.ScoredCandidate{
			Product:      p,
			Similarity:   similarity,
			MatchReasons: reasons,
		})
	}

	return candidates, nil
}

// Score computes the weighted similarity between the query features and a
// single product, returning the score and the match reasons for sub-scores
// that contributed non-trivially.
func (s *SimilarityScorer) Score(features *domain.FeatureSet, p *domain.Product) (float64, []string) {
	meta := features.Metadata
	reasons := []string{}

	weightedSum := 0.0
	weightTotal := 0.0

	// Color
	colorScore, shared := scoreColors(meta.DominantColors, p.Tags)
	weightedSum += weightColor * colorScore
	weightTotal += weightColor
	if len(shared) > 0 {
		reasons = append(reasons, "Similar colors: "+strings.Join(shared, ", "))
	}

	// Category: undefined when nothing was detected in the image
	if len(meta.DetectedCategories) > 0 {
		categoryScore := scoreCategory(meta.DetectedCategories, p)
		weightedSum += weightCategory * categoryScore
		weightTotal += weightCategory
		switch categoryScore {
		case categoryScoreExact:
			reasons = append(reasons, fmt.Sprintf("Same category: %s", p.Category))
		case categoryScoreSynonym:
			reasons = append(reasons, fmt.Sprintf("Related category: %s", p.Category))
		}
	}

	// Style: undefined when no overall style was detected
	if meta.OverallStyle != "" {
		styleScore := scoreStyle(meta.OverallStyle, p.Tags)
		weightedSum += weightStyle * styleScore
		weightTotal += weightStyle
		if styleScore == styleScoreMatch {
			reasons = append(reasons, "Matching style: "+strings.ToLower(meta.OverallStyle))
		}
	}

	// Tag: baseline placeholder, always defined
	weightedSum += weightTag * tagScoreNeutral
	weightTotal += weightTag

	score := weightedSum / weightTotal
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	if s.enableDebugLogging {
		log.Printf("[SCORE] %q similarity=%.3f reasons=%v", p.ID, score, reasons)
	}

	return score, reasons
}

// scoreColors intersects the query's dominant colors with the candidate's
// color tags and returns |intersection| / max(|query|, |candidate|) along
// with the shared colors. Either side empty yields the neutral score.
func scoreColors(queryColors, tags []string) (float64, []string) {
	query := make(map[string]bool, len(queryColors))
	for _, c := range queryColors {
		query[strings.ToLower(c)] = true
	}

	candidate := make(map[string]bool)
	for _, tag := range tags {
		t := strings.ToLower(tag)
		if recognizedColors[t] {
			candidate[t] = true
		}
	}

	if len(query) == 0 || len(candidate) == 0 {
		return colorScoreNeutral, nil
	}

	// Intersect over the deduplicated sets so a repeated query color cannot
	// count more than once against the set-sized denominator.
	shared := []string{}
	counted := make(map[string]bool, len(query))
	for _, c := range queryColors {
		lc := strings.ToLower(c)
		if candidate[lc] && !counted[lc] {
			counted[lc] = true
			shared = append(shared, lc)
		}
	}

	denom := len(query)
	if len(candidate) > denom {
		denom = len(candidate)
	}

	return float64(len(shared)) / float64(denom), shared
}

// scoreCategory rates how well the candidate's category matches the detected
// ones: exact membership, a tag implying a detected category, or neither.
func scoreCategory(detected []domain.Category, p *domain.Product) float64 {
	for _, c := range detected {
		if p.Category == c {
			return categoryScoreExact
		}
	}

	for _, tag := range p.Tags {
		implied, ok := categorySynonyms[strings.ToLower(tag)]
		if !ok {
			continue
		}
		for _, c := range detected {
			if implied == c {
				return categoryScoreSynonym
			}
		}
	}

	return categoryScoreNone
}

// scoreStyle checks for a case-insensitive tag equal to the detected style
func scoreStyle(style string, tags []string) float64 {
	for _, tag := range tags {
		if strings.EqualFold(tag, style) {
			return styleScoreMatch
		}
	}
	return styleScoreNeutral
}
