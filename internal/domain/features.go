package domain

// FeatureMetadata carries the structured attributes detected in an image.
// Fields may be empty when nothing was detected, but never nil.
type FeatureMetadata struct {
	DominantColors     []string   `json:"dominantColors"`
	DetectedCategories []Category `json:"detectedCategories"`
	OverallStyle       string     `json:"overallStyle"`
}

// FeatureSet is the normalized output of a feature extractor: a fixed-length
// vector plus structured metadata, tagged with the provider that produced it.
type FeatureSet struct {
	Vector     []float64       `json:"vector"`
	Dimensions int             `json:"dimensions"`
	Provider   string          `json:"provider"`
	Metadata   FeatureMetadata `json:"metadata"`
}

// Validate checks the FeatureSet invariant: Dimensions matches the vector
// length and metadata slices are non-nil.
func (f *FeatureSet) Validate() error {
	if f == nil {
		return ErrInvalidFeatureSet
	}
	if f.Dimensions != len(f.Vector) {
		return ErrInvalidFeatureSet
	}
	if f.Metadata.DominantColors == nil || f.Metadata.DetectedCategories == nil {
		return ErrInvalidFeatureSet
	}
	return nil
}

// ScoredCandidate is a catalog product annotated with its similarity to the
// query FeatureSet and the business-adjusted ranking score. Derived per
// request, never persisted.
type ScoredCandidate struct {
	Product      Product  `json:"product"`
	Similarity   float64  `json:"similarity"`
	MatchReasons []string `json:"matchReasons"`
	RankingScore float64  `json:"rankingScore"`
}

// RecommendationItem is the view of a scored candidate returned to callers.
// Score is omitted when the caller asked for scores to be stripped.
type RecommendationItem struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Price        int      `json:"price"`
	Tags         []string `json:"tags"`
	Category     Category `json:"category"`
	Brand        string   `json:"brand,omitempty"`
	ImageURL     string   `json:"imageUrl,omitempty"`
	Score        *float64 `json:"score,omitempty"`
	MatchReasons []string `json:"matchReasons,omitempty"`
}

// CategorizedRecommendations maps every fixed category to its recommended
// items. Categories without matches map to an empty list, never a missing key.
type CategorizedRecommendations map[Category][]RecommendationItem

// NewCategorizedRecommendations returns a map with every category present
func NewCategorizedRecommendations() CategorizedRecommendations {
	out := make(CategorizedRecommendations, len(Categories()))
	for _, c := range Categories() {
		out[c] = []RecommendationItem{}
	}
	return out
}
