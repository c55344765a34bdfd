package vision

import (
	"strings"

	"github.com/stylelens/backend/internal/domain"
)

// vectorColors is the ordered color basis shared by all providers so their
// vectors are comparable dimension by dimension.
var vectorColors = []string{
	"black", "white", "gray", "red", "blue", "green",
	"yellow", "orange", "purple", "pink", "brown", "beige",
}

// BuildVector encodes feature metadata as a fixed-length vector: one slot per
// fixed category, one per basis color, and a trailing style-present flag.
func BuildVector(meta domain.FeatureMetadata) []float64 {
	vector := make([]float64, 0, len(domain.Categories())+len(vectorColors)+1)

	for _, c := range domain.Categories() {
		v := 0.0
		for _, detected := range meta.DetectedCategories {
			if detected == c {
				v = 1.0
				break
			}
		}
		vector = append(vector, v)
	}

	colors := make(map[string]bool, len(meta.DominantColors))
	for _, c := range meta.DominantColors {
		colors[strings.ToLower(c)] = true
	}
	for _, c := range vectorColors {
		if colors[c] {
			vector = append(vector, 1.0)
		} else {
			vector = append(vector, 0.0)
		}
	}

	if meta.OverallStyle != "" {
		vector = append(vector, 1.0)
	} else {
		vector = append(vector, 0.0)
	}

	return vector
}

// newFeatureSet assembles a validated FeatureSet for the given provider
func newFeatureSet(provider string, meta domain.FeatureMetadata) *domain.FeatureSet {
	if meta.DominantColors == nil {
		meta.DominantColors = []string{}
	}
	if meta.DetectedCategories == nil {
		meta.DetectedCategories = []domain.Category{}
	}

	vector := BuildVector(meta)
	return &domain.FeatureSet{
		Vector:     vector,
		Dimensions: len(vector),
		Provider:   provider,
		Metadata:   meta,
	}
}
