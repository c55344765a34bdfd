package vision

import (
	"context"
	"crypto/sha256"

	"github.com/stylelens/backend/internal/domain"
)

// ProviderStub identifies the local stub provider used as fallback
const ProviderStub = "local-stub"

// Stub palette and styles picked deterministically from the image digest so
// repeated calls on the same image agree.
var (
	stubColors = []string{
		"black", "white", "gray", "blue", "red", "green",
		"brown", "beige", "navy", "pink",
	}
	stubStyles = []string{"casual", "formal", "sporty", "streetwear"}
)

// StubExtractor is a local, always-available feature extractor. It cannot see
// the image, so it derives a plausible, deterministic FeatureSet from the
// image digest and detects no garment categories.
type StubExtractor struct{}

// NewStubExtractor creates a new local stub extractor
func NewStubExtractor() *StubExtractor {
	return &StubExtractor{}
}

// Name returns the provider identifier
func (s *StubExtractor) Name() string {
	return ProviderStub
}

// Available always reports true: the stub is the fallback of last resort
func (s *StubExtractor) Available() bool {
	return true
}

// ExtractFeatures derives deterministic pseudo-features from the image bytes
func (s *StubExtractor) ExtractFeatures(ctx context.Context, image []byte, mimeType string) (*domain.FeatureSet, error) {
	if len(image) == 0 {
		return nil, domain.ErrInvalidRequest
	}

	digest := sha256.Sum256(image)

	first := stubColors[int(digest[0])%len(stubColors)]
	second := stubColors[int(digest[1])%len(stubColors)]
	colors := []string{first}
	if second != first {
		colors = append(colors, second)
	}

	meta := domain.FeatureMetadata{
		DominantColors:     colors,
		DetectedCategories: []domain.Category{},
		OverallStyle:       stubStyles[int(digest[2])%len(stubStyles)],
	}

	return newFeatureSet(ProviderStub, meta), nil
}
