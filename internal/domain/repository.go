package domain

import (
	"context"
	"time"
)

// FeatureExtractor converts raw image bytes into a FeatureSet. Implementations
// must report availability up front so callers can skip straight to fallback
// instead of attempting and failing.
type FeatureExtractor interface {
	Name() string
	Available() bool
	ExtractFeatures(ctx context.Context, image []byte, mimeType string) (*FeatureSet, error)
}

// FeatureCache caches extracted feature sets keyed by image digest
type FeatureCache interface {
	Get(ctx context.Context, key string) (*FeatureSet, error)
	Set(ctx context.Context, key string, features *FeatureSet, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
