package vision

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/stylelens/backend/internal/domain"
)

// Provider selection modes
const (
	ModeAuto   = "auto"
	ModeGemini = "gemini"
	ModeStub   = "stub"
)

// AdapterConfig holds configuration for the extractor adapter
type AdapterConfig struct {
	Mode     string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Adapter selects between the primary remote provider and the local stub.
// In auto mode the primary is attempted once under a timeout and any failure
// falls back synchronously to the stub; there is no cross-provider retry.
type Adapter struct {
	primary  domain.FeatureExtractor
	fallback domain.FeatureExtractor
	cache    domain.FeatureCache
	mode     string
	timeout  time.Duration
	cacheTTL time.Duration
}

// NewAdapter creates a feature-extractor adapter over the given providers.
// cache may be nil to disable feature caching.
func NewAdapter(primary, fallback domain.FeatureExtractor, cache domain.FeatureCache, config AdapterConfig) *Adapter {
	mode := config.Mode
	if mode == "" {
		mode = ModeAuto
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	cacheTTL := config.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}

	return &Adapter{
		primary:  primary,
		fallback: fallback,
		cache:    cache,
		mode:     mode,
		timeout:  timeout,
		cacheTTL: cacheTTL,
	}
}

// Name returns the configured selection mode
func (a *Adapter) Name() string {
	return a.mode
}

// Available reports whether any provider can serve a request
func (a *Adapter) Available() bool {
	switch a.mode {
	case ModeGemini:
		return a.primary.Available()
	case ModeStub:
		return a.fallback.Available()
	default:
		return a.primary.Available() || a.fallback.Available()
	}
}

// PrimaryAvailable reports whether the remote provider is configured
func (a *Adapter) PrimaryAvailable() bool {
	return a.primary.Available()
}

// ExtractFeatures runs the selection policy and returns the extracted
// FeatureSet. Results are cached by image digest so repeated requests on the
// same image skip the remote call.
func (a *Adapter) ExtractFeatures(ctx context.Context, image []byte, mimeType string) (*domain.FeatureSet, error) {
	if len(image) == 0 {
		return nil, domain.ErrInvalidRequest
	}

	key := imageDigest(image)
	if a.cache != nil {
		if cached, err := a.cache.Get(ctx, key); err == nil && cached != nil {
			return cached, nil
		}
	}

	features, err := a.extract(ctx, image, mimeType)
	if err != nil {
		return nil, err
	}

	if err := features.Validate(); err != nil {
		return nil, err
	}

	if a.cache != nil {
		if err := a.cache.Set(ctx, key, features, a.cacheTTL); err != nil {
			log.Printf("[VISION] Failed to cache features: %v", err)
		}
	}

	return features, nil
}

// extract applies the provider selection policy
func (a *Adapter) extract(ctx context.Context, image []byte, mimeType string) (*domain.FeatureSet, error) {
	switch a.mode {
	case ModeGemini:
		if !a.primary.Available() {
			return nil, domain.ErrExtractorUnavailable
		}
		return a.extractWithTimeout(ctx, a.primary, image, mimeType)

	case ModeStub:
		return a.fallback.ExtractFeatures(ctx, image, mimeType)

	default: // auto: one primary attempt, then the stub
		if a.primary.Available() {
			features, err := a.extractWithTimeout(ctx, a.primary, image, mimeType)
			if err == nil {
				return features, nil
			}
			log.Printf("[VISION] Primary provider %s failed, falling back to %s: %v",
				a.primary.Name(), a.fallback.Name(), err)
		}

		if !a.fallback.Available() {
			return nil, domain.ErrExtractorUnavailable
		}

		features, err := a.fallback.ExtractFeatures(ctx, image, mimeType)
		if err != nil {
			return nil, fmt.Errorf("%w: fallback failed: %v", domain.ErrExtractionFailed, err)
		}
		return features, nil
	}
}

// extractWithTimeout bounds a provider call; timeout counts as provider failure
func (a *Adapter) extractWithTimeout(ctx context.Context, provider domain.FeatureExtractor, image []byte, mimeType string) (*domain.FeatureSet, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	return provider.ExtractFeatures(ctx, image, mimeType)
}

// imageDigest keys the feature cache by image content
func imageDigest(image []byte) string {
	sum := sha256.Sum256(image)
	return "features:" + hex.EncodeToString(sum[:])
}
