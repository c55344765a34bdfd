package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidProduct is returned when a product fails validation on add/update
	ErrInvalidProduct = errors.New("product failed validation")

	// ErrDuplicateProduct is returned when adding a product whose id already exists
	ErrDuplicateProduct = errors.New("product id already exists")

	// ErrProductNotFound is returned when a product id is not in the catalog
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrCatalogLoad is returned when the persisted catalog cannot be parsed
	ErrCatalogLoad = errors.New("failed to load catalog")

	// ErrInvalidFeatureSet is returned when a FeatureSet violates its invariant
	ErrInvalidFeatureSet = errors.New("malformed feature set")

	// ErrExtractorUnavailable is returned when no feature extractor can serve a request
	ErrExtractorUnavailable = errors.New("no feature extractor available")

	// ErrExtractionFailed is returned when a provider fails to extract features
	ErrExtractionFailed = errors.New("feature extraction failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
