package http

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stylelens/backend/internal/domain"
	"github.com/stylelens/backend/internal/infrastructure/catalog"
	"github.com/stylelens/backend/internal/infrastructure/vision"
	"github.com/stylelens/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	recommender *usecase.RecommendationService
	store       *catalog.Store
	adapter     *vision.Adapter
}

// NewHandler creates a new HTTP handler
func NewHandler(recommender *usecase.RecommendationService, store *catalog.Store, adapter *vision.Adapter) *Handler {
	return &Handler{
		recommender: recommender,
		store:       store,
		adapter:     adapter,
	}
}

// apiFile is a base64-encoded upload
type apiFile struct {
	Base64   string `json:"base64" binding:"required"`
	MimeType string `json:"mimeType" binding:"required"`
}

// recommendationOptions mirrors the options object of the public API
type recommendationOptions struct {
	MaxPerCategory int      `json:"maxPerCategory" binding:"omitempty,gte=1,lte=20"`
	MaxResults     int      `json:"maxResults" binding:"omitempty,gte=1"`
	MinSimilarity  *float64 `json:"minSimilarity" binding:"omitempty,gte=0,lte=1"`
	MinPrice       *int     `json:"minPrice" binding:"omitempty,gte=0"`
	MaxPrice       *int     `json:"maxPrice" binding:"omitempty,gte=0"`
	Brands         []string `json:"brands"`
	ExcludeTags    []string `json:"excludeTags"`
	IncludeScore   *bool    `json:"includeScore"`
}

// priceRange converts the min/max fields to a domain price range
func (o *recommendationOptions) priceRange() *domain.PriceRange {
	if o.MinPrice == nil && o.MaxPrice == nil {
		return nil
	}
	r := &domain.PriceRange{}
	if o.MinPrice != nil {
		r.Min = *o.MinPrice
	}
	if o.MaxPrice != nil {
		r.Max = *o.MaxPrice
	}
	return r
}

func (o *recommendationOptions) toRecommendOptions() domain.RecommendOptions {
	includeScore := true
	if o.IncludeScore != nil {
		includeScore = *o.IncludeScore
	}
	return domain.RecommendOptions{
		MaxPerCategory: o.MaxPerCategory,
		IncludeScore:   includeScore,
		MinSimilarity:  o.MinSimilarity,
		PriceRange:     o.priceRange(),
		Brands:         o.Brands,
		ExcludeTags:    o.ExcludeTags,
	}
}

// recommendRequest is the body of POST /api/v1/recommend
type recommendRequest struct {
	Image   apiFile                `json:"image" binding:"required"`
	Options *recommendationOptions `json:"options"`
}

// styleRequest is the body of POST /api/v1/recommend/style
type styleRequest struct {
	Keywords  []string               `json:"keywords" binding:"required,min=1"`
	Diversify *bool                  `json:"diversify"`
	Options   *recommendationOptions `json:"options"`
}

// productRequest is the body of the catalog mutation endpoints
type productRequest struct {
	ID           string   `json:"id" binding:"required"`
	Title        string   `json:"title" binding:"required"`
	Tags         []string `json:"tags" binding:"required"`
	Price        int      `json:"price" binding:"gte=0"`
	Category     string   `json:"category" binding:"required"`
	Brand        string   `json:"brand"`
	Rating       float64  `json:"rating" binding:"omitempty,gte=0,lte=5"`
	Popularity   float64  `json:"popularity" binding:"omitempty,gte=0,lte=1"`
	Availability *bool    `json:"availability"`
	ImageURL     string   `json:"imageUrl"`
}

func (r *productRequest) toProduct() domain.Product {
	return domain.Product{
		ID:           r.ID,
		Title:        r.Title,
		Tags:         r.Tags,
		Price:        r.Price,
		Category:     domain.Category(strings.ToLower(r.Category)),
		Brand:        r.Brand,
		Rating:       r.Rating,
		Popularity:   r.Popularity,
		Availability: r.Availability,
		ImageURL:     r.ImageURL,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "stylelens-backend",
		"version": "1.0.0",
	})
}

// Recommend extracts features from an uploaded image and returns similar
// products per category.
func (h *Handler) Recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image, err := base64.StdEncoding.DecodeString(req.Image.Base64)
	if err != nil || len(image) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image must be valid base64"})
		return
	}

	opts := domain.RecommendOptions{IncludeScore: true}
	if req.Options != nil {
		opts = req.Options.toRecommendOptions()
	}

	recs, method, err := h.recommender.RecommendFromImage(c.Request.Context(), image, req.Image.MimeType, opts)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendations": recs,
		"analysisMethod":  method,
		"requestId":       "req_" + uuid.NewString(),
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}

// RecommendByStyle returns a diversified recommendation list for keywords
func (h *Handler) RecommendByStyle(c *gin.Context) {
	var req styleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	diversify := true
	if req.Diversify != nil {
		diversify = *req.Diversify
	}

	opts := domain.StyleOptions{Diversify: diversify}
	if req.Options != nil {
		opts.MaxResults = req.Options.MaxResults
		opts.PriceRange = req.Options.priceRange()
		opts.ExcludeTags = req.Options.ExcludeTags
	}

	items, err := h.recommender.RecommendationsByStyle(c.Request.Context(), req.Keywords, opts)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendations": items,
		"requestId":       "req_" + uuid.NewString(),
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}

// Search handles keyword search requests: GET /api/v1/search?q=black,casual
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	keywords := strings.Split(query, ",")

	opts := domain.SearchOptions{}
	for _, raw := range c.QueryArray("category") {
		category := domain.Category(strings.ToLower(raw))
		if domain.ValidCategory(category) {
			opts.Categories = append(opts.Categories, category)
		}
	}

	results := h.recommender.Search(keywords, opts)
	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}

// Status reports vision provider availability and catalog size
func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"visionService": gin.H{
			"available":        h.adapter.Available(),
			"primaryAvailable": h.adapter.PrimaryAvailable(),
			"mode":             h.adapter.Name(),
		},
		"catalogService": gin.H{
			"available":    true,
			"productCount": h.store.Size(),
		},
	})
}

// CatalogStats returns aggregate catalog statistics
func (h *Handler) CatalogStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.recommender.Statistics())
}

// ReloadCatalog re-reads the catalog file from disk
func (h *Handler) ReloadCatalog(c *gin.Context) {
	if !h.store.Reload() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog reload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "productCount": h.store.Size()})
}

// AddProduct adds a product to the catalog
func (h *Handler) AddProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.store.Add(req.toProduct()) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "product rejected"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// UpdateProduct replaces an existing product
func (h *Handler) UpdateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := req.toProduct()
	product.ID = c.Param("id")

	if !h.store.Update(product) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "product rejected"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteProduct removes a product from the catalog
func (h *Handler) DeleteProduct(c *gin.Context) {
	if !h.store.Remove(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// renderError maps domain errors to HTTP status codes
func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrInvalidFeatureSet):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrExtractorUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
