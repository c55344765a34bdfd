package domain

// Category is one of the fixed garment categories in the catalog
type Category string

const (
	CategoryTop         Category = "top"
	CategoryPants       Category = "pants"
	CategoryShoes       Category = "shoes"
	CategoryAccessories Category = "accessories"
)

// Categories returns the fixed category set in catalog order
func Categories() []Category {
	return []Category{CategoryTop, CategoryPants, CategoryShoes, CategoryAccessories}
}

// ValidCategory reports whether c is a member of the fixed category enum
func ValidCategory(c Category) bool {
	switch c {
	case CategoryTop, CategoryPants, CategoryShoes, CategoryAccessories:
		return true
	}
	return false
}

// Product is a single catalog entry. Price is in minor currency units.
type Product struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Tags         []string `json:"tags"`
	Price        int      `json:"price"`
	Category     Category `json:"category"`
	Brand        string   `json:"brand,omitempty"`
	Rating       float64  `json:"rating,omitempty"`     // 0-5
	Popularity   float64  `json:"popularity,omitempty"` // 0-1
	Availability *bool    `json:"availability,omitempty"`
	ImageURL     string   `json:"imageUrl,omitempty"`
}

// Available treats a missing availability flag as in stock
func (p *Product) Available() bool {
	return p.Availability == nil || *p.Availability
}

// Validate checks the Product invariant: non-empty id/title, a category from
// the fixed enum, a non-nil tag list, and a non-negative price.
func (p *Product) Validate() error {
	if p.ID == "" || p.Title == "" {
		return ErrInvalidProduct
	}
	if !ValidCategory(p.Category) {
		return ErrInvalidProduct
	}
	if p.Tags == nil {
		return ErrInvalidProduct
	}
	if p.Price < 0 {
		return ErrInvalidProduct
	}
	if p.Rating < 0 || p.Rating > 5 {
		return ErrInvalidProduct
	}
	return nil
}

// ScoredProduct pairs a product with its keyword search score
type ScoredProduct struct {
	Product Product `json:"product"`
	Score   float64 `json:"score"`
}

// CatalogStats holds aggregate statistics over the catalog
type CatalogStats struct {
	TotalProducts int              `json:"totalProducts"`
	Categories    map[Category]int `json:"categories"`
	PriceRange    PriceStats       `json:"priceRange"`
}

// PriceStats summarizes the catalog price distribution. Average is rounded
// to the nearest integer; Min degenerates to 0 on an empty catalog.
type PriceStats struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Average int `json:"average"`
}
