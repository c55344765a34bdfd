package domain

// PriceRange bounds product prices in minor currency units, inclusive
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether price falls inside the range. A zero Max means
// unbounded above.
func (r PriceRange) Contains(price int) bool {
	if price < r.Min {
		return false
	}
	return r.Max <= 0 || price <= r.Max
}

// SearchOptions configures keyword search against the catalog
type SearchOptions struct {
	Categories     []Category
	MaxResults     int
	ScoreThreshold float64
}

// RecommendOptions configures similarity-based recommendation. A nil
// MinSimilarity means the configured default; an explicit 0 disables the
// threshold entirely.
type RecommendOptions struct {
	MaxPerCategory int
	IncludeScore   bool
	MinSimilarity  *float64
	PriceRange     *PriceRange
	Brands         []string
	ExcludeTags    []string
}

// StyleOptions configures open-ended style recommendation
type StyleOptions struct {
	MaxResults  int
	Diversify   bool
	PriceRange  *PriceRange
	ExcludeTags []string
}
