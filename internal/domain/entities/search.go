package entities

// SortKey selects the ordering applied to discovery results
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortDuration  SortKey = "duration"
	SortNewest    SortKey = "newest"
)

// PriceRange is an inclusive price bound. A nil bound imposes no constraint.
type PriceRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// DurationRange is an inclusive bound on a camp's day count
type DurationRange struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

// SearchFilters describes the constraints a discovery query imposes on the
// catalog. Every field is optional; an unset field filters nothing.
type SearchFilters struct {
	Query        string         `json:"query,omitempty"`
	Location     string         `json:"location,omitempty"`
	PriceRange   *PriceRange    `json:"price_range,omitempty"`
	Difficulty   []Difficulty   `json:"difficulty,omitempty"`
	GroupSize    *int           `json:"group_size,omitempty"`
	Duration     *DurationRange `json:"duration,omitempty"`
	Seasons      []Season       `json:"seasons,omitempty"`
	Activities   []string       `json:"activities,omitempty"`
	Amenities    []string       `json:"amenities,omitempty"`
	MinRating    *float64       `json:"min_rating,omitempty"`
	VerifiedOnly bool           `json:"verified_only,omitempty"`
}

// IsZero reports whether the filters impose no constraint at all.
func (f SearchFilters) IsZero() bool {
	return f.Query == "" &&
		f.Location == "" &&
		f.PriceRange == nil &&
		len(f.Difficulty) == 0 &&
		f.GroupSize == nil &&
		f.Duration == nil &&
		len(f.Seasons) == 0 &&
		len(f.Activities) == 0 &&
		len(f.Amenities) == 0 &&
		f.MinRating == nil &&
		!f.VerifiedOnly
}
