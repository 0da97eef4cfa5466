package entities

import (
	"time"
)

// Difficulty levels a camp can be rated at
type Difficulty string

const (
	DifficultyEasy        Difficulty = "easy"
	DifficultyModerate    Difficulty = "moderate"
	DifficultyChallenging Difficulty = "challenging"
	DifficultyExtreme     Difficulty = "extreme"
)

// Season tags used for best-time-to-visit and preference matching
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

// Camp represents a bookable camping experience in the catalog
type Camp struct {
	ID               string             `json:"id" db:"id"`
	Title            string             `json:"title" db:"title"`
	Description      string             `json:"description" db:"description"`
	ShortDescription string             `json:"short_description,omitempty" db:"short_description"`
	Location         Location           `json:"location" db:"-"`
	OrganizerID      string             `json:"organizer_id" db:"organizer_id"`
	Images           []Image            `json:"images,omitempty" db:"-"`
	Activities       []Activity         `json:"activities,omitempty" db:"-"`
	Amenities        []string           `json:"amenities,omitempty" db:"-"`
	Pricing          Pricing            `json:"pricing" db:"-"`
	Availability     []AvailabilitySlot `json:"availability,omitempty" db:"-"`
	Difficulty       Difficulty         `json:"difficulty" db:"difficulty"`
	GroupSize        GroupSize          `json:"group_size" db:"-"`
	Duration         Duration           `json:"duration" db:"-"`
	BestTimeToVisit  []Season           `json:"best_time_to_visit,omitempty" db:"-"`
	Rating           Rating             `json:"rating" db:"-"`
	Featured         bool               `json:"featured" db:"featured"`
	Verified         bool               `json:"verified" db:"verified"`
	Tags             []string           `json:"tags,omitempty" db:"-"`
	IsActive         bool               `json:"is_active" db:"is_active"`
	CreatedAt        time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" db:"updated_at"`
}

// Location identifies where a camp takes place
type Location struct {
	Name      string  `json:"name" db:"location_name"`
	State     string  `json:"state" db:"state"`
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// Image is one entry in a camp's ordered gallery
type Image struct {
	URL       string `json:"url"`
	Alt       string `json:"alt,omitempty"`
	IsPrimary bool   `json:"is_primary"`
}

// Activity describes something campers can do at a camp
type Activity struct {
	Name       string     `json:"name"`
	Category   string     `json:"category,omitempty"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
	Included   bool       `json:"included"`
	ExtraCost  float64    `json:"extra_cost,omitempty"`
}

// GroupDiscount is a tiered discount applied from a minimum group size
type GroupDiscount struct {
	MinPeople       int     `json:"min_people"`
	DiscountPercent float64 `json:"discount_percent"`
}

// Pricing holds the price structure for a camp
type Pricing struct {
	BasePrice      float64         `json:"base_price"`
	Currency       string          `json:"currency"`
	GroupDiscounts []GroupDiscount `json:"group_discounts,omitempty"`
	Includes       []string        `json:"includes,omitempty"`
	Excludes       []string        `json:"excludes,omitempty"`
}

// AvailabilitySlot is a date-bounded window campers can book into
type AvailabilitySlot struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Capacity  int       `json:"capacity"`
	Booked    int       `json:"booked"`
	Price     float64   `json:"price,omitempty"`
}

// GroupSize is the allowed participant range for a camp
type GroupSize struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Duration is the length of a camp in days and nights
type Duration struct {
	Days   int `json:"days"`
	Nights int `json:"nights"`
}

// Rating aggregates reviews for a camp. Average is always within [0,5].
type Rating struct {
	Average float64 `json:"average" db:"rating"`
	Count   int     `json:"count" db:"review_count"`
}

// PrimaryImage returns the image flagged primary, falling back to the first one.
func (c *Camp) PrimaryImage() *Image {
	for i := range c.Images {
		if c.Images[i].IsPrimary {
			return &c.Images[i]
		}
	}
	if len(c.Images) > 0 {
		return &c.Images[0]
	}
	return nil
}

// ActivityNames returns the names of all activities offered at the camp.
func (c *Camp) ActivityNames() []string {
	names := make([]string, 0, len(c.Activities))
	for _, a := range c.Activities {
		names = append(names, a.Name)
	}
	return names
}

// HasSeason reports whether the camp lists the given season as a good time to visit.
func (c *Camp) HasSeason(s Season) bool {
	for _, season := range c.BestTimeToVisit {
		if season == s {
			return true
		}
	}
	return false
}
