package entities

import "time"

// BudgetRange is the price band a user is willing to spend per camp
type BudgetRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// UserPreferences is the profile the recommendation scorer evaluates camps
// against. Anonymous users get defaults applied by the recommendation service.
type UserPreferences struct {
	Difficulty       []Difficulty       `json:"difficulty,omitempty"`
	Activities       []string           `json:"activities,omitempty"`
	Budget           *BudgetRange       `json:"budget,omitempty"`
	GroupSize        int                `json:"group_size,omitempty"`
	Seasons          []Season           `json:"seasons,omitempty"`
	PreviousBookings []string           `json:"previous_bookings,omitempty"`
	Wishlist         []string           `json:"wishlist,omitempty"`
	Ratings          map[string]float64 `json:"ratings,omitempty"`
}

// RecommendationContext carries per-request context the scorer may use in
// place of (or in addition to) stored preferences.
type RecommendationContext struct {
	Season    Season       `json:"season,omitempty"`
	GroupSize int          `json:"group_size,omitempty"`
	Location  string       `json:"location,omitempty"`
	Budget    *BudgetRange `json:"budget,omitempty"`
}

// RecommendationScore is a single ranked entry in a recommendation category.
// Confidence is min(score/100, 1): a saturating display heuristic, not a
// calibrated probability. Categories whose weights can sum above 100 clip at 1.
type RecommendationScore struct {
	CampID     string   `json:"camp_id"`
	Score      float64  `json:"score"`
	Reasons    []string `json:"reasons"`
	Confidence float64  `json:"confidence"`
}

// SmartRecommendations aggregates the six independent recommendation
// categories computed from one candidate pool.
type SmartRecommendations struct {
	PersonalizedCamps   []RecommendationScore `json:"personalized_camps"`
	TrendingCamps       []RecommendationScore `json:"trending_camps"`
	SimilarUserCamps    []RecommendationScore `json:"similar_user_camps"`
	SeasonalSuggestions []RecommendationScore `json:"seasonal_suggestions"`
	BudgetFriendly      []RecommendationScore `json:"budget_friendly"`
	PremiumExperiences  []RecommendationScore `json:"premium_experiences"`
	GeneratedAt         time.Time             `json:"generated_at"`
}
