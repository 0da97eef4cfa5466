package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/campventure/backend/internal/domain/entities"
	"github.com/campventure/backend/internal/domain/repositories"
)

// Result caps per recommendation category
const (
	personalizedLimit = 8
	trendingLimit     = 6
	similarUsersLimit = 6
	seasonalLimit     = 6
	budgetLimit       = 6
	premiumLimit      = 4
)

// Default preferences applied for anonymous users or unset fields
var (
	defaultDifficulties = []entities.Difficulty{entities.DifficultyEasy, entities.DifficultyModerate}
	defaultActivities   = []string{"trekking", "photography"}
	defaultBudget       = entities.BudgetRange{Min: 1000, Max: 10000}
	defaultSeasons      = []entities.Season{entities.SeasonAutumn, entities.SeasonWinter}
	defaultGroupSize    = 4
)

// stateSeasonBonuses lists states that get a regional bonus in a given season.
var stateSeasonBonuses = map[entities.Season][]string{
	entities.SeasonWinter: {"Himachal Pradesh", "Uttarakhand"},
	entities.SeasonSummer: {"Karnataka", "Kerala"},
	entities.SeasonAutumn: {"Maharashtra", "Madhya Pradesh"},
	entities.SeasonSpring: {"Rajasthan", "Sikkim"},
}

// seasonalActivities lists activities that pair well with each season.
var seasonalActivities = map[entities.Season][]string{
	entities.SeasonWinter: {"snow trekking", "bonfire", "stargazing"},
	entities.SeasonSummer: {"river rafting", "swimming", "kayaking"},
	entities.SeasonAutumn: {"trekking", "bird watching", "cycling"},
	entities.SeasonSpring: {"rock climbing", "nature walk", "photography"},
}

// premiumActivityMarkers identify activities offered only by high-end camps.
var premiumActivityMarkers = []string{"helicopter", "private guide", "gourmet"}

// premiumStates are regions treated as exclusive destinations.
var premiumStates = []string{"Ladakh", "Andaman and Nicobar"}

// signal is one weighted scoring rule in a category table. eval returns the
// points earned and the reason shown to the user; zero points means no match.
type signal struct {
	eval func(c *entities.Camp) (float64, string)
}

// fixed builds a constant-weight signal from a predicate
func fixed(weight float64, reason string, pred func(c *entities.Camp) bool) signal {
	return signal{eval: func(c *entities.Camp) (float64, string) {
		if pred(c) {
			return weight, reason
		}
		return 0, ""
	}}
}

// RecommendationService produces the six independent recommendation
// categories from one candidate pool. Scoring is pure; the only external
// input is the clock, injectable for tests.
type RecommendationService struct {
	repo repositories.CampRepository
	now  func() time.Time
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(repo repositories.CampRepository) *RecommendationService {
	return &RecommendationService{
		repo: repo,
		now:  time.Now,
	}
}

// WithClock overrides the clock used to derive the current season
func (s *RecommendationService) WithClock(now func() time.Time) *RecommendationService {
	s.now = now
	return s
}

// GetSmartRecommendations computes all six categories against the active
// catalog. Nil preferences get anonymous defaults; a nil context derives the
// season from the clock. Categories are fully independent of each other.
func (s *RecommendationService) GetSmartRecommendations(ctx context.Context, prefs *entities.UserPreferences, recCtx *entities.RecommendationContext) (*entities.SmartRecommendations, error) {
	active := true
	camps, err := s.repo.List(ctx, repositories.CampFilter{IsActive: &active})
	if err != nil {
		return nil, err
	}

	effective := effectivePreferences(prefs)
	if recCtx == nil {
		recCtx = &entities.RecommendationContext{}
	}

	return &entities.SmartRecommendations{
		PersonalizedCamps:   s.PersonalizedCamps(camps, effective, recCtx),
		TrendingCamps:       s.TrendingCamps(camps, effective, recCtx),
		SimilarUserCamps:    s.SimilarUserCamps(camps, effective, recCtx),
		SeasonalSuggestions: s.SeasonalSuggestions(camps, effective, recCtx),
		BudgetFriendly:      s.BudgetFriendly(camps, effective, recCtx),
		PremiumExperiences:  s.PremiumExperiences(camps, effective, recCtx),
		GeneratedAt:         s.now(),
	}, nil
}

// effectivePreferences fills every unset preference field with defaults
func effectivePreferences(prefs *entities.UserPreferences) entities.UserPreferences {
	effective := entities.UserPreferences{}
	if prefs != nil {
		effective = *prefs
	}

	if len(effective.Difficulty) == 0 {
		effective.Difficulty = defaultDifficulties
	}
	if len(effective.Activities) == 0 {
		effective.Activities = defaultActivities
	}
	if effective.Budget == nil {
		b := defaultBudget
		effective.Budget = &b
	}
	if effective.GroupSize == 0 {
		effective.GroupSize = defaultGroupSize
	}
	if len(effective.Seasons) == 0 {
		effective.Seasons = defaultSeasons
	}
	if effective.PreviousBookings == nil {
		effective.PreviousBookings = []string{}
	}
	if effective.Wishlist == nil {
		effective.Wishlist = []string{}
	}
	if effective.Ratings == nil {
		effective.Ratings = map[string]float64{}
	}

	return effective
}

// currentSeason derives the season from the context or the clock:
// Feb-Apr spring, May-Jul summer, Aug-Oct autumn, otherwise winter.
func (s *RecommendationService) currentSeason(recCtx *entities.RecommendationContext) entities.Season {
	if recCtx != nil && recCtx.Season != "" {
		return recCtx.Season
	}

	switch month := s.now().Month(); {
	case month >= time.February && month <= time.April:
		return entities.SeasonSpring
	case month >= time.May && month <= time.July:
		return entities.SeasonSummer
	case month >= time.August && month <= time.October:
		return entities.SeasonAutumn
	default:
		return entities.SeasonWinter
	}
}

// effectiveBudget prefers the per-request context budget over stored
// preferences.
func effectiveBudget(prefs entities.UserPreferences, recCtx *entities.RecommendationContext) entities.BudgetRange {
	if recCtx != nil && recCtx.Budget != nil {
		return *recCtx.Budget
	}
	if prefs.Budget != nil {
		return *prefs.Budget
	}
	return defaultBudget
}

// PersonalizedCamps scores camps against the user's own preference profile.
// Camps the user has already wishlisted or booked are excluded outright.
func (s *RecommendationService) PersonalizedCamps(camps []*entities.Camp, prefs entities.UserPreferences, recCtx *entities.RecommendationContext) []entities.RecommendationScore {
	excluded := make(map[string]struct{}, len(prefs.Wishlist)+len(prefs.PreviousBookings))
	for _, id := range prefs.Wishlist {
		excluded[id] = struct{}{}
	}
	for _, id := range prefs.PreviousBookings {
		excluded[id] = struct{}{}
	}

	previous := s.lookupCamps(camps, prefs.PreviousBookings)
	budget := effectiveBudget(prefs, recCtx)

	signals := []signal{
		fixed(25, "Matches your preferred difficulty", func(c *entities.Camp) bool {
			return hasDifficulty(prefs.Difficulty, c.Difficulty)
		}),
		{eval: func(c *entities.Camp) (float64, string) {
			overlap := activityOverlap(c, prefs.Activities)
			if overlap == 0 || len(prefs.Activities) == 0 {
				return 0, ""
			}
			ratio := float64(overlap) / float64(len(prefs.Activities))
			return ratio * 30, fmt.Sprintf("Offers %d of your favorite activities", overlap)
		}},
		{eval: func(c *entities.Camp) (float64, string) {
			price := c.Pricing.BasePrice
			if price >= budget.Min && price <= budget.Max {
				return 20, "Fits your budget"
			}
			if price > budget.Max && price <= budget.Max*1.2 {
				return 10, "Slightly above your budget"
			}
			return 0, ""
		}},
		fixed(15, "Great during your preferred season", func(c *entities.Camp) bool {
			return hasAnySeason(c, prefs.Seasons)
		}),
		fixed(10, "Similar to a camp you booked before", func(c *entities.Camp) bool {
			for _, prev := range previous {
				if campsSimilar(c, prev) {
					return true
				}
			}
			return false
		}),
		fixed(5, "Featured camp", func(c *entities.Camp) bool { return c.Featured }),
		fixed(5, "Exceptionally rated", func(c *entities.Camp) bool { return c.Rating.Average >= 4.5 }),
	}

	candidates := make([]*entities.Camp, 0, len(camps))
	for _, c := range camps {
		if _, skip := excluded[c.ID]; skip {
			continue
		}
		candidates = append(candidates, c)
	}

	return scoreAndRank(candidates, signals, personalizedLimit)
}

// TrendingCamps surfaces camps with strong recent engagement signals
func (s *RecommendationService) TrendingCamps(camps []*entities.Camp, prefs entities.UserPreferences, recCtx *entities.RecommendationContext) []entities.RecommendationScore {
	season := s.currentSeason(recCtx)

	signals := []signal{
		fixed(30, "Popular with many campers", func(c *entities.Camp) bool { return c.Rating.Count > 50 }),
		fixed(25, "Outstanding reviews", func(c *entities.Camp) bool { return c.Rating.Average >= 4.5 }),
		fixed(20, "Featured camp", func(c *entities.Camp) bool { return c.Featured }),
		fixed(15, "In season right now", func(c *entities.Camp) bool { return c.HasSeason(season) }),
		fixed(10, "Plenty of upcoming dates", func(c *entities.Camp) bool { return len(c.Availability) > 3 }),
	}

	return scoreAndRank(camps, signals, trendingLimit)
}

// SimilarUserCamps approximates "campers like you also liked" from the
// single user's own profile; no multi-user data backs this category.
func (s *RecommendationService) SimilarUserCamps(camps []*entities.Camp, prefs entities.UserPreferences, recCtx *entities.RecommendationContext) []entities.RecommendationScore {
	signals := []signal{
		fixed(40, "Highly rated by campers", func(c *entities.Camp) bool { return c.Rating.Average >= 4.0 }),
		fixed(30, "Activities that match your taste", func(c *entities.Camp) bool {
			return activityOverlap(c, prefs.Activities) > 0
		}),
		fixed(20, "Difficulty level you prefer", func(c *entities.Camp) bool {
			return hasDifficulty(prefs.Difficulty, c.Difficulty)
		}),
		fixed(10, "Hidden gem", func(c *entities.Camp) bool {
			return c.Rating.Count < 30 && c.Rating.Average >= 4.5
		}),
	}

	return scoreAndRank(camps, signals, similarUsersLimit)
}

// SeasonalSuggestions scores camps for the current (or requested) season
func (s *RecommendationService) SeasonalSuggestions(camps []*entities.Camp, prefs entities.UserPreferences, recCtx *entities.RecommendationContext) []entities.RecommendationScore {
	season := s.currentSeason(recCtx)
	bonusStates := stateSeasonBonuses[season]
	activities := seasonalActivities[season]

	signals := []signal{
		fixed(50, fmt.Sprintf("Perfect for %s", season), func(c *entities.Camp) bool {
			return c.HasSeason(season)
		}),
		fixed(20, fmt.Sprintf("The region is at its best in %s", season), func(c *entities.Camp) bool {
			for _, state := range bonusStates {
				if strings.EqualFold(c.Location.State, state) {
					return true
				}
			}
			return false
		}),
		fixed(15, "Seasonal activities on offer", func(c *entities.Camp) bool {
			return anyActivityNameMatch(c, activities)
		}),
	}

	return scoreAndRank(camps, signals, seasonalLimit)
}

// BudgetFriendly ranks camps priced comfortably inside the user's budget by
// value for money.
func (s *RecommendationService) BudgetFriendly(camps []*entities.Camp, prefs entities.UserPreferences, recCtx *entities.RecommendationContext) []entities.RecommendationScore {
	budget := effectiveBudget(prefs, recCtx)

	// Only camps comfortably under budget qualify at all.
	candidates := make([]*entities.Camp, 0, len(camps))
	for _, c := range camps {
		if c.Pricing.BasePrice <= 0.8*budget.Max {
			candidates = append(candidates, c)
		}
	}

	signals := []signal{
		{eval: func(c *entities.Camp) (float64, string) {
			price := c.Pricing.BasePrice
			if price <= 0 || c.Rating.Average <= 0 {
				return 0, ""
			}
			value := (c.Rating.Average / (price / 1000)) * 20
			return value, "Great value for money"
		}},
		fixed(15, "Group discounts available", func(c *entities.Camp) bool {
			return len(c.Pricing.GroupDiscounts) > 0
		}),
		fixed(25, "Well rated", func(c *entities.Camp) bool { return c.Rating.Average >= 4.0 }),
		fixed(10, "Meals or equipment included", func(c *entities.Camp) bool {
			return anyIncludes(c, "meal") || anyIncludes(c, "equipment")
		}),
	}

	return scoreAndRank(candidates, signals, budgetLimit)
}

// PremiumExperiences ranks high-end camps only
func (s *RecommendationService) PremiumExperiences(camps []*entities.Camp, prefs entities.UserPreferences, recCtx *entities.RecommendationContext) []entities.RecommendationScore {
	candidates := make([]*entities.Camp, 0, len(camps))
	for _, c := range camps {
		if c.Pricing.BasePrice >= 5000 {
			candidates = append(candidates, c)
		}
	}

	signals := []signal{
		fixed(30, "Top-tier experience", func(c *entities.Camp) bool { return c.Pricing.BasePrice >= 10000 }),
		fixed(25, "Exceptional reviews", func(c *entities.Camp) bool { return c.Rating.Average >= 4.7 }),
		fixed(20, "Unique luxury activities", func(c *entities.Camp) bool {
			return anyActivityNameMatch(c, premiumActivityMarkers)
		}),
		fixed(15, "Exclusive destination", func(c *entities.Camp) bool {
			for _, state := range premiumStates {
				if strings.EqualFold(c.Location.State, state) {
					return true
				}
			}
			return c.Difficulty == entities.DifficultyExtreme
		}),
	}

	return scoreAndRank(candidates, signals, premiumLimit)
}

// scoreAndRank folds the signal table over each candidate, keeps entries with
// a positive score, sorts them descending, and truncates to the cap. Every
// emitted entry carries at least one reason by construction.
func scoreAndRank(camps []*entities.Camp, signals []signal, limit int) []entities.RecommendationScore {
	scored := make([]entities.RecommendationScore, 0, len(camps))

	for _, camp := range camps {
		var total float64
		var reasons []string

		for _, sig := range signals {
			points, reason := sig.eval(camp)
			if points <= 0 {
				continue
			}
			total += points
			if reason != "" {
				reasons = append(reasons, reason)
			}
		}

		if total <= 0 {
			continue
		}

		scored = append(scored, entities.RecommendationScore{
			CampID:     camp.ID,
			Score:      total,
			Reasons:    reasons,
			Confidence: confidence(total),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// confidence normalizes a raw score into [0,1]. This saturates: categories
// whose weights can sum above 100 clip at 1 rather than renormalizing.
func confidence(score float64) float64 {
	c := score / 100
	if c > 1 {
		return 1
	}
	if c < 0 {
		return 0
	}
	return c
}

// campsSimilar reports whether two camps share at least one activity name and
// either the same difficulty or the same state.
func campsSimilar(a, b *entities.Camp) bool {
	shared := false
	for _, an := range a.ActivityNames() {
		for _, bn := range b.ActivityNames() {
			if strings.EqualFold(an, bn) {
				shared = true
				break
			}
		}
		if shared {
			break
		}
	}
	if !shared {
		return false
	}
	return a.Difficulty == b.Difficulty || strings.EqualFold(a.Location.State, b.Location.State)
}

func (s *RecommendationService) lookupCamps(camps []*entities.Camp, ids []string) []*entities.Camp {
	byID := make(map[string]*entities.Camp, len(camps))
	for _, c := range camps {
		byID[c.ID] = c
	}

	found := make([]*entities.Camp, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			found = append(found, c)
		}
	}
	return found
}

func hasDifficulty(wanted []entities.Difficulty, d entities.Difficulty) bool {
	for _, w := range wanted {
		if w == d {
			return true
		}
	}
	return false
}

func hasAnySeason(c *entities.Camp, seasons []entities.Season) bool {
	for _, s := range seasons {
		if c.HasSeason(s) {
			return true
		}
	}
	return false
}

// activityOverlap counts preferred activity names offered by the camp
// (case-insensitive substring containment, matching the filter semantics).
func activityOverlap(c *entities.Camp, wanted []string) int {
	names := c.ActivityNames()
	count := 0
	for _, w := range wanted {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		for _, n := range names {
			if strings.Contains(strings.ToLower(n), w) {
				count++
				break
			}
		}
	}
	return count
}

func anyActivityNameMatch(c *entities.Camp, wanted []string) bool {
	return activityOverlap(c, wanted) > 0
}

func anyIncludes(c *entities.Camp, term string) bool {
	for _, inc := range c.Pricing.Includes {
		if strings.Contains(strings.ToLower(inc), term) {
			return true
		}
	}
	return false
}
