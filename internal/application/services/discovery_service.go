package services

import (
	"sort"
	"strings"

	"github.com/campventure/backend/internal/domain/entities"
)

// DiscoveryService reduces and orders camp candidate lists. All operations are
// pure: they never mutate their inputs and are safe to call concurrently.
type DiscoveryService struct{}

// NewDiscoveryService creates a new discovery service
func NewDiscoveryService() *DiscoveryService {
	return &DiscoveryService{}
}

// FilterCamps returns the camps matching every supplied constraint. Absent
// filter fields impose no constraint; within a multi-valued dimension a camp
// passes if any listed value matches. The result preserves input order and is
// always a subset of the input.
func (s *DiscoveryService) FilterCamps(camps []*entities.Camp, filters entities.SearchFilters) []*entities.Camp {
	if filters.IsZero() {
		return append([]*entities.Camp{}, camps...)
	}

	result := make([]*entities.Camp, 0, len(camps))
	for _, camp := range camps {
		if matchesFilters(camp, filters) {
			result = append(result, camp)
		}
	}
	return result
}

func matchesFilters(camp *entities.Camp, filters entities.SearchFilters) bool {
	if filters.Query != "" && !matchesQuery(camp, filters.Query) {
		return false
	}

	if filters.Location != "" {
		loc := strings.ToLower(filters.Location)
		name := strings.ToLower(camp.Location.Name)
		state := strings.ToLower(camp.Location.State)
		if !strings.Contains(name, loc) && !strings.Contains(state, loc) {
			return false
		}
	}

	if filters.PriceRange != nil {
		price := camp.Pricing.BasePrice
		if filters.PriceRange.Min != nil && price < *filters.PriceRange.Min {
			return false
		}
		if filters.PriceRange.Max != nil && price > *filters.PriceRange.Max {
			return false
		}
	}

	if len(filters.Difficulty) > 0 {
		found := false
		for _, d := range filters.Difficulty {
			if camp.Difficulty == d {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	// The requested size must fall within the camp's own range, inclusive.
	if filters.GroupSize != nil {
		size := *filters.GroupSize
		if size < camp.GroupSize.Min || size > camp.GroupSize.Max {
			return false
		}
	}

	if filters.Duration != nil {
		days := camp.Duration.Days
		if filters.Duration.Min != nil && days < *filters.Duration.Min {
			return false
		}
		if filters.Duration.Max != nil && days > *filters.Duration.Max {
			return false
		}
	}

	if len(filters.Seasons) > 0 {
		found := false
		for _, season := range filters.Seasons {
			if camp.HasSeason(season) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(filters.Activities) > 0 && !anySubstringMatch(camp.ActivityNames(), filters.Activities) {
		return false
	}

	if len(filters.Amenities) > 0 && !anySubstringMatch(camp.Amenities, filters.Amenities) {
		return false
	}

	if filters.MinRating != nil && camp.Rating.Average < *filters.MinRating {
		return false
	}

	if filters.VerifiedOnly && !camp.Verified {
		return false
	}

	return true
}

// anySubstringMatch reports whether any wanted term is a case-insensitive
// substring of any of the values.
func anySubstringMatch(values, wanted []string) bool {
	for _, w := range wanted {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		for _, v := range values {
			if strings.Contains(strings.ToLower(v), w) {
				return true
			}
		}
	}
	return false
}

func matchesQuery(camp *entities.Camp, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}

	haystacks := []string{
		camp.Title,
		camp.Description,
		camp.ShortDescription,
		camp.Location.Name,
		camp.Location.State,
	}
	haystacks = append(haystacks, camp.ActivityNames()...)
	haystacks = append(haystacks, camp.Tags...)

	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), q) {
			return true
		}
	}
	return false
}

// SortCamps orders camps by the given sort key. The input slice is never
// mutated; ties keep their original relative order.
func (s *DiscoveryService) SortCamps(camps []*entities.Camp, sortBy entities.SortKey) []*entities.Camp {
	sorted := append([]*entities.Camp{}, camps...)

	switch sortBy {
	case entities.SortFeatured:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Featured && !sorted[j].Featured
		})
	case entities.SortPriceLow:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Pricing.BasePrice < sorted[j].Pricing.BasePrice
		})
	case entities.SortPriceHigh:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Pricing.BasePrice > sorted[j].Pricing.BasePrice
		})
	case entities.SortRating:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Rating.Average > sorted[j].Rating.Average
		})
	case entities.SortDuration:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Duration.Days < sorted[j].Duration.Days
		})
	case entities.SortNewest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	}

	return sorted
}

// SearchCamps applies a free-text query as an additional AND constraint, then
// filters and sorts. A blank query imposes no text constraint.
func (s *DiscoveryService) SearchCamps(camps []*entities.Camp, query string, filters entities.SearchFilters, sortBy entities.SortKey) []*entities.Camp {
	filters.Query = strings.TrimSpace(query)
	return s.SortCamps(s.FilterCamps(camps, filters), sortBy)
}
