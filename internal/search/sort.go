package search

import (
	"sort"
	"strings"

	"github.com/camilohimself/projet-gocours/internal/models"
)

type SortKey string

const (
	SortByRating     SortKey = "rating"
	SortByPrice      SortKey = "price"
	SortByReviews    SortKey = "reviews"
	SortByNewest     SortKey = "newest"
	SortByExperience SortKey = "experience"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ParseSortKey maps client input onto a sort key, defaulting to rating.
func ParseSortKey(raw string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(raw))) {
	case SortByPrice:
		return SortByPrice
	case SortByReviews:
		return SortByReviews
	case SortByNewest:
		return SortByNewest
	case SortByExperience:
		return SortByExperience
	default:
		return SortByRating
	}
}

// DefaultOrder returns the natural direction for a key: price ascends,
// everything else descends.
func DefaultOrder(key SortKey) SortOrder {
	if key == SortByPrice {
		return OrderAsc
	}
	return OrderDesc
}

// ParseSortOrder maps client input onto a direction, falling back to the
// key's natural one.
func ParseSortOrder(raw string, key SortKey) SortOrder {
	switch SortOrder(strings.ToLower(strings.TrimSpace(raw))) {
	case OrderAsc:
		return OrderAsc
	case OrderDesc:
		return OrderDesc
	default:
		return DefaultOrder(key)
	}
}

// Sort orders tutors in place. The primary key honors the requested
// direction; tie-breaks keep their documented direction. The sort is stable
// so equal candidates keep their input order.
func Sort(tutors []models.TutorProfile, key SortKey, order SortOrder) {
	sort.SliceStable(tutors, func(i, j int) bool {
		a, b := &tutors[i], &tutors[j]
		if cmp := compare(a, b, key); cmp != 0 {
			if order == OrderDesc {
				return cmp > 0
			}
			return cmp < 0
		}
		return tieBreak(a, b, key)
	})
}

// compare returns >0 when a ranks above b on the key's natural scale.
func compare(a, b *models.TutorProfile, key SortKey) int {
	switch key {
	case SortByPrice:
		return compareFloat(floatValue(a.HourlyRate), floatValue(b.HourlyRate))
	case SortByReviews:
		return a.ReviewCount - b.ReviewCount
	case SortByNewest:
		return a.CreatedAt.Compare(b.CreatedAt)
	case SortByExperience:
		return intValue(a.ExperienceYears) - intValue(b.ExperienceYears)
	default: // rating
		return compareFloat(floatValue(a.AverageRating), floatValue(b.AverageRating))
	}
}

func tieBreak(a, b *models.TutorProfile, key SortKey) bool {
	if key == SortByRating {
		if a.ReviewCount != b.ReviewCount {
			return a.ReviewCount > b.ReviewCount
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
	}
	return false
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
