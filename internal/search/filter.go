// Package search turns optional tutor filter criteria into a single predicate
// and provides the sort orders and pagination used by the tutor listing. It
// operates on hydrated profiles already loaded from storage.
package search

import (
	"strings"

	"github.com/camilohimself/projet-gocours/internal/models"
)

// Criteria holds the independently-optional search filters. A zero-value
// field imposes no constraint.
type Criteria struct {
	Subjects        []string `json:"subjects"`
	PriceMin        *float64 `json:"price_min"`
	PriceMax        *float64 `json:"price_max"`
	Location        string   `json:"location"`
	TeachingFormats []string `json:"teaching_formats"`
	Languages       []string `json:"languages"`
	MinRating       float64  `json:"min_rating"`
	MinExperience   int      `json:"min_experience"`
	VerifiedOnly    bool     `json:"verified_only"`
	Query           string   `json:"query"`
}

// Predicate decides whether a tutor is included in filtered results.
type Predicate func(tutor *models.TutorProfile) bool

// Compile builds the conjunction of all set criteria. Unset criteria
// contribute nothing, so Compile(Criteria{}) matches every tutor.
func Compile(criteria Criteria) Predicate {
	conditions := make([]Predicate, 0, 9)

	if len(criteria.Subjects) > 0 {
		subjects := criteria.Subjects
		conditions = append(conditions, func(tutor *models.TutorProfile) bool {
			for _, name := range subjects {
				if tutor.TeachesSubject(name) {
					return true
				}
			}
			return false
		})
	}

	if criteria.PriceMin != nil || criteria.PriceMax != nil {
		min, max := criteria.PriceMin, criteria.PriceMax
		conditions = append(conditions, func(tutor *models.TutorProfile) bool {
			rate := floatValue(tutor.HourlyRate)
			if min != nil && rate < *min {
				return false
			}
			if max != nil && rate > *max {
				return false
			}
			return true
		})
	}

	if location := strings.TrimSpace(criteria.Location); location != "" {
		needle := strings.ToLower(location)
		conditions = append(conditions, func(tutor *models.TutorProfile) bool {
			return containsFold(stringValue(tutor.LocationCity), needle)
		})
	}

	if len(criteria.TeachingFormats) > 0 {
		formats := criteria.TeachingFormats
		conditions = append(conditions, func(tutor *models.TutorProfile) bool {
			return anyOverlap(sliceValue(tutor.TeachingFormats), formats)
		})
	}

	if len(criteria.Languages) > 0 {
		languages := criteria.Languages
		conditions = append(conditions, func(tutor *models.TutorProfile) bool {
			return anyOverlap(sliceValue(tutor.Languages), languages)
		})
	}

	if criteria.MinRating > 0 {
		threshold := criteria.MinRating
		conditions = append(conditions, func(tutor *models.TutorProfile) bool {
			return floatValue(tutor.AverageRating) >= threshold
		})
	}

	if criteria.MinExperience > 0 {
		threshold := criteria.MinExperience
		conditions = append(conditions, func(tutor *models.TutorProfile) bool {
			return intValue(tutor.ExperienceYears) >= threshold
		})
	}

	if criteria.VerifiedOnly {
		conditions = append(conditions, func(tutor *models.TutorProfile) bool {
			return tutor.IsVerified != nil && *tutor.IsVerified
		})
	}

	if query := strings.TrimSpace(criteria.Query); query != "" {
		needle := strings.ToLower(query)
		conditions = append(conditions, func(tutor *models.TutorProfile) bool {
			if containsFold(stringValue(tutor.Headline), needle) ||
				containsFold(stringValue(tutor.Bio), needle) ||
				containsFold(stringValue(tutor.DisplayName), needle) {
				return true
			}
			return containsFold(subjectNames(tutor), needle)
		})
	}

	return func(tutor *models.TutorProfile) bool {
		for _, condition := range conditions {
			if !condition(tutor) {
				return false
			}
		}
		return true
	}
}

// Apply filters tutors through the compiled predicate, preserving order.
func Apply(tutors []models.TutorProfile, predicate Predicate) []models.TutorProfile {
	filtered := make([]models.TutorProfile, 0, len(tutors))
	for i := range tutors {
		if predicate(&tutors[i]) {
			filtered = append(filtered, tutors[i])
		}
	}
	return filtered
}

func containsFold(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}

func anyOverlap(values, wanted []string) bool {
	for _, want := range wanted {
		for _, value := range values {
			if strings.EqualFold(value, want) {
				return true
			}
		}
	}
	return false
}

func subjectNames(tutor *models.TutorProfile) string {
	names := make([]string, 0, len(tutor.Subjects))
	for _, subject := range tutor.Subjects {
		names = append(names, subject.Name)
	}
	return strings.Join(names, " ")
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func floatValue(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}

func intValue(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}

func sliceValue(values *[]string) []string {
	if values == nil {
		return nil
	}
	return *values
}
