package matching

import "github.com/camilohimself/projet-gocours/internal/models"

// CompatibilityEstimator maps a (teaching style, learning style) pair onto a
// 0-100 compatibility estimate. Implementations may be a rules table or an
// external model; the scorer only depends on this signature.
type CompatibilityEstimator interface {
	EstimateCompatibility(teaching *models.TeachingStyle, learning *models.LearningStyle) int
}

// StaticEstimator is the default estimator: a deterministic rules table over
// the style descriptors. It keeps scoring total and testable without an
// external model call.
type StaticEstimator struct{}

func NewStaticEstimator() *StaticEstimator {
	return &StaticEstimator{}
}

// approachAffinity pairs a learning preference with the teaching approach
// that serves it best.
var approachAffinity = map[string]string{
	"visual":      "demonstrative",
	"auditory":    "explanatory",
	"kinesthetic": "hands_on",
	"reading":     "structured",
}

func (e *StaticEstimator) EstimateCompatibility(teaching *models.TeachingStyle, learning *models.LearningStyle) int {
	if teaching == nil || learning == nil {
		return 50
	}

	score := 50

	switch {
	case teaching.Pace == "adaptive":
		score += 20
	case teaching.Pace != "" && teaching.Pace == learning.Pace:
		score += 15
	}

	if best, ok := approachAffinity[learning.Preference]; ok && teaching.Approach == best {
		score += 15
	}

	switch {
	case learning.Interaction == "high" && teaching.Structure == "flexible":
		score += 15
	case learning.Interaction == "low" && teaching.Structure == "structured":
		score += 15
	case teaching.Structure != "":
		score += 5
	}

	return clampScore(score)
}
