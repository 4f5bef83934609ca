// Package matching computes tutor/student compatibility scores. The formula
// is a hand-tuned weighted sum, not a calibrated model; the constants are kept
// stable so that scores stay comparable across releases.
package matching

import (
	"math"
	"strings"

	"github.com/camilohimself/projet-gocours/internal/models"
)

// Weights distributes the six sub-scores into the overall score. The default
// set sums to 1.0.
type Weights struct {
	Style        float64
	Subject      float64
	Availability float64
	Price        float64
	Personality  float64
	Success      float64
}

func DefaultWeights() Weights {
	return Weights{
		Style:        0.25,
		Subject:      0.20,
		Availability: 0.15,
		Price:        0.10,
		Personality:  0.20,
		Success:      0.10,
	}
}

// DefaultReferenceRate is the market hourly rate the price sub-score compares
// against (CHF). The student's stated budget is intentionally not consulted;
// see the price sub-score.
const DefaultReferenceRate = 80.0

// MatchScore carries the six sub-scores, the weighted overall score and the
// human-readable reasoning, all scores clamped to [0,100].
type MatchScore struct {
	Overall            int      `json:"overall"`
	StyleCompatibility int      `json:"style_compatibility"`
	SubjectExpertise   int      `json:"subject_expertise"`
	AvailabilityMatch  int      `json:"availability_match"`
	PriceMatch         int      `json:"price_match"`
	PersonalityFit     int      `json:"personality_fit"`
	PredictedSuccess   int      `json:"predicted_success"`
	Reasoning          []string `json:"reasoning"`
}

// Scorer is an explicitly constructed instance; there is no package-level
// shared scorer.
type Scorer struct {
	estimator     CompatibilityEstimator
	weights       Weights
	referenceRate float64
}

type Option func(*Scorer)

func WithWeights(weights Weights) Option {
	return func(s *Scorer) { s.weights = weights }
}

func WithReferenceRate(rate float64) Option {
	return func(s *Scorer) {
		if rate > 0 {
			s.referenceRate = rate
		}
	}
}

// NewScorer builds a scorer around the given estimator. A nil estimator
// falls back to the static rules table.
func NewScorer(estimator CompatibilityEstimator, opts ...Option) *Scorer {
	if estimator == nil {
		estimator = NewStaticEstimator()
	}
	scorer := &Scorer{
		estimator:     estimator,
		weights:       DefaultWeights(),
		referenceRate: DefaultReferenceRate,
	}
	for _, opt := range opts {
		opt(scorer)
	}
	return scorer
}

// Score computes the compatibility between a tutor and a student for the
// requested subject. It never fails: missing optional fields degrade to
// neutral defaults, and inputs are not mutated.
func (s *Scorer) Score(tutor *models.TutorProfile, student *models.StudentProfile, subject string) MatchScore {
	style := s.styleCompatibility(tutor, student)
	expertise := s.subjectExpertise(tutor, subject)
	availability := s.availabilityMatch(tutor)
	price := s.priceMatch(tutor)
	personality := s.personalityFit(tutor, student)
	success := s.predictedSuccess(tutor, student, subject)

	overall := clampScore(int(math.Round(
		float64(style)*s.weights.Style +
			float64(expertise)*s.weights.Subject +
			float64(availability)*s.weights.Availability +
			float64(price)*s.weights.Price +
			float64(personality)*s.weights.Personality +
			float64(success)*s.weights.Success,
	)))

	return MatchScore{
		Overall:            overall,
		StyleCompatibility: style,
		SubjectExpertise:   expertise,
		AvailabilityMatch:  availability,
		PriceMatch:         price,
		PersonalityFit:     personality,
		PredictedSuccess:   success,
		Reasoning:          buildReasoning(style, expertise, availability, personality, success, price, overall),
	}
}

func (s *Scorer) styleCompatibility(tutor *models.TutorProfile, student *models.StudentProfile) int {
	teaching := tutor.Style()
	learning := student.Style()
	if teaching == nil || learning == nil {
		return 50
	}
	return clampScore(s.estimator.EstimateCompatibility(teaching, learning))
}

func (s *Scorer) subjectExpertise(tutor *models.TutorProfile, subject string) int {
	if !tutor.TeachesSubject(subject) {
		return 0
	}

	score := 60
	if years := intValue(tutor.ExperienceYears); years > 0 {
		bonus := years * 5
		if bonus > 20 {
			bonus = 20
		}
		score += bonus
	}

	switch rating := floatValue(tutor.AverageRating); {
	case rating >= 4.5:
		score += 15
	case rating >= 4.0:
		score += 10
	case rating >= 3.5:
		score += 5
	}

	if tutor.IsVerified != nil && *tutor.IsVerified {
		score += 5
	}

	return clampScore(score)
}

// availabilityMatch is a coarse proxy: more active slots score higher. Real
// calendar overlap against the student's schedule is not modelled.
func (s *Scorer) availabilityMatch(tutor *models.TutorProfile) int {
	slots := 0
	for _, slot := range tutor.Availability {
		if slot.IsActive {
			slots++
		}
	}
	if slots == 0 {
		return 25
	}
	return clampScore(slots * 10)
}

// priceMatch bands the distance between the tutor's rate and the fixed
// reference rate. The student's budget field exists but is not wired in, to
// keep observable scores identical to the historical behavior.
func (s *Scorer) priceMatch(tutor *models.TutorProfile) int {
	difference := math.Abs(floatValue(tutor.HourlyRate) - s.referenceRate)
	switch {
	case difference <= 10:
		return 100
	case difference <= 20:
		return 80
	case difference <= 30:
		return 60
	case difference <= 40:
		return 40
	default:
		return 20
	}
}

func (s *Scorer) personalityFit(tutor *models.TutorProfile, student *models.StudentProfile) int {
	score := 70

	if tutor.TeachingPace != nil && *tutor.TeachingPace == "adaptive" {
		score += 15
	}

	if student != nil &&
		student.InteractionLevel != nil && *student.InteractionLevel == "high" &&
		tutor.TeachingStructure != nil && *tutor.TeachingStructure == "flexible" {
		score += 10
	}

	if sharesLanguageToken(tutor, student) {
		score += 5
	}

	return clampScore(score)
}

// sharesLanguageToken credits language tutors: a tutor language counts when
// it appears inside one of the student's preferred subject names (a student
// wanting "French" as a subject matches a French-speaking tutor).
func sharesLanguageToken(tutor *models.TutorProfile, student *models.StudentProfile) bool {
	if student == nil || student.PreferredSubjects == nil || tutor.Languages == nil {
		return false
	}
	for _, language := range *tutor.Languages {
		if language == "" {
			continue
		}
		for _, subject := range *student.PreferredSubjects {
			if strings.Contains(strings.ToLower(subject), strings.ToLower(language)) {
				return true
			}
		}
	}
	return false
}

func (s *Scorer) predictedSuccess(tutor *models.TutorProfile, student *models.StudentProfile, subject string) int {
	score := 50

	if intValue(tutor.ExperienceYears) > 3 {
		score += 15
	}
	if floatValue(tutor.AverageRating) > 4.5 {
		score += 15
	}
	if student != nil && student.LearningGoals != nil && strings.TrimSpace(*student.LearningGoals) != "" {
		score += 10
	}
	if student.PrefersSubject(subject) {
		score += 10
	}

	return clampScore(score)
}

// buildReasoning appends one fixed sentence per sub-score that crosses its
// threshold, in sub-score evaluation order, plus a caution when the overall
// score is weak.
func buildReasoning(style, expertise, availability, personality, success, price, overall int) []string {
	reasoning := make([]string, 0, 7)

	if style >= 80 {
		reasoning = append(reasoning, "Excellent compatibility between teaching and learning styles")
	} else if style >= 60 {
		reasoning = append(reasoning, "Good compatibility of pedagogical approaches")
	}
	if expertise >= 80 {
		reasoning = append(reasoning, "Confirmed expertise in the requested subject")
	}
	if availability >= 70 {
		reasoning = append(reasoning, "Very flexible and compatible availability")
	}
	if personality >= 75 {
		reasoning = append(reasoning, "Complementary personality profiles")
	}
	if success >= 70 {
		reasoning = append(reasoning, "Strong probability of learning success")
	}
	if price >= 80 {
		reasoning = append(reasoning, "Rate well aligned with the market")
	}
	if overall < 60 {
		reasoning = append(reasoning, "Possible match, but other options may fit better")
	}

	return reasoning
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
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
