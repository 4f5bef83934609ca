package matching

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camilohimself/projet-gocours/internal/models"
)

type fixedEstimator struct {
	score int
	calls int
}

func (e *fixedEstimator) EstimateCompatibility(_ *models.TeachingStyle, _ *models.LearningStyle) int {
	e.calls++
	return e.score
}

func strPtr(s string) *string      { return &s }
func intPtr(i int) *int            { return &i }
func floatPtr(f float64) *float64  { return &f }
func boolPtr(b bool) *bool         { return &b }
func slicePtr(s ...string) *[]string { return &s }

func physicsTutor() models.TutorProfile {
	return models.TutorProfile{
		ID:              1,
		UserID:          1,
		HourlyRate:      floatPtr(80),
		AverageRating:   floatPtr(4.8),
		ReviewCount:     24,
		ExperienceYears: intPtr(8),
		IsVerified:      boolPtr(true),
		Subjects:        []models.Subject{{ID: 1, Name: "Physics", Category: "Science"}},
	}
}

func motivatedStudent() models.StudentProfile {
	return models.StudentProfile{
		ID:                1,
		UserID:            2,
		LearningGoals:     strPtr("pass the maturité physics exam"),
		PreferredSubjects: slicePtr("Physics"),
	}
}

func TestScoreSubjectExpertiseEndToEnd(t *testing.T) {
	scorer := NewScorer(nil)
	tutor := physicsTutor()
	student := motivatedStudent()

	// 60 base + min(8*5, 20) + 15 rating + 5 verified, clamped to 100.
	score := scorer.Score(&tutor, &student, "Physics")
	assert.Equal(t, 100, score.SubjectExpertise)

	chemist := physicsTutor()
	chemist.Subjects = []models.Subject{{ID: 2, Name: "Chemistry", Category: "Science"}}
	score = scorer.Score(&chemist, &student, "Physics")
	assert.Equal(t, 0, score.SubjectExpertise)
}

func TestScoreOverallIsTheWeightedSum(t *testing.T) {
	estimator := &fixedEstimator{score: 90}
	scorer := NewScorer(estimator)

	tutor := physicsTutor()
	tutor.TeachingApproach = strPtr("demonstrative")
	tutor.TeachingPace = strPtr("adaptive")
	tutor.TeachingStructure = strPtr("flexible")
	student := motivatedStudent()
	student.LearningPreference = strPtr("visual")
	student.LearningPace = strPtr("fast")
	student.InteractionLevel = strPtr("high")

	score := scorer.Score(&tutor, &student, "Physics")
	require.Equal(t, 1, estimator.calls)
	assert.Equal(t, 90, score.StyleCompatibility)

	weights := DefaultWeights()
	expected := int(math.Round(
		float64(score.StyleCompatibility)*weights.Style +
			float64(score.SubjectExpertise)*weights.Subject +
			float64(score.AvailabilityMatch)*weights.Availability +
			float64(score.PriceMatch)*weights.Price +
			float64(score.PersonalityFit)*weights.Personality +
			float64(score.PredictedSuccess)*weights.Success,
	))
	assert.Equal(t, expected, score.Overall)
}

func TestScoreBoundsForArbitraryInputs(t *testing.T) {
	scorer := NewScorer(&fixedEstimator{score: 250})

	tutors := []models.TutorProfile{
		{},
		physicsTutor(),
		{HourlyRate: floatPtr(400), ExperienceYears: intPtr(50)},
	}
	students := []models.StudentProfile{
		{},
		motivatedStudent(),
	}

	for i := range tutors {
		for j := range students {
			score := scorer.Score(&tutors[i], &students[j], "Physics")
			for name, value := range map[string]int{
				"overall":      score.Overall,
				"style":        score.StyleCompatibility,
				"subject":      score.SubjectExpertise,
				"availability": score.AvailabilityMatch,
				"price":        score.PriceMatch,
				"personality":  score.PersonalityFit,
				"success":      score.PredictedSuccess,
			} {
				assert.GreaterOrEqual(t, value, 0, "%s sub-score", name)
				assert.LessOrEqual(t, value, 100, "%s sub-score", name)
			}
		}
	}
}

func TestStyleCompatibilityNeutralWhenStylesMissing(t *testing.T) {
	estimator := &fixedEstimator{score: 95}
	scorer := NewScorer(estimator)

	tutor := physicsTutor() // no teaching style
	student := motivatedStudent()
	student.LearningPreference = strPtr("visual")

	score := scorer.Score(&tutor, &student, "Physics")
	assert.Equal(t, 50, score.StyleCompatibility)
	assert.Zero(t, estimator.calls, "estimator must not run without both styles")
}

func TestAvailabilityMatchSlotProxy(t *testing.T) {
	scorer := NewScorer(nil)
	tutor := physicsTutor()
	student := motivatedStudent()

	score := scorer.Score(&tutor, &student, "Physics")
	assert.Equal(t, 25, score.AvailabilityMatch, "no slots")

	for i := 0; i < 4; i++ {
		tutor.Availability = append(tutor.Availability, models.AvailabilitySlot{ID: int64(i), IsActive: true})
	}
	tutor.Availability = append(tutor.Availability, models.AvailabilitySlot{ID: 99, IsActive: false})
	score = scorer.Score(&tutor, &student, "Physics")
	assert.Equal(t, 40, score.AvailabilityMatch, "inactive slots do not count")

	for i := 0; i < 20; i++ {
		tutor.Availability = append(tutor.Availability, models.AvailabilitySlot{ID: int64(100 + i), IsActive: true})
	}
	score = scorer.Score(&tutor, &student, "Physics")
	assert.Equal(t, 100, score.AvailabilityMatch, "capped at 100")
}

func TestPriceMatchBandsAroundReferenceRate(t *testing.T) {
	scorer := NewScorer(nil)
	student := motivatedStudent()

	cases := map[float64]int{
		80:  100,
		72:  100,
		62:  80,
		108: 60,
		119: 40,
		200: 20,
	}
	for rate, want := range cases {
		tutor := physicsTutor()
		tutor.HourlyRate = floatPtr(rate)
		score := scorer.Score(&tutor, &student, "Physics")
		assert.Equal(t, want, score.PriceMatch, "rate %.0f", rate)
	}

	custom := NewScorer(nil, WithReferenceRate(40))
	tutor := physicsTutor()
	tutor.HourlyRate = floatPtr(45)
	assert.Equal(t, 100, custom.Score(&tutor, &student, "Physics").PriceMatch)
}

func TestPersonalityFitBonuses(t *testing.T) {
	scorer := NewScorer(nil)

	tutor := physicsTutor()
	student := motivatedStudent()
	assert.Equal(t, 70, scorer.Score(&tutor, &student, "Physics").PersonalityFit)

	tutor.TeachingPace = strPtr("adaptive")
	assert.Equal(t, 85, scorer.Score(&tutor, &student, "Physics").PersonalityFit)

	tutor.TeachingStructure = strPtr("flexible")
	student.InteractionLevel = strPtr("high")
	assert.Equal(t, 95, scorer.Score(&tutor, &student, "Physics").PersonalityFit)

	tutor.Languages = slicePtr("French")
	student.PreferredSubjects = slicePtr("French", "Physics")
	assert.Equal(t, 100, scorer.Score(&tutor, &student, "Physics").PersonalityFit)
}

func TestPredictedSuccessFactors(t *testing.T) {
	scorer := NewScorer(nil)

	tutor := models.TutorProfile{Subjects: []models.Subject{{Name: "Physics"}}}
	student := models.StudentProfile{}
	assert.Equal(t, 50, scorer.Score(&tutor, &student, "Physics").PredictedSuccess)

	tutor.ExperienceYears = intPtr(4)
	tutor.AverageRating = floatPtr(4.6)
	full := motivatedStudent()
	assert.Equal(t, 100, scorer.Score(&tutor, &full, "Physics").PredictedSuccess)
}

func TestReasoningOrderAndCaution(t *testing.T) {
	scorer := NewScorer(&fixedEstimator{score: 85})

	tutor := physicsTutor()
	tutor.TeachingPace = strPtr("adaptive")
	tutor.TeachingApproach = strPtr("demonstrative")
	tutor.TeachingStructure = strPtr("flexible")
	for i := 0; i < 8; i++ {
		tutor.Availability = append(tutor.Availability, models.AvailabilitySlot{ID: int64(i), IsActive: true})
	}
	student := motivatedStudent()
	student.LearningPreference = strPtr("visual")
	student.InteractionLevel = strPtr("high")
	student.LearningPace = strPtr("fast")

	score := scorer.Score(&tutor, &student, "Physics")
	require.NotEmpty(t, score.Reasoning)
	assert.Equal(t, []string{
		"Excellent compatibility between teaching and learning styles",
		"Confirmed expertise in the requested subject",
		"Very flexible and compatible availability",
		"Complementary personality profiles",
		"Strong probability of learning success",
		"Rate well aligned with the market",
	}, score.Reasoning)

	// A weak match gets the caution sentence appended last.
	stranger := models.TutorProfile{HourlyRate: floatPtr(300)}
	weak := scorer.Score(&stranger, &models.StudentProfile{}, "Physics")
	require.Less(t, weak.Overall, 60)
	assert.Equal(t, "Possible match, but other options may fit better", weak.Reasoning[len(weak.Reasoning)-1])
}
