package matching

import (
	"sort"

	"github.com/camilohimself/projet-gocours/internal/models"
)

// DefaultTopN is the number of matches returned when the caller does not ask
// for a specific count.
const DefaultTopN = 5

type RankedTutor struct {
	Tutor models.TutorProfile `json:"tutor"`
	Score MatchScore          `json:"score"`
}

// FindBestMatches scores every tutor for the student and subject and returns
// the top N, sorted by overall score descending. The sort is stable, so ties
// keep their input order. An empty tutor slice yields an empty result.
func (s *Scorer) FindBestMatches(student *models.StudentProfile, tutors []models.TutorProfile, subject string, topN int) []RankedTutor {
	if topN <= 0 {
		topN = DefaultTopN
	}

	ranked := make([]RankedTutor, 0, len(tutors))
	for i := range tutors {
		ranked = append(ranked, RankedTutor{
			Tutor: tutors[i],
			Score: s.Score(&tutors[i], student, subject),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Overall > ranked[j].Score.Overall
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// OptimizeGroupMatching assigns each student at most one tutor, greedily in
// student input order: each student takes their best match among the tutors
// not yet consumed. This is a first-come approximation, not an optimal or
// stable assignment; students beyond the tutor supply stay unmatched.
// The returned map is keyed by student user id with tutor user ids as values.
func (s *Scorer) OptimizeGroupMatching(students []models.StudentProfile, tutors []models.TutorProfile, subject string) map[int64]int64 {
	assignments := make(map[int64]int64, len(students))
	consumed := make(map[int64]struct{}, len(tutors))

	for i := range students {
		remaining := make([]models.TutorProfile, 0, len(tutors))
		for j := range tutors {
			if _, taken := consumed[tutors[j].UserID]; !taken {
				remaining = append(remaining, tutors[j])
			}
		}
		if len(remaining) == 0 {
			break
		}

		best := s.FindBestMatches(&students[i], remaining, subject, 1)
		if len(best) == 0 {
			continue
		}
		assignments[students[i].UserID] = best[0].Tutor.UserID
		consumed[best[0].Tutor.UserID] = struct{}{}
	}

	return assignments
}
