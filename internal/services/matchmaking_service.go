package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/camilohimself/projet-gocours/internal/matching"
	"github.com/camilohimself/projet-gocours/internal/models"
)

type tutorLister interface {
	ListAll(ctx context.Context) ([]models.TutorProfile, error)
}

type studentProfileReader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error)
	GetByUserIDs(ctx context.Context, userIDs []int64) ([]models.StudentProfile, error)
}

type MatchmakingService struct {
	tutorRepo   tutorLister
	studentRepo studentProfileReader
	scorer      *matching.Scorer
}

func NewMatchmakingService(
	tutorRepo tutorLister,
	studentRepo studentProfileReader,
	scorer *matching.Scorer,
) *MatchmakingService {
	return &MatchmakingService{
		tutorRepo:   tutorRepo,
		studentRepo: studentRepo,
		scorer:      scorer,
	}
}

// RecommendedTutors ranks every onboarded tutor for the student and returns
// the top matches. A student without a profile gets ErrInvalidInput rather
// than unscored results.
func (s *MatchmakingService) RecommendedTutors(
	ctx context.Context,
	studentUserID int64,
	subject string,
	limit int,
) ([]matching.RankedTutor, error) {
	student, err := s.studentRepo.GetByUserID(ctx, studentUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidInput
		}
		return nil, err
	}

	tutors, err := s.tutorRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return s.scorer.FindBestMatches(student, tutors, subject, limit), nil
}

// GroupMatching assigns each requested student at most one tutor, greedily in
// the order the ids were given. Unknown student ids are skipped.
func (s *MatchmakingService) GroupMatching(
	ctx context.Context,
	studentUserIDs []int64,
	subject string,
) (map[int64]int64, error) {
	if len(studentUserIDs) == 0 {
		return nil, ErrInvalidInput
	}

	students, err := s.studentRepo.GetByUserIDs(ctx, studentUserIDs)
	if err != nil {
		return nil, err
	}
	tutors, err := s.tutorRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return s.scorer.OptimizeGroupMatching(students, tutors, subject), nil
}
