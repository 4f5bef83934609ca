package services

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/camilohimself/projet-gocours/internal/models"
	"github.com/camilohimself/projet-gocours/internal/repository"
)

type completedBookingChecker interface {
	HasCompletedBooking(ctx context.Context, studentID, tutorID int64) (bool, error)
}

type reviewAwarder interface {
	AwardReviewWritten(ctx context.Context, authorID int64) error
}

type ReviewService struct {
	db          *pgxpool.Pool
	reviewRepo  *repository.ReviewRepository
	bookingRepo completedBookingChecker
	awarder     reviewAwarder
}

func NewReviewService(
	db *pgxpool.Pool,
	reviewRepo *repository.ReviewRepository,
	bookingRepo completedBookingChecker,
	awarder reviewAwarder,
) *ReviewService {
	return &ReviewService{
		db:          db,
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		awarder:     awarder,
	}
}

type CreateReviewInput struct {
	TutorID int64
	Rating  int
	Comment *string
}

// CreateReview records a review from a student who completed at least one
// session with the tutor, and refreshes the tutor's denormalized rating in
// the same transaction.
func (s *ReviewService) CreateReview(
	ctx context.Context,
	authorID int64,
	input CreateReviewInput,
) (*models.Review, error) {
	if input.TutorID <= 0 || input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidInput
	}
	if authorID == input.TutorID {
		return nil, ErrInvalidInput
	}

	completed, err := s.bookingRepo.HasCompletedBooking(ctx, authorID, input.TutorID)
	if err != nil {
		return nil, err
	}
	if !completed {
		return nil, ErrForbidden
	}

	reviewed, err := s.reviewRepo.HasReviewed(ctx, authorID, input.TutorID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		return nil, ErrConflict
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txReviewRepo := repository.NewReviewRepository(tx)
	review := &models.Review{
		AuthorID: authorID,
		TutorID:  input.TutorID,
		Rating:   input.Rating,
		Comment:  input.Comment,
	}
	if err := txReviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	if err := txReviewRepo.RecomputeTutorAggregates(ctx, input.TutorID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if s.awarder != nil {
		if err := s.awarder.AwardReviewWritten(ctx, authorID); err != nil {
			return nil, err
		}
	}
	return review, nil
}

func (s *ReviewService) ListByTutor(ctx context.Context, tutorID int64) ([]models.Review, error) {
	return s.reviewRepo.ListByTutor(ctx, tutorID)
}
