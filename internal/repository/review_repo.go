package repository

import (
	"context"

	"github.com/camilohimself/projet-gocours/internal/models"
)

type ReviewRepository struct {
	db DBTX
}

func NewReviewRepository(db DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (author_id, tutor_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, review.AuthorID, review.TutorID, review.Rating, review.Comment).
		Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
}

func (r *ReviewRepository) ListByTutor(ctx context.Context, tutorID int64) ([]models.Review, error) {
	query := `
		SELECT r.id, r.author_id, r.tutor_id, r.rating, r.comment, u.display_name,
			r.created_at, r.updated_at
		FROM reviews r
		JOIN users u ON u.id = r.author_id
		WHERE r.tutor_id = $1
		ORDER BY r.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, tutorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var review models.Review
		err := rows.Scan(
			&review.ID,
			&review.AuthorID,
			&review.TutorID,
			&review.Rating,
			&review.Comment,
			&review.AuthorName,
			&review.CreatedAt,
			&review.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

// HasReviewed reports whether the student already left a review for the tutor.
func (r *ReviewRepository) HasReviewed(ctx context.Context, authorID, tutorID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM reviews WHERE author_id = $1 AND tutor_id = $2)
	`, authorID, tutorID).Scan(&exists)
	return exists, err
}

// RecomputeTutorAggregates refreshes the denormalized rating columns on the
// tutor profile from the review table.
func (r *ReviewRepository) RecomputeTutorAggregates(ctx context.Context, tutorID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE tutor_profiles p
		SET average_rating = agg.avg_rating,
			review_count = agg.total,
			updated_at = NOW()
		FROM (
			SELECT ROUND(AVG(rating)::numeric, 2) AS avg_rating, COUNT(*) AS total
			FROM reviews
			WHERE tutor_id = $1
		) agg
		WHERE p.user_id = $1
	`, tutorID)
	return err
}
