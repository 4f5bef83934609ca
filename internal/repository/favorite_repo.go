package repository

import (
	"context"
)

type FavoriteRepository struct {
	db DBTX
}

func NewFavoriteRepository(db DBTX) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Add(ctx context.Context, userID, tutorID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO favorites (user_id, tutor_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, tutor_id) DO NOTHING
	`, userID, tutorID)
	return err
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, tutorID int64) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM favorites WHERE user_id = $1 AND tutor_id = $2
	`, userID, tutorID)
	return err
}

func (r *FavoriteRepository) IsFavorite(ctx context.Context, userID, tutorID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND tutor_id = $2)
	`, userID, tutorID).Scan(&exists)
	return exists, err
}

// ListTutorIDsByUser returns the tutor user ids the user saved, most recent
// first.
func (r *FavoriteRepository) ListTutorIDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT tutor_id FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tutorIDs []int64
	for rows.Next() {
		var tutorID int64
		if err := rows.Scan(&tutorID); err != nil {
			return nil, err
		}
		tutorIDs = append(tutorIDs, tutorID)
	}
	return tutorIDs, rows.Err()
}
