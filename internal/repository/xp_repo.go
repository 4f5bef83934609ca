package repository

import (
	"context"

	"github.com/camilohimself/projet-gocours/internal/models"
)

type XPRepository struct {
	db DBTX
}

func NewXPRepository(db DBTX) *XPRepository {
	return &XPRepository{db: db}
}

func (r *XPRepository) InsertEvent(ctx context.Context, event *models.XPEvent) error {
	query := `
		INSERT INTO xp_events (user_id, kind, points)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query, event.UserID, event.Kind, event.Points).
		Scan(&event.ID, &event.CreatedAt)
}

func (r *XPRepository) TotalForUser(ctx context.Context, userID int64) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(points), 0) FROM xp_events WHERE user_id = $1
	`, userID).Scan(&total)
	return total, err
}

// TotalsAll returns every user's XP total with display names, highest first.
// Serves as the leaderboard source of truth when the cache is cold or absent.
func (r *XPRepository) TotalsAll(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT e.user_id, u.display_name, COALESCE(SUM(e.points), 0) AS total
		FROM xp_events e
		JOIN users u ON u.id = e.user_id
		GROUP BY e.user_id, u.display_name
		ORDER BY total DESC, e.user_id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var entry models.LeaderboardEntry
		if err := rows.Scan(&entry.UserID, &entry.DisplayName, &entry.XP); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
