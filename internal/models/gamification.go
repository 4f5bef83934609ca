package models

import "time"

type XPEvent struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Kind      string    `json:"kind"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"created_at"`
}

type Progress struct {
	UserID      int64 `json:"user_id"`
	XP          int64 `json:"xp"`
	Level       int   `json:"level"`
	NextLevelXP int64 `json:"next_level_xp"`
}

type LeaderboardEntry struct {
	UserID      int64   `json:"user_id"`
	DisplayName *string `json:"display_name"`
	XP          int64   `json:"xp"`
	Level       int     `json:"level"`
	Rank        int64   `json:"rank"`
}
