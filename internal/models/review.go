package models

import "time"

type Review struct {
	ID         int64     `json:"id"`
	AuthorID   int64     `json:"author_id"`
	TutorID    int64     `json:"tutor_id"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment"`
	AuthorName *string   `json:"author_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
