package models

import "time"

type Booking struct {
	ID              int64     `json:"id"`
	StudentID       int64     `json:"student_id"`
	TutorID         int64     `json:"tutor_id"`
	Subject         string    `json:"subject"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	TotalAmount     float64   `json:"total_amount"`
	SessionNotes    *string   `json:"session_notes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type BookingDetail struct {
	Booking
	StudentName *string `json:"student_name,omitempty"`
	TutorName   *string `json:"tutor_name,omitempty"`
}
