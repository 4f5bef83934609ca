package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/camilohimself/projet-gocours/internal/models"
)

type CreateBookingInput struct {
	StudentID       int64
	TutorID         int64
	Subject         string
	ScheduledAt     time.Time
	DurationMinutes int
	TotalAmount     float64
	SessionNotes    *string
}

type BookingListFilter struct {
	ActorID   int64
	Role      string
	Status    string
	Timeframe string
}

type BookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `
	id, student_id, tutor_id, subject, scheduled_at, duration_minutes,
	status, total_amount, session_notes, created_at, updated_at
`

func (r *BookingRepository) Create(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	query := `
		INSERT INTO bookings
			(student_id, tutor_id, subject, scheduled_at, duration_minutes, status, total_amount, session_notes)
		VALUES ($1, $2, $3, $4, $5, 'PENDING', $6, $7)
		RETURNING ` + bookingColumns + `
	`
	var booking models.Booking
	err := scanBookingRow(r.db.QueryRow(ctx, query,
		input.StudentID,
		input.TutorID,
		input.Subject,
		input.ScheduledAt,
		input.DurationMinutes,
		input.TotalAmount,
		input.SessionNotes,
	), &booking)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID int64) (*models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1
	`
	var booking models.Booking
	if err := scanBookingRow(r.db.QueryRow(ctx, query, bookingID), &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetDetailByID loads a booking together with both participants' names.
func (r *BookingRepository) GetDetailByID(ctx context.Context, bookingID int64) (*models.BookingDetail, error) {
	query := `
		SELECT b.id, b.student_id, b.tutor_id, b.subject, b.scheduled_at, b.duration_minutes,
			b.status, b.total_amount, b.session_notes, b.created_at, b.updated_at,
			su.display_name, tu.display_name
		FROM bookings b
		JOIN users su ON su.id = b.student_id
		JOIN users tu ON tu.id = b.tutor_id
		WHERE b.id = $1
	`
	var detail models.BookingDetail
	err := r.db.QueryRow(ctx, query, bookingID).Scan(
		&detail.ID,
		&detail.StudentID,
		&detail.TutorID,
		&detail.Subject,
		&detail.ScheduledAt,
		&detail.DurationMinutes,
		&detail.Status,
		&detail.TotalAmount,
		&detail.SessionNotes,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.StudentName,
		&detail.TutorName,
	)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *BookingRepository) List(ctx context.Context, filter BookingListFilter) ([]models.Booking, error) {
	conditions := make([]string, 0, 3)
	args := make([]any, 0, 3)

	switch filter.Role {
	case models.RoleStudent:
		args = append(args, filter.ActorID)
		conditions = append(conditions, fmt.Sprintf("student_id = $%d", len(args)))
	case models.RoleTutor:
		args = append(args, filter.ActorID)
		conditions = append(conditions, fmt.Sprintf("tutor_id = $%d", len(args)))
	default:
		// admins see everything
	}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	switch filter.Timeframe {
	case "upcoming":
		conditions = append(conditions, "scheduled_at >= NOW()")
	case "past":
		conditions = append(conditions, "scheduled_at < NOW()")
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY scheduled_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var booking models.Booking
		if err := scanBookingRow(rows, &booking); err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

// UpdateStatusIfCurrent flips the status only when the row still holds the
// expected current value, so concurrent transitions cannot race past the
// state machine. Returns pgx.ErrNoRows semantics via the empty result.
func (r *BookingRepository) UpdateStatusIfCurrent(ctx context.Context, bookingID int64, current, next string) (*models.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING ` + bookingColumns + `
	`
	var booking models.Booking
	if err := scanBookingRow(r.db.QueryRow(ctx, query, next, bookingID, current), &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) UpdateNotes(ctx context.Context, bookingID int64, notes *string) (*models.Booking, error) {
	query := `
		UPDATE bookings
		SET session_notes = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + bookingColumns + `
	`
	var booking models.Booking
	if err := scanBookingRow(r.db.QueryRow(ctx, query, notes, bookingID), &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) Delete(ctx context.Context, bookingID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, bookingID)
	return err
}

// HasConflict reports whether the tutor already has a non-cancelled booking
// overlapping the requested window.
func (r *BookingRepository) HasConflict(
	ctx context.Context,
	tutorID int64,
	requestedTime time.Time,
	durationMinutes int,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM bookings
			WHERE tutor_id = $1
			  AND status NOT IN ('CANCELLED', 'NO_SHOW')
			  AND scheduled_at < ($2::timestamptz + ($3::int * INTERVAL '1 minute'))
			  AND (scheduled_at + (duration_minutes * INTERVAL '1 minute')) > $2::timestamptz
		)
	`
	var hasConflict bool
	if err := r.db.QueryRow(ctx, query, tutorID, requestedTime, durationMinutes).Scan(&hasConflict); err != nil {
		return false, err
	}
	return hasConflict, nil
}

// HasCompletedBooking reports whether the student finished at least one
// session with the tutor. Gates review creation.
func (r *BookingRepository) HasCompletedBooking(ctx context.Context, studentID, tutorID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE student_id = $1 AND tutor_id = $2 AND status = 'COMPLETED'
		)
	`
	var completed bool
	if err := r.db.QueryRow(ctx, query, studentID, tutorID).Scan(&completed); err != nil {
		return false, err
	}
	return completed, nil
}

func scanBookingRow(row rowScanner, booking *models.Booking) error {
	return row.Scan(
		&booking.ID,
		&booking.StudentID,
		&booking.TutorID,
		&booking.Subject,
		&booking.ScheduledAt,
		&booking.DurationMinutes,
		&booking.Status,
		&booking.TotalAmount,
		&booking.SessionNotes,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
}
