package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/camilohimself/projet-gocours/internal/booking"
	"github.com/camilohimself/projet-gocours/internal/models"
	"github.com/camilohimself/projet-gocours/internal/repository"
)

var (
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
	ErrInvalidInput  = errors.New("invalid input")
	ErrTutorNotFound = errors.New("tutor not found")
)

type tutorProfileReader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.TutorProfile, error)
}

type userReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// Notifier pushes realtime events to a connected user. A nil Notifier is
// valid and drops events.
type Notifier interface {
	Push(userID int64, eventType string, payload any)
}

type completionAwarder interface {
	AwardBookingCompleted(ctx context.Context, b *models.Booking) error
}

type BookingService struct {
	db               *pgxpool.Pool
	bookingRepo      *repository.BookingRepository
	userRepo         userReader
	tutorProfileRepo tutorProfileReader
	notifier         Notifier
	awarder          completionAwarder
}

func NewBookingService(
	db *pgxpool.Pool,
	bookingRepo *repository.BookingRepository,
	userRepo userReader,
	tutorProfileRepo tutorProfileReader,
	notifier Notifier,
	awarder completionAwarder,
) *BookingService {
	return &BookingService{
		db:               db,
		bookingRepo:      bookingRepo,
		userRepo:         userRepo,
		tutorProfileRepo: tutorProfileRepo,
		notifier:         notifier,
		awarder:          awarder,
	}
}

type CreateBookingInput struct {
	TutorID         int64
	Subject         string
	ScheduledAt     time.Time
	DurationMinutes int
	SessionNotes    *string
}

func (s *BookingService) CreateBooking(
	ctx context.Context,
	studentID int64,
	input CreateBookingInput,
) (*models.Booking, error) {
	if input.TutorID <= 0 || input.DurationMinutes <= 0 || input.Subject == "" {
		return nil, ErrInvalidInput
	}
	if input.ScheduledAt.Before(time.Now().Add(-1 * time.Minute)) {
		return nil, ErrInvalidInput
	}
	if studentID == input.TutorID {
		return nil, ErrInvalidInput
	}

	tutor, err := s.userRepo.GetByID(ctx, input.TutorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTutorNotFound
		}
		return nil, err
	}
	if tutor.Role != models.RoleTutor {
		return nil, ErrInvalidInput
	}

	tutorProfile, err := s.tutorProfileRepo.GetByUserID(ctx, input.TutorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTutorNotFound
		}
		return nil, err
	}
	if !tutorProfile.OnboardingComplete || tutorProfile.HourlyRate == nil ||
		*tutorProfile.HourlyRate <= 0 {
		return nil, ErrInvalidInput
	}
	if !tutorProfile.TeachesSubject(input.Subject) {
		return nil, ErrInvalidInput
	}

	amount := booking.TotalAmount(*tutorProfile.HourlyRate, input.DurationMinutes)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txBookingRepo := repository.NewBookingRepository(tx)

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", input.TutorID); err != nil {
		return nil, err
	}

	hasConflict, err := txBookingRepo.HasConflict(
		ctx,
		input.TutorID,
		input.ScheduledAt.UTC(),
		input.DurationMinutes,
	)
	if err != nil {
		return nil, err
	}
	if hasConflict {
		return nil, ErrConflict
	}

	created, err := txBookingRepo.Create(ctx, repository.CreateBookingInput{
		StudentID:       studentID,
		TutorID:         input.TutorID,
		Subject:         input.Subject,
		ScheduledAt:     input.ScheduledAt.UTC(),
		DurationMinutes: input.DurationMinutes,
		TotalAmount:     amount,
		SessionNotes:    input.SessionNotes,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.push(created.TutorID, "booking_created", created)
	return created, nil
}

func (s *BookingService) CheckAvailability(
	ctx context.Context,
	tutorID int64,
	requestedTime time.Time,
	durationMins int,
) (bool, error) {
	hasConflict, err := s.bookingRepo.HasConflict(ctx, tutorID, requestedTime.UTC(), durationMins)
	if err != nil {
		return false, err
	}
	return !hasConflict, nil
}

func (s *BookingService) ListBookings(
	ctx context.Context,
	actorID int64,
	role string,
	filter repository.BookingListFilter,
) ([]models.Booking, error) {
	if filter.Status != "" {
		parsed, err := booking.ParseStatus(filter.Status)
		if err != nil {
			return nil, ErrInvalidInput
		}
		filter.Status = string(parsed)
	}
	filter.ActorID = actorID
	filter.Role = role
	return s.bookingRepo.List(ctx, filter)
}

func (s *BookingService) GetBooking(
	ctx context.Context,
	actorID int64,
	role string,
	bookingID int64,
) (*models.BookingDetail, error) {
	detail, err := s.bookingRepo.GetDetailByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !canAccessBooking(role, actorID, &detail.Booking) {
		return nil, ErrForbidden
	}
	return detail, nil
}

// UpdateStatus runs the requested transition through the lifecycle rules and
// applies it with a compare-and-set, so a concurrent transition surfaces as an
// invalid one rather than a silent overwrite.
func (s *BookingService) UpdateStatus(
	ctx context.Context,
	actorID int64,
	role string,
	bookingID int64,
	requestedStatus string,
) (*models.Booking, error) {
	current, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !canAccessBooking(role, actorID, current) {
		return nil, ErrForbidden
	}

	requested, err := booking.ParseStatus(requestedStatus)
	if err != nil {
		return nil, err
	}
	next, err := booking.ValidateTransition(booking.Status(current.Status), requested, role)
	if err != nil {
		return nil, err
	}

	updated, err := s.bookingRepo.UpdateStatusIfCurrent(ctx, bookingID, current.Status, string(next))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, booking.ErrInvalidTransition
		}
		return nil, err
	}

	if next == booking.StatusCompleted && s.awarder != nil {
		if err := s.awarder.AwardBookingCompleted(ctx, updated); err != nil {
			return nil, err
		}
	}

	s.push(counterparty(actorID, updated), "booking_status", updated)
	return updated, nil
}

func (s *BookingService) UpdateNotes(
	ctx context.Context,
	actorID int64,
	role string,
	bookingID int64,
	notes *string,
) (*models.Booking, error) {
	current, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !canAccessBooking(role, actorID, current) {
		return nil, ErrForbidden
	}
	return s.bookingRepo.UpdateNotes(ctx, bookingID, notes)
}

// DeleteBooking removes a still-pending booking. Only the student who made it
// may delete; anything past PENDING must be cancelled through UpdateStatus.
func (s *BookingService) DeleteBooking(
	ctx context.Context,
	actorID int64,
	role string,
	bookingID int64,
) error {
	current, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if role != models.RoleStudent || current.StudentID != actorID {
		return ErrForbidden
	}
	if err := booking.ValidateDeletion(booking.Status(current.Status)); err != nil {
		return err
	}
	return s.bookingRepo.Delete(ctx, bookingID)
}

func (s *BookingService) push(userID int64, eventType string, payload any) {
	if s.notifier == nil {
		return
	}
	s.notifier.Push(userID, eventType, payload)
}

func canAccessBooking(role string, actorID int64, b *models.Booking) bool {
	switch role {
	case models.RoleStudent:
		return b.StudentID == actorID
	case models.RoleTutor:
		return b.TutorID == actorID
	case models.RoleAdmin:
		return true
	default:
		return false
	}
}

func counterparty(actorID int64, b *models.Booking) int64 {
	if actorID == b.StudentID {
		return b.TutorID
	}
	return b.StudentID
}
