package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/camilohimself/projet-gocours/internal/booking"
	"github.com/camilohimself/projet-gocours/internal/models"
	"github.com/camilohimself/projet-gocours/internal/repository"
)

var (
	testDBOnce sync.Once
	testDBPool *pgxpool.Pool
	testDBErr  error
)

func TestBookingServiceCreateAndConfirmFlow(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	service := newIntegrationBookingService(pool)

	studentID := createTestAccount(t, ctx, pool, models.RoleStudent, 0)
	tutorID := createTestAccount(t, ctx, pool, models.RoleTutor, 120)
	t.Cleanup(func() { cleanupTestUsers(t, ctx, pool, studentID, tutorID) })

	scheduledAt := time.Date(2030, 3, 15, 9, 0, 0, 0, time.UTC)
	created, err := service.CreateBooking(ctx, studentID, CreateBookingInput{
		TutorID:         tutorID,
		Subject:         "Mathematics",
		ScheduledAt:     scheduledAt,
		DurationMinutes: 90,
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if created.Status != string(booking.StatusPending) {
		t.Fatalf("expected pending booking, got %q", created.Status)
	}
	if created.TotalAmount != 180 {
		t.Fatalf("expected amount 180, got %.2f", created.TotalAmount)
	}

	confirmed, err := service.UpdateStatus(ctx, tutorID, models.RoleTutor, created.ID, "confirm")
	if err != nil {
		t.Fatalf("UpdateStatus confirm: %v", err)
	}
	if confirmed.Status != string(booking.StatusConfirmed) {
		t.Fatalf("expected confirmed booking, got %q", confirmed.Status)
	}

	if _, err := service.UpdateStatus(ctx, studentID, models.RoleStudent, created.ID, "confirm"); err != booking.ErrForbidden {
		t.Fatalf("expected ErrForbidden for student confirm, got %v", err)
	}
}

func TestBookingServiceRejectsOverlappingBookings(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	service := newIntegrationBookingService(pool)

	firstStudentID := createTestAccount(t, ctx, pool, models.RoleStudent, 0)
	secondStudentID := createTestAccount(t, ctx, pool, models.RoleStudent, 0)
	tutorID := createTestAccount(t, ctx, pool, models.RoleTutor, 80)
	t.Cleanup(func() { cleanupTestUsers(t, ctx, pool, firstStudentID, secondStudentID, tutorID) })

	scheduledAt := time.Date(2030, 4, 1, 12, 0, 0, 0, time.UTC)
	if _, err := service.CreateBooking(ctx, firstStudentID, CreateBookingInput{
		TutorID:         tutorID,
		Subject:         "Mathematics",
		ScheduledAt:     scheduledAt,
		DurationMinutes: 60,
	}); err != nil {
		t.Fatalf("first CreateBooking: %v", err)
	}

	_, err := service.CreateBooking(ctx, secondStudentID, CreateBookingInput{
		TutorID:         tutorID,
		Subject:         "Mathematics",
		ScheduledAt:     scheduledAt.Add(30 * time.Minute),
		DurationMinutes: 45,
	})
	if err != ErrConflict {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestBookingServiceListsBookingsForBothSides(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	service := newIntegrationBookingService(pool)

	studentID := createTestAccount(t, ctx, pool, models.RoleStudent, 0)
	tutorID := createTestAccount(t, ctx, pool, models.RoleTutor, 95)
	t.Cleanup(func() { cleanupTestUsers(t, ctx, pool, studentID, tutorID) })

	upcoming := time.Date(2030, 5, 10, 8, 0, 0, 0, time.UTC)
	booked, err := service.CreateBooking(ctx, studentID, CreateBookingInput{
		TutorID:         tutorID,
		Subject:         "Mathematics",
		ScheduledAt:     upcoming,
		DurationMinutes: 60,
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	studentBookings, err := service.ListBookings(ctx, studentID, models.RoleStudent, repository.BookingListFilter{
		Status:    "pending",
		Timeframe: "upcoming",
	})
	if err != nil {
		t.Fatalf("ListBookings student: %v", err)
	}
	if len(studentBookings) != 1 || studentBookings[0].ID != booked.ID {
		t.Fatalf("expected student to see booking %d, got %+v", booked.ID, studentBookings)
	}

	tutorBookings, err := service.ListBookings(ctx, tutorID, models.RoleTutor, repository.BookingListFilter{
		Timeframe: "upcoming",
	})
	if err != nil {
		t.Fatalf("ListBookings tutor: %v", err)
	}
	if len(tutorBookings) != 1 || tutorBookings[0].ID != booked.ID {
		t.Fatalf("expected tutor to see booking %d, got %+v", booked.ID, tutorBookings)
	}
}

func TestBookingServiceDeletionOnlyWhilePending(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	service := newIntegrationBookingService(pool)

	studentID := createTestAccount(t, ctx, pool, models.RoleStudent, 0)
	tutorID := createTestAccount(t, ctx, pool, models.RoleTutor, 60)
	t.Cleanup(func() { cleanupTestUsers(t, ctx, pool, studentID, tutorID) })

	booked, err := service.CreateBooking(ctx, studentID, CreateBookingInput{
		TutorID:         tutorID,
		Subject:         "Mathematics",
		ScheduledAt:     time.Date(2030, 6, 1, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if err := service.DeleteBooking(ctx, tutorID, models.RoleTutor, booked.ID); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for tutor deletion, got %v", err)
	}

	if _, err := service.UpdateStatus(ctx, tutorID, models.RoleTutor, booked.ID, "confirmed"); err != nil {
		t.Fatalf("UpdateStatus confirm: %v", err)
	}
	if err := service.DeleteBooking(ctx, studentID, models.RoleStudent, booked.ID); err != booking.ErrConflict {
		t.Fatalf("expected ErrConflict deleting confirmed booking, got %v", err)
	}
}

func integrationTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	testDBOnce.Do(func() {
		_ = godotenv.Load(".env")
		_ = godotenv.Load(filepath.Join("..", "..", ".env"))

		dbURL := os.Getenv("DB_URL")
		if dbURL == "" {
			testDBErr = fmt.Errorf("DB_URL is not set")
			return
		}

		cfg, err := pgxpool.ParseConfig(dbURL)
		if err != nil {
			testDBErr = err
			return
		}

		testDBPool, testDBErr = pgxpool.NewWithConfig(context.Background(), cfg)
		if testDBErr != nil {
			return
		}
		testDBErr = testDBPool.Ping(context.Background())
	})

	if testDBErr != nil {
		t.Skipf("skipping integration test: %v", testDBErr)
	}
	return testDBPool
}

func newIntegrationBookingService(pool *pgxpool.Pool) *BookingService {
	return NewBookingService(
		pool,
		repository.NewBookingRepository(pool),
		repository.NewUserRepository(pool),
		repository.NewTutorProfileRepository(pool),
		nil,
		nil,
	)
}

func createTestAccount(t *testing.T, ctx context.Context, pool *pgxpool.Pool, role string, hourlyRate float64) int64 {
	t.Helper()

	userRepo := repository.NewUserRepository(pool)
	user := &models.User{
		Email:        fmt.Sprintf("booking-test-%s-%d@example.com", role, time.Now().UnixNano()),
		PasswordHash: "test-hash",
		Role:         role,
	}
	if err := userRepo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser(%s): %v", role, err)
	}

	if role == models.RoleStudent {
		studentProfileRepo := repository.NewStudentProfileRepository(pool)
		if err := studentProfileRepo.CreateEmpty(ctx, user.ID); err != nil {
			t.Fatalf("CreateEmpty student profile: %v", err)
		}
		return user.ID
	}

	tutorProfileRepo := repository.NewTutorProfileRepository(pool)
	if err := tutorProfileRepo.CreateEmpty(ctx, user.ID); err != nil {
		t.Fatalf("CreateEmpty tutor profile: %v", err)
	}
	if _, err := tutorProfileRepo.UpdateOnboarding(ctx, user.ID, repository.TutorOnboardingInput{
		Headline:        "Test Tutor",
		Bio:             "Test Bio",
		Subjects:        []string{"Mathematics"},
		Languages:       []string{"French"},
		HourlyRate:      hourlyRate,
		TeachingFormats: []string{"online"},
		ExperienceYears: 1,
	}); err != nil {
		t.Fatalf("UpdateOnboarding tutor profile: %v", err)
	}

	return user.ID
}

func cleanupTestUsers(t *testing.T, ctx context.Context, pool *pgxpool.Pool, userIDs ...int64) {
	t.Helper()

	if len(userIDs) == 0 {
		return
	}

	if _, err := pool.Exec(ctx, "DELETE FROM xp_events WHERE user_id = ANY($1)", userIDs); err != nil {
		t.Fatalf("cleanup xp events: %v", err)
	}
	if _, err := pool.Exec(ctx, "DELETE FROM reviews WHERE author_id = ANY($1) OR tutor_id = ANY($1)", userIDs); err != nil {
		t.Fatalf("cleanup reviews: %v", err)
	}
	if _, err := pool.Exec(ctx, "DELETE FROM bookings WHERE student_id = ANY($1) OR tutor_id = ANY($1)", userIDs); err != nil {
		t.Fatalf("cleanup bookings: %v", err)
	}
	if _, err := pool.Exec(ctx, "DELETE FROM users WHERE id = ANY($1)", userIDs); err != nil {
		t.Fatalf("cleanup users: %v", err)
	}
}
