package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/camilohimself/projet-gocours/internal/matching"
	"github.com/camilohimself/projet-gocours/internal/models"
	"github.com/camilohimself/projet-gocours/internal/services"
)

type stubSearcher struct {
	lastInput services.SearchInput
	tutors    []models.TutorProfile
	meta      models.PaginationMeta
	metadata  *services.FilterMetadata
}

func (s *stubSearcher) Search(_ context.Context, input services.SearchInput) ([]models.TutorProfile, models.PaginationMeta, error) {
	s.lastInput = input
	return s.tutors, s.meta, nil
}

func (s *stubSearcher) Metadata(_ context.Context) (*services.FilterMetadata, error) {
	return s.metadata, nil
}

type stubMatchmaker struct {
	lastStudentID int64
	lastSubject   string
	lastLimit     int
	ranked        []matching.RankedTutor
	err           error
}

func (s *stubMatchmaker) RecommendedTutors(_ context.Context, studentUserID int64, subject string, limit int) ([]matching.RankedTutor, error) {
	s.lastStudentID = studentUserID
	s.lastSubject = subject
	s.lastLimit = limit
	return s.ranked, s.err
}

type stubTutorDetailRepo struct {
	profile *models.TutorProfile
	err     error
}

func (s *stubTutorDetailRepo) GetByUserID(_ context.Context, _ int64) (*models.TutorProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.profile, nil
}

type stubReviewLister struct {
	reviews []models.Review
}

func (s *stubReviewLister) ListByTutor(_ context.Context, _ int64) ([]models.Review, error) {
	return s.reviews, nil
}

func discoveryTestProfile(userID int64, name, subject string) models.TutorProfile {
	rate := 50.0
	return models.TutorProfile{
		ID:          userID,
		UserID:      userID,
		DisplayName: &name,
		HourlyRate:  &rate,
		Subjects:    []models.Subject{{ID: userID, Name: subject}},
	}
}

func newDiscoveryTestApp(handler *TutorDiscoveryHandler, role, userID string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", role)
		c.Locals("user_id", userID)
		return c.Next()
	})
	app.Get("/api/v1/tutors", handler.ListTutors)
	app.Post("/api/v1/tutors/search", handler.SearchTutors)
	app.Get("/api/v1/tutors/recommended", handler.GetRecommendedTutors)
	app.Get("/api/v1/tutors/:id", handler.GetTutorDetail)
	return app
}

func TestListTutorsForwardsQueryFilters(t *testing.T) {
	searcher := &stubSearcher{tutors: []models.TutorProfile{discoveryTestProfile(7, "Lina", "Mathematics")}}
	handler := NewTutorDiscoveryHandler(searcher, &stubMatchmaker{}, &stubTutorDetailRepo{}, &stubReviewLister{})
	app := newDiscoveryTestApp(handler, "student", "1")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tutors?subject=Mathematics&max_price=60&min_rating=4&verified_only=true&sort_by=price&sort_order=asc", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	criteria := searcher.lastInput.Criteria
	if len(criteria.Subjects) != 1 || criteria.Subjects[0] != "Mathematics" {
		t.Fatalf("expected subject filter, got %+v", criteria.Subjects)
	}
	if criteria.PriceMax == nil || *criteria.PriceMax != 60 {
		t.Fatalf("expected price max 60, got %+v", criteria.PriceMax)
	}
	if criteria.MinRating != 4 {
		t.Fatalf("expected min rating 4, got %v", criteria.MinRating)
	}
	if !criteria.VerifiedOnly {
		t.Fatal("expected verified_only filter")
	}
}

func TestListTutorsRejectsMalformedPrice(t *testing.T) {
	handler := NewTutorDiscoveryHandler(&stubSearcher{}, &stubMatchmaker{}, &stubTutorDetailRepo{}, &stubReviewLister{})
	app := newDiscoveryTestApp(handler, "student", "1")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tutors?max_price=cheap", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestSearchTutorsRejectsInvertedPriceRange(t *testing.T) {
	handler := NewTutorDiscoveryHandler(&stubSearcher{}, &stubMatchmaker{}, &stubTutorDetailRepo{}, &stubReviewLister{})
	app := newDiscoveryTestApp(handler, "student", "1")

	body := `{"price_min":80,"price_max":40}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tutors/search", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetRecommendedTutorsAttachesMatchScores(t *testing.T) {
	matchmaker := &stubMatchmaker{
		ranked: []matching.RankedTutor{
			{
				Tutor: discoveryTestProfile(9, "Marc", "Physics"),
				Score: matching.MatchScore{Overall: 87, Reasoning: []string{"Deep Physics expertise"}},
			},
		},
	}
	handler := NewTutorDiscoveryHandler(&stubSearcher{}, matchmaker, &stubTutorDetailRepo{}, &stubReviewLister{})
	app := newDiscoveryTestApp(handler, "student", "42")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tutors/recommended?subject=Physics&limit=3", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if matchmaker.lastStudentID != 42 {
		t.Fatalf("expected student 42, got %d", matchmaker.lastStudentID)
	}
	if matchmaker.lastSubject != "Physics" || matchmaker.lastLimit != 3 {
		t.Fatalf("expected subject/limit to be forwarded, got %q/%d", matchmaker.lastSubject, matchmaker.lastLimit)
	}

	var payload struct {
		Tutors []models.TutorCardResponse `json:"tutors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Tutors) != 1 {
		t.Fatalf("expected 1 tutor, got %d", len(payload.Tutors))
	}
	if payload.Tutors[0].MatchScore != 87 {
		t.Fatalf("expected match score 87, got %d", payload.Tutors[0].MatchScore)
	}
	if len(payload.Tutors[0].MatchReasons) != 1 {
		t.Fatalf("expected one match reason, got %+v", payload.Tutors[0].MatchReasons)
	}
}

func TestGetRecommendedTutorsRejectsTutors(t *testing.T) {
	handler := NewTutorDiscoveryHandler(&stubSearcher{}, &stubMatchmaker{}, &stubTutorDetailRepo{}, &stubReviewLister{})
	app := newDiscoveryTestApp(handler, "tutor", "9")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tutors/recommended", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestGetRecommendedTutorsMissingProfileIs404(t *testing.T) {
	matchmaker := &stubMatchmaker{err: services.ErrInvalidInput}
	handler := NewTutorDiscoveryHandler(&stubSearcher{}, matchmaker, &stubTutorDetailRepo{}, &stubReviewLister{})
	app := newDiscoveryTestApp(handler, "student", "42")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tutors/recommended", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestGetTutorDetailNotFound(t *testing.T) {
	handler := NewTutorDiscoveryHandler(&stubSearcher{}, &stubMatchmaker{}, &stubTutorDetailRepo{err: pgx.ErrNoRows}, &stubReviewLister{})
	app := newDiscoveryTestApp(handler, "student", "1")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tutors/999", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestGetTutorDetailIncludesReviewsAndAvailability(t *testing.T) {
	profile := discoveryTestProfile(5, "Ana", "Chemistry")
	profile.Availability = []models.AvailabilitySlot{{ID: 1, TutorID: 5, DayOfWeek: "monday", TimeSlot: "18:00-20:00", IsActive: true}}
	reviews := &stubReviewLister{reviews: []models.Review{{ID: 3, TutorID: 5, AuthorID: 2, Rating: 5}}}
	handler := NewTutorDiscoveryHandler(&stubSearcher{}, &stubMatchmaker{}, &stubTutorDetailRepo{profile: &profile}, reviews)
	app := newDiscoveryTestApp(handler, "student", "1")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tutors/5", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload struct {
		Tutor models.TutorDetailResponse `json:"tutor"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Tutor.ID != "5" {
		t.Fatalf("expected tutor id 5, got %q", payload.Tutor.ID)
	}
	if len(payload.Tutor.Reviews) != 1 {
		t.Fatalf("expected 1 review, got %d", len(payload.Tutor.Reviews))
	}
	if len(payload.Tutor.Availability) != 1 {
		t.Fatalf("expected 1 availability slot, got %d", len(payload.Tutor.Availability))
	}
}
