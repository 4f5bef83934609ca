package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/camilohimself/projet-gocours/internal/matching"
	"github.com/camilohimself/projet-gocours/internal/models"
	"github.com/camilohimself/projet-gocours/internal/search"
	"github.com/camilohimself/projet-gocours/internal/services"
)

type tutorSearcher interface {
	Search(ctx context.Context, input services.SearchInput) ([]models.TutorProfile, models.PaginationMeta, error)
	Metadata(ctx context.Context) (*services.FilterMetadata, error)
}

type tutorMatchmaker interface {
	RecommendedTutors(ctx context.Context, studentUserID int64, subject string, limit int) ([]matching.RankedTutor, error)
}

type tutorDetailRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*models.TutorProfile, error)
}

type tutorReviewLister interface {
	ListByTutor(ctx context.Context, tutorID int64) ([]models.Review, error)
}

type TutorDiscoveryHandler struct {
	searchService      tutorSearcher
	matchmakingService tutorMatchmaker
	tutorRepo          tutorDetailRepository
	reviewService      tutorReviewLister
}

func NewTutorDiscoveryHandler(
	searchService tutorSearcher,
	matchmakingService tutorMatchmaker,
	tutorRepo tutorDetailRepository,
	reviewService tutorReviewLister,
) *TutorDiscoveryHandler {
	return &TutorDiscoveryHandler{
		searchService:      searchService,
		matchmakingService: matchmakingService,
		tutorRepo:          tutorRepo,
		reviewService:      reviewService,
	}
}

type searchTutorsRequest struct {
	Subjects        []string `json:"subjects"`
	PriceMin        *float64 `json:"price_min"`
	PriceMax        *float64 `json:"price_max"`
	Location        string   `json:"location"`
	TeachingFormats []string `json:"teaching_formats"`
	Languages       []string `json:"languages"`
	MinRating       float64  `json:"min_rating"`
	MinExperience   int      `json:"min_experience"`
	VerifiedOnly    bool     `json:"verified_only"`
	Query           string   `json:"query"`
	SortBy          string   `json:"sort_by"`
	SortOrder       string   `json:"sort_order"`
	Page            int      `json:"page"`
	Limit           int      `json:"limit"`
}

// ListTutors serves the simple query-parameter search used by the listing
// page. The richer POST search accepts the full criteria set.
func (h *TutorDiscoveryHandler) ListTutors(c *fiber.Ctx) error {
	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	minRating, err := parseNonNegativeFloat(c.Query("min_rating"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "min_rating must be a valid non-negative number"})
	}
	minExperience, err := parseNonNegativeInt(c.Query("min_experience"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "min_experience must be a valid non-negative integer"})
	}

	criteria := search.Criteria{
		Location:      strings.TrimSpace(c.Query("location")),
		MinRating:     minRating,
		MinExperience: minExperience,
		VerifiedOnly:  c.QueryBool("verified_only"),
		Query:         strings.TrimSpace(c.Query("q")),
	}
	if subject := strings.TrimSpace(c.Query("subject")); subject != "" {
		criteria.Subjects = []string{subject}
	}
	if rawMax := c.Query("max_price"); rawMax != "" {
		maxPrice, err := parseNonNegativeFloat(rawMax)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "max_price must be a valid non-negative number"})
		}
		criteria.PriceMax = &maxPrice
	}

	sortKey := search.ParseSortKey(c.Query("sort_by"))
	tutors, meta, err := h.searchService.Search(c.Context(), services.SearchInput{
		Criteria:  criteria,
		SortKey:   sortKey,
		SortOrder: search.ParseSortOrder(c.Query("sort_order"), sortKey),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch tutors"})
	}

	return c.JSON(fiber.Map{
		"tutors":     buildTutorCards(tutors),
		"pagination": meta,
	})
}

// SearchTutors accepts the full criteria set as a JSON body.
func (h *TutorDiscoveryHandler) SearchTutors(c *fiber.Ctx) error {
	var req searchTutorsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.MinRating < 0 || req.MinExperience < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "min_rating and min_experience must be non-negative"})
	}
	if req.PriceMin != nil && req.PriceMax != nil && *req.PriceMin > *req.PriceMax {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "price_min must not exceed price_max"})
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	sortKey := search.ParseSortKey(req.SortBy)
	tutors, meta, err := h.searchService.Search(c.Context(), services.SearchInput{
		Criteria: search.Criteria{
			Subjects:        req.Subjects,
			PriceMin:        req.PriceMin,
			PriceMax:        req.PriceMax,
			Location:        strings.TrimSpace(req.Location),
			TeachingFormats: req.TeachingFormats,
			Languages:       req.Languages,
			MinRating:       req.MinRating,
			MinExperience:   req.MinExperience,
			VerifiedOnly:    req.VerifiedOnly,
			Query:           strings.TrimSpace(req.Query),
		},
		SortKey:   sortKey,
		SortOrder: search.ParseSortOrder(req.SortOrder, sortKey),
		Page:      req.Page,
		Limit:     limit,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to search tutors"})
	}

	return c.JSON(fiber.Map{
		"tutors":     buildTutorCards(tutors),
		"pagination": meta,
	})
}

func (h *TutorDiscoveryHandler) GetSearchMetadata(c *fiber.Ctx) error {
	metadata, err := h.searchService.Metadata(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch filter metadata"})
	}
	return c.JSON(metadata)
}

func (h *TutorDiscoveryHandler) GetRecommendedTutors(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleStudent {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	limit := parsePositiveInt(c.Query("limit"), matching.DefaultTopN)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	ranked, err := h.matchmakingService.RecommendedTutors(c.Context(), userID, strings.TrimSpace(c.Query("subject")), limit)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch recommended tutors"})
	}

	response := make([]models.TutorCardResponse, 0, len(ranked))
	for _, match := range ranked {
		card := buildTutorCard(match.Tutor)
		card.MatchScore = match.Score.Overall
		card.MatchReasons = match.Score.Reasoning
		response = append(response, card)
	}

	return c.JSON(fiber.Map{"tutors": response})
}

func (h *TutorDiscoveryHandler) GetTutorDetail(c *fiber.Ctx) error {
	tutorID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || tutorID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tutor id"})
	}

	tutor, err := h.tutorRepo.GetByUserID(c.Context(), tutorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch tutor"})
	}

	reviews, err := h.reviewService.ListByTutor(c.Context(), tutorID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch tutor reviews"})
	}

	return c.JSON(fiber.Map{
		"tutor": buildTutorDetail(*tutor, reviews),
	})
}

func buildTutorCards(tutors []models.TutorProfile) []models.TutorCardResponse {
	response := make([]models.TutorCardResponse, 0, len(tutors))
	for _, tutor := range tutors {
		response = append(response, buildTutorCard(tutor))
	}
	return response
}

func buildTutorCard(tutor models.TutorProfile) models.TutorCardResponse {
	subjects := make([]string, 0, len(tutor.Subjects))
	for _, subject := range tutor.Subjects {
		subjects = append(subjects, subject.Name)
	}
	return models.TutorCardResponse{
		ID:              strconv.FormatInt(tutor.UserID, 10),
		DisplayName:     stringValue(tutor.DisplayName),
		PhotoURL:        stringValue(tutor.PhotoURL),
		Headline:        stringValue(tutor.Headline),
		Subjects:        subjects,
		Languages:       stringSliceValue(tutor.Languages),
		HourlyRate:      floatValueResponse(tutor.HourlyRate),
		LocationCity:    stringValue(tutor.LocationCity),
		ExperienceYears: intValueResponse(tutor.ExperienceYears),
		IsVerified:      boolValue(tutor.IsVerified),
		AverageRating:   floatValueResponse(tutor.AverageRating),
		ReviewCount:     tutor.ReviewCount,
	}
}

func buildTutorDetail(tutor models.TutorProfile, reviews []models.Review) models.TutorDetailResponse {
	if reviews == nil {
		reviews = []models.Review{}
	}
	availability := tutor.Availability
	if availability == nil {
		availability = []models.AvailabilitySlot{}
	}
	return models.TutorDetailResponse{
		TutorCardResponse: buildTutorCard(tutor),
		Bio:               stringValue(tutor.Bio),
		TeachingFormats:   stringSliceValue(tutor.TeachingFormats),
		Qualifications:    stringSliceValue(tutor.Qualifications),
		Availability:      availability,
		Reviews:           reviews,
	}
}

func parsePositiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func parseNonNegativeInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, errInvalidNumber
	}
	return value, nil
}

func parseNonNegativeFloat(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		return 0, errInvalidNumber
	}
	return value, nil
}

var errInvalidNumber = errors.New("invalid number")

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func stringSliceValue(value *[]string) []string {
	if value == nil {
		return []string{}
	}
	return *value
}

func floatValueResponse(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}

func intValueResponse(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}

func boolValue(value *bool) bool {
	if value == nil {
		return false
	}
	return *value
}
