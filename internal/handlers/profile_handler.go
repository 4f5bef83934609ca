package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/camilohimself/projet-gocours/internal/models"
	"github.com/camilohimself/projet-gocours/internal/repository"
	"github.com/camilohimself/projet-gocours/internal/services"
)

type ProfileHandler struct {
	profileService     *services.ProfileService
	studentProfileRepo studentProfileStore
	tutorProfileRepo   tutorProfileStore
}

type studentProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error)
}

type tutorProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.TutorProfile, error)
	ReplaceAvailability(ctx context.Context, userID int64, slots []models.AvailabilitySlot) error
}

func NewProfileHandler(
	profileService *services.ProfileService,
	studentProfileRepo studentProfileStore,
	tutorProfileRepo tutorProfileStore,
) *ProfileHandler {
	return &ProfileHandler{
		profileService:     profileService,
		studentProfileRepo: studentProfileRepo,
		tutorProfileRepo:   tutorProfileRepo,
	}
}

type updateStudentProfileRequest struct {
	LearningGoals      *string   `json:"learning_goals"`
	Budget             *float64  `json:"budget"`
	PreferredSubjects  *[]string `json:"preferred_subjects"`
	LearningPreference *string   `json:"learning_preference"`
	LearningPace       *string   `json:"learning_pace"`
	InteractionLevel   *string   `json:"interaction_level"`
}

type updateTutorProfileRequest struct {
	Headline          *string   `json:"headline"`
	Bio               *string   `json:"bio"`
	Subjects          *[]string `json:"subjects"`
	Languages         *[]string `json:"languages"`
	HourlyRate        *float64  `json:"hourly_rate"`
	TeachingFormats   *[]string `json:"teaching_formats"`
	LocationCity      *string   `json:"location_city"`
	ExperienceYears   *int      `json:"experience_years"`
	Qualifications    *[]string `json:"qualifications"`
	TeachingApproach  *string   `json:"teaching_approach"`
	TeachingPace      *string   `json:"teaching_pace"`
	TeachingStructure *string   `json:"teaching_structure"`
}

type availabilitySlotRequest struct {
	DayOfWeek string `json:"day_of_week"`
	TimeSlot  string `json:"time_slot"`
	IsActive  *bool  `json:"is_active"`
}

func (h *ProfileHandler) UpdateStudentProfile(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleStudent {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateStudentProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateStudentProfileUpdateRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	profile, err := h.profileService.UpdateStudentProfile(c.Context(), userID, repository.UpdateStudentProfileInput{
		LearningGoals:      req.LearningGoals,
		Budget:             req.Budget,
		PreferredSubjects:  req.PreferredSubjects,
		LearningPreference: req.LearningPreference,
		LearningPace:       req.LearningPace,
		InteractionLevel:   req.InteractionLevel,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{
		"profile":             profile,
		"onboarding_complete": profile.OnboardingComplete,
	})
}

func (h *ProfileHandler) UpdateTutorProfile(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleTutor {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateTutorProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateTutorProfileUpdateRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	profile, err := h.profileService.UpdateTutorProfile(c.Context(), userID, repository.UpdateTutorProfileInput{
		Headline:          req.Headline,
		Bio:               req.Bio,
		Subjects:          req.Subjects,
		Languages:         req.Languages,
		HourlyRate:        req.HourlyRate,
		TeachingFormats:   req.TeachingFormats,
		LocationCity:      req.LocationCity,
		ExperienceYears:   req.ExperienceYears,
		Qualifications:    req.Qualifications,
		TeachingApproach:  req.TeachingApproach,
		TeachingPace:      req.TeachingPace,
		TeachingStructure: req.TeachingStructure,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{
		"profile":             profile,
		"onboarding_complete": profile.OnboardingComplete,
	})
}

func (h *ProfileHandler) GetStudentProfile(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleStudent {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	profile, err := h.studentProfileRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}

	return c.JSON(fiber.Map{
		"profile":             profile,
		"onboarding_complete": profile.OnboardingComplete,
	})
}

func (h *ProfileHandler) GetTutorProfile(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleTutor {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	profile, err := h.tutorProfileRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}

	return c.JSON(fiber.Map{
		"profile":             profile,
		"onboarding_complete": profile.OnboardingComplete,
	})
}

var allowedDaysOfWeek = map[string]struct{}{
	"monday": {}, "tuesday": {}, "wednesday": {}, "thursday": {},
	"friday": {}, "saturday": {}, "sunday": {},
}

// UpdateAvailability replaces the tutor's weekly availability slots.
func (h *ProfileHandler) UpdateAvailability(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleTutor {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req struct {
		Slots []availabilitySlotRequest `json:"slots"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	slots := make([]models.AvailabilitySlot, 0, len(req.Slots))
	for _, slot := range req.Slots {
		day := strings.ToLower(strings.TrimSpace(slot.DayOfWeek))
		if _, ok := allowedDaysOfWeek[day]; !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "day_of_week must be a weekday name"})
		}
		if strings.TrimSpace(slot.TimeSlot) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "time_slot is required"})
		}
		active := true
		if slot.IsActive != nil {
			active = *slot.IsActive
		}
		slots = append(slots, models.AvailabilitySlot{
			DayOfWeek: day,
			TimeSlot:  strings.TrimSpace(slot.TimeSlot),
			IsActive:  active,
		})
	}

	if err := h.tutorProfileRepo.ReplaceAvailability(c.Context(), userID, slots); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update availability"})
	}

	profile, err := h.tutorProfileRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}
	return c.JSON(fiber.Map{"profile": profile})
}
