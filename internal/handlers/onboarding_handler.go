package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/camilohimself/projet-gocours/internal/models"
	"github.com/camilohimself/projet-gocours/internal/repository"
)

type studentOnboardingProfileStore interface {
	UpdateOnboarding(ctx context.Context, userID int64, req repository.StudentOnboardingInput) (*models.StudentProfile, error)
}

type tutorOnboardingProfileStore interface {
	UpdateOnboarding(ctx context.Context, userID int64, req repository.TutorOnboardingInput) (*models.TutorProfile, error)
}

type OnboardingHandler struct {
	studentProfileRepo studentOnboardingProfileStore
	tutorProfileRepo   tutorOnboardingProfileStore
}

func NewOnboardingHandler(studentProfileRepo studentOnboardingProfileStore, tutorProfileRepo tutorOnboardingProfileStore) *OnboardingHandler {
	return &OnboardingHandler{
		studentProfileRepo: studentProfileRepo,
		tutorProfileRepo:   tutorProfileRepo,
	}
}

type studentOnboardingRequest struct {
	LearningGoals      string   `json:"learning_goals"`
	Budget             *float64 `json:"budget"`
	PreferredSubjects  []string `json:"preferred_subjects"`
	LearningPreference *string  `json:"learning_preference"`
	LearningPace       *string  `json:"learning_pace"`
	InteractionLevel   *string  `json:"interaction_level"`
}

type tutorOnboardingRequest struct {
	Headline          string   `json:"headline"`
	Bio               string   `json:"bio"`
	Subjects          []string `json:"subjects"`
	Languages         []string `json:"languages"`
	HourlyRate        float64  `json:"hourly_rate"`
	TeachingFormats   []string `json:"teaching_formats"`
	LocationCity      *string  `json:"location_city"`
	ExperienceYears   int      `json:"experience_years"`
	Qualifications    []string `json:"qualifications"`
	TeachingApproach  *string  `json:"teaching_approach"`
	TeachingPace      *string  `json:"teaching_pace"`
	TeachingStructure *string  `json:"teaching_structure"`
}

func (h *OnboardingHandler) StudentOnboarding(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleStudent {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req studentOnboardingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateStudentOnboardingRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	profile, err := h.studentProfileRepo.UpdateOnboarding(c.Context(), userID, repository.StudentOnboardingInput{
		LearningGoals:      req.LearningGoals,
		Budget:             req.Budget,
		PreferredSubjects:  req.PreferredSubjects,
		LearningPreference: req.LearningPreference,
		LearningPace:       req.LearningPace,
		InteractionLevel:   req.InteractionLevel,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{
		"profile":             profile,
		"onboarding_complete": profile.OnboardingComplete,
	})
}

func (h *OnboardingHandler) TutorOnboarding(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleTutor {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req tutorOnboardingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateTutorOnboardingRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	profile, err := h.tutorProfileRepo.UpdateOnboarding(c.Context(), userID, repository.TutorOnboardingInput{
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
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{
		"profile":             profile,
		"onboarding_complete": profile.OnboardingComplete,
	})
}

func parseUserID(c *fiber.Ctx) (int64, error) {
	userIDValue := c.Locals("user_id")
	userIDStr, ok := userIDValue.(string)
	if !ok {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(userIDStr, 10, 64)
}
