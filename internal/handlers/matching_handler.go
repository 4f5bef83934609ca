package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/camilohimself/projet-gocours/internal/models"
	"github.com/camilohimself/projet-gocours/internal/services"
)

type groupMatcher interface {
	GroupMatching(ctx context.Context, studentUserIDs []int64, subject string) (map[int64]int64, error)
}

type MatchingHandler struct {
	service groupMatcher
}

func NewMatchingHandler(service *services.MatchmakingService) *MatchingHandler {
	return &MatchingHandler{service: service}
}

type groupMatchingRequest struct {
	StudentIDs []int64 `json:"student_ids"`
	Subject    string  `json:"subject"`
}

// GroupMatching pairs a batch of students with distinct tutors. Admin only.
func (h *MatchingHandler) GroupMatching(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	var req groupMatchingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(req.StudentIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "student_ids must contain at least one id"})
	}

	assignments, err := h.service.GroupMatching(c.Context(), req.StudentIDs, req.Subject)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to run group matching"})
	}

	// JSON object keys must be strings.
	response := make(map[string]int64, len(assignments))
	for studentID, tutorID := range assignments {
		response[strconv.FormatInt(studentID, 10)] = tutorID
	}
	return c.JSON(fiber.Map{"assignments": response})
}
