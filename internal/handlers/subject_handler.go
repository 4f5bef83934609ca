package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/camilohimself/projet-gocours/internal/models"
)

type subjectStore interface {
	ListAll(ctx context.Context) ([]models.Subject, error)
	ListWithTutorCounts(ctx context.Context) ([]models.SubjectCount, error)
}

type SubjectHandler struct {
	subjectRepo subjectStore
}

func NewSubjectHandler(subjectRepo subjectStore) *SubjectHandler {
	return &SubjectHandler{subjectRepo: subjectRepo}
}

func (h *SubjectHandler) ListSubjects(c *fiber.Ctx) error {
	if c.QueryBool("with_counts") {
		counts, err := h.subjectRepo.ListWithTutorCounts(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch subjects"})
		}
		if counts == nil {
			counts = []models.SubjectCount{}
		}
		return c.JSON(fiber.Map{"subjects": counts})
	}

	subjects, err := h.subjectRepo.ListAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch subjects"})
	}
	if subjects == nil {
		subjects = []models.Subject{}
	}
	return c.JSON(fiber.Map{"subjects": subjects})
}
