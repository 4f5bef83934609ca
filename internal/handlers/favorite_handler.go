package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/camilohimself/projet-gocours/internal/models"
)

type favoriteStore interface {
	Add(ctx context.Context, userID, tutorID int64) error
	Remove(ctx context.Context, userID, tutorID int64) error
	ListTutorIDsByUser(ctx context.Context, userID int64) ([]int64, error)
}

type favoriteTutorLoader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.TutorProfile, error)
}

type FavoriteHandler struct {
	favoriteRepo favoriteStore
	tutorRepo    favoriteTutorLoader
}

func NewFavoriteHandler(favoriteRepo favoriteStore, tutorRepo favoriteTutorLoader) *FavoriteHandler {
	return &FavoriteHandler{favoriteRepo: favoriteRepo, tutorRepo: tutorRepo}
}

func (h *FavoriteHandler) AddFavorite(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleStudent {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	tutorID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || tutorID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tutor id"})
	}

	if err := h.favoriteRepo.Add(c.Context(), userID, tutorID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add favorite"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"favorited": true})
}

func (h *FavoriteHandler) RemoveFavorite(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleStudent {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	tutorID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || tutorID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tutor id"})
	}

	if err := h.favoriteRepo.Remove(c.Context(), userID, tutorID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to remove favorite"})
	}
	return c.JSON(fiber.Map{"favorited": false})
}

func (h *FavoriteHandler) ListFavorites(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleStudent {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	tutorIDs, err := h.favoriteRepo.ListTutorIDsByUser(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch favorites"})
	}

	tutors := make([]models.TutorCardResponse, 0, len(tutorIDs))
	for _, tutorID := range tutorIDs {
		tutor, err := h.tutorRepo.GetByUserID(c.Context(), tutorID)
		if err != nil {
			continue
		}
		tutors = append(tutors, buildTutorCard(*tutor))
	}
	return c.JSON(fiber.Map{"tutors": tutors})
}
