package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/camilohimself/projet-gocours/internal/models"
	"github.com/camilohimself/projet-gocours/internal/services"
)

type gamificationApplicationService interface {
	Progress(ctx context.Context, userID int64) (*models.Progress, error)
	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	Rank(ctx context.Context, userID int64) (*models.LeaderboardEntry, error)
}

type GamificationHandler struct {
	service gamificationApplicationService
}

func NewGamificationHandler(service *services.GamificationService) *GamificationHandler {
	return &GamificationHandler{service: service}
}

func (h *GamificationHandler) GetProgress(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	progress, err := h.service.Progress(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch progress"})
	}
	return c.JSON(fiber.Map{"progress": progress})
}

func (h *GamificationHandler) GetLeaderboard(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	limit := parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	entries, err := h.service.Leaderboard(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch leaderboard"})
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}

	rank, err := h.service.Rank(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch rank"})
	}

	return c.JSON(fiber.Map{
		"leaderboard": entries,
		"me":          rank,
	})
}
