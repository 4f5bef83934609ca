package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/camilohimself/projet-gocours/internal/models"
	"github.com/camilohimself/projet-gocours/internal/repository"
)

// XP awarded per activity.
const (
	XPBookingCompletedStudent = 50
	XPBookingCompletedTutor   = 75
	XPReviewWritten           = 25
)

const (
	levelStepXP = 500
	maxLevel    = 99

	leaderboardKey = "leaderboard:xp"
)

// LevelForXP derives the level from accumulated XP: one level per 500 XP,
// starting at 1 and capped at 99.
func LevelForXP(xp int64) int {
	level := 1 + int(xp/levelStepXP)
	if level > maxLevel {
		return maxLevel
	}
	return level
}

type GamificationService struct {
	xpRepo   *repository.XPRepository
	userRepo userReader
	cache    *redis.Client
}

// NewGamificationService wires the XP ledger and the optional leaderboard
// cache. A nil cache is valid; ranking then falls back to Postgres sums.
func NewGamificationService(
	xpRepo *repository.XPRepository,
	userRepo userReader,
	cache *redis.Client,
) *GamificationService {
	return &GamificationService{
		xpRepo:   xpRepo,
		userRepo: userRepo,
		cache:    cache,
	}
}

func (s *GamificationService) AwardBookingCompleted(ctx context.Context, b *models.Booking) error {
	if err := s.award(ctx, b.StudentID, "booking_completed", XPBookingCompletedStudent); err != nil {
		return err
	}
	return s.award(ctx, b.TutorID, "booking_completed", XPBookingCompletedTutor)
}

func (s *GamificationService) AwardReviewWritten(ctx context.Context, authorID int64) error {
	return s.award(ctx, authorID, "review_written", XPReviewWritten)
}

func (s *GamificationService) award(ctx context.Context, userID int64, kind string, points int) error {
	event := &models.XPEvent{UserID: userID, Kind: kind, Points: points}
	if err := s.xpRepo.InsertEvent(ctx, event); err != nil {
		return err
	}
	if s.cache != nil {
		member := strconv.FormatInt(userID, 10)
		// The ledger is the source of truth; a failed cache write only
		// leaves the ranking stale until the next successful award.
		_ = s.cache.ZIncrBy(ctx, leaderboardKey, float64(points), member).Err()
	}
	return nil
}

func (s *GamificationService) Progress(ctx context.Context, userID int64) (*models.Progress, error) {
	total, err := s.xpRepo.TotalForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	level := LevelForXP(total)
	return &models.Progress{
		UserID:      userID,
		XP:          total,
		Level:       level,
		NextLevelXP: int64(level) * levelStepXP,
	}, nil
}

func (s *GamificationService) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	if s.cache != nil {
		entries, err := s.leaderboardFromCache(ctx, limit)
		if err == nil {
			return entries, nil
		}
	}
	return s.leaderboardFromLedger(ctx, limit)
}

// Rank returns the caller's place on the leaderboard, or nil when the user
// has no XP yet.
func (s *GamificationService) Rank(ctx context.Context, userID int64) (*models.LeaderboardEntry, error) {
	if s.cache != nil {
		member := strconv.FormatInt(userID, 10)
		rank, err := s.cache.ZRevRank(ctx, leaderboardKey, member).Result()
		if err == nil {
			score, err := s.cache.ZScore(ctx, leaderboardKey, member).Result()
			if err != nil {
				return nil, err
			}
			return s.entryFor(ctx, userID, int64(score), rank+1)
		}
		if !errors.Is(err, redis.Nil) {
			return nil, err
		}
		return nil, nil
	}

	entries, err := s.leaderboardFromLedger(ctx, 0)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].UserID == userID {
			return &entries[i], nil
		}
	}
	return nil, nil
}

func (s *GamificationService) leaderboardFromCache(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	members, err := s.cache.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(members))
	for i, member := range members {
		userID, err := strconv.ParseInt(member.Member.(string), 10, 64)
		if err != nil {
			continue
		}
		entry, err := s.entryFor(ctx, userID, int64(member.Score), int64(i)+1)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

func (s *GamificationService) leaderboardFromLedger(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	entries, err := s.xpRepo.TotalsAll(ctx, limit)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Rank = int64(i) + 1
		entries[i].Level = LevelForXP(entries[i].XP)
	}
	return entries, nil
}

func (s *GamificationService) entryFor(ctx context.Context, userID, xp, rank int64) (*models.LeaderboardEntry, error) {
	entry := &models.LeaderboardEntry{
		UserID: userID,
		XP:     xp,
		Level:  LevelForXP(xp),
		Rank:   rank,
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err == nil {
		entry.DisplayName = user.DisplayName
	}
	return entry, nil
}
