// services/leaderboard_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sort"
	"time"

	"github.com/aidanleach15-hash/shining-stars-sub000/models"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	leaderboardSize     = 50
	leaderboardCacheKey = "leaderboard:top"
	leaderboardCacheTTL = 30 * time.Second
)

// LeaderboardEntry is one ranked row. Accuracy is correct/total,
// defined as 0 for users with no predictions yet.
type LeaderboardEntry struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Pucks       int64     `json:"pucks"`
	Correct     int64     `json:"correct_predictions"`
	Total       int64     `json:"total_predictions"`
	Accuracy    float64   `json:"accuracy"`
	JoinedAt    time.Time `json:"-"`
}

type LeaderboardService struct {
	DB    *gorm.DB
	Cache *redis.Client // nil when REDIS_URL is not configured
}

func NewLeaderboardService(db *gorm.DB, cache *redis.Client) *LeaderboardService {
	return &LeaderboardService{DB: db, Cache: cache}
}

// Accuracy guards the zero-prediction division.
func Accuracy(correct, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// SortEntries orders rows by pucks descending, then accuracy
// descending, then earliest account. Deterministic so two renders of
// the same data agree.
func SortEntries(entries []LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Pucks != entries[j].Pucks {
			return entries[i].Pucks > entries[j].Pucks
		}
		if entries[i].Accuracy != entries[j].Accuracy {
			return entries[i].Accuracy > entries[j].Accuracy
		}
		return entries[i].JoinedAt.Before(entries[j].JoinedAt)
	})
}

// Top returns the top-N snapshot, from the cache when one is
// configured and warm. Cache problems fall through to the database
// silently — the leaderboard never fails because redis is down.
func (s *LeaderboardService) Top(ctx context.Context) ([]LeaderboardEntry, error) {
	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, leaderboardCacheKey).Result(); err == nil {
			var cached []LeaderboardEntry
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return cached, nil
			}
		}
	}

	entries, err := s.topFromDB()
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(entries); err == nil {
			if err := s.Cache.Set(ctx, leaderboardCacheKey, raw, leaderboardCacheTTL).Err(); err != nil {
				log.Printf("[Leaderboard] cache write failed: %v", err)
			}
		}
	}
	return entries, nil
}

func (s *LeaderboardService) topFromDB() ([]LeaderboardEntry, error) {
	var rows []struct {
		UserID             string
		DisplayName        string
		Pucks              int64
		CorrectPredictions int64
		TotalPredictions   int64
		UserCreatedAt      time.Time
	}
	err := s.DB.Table("user_stats").
		Select("user_stats.user_id, users.display_name, user_stats.pucks, "+
			"user_stats.correct_predictions, user_stats.total_predictions, "+
			"users.created_at AS user_created_at").
		Joins("JOIN users ON users.id = user_stats.user_id").
		Order("user_stats.pucks DESC, users.created_at ASC").
		Limit(leaderboardSize).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, LeaderboardEntry{
			UserID:      r.UserID,
			DisplayName: r.DisplayName,
			Pucks:       r.Pucks,
			Correct:     r.CorrectPredictions,
			Total:       r.TotalPredictions,
			Accuracy:    Accuracy(r.CorrectPredictions, r.TotalPredictions),
			JoinedAt:    r.UserCreatedAt,
		})
	}
	SortEntries(entries)
	return entries, nil
}

// GetLeaderboard serves the public leaderboard. A signed-in viewer
// outside the top N gets their own stats appended without a numeric
// rank (the true rank past the page is not computed).
func (s *LeaderboardService) GetLeaderboard(c *fiber.Ctx) error {
	entries, err := s.Top(c.Context())
	if err != nil {
		log.Printf("[Leaderboard] DB error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load leaderboard"})
	}

	resp := fiber.Map{"entries": entries}

	viewerID, _ := c.Locals("user_id").(string)
	if viewerID != "" && !containsUser(entries, viewerID) {
		viewer, err := s.viewerEntry(viewerID)
		if err == nil && viewer != nil {
			resp["viewer"] = viewer
		} else if err != nil {
			log.Printf("[Leaderboard] viewer lookup failed for %s: %v", viewerID, err)
		}
	}

	return c.JSON(resp)
}

func (s *LeaderboardService) viewerEntry(userID string) (*LeaderboardEntry, error) {
	var stats models.UserStats
	if err := s.DB.Where("user_id = ?", userID).First(&stats).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // no predictions yet
		}
		return nil, err
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	return &LeaderboardEntry{
		UserID:      userID,
		DisplayName: user.DisplayName,
		Pucks:       stats.Pucks,
		Correct:     stats.CorrectPredictions,
		Total:       stats.TotalPredictions,
		Accuracy:    Accuracy(stats.CorrectPredictions, stats.TotalPredictions),
		JoinedAt:    user.CreatedAt,
	}, nil
}

func containsUser(entries []LeaderboardEntry, userID string) bool {
	for _, e := range entries {
		if e.UserID == userID {
			return true
		}
	}
	return false
}
