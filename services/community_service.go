// services/community_service.go
package services

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/aidanleach15-hash/shining-stars-sub000/middleware"
	"github.com/aidanleach15-hash/shining-stars-sub000/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	maxBodyLength   = 2000
	defaultPageSize = 50
)

// CommunityService backs the fan feed and the game-day chat. Both are
// plain polled resources — clients re-fetch on a timer, nothing is
// pushed.
type CommunityService struct {
	DB *gorm.DB
}

func NewCommunityService(db *gorm.DB) *CommunityService {
	return &CommunityService{DB: db}
}

func (s *CommunityService) authorName(userID string) string {
	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[Community] author lookup failed for %s: %v", userID, err)
		}
		return "fan"
	}
	return user.DisplayName
}

func parseLimit(c *fiber.Ctx) int {
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit <= 0 || limit > 200 {
		return defaultPageSize
	}
	return limit
}

// CreatePost adds an entry to the fan feed.
func (s *CommunityService) CreatePost(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req struct {
		Body string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	req.Body = strings.TrimSpace(req.Body)
	if req.Body == "" || len(req.Body) > maxBodyLength {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "post body must be 1-2000 characters"})
	}

	post := models.Post{
		ID:         uuid.NewString(),
		UserID:     userID,
		AuthorName: s.authorName(userID),
		Body:       req.Body,
	}
	if err := s.DB.Create(&post).Error; err != nil {
		log.Printf("[Community] failed to create post: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create post"})
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// ListPosts returns the feed, newest first.
func (s *CommunityService) ListPosts(c *fiber.Ctx) error {
	var posts []models.Post
	if err := s.DB.Order("created_at DESC").Limit(parseLimit(c)).Find(&posts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load feed"})
	}
	return c.JSON(posts)
}

// DeletePost removes the caller's own post (admins can remove any).
func (s *CommunityService) DeletePost(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	isAdmin, _ := c.Locals("is_admin").(bool)

	var post models.Post
	if err := s.DB.First(&post, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "post not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	if post.UserID != userID && !isAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not your post"})
	}

	if err := s.DB.Delete(&post).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete post"})
	}
	return c.JSON(fiber.Map{"message": "post deleted"})
}

// SendChatMessage appends one line to the game-day chat.
func (s *CommunityService) SendChatMessage(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req struct {
		Body string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	req.Body = strings.TrimSpace(req.Body)
	if req.Body == "" || len(req.Body) > maxBodyLength {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "message must be 1-2000 characters"})
	}

	msg := models.ChatMessage{
		ID:         uuid.NewString(),
		UserID:     userID,
		AuthorName: s.authorName(userID),
		Body:       req.Body,
	}
	if err := s.DB.Create(&msg).Error; err != nil {
		log.Printf("[Community] failed to send chat message: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to send message"})
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// ListChatMessages returns the most recent messages in chronological
// order, so clients can render oldest-to-newest straight off the wire.
func (s *CommunityService) ListChatMessages(c *fiber.Ctx) error {
	var msgs []models.ChatMessage
	if err := s.DB.Order("created_at DESC").Limit(parseLimit(c)).Find(&msgs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load chat"})
	}
	// reverse into ascending order
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return c.JSON(msgs)
}
