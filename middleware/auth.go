// middleware/auth.go
package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session token payload issued at login.
type Claims struct {
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// UserContextMiddleware parses the Bearer session token and attaches
// user identity to the request context. Secured routes (under /s/)
// reject requests without a valid token; everything else passes
// through so guests can browse public pages.
func UserContextMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")

		if token != "" && token != authHeader {
			claims := &Claims{}
			parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err == nil && parsed.Valid {
				c.Locals("user_id", claims.UserID)
				c.Locals("is_admin", claims.IsAdmin)
			} else {
				log.Printf("[AUTH] invalid session token on %s: %v", c.Path(), err)
			}
		}

		if strings.HasPrefix(c.Path(), "/s/") {
			if uid, _ := c.Locals("user_id").(string); uid == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "sign in required",
				})
			}
		}

		return c.Next()
	}
}

// RequireAdmin gates the administrative surface. Applied after
// UserContextMiddleware on the /s/admin group.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isAdmin, _ := c.Locals("is_admin").(bool); !isAdmin {
			log.Printf("[AUTH] non-admin request rejected: %s", c.Path())
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin access required",
			})
		}
		return c.Next()
	}
}

// UserID returns the authenticated user id from the request context,
// or "" for guests.
func UserID(c *fiber.Ctx) string {
	uid, _ := c.Locals("user_id").(string)
	return uid
}
