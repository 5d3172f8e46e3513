package middlewares

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CronAuth menjaga endpoint cron dengan shared secret:
// Authorization: Bearer <CRON_SECRET>. Dicek sebelum ada akses data;
// secret kosong berarti endpoint dimatikan (selalu 401).
func CronAuth(secret string) fiber.Handler {
	secret = strings.TrimSpace(secret)

	return func(c *fiber.Ctx) error {
		if secret == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		}
		if raw == "" || subtle.ConstantTimeCompare([]byte(raw), []byte(secret)) != 1 {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}
		return c.Next()
	}
}
