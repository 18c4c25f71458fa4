package jwt

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/places/pkg/apperr"
)

// ErrAuthFailed is the only error the gate returns; the cause is not exposed.
var ErrAuthFailed = apperr.Unauthorized("Authentication failed!")

// NewAuthMiddleware returns a Fiber middleware that requires
// "Authorization: Bearer <token>". On success it sets c.Locals("userId") and
// c.Locals("email"). Pre-flight requests pass through untouched.
func NewAuthMiddleware(v *Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodOptions {
			return c.Next()
		}
		scheme, tokenStr, found := strings.Cut(strings.TrimSpace(c.Get(fiber.HeaderAuthorization)), " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			return ErrAuthFailed
		}
		tokenStr = strings.TrimSpace(tokenStr)
		if tokenStr == "" {
			return ErrAuthFailed
		}
		id, err := v.Verify(tokenStr)
		if err != nil {
			return &apperr.Error{Kind: ErrAuthFailed.Kind, Message: ErrAuthFailed.Message, Err: err}
		}
		c.Locals("userId", id.UserID)
		c.Locals("email", id.Email)
		return c.Next()
	}
}
