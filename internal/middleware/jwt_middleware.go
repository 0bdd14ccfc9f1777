package middleware

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/services"
)

const claimsKey = "auth_claims"

// TokenValidator verifies a bearer token and returns its claims.
type TokenValidator interface {
	ValidateToken(token string) (*services.Claims, error)
}

// Authenticate returns a guard that requires a valid "Authorization: Bearer <token>"
// header. On success the claims are stored in the request locals; on failure it
// returns a 401 *fiber.Error. The three token failure kinds are logged apart.
func Authenticate(validator TokenValidator) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header is missing")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "") {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header format must be 'Bearer <token>'")
		}

		claims, err := validator.ValidateToken(parts[1])
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTokenExpired):
				log.Printf("JWT validation failed (expired): %v", err)
				return fiber.NewError(fiber.StatusUnauthorized, "Token has expired")
			case errors.Is(err, services.ErrTokenMalformed):
				log.Printf("JWT validation failed (malformed): %v", err)
				return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
			default:
				log.Printf("JWT validation failed (verification): %v", err)
				return fiber.NewError(fiber.StatusUnauthorized, "Token verification failed")
			}
		}

		c.Locals(claimsKey, claims)
		return nil
	}
}

// ClaimsFrom returns the claims stored by Authenticate, or nil.
func ClaimsFrom(c *fiber.Ctx) *services.Claims {
	claims, _ := c.Locals(claimsKey).(*services.Claims)
	return claims
}
