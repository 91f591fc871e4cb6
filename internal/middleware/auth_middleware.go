package middleware

import (
	"strings"

	"go-billing-ws/internal/repository"
	"go-billing-ws/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the JWT token and sets the owner id in context.
// Every protected route is owner-scoped through this value; the store
// layer performs no implicit tenant isolation beyond it.
func RequireAuth(ownerRepo repository.OwnerRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		tokenString := parts[1]

		// Validate token
		claims, err := jwt.ValidateToken(tokenString)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// Check strict session against DB
		owner, err := ownerRepo.FindByID(claims.OwnerID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Owner account not found"})
		}

		if owner.TokenVersion != claims.TokenVersion {
			return c.Status(401).JSON(fiber.Map{"error": "Session expired (logged in on another device)"})
		}

		// Set owner info in context for downstream handlers
		c.Locals("owner_id", claims.OwnerID.String())
		c.Locals("owner_email", claims.Email)
		c.Locals("owner_name", claims.Name)

		return c.Next()
	}
}
