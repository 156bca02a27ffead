package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/models"
)

func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")

	// Public routes
	auth.Post("/login", LoginAPI)

	// Protected routes
	auth.Use(AuthMiddleware)
	auth.Get("/user", CurrentUserAPI)
	auth.Post("/change-password", ChangePasswordAPI)
}

// AuthMiddleware validates the bearer token and sets user context
func AuthMiddleware(c *fiber.Ctx) error {
	var tokenString string

	auth := c.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		tokenString = strings.TrimPrefix(auth, "Bearer ")
	}
	if tokenString == "" {
		tokenString = c.Cookies("jwt_token")
	}

	if tokenString == "" {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "No token found"})
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid token"})
	}

	user := &models.User{
		ID:        claims.UserID,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Role:      models.UserRole(claims.Role),
		IsActive:  true,
	}

	c.Locals("user_id", user.ID)
	c.Locals("user", user)

	return c.Next()
}

// AdminMiddleware restricts a route to admin users
func AdminMiddleware(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok || !user.IsAdmin() {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "Insufficient permissions"})
	}
	return c.Next()
}
