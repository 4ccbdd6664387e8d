package middleware

import (
	"strings"

	"github.com/mishrapravin114/developers-assessment/config"
	"github.com/mishrapravin114/developers-assessment/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func extractToken(c *fiber.Ctx) (string, error) {
	auth := c.Get("Authorization")
	if auth == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "No token provided")
	}

	parts := strings.Split(auth, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Invalid token format")
	}

	return parts[1], nil
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(types.APIResponse{
		Success: false,
		Error:   msg,
	})
}

// RequireAuth validates the bearer token and stores its claims under "claims".
func RequireAuth(c *fiber.Ctx) error {
	token, err := extractToken(c)
	if err != nil {
		return unauthorized(c, err.Error())
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return unauthorized(c, "Invalid or expired token")
	}

	c.Locals("claims", claims)
	c.Locals("user_id", claims["sub"])

	return c.Next()
}

// RequireSuperuser must run after RequireAuth.
func RequireSuperuser(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(jwt.MapClaims)
	if !ok {
		return unauthorized(c, types.ErrUnauthorized)
	}

	if isSuper, _ := claims["is_superuser"].(bool); !isSuper {
		return c.Status(fiber.StatusForbidden).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrForbidden,
		})
	}

	return c.Next()
}
