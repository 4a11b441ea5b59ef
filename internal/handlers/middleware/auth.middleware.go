package middleware

import (
	"strings"
	"watchlist/internal/models"

	authController "watchlist/internal/controllers/auth"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
)

const (
	AuthCookieName = "auth_token"
	UserIDLocalKey = "userID"
	UserRoleLocal  = "userRole"
)

// sessionToken pulls the token from the auth cookie, falling back to a
// Bearer header for non-browser clients.
func sessionToken(c *fiber.Ctx) string {
	if token := c.Cookies(AuthCookieName); token != "" {
		return token
	}

	authHeader := c.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

// RequireAuth validates the session token and stores the caller's identity
// in request locals.
func (m *Middleware) RequireAuth(auth authController.AuthControllerInterface) fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := logger.New("middleware").TraceFromContext(c.Context()).Function("RequireAuth")

		token := sessionToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		claims, err := auth.ParseToken(token)
		if err != nil {
			log.Info("token validation failed", "error", err.Error())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		userID, err := claims.UserID()
		if err != nil {
			log.Info("invalid token subject", "subject", claims.Subject)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		c.Locals(UserIDLocalKey, userID)
		c.Locals(UserRoleLocal, claims.Role)

		return c.Next()
	}
}

// RequireAdmin allows only admin callers. Must run after RequireAuth.
func (m *Middleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(UserRoleLocal).(string)
		if role != string(models.RoleAdmin) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admin access required",
			})
		}
		return c.Next()
	}
}

// GetUserID retrieves the authenticated user id from request locals.
func GetUserID(c *fiber.Ctx) int {
	if userID, ok := c.Locals(UserIDLocalKey).(int); ok {
		return userID
	}
	return 0
}
