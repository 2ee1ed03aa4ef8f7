package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/theleywin/devconnector/src/lib"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	userIDKey      = "userID"
	tokenHeader    = "x-auth-token"
	msgNoToken     = "No token, authorization denied"
	msgInvalidAuth = "Token is not valid"
)

type TokenVerifier interface {
	VerifyJWT(token string) (primitive.ObjectID, error)
}

// ProtectRoute checks for a valid JWT in "Authorization: Bearer <token>" or
// x-auth-token and attaches the user id to the request context
func ProtectRoute(tokens TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			token = strings.TrimSpace(c.Get(tokenHeader))
		}
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse(msgNoToken))
		}

		userID, err := tokens.VerifyJWT(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse(msgInvalidAuth))
		}

		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// UserID returns the id stored by ProtectRoute
func UserID(c *fiber.Ctx) (primitive.ObjectID, bool) {
	userID, ok := c.Locals(userIDKey).(primitive.ObjectID)
	return userID, ok
}
