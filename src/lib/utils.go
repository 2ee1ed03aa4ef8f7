package lib

import (
	"github.com/gofiber/fiber/v2"
	"github.com/theleywin/devconnector/src/models"
)

// Returns a map with a msg key for API responses
func MessageResponse(message string) fiber.Map {
	return fiber.Map{
		"msg": message,
	}
}

// Returns the {"errors": [...]} body used for validation failures
func ErrorsResponse(fields ...models.FieldError) fiber.Map {
	return fiber.Map{
		"errors": fields,
	}
}
