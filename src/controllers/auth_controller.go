package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/theleywin/devconnector/src/models"
)

type AuthController struct {
	auth AuthService
}

func NewAuthController(auth AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Login authenticates by email and password and returns a token
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	token, err := ac.auth.Login(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"token": token})
}

// GetCurrentUser returns the authenticated user without the password
func (ac *AuthController) GetCurrentUser(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	user, err := ac.auth.CurrentUser(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(user)
}
