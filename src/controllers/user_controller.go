package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/theleywin/devconnector/src/models"
)

type UserController struct {
	auth AuthService
}

func NewUserController(auth AuthService) *UserController {
	return &UserController{auth: auth}
}

// RegisterUser creates an account and answers with a token for it
func (uc *UserController) RegisterUser(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	token, err := uc.auth.Register(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"token": token})
}
