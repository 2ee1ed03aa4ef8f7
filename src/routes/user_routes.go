package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/theleywin/devconnector/src/controllers"
)

// UserRoutes sets up public registration
func UserRoutes(app *fiber.App, uc *controllers.UserController) {
	user := app.Group("/api/users")
	user.Post("/", uc.RegisterUser)
}
