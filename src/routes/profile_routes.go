package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/theleywin/devconnector/src/controllers"
)

// ProfileRoutes sets up profile CRUD, experience and education entries, and
// the GitHub repository lookup
func ProfileRoutes(app *fiber.App, pc *controllers.ProfileController, protect fiber.Handler) {
	profile := app.Group("/api/profile")

	profile.Get("/", pc.GetProfiles)
	profile.Get("/user/:user_id", pc.GetProfileByUser)
	profile.Get("/github/:username", pc.GetGithubRepos)

	profile.Get("/me", protect, pc.GetMyProfile)
	profile.Post("/", protect, pc.UpsertProfile)
	profile.Delete("/", protect, pc.DeleteAccount)
	profile.Put("/experience", protect, pc.AddExperience)
	profile.Delete("/experience/:exp_id", protect, pc.DeleteExperience)
	profile.Put("/education", protect, pc.AddEducation)
	profile.Delete("/education/:edu_id", protect, pc.DeleteEducation)
}
