package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/theleywin/devconnector/src/controllers"
)

// PostRoutes sets up the feed: posts, likes and comments. All of them
// require authentication.
func PostRoutes(app *fiber.App, pc *controllers.PostController, protect fiber.Handler) {
	post := app.Group("/api/posts", protect)

	post.Get("/", pc.GetPosts)
	post.Post("/", pc.CreatePost)
	post.Get("/:id", pc.GetPostByID)
	post.Delete("/:id", pc.DeletePost)
	post.Put("/like/:id", pc.LikePost)
	post.Put("/unlike/:id", pc.UnlikePost)
	post.Post("/comment/:id", pc.CreateComment)
	post.Delete("/comment/:id/:comment_id", pc.DeleteComment)
}
