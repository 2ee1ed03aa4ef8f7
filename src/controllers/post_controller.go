package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/theleywin/devconnector/src/lib"
	"github.com/theleywin/devconnector/src/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const msgPostNotFound = "Post not found"

type PostController struct {
	posts PostService
}

func NewPostController(posts PostService) *PostController {
	return &PostController{posts: posts}
}

// GetPosts returns every post, newest first
func (pc *PostController) GetPosts(c *fiber.Ctx) error {
	posts, err := pc.posts.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// CreatePost stores a post for the authenticated user
func (pc *PostController) CreatePost(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	var req models.TextRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	post, err := pc.posts.Create(c.UserContext(), userID, req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

func (pc *PostController) GetPostByID(c *fiber.Ctx) error {
	postID, err := postParam(c)
	if err != nil {
		return respondError(c, err)
	}

	post, err := pc.posts.Fetch(c.UserContext(), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// DeletePost removes a post owned by the authenticated user
func (pc *PostController) DeletePost(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	postID, err := postParam(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := pc.posts.Remove(c.UserContext(), postID, userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(lib.MessageResponse("Post removed"))
}

func (pc *PostController) LikePost(c *fiber.Ctx) error {
	return pc.toggleLike(c, true)
}

func (pc *PostController) UnlikePost(c *fiber.Ctx) error {
	return pc.toggleLike(c, false)
}

func (pc *PostController) toggleLike(c *fiber.Ctx, like bool) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	postID, err := postParam(c)
	if err != nil {
		return respondError(c, err)
	}

	likes, err := pc.posts.ToggleLike(c.UserContext(), postID, userID, like)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(likes)
}

// CreateComment adds a comment to a post and returns the post's comments
func (pc *PostController) CreateComment(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	postID, err := postParam(c)
	if err != nil {
		return respondError(c, err)
	}

	var req models.TextRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	comments, err := pc.posts.AddComment(c.UserContext(), postID, userID, req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comments)
}

func (pc *PostController) DeleteComment(c *fiber.Ctx) error {
	postID, err := postParam(c)
	if err != nil {
		return respondError(c, err)
	}

	comments, err := pc.posts.RemoveComment(c.UserContext(), postID, c.Params("comment_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comments)
}

func postParam(c *fiber.Ctx) (primitive.ObjectID, error) {
	return objectIDParam(c, "id", models.NewNotFoundError(msgPostNotFound))
}
