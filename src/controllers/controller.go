package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/theleywin/devconnector/src/lib"
	"github.com/theleywin/devconnector/src/middleware"
	"github.com/theleywin/devconnector/src/models"
	"github.com/theleywin/devconnector/src/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const msgInvalidBody = "Invalid request body."

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (string, error)
	Login(ctx context.Context, req models.LoginRequest) (string, error)
	CurrentUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
}

type ProfileService interface {
	Upsert(ctx context.Context, userID primitive.ObjectID, req models.ProfileRequest) (*models.Profile, error)
	Mine(ctx context.Context, userID primitive.ObjectID) (*models.ProfileDto, error)
	FetchByUser(ctx context.Context, userID primitive.ObjectID) (*models.ProfileDto, error)
	FetchAll(ctx context.Context) ([]models.ProfileDto, error)
	DeleteCascade(ctx context.Context, userID primitive.ObjectID) error
	AddExperience(ctx context.Context, userID primitive.ObjectID, req models.ExperienceRequest) (*models.Profile, error)
	AddEducation(ctx context.Context, userID primitive.ObjectID, req models.EducationRequest) (*models.Profile, error)
	RemoveExperience(ctx context.Context, userID primitive.ObjectID, entryID string) (*models.Profile, error)
	RemoveEducation(ctx context.Context, userID primitive.ObjectID, entryID string) (*models.Profile, error)
}

type PostService interface {
	Create(ctx context.Context, userID primitive.ObjectID, text string) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	Fetch(ctx context.Context, postID primitive.ObjectID) (*models.Post, error)
	Remove(ctx context.Context, postID, userID primitive.ObjectID) error
	ToggleLike(ctx context.Context, postID, userID primitive.ObjectID, like bool) ([]models.Like, error)
	AddComment(ctx context.Context, postID, userID primitive.ObjectID, text string) ([]models.Comment, error)
	RemoveComment(ctx context.Context, postID primitive.ObjectID, commentID string) ([]models.Comment, error)
}

type GithubService interface {
	Repos(ctx context.Context, username string) (json.RawMessage, error)
}

// respondError renders an error returned by a service. Anything that is not
// a client error is logged and answered with a bare 500.
func respondError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		appErr = models.NewInternalError(err)
	}

	switch appErr.Kind {
	case models.KindValidation:
		return c.Status(fiber.StatusBadRequest).JSON(lib.ErrorsResponse(appErr.Fields...))
	case models.KindBadRequest:
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(appErr.Message))
	case models.KindNotFound:
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse(appErr.Message))
	case models.KindUnauthorized:
		return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse(appErr.Message))
	default:
		slog.ErrorContext(c.UserContext(), "Internal server error",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Any("error", err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse(appErr.Message))
	}
}

// bind parses the JSON body into req and validates it
func bind(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return models.NewBadRequestError(msgInvalidBody)
	}
	return validation.Struct(req)
}

// currentUser returns the id attached by ProtectRoute
func currentUser(c *fiber.Ctx) (primitive.ObjectID, error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return primitive.NilObjectID, models.NewUnauthorizedError("No token, authorization denied")
	}
	return userID, nil
}

// objectIDParam parses a route parameter. A malformed id is reported with
// the same error as a missing document.
func objectIDParam(c *fiber.Ctx, name string, notFound *models.AppError) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(name))
	if err != nil {
		return primitive.NilObjectID, notFound
	}
	return id, nil
}
