// Package services holds the application logic between the HTTP controllers
// and the MongoDB repositories.
package services

import (
	"context"
	"errors"

	"github.com/theleywin/devconnector/src/lib"
	"github.com/theleywin/devconnector/src/models"
	"github.com/theleywin/devconnector/src/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	msgUserExists         = "User already exists."
	msgInvalidCredentials = "Invalid Credentials"
	msgUserNotFound       = "User not found."
)

// TokenIssuer signs bearer tokens for a user
type TokenIssuer interface {
	GenerateJWT(userID primitive.ObjectID) (string, error)
}

type AuthService struct {
	users  repository.UserRepository
	tokens TokenIssuer
}

func NewAuthService(users repository.UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

// Register creates a user with a gravatar avatar and a bcrypt hash and
// returns a signed token for it.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	_, err := s.users.FindByEmail(ctx, req.Email)
	if err == nil {
		return "", models.NewValidationError(models.FieldError{Msg: msgUserExists})
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", models.NewInternalError(err)
	}

	hash, err := lib.HashPassword(req.Password)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Avatar:   lib.GravatarURL(req.Email),
		Password: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repository.ErrDuplicate) {
			return "", models.NewValidationError(models.FieldError{Msg: msgUserExists})
		}
		return "", models.NewInternalError(err)
	}

	return s.issue(user.Id)
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", models.NewValidationError(models.FieldError{Msg: msgInvalidCredentials})
	}
	if err != nil {
		return "", models.NewInternalError(err)
	}

	if !lib.CheckPassword(user.Password, req.Password) {
		return "", models.NewValidationError(models.FieldError{Msg: msgInvalidCredentials})
	}

	return s.issue(user.Id)
}

// CurrentUser returns the authenticated user without the password hash
func (s *AuthService) CurrentUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, models.NewNotFoundError(msgUserNotFound)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	user.Password = ""
	return user, nil
}

func (s *AuthService) issue(userID primitive.ObjectID) (string, error) {
	token, err := s.tokens.GenerateJWT(userID)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return token, nil
}
