package controllers

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/stretchr/testify/mock"
	"github.com/theleywin/devconnector/src/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) CurrentUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) profile(args mock.Arguments) (*models.Profile, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) dto(args mock.Arguments) (*models.ProfileDto, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProfileDto), args.Error(1)
}

func (m *MockProfileService) Upsert(ctx context.Context, userID primitive.ObjectID, req models.ProfileRequest) (*models.Profile, error) {
	return m.profile(m.Called(ctx, userID, req))
}

func (m *MockProfileService) Mine(ctx context.Context, userID primitive.ObjectID) (*models.ProfileDto, error) {
	return m.dto(m.Called(ctx, userID))
}

func (m *MockProfileService) FetchByUser(ctx context.Context, userID primitive.ObjectID) (*models.ProfileDto, error) {
	return m.dto(m.Called(ctx, userID))
}

func (m *MockProfileService) FetchAll(ctx context.Context) ([]models.ProfileDto, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.ProfileDto), args.Error(1)
}

func (m *MockProfileService) DeleteCascade(ctx context.Context, userID primitive.ObjectID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockProfileService) AddExperience(ctx context.Context, userID primitive.ObjectID, req models.ExperienceRequest) (*models.Profile, error) {
	return m.profile(m.Called(ctx, userID, req))
}

func (m *MockProfileService) AddEducation(ctx context.Context, userID primitive.ObjectID, req models.EducationRequest) (*models.Profile, error) {
	return m.profile(m.Called(ctx, userID, req))
}

func (m *MockProfileService) RemoveExperience(ctx context.Context, userID primitive.ObjectID, entryID string) (*models.Profile, error) {
	return m.profile(m.Called(ctx, userID, entryID))
}

func (m *MockProfileService) RemoveEducation(ctx context.Context, userID primitive.ObjectID, entryID string) (*models.Profile, error) {
	return m.profile(m.Called(ctx, userID, entryID))
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) Create(ctx context.Context, userID primitive.ObjectID, text string) (*models.Post, error) {
	args := m.Called(ctx, userID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) List(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) Fetch(ctx context.Context, postID primitive.ObjectID) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) Remove(ctx context.Context, postID, userID primitive.ObjectID) error {
	return m.Called(ctx, postID, userID).Error(0)
}

func (m *MockPostService) ToggleLike(ctx context.Context, postID, userID primitive.ObjectID, like bool) ([]models.Like, error) {
	args := m.Called(ctx, postID, userID, like)
	return args.Get(0).([]models.Like), args.Error(1)
}

func (m *MockPostService) AddComment(ctx context.Context, postID, userID primitive.ObjectID, text string) ([]models.Comment, error) {
	args := m.Called(ctx, postID, userID, text)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockPostService) RemoveComment(ctx context.Context, postID primitive.ObjectID, commentID string) ([]models.Comment, error) {
	args := m.Called(ctx, postID, commentID)
	return args.Get(0).([]models.Comment), args.Error(1)
}

type MockGithubService struct {
	mock.Mock
}

func (m *MockGithubService) Repos(ctx context.Context, username string) (json.RawMessage, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// stubVerifier accepts exactly one token
type stubVerifier struct {
	token  string
	userID primitive.ObjectID
}

func (s stubVerifier) VerifyJWT(token string) (primitive.ObjectID, error) {
	if token != s.token {
		return primitive.NilObjectID, errors.New("invalid token")
	}
	return s.userID, nil
}
