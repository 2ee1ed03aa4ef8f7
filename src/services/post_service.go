package services

import (
	"context"
	"errors"
	"time"

	"github.com/theleywin/devconnector/src/models"
	"github.com/theleywin/devconnector/src/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	msgPostNotFound    = "Post not found"
	msgNotAuthorized   = "User not authorized"
	msgAlreadyLiked    = "Post already liked"
	msgNotLiked        = "Post has not yet been liked"
	msgCommentNotFound = "Comment does not exist"
)

type PostService struct {
	posts repository.PostRepository
	users repository.UserRepository
	now   func() time.Time
}

func NewPostService(posts repository.PostRepository, users repository.UserRepository) *PostService {
	return &PostService{
		posts: posts,
		users: users,
		now:   time.Now,
	}
}

// Create stores a post with a snapshot of the author's current name and avatar
func (s *PostService) Create(ctx context.Context, userID primitive.ObjectID, text string) (*models.Post, error) {
	author, err := s.author(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Id:        primitive.NewObjectID(),
		User:      userID,
		Text:      text,
		Name:      author.Name,
		Avatar:    author.Avatar,
		Likes:     []models.Like{},
		Comments:  []models.Comment{},
		CreatedAt: s.now(),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// List returns all posts, newest first
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (s *PostService) Fetch(ctx context.Context, postID primitive.ObjectID) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, models.NewNotFoundError(msgPostNotFound)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// Remove deletes a post. Only its author may do so.
func (s *PostService) Remove(ctx context.Context, postID, userID primitive.ObjectID) error {
	post, err := s.Fetch(ctx, postID)
	if err != nil {
		return err
	}
	if post.User != userID {
		return models.NewUnauthorizedError(msgNotAuthorized)
	}

	err = s.posts.Delete(ctx, postID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.NewNotFoundError(msgPostNotFound)
	}
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ToggleLike adds (like) or removes (unlike) the user's like and returns the
// resulting like set. A user appears at most once in the set.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID primitive.ObjectID, like bool) ([]models.Like, error) {
	post, err := s.Fetch(ctx, postID)
	if err != nil {
		return nil, err
	}

	liked := post.LikedBy(userID)
	var likes []models.Like
	switch {
	case like && liked:
		return nil, models.NewBadRequestError(msgAlreadyLiked)
	case !like && !liked:
		return nil, models.NewBadRequestError(msgNotLiked)
	case like:
		likes = append(post.Likes, models.Like{Id: primitive.NewObjectID(), User: userID})
	default:
		likes = make([]models.Like, 0, len(post.Likes))
		for _, l := range post.Likes {
			if l.User != userID {
				likes = append(likes, l)
			}
		}
	}

	updated, err := s.posts.SetLikes(ctx, postID, likes)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, models.NewNotFoundError(msgPostNotFound)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return updated.Likes, nil
}

// AddComment puts a comment at the front of the post's comments
func (s *PostService) AddComment(ctx context.Context, postID, userID primitive.ObjectID, text string) ([]models.Comment, error) {
	post, err := s.Fetch(ctx, postID)
	if err != nil {
		return nil, err
	}
	author, err := s.author(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		Id:        primitive.NewObjectID(),
		User:      userID,
		Text:      text,
		Name:      author.Name,
		Avatar:    author.Avatar,
		CreatedAt: s.now(),
	}
	return s.saveComments(ctx, postID, append([]models.Comment{comment}, post.Comments...))
}

// RemoveComment deletes a comment by id. Any authenticated user may remove
// any comment.
func (s *PostService) RemoveComment(ctx context.Context, postID primitive.ObjectID, commentID string) ([]models.Comment, error) {
	post, err := s.Fetch(ctx, postID)
	if err != nil {
		return nil, err
	}

	kept := make([]models.Comment, 0, len(post.Comments))
	for _, c := range post.Comments {
		if c.Id.Hex() != commentID {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(post.Comments) {
		return nil, models.NewNotFoundError(msgCommentNotFound)
	}
	return s.saveComments(ctx, postID, kept)
}

func (s *PostService) saveComments(ctx context.Context, postID primitive.ObjectID, comments []models.Comment) ([]models.Comment, error) {
	updated, err := s.posts.SetComments(ctx, postID, comments)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, models.NewNotFoundError(msgPostNotFound)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return updated.Comments, nil
}

func (s *PostService) author(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, models.NewNotFoundError(msgUserNotFound)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return user, nil
}
