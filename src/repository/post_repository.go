package repository

import (
	"context"
	"time"

	"github.com/theleywin/devconnector/src/lib"
	"github.com/theleywin/devconnector/src/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	List(ctx context.Context) ([]models.Post, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
	SetLikes(ctx context.Context, id primitive.ObjectID, likes []models.Like) (*models.Post, error)
	SetComments(ctx context.Context, id primitive.ObjectID, comments []models.Comment) (*models.Post, error)
}

type postRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) PostRepository {
	return &postRepository{coll: db.Collection(lib.PostsCollection)}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.Id.IsZero() {
		post.Id = primitive.NewObjectID()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	if post.Likes == nil {
		post.Likes = []models.Like{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	_, err := r.coll.InsertOne(ctx, post)
	return translate(err)
}

// List returns every post, newest first
func (r *postRepository) List(ctx context.Context) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.M{"date": -1})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (r *postRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	result, err := r.coll.DeleteMany(ctx, bson.M{"user": userID})
	if err != nil {
		return 0, translate(err)
	}
	return result.DeletedCount, nil
}

func (r *postRepository) SetLikes(ctx context.Context, id primitive.ObjectID, likes []models.Like) (*models.Post, error) {
	return r.setField(ctx, id, "likes", likes)
}

func (r *postRepository) SetComments(ctx context.Context, id primitive.ObjectID, comments []models.Comment) (*models.Post, error) {
	return r.setField(ctx, id, "comments", comments)
}

func (r *postRepository) setField(ctx context.Context, id primitive.ObjectID, field string, value interface{}) (*models.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{field: value}}, opts).Decode(&post)
	if err != nil {
		return nil, translate(err)
	}
	return &post, nil
}
