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

type ProfileRepository interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error)
	FindAll(ctx context.Context) ([]models.Profile, error)
	Upsert(ctx context.Context, userID primitive.ObjectID, fields models.ProfileFields) (*models.Profile, error)
	SetExperience(ctx context.Context, userID primitive.ObjectID, experience []models.Experience) (*models.Profile, error)
	SetEducation(ctx context.Context, userID primitive.ObjectID, education []models.Education) (*models.Profile, error)
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

type profileRepository struct {
	coll *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) ProfileRepository {
	return &profileRepository{coll: db.Collection(lib.ProfilesCollection)}
}

func (r *profileRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.coll.FindOne(ctx, bson.M{"user": userID}).Decode(&profile); err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (r *profileRepository) FindAll(ctx context.Context) ([]models.Profile, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	profiles := []models.Profile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// Upsert applies only the supplied keys. A profile created by this call starts
// with empty experience and education lists.
func (r *profileRepository) Upsert(ctx context.Context, userID primitive.ObjectID, fields models.ProfileFields) (*models.Profile, error) {
	update := bson.M{
		"$setOnInsert": bson.M{
			"experience": []models.Experience{},
			"education":  []models.Education{},
			"date":       time.Now(),
		},
	}
	if len(fields) > 0 {
		update["$set"] = bson.M(fields)
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var profile models.Profile
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"user": userID}, update, opts).Decode(&profile)
	if err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (r *profileRepository) SetExperience(ctx context.Context, userID primitive.ObjectID, experience []models.Experience) (*models.Profile, error) {
	return r.setField(ctx, userID, "experience", experience)
}

func (r *profileRepository) SetEducation(ctx context.Context, userID primitive.ObjectID, education []models.Education) (*models.Profile, error) {
	return r.setField(ctx, userID, "education", education)
}

func (r *profileRepository) setField(ctx context.Context, userID primitive.ObjectID, field string, value interface{}) (*models.Profile, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var profile models.Profile
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"user": userID}, bson.M{"$set": bson.M{field: value}}, opts).Decode(&profile)
	if err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (r *profileRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"user": userID})
	return translate(err)
}
