package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theleywin/devconnector/src/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create assigns id and date", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewUserRepository(mt.DB)

		user := &models.User{Name: "Ada", Email: "ada@example.com", Password: "hash"}
		require.NoError(mt, repo.Create(ctx, user))
		assert.False(mt, user.Id.IsZero())
		assert.False(mt, user.CreatedAt.IsZero())

		evt := mt.GetStartedEvent()
		assert.Equal(mt, "insert", evt.CommandName)
	})

	mt.Run("create duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: devconnector.users index: email_1",
		}))
		repo := NewUserRepository(mt.DB)

		err := repo.Create(ctx, &models.User{Email: "ada@example.com"})
		assert.ErrorIs(mt, err, ErrDuplicate)
	})

	mt.Run("find by email", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "devconnector.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Ada"},
			{Key: "email", Value: "ada@example.com"},
			{Key: "password", Value: "$2a$10$hash"},
			{Key: "avatar", Value: "//www.gravatar.com/avatar/x"},
		}))
		repo := NewUserRepository(mt.DB)

		user, err := repo.FindByEmail(ctx, "ada@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, id, user.Id)
		assert.Equal(mt, "$2a$10$hash", user.Password)
	})

	mt.Run("find by email missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "devconnector.users", mtest.FirstBatch))
		repo := NewUserRepository(mt.DB)

		_, err := repo.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("find by id projects out password", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "devconnector.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Ada"},
		}))
		repo := NewUserRepository(mt.DB)

		user, err := repo.FindByID(ctx, id)
		require.NoError(mt, err)
		assert.Equal(mt, "Ada", user.Name)

		evt := mt.GetStartedEvent()
		projection, err := evt.Command.LookupErr("projection")
		require.NoError(mt, err)
		assert.Equal(mt, int32(0), projection.Document().Lookup("password").Int32())
	})

	mt.Run("find by ids", func(mt *mtest.T) {
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "devconnector.users", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: first}, {Key: "name", Value: "Ada"}},
			bson.D{{Key: "_id", Value: second}, {Key: "name", Value: "Grace"}},
		))
		repo := NewUserRepository(mt.DB)

		users, err := repo.FindByIDs(ctx, []primitive.ObjectID{first, second})
		require.NoError(mt, err)
		require.Len(mt, users, 2)
		assert.Equal(mt, "Grace", users[1].Name)
	})

	mt.Run("find by ids empty skips query", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)

		users, err := repo.FindByIDs(ctx, nil)
		require.NoError(mt, err)
		assert.Empty(mt, users)
		assert.Nil(mt, mt.GetStartedEvent())
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		repo := NewUserRepository(mt.DB)

		assert.NoError(mt, repo.Delete(ctx, primitive.NewObjectID()))
	})
}
