package seed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theleywin/devconnector/src/models"
	"github.com/theleywin/devconnector/src/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memUsers struct {
	created []*models.User
	err     error
}

func (m *memUsers) Create(_ context.Context, user *models.User) error {
	if m.err != nil {
		return m.err
	}
	user.Id = primitive.NewObjectID()
	m.created = append(m.created, user)
	return nil
}

func (m *memUsers) FindByEmail(context.Context, string) (*models.User, error) {
	return nil, repository.ErrNotFound
}

func (m *memUsers) FindByID(context.Context, primitive.ObjectID) (*models.User, error) {
	return nil, repository.ErrNotFound
}

func (m *memUsers) FindByIDs(context.Context, []primitive.ObjectID) ([]models.User, error) {
	return nil, nil
}

func (m *memUsers) Delete(context.Context, primitive.ObjectID) error { return nil }

type memProfiles struct {
	profiles map[primitive.ObjectID]*models.Profile
}

func (m *memProfiles) get(userID primitive.ObjectID) *models.Profile {
	if m.profiles == nil {
		m.profiles = map[primitive.ObjectID]*models.Profile{}
	}
	p, ok := m.profiles[userID]
	if !ok {
		p = &models.Profile{Id: primitive.NewObjectID(), User: userID}
		m.profiles[userID] = p
	}
	return p
}

func (m *memProfiles) FindByUser(context.Context, primitive.ObjectID) (*models.Profile, error) {
	return nil, repository.ErrNotFound
}

func (m *memProfiles) FindAll(context.Context) ([]models.Profile, error) { return nil, nil }

func (m *memProfiles) Upsert(_ context.Context, userID primitive.ObjectID, fields models.ProfileFields) (*models.Profile, error) {
	p := m.get(userID)
	p.Status, _ = fields["status"].(string)
	p.Skills, _ = fields["skills"].([]string)
	return p, nil
}

func (m *memProfiles) SetExperience(_ context.Context, userID primitive.ObjectID, experience []models.Experience) (*models.Profile, error) {
	p := m.get(userID)
	p.Experience = experience
	return p, nil
}

func (m *memProfiles) SetEducation(_ context.Context, userID primitive.ObjectID, education []models.Education) (*models.Profile, error) {
	p := m.get(userID)
	p.Education = education
	return p, nil
}

func (m *memProfiles) DeleteByUser(context.Context, primitive.ObjectID) error { return nil }

type memPosts struct {
	created []*models.Post
}

func (m *memPosts) Create(_ context.Context, post *models.Post) error {
	post.Id = primitive.NewObjectID()
	m.created = append(m.created, post)
	return nil
}

func (m *memPosts) List(context.Context) ([]models.Post, error) { return nil, nil }

func (m *memPosts) FindByID(context.Context, primitive.ObjectID) (*models.Post, error) {
	return nil, repository.ErrNotFound
}

func (m *memPosts) Delete(context.Context, primitive.ObjectID) error { return nil }

func (m *memPosts) DeleteByUser(context.Context, primitive.ObjectID) (int64, error) { return 0, nil }

func (m *memPosts) SetLikes(context.Context, primitive.ObjectID, []models.Like) (*models.Post, error) {
	return nil, repository.ErrNotFound
}

func (m *memPosts) SetComments(context.Context, primitive.ObjectID, []models.Comment) (*models.Post, error) {
	return nil, repository.ErrNotFound
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSeederRun(t *testing.T) {
	users, profiles, posts := &memUsers{}, &memProfiles{}, &memPosts{}
	s := NewSeeder(users, profiles, posts, discardLogger())

	res, err := s.Run(context.Background(), Options{NumUsers: 5, NumPosts: 12, Seed: 42, SkipBcrypt: true})
	require.NoError(t, err)
	assert.Equal(t, &Result{Users: 5, Profiles: 5, Posts: 12}, res)

	require.Len(t, users.created, 5)
	for _, u := range users.created {
		assert.Equal(t, DefaultPassword, u.Password)
		assert.Contains(t, u.Avatar, "gravatar.com/avatar/")
		assert.Equal(t, strings.ToLower(u.Email), u.Email)

		p := profiles.profiles[u.Id]
		require.NotNil(t, p)
		assert.NotEmpty(t, p.Status)
		assert.NotEmpty(t, p.Skills)
		assert.NotEmpty(t, p.Experience)
		assert.NotEmpty(t, p.Education)
	}

	known := map[primitive.ObjectID]bool{}
	for _, u := range users.created {
		known[u.Id] = true
	}
	for _, p := range posts.created {
		assert.True(t, known[p.User], "post author must be a seeded user")
		assert.False(t, p.LikedBy(p.User), "author liked own post")
	}
}

func TestSeederRunHashesPassword(t *testing.T) {
	users := &memUsers{}
	s := NewSeeder(users, &memProfiles{}, &memPosts{}, discardLogger())

	_, err := s.Run(context.Background(), Options{NumUsers: 1})
	require.NoError(t, err)
	require.Len(t, users.created, 1)
	assert.True(t, strings.HasPrefix(users.created[0].Password, "$2a$10$"))
}

func TestSeederRunNoUsersSkipsPosts(t *testing.T) {
	posts := &memPosts{}
	s := NewSeeder(&memUsers{}, &memProfiles{}, posts, discardLogger())

	res, err := s.Run(context.Background(), Options{NumPosts: 10, SkipBcrypt: true})
	require.NoError(t, err)
	assert.Zero(t, res.Posts)
	assert.Empty(t, posts.created)
}

func TestSeederRunStopsOnError(t *testing.T) {
	boom := errors.New("write failed")
	s := NewSeeder(&memUsers{err: boom}, &memProfiles{}, &memPosts{}, discardLogger())

	res, err := s.Run(context.Background(), Options{NumUsers: 3, SkipBcrypt: true})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, res.Users)
}

func TestFactoryBuildExperience(t *testing.T) {
	f := NewFactory(7, "hash")

	entries := f.BuildExperience(3)
	require.Len(t, entries, 3)
	for i, e := range entries {
		assert.False(t, e.Id.IsZero())
		if i > 0 {
			assert.False(t, e.Current, "only the latest job can be current")
			assert.True(t, e.From.Before(entries[i-1].From), "entries must be newest first")
		}
		if e.Current {
			assert.Nil(t, e.To)
		} else {
			require.NotNil(t, e.To)
			assert.True(t, e.From.Before(*e.To))
		}
	}
}

func TestFactoryBuildPostCommentsNewestFirst(t *testing.T) {
	f := NewFactory(11, "hash")
	author := &models.User{Id: primitive.NewObjectID(), Name: "Ada"}
	audience := []*models.User{author}
	for i := 0; i < 40; i++ {
		audience = append(audience, &models.User{Id: primitive.NewObjectID(), Name: "u"})
	}

	post := f.BuildPost(author, audience)
	assert.Equal(t, "Ada", post.Name)
	assert.False(t, post.LikedBy(author.Id))
	assert.True(t, post.CreatedAt.Before(time.Now().Add(time.Second)))
	for i := 1; i < len(post.Comments); i++ {
		assert.True(t, post.Comments[i-1].CreatedAt.After(post.Comments[i].CreatedAt))
	}
}
