package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/theleywin/devconnector/src/lib"
	"github.com/theleywin/devconnector/src/models"
	"github.com/theleywin/devconnector/src/repository"
)

type Options struct {
	NumUsers int
	NumPosts int
	// Seed makes runs reproducible; zero picks a random seed
	Seed int64
	// SkipBcrypt stores DefaultPassword in clear text. Seeded users cannot
	// log in, but large runs finish much faster.
	SkipBcrypt bool
}

type Result struct {
	Users    int
	Profiles int
	Posts    int
}

type Seeder struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	posts    repository.PostRepository
	logger   *slog.Logger
}

func NewSeeder(users repository.UserRepository, profiles repository.ProfileRepository, posts repository.PostRepository, logger *slog.Logger) *Seeder {
	return &Seeder{
		users:    users,
		profiles: profiles,
		posts:    posts,
		logger:   logger,
	}
}

// Run creates NumUsers users, each with a profile, then NumPosts posts spread
// over those users
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	hash := DefaultPassword
	if !opts.SkipBcrypt {
		var err error
		if hash, err = lib.HashPassword(DefaultPassword); err != nil {
			return nil, fmt.Errorf("hashing seed password: %w", err)
		}
	}
	f := NewFactory(opts.Seed, hash)

	res := &Result{}
	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user := f.BuildUser()
		if err := s.users.Create(ctx, user); err != nil {
			return res, fmt.Errorf("creating user %s: %w", user.Email, err)
		}
		users = append(users, user)
		res.Users++

		if _, err := s.profiles.Upsert(ctx, user.Id, f.BuildProfileFields()); err != nil {
			return res, fmt.Errorf("creating profile for %s: %w", user.Email, err)
		}
		if _, err := s.profiles.SetExperience(ctx, user.Id, f.BuildExperience(1+f.rnd.Intn(3))); err != nil {
			return res, fmt.Errorf("adding experience for %s: %w", user.Email, err)
		}
		if _, err := s.profiles.SetEducation(ctx, user.Id, f.BuildEducation(1+f.rnd.Intn(2))); err != nil {
			return res, fmt.Errorf("adding education for %s: %w", user.Email, err)
		}
		res.Profiles++
	}
	s.logger.Info("Seeded users", slog.Int("users", res.Users), slog.Int("profiles", res.Profiles))

	if len(users) == 0 {
		return res, nil
	}

	for i := 0; i < opts.NumPosts; i++ {
		author := users[f.rnd.Intn(len(users))]
		post := f.BuildPost(author, users)
		if err := s.posts.Create(ctx, post); err != nil {
			return res, fmt.Errorf("creating post: %w", err)
		}
		res.Posts++
	}
	s.logger.Info("Seeded posts", slog.Int("posts", res.Posts))

	return res, nil
}
