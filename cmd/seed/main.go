// Command seed fills the configured MongoDB database with fake developers,
// profiles and posts.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/theleywin/devconnector/src/config"
	"github.com/theleywin/devconnector/src/lib"
	"github.com/theleywin/devconnector/src/repository"
	"github.com/theleywin/devconnector/src/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numPosts := flag.Int("posts", 60, "Number of posts to create")
	shouldClean := flag.Bool("clean", false, "Drop users, profiles and posts before seeding")
	fast := flag.Bool("fast", false, "Skip bcrypt; seeded users will not be able to log in")
	randSeed := flag.Int64("seed", 0, "Random seed for reproducible data (0 = random)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger := lib.NewLogger(cfg.Env, cfg.LogLevel)

	if cfg.IsProduction() {
		logger.Error("Refusing to seed a production database")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	store, err := lib.ConnectDB(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("Failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer store.Close(context.Background())

	if *shouldClean {
		for _, name := range []string{lib.UsersCollection, lib.ProfilesCollection, lib.PostsCollection} {
			if err := store.DB.Collection(name).Drop(ctx); err != nil {
				logger.Error("Cleanup failed", slog.String("collection", name), slog.Any("error", err))
				os.Exit(1)
			}
		}
		logger.Info("Dropped existing collections")
	}

	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Error("Failed to create indexes", slog.Any("error", err))
		os.Exit(1)
	}

	s := seed.NewSeeder(
		repository.NewUserRepository(store.DB),
		repository.NewProfileRepository(store.DB),
		repository.NewPostRepository(store.DB),
		logger,
	)
	res, err := s.Run(ctx, seed.Options{
		NumUsers:   *numUsers,
		NumPosts:   *numPosts,
		Seed:       *randSeed,
		SkipBcrypt: *fast,
	})
	if err != nil {
		logger.Error("Seeding failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("Database seeded",
		slog.Int("users", res.Users),
		slog.Int("profiles", res.Profiles),
		slog.Int("posts", res.Posts),
		slog.String("password", seed.DefaultPassword),
	)
}
