// Package app assembles the Fiber application: middleware chain, services
// and routes.
package app

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/theleywin/devconnector/src/config"
	"github.com/theleywin/devconnector/src/controllers"
	"github.com/theleywin/devconnector/src/lib"
	"github.com/theleywin/devconnector/src/middleware"
	"github.com/theleywin/devconnector/src/repository"
	"github.com/theleywin/devconnector/src/routes"
	"github.com/theleywin/devconnector/src/services"
	"go.mongodb.org/mongo-driver/mongo"
)

const appName = "devconnector"

type Services struct {
	Tokens  middleware.TokenVerifier
	Auth    controllers.AuthService
	Profile controllers.ProfileService
	Post    controllers.PostService
	Github  controllers.GithubService
}

// NewServices wires the MongoDB repositories into the application services
func NewServices(cfg *config.Config, db *mongo.Database, metrics *middleware.Metrics) (*Services, error) {
	tokens, err := lib.NewTokenService(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	users := repository.NewUserRepository(db)
	profiles := repository.NewProfileRepository(db)
	posts := repository.NewPostRepository(db)

	github := services.NewGithubService(services.GithubConfig{
		BaseURL:      cfg.GithubAPIURL,
		ClientID:     cfg.GithubClientID,
		ClientSecret: cfg.GithubSecret,
	}, metrics.GithubLookups)

	return &Services{
		Tokens:  tokens,
		Auth:    services.NewAuthService(users, tokens),
		Profile: services.NewProfileService(profiles, users, posts),
		Post:    services.NewPostService(posts, users),
		Github:  github,
	}, nil
}

// New builds the HTTP app. storage backs the rate limiter; nil keeps the
// counters in memory.
func New(cfg *config.Config, logger *slog.Logger, svc *Services, metrics *middleware.Metrics, storage fiber.Storage) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      appName,
		ErrorHandler: errorHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	setupMiddleware(app, cfg, logger, metrics, storage)
	setupRoutes(app, svc, metrics)

	return app
}

func setupMiddleware(app *fiber.App, cfg *config.Config, logger *slog.Logger, metrics *middleware.Metrics, storage fiber.Storage) {
	app.Use(recover.New())

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	app.Use(metrics.Middleware())

	app.Use(helmet.New())

	app.Use(middleware.StructuredLogger(logger))

	// CORS runs before the limiter so rejected requests still carry CORS headers
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(splitOrigins(cfg.AllowedOrigins), ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, x-auth-token",
		MaxAge:       86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: time.Minute,
		Storage:    storage,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(lib.MessageResponse("Too many requests, please try again later."))
		},
	}))
}

func setupRoutes(app *fiber.App, svc *Services, metrics *middleware.Metrics) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("API running")
	})
	app.Get("/metrics", metrics.Handler())

	protect := middleware.ProtectRoute(svc.Tokens)

	routes.UserRoutes(app, controllers.NewUserController(svc.Auth))
	routes.AuthRoutes(app, controllers.NewAuthController(svc.Auth), protect)
	routes.ProfileRoutes(app, controllers.NewProfileController(svc.Profile, svc.Github), protect)
	routes.PostRoutes(app, controllers.NewPostController(svc.Post), protect)
}

// errorHandler renders errors that escape the handlers, such as unknown
// routes or recovered panics, in the {"msg": ...} shape
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error."

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		slog.ErrorContext(c.UserContext(), "Unhandled error", slog.String("path", c.Path()), slog.Any("error", err))
		msg = "Internal server error."
	}

	return c.Status(code).JSON(lib.MessageResponse(msg))
}

func splitOrigins(origins string) []string {
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
