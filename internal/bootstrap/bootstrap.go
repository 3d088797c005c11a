package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/scholarmatch/internal/app/controllers"
	appMigrations "github.com/yigit/scholarmatch/internal/app/migrations"
	appRepos "github.com/yigit/scholarmatch/internal/app/repositories"
	appRoutes "github.com/yigit/scholarmatch/internal/app/routes"
	appServices "github.com/yigit/scholarmatch/internal/app/services"
	"github.com/yigit/scholarmatch/internal/config"
	"github.com/yigit/scholarmatch/internal/db"
	appMiddleware "github.com/yigit/scholarmatch/internal/middleware"
	"github.com/yigit/scholarmatch/internal/pkg/ai"
	"github.com/yigit/scholarmatch/internal/pkg/cache"
	"github.com/yigit/scholarmatch/internal/pkg/events"
	"github.com/yigit/scholarmatch/internal/pkg/logger"
	"github.com/yigit/scholarmatch/internal/web"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos             *appRepos.Repositories
	ProfileService    appServices.ProfileService
	MatchService      appServices.MatchService
	ProfileController *appControllers.ProfileController
	WebController     *appControllers.WebController
	HealthController  *appControllers.HealthController
	Completer         ai.Completer
	Cache             *cache.RedisCache // nil when caching is disabled
	Publisher         events.Publisher
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// CONFIG_PATH overrides the default configs/config.yaml.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join("configs", "config.yaml")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.ConfigFromStrings(cfg.Logging.Level, cfg.Logging.Format))
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("dir", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
// Redis and RabbitMQ are optional: when unreachable the app runs without them.
func BuildDependencies(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	completer, err := ai.NewGeminiClient(ctx, ai.Config{
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.Model,
		Timeout: cfg.AI.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AI client: %w", err)
	}
	deps.Completer = completer
	lgr.Info().Str("model", completer.Model()).Dur("timeout", cfg.AI.Timeout).Msg("AI client configured")

	var profileOpts []appServices.ProfileServiceOption
	redisCache, err := cache.NewRedisCache(ctx, cache.Config{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})
	switch {
	case err != nil:
		lgr.Warn().Err(err).Msg("Redis unavailable, profile cache disabled")
	case redisCache == nil:
		lgr.Info().Msg("Profile cache disabled")
	default:
		deps.Cache = redisCache
		profileOpts = append(profileOpts, appServices.WithProfileCache(redisCache, cfg.Cache.ProfileTTL))
		lgr.Info().Str("addr", cfg.Cache.RedisAddr).Dur("ttl", cfg.Cache.ProfileTTL).Msg("Profile cache enabled")
	}

	deps.Publisher = events.NopPublisher{}
	if cfg.Events.RabbitMQURL != "" {
		publisher, err := events.NewAMQPPublisher(cfg.Events.RabbitMQURL, cfg.Events.Exchange)
		if err != nil {
			lgr.Warn().Err(err).Msg("RabbitMQ unavailable, events disabled")
		} else {
			deps.Publisher = publisher
			lgr.Info().Str("exchange", cfg.Events.Exchange).Msg("Event publishing enabled")
		}
	}

	deps.ProfileService = appServices.NewProfileService(deps.Repos.ProfileRepository, profileOpts...)
	deps.MatchService = appServices.NewMatchService(deps.Repos.MatchRepository, deps.Completer, deps.Publisher)

	deps.ProfileController = appControllers.NewProfileController(deps.ProfileService, deps.MatchService)
	deps.WebController = appControllers.NewWebController(deps.ProfileService, deps.MatchService)
	deps.HealthController = appControllers.NewHealthController(database.Pool)

	return deps, nil
}

// Close releases the optional cache and broker connections.
func (d *Dependencies) Close() {
	if d.Cache != nil {
		if err := d.Cache.Close(); err != nil {
			d.Logger.Warn().Err(err).Msg("Closing redis failed")
		}
	}
	if p, ok := d.Publisher.(*events.AMQPPublisher); ok {
		if err := p.Close(); err != nil {
			d.Logger.Warn().Err(err).Msg("Closing RabbitMQ failed")
		}
	}
}

// SetupRouter configures the Gin engine with middleware, templates and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger())

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)
	router.StaticFS("/static", web.Static())

	appRoutes.SetupRouter(router,
		deps.ProfileController,
		deps.WebController,
		deps.HealthController,
	)

	return router, nil
}
