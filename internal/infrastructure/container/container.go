package container

import (
	"context"
	"fmt"

	"github.com/gdugdh24/cofounder-backend/internal/config"
	"github.com/gdugdh24/cofounder-backend/internal/delivery/http"
	"github.com/gdugdh24/cofounder-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/cofounder-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/cofounder-backend/internal/infrastructure/database"
	"github.com/gdugdh24/cofounder-backend/internal/infrastructure/gemini"
	"github.com/gdugdh24/cofounder-backend/internal/infrastructure/server"
	"github.com/gdugdh24/cofounder-backend/internal/repository/postgres"
	"github.com/gdugdh24/cofounder-backend/internal/repository/rediscache"
	"github.com/gdugdh24/cofounder-backend/internal/usecase/auth"
	"github.com/gdugdh24/cofounder-backend/internal/usecase/connection"
	"github.com/gdugdh24/cofounder-backend/internal/usecase/health"
	"github.com/gdugdh24/cofounder-backend/internal/usecase/interest"
	"github.com/gdugdh24/cofounder-backend/internal/usecase/onboarding"
	"github.com/gdugdh24/cofounder-backend/internal/usecase/pool"
	"github.com/gdugdh24/cofounder-backend/internal/usecase/profile"
	"github.com/gdugdh24/cofounder-backend/internal/usecase/tag"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Gemini *gemini.GeminiClient
	Logger *zap.Logger

	interestUseCase *interest.InterestUseCase
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis
	redisClient, err := database.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize Gemini Client. AI features are optional.
	var (
		geminiClient *gemini.GeminiClient
		assistant    profile.BioAssistant
		introWriter  connection.IntroWriter
	)
	if cfg.Gemini.APIKey == "" {
		logger.Info("GEMINI_API_KEY not set, AI features disabled")
	} else if geminiClient, err = gemini.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model); err != nil {
		logger.Warn("failed to initialize gemini client, AI features disabled", zap.Error(err))
		geminiClient = nil
	} else {
		assistant = geminiClient
		introWriter = geminiClient
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	interestRepo := postgres.NewInterestRepository(db)
	connectionRepo := postgres.NewConnectionRepository(db)
	tagRepo := rediscache.NewTagRepository(postgres.NewTagRepository(db), redisClient, cfg.Cache.TagTTL, logger)
	sessionRepo := rediscache.NewSessionRepository(redisClient)
	draftRepo := rediscache.NewDraftRepository(redisClient, cfg.Onboarding.DraftTTL)

	// Initialize use cases
	authUseCase := auth.NewAuthUseCase(
		userRepo,
		profileRepo,
		sessionRepo,
		cfg.JWT.Secret,
		cfg.JWT.Issuer,
		cfg.JWT.TTL,
	)

	onboardingUseCase := onboarding.NewOnboardingUseCase(
		draftRepo,
		profileRepo,
		tagRepo,
		logger,
	)

	profileUseCase := profile.NewProfileUseCase(
		profileRepo,
		tagRepo,
		connectionRepo,
		interestRepo,
		assistant,
		logger,
	)

	poolUseCase := pool.NewPoolUseCase(
		profileRepo,
		tagRepo,
		interestRepo,
		connectionRepo,
	)

	connectionUseCase := connection.NewConnectionUseCase(
		connectionRepo,
		profileRepo,
		tagRepo,
		introWriter,
		logger,
	)

	interestUseCase := interest.NewInterestUseCase(
		interestRepo,
		profileRepo,
		connectionRepo,
		tagRepo,
		connectionUseCase,
		logger,
	)

	tagUseCase := tag.NewTagUseCase(tagRepo)

	healthUseCase := health.NewHealthUseCase(
		database.NewPostgresChecker(db),
		database.NewRedisChecker(redisClient),
	)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	// Initialize router
	router := http.NewRouter(
		handler.NewAuthHandler(authUseCase),
		handler.NewOnboardingHandler(onboardingUseCase),
		handler.NewProfileHandler(profileUseCase),
		handler.NewPoolHandler(poolUseCase),
		handler.NewInterestHandler(interestUseCase),
		handler.NewConnectionHandler(connectionUseCase),
		handler.NewTagHandler(tagUseCase),
		handler.NewHealthHandler(healthUseCase),
		authMiddleware,
		logger,
	)

	// Initialize server
	srv := server.NewServer(&cfg.Server, router.Setup(), logger)

	return &Container{
		Config:          cfg,
		DB:              db,
		Redis:           redisClient,
		Server:          srv,
		Gemini:          geminiClient,
		Logger:          logger,
		interestUseCase: interestUseCase,
	}, nil
}

// Close waits for background intro generation, then closes all connections
func (c *Container) Close() error {
	c.interestUseCase.Wait()

	if c.Gemini != nil {
		if err := c.Gemini.Close(); err != nil {
			c.Logger.Warn("error closing gemini client", zap.Error(err))
		}
	}

	// Close Redis
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("error closing redis", zap.Error(err))
		}
	}

	// Close database
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
