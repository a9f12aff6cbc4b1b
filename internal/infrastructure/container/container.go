package container

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/linkora-app/linkora-backend/internal/config"
	deliveryhttp "github.com/linkora-app/linkora-backend/internal/delivery/http"
	"github.com/linkora-app/linkora-backend/internal/delivery/http/handler"
	"github.com/linkora-app/linkora-backend/internal/delivery/http/middleware"
	"github.com/linkora-app/linkora-backend/internal/infrastructure/database"
	"github.com/linkora-app/linkora-backend/internal/infrastructure/gemini"
	"github.com/linkora-app/linkora-backend/internal/infrastructure/messaging"
	"github.com/linkora-app/linkora-backend/internal/infrastructure/server"
	"github.com/linkora-app/linkora-backend/internal/infrastructure/storage"
	"github.com/linkora-app/linkora-backend/internal/logger"
	"github.com/linkora-app/linkora-backend/internal/repository/postgres"
	"github.com/linkora-app/linkora-backend/internal/repository/redisrepo"
	"github.com/linkora-app/linkora-backend/internal/usecase/auth"
	"github.com/linkora-app/linkora-backend/internal/usecase/matchmaking"
	"github.com/linkora-app/linkora-backend/internal/usecase/notification"
	"github.com/linkora-app/linkora-backend/internal/usecase/profile"
	"github.com/linkora-app/linkora-backend/internal/usecase/swipe"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Log    *slog.Logger

	DB          *sqlx.DB
	RedisClient *redis.Client
	Bus         *messaging.NotificationBus
	Gemini      *gemini.Client

	Router *gin.Engine
	Server *server.Server
}

// NewContainer creates and wires all application dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	log := logger.New(cfg.Logging.Level)

	// Infrastructure
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	bus, err := messaging.NewNotificationBus(&cfg.NATS, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	minioClient, err := storage.NewClient(&cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	avatarStorage := storage.NewAvatarStorage(minioClient, cfg.Storage.Bucket)

	var geminiClient *gemini.Client
	if cfg.GeminiAPIKey != "" {
		geminiClient, err = gemini.NewClient(cfg.GeminiAPIKey)
		if err != nil {
			log.Warn("gemini client unavailable, intro suggestions disabled", "error", err)
			geminiClient = nil
		}
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	swipeRepo := postgres.NewSwipeRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	txRunner := postgres.NewTxRunner(db)

	radiusStore := redisrepo.NewRadiusStore(
		redisClient,
		cfg.Matchmaking.DefaultRadiusKm,
		cfg.Matchmaking.RadiusIncrementKm,
		cfg.Matchmaking.MaxRadiusKm,
	)
	candidateCache := redisrepo.NewCandidateCache(redisClient, cfg.Matchmaking.CacheTTL)

	// Use cases
	authUseCase := auth.NewAuthUseCase(userRepo, profileRepo, cfg.JWT.AccessSecret, cfg.JWT.AccessExpiryMin)
	profileUseCase := profile.NewProfileUseCase(profileRepo, notificationRepo, avatarStorage, log)
	matchmakingUseCase := matchmaking.NewMatchmakingUseCase(
		profileRepo,
		swipeRepo,
		radiusStore,
		candidateCache,
		cfg.Matchmaking,
		log,
	)

	var suggester swipe.IntroSuggester
	if geminiClient != nil {
		suggester = geminiClient
	}
	swipeUseCase := swipe.NewSwipeUseCase(txRunner, swipeRepo, notificationRepo, profileRepo, bus, suggester, log)

	notificationUseCase := notification.NewNotificationUseCase(notificationRepo, bus, log)

	// Delivery
	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	authHandler := handler.NewAuthHandler(authUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase)
	matchmakingHandler := handler.NewMatchmakingHandler(matchmakingUseCase)
	swipeHandler := handler.NewSwipeHandler(swipeUseCase)
	notificationHandler := handler.NewNotificationHandler(notificationUseCase)

	router := deliveryhttp.NewRouter(
		authHandler,
		profileHandler,
		matchmakingHandler,
		swipeHandler,
		notificationHandler,
		authMiddleware,
	).Setup()

	srv := server.NewServer(&cfg.Server, router, log)

	return &Container{
		Config:      cfg,
		Log:         log,
		DB:          db,
		RedisClient: redisClient,
		Bus:         bus,
		Gemini:      geminiClient,
		Router:      router,
		Server:      srv,
	}, nil
}

// Close releases all resources held by the container
func (c *Container) Close() error {
	if c.Gemini != nil {
		c.Gemini.Close()
	}
	if c.Bus != nil {
		c.Bus.Close()
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			return err
		}
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
