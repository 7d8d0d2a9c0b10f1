package container

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gdugdh24/purposematch/internal/compatibility"
	"github.com/gdugdh24/purposematch/internal/config"
	"github.com/gdugdh24/purposematch/internal/delivery/http"
	"github.com/gdugdh24/purposematch/internal/delivery/http/handler"
	"github.com/gdugdh24/purposematch/internal/delivery/http/middleware"
	"github.com/gdugdh24/purposematch/internal/infrastructure/database"
	"github.com/gdugdh24/purposematch/internal/infrastructure/events"
	"github.com/gdugdh24/purposematch/internal/infrastructure/gemini"
	"github.com/gdugdh24/purposematch/internal/infrastructure/lock"
	"github.com/gdugdh24/purposematch/internal/infrastructure/metrics"
	"github.com/gdugdh24/purposematch/internal/infrastructure/server"
	"github.com/gdugdh24/purposematch/internal/narrative"
	"github.com/gdugdh24/purposematch/internal/repository/postgres"
	"github.com/gdugdh24/purposematch/internal/usecase/icebreaker"
	"github.com/gdugdh24/purposematch/internal/usecase/matching"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	DB       *sqlx.DB
	Redis    *redis.Client
	Producer *events.Producer
	Gemini   *gemini.GeminiClient
	Matching *matching.Service
	Server   *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (_ *Container, err error) {
	c := &Container{Config: cfg, Logger: logger}
	defer func() {
		if err != nil {
			_ = c.Close()
		}
	}()

	// Initialize database
	c.DB, err = database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(ctx, c.DB.DB); err != nil {
			return nil, err
		}
		logger.Info("database migrations applied")
	}

	// Initialize Redis
	c.Redis, err = database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	calculator, err := newCalculator(&cfg.Matching)
	if err != nil {
		return nil, err
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(c.DB)
	matchRepo := postgres.NewMatchRepository(c.DB)

	var locker matching.Locker = lock.NoopLocker{}
	if c.Redis != nil {
		locker = lock.NewRedisLocker(c.Redis, "", logger)
	} else {
		logger.Warn("redis is not configured, generation lock is disabled")
	}

	var publisher matching.Publisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled() {
		c.Producer = events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		publisher = c.Producer
	}

	c.Matching = matching.NewService(
		userRepo,
		matchRepo,
		calculator,
		narrative.NewGenerator(),
		matchingConfig(&cfg.Matching),
		logger.Named("matching"),
		matching.WithLocker(locker),
		matching.WithPublisher(publisher),
		matching.WithRecorder(metrics.NewRecorder()),
	)

	// Initialize Gemini Client; AI icebreakers are optional
	var ai icebreaker.Generator
	if cfg.GeminiAPIKey != "" {
		c.Gemini, err = gemini.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			logger.Warn("failed to initialize gemini client, using built-in icebreakers", zap.Error(err))
			c.Gemini, err = nil, nil
		} else {
			ai = c.Gemini
		}
	}
	icebreakerUseCase := icebreaker.NewUseCase(userRepo, matchRepo, ai, logger.Named("icebreaker"))

	router := http.NewRouter(
		handler.NewMatchHandler(c.Matching, icebreakerUseCase),
		middleware.NewAuthMiddleware(cfg.JWT.AccessSecret),
		logger,
	)

	c.Server = server.NewServer(&cfg.Server, router.Setup(), logger)

	return c, nil
}

func newCalculator(cfg *config.MatchingConfig) (*compatibility.Calculator, error) {
	weights, err := cfg.Weights()
	if err != nil {
		return nil, err
	}
	calculator, err := compatibility.NewCalculator(compatibility.WithWeights(weights))
	if err != nil {
		return nil, fmt.Errorf("failed to build calculator: %w", err)
	}
	return calculator, nil
}

func matchingConfig(cfg *config.MatchingConfig) matching.Config {
	return matching.Config{
		DefaultLimit:     cfg.DefaultLimit,
		MaxLimit:         cfg.MaxLimit,
		MinScore:         cfg.MinScore,
		MaxCandidates:    cfg.MaxCandidates,
		RequireVerified:  cfg.RequireVerified,
		PrefilterCountry: cfg.PrefilterCountry,
		Concurrency:      cfg.Concurrency,
		Timeout:          cfg.Timeout,
		LockTTL:          cfg.LockTTL,
		MaxRetries:       uint64(max(cfg.MaxRetries, 0)),
		RetryBaseDelay:   cfg.RetryBaseDelay,
	}
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Producer != nil {
		if err := c.Producer.Close(); err != nil {
			c.Logger.Error("failed to close kafka producer", zap.Error(err))
		}
	}

	if c.Gemini != nil {
		if err := c.Gemini.Close(); err != nil {
			c.Logger.Error("failed to close gemini client", zap.Error(err))
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Error("failed to close redis", zap.Error(err))
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
