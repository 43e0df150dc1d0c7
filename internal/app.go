// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	redis "github.com/redis/go-redis/v9"

	router "accrual-service/internal/api"
	"accrual-service/internal/api/handler"
	"accrual-service/internal/auth"
	"accrual-service/internal/config"
	"accrual-service/internal/events"
	"accrual-service/internal/repository"
	"accrual-service/internal/repository/postgres"
	"accrual-service/internal/service"
	"accrual-service/internal/util"
	"accrual-service/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB
	Redis  *redis.Client

	// Repositories
	AccountRepository repository.AccountRepository
	LedgerRepository  repository.LedgerRepository

	// Collaborators
	Resolver  auth.IdentityResolver
	Publisher events.Publisher

	// Services
	RewardService service.RewardService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()

	// 2. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	// 4. Initialize Repositories
	app.AccountRepository = postgres.NewAccountRepository(app.DB)
	app.LedgerRepository = postgres.NewLedgerRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// 5. Initialize identity resolution; the redis cache is optional and only
	// ever holds identity lookups, never account state.
	app.Resolver = auth.NewJWTResolver(app.Config.JWTSecret)
	if app.Config.RedisAddr != "" {
		client, err := auth.NewRedisClient(app.Config.RedisAddr, app.Config.RedisUser, app.Config.RedisPassword)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.Redis = client
		app.Resolver = auth.NewCachingResolver(app.Resolver, client, app.Config.AuthCacheTTL)
		app.Logger.Info("Identity cache enabled.", "addr", app.Config.RedisAddr)
	}

	// 6. Initialize settlement event publisher (optional)
	if len(app.Config.KafkaBrokers) > 0 {
		app.Publisher = events.NewKafkaPublisher(app.Config.KafkaBrokers, app.Config.KafkaTopic)
		app.Logger.Info("Settlement event publisher enabled.", "topic", app.Config.KafkaTopic)
	} else {
		app.Publisher = events.NopPublisher{}
	}

	// 7. Initialize Services
	// Pass the concrete db.BeginTx, db.CommitTx, db.RollbackTx functions from pkg/db
	app.RewardService = service.NewRewardService(
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.AccountRepository,
		app.LedgerRepository,
		app.Publisher,
		service.Settings{
			BaseRewardUnit:  app.Config.BaseRewardUnit,
			MaxDailyClaims:  app.Config.MaxDailyClaims,
			ClaimInterval:   app.Config.ClaimInterval,
			InitialPoints:   app.Config.InitialPoints,
			MiningRateBoost: app.Config.MiningRateBoost,
			AccrualPolicy:   app.Config.AccrualPolicy,
			ResetPolicy:     app.Config.ResetPolicy,
		},
		app.Logger,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.Logger.Info("Services initialized.")

	// 8. Initialize HTTP Handlers and Router
	rewardHandler := handler.NewRewardHandler(app.RewardService, app.Config.PendingBalanceMessage, app.Logger)
	app.HTTPHandler = router.NewRouter(rewardHandler, app.Resolver, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.Publisher != nil {
		if err := app.Publisher.Close(); err != nil {
			app.Logger.Error("Failed to close event publisher", "error", err)
		}
	}
	if app.Redis != nil {
		if err := app.Redis.Close(); err != nil {
			app.Logger.Error("Failed to close redis client", "error", err)
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
