package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/api"
	intakeapi "github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/api/intake"
	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/config"
	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/integration/llm"
	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/pkg/validator"
	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/repository"
	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/telegram"
	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/usecase/followup"
	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/usecase/interview"
	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/usecase/record"
	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/usecase/validation"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
		zap.Int("questions", cfg.Questionnaire.Total()),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize repositories
	recordRepo := repository.NewRecordPostgres(db)
	csvStore := repository.NewRecordCSV(cfg.IntakeCSVPath, cfg.Questionnaire)
	logger.Info("Repositories initialized")

	// Initialize language model connector (with mock support)
	criteriaLLM, followUpLLM, recordLLM := buildLanguageModel(cfg, logger)

	// Initialize use cases
	criteriaValidator := validation.NewValidator(criteriaLLM, logger)
	followUpGenerator := followup.NewGenerator(followUpLLM, logger)

	interviewUC := interview.NewUsecase(cfg.Questionnaire, criteriaValidator, followUpGenerator, logger)
	recordUC := record.NewUsecase(cfg.Questionnaire, recordLLM, csvStore, recordRepo, logger)
	logger.Info("Use cases initialized")

	// Setup API handlers
	requestValidator := validator.NewValidator()
	dedupCache := gocache.New(cfg.DedupTTL, 2*cfg.DedupTTL)
	intakeHandler := intakeapi.NewHandler(interviewUC, recordUC, requestValidator, dedupCache)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(intakeHandler, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (telegram.Bot, *zap.Logger, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize repositories
	recordRepo := repository.NewRecordPostgres(db)
	chatStateRepo := repository.NewChatStatePostgres(db)
	csvStore := repository.NewRecordCSV(cfg.IntakeCSVPath, cfg.Questionnaire)
	logger.Info("Repositories initialized")

	// Initialize language model connector (with mock support)
	criteriaLLM, followUpLLM, recordLLM := buildLanguageModel(cfg, logger)

	// Initialize use cases
	criteriaValidator := validation.NewValidator(criteriaLLM, logger)
	followUpGenerator := followup.NewGenerator(followUpLLM, logger)

	interviewUC := interview.NewUsecase(cfg.Questionnaire, criteriaValidator, followUpGenerator, logger)
	recordUC := record.NewUsecase(cfg.Questionnaire, recordLLM, csvStore, recordRepo, logger)
	logger.Info("Use cases initialized")

	// Initialize Telegram bot
	bot, err := telegram.NewBot(&cfg.TelegramCfg, chatStateRepo, interviewUC, recordUC, logger)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, nil
}

// buildLanguageModel returns the language model connector behind each
// consumer interface, mocked when ENABLE_MOCKS is set.
func buildLanguageModel(cfg *config.Config, logger *zap.Logger) (validation.LanguageModel, followup.LanguageModel, record.LanguageModel) {
	if cfg.EnableMocks {
		logger.Info("Using mock connector for the language model")
		mock := llm.NewMockConnector(logger)
		return mock, mock, mock
	}

	logger.Info("Using real connector for the language model",
		zap.String("model", cfg.LLMConnectorCfg.Model),
	)
	conn := llm.NewConnector(cfg.LLMConnectorCfg, logger)
	return conn, conn, conn
}
