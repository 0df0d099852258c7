package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/entity"
	pkgRetry "github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR,notEmpty"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// Language model service
	LLMConnectorCfg LLMConnectorConfig `envPrefix:"LLM_"`

	// Output CSV file the completed intake rows are appended to
	IntakeCSVPath string `env:"INTAKE_CSV_PATH" envDefault:"data/intake.csv"`

	// Questionnaire file (JSON); built-in defaults are used when missing
	QuestionnairePath string `env:"QUESTIONNAIRE_PATH" envDefault:"internal/config/questions.json"`

	// Request deduplication window for replayed advance calls
	DedupTTL time.Duration `env:"DEDUP_TTL" envDefault:"10m"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL,notEmpty"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Telegram bot configuration (used by cmd/telegram-bot only)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Loaded questionnaire (from JSON file or defaults)
	Questionnaire *entity.Questionnaire

	// Environment (set from flag, not from env var)
	Environment string
}

// LLMConnectorConfig points at an OpenAI-compatible chat-completions service.
// Both api.openai.com and a local Ollama server expose this surface.
type LLMConnectorConfig struct {
	HTTPClientConfig
	Model       string               `env:"MODEL,notEmpty"`
	Temperature float64              `env:"TEMPERATURE" envDefault:"0.2"`
	Retry       pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// TelegramConfig holds Telegram bot configuration.
type TelegramConfig struct {
	BotToken           string `env:"BOT_TOKEN,notEmpty"`
	UpdateTimeout      int    `env:"UPDATE_TIMEOUT" envDefault:"30"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	RateLimitBurst     int    `env:"RATE_LIMIT_BURST" envDefault:"5"`
	ShutdownTimeout    int    `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL,notEmpty"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Missing env file is fine; containerized environments set variables
	// externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	questionnaire, err := LoadQuestionnaire(cfg.QuestionnairePath)
	if err != nil {
		return nil, fmt.Errorf("load questionnaire: %w", err)
	}
	cfg.Questionnaire = questionnaire

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		return fmt.Errorf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns)
	}
	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns)
	}
	if cfg.DedupTTL <= 0 {
		return fmt.Errorf("DEDUP_TTL must be positive, got %s", cfg.DedupTTL)
	}
	if cfg.LLMConnectorCfg.Temperature < 0 || cfg.LLMConnectorCfg.Temperature > 2 {
		return fmt.Errorf("LLM_TEMPERATURE must be between 0 and 2, got %f", cfg.LLMConnectorCfg.Temperature)
	}
	return nil
}

// LoadQuestionnaire reads the question table from a JSON file. When the file
// does not exist the built-in default questionnaire is used; a present but
// broken file is an error, never silently replaced.
func LoadQuestionnaire(path string) (*entity.Questionnaire, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Printf("Warning: questionnaire file not found at %s, using built-in questions\n", path)
		q := DefaultQuestionnaire()
		return q, q.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questionnaire file: %w", err)
	}

	var questionnaire entity.Questionnaire
	if err := json.Unmarshal(data, &questionnaire); err != nil {
		return nil, fmt.Errorf("parse questionnaire JSON: %w", err)
	}

	if err := questionnaire.Validate(); err != nil {
		return nil, err
	}

	fmt.Printf("Loaded %d questions from %s\n", questionnaire.Total(), path)
	return &questionnaire, nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
