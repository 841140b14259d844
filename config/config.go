package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultTokenSecret = "your-very-strong-scorer-secret"

type Config struct {
	App struct {
		Env         string `env:"APP_ENV"      envDefault:"development"`
		Port        string `env:"PORT"         envDefault:"8088"`
		FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
		LogLevel    string `env:"LOG_LEVEL"    envDefault:"info"`
	}
	DB struct {
		Host     string `env:"DB_HOST"     envDefault:"localhost"`
		Port     string `env:"DB_PORT"     envDefault:"5432"`
		User     string `env:"DB_USER"     envDefault:"postgres"`
		Password string `env:"DB_PASSWORD" envDefault:"password"`
		Name     string `env:"DB_NAME"     envDefault:"crease_db"`
		SSLMode  string `env:"DB_SSLMODE"  envDefault:"disable"`
	}
	Redis struct {
		Addr     string `env:"REDIS_ADDR"     envDefault:"localhost:6379"`
		Password string `env:"REDIS_PASSWORD"`
		DB       int    `env:"REDIS_DB"       envDefault:"0"`
	}
	ScorerToken struct {
		Secret      string `env:"SCORER_TOKEN_SECRET"`
		ExpiryHours int    `env:"SCORER_TOKEN_EXPIRY_HOURS" envDefault:"12"`
	}
	Transfer struct {
		TTLMinutes      int     `env:"TRANSFER_CODE_TTL_MINUTES" envDefault:"15"`
		JanitorSchedule string  `env:"TRANSFER_JANITOR_SCHEDULE" envDefault:"@every 1m"`
		ClaimRPS        float64 `env:"TRANSFER_CLAIM_RPS"        envDefault:"1"`
		ClaimBurst      int     `env:"TRANSFER_CLAIM_BURST"      envDefault:"5"`
	}
	PersistTimeoutSeconds int    `env:"PERSIST_TIMEOUT_SECONDS" envDefault:"5"`
	ScoringRulesPath      string `env:"SCORING_RULES_PATH"      envDefault:"config/scoring_rules.yaml"`
}

// TokenExpiry is the lifetime of a scorer token.
func (c *Config) TokenExpiry() time.Duration {
	return time.Duration(c.ScorerToken.ExpiryHours) * time.Hour
}

// TransferTTL is how long a transfer code stays redeemable.
func (c *Config) TransferTTL() time.Duration {
	return time.Duration(c.Transfer.TTLMinutes) * time.Minute
}

// PersistTimeout bounds one snapshot write.
func (c *Config) PersistTimeout() time.Duration {
	return time.Duration(c.PersistTimeoutSeconds) * time.Second
}

// Global DB instance, accessible after ConnectDB() is called via Initialize.
var DB *gorm.DB

// Global AppConfig instance, accessible after LoadConfig() is called via Initialize.
var appConfig *Config
var once sync.Once

// LoadConfig loads configuration from environment variables into the Config struct.
func LoadConfig() (*Config, error) {
	// It's okay if .env doesn't exist; production sets env vars directly.
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, relying on system environment variables")
	}

	cfg := &Config{}
	var err error

	// --- App Configuration ---
	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.Port = getEnv("PORT", "8088")
	cfg.App.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")
	cfg.App.LogLevel = getEnv("LOG_LEVEL", "info")

	// --- Database Configuration ---
	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "password")
	cfg.DB.Name = getEnv("DB_NAME", "crease_db")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	// --- Redis Configuration ---
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	if cfg.Redis.DB, err = getEnvAsInt("REDIS_DB", 0); err != nil {
		return nil, err
	}

	// --- Scorer token ---
	cfg.ScorerToken.Secret = getEnv("SCORER_TOKEN_SECRET", defaultTokenSecret)
	if cfg.ScorerToken.ExpiryHours, err = getEnvAsInt("SCORER_TOKEN_EXPIRY_HOURS", 12); err != nil {
		return nil, err
	}

	// --- Transfer codes ---
	if cfg.Transfer.TTLMinutes, err = getEnvAsInt("TRANSFER_CODE_TTL_MINUTES", 15); err != nil {
		return nil, err
	}
	cfg.Transfer.JanitorSchedule = getEnv("TRANSFER_JANITOR_SCHEDULE", "@every 1m")
	if cfg.Transfer.ClaimRPS, err = getEnvAsFloat("TRANSFER_CLAIM_RPS", 1); err != nil {
		return nil, err
	}
	if cfg.Transfer.ClaimBurst, err = getEnvAsInt("TRANSFER_CLAIM_BURST", 5); err != nil {
		return nil, err
	}

	if cfg.PersistTimeoutSeconds, err = getEnvAsInt("PERSIST_TIMEOUT_SECONDS", 5); err != nil {
		return nil, err
	}
	cfg.ScoringRulesPath = getEnv("SCORING_RULES_PATH", "config/scoring_rules.yaml")

	if cfg.Transfer.TTLMinutes <= 0 {
		return nil, fmt.Errorf("TRANSFER_CODE_TTL_MINUTES must be positive, got %d", cfg.Transfer.TTLMinutes)
	}
	if cfg.PersistTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("PERSIST_TIMEOUT_SECONDS must be positive, got %d", cfg.PersistTimeoutSeconds)
	}

	if cfg.ScorerToken.Secret == defaultTokenSecret {
		logrus.Warn("using the default scorer token secret; set SCORER_TOKEN_SECRET for production")
	}
	if cfg.DB.Password == "password" && cfg.App.Env == "production" {
		logrus.Warn("using the default DB password in production; set DB_PASSWORD")
	}

	appConfig = cfg
	return cfg, nil
}

// ConnectDB establishes a connection to the database using the provided configuration.
// It sets the global DB variable.
func ConnectDB(dbCfg Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		dbCfg.DB.Host,
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Name,
		dbCfg.DB.Port,
		dbCfg.DB.SSLMode,
	)

	gormConfig := &gorm.Config{TranslateError: true}
	if dbCfg.App.Env == "development" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info) // Log SQL queries in development
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = gormDB
	logrus.WithField("host", dbCfg.DB.Host).Info("connected to database")
	return gormDB, nil
}

// Initialize loads all configurations and connects to the database.
// This should be called once at the start of the application.
func Initialize() error {
	var loadErr error
	once.Do(func() {
		loadedCfg, err := LoadConfig()
		if err != nil {
			loadErr = fmt.Errorf("failed to load configuration: %w", err)
			return
		}
		appConfig = loadedCfg

		if _, err = ConnectDB(*appConfig); err != nil {
			loadErr = fmt.Errorf("failed to connect to database during initialization: %w", err)
			return
		}
	})
	return loadErr
}

// GetConfig returns the loaded application configuration.
// It exits if the configuration has not been loaded yet.
func GetConfig() *Config {
	if appConfig == nil {
		logrus.Fatal("configuration not loaded; call config.Initialize() first")
	}
	return appConfig
}

// Helper function to get an environment variable or return a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as an integer or return a default value.
func getEnvAsInt(key string, fallback int) (int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return fallback, fmt.Errorf("env var %s: expected integer, got '%s'", key, valueStr)
	}
	return value, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return fallback, fmt.Errorf("env var %s: expected number, got '%s'", key, valueStr)
	}
	return value, nil
}
