package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/anonto42/simple-twitter/backend/pkg/logger"
	"github.com/joho/godotenv"
)

type Config struct {
	Port                    string
	Env                     string
	LogLevel                string
	FirebaseCredentialsPath string
	PostgresConnStr         string
	MongoURI                string
	MongoDatabase           string
	RedisAddr               string
	RedisPassword           string
	JWTSecret               string
	TokenTTL                time.Duration
	MetricsPort             string
	RateLimit               float64
	FanoutLimit             int
	TopUsersCacheTTL        time.Duration
}

// Load reads the configuration from the environment, after merging a .env
// file when one is present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.L.Info("No .env file found, assuming environment variables are set.")
	}

	cfg := &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "simple_twitter"),
		RedisAddr:               getEnv("REDIS_ADDR", ""),
		RedisPassword:           getEnv("REDIS_PASSWORD", ""),
		JWTSecret:               getEnv("JWT_SECRET", ""),
		TokenTTL:                getEnvDuration("TOKEN_TTL", 30*24*time.Hour),
		MetricsPort:             getEnv("METRICS_PORT", "9090"),
		RateLimit:               getEnvFloat("RATE_LIMIT", 20),
		FanoutLimit:             getEnvInt("FANOUT_LIMIT", 0),
		TopUsersCacheTTL:        getEnvDuration("TOP_USERS_CACHE_TTL", time.Minute),
	}

	if cfg.JWTSecret == "" && !cfg.IsProduction() {
		logger.L.Warn("JWT_SECRET not set, using an insecure development secret")
		cfg.JWTSecret = devJWTSecret
	}
	return cfg
}

const devJWTSecret = "insecure-dev-secret"

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set in production")

// Validate rejects configurations the server must not start with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" || (c.IsProduction() && c.JWTSecret == devJWTSecret) {
		return ErrMissingJWTSecret
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
