package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const (
	DefaultPort       = "4000"
	DefaultMongoURI   = "mongodb://localhost:27017/flux_db"
	DefaultDatabase   = "flux_db"
	DefaultCollection = "applications"
)

// Config holds every setting the API server and the worker read from the environment.
type Config struct {
	Port           string
	AllowedOrigins string

	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	DBTimeout       time.Duration

	RedisURL        string
	RateLimitMax    int
	RateLimitWindow time.Duration

	JWTSecret         string
	AdminEmail        string
	AdminPasswordHash string

	LogLevel  string
	LogFormat string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	WorkerConcurrency int
}

// AdminAuthEnabled reports whether the listing endpoint is protected.
func (c *Config) AdminAuthEnabled() bool {
	return c.JWTSecret != ""
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, using process environment")
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("PORT", DefaultPort)
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("MONGODB_URI", DefaultMongoURI)
	v.SetDefault("MONGODB_DATABASE", "")
	v.SetDefault("MONGODB_COLLECTION", DefaultCollection)
	v.SetDefault("DB_TIMEOUT", "5s")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("RATE_LIMIT_MAX", 5)
	v.SetDefault("RATE_LIMIT_WINDOW", "1h")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("WORKER_CONCURRENCY", 5)
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:              strings.TrimSpace(v.GetString("PORT")),
		AllowedOrigins:    v.GetString("ALLOWED_ORIGINS"),
		MongoURI:          strings.TrimSpace(v.GetString("MONGODB_URI")),
		MongoDatabase:     strings.TrimSpace(v.GetString("MONGODB_DATABASE")),
		MongoCollection:   v.GetString("MONGODB_COLLECTION"),
		DBTimeout:         v.GetDuration("DB_TIMEOUT"),
		RedisURL:          strings.TrimSpace(v.GetString("REDIS_URL")),
		RateLimitMax:      v.GetInt("RATE_LIMIT_MAX"),
		RateLimitWindow:   v.GetDuration("RATE_LIMIT_WINDOW"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		AdminEmail:        strings.ToLower(strings.TrimSpace(v.GetString("ADMIN_EMAIL"))),
		AdminPasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
		LogLevel:          strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:         strings.ToLower(v.GetString("LOG_FORMAT")),
		SMTPHost:          v.GetString("SMTP_HOST"),
		SMTPPort:          v.GetInt("SMTP_PORT"),
		SMTPUser:          v.GetString("SMTP_USER"),
		SMTPPass:          v.GetString("SMTP_PASS"),
		SMTPFrom:          v.GetString("SMTP_FROM"),
		WorkerConcurrency: v.GetInt("WORKER_CONCURRENCY"),
	}

	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = databaseFromURI(cfg.MongoURI)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func databaseFromURI(uri string) string {
	cs, err := connstring.Parse(uri)
	if err != nil || cs.Database == "" {
		return DefaultDatabase
	}
	return cs.Database
}

func (c *Config) validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}
	if c.MongoURI == "" {
		return fmt.Errorf("MONGODB_URI must not be empty")
	}
	if c.MongoCollection == "" {
		return fmt.Errorf("MONGODB_COLLECTION must not be empty")
	}
	if c.DBTimeout <= 0 {
		return fmt.Errorf("DB_TIMEOUT must be positive")
	}
	if c.RateLimitMax <= 0 || c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX and RATE_LIMIT_WINDOW must be positive")
	}
	if c.WorkerConcurrency <= 0 {
		return fmt.Errorf("WORKER_CONCURRENCY must be positive")
	}
	return nil
}
