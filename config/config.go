package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

const (
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type Config struct {
	Port          string
	GinMode       string
	StoreDriver   string
	RedisURI      string
	RedisPassword string
	RedisDB       int
	PostgresDSN   string
	SQLitePath    string
	JWTSecret     string
	PageSize      int
}

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: No .env file found, using environment variables")
	}
}

func GetEnv(key string, fallback string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	return val
}

func GetEnvInt(key string, fallback int) (int, error) {
	raw := GetEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

// DefaultSQLitePath is used when SQLITE_PATH is unset.
func DefaultSQLitePath() string {
	return filepath.Join(xdg.DataHome, "polls", "polls.db")
}

// Load reads the environment into a Config. Call LoadEnv first to pick up a .env file.
func Load() (Config, error) {
	cfg := Config{
		Port:          GetEnv("PORT", "8080"),
		GinMode:       GetEnv("GIN_MODE", ""),
		StoreDriver:   strings.ToLower(GetEnv("STORE_DRIVER", DriverRedis)),
		RedisURI:      GetEnv("REDIS_URI", "localhost:6379"),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		PostgresDSN:   GetEnv("POSTGRES_DSN", ""),
		SQLitePath:    GetEnv("SQLITE_PATH", DefaultSQLitePath()),
		JWTSecret:     GetEnv("JWT_SECRET", ""),
	}

	var err error
	if cfg.RedisDB, err = GetEnvInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.PageSize, err = GetEnvInt("PAGE_SIZE", 5); err != nil {
		return Config{}, err
	}
	if cfg.PageSize <= 0 {
		return Config{}, fmt.Errorf("PAGE_SIZE must be positive, got %d", cfg.PageSize)
	}

	switch cfg.StoreDriver {
	case DriverRedis, DriverSQLite, DriverMemory:
	case DriverPostgres:
		if cfg.PostgresDSN == "" {
			return Config{}, fmt.Errorf("POSTGRES_DSN is required for the postgres driver")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORE_DRIVER %q (valid: redis, postgres, sqlite, memory)", cfg.StoreDriver)
	}

	return cfg, nil
}
