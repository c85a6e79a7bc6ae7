package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Lookup   LookupConfig
	App      AppConfig
}

type ServerConfig struct {
	Port string
	// AllowOrigins is a comma-separated CORS allowlist for the SPA.
	AllowOrigins string
}

type UpstreamConfig struct {
	// DictionaryURL is the primary crossword dictionary endpoint.
	DictionaryURL string
	// CacheProxyURL is the optional secondary caching endpoint. Empty
	// means the service talks to the dictionary directly.
	CacheProxyURL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

type LookupConfig struct {
	MaxQueryLen       int
	CacheTTL          time.Duration
	EmptyTTL          time.Duration
	DictionaryTimeout time.Duration
	ProxyTimeout      time.Duration
	WarmTopN          int
	WarmSpec          string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
	APIKey      string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		},
		Upstream: UpstreamConfig{
			DictionaryURL: getEnv("DICTIONARY_URL", "https://www.mijnwoordenboek.nl/puzzelwoordenboek"),
			CacheProxyURL: getEnv("CACHE_PROXY_URL", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "woordzoeker"),
		},
		Lookup: LookupConfig{
			MaxQueryLen:       getEnvAsInt("LOOKUP_MAX_QUERY_LEN", 64),
			CacheTTL:          time.Duration(getEnvAsInt("LOOKUP_CACHE_TTL_MIN", 720)) * time.Minute,
			EmptyTTL:          time.Duration(getEnvAsInt("LOOKUP_EMPTY_TTL_MIN", 15)) * time.Minute,
			DictionaryTimeout: time.Duration(getEnvAsInt("LOOKUP_DICT_TIMEOUT_SEC", 10)) * time.Second,
			ProxyTimeout:      time.Duration(getEnvAsInt("LOOKUP_PROXY_TIMEOUT_SEC", 3)) * time.Second,
			WarmTopN:          getEnvAsInt("WARM_TOP_N", 50),
			WarmSpec:          getEnv("WARM_CRON_SPEC", "0 0 3 * * *"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			APIKey:      getEnv("API_KEY", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Upstream.DictionaryURL == "" {
		return fmt.Errorf("DICTIONARY_URL is required")
	}

	if c.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}

	if c.Lookup.MaxQueryLen <= 0 {
		return fmt.Errorf("LOOKUP_MAX_QUERY_LEN must be positive")
	}

	return nil
}

// StatsEnabled reports whether a stats database was configured at all.
func (c *Config) StatsEnabled() bool {
	return c.Database.Host != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}
