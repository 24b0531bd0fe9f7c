package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"plaintext/internal/logger"
)

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type Config struct {
	ServerPort     int
	DB             DB
	MigrationsPath string

	// JWTSecret is base64 text; the decoded key must be at least 256 bits.
	JWTSecret     string
	TokenTTL      time.Duration
	PolicyVersion string

	CORSAllowedOrigins []string
	RequestTimeout     time.Duration
	LogLevel           string
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

// parseMillis reads a millisecond count, the unit the token lifetime is configured in.
func parseMillis(value string, fallback time.Duration) time.Duration {
	ms, err := strconv.ParseInt(value, 10, 64)
	if err != nil || ms <= 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "plaintext"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		logger.Warning(".env file not found, using environment variables")
	}

	return &Config{
		ServerPort:         getEnvAsInt("SERVER_PORT", 8080),
		DB:                 LoadDB(),
		MigrationsPath:     getEnv("MIGRATIONS_PATH", "migrations/001_create_tables.sql"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		TokenTTL:           parseMillis(getEnv("JWT_EXPIRATION_MS", "86400000"), 24*time.Hour),
		PolicyVersion:      getEnv("POLICY_VERSION", "1.0"),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
		RequestTimeout:     parseDuration(getEnv("REQUEST_TIMEOUT", "10s"), 10*time.Second),
		LogLevel:           getEnv("LOG_LEVEL", "INFO"),
	}
}
