package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// When true, runs on in-memory providers and storage (no PostgreSQL).
	DemoMode bool

	// JWT
	JWTSecret       string
	JWTAccessExpiry time.Duration

	// Identity sessions
	SessionExpiry time.Duration

	// Providers
	ProviderDelay time.Duration

	// Server
	Port        string
	CORSOrigins string

	// Widget/service catalog
	CatalogPath string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "homedash_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		DemoMode: parseBool(getEnv("DEMO_MODE", "false")),

		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTAccessExpiry: parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m"), 15*time.Minute),

		SessionExpiry: parseDuration(getEnv("SESSION_EXPIRY", "168h"), 168*time.Hour),

		ProviderDelay: parseDuration(getEnv("PROVIDER_DELAY", "250ms"), 250*time.Millisecond),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		CatalogPath: getEnv("CATALOG_PATH", ""),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return b
}
