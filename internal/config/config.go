package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultGatewayTimeout = 10 * time.Second

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string

	// StoreURL is the public base URL of the store, always ending in "/".
	StoreURL          string
	PrimaryCurrencyID uint
	GatewayTimeout    time.Duration

	JWTSecret         string
	InternalSecretKey string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:            os.Getenv("DB_HOST"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBPort:            os.Getenv("DB_PORT"),
		AppPort:           os.Getenv("APP_PORT"),
		AppEnv:            os.Getenv("APP_ENV"),
		StoreURL:          normalizeStoreURL(os.Getenv("STORE_URL")),
		PrimaryCurrencyID: parseUint(os.Getenv("PRIMARY_CURRENCY_ID")),
		GatewayTimeout:    parseDuration(os.Getenv("EWAY_HTTP_TIMEOUT"), defaultGatewayTimeout),
		JWTSecret:         os.Getenv("SECRET_KEY"),
		InternalSecretKey: os.Getenv("INTERNAL_SECRET_KEY"),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}

	return cfg
}

func normalizeStoreURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "/"
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	return raw
}

func parseUint(raw string) uint {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
