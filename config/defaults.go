// Package config provides centralized default values for WashLink
package config

import (
	"os"
	"strconv"
	"time"
)

// getEnvInt reads environment variable with fallback to default
func getEnvInt(key string, defaultValue int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvString reads environment variable with string fallback
func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

// getEnvFloat reads environment variable as float with fallback
func getEnvFloat(key string, defaultValue float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Server Configuration
var (
	Port = getEnvString("PORT", "8080")
)

// Database Pool
var (
	DBMaxOpenConns           = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns           = getEnvInt("DB_MAX_IDLE_CONNS", 3)
	DBConnMaxLifetimeMinutes = getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)
)

// Order Configuration
var (
	DeliveryFee = getEnvFloat("ORDER_DELIVERY_FEE", 15.00)
)

// Auth Configuration
var (
	JWTLifetime = time.Duration(getEnvInt("JWT_LIFETIME_HOURS", 24)) * time.Hour
)

// Listing defaults
var (
	DefaultPageLimit = getEnvInt("DEFAULT_PAGE_LIMIT", 20)
	MaxPageLimit     = getEnvInt("MAX_PAGE_LIMIT", 100)
)
