package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application
type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string
	DatabaseURL    string
	DBMaxConns     int
	DBMinConns     int
	RedisURL       string
	JWTSecret      string
	Environment    string

	// Scoring knobs, fixed per event deployment.
	JuryWeight    float64
	PeerWeight    float64
	PointsPerStar float64
	PrizeSchedule []int // prize points by final rank; ranks beyond the list get 0
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		DBMaxConns:     getIntEnv("DB_MAX_CONNS", 10),
		DBMinConns:     getIntEnv("DB_MIN_CONNS", 2),
		RedisURL:       getEnv("REDIS_URL", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		Environment:    getEnv("ENVIRONMENT", "production"),
		JuryWeight:     getFloatEnv("JURY_WEIGHT", 0.7),
		PeerWeight:     getFloatEnv("PEER_WEIGHT", 0.3),
		PointsPerStar:  getFloatEnv("POINTS_PER_STAR", 10),
		PrizeSchedule:  parsePrizeSchedule(getEnv("PRIZE_SCHEDULE", "2000,1000,500")),
	}

	if sum := cfg.JuryWeight + cfg.PeerWeight; sum < 0.999 || sum > 1.001 {
		return nil, fmt.Errorf("JURY_WEIGHT and PEER_WEIGHT must sum to 1, got %.3f", sum)
	}

	return cfg, nil
}

// PrizeForRank returns the prize points for a 1-based final rank.
func (c *Config) PrizeForRank(rank int) int {
	if rank < 1 || rank > len(c.PrizeSchedule) {
		return 0
	}
	return c.PrizeSchedule[rank-1]
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// getFloatEnv gets a float environment variable with a fallback value
func getFloatEnv(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

// parseOrigins parses comma-separated origins into a slice
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// parsePrizeSchedule parses a comma-separated list of prize points by rank.
// Malformed entries are skipped rather than failing startup.
func parsePrizeSchedule(schedule string) []int {
	parts := strings.Split(schedule, ",")
	result := make([]int, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		if parsed, err := strconv.Atoi(trimmed); err == nil {
			result = append(result, parsed)
		}
	}

	return result
}
