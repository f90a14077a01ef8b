package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI        string
	DBName          string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// Published fixed exchange rates, rupees per foreign unit.
	NPRPerUSD float64
	NPRPerINR float64

	// Legacy flat delivery rule for orders without a picked location.
	LegacyFreeThreshold float64
	LegacyFlatFee       float64
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:            getEnvOrDefault("MONGO_URI", ""),
		DBName:              getEnvOrDefault("DB_NAME", "localmart"),
		JWTSecret:           getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL:      getDurationEnv("ACCESS_TOKEN_TTL", 20, time.Minute),
		RefreshTokenTTL:     getDurationEnv("REFRESH_TOKEN_TTL", 7, 24*time.Hour),
		NPRPerUSD:           getFloatEnv("NPR_PER_USD", 133.5),
		NPRPerINR:           getFloatEnv("NPR_PER_INR", 1.6),
		LegacyFreeThreshold: getFloatEnv("LEGACY_FREE_DELIVERY_THRESHOLD", 500),
		LegacyFlatFee:       getFloatEnv("LEGACY_FLAT_DELIVERY_FEE", 50),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil && parsed > 0 {
			return parsed
		}
		log.Printf("ENV %s=%q ignored, using default %v", key, value, defaultValue)
	}
	return defaultValue
}
