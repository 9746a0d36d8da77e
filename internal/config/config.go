package config

import (
	"os"
	"strconv"
	"time"

	"chat_app/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Room limits
	MaxRoomCost         int64
	MaxParticipantLimit int

	// API rate limiting
	APIRateLimit  int
	APIRateWindow time.Duration
}

// Load reads configuration from the environment (.env supported)
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	// Room limits (defaults)
	maxRoomCost := int64(100000)
	if v := os.Getenv("MAX_ROOM_COST"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			maxRoomCost = n
		}
	}

	maxParticipantLimit := 500
	if v := os.Getenv("MAX_PARTICIPANT_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxParticipantLimit = n
		}
	}

	apiRateLimit := 60
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateLimit = n
		}
	}

	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	return &Config{
		AppPort:             port,
		DatabaseURL:         dbURL,
		JWTSecret:           jwtSecret,
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:             redisDB,
		MaxRoomCost:         maxRoomCost,
		MaxParticipantLimit: maxParticipantLimit,
		APIRateLimit:        apiRateLimit,
		APIRateWindow:       apiRateWindow,
	}
}
