package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds runtime configuration loaded from the environment.
type Config struct {
	Port        string
	MongoURI    string
	DBName      string
	JWTSecret   string
	TokenExpiry int // hours

	// APNs push delivery
	APNSKeyPath    string
	APNSKeyID      string
	APNSTeamID     string
	APNSTopic      string
	APNSProduction bool

	// S3 media uploads
	AWSRegion string
	S3Bucket  string

	// Calendar bridge API
	CalendarAPIURL string
}

// LoadConfig reads configuration from .env (if present) and the environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, relying on environment variables")
	}

	expiry, err := strconv.Atoi(getEnv("TOKEN_EXPIRY_HOURS", "72"))
	if err != nil {
		expiry = 72
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "sync"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		TokenExpiry: expiry,

		APNSKeyPath:    getEnv("APNS_KEY_PATH", ""),
		APNSKeyID:      getEnv("APNS_KEY_ID", ""),
		APNSTeamID:     getEnv("APNS_TEAM_ID", ""),
		APNSTopic:      getEnv("APNS_TOPIC", "app.syncapp.sync"),
		APNSProduction: getEnv("APNS_PRODUCTION", "false") == "true",

		AWSRegion: getEnv("AWS_REGION", "us-east-1"),
		S3Bucket:  getEnv("S3_BUCKET", "sync-media"),

		CalendarAPIURL: getEnv("CALENDAR_API_URL", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
