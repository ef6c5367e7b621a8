package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	Env                string
	PostgresConnStr    string
	MongoURI           string
	MongoDatabase      string
	AccessTokenSecret  string
	RefreshTokenSecret string
	EmailTokenSecret   string
	ForgotPassSecret   string
	SMTPHost           string
	SMTPPort           string
	SMTPUser           string
	SMTPPass           string
	MediaBucket        string
	FrontendURL        string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		PostgresConnStr:    getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:           getEnv("MONGO_URI", ""),
		MongoDatabase:      getEnv("MONGO_DATABASE", "conecta"),
		AccessTokenSecret:  getEnv("ACCESS_TOKEN_SECRET", "access-token-secret"),
		RefreshTokenSecret: getEnv("REFRESH_TOKEN_SECRET", "refresh-token-secret"),
		EmailTokenSecret:   getEnv("EMAIL_TOKEN_SECRET", "email-token-secret"),
		ForgotPassSecret:   getEnv("FORGOT_PASSWORD_SECRET", "forgot-password-secret"),
		SMTPHost:           getEnv("SMTP_HOST", ""),
		SMTPPort:           getEnv("SMTP_PORT", "587"),
		SMTPUser:           getEnv("SMTP_USER", ""),
		SMTPPass:           getEnv("SMTP_PASS", ""),
		MediaBucket:        getEnv("MEDIA_BUCKET", ""),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3000"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
