package service

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all settings of the service. Values are taken from the
// process environment, optionally seeded from a .env file in the working
// directory.
type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	SMTPHost   string
	SMTPPort   string
	EmailUser  string
	EmailPass  string
	Port       string
	UploadDir  string
}

// LoadConfig reads the configuration from the environment. A missing .env
// file is not an error; plain environment variables are used then.
func LoadConfig() Config {
	godotenv.Load()
	return Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "hospital"),
		SMTPHost:   getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:   getEnv("SMTP_PORT", "587"),
		EmailUser:  os.Getenv("EMAIL_USER"),
		EmailPass:  os.Getenv("EMAIL_PASS"),
		Port:       getEnv("PORT", "3000"),
		UploadDir:  getEnv("UPLOAD_DIR", "uploads"),
	}
}

// getEnv returns the value of the environment variable or the fallback if it
// is unset or empty.
func getEnv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
