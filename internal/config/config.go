package config

import (
	"os"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort   string
	MySQLDSN     string
	JWTSecret    string
	SMTPHost     string
	SMTPUser     string
	SMTPPassword string
	MailAddress  string
	AppURL       string
	AppEnv       string
	SwaggerHost  string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		MySQLDSN:     getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/app?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret:    getEnv("JWT_SECRET", "change-me"),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailAddress:  getEnv("MAIL_ADDRESS", "Wayfarer <noreply@wayfarer.local>"),
		AppURL:       getEnv("APP_URL", "http://localhost:8080"),
		AppEnv:       getEnv("APP_ENV", "development"),
		SwaggerHost:  os.Getenv("SWAGGER_HOST"),
	}
}

// IsProduction reports whether the service runs in production mode.
// Diagnostic-only behavior (like echoing reset links) keys off this.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
