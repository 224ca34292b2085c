package config

import "os"

type Config struct {
	Env          string
	DatabaseURL  string
	JWTSecret    string
	Port         string
	AppURL       string
	ResendAPIKey string
	EmailFrom    string
	SentryDSN    string
}

func Load() *Config {
	return &Config{
		Env:          getEnv("APP_ENV", "development"),
		DatabaseURL:  getEnv("DATABASE_URL", "taskflow.db"),
		JWTSecret:    getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		Port:         getEnv("PORT", "8080"),
		AppURL:       getEnv("APP_URL", "http://localhost:3000"),
		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		EmailFrom:    getEnv("EMAIL_FROM", "Taskflow <noreply@taskflow.local>"),
		SentryDSN:    getEnv("SENTRY_DSN", ""),
	}
}

func (c *Config) IsDev() bool {
	return c.Env != "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
