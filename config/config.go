package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port         string
	MongoString  string
	PasetoSecret string
	AdminEmail   string
	AdminPass    string
}

// LoadConfig loads configuration from the environment (.env when present).
// PASETO_SECRET has no fallback on purpose: a missing signing key stops the
// process at startup instead of running with a known default. Decoding and
// key-length validation happen in paseto.Init, the single policy for both.
func LoadConfig() *AppConfig {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: .env file not found, using system environment variables: %v", err)
	}

	secretBase64 := os.Getenv("PASETO_SECRET")
	if secretBase64 == "" {
		log.Fatal("PASETO_SECRET is not set. Generate one with paseto.GenerateKey and export it before starting the server")
	}

	return &AppConfig{
		Port:         getEnv("PORT", "3000"),
		MongoString:  getEnv("MONGOSTRING", ""),
		PasetoSecret: secretBase64,
		AdminEmail:   getEnv("ADMIN_EMAIL", ""),
		AdminPass:    getEnv("ADMIN_PASSWORD", ""),
	}
}

// Helper function to get environment variable or fallback to default
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
