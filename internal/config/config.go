// Package config loads process configuration from the environment, the
// way cmd/main.go's getEnvOrDefault helper did before it grew enough
// settings to warrant its own package.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is everything the server needs to start.
type Config struct {
	ServerPort  string
	JWTSecret   string
	DatabaseURL string
	CORSOrigin  string
}

// Load reads .env (if present) then the process environment, applying
// sensible defaults for anything left unset.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, relying on process environment")
	}

	dbHost := getEnvOrDefault("DB_HOST", "localhost")
	dbPort := getEnvOrDefault("DB_PORT", "5432")
	dbUser := getEnvOrDefault("DB_USER", "postgres")
	dbPass := getEnvOrDefault("DB_PASSWORD", "postgres")
	dbName := getEnvOrDefault("DB_NAME", "swiss_pairing")
	dbSSLMode := getEnvOrDefault("DB_SSLMODE", "disable")

	return &Config{
		ServerPort:  getEnvOrDefault("SERVER_PORT", "8080"),
		JWTSecret:   getEnvOrDefault("JWT_SECRET", "dev-secret-change-me"),
		CORSOrigin:  getEnvOrDefault("CORS_ORIGIN", "http://localhost:3000"),
		DatabaseURL: fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s", dbHost, dbPort, dbUser, dbPass, dbName, dbSSLMode),
	}
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetEnvIntOrDefault reads an integer-valued env var, falling back when
// unset or unparseable.
func GetEnvIntOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: %s=%q is not an integer, using default %d", key, v, fallback)
		return fallback
	}
	return n
}
