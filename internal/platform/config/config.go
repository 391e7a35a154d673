package config

import (
	"bufio"
	"log"
	"os"
	"strings"
	"time"

	"github.com/guzoride/guzo/internal/platform/database"
)

type Config struct {
	HTTPAddr   string
	Database   database.Config
	RedisAddr  string
	PendingTTL time.Duration
}

// Load reads an optional .env file, then the environment, applying defaults
// for anything unset.
func Load() Config {
	loadEnvFile(".env")

	ttl := 30 * time.Minute
	if raw := getenv("BOOKING_PENDING_TTL", ""); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			log.Printf("invalid BOOKING_PENDING_TTL %q, using default: %v", raw, err)
		} else {
			ttl = parsed
		}
	}

	return Config{
		HTTPAddr: getenv("APP_ADDR", ":8080"),
		Database: database.Config{
			Host:     getenv("DB_HOST", "localhost"),
			Port:     getenv("DB_PORT", "5432"),
			User:     getenv("DB_USER", "postgres"),
			Password: getenv("DB_PASSWORD", ""),
			DBName:   getenv("DB_NAME", "guzo"),
		},
		RedisAddr:  getenv("REDIS_ADDR", "localhost:6379"),
		PendingTTL: ttl,
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func loadEnvFile(path string) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) == 2 {
			os.Setenv(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
		}
	}

	if err := scanner.Err(); err != nil {
		log.Printf("reading %s: %v", path, err)
	}
}
