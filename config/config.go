package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const LoginURL = "/auth/login"

// Config holds runtime settings for the web process.
type Config struct {
	Port       string   // HTTP listen port
	GinMode    string   // gin mode: debug/release/test
	DBUser     string   // MySQL user
	DBPass     string   // MySQL password
	DBHost     string   // MySQL host:port
	DBName     string   // MySQL database name
	DBMaxConns int      // max open/idle connections
	FEOrigins  []string // allowed frontend origins for CORS
	BucketName string   // firebase storage bucket for uploaded images
}

// Load populates Config from environment variables. The DB credentials
// are required; everything else has defaults or is validated by the
// command that needs it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:       os.Getenv("PORT"),
		GinMode:    os.Getenv("GIN_MODE"),
		DBUser:     os.Getenv("DB_USER"),
		DBPass:     os.Getenv("DB_PASS"),
		DBHost:     os.Getenv("DB_HOST"),
		DBName:     firstNonEmpty(os.Getenv("DB_NAME"), "bloghub"),
		DBMaxConns: intFromEnv("DB_MAX_CONNS", 50),
		FEOrigins:  parseCSV(os.Getenv("FE_ORIGINS")),
		BucketName: os.Getenv("STORAGE_BUCKET"),
	}
	if cfg.DBUser == "" || cfg.DBHost == "" {
		return nil, fmt.Errorf("$DB_USER and $DB_HOST must be set")
	}
	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func intFromEnv(name string, defaultVal int) int {
	if v := os.Getenv(name); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func parseCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
