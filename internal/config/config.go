package config

import (
	"os"
	"strconv"
)

// Config represents the complete application configuration
type Config struct {
	Input    InputConfig
	Output   OutputConfig
	Database DatabaseConfig
	Server   ServerConfig
}

// InputConfig holds data-source settings
type InputConfig struct {
	// Path is an .xlsx workbook (one sheet per strain) or a directory
	// of per-strain CSV files.
	Path       string
	SubjectCol string
	GroupVar   string
	Cols       int
}

// OutputConfig holds figure and report destinations
type OutputConfig struct {
	FigurePath string
	ReportPath string
}

// DatabaseConfig holds the optional run-archive connection
type DatabaseConfig struct {
	// URL empty means archiving is disabled.
	URL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// Load reads configuration from environment variables, applying
// defaults where unset.
func Load() *Config {
	return &Config{
		Input: InputConfig{
			Path:       getEnv("SEROVIS_INPUT", ""),
			SubjectCol: getEnv("SEROVIS_SUBJECT_COL", "SubjectID"),
			GroupVar:   getEnv("SEROVIS_GROUP_VAR", ""),
			Cols:       getEnvInt("SEROVIS_COLS", 1),
		},
		Output: OutputConfig{
			FigurePath: getEnv("SEROVIS_FIGURE", "titers.png"),
			ReportPath: getEnv("SEROVIS_REPORT", ""),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
