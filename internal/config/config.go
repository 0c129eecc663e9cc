// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir         string // Base directory for databases and datasets
	ModelDir        string // Directory for persisted model artifacts
	ModelPrefix     string // Name prefix for the model artifact files
	LogLevel        string
	LogPretty       bool
	MonteCarloRuns  int // Bad-scenario estimator runs per evaluation
	TrainingSamples int // Synthetic samples drawn by load-or-train
}

// Load reads configuration from environment variables, supporting a local
// .env file, and applies defaults for anything unset.
func Load() (*Config, error) {
	// Best effort: a missing .env file is not an error
	_ = godotenv.Load()

	dataDir, err := filepath.Abs(getEnv("ALLOCATION_DATA_DIR", "./data"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data dir: %w", err)
	}

	cfg := &Config{
		DataDir:         dataDir,
		ModelDir:        getEnv("ALLOCATION_MODEL_DIR", filepath.Join(dataDir, "models")),
		ModelPrefix:     getEnv("ALLOCATION_MODEL_PREFIX", "allocation"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogPretty:       getEnvBool("LOG_PRETTY", false),
		MonteCarloRuns:  getEnvInt("MONTE_CARLO_RUNS", 500),
		TrainingSamples: getEnvInt("TRAINING_SAMPLES", 10000),
	}

	if cfg.MonteCarloRuns < 1 {
		return nil, fmt.Errorf("MONTE_CARLO_RUNS must be positive, got %d", cfg.MonteCarloRuns)
	}
	if cfg.TrainingSamples < 1 {
		return nil, fmt.Errorf("TRAINING_SAMPLES must be positive, got %d", cfg.TrainingSamples)
	}

	return cfg, nil
}

// HistoryDBPath returns the path of the evaluation history database.
func (c *Config) HistoryDBPath() string {
	return filepath.Join(c.DataDir, "history.db")
}

// TrainingDataPath returns the path of the training dataset CSV.
func (c *Config) TrainingDataPath() string {
	return filepath.Join(c.DataDir, "training_data.csv")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
