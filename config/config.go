// Package config loads registry configuration from the environment.
// Every setting has a sensible default so the binary runs with zero
// configuration out of the box.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// StorageBackend selects the persistence implementation.
type StorageBackend string

const (
	// BackendJSONFile - JSON collection file with timestamped backups (default).
	BackendJSONFile StorageBackend = "jsonfile"

	// BackendSQLite - embedded SQLite database.
	BackendSQLite StorageBackend = "sqlite"

	// BackendMemory - ephemeral in-process storage.
	BackendMemory StorageBackend = "memory"
)

// Config holds all application configuration.
type Config struct {
	// Storage
	Storage StorageConfig

	// Logging
	Log LogConfig

	// Observability
	Observability ObservabilityConfig
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	// Backend selects the repository implementation.
	Backend StorageBackend

	// DataDir is the base directory for all persisted files.
	DataDir string

	// CollectionFile is the JSON collection path (jsonfile backend).
	CollectionFile string

	// BackupDir is where pre-write backups go (jsonfile backend).
	BackupDir string

	// DatabaseFile is the SQLite database path (sqlite backend).
	DatabaseFile string
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level: debug, info, warn, error.
	Level string

	// Format: "json" or "text".
	Format string
}

// ObservabilityConfig holds metrics settings.
type ObservabilityConfig struct {
	// Enabled toggles operation metrics collection.
	Enabled bool

	// PrintSummaryOnExit prints per-operation counters when the
	// session ends.
	PrintSummaryOnExit bool
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Storage: loadStorageConfig(),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		Observability: ObservabilityConfig{
			Enabled:            getEnvBool("METRICS_ENABLED", true),
			PrintSummaryOnExit: getEnvBool("METRICS_PRINT_SUMMARY", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadStorageConfig() StorageConfig {
	dataDir := getEnv("REGISTRY_DATA_DIR", "data")

	return StorageConfig{
		Backend:        StorageBackend(getEnv("STORAGE_BACKEND", string(BackendJSONFile))),
		DataDir:        dataDir,
		CollectionFile: getEnv("REGISTRY_COLLECTION_FILE", filepath.Join(dataDir, "students.json")),
		BackupDir:      getEnv("REGISTRY_BACKUP_DIR", filepath.Join(dataDir, "backups")),
		DatabaseFile:   getEnv("REGISTRY_DATABASE_FILE", filepath.Join(dataDir, "students.db")),
	}
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendJSONFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q (want jsonfile, sqlite or memory)", c.Storage.Backend)
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log format %q (want json or text)", c.Log.Format)
	}

	if c.Storage.Backend == BackendJSONFile && c.Storage.CollectionFile == "" {
		return fmt.Errorf("collection file path must not be empty")
	}
	if c.Storage.Backend == BackendSQLite && c.Storage.DatabaseFile == "" {
		return fmt.Errorf("database file path must not be empty")
	}
	return nil
}

// --- Helper functions for environment variable parsing ---

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}
