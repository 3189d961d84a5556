package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kimkim0621/events-marketing-ai/internal/predictor"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Storage   StorageConfig   `yaml:"storage"`
	Predictor PredictorConfig `yaml:"predictor"`
	Snapshot  SnapshotConfig  `yaml:"snapshot"`
	Seed      SeedConfig      `yaml:"seed"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DatabaseConfig holds the Postgres connection settings
type DatabaseConfig struct {
	URL          string `yaml:"url"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

// RedisConfig holds the snapshot cache settings
type RedisConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// StorageConfig holds S3 dataset archive settings
type StorageConfig struct {
	Enabled bool   `yaml:"enabled"`
	Bucket  string `yaml:"bucket"`
	Region  string `yaml:"region"`
	Prefix  string `yaml:"prefix"`
}

// PredictorConfig selects the prediction strategy. Coefficients are loaded
// from config rather than fitted in-process.
type PredictorConfig struct {
	Strategy     string                       `yaml:"strategy"` // "heuristic" or "model"
	Coefficients *predictor.ModelCoefficients `yaml:"coefficients"`
}

// SnapshotConfig controls the in-memory dataset snapshot refresh
type SnapshotConfig struct {
	RefreshIntervalSeconds int `yaml:"refresh_interval_seconds"`
}

// SeedConfig controls the initial sample dataset load
type SeedConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Redis.TTLSeconds == 0 {
		cfg.Redis.TTLSeconds = 300
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "us-west-2"
	}
	if cfg.Storage.Prefix == "" {
		cfg.Storage.Prefix = "datasets"
	}
	if cfg.Predictor.Strategy == "" {
		cfg.Predictor.Strategy = "heuristic"
	}
	if cfg.Snapshot.RefreshIntervalSeconds == 0 {
		cfg.Snapshot.RefreshIntervalSeconds = 60
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so secrets can live in .env locally and in real env vars in deployment.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Database override (deployment injects the real DSN)
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.Database.URL = dbURL
	}

	// Redis overrides
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
		cfg.Redis.Enabled = true
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", db, err)
		}
		cfg.Redis.DB = n
	}

	// Storage overrides
	if bucket := os.Getenv("DATASET_S3_BUCKET"); bucket != "" {
		cfg.Storage.Bucket = bucket
		cfg.Storage.Enabled = true
	}
	if region := os.Getenv("DATASET_S3_REGION"); region != "" {
		cfg.Storage.Region = region
	}

	// Predictor override
	if strategy := os.Getenv("PREDICTOR_STRATEGY"); strategy != "" {
		cfg.Predictor.Strategy = strategy
	}

	if port := os.Getenv("PORT"); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Server.Port = n
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Predictor.Strategy {
	case "heuristic", "model":
	default:
		return fmt.Errorf("unknown predictor strategy %q", c.Predictor.Strategy)
	}
	if c.Storage.Enabled && c.Storage.Bucket == "" {
		return fmt.Errorf("storage enabled but no bucket configured")
	}
	return nil
}
