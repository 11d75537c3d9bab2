package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the visearch API configuration.
type Config struct {
	HTTP         HTTPConfig      `yaml:"http"`
	Database     DatabaseConfig  `yaml:"database"`
	Index        IndexConfig     `yaml:"index"`
	Search       SearchConfig    `yaml:"search"`
	Embedding    EmbeddingConfig `yaml:"embedding"`
	Auth         AuthConfig      `yaml:"auth"`
	Storage      StorageConfig   `yaml:"storage"`
	Logging      LoggingConfig   `yaml:"logging"`
	ModelVersion string          `yaml:"model_version"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds index store connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// IndexConfig holds vector index settings. The HNSW parameters apply at
// partition provisioning time, not per query.
type IndexConfig struct {
	Dimension       int `yaml:"dimension"`
	HNSWM           int `yaml:"hnsw_m"`
	HNSWEFConstruct int `yaml:"hnsw_ef_construction"`
}

// SearchConfig holds pipeline tuning defaults. Per-tenant profiles
// override lambda, fusion and rerank weights at request time.
type SearchConfig struct {
	DeadlineMs         int     `yaml:"deadline_ms"`
	PartitionTimeoutMs int     `yaml:"partition_timeout_ms"`
	RetryAttempts      int     `yaml:"retry_attempts"`
	MaxConcurrency     int     `yaml:"max_concurrency"`
	DefaultLambda      float64 `yaml:"default_lambda"`
}

// EmbeddingConfig holds text embedding provider settings.
type EmbeddingConfig struct {
	APIKey      string `yaml:"api_key"`
	BaseURL     string `yaml:"base_url"`
	Model       string `yaml:"model"`
	CacheTTLSec int    `yaml:"cache_ttl_sec"`

	// Token budget caps provider spend. Zero limits mean unlimited.
	DailyTokenBudget   int64  `yaml:"daily_token_budget"`
	MonthlyTokenBudget int64  `yaml:"monthly_token_budget"`
	BudgetAction       string `yaml:"budget_action"` // "warn" or "reject"
}

// Enabled reports whether a raw-text embedding provider is configured.
func (e EmbeddingConfig) Enabled() bool {
	return e.APIKey != "" && e.Model != ""
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Index.Dimension <= 0 {
		c.Index.Dimension = 512
	}
	if c.Index.HNSWM <= 0 {
		c.Index.HNSWM = 32
	}
	if c.Index.HNSWEFConstruct <= 0 {
		c.Index.HNSWEFConstruct = 400
	}
	if c.Search.DeadlineMs <= 0 {
		c.Search.DeadlineMs = 700
	}
	if c.Search.PartitionTimeoutMs <= 0 {
		c.Search.PartitionTimeoutMs = 250
	}
	if c.Search.RetryAttempts <= 0 {
		c.Search.RetryAttempts = 3
	}
	if c.Search.MaxConcurrency <= 0 {
		c.Search.MaxConcurrency = 8
	}
	if c.Search.DefaultLambda <= 0 {
		c.Search.DefaultLambda = 0.7
	}
	if c.Embedding.CacheTTLSec <= 0 {
		c.Embedding.CacheTTLSec = 86400
	}
	if c.Embedding.BudgetAction == "" {
		c.Embedding.BudgetAction = "warn"
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "visearch:"
	}
	if c.ModelVersion == "" {
		c.ModelVersion = "clip-vit-b32-v2"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if c.Search.DefaultLambda < 0 || c.Search.DefaultLambda > 1 {
		return fmt.Errorf("search.default_lambda must be in [0,1], got %f", c.Search.DefaultLambda)
	}
	if c.Search.PartitionTimeoutMs >= c.Search.DeadlineMs {
		return fmt.Errorf("search.partition_timeout_ms (%d) must be below search.deadline_ms (%d)",
			c.Search.PartitionTimeoutMs, c.Search.DeadlineMs)
	}
	if c.Embedding.APIKey != "" && c.Embedding.Model == "" {
		return fmt.Errorf("embedding.model is required when embedding.api_key is set")
	}
	if c.Embedding.BudgetAction != "warn" && c.Embedding.BudgetAction != "reject" {
		return fmt.Errorf("embedding.budget_action must be \"warn\" or \"reject\", got %q",
			c.Embedding.BudgetAction)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
