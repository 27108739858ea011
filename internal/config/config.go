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

// Config holds the bazaarsearch API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`
	Search    SearchConfig    `yaml:"search"`
	Planner   PlannerConfig   `yaml:"planner"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Extractor ExtractorConfig `yaml:"extractor"`
	Cache     CacheConfig     `yaml:"cache"`
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

// ArtifactsConfig holds paths to the offline-built catalog and vector artifacts.
type ArtifactsConfig struct {
	CatalogPath string `yaml:"catalog_path"`
	VectorsPath string `yaml:"vectors_path"`
}

// SearchConfig holds retrieval settings.
type SearchConfig struct {
	// ResultLimit caps the total results per request across all tasks.
	ResultLimit int `yaml:"result_limit"`
	// CandidateK is how many nearest neighbors each task fetches before
	// filtering. The index returns nearest-by-distance, not
	// nearest-that-also-matches, so this must stay at or above the catalog
	// size for selective filters to find their survivors.
	CandidateK int `yaml:"candidate_k"`
}

// PlannerConfig holds query planning settings.
type PlannerConfig struct {
	// OnFailure picks the extraction-failure policy: "fallback" degrades to
	// one unconstrained semantic search, "empty" returns no results.
	OnFailure string `yaml:"on_failure"`
	// MaxTasks bounds how many tasks a single query may decompose into.
	MaxTasks int `yaml:"max_tasks"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
}

// ExtractorConfig holds intent extractor provider settings.
type ExtractorConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// CacheConfig holds the optional Redis embedding cache settings.
// Empty addrs disables the cache.
type CacheConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
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
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Artifacts.CatalogPath == "" {
		c.Artifacts.CatalogPath = "data/catalog.json"
	}
	if c.Artifacts.VectorsPath == "" {
		c.Artifacts.VectorsPath = "data/vectors.bin"
	}
	if c.Search.ResultLimit <= 0 {
		c.Search.ResultLimit = 5
	}
	if c.Search.CandidateK <= 0 {
		c.Search.CandidateK = 10000
	}
	if c.Planner.OnFailure == "" {
		c.Planner.OnFailure = "fallback"
	}
	if c.Planner.MaxTasks <= 0 {
		c.Planner.MaxTasks = 5
	}
	if c.Extractor.TimeoutSec <= 0 {
		c.Extractor.TimeoutSec = 10
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Planner.OnFailure {
	case "fallback", "empty":
		// ok
	default:
		return fmt.Errorf(
			"planner.on_failure must be \"fallback\" or \"empty\", got %q",
			c.Planner.OnFailure,
		)
	}
	if c.Embedding.Model == "" {
		return fmt.Errorf("embedding.model is required")
	}
	if c.Extractor.Model == "" {
		return fmt.Errorf("extractor.model is required")
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
