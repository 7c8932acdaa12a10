package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/corpora-labs/corpora-cli/internal/core/domain"
)

// Config holds all runtime configuration for corpora. Every value is an
// explicit field; commands read the loaded struct instead of consulting
// shared mutable state.
type Config struct {
	Embedding EmbeddingConfig `toml:"embedding"`
	Storage   StorageConfig   `toml:"storage"`
	Search    SearchConfig    `toml:"search"`
}

// EmbeddingConfig selects and configures the embedding backend.
type EmbeddingConfig struct {
	// Provider is "ollama" or "openai".
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	BaseURL  string `toml:"base_url"`
	// APIKey is only used by providers that require one. The
	// CORPORA_API_KEY environment variable takes precedence.
	APIKey string `toml:"api_key"`
	// Dimensions overrides the provider's default embedding width.
	Dimensions int `toml:"dimensions"`
}

// StorageConfig configures the document store.
type StorageConfig struct {
	// DataDir is where the SQLite database lives.
	// Defaults to ~/.corpora/data.
	DataDir string `toml:"data_dir"`
}

// SearchConfig holds default search parameters, overridable per query.
type SearchConfig struct {
	K             int     `toml:"k"`
	MinConfidence float64 `toml:"min_confidence"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Embedding: EmbeddingConfig{
			Provider: "ollama",
			Model:    "nomic-embed-text",
		},
		Search: SearchConfig{
			K:             domain.DefaultK,
			MinConfidence: domain.DefaultMinConfidence,
		},
	}
}

// Load reads configuration from configDir/config.toml, layered over the
// defaults. A missing file is not an error; the defaults apply. If configDir
// is empty, ~/.corpora is used.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".corpora")
	}

	cfg := DefaultConfig()

	path := filepath.Join(configDir, "config.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// Save writes the configuration to configDir/config.toml, creating the
// directory if needed. If configDir is empty, ~/.corpora is used.
func Save(configDir string, cfg *Config) error {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		configDir = filepath.Join(home, ".corpora")
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(configDir, "config.toml"), data, 0600)
}

// Validate reports configuration errors before any service is built.
func (c *Config) Validate() error {
	switch c.Embedding.Provider {
	case "ollama", "openai":
	default:
		return fmt.Errorf("unknown embedding provider %q: %w",
			c.Embedding.Provider, domain.ErrInvalidInput)
	}
	if c.Embedding.Model == "" {
		return fmt.Errorf("embedding model must be set: %w", domain.ErrInvalidInput)
	}
	if c.Search.K < 1 {
		return fmt.Errorf("search k must be at least 1, got %d: %w",
			c.Search.K, domain.ErrInvalidInput)
	}
	if c.Search.MinConfidence < 0 || c.Search.MinConfidence > 1 {
		return fmt.Errorf("search min_confidence must be in [0,1], got %v: %w",
			c.Search.MinConfidence, domain.ErrInvalidInput)
	}
	return nil
}

func (c *Config) applyEnv() {
	if key := os.Getenv("CORPORA_API_KEY"); key != "" {
		c.Embedding.APIKey = key
	}
}
