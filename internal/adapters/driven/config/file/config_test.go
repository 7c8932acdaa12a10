package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corpora-labs/corpora-cli/internal/core/domain"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.Embedding.Provider)
	assert.Equal(t, "nomic-embed-text", cfg.Embedding.Model)
	assert.Equal(t, domain.DefaultK, cfg.Search.K)
	assert.Equal(t, domain.DefaultMinConfidence, cfg.Search.MinConfidence)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `
[embedding]
provider = "openai"
model = "text-embedding-3-small"

[search]
k = 10
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedding.Model)
	assert.Equal(t, 10, cfg.Search.K)
	// Untouched sections keep defaults
	assert.Equal(t, domain.DefaultMinConfidence, cfg.Search.MinConfidence)
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not [valid"), 0600))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoad_EnvAPIKeyTakesPrecedence(t *testing.T) {
	dir := t.TempDir()
	content := `
[embedding]
api_key = "from-file"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))
	t.Setenv("CORPORA_API_KEY", "from-env")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Embedding.APIKey)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	cfg := DefaultConfig()
	cfg.Embedding.Model = "mxbai-embed-large"
	cfg.Storage.DataDir = "/var/lib/corpora"
	require.NoError(t, Save(dir, cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "mxbai-embed-large", loaded.Embedding.Model)
	assert.Equal(t, "/var/lib/corpora", loaded.Storage.DataDir)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"openai provider", func(c *Config) { c.Embedding.Provider = "openai" }, true},
		{"unknown provider", func(c *Config) { c.Embedding.Provider = "acme" }, false},
		{"empty model", func(c *Config) { c.Embedding.Model = "" }, false},
		{"zero k", func(c *Config) { c.Search.K = 0 }, false},
		{"confidence out of range", func(c *Config) { c.Search.MinConfidence = 1.2 }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			}
		})
	}
}
