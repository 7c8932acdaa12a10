package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/corpora-labs/corpora-cli/internal/adapters/driven/config/file"
	"github.com/corpora-labs/corpora-cli/internal/adapters/driven/embedding/ollama"
	"github.com/corpora-labs/corpora-cli/internal/adapters/driven/embedding/openai"
	htmlparser "github.com/corpora-labs/corpora-cli/internal/adapters/driven/parser/html"
	"github.com/corpora-labs/corpora-cli/internal/adapters/driven/parser/pdf"
	"github.com/corpora-labs/corpora-cli/internal/adapters/driven/parser/plaintext"
	"github.com/corpora-labs/corpora-cli/internal/adapters/driven/storage/sqlite"
	"github.com/corpora-labs/corpora-cli/internal/core/ports/driven"
	"github.com/corpora-labs/corpora-cli/internal/core/services"
	"github.com/corpora-labs/corpora-cli/internal/logger"
)

// cfg is the loaded configuration, available to commands that need defaults.
var cfg *configfile.Config

// initServices loads configuration and wires the adapters into the core
// services. Flags override config file values.
func initServices() error {
	loaded, err := configfile.Load(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if dataDir != "" {
		loaded.Storage.DataDir = dataDir
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg = loaded

	store, err := sqlite.NewStore(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening document store: %w", err)
	}

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return err
	}
	logger.Debug("Embedding provider: %s (%s)", cfg.Embedding.Provider, embedder.ModelName())

	parsers := []driven.Parser{plaintext.New(), htmlparser.New(), pdf.New()}

	// A dead backend only matters to commands that embed; warn, don't fail.
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := embedder.Ping(pingCtx); err != nil {
		logger.Warn("Embedding backend unreachable: %v", err)
	}

	ingestService = services.NewIngestService(store, embedder, parsers...)
	searchService = services.NewSearchService(store, embedder)
	documentService = services.NewDocumentService(store)
	return nil
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Write a default config and verify the embedding backend",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	loaded, err := configfile.Load(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := configfile.Save(configDir, loaded); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	cmd.Println("Config written.")

	embedder, err := buildEmbedder(loaded)
	if err != nil {
		return err
	}
	defer embedder.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := embedder.Ping(ctx); err != nil {
		return fmt.Errorf("embedding backend %s unreachable: %w", loaded.Embedding.Provider, err)
	}
	cmd.Printf("Embedding backend OK: %s (%s)\n", loaded.Embedding.Provider, embedder.ModelName())
	return nil
}

func buildEmbedder(cfg *configfile.Config) (driven.EmbeddingService, error) {
	switch cfg.Embedding.Provider {
	case "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
		}), nil
	case "openai":
		svc, err := openai.NewEmbeddingService(openai.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
		})
		if err != nil {
			return nil, fmt.Errorf("configuring openai embeddings: %w", err)
		}
		return svc, nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Embedding.Provider)
	}
}
