// Package cli provides the corpora command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/corpora-labs/corpora-cli/internal/core/ports/driving"
	"github.com/corpora-labs/corpora-cli/internal/logger"
)

// version is set by Execute from the build.
var version = "dev"

// Services are injected once at startup. Commands check for nil so that a
// misconfigured binary fails with a clear message instead of a panic.
var (
	ingestService   driving.IngestService
	searchService   driving.SearchService
	documentService driving.DocumentService
)

var (
	verbose   bool
	configDir string
	dataDir   string
)

var rootCmd = &cobra.Command{
	Use:   "corpora",
	Short: "Ingest documents and search them semantically",
	Long: `Corpora ingests parsed documents into a local store, embedding each
section for semantic retrieval. Search ranks stored chunks by similarity to
the query, filtered by extraction confidence and content type.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if !autoInit || servicesConfigured() {
			return nil
		}
		return initServices()
	},
}

// autoInit controls whether Execute wires real services. Tests inject fakes
// via SetServices and leave it off.
var autoInit bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.corpora)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.corpora/data)")
}

// SetServices injects the driving services. Used by tests and embedders.
func SetServices(ingest driving.IngestService, search driving.SearchService, documents driving.DocumentService) {
	ingestService = ingest
	searchService = search
	documentService = documents
}

func servicesConfigured() bool {
	return ingestService != nil || searchService != nil || documentService != nil
}

// Execute runs the root command.
func Execute(buildVersion string) error {
	if buildVersion != "" {
		version = buildVersion
	}
	autoInit = true
	return rootCmd.Execute()
}
