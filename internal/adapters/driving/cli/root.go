// Package cli implements the policypulse command-line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/policypulse-labs/policypulse-cli/internal/adapters/driven/config/file"
	"github.com/policypulse-labs/policypulse-cli/internal/adapters/driven/embedding/ollama"
	"github.com/policypulse-labs/policypulse-cli/internal/adapters/driven/embedding/openai"
	feedbackfile "github.com/policypulse-labs/policypulse-cli/internal/adapters/driven/feedback/file"
	"github.com/policypulse-labs/policypulse-cli/internal/adapters/driven/impact/datagov"
	"github.com/policypulse-labs/policypulse-cli/internal/adapters/driven/llm/groq"
	"github.com/policypulse-labs/policypulse-cli/internal/adapters/driven/vectorstore/memory"
	"github.com/policypulse-labs/policypulse-cli/internal/adapters/driven/vectorstore/qdrant"
	"github.com/policypulse-labs/policypulse-cli/internal/adapters/driven/vectorstore/sqlite"
	"github.com/policypulse-labs/policypulse-cli/internal/core/ports/driven"
	"github.com/policypulse-labs/policypulse-cli/internal/core/ports/driving"
	"github.com/policypulse-labs/policypulse-cli/internal/core/services"
	"github.com/policypulse-labs/policypulse-cli/internal/logger"
)

var version = "dev"

var (
	verbose   bool
	configDir string
)

// Services wired at startup. Package-level so commands and tests can
// reach them directly.
var (
	analysisService       driving.AnalysisService
	recommendationService driving.RecommendationService
	driftService          driving.DriftService
	feedbackService       driving.FeedbackService
	statusService         driving.StatusService
	ingestService         driving.IngestService

	configStore driven.ConfigStore
)

var rootCmd = &cobra.Command{
	Use:   "policypulse",
	Short: "Civic policy retrieval and drift analysis",
	Long: `PolicyPulse matches citizen queries against an indexed corpus of
government policies and audits whether each policy's promises still
track its real-world outcomes.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.policypulse)")
}

// Execute wires the services and runs the root command.
func Execute() error {
	if err := initServices(); err != nil {
		return fmt.Errorf("initialising services: %w", err)
	}
	return rootCmd.Execute()
}

// initServices builds the adapter stack from configuration and hands it
// to the core services.
func initServices() error {
	// Flags are not parsed yet when Execute runs, so pick up the
	// config dir override manually.
	dir := configDir
	if dir == "" {
		dir = configDirFromArgs(os.Args[1:])
	}

	store, err := file.NewConfigStore(dir)
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}
	configStore = store

	embedder, err := buildEmbedder(store)
	if err != nil {
		return err
	}

	vectors, err := buildVectorStore(store)
	if err != nil {
		return err
	}

	llm, err := buildLLM(store)
	if err != nil {
		return err
	}

	feedbackStore, err := feedbackfile.NewStore(filepath.Dir(store.Path()))
	if err != nil {
		return fmt.Errorf("opening feedback store: %w", err)
	}

	var source driven.ImpactSource
	if key := dataGovKey(store); key != "" {
		source = datagov.NewSource(datagov.Config{APIKey: key})
	}

	recommender := services.NewRecommendationService(embedder, vectors)
	auditor := services.NewDriftService(embedder, vectors)

	recommendationService = recommender
	driftService = auditor
	analysisService = services.NewAnalysisService(recommender, auditor, llm)
	feedbackService = services.NewFeedbackService(feedbackStore)
	statusService = services.NewStatusService(vectors)
	ingestService = services.NewIngestService(embedder, vectors, source, uuid.NewString)

	return nil
}

func buildEmbedder(store driven.ConfigStore) (driven.EmbeddingService, error) {
	provider := store.GetString("embedding.provider")

	switch provider {
	case "", "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL: store.GetString("embedding.base_url"),
			Model:   store.GetString("embedding.model"),
		}), nil
	case "openai":
		return openai.NewEmbeddingService(openai.Config{
			APIKey: store.GetString("embedding.api_key"),
			Model:  store.GetString("embedding.model"),
		})
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", provider)
	}
}

func buildVectorStore(store driven.ConfigStore) (driven.VectorStore, error) {
	backend := store.GetString("vector.backend")

	switch backend {
	case "", "sqlite":
		return sqlite.NewStore(store.GetString("vector.data_dir"))
	case "qdrant":
		return qdrant.NewStore(qdrant.Config{
			BaseURL: store.GetString("vector.base_url"),
			APIKey:  store.GetString("vector.api_key"),
		}), nil
	case "memory":
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown vector backend %q", backend)
	}
}

// buildLLM returns nil when no key is configured; the strategist
// narrative is optional.
func buildLLM(store driven.ConfigStore) (driven.LLMService, error) {
	key := store.GetString("llm.api_key")
	if key == "" {
		key = os.Getenv("GROQ_API_KEY")
	}
	if key == "" {
		return nil, nil
	}

	return groq.NewLLMService(groq.Config{
		APIKey: key,
		Model:  store.GetString("llm.model"),
	})
}

func dataGovKey(store driven.ConfigStore) string {
	if key := store.GetString("datagov.api_key"); key != "" {
		return key
	}
	return os.Getenv("DATA_GOV_API_KEY")
}

// configDirFromArgs scans raw arguments for --config-dir before cobra
// has parsed flags.
func configDirFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--config-dir" && i+1 < len(args) {
			return args[i+1]
		}
		if strings.HasPrefix(arg, "--config-dir=") {
			return strings.TrimPrefix(arg, "--config-dir=")
		}
	}
	return ""
}
