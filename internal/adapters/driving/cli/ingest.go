package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/policypulse-labs/policypulse-cli/internal/core/domain"
)

var (
	ingestPoliciesPath string
	ingestSkipImpacts  bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Populate the vector store",
	Long: `Resets both collections, embeds and indexes the policy corpus, and
pulls live field-outcome records from the configured open-data source.
Re-running ingest cannot produce duplicate entries.`,
	RunE: runIngest,
}

var ingestResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop and recreate both collections",
	RunE:  runIngestReset,
}

var ingestImpactsCmd = &cobra.Command{
	Use:   "impacts",
	Short: "Sync live field-outcome records",
	RunE:  runIngestImpacts,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestPoliciesPath, "policies", "", "path to a JSON policy corpus file")
	ingestCmd.Flags().BoolVar(&ingestSkipImpacts, "skip-impacts", false, "skip the live impact sync")

	ingestCmd.AddCommand(ingestResetCmd)
	ingestCmd.AddCommand(ingestImpactsCmd)
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}
	if ingestPoliciesPath == "" {
		return errors.New("a policy corpus file is required (--policies)")
	}

	policies, err := loadPolicyFile(ingestPoliciesPath)
	if err != nil {
		return err
	}

	ctx := context.Background()

	if err := ingestService.Reset(ctx); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}
	cmd.Println("Collections reset.")

	stored, err := ingestService.LoadPolicies(ctx, policies)
	if err != nil {
		return fmt.Errorf("policy ingestion failed: %w", err)
	}
	cmd.Printf("Indexed %d policies.\n", stored)

	if ingestSkipImpacts {
		return nil
	}

	synced, err := ingestService.SyncImpacts(ctx)
	if err != nil {
		return fmt.Errorf("impact sync failed: %w", err)
	}
	cmd.Printf("Synced %d impact records.\n", synced)

	return nil
}

func runIngestReset(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	if err := ingestService.Reset(context.Background()); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}

	cmd.Println("Collections reset.")
	return nil
}

func runIngestImpacts(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	synced, err := ingestService.SyncImpacts(context.Background())
	if err != nil {
		return fmt.Errorf("impact sync failed: %w", err)
	}

	cmd.Printf("Synced %d impact records.\n", synced)
	return nil
}

// policyEntry is the JSON shape of one corpus record.
type policyEntry struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Text   string `json:"text"`
	Sector string `json:"sector"`
	Scope  string `json:"scope"`
}

// loadPolicyFile reads a JSON array of policy records.
func loadPolicyFile(path string) ([]domain.Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy corpus: %w", err)
	}

	var entries []policyEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing policy corpus: %w", err)
	}

	policies := make([]domain.Policy, 0, len(entries))
	for _, e := range entries {
		policies = append(policies, domain.Policy{
			ID:     e.ID,
			Title:  e.Title,
			Text:   e.Text,
			Sector: e.Sector,
			Scope:  e.Scope,
		})
	}
	return policies, nil
}
