package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/policypulse-labs/policypulse-cli/internal/core/domain"
)

var (
	recommendSector string
	recommendJSON   bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend [query]",
	Short: "Recommend a policy for a query",
	Long: `Matches the query against the policy corpus. An in-jurisdiction
candidate above the strict similarity bar is an exact match; otherwise
the best candidate from any jurisdiction may qualify as a fallback.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().StringVarP(&recommendSector, "sector", "s", "", "restrict matching to one sector")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "output result as JSON")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	if recommendationService == nil {
		return errors.New("recommendation service not configured")
	}

	rec, err := recommendationService.Recommend(context.Background(), args[0], recommendSector)
	if err != nil {
		return fmt.Errorf("recommendation failed: %w", err)
	}

	if recommendJSON {
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal recommendation: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	return outputRecommendation(cmd, rec)
}

func outputRecommendation(cmd *cobra.Command, rec domain.Recommendation) error {
	cmd.Printf("Verdict: %s\n", rec.Verdict)
	cmd.Printf("%s\n", rec.Message)

	if rec.Matched() {
		cmd.Println()
		cmd.Printf("Policy: %s (#%d)\n", rec.Policy.Title, rec.Policy.ID)
		cmd.Printf("  Sector: %s\n", rec.Policy.Sector)
		cmd.Printf("  Scope: %s\n", rec.Policy.Scope)
	}

	return nil
}
