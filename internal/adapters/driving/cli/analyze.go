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
	analyzeSector string
	analyzeJSON   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [query]",
	Short: "Analyze a policy query end to end",
	Long: `Matches the query against the policy corpus, audits the selected
policy for drift against recent field outcomes, and generates a
strategist narrative when an LLM is configured.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeSector, "sector", "s", "", "restrict matching to one sector")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output result as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	analysis, err := analysisService.Analyze(context.Background(), args[0], analyzeSector)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeJSON {
		return outputAnalysisJSON(cmd, analysis)
	}
	return outputAnalysisText(cmd, analysis)
}

func outputAnalysisJSON(cmd *cobra.Command, analysis domain.Analysis) error {
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAnalysisText(cmd *cobra.Command, analysis domain.Analysis) error {
	rec := analysis.Recommendation

	cmd.Printf("Verdict: %s\n", rec.Verdict)
	cmd.Printf("%s\n", rec.Message)

	if !rec.Matched() {
		return nil
	}

	cmd.Println()
	cmd.Printf("Policy: %s (#%d)\n", rec.Policy.Title, rec.Policy.ID)
	cmd.Printf("  Sector: %s\n", rec.Policy.Sector)
	cmd.Printf("  Scope: %s\n", rec.Policy.Scope)

	if analysis.Drift != nil {
		d := analysis.Drift
		cmd.Println()
		cmd.Printf("Drift Score: %.2f\n", d.Score)
		if d.Detected {
			cmd.Println("  Drift detected: policy promises diverge from field outcomes.")
		}
		cmd.Printf("  %s\n", d.Explanation)
		cmd.Printf("  Region: %s\n", d.Region)
		cmd.Printf("  Observed: %s\n", d.ActualImpact)
	}

	if analysis.Strategy != "" {
		cmd.Println()
		cmd.Println("Strategist:")
		cmd.Println(analysis.Strategy)
	}

	return nil
}
