package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var driftJSON bool

var driftCmd = &cobra.Command{
	Use:   "drift [policy-id]",
	Short: "Audit a policy for drift",
	Long: `Compares a stored policy's fingerprint against recent field-outcome
records in the same sector and scores how far reality has drifted from
the policy's promises.`,
	Args: cobra.ExactArgs(1),
	RunE: runDrift,
}

func init() {
	driftCmd.Flags().BoolVar(&driftJSON, "json", false, "output result as JSON")
	rootCmd.AddCommand(driftCmd)
}

func runDrift(cmd *cobra.Command, args []string) error {
	if driftService == nil {
		return errors.New("drift service not configured")
	}

	policyID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid policy id %q", args[0])
	}

	report, err := driftService.DetectDrift(context.Background(), policyID)
	if err != nil {
		return fmt.Errorf("drift detection failed: %w", err)
	}

	if driftJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Drift Score: %.2f\n", report.Score)
	if report.Detected {
		cmd.Println("Drift detected: policy promises diverge from field outcomes.")
	} else {
		cmd.Println("No drift detected.")
	}
	cmd.Printf("  %s\n", report.Explanation)
	cmd.Printf("  Region: %s\n", report.Region)
	cmd.Printf("  Observed: %s\n", report.ActualImpact)

	return nil
}
