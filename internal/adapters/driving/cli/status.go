package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the indexed corpus status",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if statusService == nil {
		return errors.New("status service not configured")
	}

	status, err := statusService.Status(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	cmd.Println("System Status")
	cmd.Println("=============")
	cmd.Printf("  Policies indexed: %d\n", status.PoliciesIndexed)
	cmd.Printf("  Impact records:   %d\n", status.ImpactsIndexed)
	if status.StoragePath != "" {
		cmd.Printf("  Storage:          %s\n", status.StoragePath)
	}

	return nil
}
