package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	feedbackPolicy string
	feedbackState  string
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Record and review citizen feedback",
}

var feedbackAddCmd = &cobra.Command{
	Use:   "add [opinion]",
	Short: "Record feedback on a policy",
	Args:  cobra.ExactArgs(1),
	RunE:  runFeedbackAdd,
}

var feedbackListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded feedback",
	RunE:  runFeedbackList,
}

func init() {
	feedbackAddCmd.Flags().StringVar(&feedbackPolicy, "policy", "", "policy title the feedback refers to")
	feedbackAddCmd.Flags().StringVar(&feedbackState, "state", "", "submitter's state")

	feedbackCmd.AddCommand(feedbackAddCmd)
	feedbackCmd.AddCommand(feedbackListCmd)
	rootCmd.AddCommand(feedbackCmd)
}

func runFeedbackAdd(cmd *cobra.Command, args []string) error {
	if feedbackService == nil {
		return errors.New("feedback service not configured")
	}

	if err := feedbackService.Record(context.Background(), feedbackPolicy, feedbackState, args[0]); err != nil {
		return fmt.Errorf("failed to record feedback: %w", err)
	}

	cmd.Println("Feedback recorded.")
	return nil
}

func runFeedbackList(cmd *cobra.Command, _ []string) error {
	if feedbackService == nil {
		return errors.New("feedback service not configured")
	}

	entries, err := feedbackService.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list feedback: %w", err)
	}

	if len(entries) == 0 {
		cmd.Println("No feedback recorded.")
		return nil
	}

	cmd.Println("Feedback:")
	for _, e := range entries {
		cmd.Printf("  [%s] %s (%s)\n", e.Timestamp.Format("2006-01-02"), e.Policy, e.State)
		cmd.Printf("      %s\n", e.Opinion)
	}

	return nil
}
