package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the backend is reachable",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	if insightsService == nil {
		return errNotConfigured("insights")
	}

	status, err := insightsService.Health(cmd.Context())
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	cmd.Printf("Backend: %s\n", status.Status)
	if status.Message != "" {
		cmd.Printf("Message: %s\n", status.Message)
	}
	if !status.Healthy() {
		return errors.New("backend reported unhealthy")
	}
	return nil
}
