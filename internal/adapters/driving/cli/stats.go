package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/claims-cli/internal/adapters/driving/display"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show claim statistics",
	Long:  `Aggregates every saved question into claim counts and the total approved amount.`,
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if insightsService == nil {
		return errNotConfigured("insights")
	}

	stats, err := insightsService.Analytics(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load statistics: %w", err)
	}

	if statsJSON {
		return printJSON(cmd, stats)
	}

	cmd.Printf("Total claims:    %d\n", stats.TotalClaims)
	cmd.Printf("Approved:        %d\n", stats.ApprovedClaims)
	cmd.Printf("Rejected:        %d\n", stats.RejectedClaims)
	cmd.Printf("Approval rate:   %s\n", display.Percent(stats.ApprovalRate()))
	cmd.Printf("Total amount:    %s\n", display.Money(stats.TotalAmount))
	return nil
}
