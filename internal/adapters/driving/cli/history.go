package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/claims-cli/internal/adapters/driving/display"
	"github.com/custodia-labs/claims-cli/internal/core/domain"
)

var historyJSON bool

var historyCmd = &cobra.Command{
	Use:   "history [doc-id]",
	Short: "Show saved questions for a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output history as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errNotConfigured("query")
	}

	results, err := queryService.History(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if historyJSON {
		if results == nil {
			results = []domain.QueryResult{}
		}
		return printJSON(cmd, results)
	}

	if len(results) == 0 {
		cmd.Println("No saved questions.")
		return nil
	}

	for i := range results {
		cmd.Printf("[%s] %s  %s\n", results[i].ID, display.Time(results[i].CreatedAt), results[i].QueryText)
		printQueryResult(cmd, results[i])
		cmd.Println()
	}
	return nil
}
