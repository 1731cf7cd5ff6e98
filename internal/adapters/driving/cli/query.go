package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/claims-cli/internal/core/domain"
)

var (
	queryDocID   string
	queryJSON    bool
	querySamples bool
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Ask a claim question about a document",
	Long: `Asks the backend whether a claim is covered by a policy document.
The answer is printed as soon as it arrives and then saved to the
document's history. A failed save is reported but does not fail the
command.

Examples:
  claims query --doc 3 "Is knee surgery covered for a 46 year old?"
  claims query --samples`,
	Args: func(cmd *cobra.Command, args []string) error {
		if querySamples {
			return nil
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	},
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVarP(&queryDocID, "doc", "d", "", "document ID to ask about")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output the answer as JSON")
	queryCmd.Flags().BoolVar(&querySamples, "samples", false, "list sample questions and exit")
	rootCmd.AddCommand(queryCmd)
}

// queryOutput is the JSON shape of a query answer.
type queryOutput struct {
	Result    domain.QueryResult  `json:"result"`
	Saved     *domain.QueryResult `json:"saved,omitempty"`
	SaveError string              `json:"save_error,omitempty"`
}

func runQuery(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errNotConfigured("query")
	}

	if querySamples {
		cmd.Println("Sample questions:")
		for i, q := range queryService.SampleQuestions() {
			cmd.Printf("  %d. %s\n", i+1, q)
		}
		return nil
	}

	text := strings.Join(args, " ")
	if queryJSON {
		return runQueryJSON(cmd, text)
	}

	printed := false
	outcome, err := queryService.Submit(cmd.Context(), text, queryDocID, func(result domain.QueryResult) {
		printQueryResult(cmd, result)
		printed = true
	})
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	if !printed {
		printQueryResult(cmd, outcome.Result)
	}

	cmd.Println()
	switch {
	case outcome.PartialSuccess():
		cmd.Printf("Note: answer not saved to history: %v\n", outcome.SaveErr)
	case outcome.Saved != nil:
		cmd.Printf("Saved as query %s\n", outcome.Saved.ID)
	}
	return nil
}

// runQueryJSON prints one document holding both the answer and the save
// outcome, so it waits for the save.
func runQueryJSON(cmd *cobra.Command, text string) error {
	outcome, err := queryService.Submit(cmd.Context(), text, queryDocID, nil)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	out := queryOutput{Result: outcome.Result, Saved: outcome.Saved}
	if outcome.SaveErr != nil {
		out.SaveError = outcome.SaveErr.Error()
	}
	return printJSON(cmd, out)
}
