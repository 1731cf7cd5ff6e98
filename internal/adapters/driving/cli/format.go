package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/claims-cli/internal/adapters/driving/display"
	"github.com/custodia-labs/claims-cli/internal/core/domain"
)

// printJSON writes v as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := marshalIndent(v)
	if err != nil {
		return err
	}
	cmd.Println(string(data))
	return nil
}

func marshalIndent(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}
	return data, nil
}

// printQueryResult writes a decision with its supporting clauses.
func printQueryResult(cmd *cobra.Command, result domain.QueryResult) {
	cmd.Printf("Decision:      %s\n", display.Decision(result.Decision))
	cmd.Printf("Amount:        %s\n", display.Amount(result.ClaimAmount))
	if result.Justification != "" {
		cmd.Printf("Justification: %s\n", result.Justification)
	}
	if len(result.PolicyClauses) > 0 {
		cmd.Println("Policy clauses:")
		for _, clause := range result.PolicyClauses {
			cmd.Printf("  - %s\n", clause)
		}
	}
	for _, ref := range result.ReferenceDetails {
		cmd.Printf("  [%s] %s\n", ref.Label, ref.Snippet)
	}
}
