package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/claims-cli/internal/adapters/driving/display"
	"github.com/custodia-labs/claims-cli/internal/core/domain"
)

var (
	reportFormat string
	reportOutput string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export a claims report",
	Long: `Exports every saved question as a report. JSON reports are printed
unless --output is given; PDF reports require --output.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", string(domain.ReportJSON), "report format (json or pdf)")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "write the report to this file")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	if insightsService == nil {
		return errNotConfigured("insights")
	}

	format, err := domain.ParseReportFormat(reportFormat)
	if err != nil {
		return err
	}
	if format == domain.ReportPDF && reportOutput == "" {
		return errors.New("PDF reports require --output")
	}

	report, err := insightsService.Report(cmd.Context(), format)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	rows := report.Rows
	if rows == nil {
		rows = []domain.ReportRow{}
	}

	if reportOutput == "" {
		return printJSON(cmd, rows)
	}

	data := report.PDF
	if format == domain.ReportJSON {
		if data, err = marshalIndent(rows); err != nil {
			return err
		}
	}
	if err := os.WriteFile(reportOutput, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	cmd.Printf("Wrote %s report to %s (%s)\n", format, reportOutput, display.Bytes(int64(len(data))))
	return nil
}
