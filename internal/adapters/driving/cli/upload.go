package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/claims-cli/internal/adapters/driving/display"
	"github.com/custodia-labs/claims-cli/internal/core/domain"
)

var uploadJSON bool

var uploadCmd = &cobra.Command{
	Use:   "upload [file.pdf]",
	Short: "Upload a policy document",
	Long: `Uploads a PDF policy document to the claims backend. The file is
checked locally first: it must be a PDF no larger than upload.max_bytes.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().BoolVar(&uploadJSON, "json", false, "output the document as JSON")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if uploadService == nil {
		return errNotConfigured("upload")
	}

	doc, err := uploadPath(cmd, args[0], !uploadJSON)
	if err != nil {
		return err
	}

	if uploadJSON {
		return printJSON(cmd, doc)
	}
	printDocument(cmd, *doc)
	return nil
}

// uploadPath validates and uploads one file, optionally rendering progress.
func uploadPath(cmd *cobra.Command, path string, showProgress bool) (*domain.Document, error) {
	file, err := uploadService.Select(path)
	if err != nil {
		return nil, fmt.Errorf("failed to select file: %w", err)
	}

	var printer *progressPrinter
	var observe func(domain.UploadProgress)
	if showProgress {
		cmd.Printf("Uploading %s (%s, %d pages)\n", file.Name, display.Bytes(file.Size), file.Pages)
		printer = newProgressPrinter(cmd.OutOrStdout())
		observe = printer.observe
	}

	doc, err := uploadService.Upload(cmd.Context(), *file, observe)
	if printer != nil {
		printer.finish()
	}
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	return doc, nil
}

func printDocument(cmd *cobra.Command, doc domain.Document) {
	cmd.Printf("ID:        %s\n", doc.ID)
	cmd.Printf("Name:      %s\n", doc.Name)
	cmd.Printf("Size:      %s\n", display.Bytes(doc.FileSize))
	cmd.Printf("Status:    %s\n", doc.Status)
	cmd.Printf("Uploaded:  %s\n", display.Time(doc.UploadedAt))
	if doc.ProcessedAt != nil {
		cmd.Printf("Processed: %s\n", display.Time(*doc.ProcessedAt))
	}
	if doc.Summary != "" {
		cmd.Printf("Summary:   %s\n", doc.Summary)
	}
}
