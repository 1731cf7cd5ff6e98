package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/claims-cli/internal/adapters/driving/display"
	"github.com/custodia-labs/claims-cli/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage uploaded documents",
	Long:  `List, view, update, reanalyse, or delete policy documents on the backend.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentUpdateCmd = &cobra.Command{
	Use:   "update [doc-id]",
	Short: "Rename a document or change its status",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentUpdate,
}

var documentReanalyzeCmd = &cobra.Command{
	Use:   "reanalyze [doc-id]",
	Short: "Process a document again",
	Long:  `Marks a document as processing so the backend analyses it again.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentReanalyze,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

var (
	documentFilter  string
	documentJSON    bool
	documentName    string
	documentStatus  string
	documentSummary string
)

func init() {
	documentListCmd.Flags().StringVarP(&documentFilter, "filter", "f", "", "only show documents whose name contains this text")
	documentListCmd.Flags().BoolVar(&documentJSON, "json", false, "output documents as JSON")
	documentGetCmd.Flags().BoolVar(&documentJSON, "json", false, "output the document as JSON")

	documentUpdateCmd.Flags().StringVar(&documentName, "name", "", "new document name")
	documentUpdateCmd.Flags().StringVar(&documentStatus, "status", "", "new status (processing, completed, failed)")
	documentUpdateCmd.Flags().StringVar(&documentSummary, "summary", "", "new summary")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentUpdateCmd)
	documentCmd.AddCommand(documentReanalyzeCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errNotConfigured("document")
	}

	if _, err := documentService.Refresh(cmd.Context()); err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}
	docs := documentService.Filter(documentFilter)

	if documentJSON {
		if docs == nil {
			docs = []domain.Document{}
		}
		return printJSON(cmd, docs)
	}

	if len(docs) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	cmd.Printf("Documents (%d):\n", len(docs))
	cmd.Println()
	for i := range docs {
		cmd.Printf("  [%s] %s\n", docs[i].ID, docs[i].Name)
		cmd.Printf("      %s, %s, uploaded %s\n",
			docs[i].Status, display.Bytes(docs[i].FileSize), display.Time(docs[i].UploadedAt))
	}
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNotConfigured("document")
	}

	doc, err := documentService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	if documentJSON {
		return printJSON(cmd, doc)
	}
	printDocument(cmd, *doc)
	return nil
}

func runDocumentUpdate(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNotConfigured("document")
	}

	var patch domain.DocumentPatch
	if cmd.Flags().Changed("name") {
		patch.Name = &documentName
	}
	if cmd.Flags().Changed("status") {
		status, err := domain.ParseDocumentStatus(documentStatus)
		if err != nil {
			return err
		}
		patch.Status = &status
	}
	if cmd.Flags().Changed("summary") {
		patch.Summary = &documentSummary
	}

	if err := documentService.Update(cmd.Context(), args[0], patch); err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	cmd.Printf("Updated document: %s\n", args[0])
	return nil
}

func runDocumentReanalyze(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNotConfigured("document")
	}

	if err := documentService.Reanalyze(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to reanalyze document: %w", err)
	}
	cmd.Printf("Reanalysing document: %s\n", args[0])
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNotConfigured("document")
	}

	if err := documentService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	cmd.Printf("Deleted document: %s\n", args[0])
	return nil
}
