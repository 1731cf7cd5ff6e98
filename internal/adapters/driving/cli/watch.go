package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Upload PDFs dropped into a directory",
	Long: `Watches a directory and uploads every PDF that is created or
rewritten in it, once writes have settled. Files that fail validation or
upload are reported and skipped. Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if uploadService == nil {
		return errNotConfigured("upload")
	}
	if newWatcher == nil {
		return errors.New("watcher not configured")
	}

	watcher := newWatcher(args[0])
	defer watcher.Close()

	ctx := cmd.Context()
	paths, err := watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", args[0], err)
	}

	cmd.Printf("Watching %s for PDF files...\n", args[0])

	uploaded, failed := 0, 0
	for path := range paths {
		doc, err := uploadPath(cmd, path, true)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			failed++
			cmd.PrintErrf("Skipped %s: %v\n", path, err)
			continue
		}
		uploaded++
		cmd.Printf("Uploaded %s as document %s\n", doc.Name, doc.ID)
	}

	cmd.Printf("Stopped watching: %d uploaded, %d failed\n", uploaded, failed)
	return nil
}
