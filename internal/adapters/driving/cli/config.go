package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/claims-cli/internal/adapters/driving/display"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change client settings",
	Long: `Shows or changes the settings stored in config.toml. The
CLAIMS_API_BASE_URL environment variable and the --api-url flag override
the stored base URL without changing the file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show stored settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change stored settings",
	Long: `Changes one or more stored settings.

Examples:
  claims config set --base-url https://claims.example.com
  claims config set --timeout 2m --max-bytes 5242880`,
	Args: cobra.NoArgs,
	RunE: runConfigSet,
}

var (
	configBaseURL          string
	configTimeout          time.Duration
	configMaxBytes         int64
	configProgressInterval time.Duration
)

func init() {
	configSetCmd.Flags().StringVar(&configBaseURL, "base-url", "", "backend base URL")
	configSetCmd.Flags().DurationVar(&configTimeout, "timeout", 0, "request timeout, e.g. 5m")
	configSetCmd.Flags().Int64Var(&configMaxBytes, "max-bytes", 0, "largest file accepted for upload")
	configSetCmd.Flags().DurationVar(&configProgressInterval, "progress-interval", 0, "minimum time between progress updates")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	s := settingsStore.Settings()
	if path := settingsStore.Path(); path != "" {
		cmd.Printf("Config file:       %s\n", path)
	} else {
		cmd.Println("Config file:       none (defaults)")
	}
	cmd.Printf("Base URL:          %s\n", s.BaseURL)
	cmd.Printf("Timeout:           %s\n", s.Timeout)
	cmd.Printf("Max upload size:   %s\n", display.Bytes(s.MaxUploadBytes))
	cmd.Printf("Progress interval: %s\n", s.ProgressInterval)
	return nil
}

func runConfigSet(cmd *cobra.Command, _ []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	flags := cmd.Flags()
	if !flags.Changed("base-url") && !flags.Changed("timeout") &&
		!flags.Changed("max-bytes") && !flags.Changed("progress-interval") {
		return errors.New("nothing to change: pass at least one of --base-url, --timeout, --max-bytes, --progress-interval")
	}

	s := settingsStore.Settings()
	if flags.Changed("base-url") {
		s.BaseURL = configBaseURL
	}
	if flags.Changed("timeout") {
		s.Timeout = configTimeout
	}
	if flags.Changed("max-bytes") {
		s.MaxUploadBytes = configMaxBytes
	}
	if flags.Changed("progress-interval") {
		s.ProgressInterval = configProgressInterval
	}

	if err := settingsStore.Save(s); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	if settingsStore.Path() == "" {
		cmd.Println("Settings applied for this session only.")
		return nil
	}
	cmd.Println("Settings saved.")
	return nil
}
