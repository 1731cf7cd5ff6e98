// Package cli provides the cobra command tree of the claims binary.
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/claims-cli/internal/core/ports/driven"
	"github.com/custodia-labs/claims-cli/internal/core/ports/driving"
	"github.com/custodia-labs/claims-cli/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Services used by commands. They are nil until SetServices is called,
// either by the bootstrap hook or directly by tests.
var (
	uploadService   driving.UploadService
	queryService    driving.QueryService
	documentService driving.DocumentService
	insightsService driving.InsightsService
	settingsStore   driven.SettingsStore
	metricsHandler  http.Handler
	newWatcher      func(dir string) driven.DirectoryWatcher
)

// Services bundles everything the commands need.
type Services struct {
	Upload   driving.UploadService
	Query    driving.QueryService
	Document driving.DocumentService
	Insights driving.InsightsService
	Settings driven.SettingsStore
	// Metrics serves the Prometheus registry. May be nil.
	Metrics http.Handler
	// Watcher creates a directory watcher for the watch command.
	Watcher func(dir string) driven.DirectoryWatcher
}

// Options are the global flag values handed to the bootstrap hook.
type Options struct {
	APIURL    string
	ConfigDir string
	Verbose   bool
}

// BootstrapFunc builds the services for one invocation. The returned
// cleanup func runs after the command finishes.
type BootstrapFunc func(opts Options) (*Services, func() error, error)

var (
	bootstrap BootstrapFunc
	cleanupFn func() error
	options   Options
)

// annotationOffline marks commands that run without backend services.
const annotationOffline = "offline"

var rootCmd = &cobra.Command{
	Use:   "claims",
	Short: "AI insurance claims assistant",
	Long: `claims uploads insurance policy PDFs to a claims backend and asks
questions about them. Each answer is a decision (approved, rejected,
no_data, no_match or error) with a justification and the policy clauses
it relies on.

Run "claims tui" for the interactive interface.`,
	SilenceUsage:       true,
	PersistentPreRunE:  persistentPreRun,
	PersistentPostRunE: persistentPostRun,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&options.Verbose, "verbose", "v", false, "enable debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&options.APIURL, "api-url", "", "backend base URL (overrides config and CLAIMS_API_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&options.ConfigDir, "config-dir", "", "configuration directory (default ~/.claims)")
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the hook that builds services on first use.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetServices injects the services used by commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	uploadService = s.Upload
	queryService = s.Query
	documentService = s.Document
	insightsService = s.Insights
	settingsStore = s.Settings
	metricsHandler = s.Metrics
	newWatcher = s.Watcher
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with a context that commands use
// for cancellation.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if cleanupErr := runCleanup(); cleanupErr != nil && err == nil {
		err = cleanupErr
	}
	return err
}

func persistentPreRun(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(options.Verbose)

	if cmd.Annotations[annotationOffline] == "true" {
		return nil
	}
	if bootstrap == nil || servicesConfigured() {
		return nil
	}

	logger.Section("bootstrap")
	services, cleanup, err := bootstrap(options)
	if err != nil {
		return fmt.Errorf("failed to initialise: %w", err)
	}
	SetServices(services)
	cleanupFn = cleanup
	return nil
}

func persistentPostRun(_ *cobra.Command, _ []string) error {
	return runCleanup()
}

func runCleanup() error {
	if cleanupFn == nil {
		return nil
	}
	fn := cleanupFn
	cleanupFn = nil
	if err := fn(); err != nil {
		return fmt.Errorf("failed to clean up: %w", err)
	}
	return nil
}

func servicesConfigured() bool {
	return uploadService != nil || queryService != nil || documentService != nil || insightsService != nil
}

// errNotConfigured returns the error commands report for a missing service.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}
