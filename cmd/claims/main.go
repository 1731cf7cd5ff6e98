// Command claims is a terminal client for the AI insurance claims backend.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/claims-cli/internal/adapters/driven/backend/httpapi"
	"github.com/custodia-labs/claims-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/claims-cli/internal/adapters/driven/pdf"
	"github.com/custodia-labs/claims-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/claims-cli/internal/adapters/driven/watch"
	"github.com/custodia-labs/claims-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/claims-cli/internal/core/ports/driven"
	"github.com/custodia-labs/claims-cli/internal/core/services"
	"github.com/custodia-labs/claims-cli/internal/logger"
	"github.com/custodia-labs/claims-cli/internal/metrics"
)

// version is overridden with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// bootstrap wires the driven adapters into the core services.
func bootstrap(opts cli.Options) (*cli.Services, func() error, error) {
	log := logger.For("bootstrap")

	var store driven.SettingsStore
	fileStore, err := file.NewSettingsStore(opts.ConfigDir)
	if err != nil {
		if opts.ConfigDir != "" {
			return nil, nil, fmt.Errorf("failed to open settings: %w", err)
		}
		log.Warn("settings file unavailable, using defaults: %v", err)
		store = memory.NewSettingsStore()
	} else {
		store = fileStore
	}

	settings, err := file.Resolve(store.Settings(), os.Getenv, opts.APIURL)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("backend %s, timeout %s", settings.BaseURL, settings.Timeout)

	collector := metrics.NewCollector()
	client := httpapi.NewClient(httpapi.Config{
		BaseURL:  settings.BaseURL,
		Timeout:  settings.Timeout,
		Observer: collector,
	})
	backend := httpapi.NewGateway(client)

	session := memory.NewSessionStore()
	inspector := pdf.NewInspector(settings.MaxUploadBytes)

	upload := services.NewUploadService(backend, session, inspector).
		WithProgressInterval(settings.ProgressInterval)

	return &cli.Services{
		Upload:   upload,
		Query:    services.NewQueryService(backend, session),
		Document: services.NewDocumentService(backend, session),
		Insights: services.NewInsightsService(backend),
		Settings: store,
		Metrics:  collector.Handler(),
		Watcher: func(dir string) driven.DirectoryWatcher {
			return watch.New(dir, 0)
		},
	}, session.Close, nil
}
