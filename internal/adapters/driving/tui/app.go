package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/claims-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/claims-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/claims-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/claims-cli/internal/adapters/driving/tui/views/documents"
	"github.com/custodia-labs/claims-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/claims-cli/internal/adapters/driving/tui/views/query"
	"github.com/custodia-labs/claims-cli/internal/adapters/driving/tui/views/stats"
	"github.com/custodia-labs/claims-cli/internal/adapters/driving/tui/views/upload"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the parent of every backend call made by the views.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	menuView      *menu.View
	uploadView    *upload.View
	queryView     *query.View
	documentsView *documents.View
	statsView     *stats.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingUploadService)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	app := &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		keymap:        km,
		help:          help.New(),
		menuView:      menu.NewView(s, km),
		uploadView:    upload.NewView(s, km, ports.Upload),
		queryView:     query.NewView(s, km, ports.Query, ports.Document),
		documentsView: documents.NewView(s, km, ports.Document),
		statsView:     stats.NewView(s, km, ports.Insights),
		currentView:   messages.ViewMenu,
	}
	app.syncCurrentDocument()
	return app, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.uploadView.WithContext(ctx)
	a.queryView.WithContext(ctx)
	a.documentsView.WithContext(ctx)
	a.statsView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("claims - AI insurance claims assistant"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message router
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), a.keymap.Quit) {
			a.cancelInFlight()
			return a, tea.Quit
		}
		return a.handleKeyMsg(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.DocumentSelected:
		a.menuView.SetCurrentDocument(msg.Document.Name)
		return a, nil

	case messages.UploadProgressed, messages.UploadCompleted:
		a.uploadView, cmd = a.uploadView.Update(msg)
		return a, cmd

	case messages.QueryAnswered, messages.QueryCompleted, messages.HistoryLoaded:
		a.queryView, cmd = a.queryView.Update(msg)
		return a, cmd

	case messages.DocumentsLoaded, messages.DocumentUpdated:
		a.documentsView, cmd = a.documentsView.Update(msg)
		return a, cmd

	case messages.DocumentDeleted:
		a.documentsView, cmd = a.documentsView.Update(msg)
		a.syncCurrentDocument()
		return a, cmd

	case messages.StatsLoaded:
		a.statsView, cmd = a.statsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewDocuments {
			a.documentsView, cmd = a.documentsView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		a.cancelInFlight()
		return a, tea.Quit
	}

	return a, a.forward(msg)
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.currentView {
	case messages.ViewMenu:
		if keymap.Matches(msg.String(), a.keymap.Help) {
			return a, a.switchTo(messages.ViewHelp)
		}
	case messages.ViewHelp:
		if keymap.Matches(msg.String(), a.keymap.Back) {
			return a, a.switchTo(messages.ViewMenu)
		}
		return a, nil
	}
	return a, a.forward(msg)
}

// forward hands a message to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewUpload:
		a.uploadView, cmd = a.uploadView.Update(msg)
	case messages.ViewQuery:
		a.queryView, cmd = a.queryView.Update(msg)
	case messages.ViewDocuments:
		a.documentsView, cmd = a.documentsView.Update(msg)
	case messages.ViewStats:
		a.statsView, cmd = a.statsView.Update(msg)
	case messages.ViewHelp:
		// Help has no state.
	}
	return cmd
}

// switchTo activates a view and runs its initial commands.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view

	switch view {
	case messages.ViewUpload:
		a.uploadView.Reset()
		return a.uploadView.Init()
	case messages.ViewQuery:
		a.queryView.Reset()
		return a.queryView.Init()
	case messages.ViewDocuments:
		return a.documentsView.Init()
	case messages.ViewStats:
		return a.statsView.Init()
	case messages.ViewMenu:
		a.syncCurrentDocument()
	case messages.ViewHelp:
		// Static.
	}
	return nil
}

// syncCurrentDocument shows the session's current document on the menu.
func (a *App) syncCurrentDocument() {
	name := ""
	if doc := a.ports.Document.Current(); doc != nil {
		name = doc.Name
	}
	a.menuView.SetCurrentDocument(name)
}

func (a *App) cancelInFlight() {
	a.uploadView.Cancel()
	a.queryView.Cancel()
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewUpload:
		return a.uploadView.View()
	case messages.ViewQuery:
		return a.queryView.View()
	case messages.ViewDocuments:
		return a.documentsView.View()
	case messages.ViewStats:
		return a.statsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + "\n\n" +
		a.help.FullHelpView(a.keymap.FullHelp()) + "\n\n" +
		a.styles.Muted.Render("Upload a policy PDF, then ask whether a claim is covered.\n"+
			"Answers show the decision, the amount and the policy clauses behind it.") + "\n\n" +
		a.styles.Help.Render("[esc] back to menu")
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.menuView.SetDimensions(width, height)
	a.uploadView.SetDimensions(width, height)
	a.queryView.SetDimensions(width, height)
	a.documentsView.SetDimensions(width, height)
	a.statsView.SetDimensions(width, height)
}
