// Package upload provides the policy upload view for the TUI.
package upload

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/claims-cli/internal/adapters/driving/display"
	"github.com/custodia-labs/claims-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/claims-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/claims-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/claims-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/claims-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/claims-cli/internal/core/domain"
	"github.com/custodia-labs/claims-cli/internal/core/ports/driving"
)

// eventBuffer bounds progress messages waiting for the view.
const eventBuffer = 16

// View asks for a PDF path, uploads it and shows progress.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	field     *input.Field
	statusbar *status.Bar

	uploadService driving.UploadService
	ctx           context.Context

	// cancel stops the upload in flight. It is nil when idle.
	cancel  context.CancelFunc
	events  chan tea.Msg
	attempt int

	file     *domain.UploadFile
	progress domain.UploadProgress
	document *domain.Document
	err      error

	width  int
	height int
	ready  bool
}

// NewView creates a new upload view.
func NewView(s *styles.Styles, km *keymap.KeyMap, uploadService driving.UploadService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		field:         input.NewField(s, "File", "Path to a policy PDF..."),
		statusbar:     status.NewBar(s, km),
		uploadService: uploadService,
		ctx:           context.Background(),
		progress:      domain.IdleProgress(),
		width:         80,
		height:        24,
	}
}

// WithContext sets the parent context of uploads.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init focuses the path input.
func (v *View) Init() tea.Cmd {
	return v.field.Init()
}

// Update handles messages for the upload view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.UploadProgressed:
		if msg.Attempt != v.attempt {
			return v, nil
		}
		v.progress = msg.Progress
		v.statusbar.Set(status.StateLoading, msg.Progress.Message)
		return v, messages.Listen(v.events)

	case messages.UploadCompleted:
		if msg.Attempt != v.attempt {
			return v, nil
		}
		return v, v.handleCompleted(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if keymap.Matches(msg.String(), v.keymap.Back) {
		v.Cancel()
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.Busy() {
		return v, nil
	}

	if keymap.Matches(msg.String(), v.keymap.Submit) {
		path, ok := v.field.Submission()
		if !ok {
			return v, nil
		}
		return v, v.start(path)
	}

	var cmd tea.Cmd
	v.field, cmd = v.field.Update(msg)
	return v, cmd
}

// start validates the file and launches the upload in the background.
// Progress and the result arrive as messages on v.events.
func (v *View) start(path string) tea.Cmd {
	v.document = nil
	v.err = nil

	if v.uploadService == nil {
		v.fail(ErrNoUploadService)
		return nil
	}

	file, err := v.uploadService.Select(path)
	v.progress = v.uploadService.Progress()
	if err != nil {
		v.file = nil
		v.fail(err)
		return nil
	}
	v.file = file

	ctx, cancel := context.WithCancel(v.ctx)
	v.cancel = cancel
	v.attempt++
	attempt := v.attempt
	events := make(chan tea.Msg, eventBuffer)
	v.events = events
	service := v.uploadService

	send := func(msg tea.Msg) {
		select {
		case events <- msg:
		case <-ctx.Done():
		}
	}

	go func() {
		defer close(events)
		doc, err := service.Upload(ctx, *file, func(p domain.UploadProgress) {
			send(messages.UploadProgressed{Attempt: attempt, Progress: p})
		})
		send(messages.UploadCompleted{Attempt: attempt, Document: doc, Err: err})
	}()

	v.field.Blur()
	v.statusbar.Set(status.StateLoading, "Uploading "+file.Name+"...")
	return messages.Listen(events)
}

func (v *View) handleCompleted(msg messages.UploadCompleted) tea.Cmd {
	v.release()
	v.field.Focus()
	if v.uploadService != nil {
		v.progress = v.uploadService.Progress()
	}

	if msg.Err != nil {
		v.fail(msg.Err)
		return nil
	}

	v.document = msg.Document
	v.field.Reset()
	v.statusbar.Set(status.StateSuccess, v.progress.Message)
	if msg.Document == nil {
		return nil
	}
	doc := *msg.Document
	return func() tea.Msg {
		return messages.DocumentSelected{Document: doc}
	}
}

func (v *View) fail(err error) {
	v.err = err
	v.statusbar.Set(status.StateError, err.Error())
}

// release forgets the upload in flight without cancelling it.
func (v *View) release() {
	if v.cancel != nil {
		v.cancel()
	}
	v.cancel = nil
	v.events = nil
}

// Cancel stops the upload in flight. Messages from it are ignored.
func (v *View) Cancel() {
	if v.cancel == nil {
		return
	}
	v.release()
	v.attempt++
}

// Busy reports whether an upload is in flight.
func (v *View) Busy() bool {
	return v.cancel != nil
}

// Reset prepares the view for a new file.
func (v *View) Reset() {
	v.Cancel()
	if v.uploadService != nil {
		v.uploadService.Reset()
	}
	v.progress = domain.IdleProgress()
	v.file = nil
	v.document = nil
	v.err = nil
	v.field.Reset()
	v.field.Focus()
	v.statusbar.Clear()
}

// View renders the upload view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)
	sections = append(sections,
		v.styles.Title.Render("Upload policy"),
		v.styles.Muted.Render("PDF files only. Esc cancels an upload in flight."),
		"",
		v.field.View(),
		"",
	)

	if v.file != nil {
		sections = append(sections, v.styles.Normal.Render(fmt.Sprintf("%s  %s, %d pages",
			v.file.Name, display.Bytes(v.file.Size), v.file.Pages)))
	}

	if v.progress.Status != domain.UploadIdle {
		bar := v.styles.ProgressBar(v.progress.Progress, max(10, v.width-20))
		sections = append(sections, fmt.Sprintf("%s %3d%%", bar, v.progress.Progress))
		if v.progress.Message != "" {
			sections = append(sections, v.styles.Muted.Render(v.progress.Message))
		}
	}

	if v.err != nil {
		sections = append(sections, "", v.styles.Error.Render("Error: "+v.err.Error()))
	}

	if v.document != nil {
		sections = append(sections, "",
			v.styles.Success.Render(fmt.Sprintf("Document %s is ready for questions.", v.document.ID)),
			v.styles.Muted.Render(fmt.Sprintf("%s  status: %s", v.document.Name, v.document.Status)),
		)
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.field.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Progress returns the last progress shown.
func (v *View) Progress() domain.UploadProgress {
	return v.progress
}

// Document returns the uploaded document, or nil.
func (v *View) Document() *domain.Document {
	return v.document
}

// Err returns the last error, if any.
func (v *View) Err() error {
	return v.err
}

// SetPath sets the path input.
func (v *View) SetPath(path string) {
	v.field.SetValue(path)
}
