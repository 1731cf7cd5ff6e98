// Package documents provides the documents list view for the TUI.
package documents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/claims-cli/internal/adapters/driving/display"
	"github.com/custodia-labs/claims-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/claims-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/claims-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/claims-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/claims-cli/internal/core/domain"
	"github.com/custodia-labs/claims-cli/internal/core/ports/driving"
)

// ErrNoDocumentService is returned when the document service is not available.
var ErrNoDocumentService = errors.New("document service not available")

// ActionOption represents a document action.
type ActionOption int

const (
	ActionAsk ActionOption = iota
	ActionRename
	ActionReanalyze
	ActionDelete
	ActionCancel
)

type mode int

const (
	modeList mode = iota
	modeMenu
	modeFilter
	modeRename
	modeConfirmDelete
)

// View lists uploaded documents and applies actions to them.
type View struct {
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	documentService driving.DocumentService
	ctx             context.Context

	field *input.Field

	documents    []domain.Document
	filter       string
	selected     int
	scrollOffset int
	mode         mode
	menuSelected ActionOption
	loading      bool
	err          error
	notice       string

	width  int
	height int
	ready  bool
}

// NewView creates a new documents view.
func NewView(s *styles.Styles, km *keymap.KeyMap, documentService driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:          s,
		keymap:          km,
		documentService: documentService,
		ctx:             context.Background(),
		field:           input.NewField(s, "Filter", ""),
		documents:       []domain.Document{},
	}
}

// WithContext sets the context of backend calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the list, fetching it on first use.
func (v *View) Init() tea.Cmd {
	v.mode = modeList
	v.notice = ""
	v.loading = true
	service := v.documentService
	ctx := v.ctx
	return func() tea.Msg {
		if service == nil {
			return messages.DocumentsLoaded{Err: ErrNoDocumentService}
		}
		err := service.Activate(ctx)
		return messages.DocumentsLoaded{Documents: service.Documents(), Err: err}
	}
}

// reload refetches the list from the backend.
func (v *View) reload() tea.Cmd {
	v.loading = true
	v.notice = ""
	service := v.documentService
	ctx := v.ctx
	return func() tea.Msg {
		if service == nil {
			return messages.DocumentsLoaded{Err: ErrNoDocumentService}
		}
		docs, err := service.Refresh(ctx)
		return messages.DocumentsLoaded{Documents: docs, Err: err}
	}
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case modeMenu:
			return v.handleMenuKeyMsg(msg)
		case modeFilter, modeRename:
			return v.handleInputKeyMsg(msg)
		case modeConfirmDelete:
			return v.handleConfirmKeyMsg(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.DocumentsLoaded:
		v.loading = false
		// A failed fetch keeps the previous list on screen.
		v.err = msg.Err
		if msg.Err == nil {
			v.applyFilter()
		}
		return v, nil

	case messages.DocumentUpdated:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.notice = "Updated document " + msg.DocumentID
		v.applyFilter()
		return v, nil

	case messages.DocumentDeleted:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.notice = "Deleted document " + msg.DocumentID
		v.applyFilter()
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// applyFilter reads the session list through the current filter.
func (v *View) applyFilter() {
	if v.documentService == nil {
		return
	}
	v.documents = v.documentService.Filter(v.filter)
	if v.selected >= len(v.documents) {
		v.selected = max(0, len(v.documents)-1)
	}
	v.adjustScroll()
}

// handleKeyMsg handles key presses in list mode.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case keymap.Matches(key, v.keymap.Down):
		if v.selected < len(v.documents)-1 {
			v.selected++
			v.adjustScroll()
		}
	case keymap.Matches(key, v.keymap.Select):
		if len(v.documents) > 0 {
			v.mode = modeMenu
			v.menuSelected = ActionAsk
		}
	case keymap.Matches(key, v.keymap.Filter):
		v.mode = modeFilter
		v.field.SetLabel("Filter")
		v.field.SetValue(v.filter)
		return v, v.field.Focus()
	case keymap.Matches(key, v.keymap.Reload):
		return v, v.reload()
	case keymap.Matches(key, v.keymap.Back):
		if v.filter != "" {
			v.filter = ""
			v.applyFilter()
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	return v, nil
}

// handleMenuKeyMsg handles key presses in action menu mode.
func (v *View) handleMenuKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Up):
		if v.menuSelected > ActionAsk {
			v.menuSelected--
		}
	case keymap.Matches(key, v.keymap.Down):
		if v.menuSelected < ActionCancel {
			v.menuSelected++
		}
	case keymap.Matches(key, v.keymap.Select):
		return v.handleMenuSelect()
	case keymap.Matches(key, v.keymap.Back):
		v.mode = modeList
	}

	return v, nil
}

// handleMenuSelect handles selection of an action.
func (v *View) handleMenuSelect() (*View, tea.Cmd) {
	doc := v.SelectedDocument()
	v.mode = modeList
	if doc == nil {
		return v, nil
	}

	switch v.menuSelected {
	case ActionAsk:
		return v, v.ask(doc.ID)
	case ActionRename:
		v.mode = modeRename
		v.field.SetLabel("Name")
		v.field.SetValue(doc.Name)
		return v, v.field.Focus()
	case ActionReanalyze:
		return v, v.mutate(doc.ID, func(ctx context.Context, s driving.DocumentService) tea.Msg {
			return messages.DocumentUpdated{DocumentID: doc.ID, Err: s.Reanalyze(ctx, doc.ID)}
		})
	case ActionDelete:
		v.mode = modeConfirmDelete
	}

	return v, nil
}

// ask makes the document current and opens the question view.
func (v *View) ask(id string) tea.Cmd {
	if v.documentService == nil {
		v.err = ErrNoDocumentService
		return nil
	}
	doc, err := v.documentService.Select(id)
	if err != nil {
		v.err = err
		return nil
	}
	selected := *doc
	return tea.Sequence(
		func() tea.Msg { return messages.DocumentSelected{Document: selected} },
		func() tea.Msg { return messages.ViewChanged{View: messages.ViewQuery} },
	)
}

func (v *View) mutate(id string, call func(context.Context, driving.DocumentService) tea.Msg) tea.Cmd {
	if v.documentService == nil {
		v.err = ErrNoDocumentService
		return nil
	}
	v.loading = true
	v.notice = ""
	service := v.documentService
	ctx := v.ctx
	return func() tea.Msg {
		return call(ctx, service)
	}
}

// handleInputKeyMsg handles key presses while filtering or renaming.
func (v *View) handleInputKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Back):
		v.mode = modeList
		v.field.Blur()
		return v, nil
	case keymap.Matches(key, v.keymap.Submit):
		value, ok := v.field.Submission()
		v.field.Blur()
		if v.mode == modeFilter {
			v.mode = modeList
			v.filter = value
			v.selected = 0
			v.scrollOffset = 0
			v.applyFilter()
			return v, nil
		}
		v.mode = modeList
		doc := v.SelectedDocument()
		if doc == nil || !ok || value == doc.Name {
			return v, nil
		}
		id := doc.ID
		return v, v.mutate(id, func(ctx context.Context, s driving.DocumentService) tea.Msg {
			return messages.DocumentUpdated{DocumentID: id, Err: s.Update(ctx, id, domain.DocumentPatch{Name: &value})}
		})
	}

	var cmd tea.Cmd
	v.field, cmd = v.field.Update(msg)
	return v, cmd
}

// handleConfirmKeyMsg asks before deleting.
func (v *View) handleConfirmKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	v.mode = modeList
	doc := v.SelectedDocument()
	if doc == nil || (msg.String() != "y" && msg.String() != "Y") {
		return v, nil
	}
	id := doc.ID
	return v, v.mutate(id, func(ctx context.Context, s driving.DocumentService) tea.Msg {
		return messages.DocumentDeleted{DocumentID: id, Err: s.Delete(ctx, id)}
	})
}

// adjustScroll adjusts the scroll offset to keep the selected item visible.
func (v *View) adjustScroll() {
	visibleItems := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visibleItems {
		v.scrollOffset = v.selected - visibleItems + 1
	}
}

// visibleItemCount returns the number of documents that fit on screen.
// Each document takes two lines.
func (v *View) visibleItemCount() int {
	available := (v.height - 10) / 2
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the documents view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	title := fmt.Sprintf("Documents (%d)", len(v.documents))
	if v.filter != "" {
		title = fmt.Sprintf("Documents matching %q (%d)", v.filter, len(v.documents))
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading documents..."))
		b.WriteString("\n\n")
	}
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}
	if v.notice != "" {
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n\n")
	}

	switch v.mode {
	case modeMenu:
		b.WriteString(v.renderActionMenu())
		return b.String()
	case modeFilter, modeRename:
		b.WriteString(v.field.View())
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[enter] apply  [esc] cancel"))
		return b.String()
	case modeConfirmDelete:
		if doc := v.SelectedDocument(); doc != nil {
			b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Delete %s? This cannot be undone. [y/N]", doc.Name)))
		}
		return b.String()
	}

	if len(v.documents) == 0 && !v.loading {
		b.WriteString(v.styles.Muted.Render("No documents found. Upload a policy to get started."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	current := ""
	if v.documentService != nil {
		if doc := v.documentService.Current(); doc != nil {
			current = doc.ID
		}
	}

	visibleItems := v.visibleItemCount()
	for i := v.scrollOffset; i < len(v.documents) && i < v.scrollOffset+visibleItems; i++ {
		b.WriteString(v.renderDocument(i, &v.documents[i], v.documents[i].ID == current))
		b.WriteString("\n")
	}

	if len(v.documents) > visibleItems {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visibleItems, len(v.documents)),
			len(v.documents))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderDocument renders a document as a name line and a detail line.
func (v *View) renderDocument(index int, doc *domain.Document, current bool) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	name := doc.Name
	maxNameLen := max(10, v.width-20)
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}
	if current {
		name += " *"
	}

	line := fmt.Sprintf("%s[%s] %s", indicator, doc.ID, name)
	if index == v.selected {
		line = v.styles.Selected.Render(line)
	} else {
		line = v.styles.Normal.Render(line)
	}

	status := v.styles.Muted.Render(string(doc.Status))
	switch doc.Status {
	case domain.DocumentCompleted:
		status = v.styles.Success.Render(string(doc.Status))
	case domain.DocumentFailed:
		status = v.styles.Error.Render(string(doc.Status))
	}
	detail := fmt.Sprintf("      %s  %s  %s", status,
		v.styles.Muted.Render(display.Bytes(doc.FileSize)),
		v.styles.Muted.Render(display.Time(doc.UploadedAt)))

	return line + "\n" + detail
}

// renderActionMenu renders the action menu overlay.
func (v *View) renderActionMenu() string {
	var b strings.Builder

	if doc := v.SelectedDocument(); doc != nil {
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Actions for: %s", doc.Name)))
		b.WriteString("\n\n")
	}

	options := []struct {
		action ActionOption
		label  string
	}{
		{ActionAsk, "Ask questions"},
		{ActionRename, "Rename"},
		{ActionReanalyze, "Reanalyse"},
		{ActionDelete, "Delete"},
		{ActionCancel, "Cancel"},
	}

	for _, opt := range options {
		if v.menuSelected == opt.action {
			b.WriteString(v.styles.Selected.Render("> " + opt.label))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + opt.label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] select  [esc] cancel"))

	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [enter] actions  [/] filter  [r] reload  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.field.SetWidth(width)
}

// Documents returns the documents shown.
func (v *View) Documents() []domain.Document {
	return v.documents
}

// SelectedIndex returns the currently selected document index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedDocument returns the currently selected document.
func (v *View) SelectedDocument() *domain.Document {
	if v.selected < len(v.documents) {
		return &v.documents[v.selected]
	}
	return nil
}

// IsShowingMenu returns true if the action menu is visible.
func (v *View) IsShowingMenu() bool {
	return v.mode == modeMenu
}

// Filter returns the active name filter.
func (v *View) Filter() string {
	return v.filter
}

// Loading reports whether a backend call is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
