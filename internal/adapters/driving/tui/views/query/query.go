// Package query provides the claim question view for the TUI.
package query

import (
	"context"
	"fmt"
	"strings"

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

// historyShown is how many saved questions are listed under the answer.
const historyShown = 5

// View asks claim questions about the current document.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	field     *input.Field
	statusbar *status.Bar

	queryService    driving.QueryService
	documentService driving.DocumentService
	ctx             context.Context

	cancel  context.CancelFunc
	events  chan tea.Msg
	attempt int

	document *domain.Document
	result   *domain.QueryResult
	history  []domain.QueryResult
	err      error
	saving   bool
	sample   int

	// answering is true once an answer is shown; typing then requires "n".
	answering bool

	width  int
	height int
	ready  bool
}

// NewView creates a new query view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	queryService driving.QueryService,
	documentService driving.DocumentService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:          s,
		keymap:          km,
		field:           input.NewField(s, "Question", "Is knee surgery covered for a 46 year old?"),
		statusbar:       status.NewBar(s, km),
		queryService:    queryService,
		documentService: documentService,
		ctx:             context.Background(),
		width:           80,
		height:          24,
	}
	v.statusbar.SetHints(km.QueryHelp())
	return v
}

// WithContext sets the parent context of questions.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init picks up the current document and loads its history.
func (v *View) Init() tea.Cmd {
	v.document = nil
	if v.documentService != nil {
		v.document = v.documentService.Current()
	}
	if v.document == nil {
		v.history = nil
		return v.field.Init()
	}
	return tea.Batch(v.field.Init(), v.loadHistory(v.document.ID))
}

func (v *View) loadHistory(docID string) tea.Cmd {
	service := v.queryService
	ctx := v.ctx
	return func() tea.Msg {
		if service == nil {
			return messages.HistoryLoaded{DocumentID: docID, Err: ErrNoQueryService}
		}
		results, err := service.History(ctx, docID)
		return messages.HistoryLoaded{DocumentID: docID, Results: results, Err: err}
	}
}

// Update handles messages for the query view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.HistoryLoaded:
		if v.document == nil || msg.DocumentID != v.document.ID {
			return v, nil
		}
		if msg.Err != nil {
			v.statusbar.Set(status.StateWarning, "History unavailable: "+msg.Err.Error())
			return v, nil
		}
		v.history = msg.Results
		return v, nil

	case messages.QueryAnswered:
		if msg.Attempt != v.attempt {
			return v, nil
		}
		result := msg.Result
		v.result = &result
		v.answering = true
		v.saving = true
		v.statusbar.Set(status.StateLoading, "Saving to history...")
		v.statusbar.SetHints(v.keymap.AnswerHelp())
		return v, messages.Listen(v.events)

	case messages.QueryCompleted:
		if msg.Attempt != v.attempt {
			return v, nil
		}
		v.handleCompleted(msg)
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	if keymap.Matches(key, v.keymap.Back) {
		v.Cancel()
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.Busy() {
		return v, nil
	}

	if v.answering {
		if keymap.Matches(key, v.keymap.NewQuestion) {
			v.answering = false
			v.field.Reset()
			v.statusbar.SetHints(v.keymap.QueryHelp())
			return v, v.field.Focus()
		}
		return v, nil
	}

	switch {
	case keymap.Matches(key, v.keymap.Submit):
		return v, v.submit(v.field.Value())
	case keymap.Matches(key, v.keymap.Sample):
		v.nextSample()
		return v, nil
	}

	var cmd tea.Cmd
	v.field, cmd = v.field.Update(msg)
	return v, cmd
}

func (v *View) nextSample() {
	if v.queryService == nil {
		return
	}
	samples := v.queryService.SampleQuestions()
	if len(samples) == 0 {
		return
	}
	i := v.sample % len(samples)
	v.field.SetValue(samples[i])
	v.field.SetHint(fmt.Sprintf("Sample %d of %d", i+1, len(samples)))
	v.sample++
}

// submit sends the question in the background. The answer arrives as
// QueryAnswered before the save; QueryCompleted follows.
func (v *View) submit(text string) tea.Cmd {
	v.err = nil
	v.result = nil
	if v.queryService == nil {
		v.fail(ErrNoQueryService)
		return nil
	}

	docID := ""
	if v.document != nil {
		docID = v.document.ID
	}

	ctx, cancel := context.WithCancel(v.ctx)
	v.cancel = cancel
	v.attempt++
	attempt := v.attempt
	events := make(chan tea.Msg, 2)
	v.events = events
	service := v.queryService

	send := func(msg tea.Msg) {
		select {
		case events <- msg:
		case <-ctx.Done():
		}
	}

	go func() {
		defer close(events)
		outcome, err := service.Submit(ctx, text, docID, func(r domain.QueryResult) {
			send(messages.QueryAnswered{Attempt: attempt, Result: r})
		})
		send(messages.QueryCompleted{Attempt: attempt, Outcome: outcome, Err: err})
	}()

	v.field.SetHint("")
	v.field.Blur()
	v.statusbar.Set(status.StateLoading, "Analysing your question...")
	return messages.Listen(events)
}

func (v *View) handleCompleted(msg messages.QueryCompleted) {
	v.release()
	v.saving = false

	if msg.Err != nil {
		v.answering = false
		v.field.Focus()
		v.statusbar.SetHints(v.keymap.QueryHelp())
		v.fail(msg.Err)
		return
	}

	if msg.Outcome == nil {
		v.statusbar.Clear()
		return
	}

	result := msg.Outcome.Result
	v.result = &result
	v.answering = true
	v.statusbar.SetHints(v.keymap.AnswerHelp())

	switch {
	case msg.Outcome.PartialSuccess():
		v.statusbar.Set(status.StateWarning, "Answer not saved to history: "+msg.Outcome.SaveErr.Error())
	case msg.Outcome.Saved != nil:
		v.history = append([]domain.QueryResult{*msg.Outcome.Saved}, v.history...)
		v.statusbar.Set(status.StateSuccess, "Saved to history")
	default:
		v.statusbar.Clear()
	}
}

func (v *View) fail(err error) {
	v.err = err
	v.statusbar.Set(status.StateError, err.Error())
}

func (v *View) release() {
	if v.cancel != nil {
		v.cancel()
	}
	v.cancel = nil
	v.events = nil
}

// Cancel stops the question in flight. Messages from it are ignored.
func (v *View) Cancel() {
	if v.cancel == nil {
		return
	}
	v.release()
	v.saving = false
	v.attempt++
}

// Busy reports whether a question is in flight, including its save.
func (v *View) Busy() bool {
	return v.cancel != nil
}

// Reset clears the answer and question.
func (v *View) Reset() {
	v.Cancel()
	v.result = nil
	v.err = nil
	v.answering = false
	v.field.Reset()
	v.field.Focus()
	v.statusbar.Clear()
	v.statusbar.SetHints(v.keymap.QueryHelp())
}

// View renders the query view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 16)
	sections = append(sections, v.styles.Title.Render("Ask a question"), "")

	if v.document != nil {
		sections = append(sections, v.styles.Muted.Render("Document: ")+
			v.styles.Normal.Render(fmt.Sprintf("%s (#%s)", v.document.Name, v.document.ID)))
	} else {
		sections = append(sections, v.styles.Warning.Render(
			"No document selected. Upload a policy or pick one under Documents."))
	}
	sections = append(sections, "", v.field.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.result != nil {
		sections = append(sections, v.renderResult(*v.result), "")
	}

	if len(v.history) > 0 {
		sections = append(sections, v.renderHistory(), "")
	}

	sections = append(sections, v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderResult(r domain.QueryResult) string {
	wrap := lipgloss.NewStyle().Width(max(20, v.width-4))

	lines := []string{
		v.styles.Subtitle.Render("Decision: ") + v.styles.Decision(r.Decision),
		v.styles.Subtitle.Render("Amount:   ") + v.styles.Normal.Render(display.Amount(r.ClaimAmount)),
	}
	if r.Justification != "" {
		lines = append(lines, "", wrap.Render(r.Justification))
	}
	if len(r.PolicyClauses) > 0 {
		lines = append(lines, "", v.styles.Subtitle.Render("Policy clauses"))
		for _, clause := range r.PolicyClauses {
			lines = append(lines, wrap.Render("  - "+clause))
		}
	}
	for _, ref := range r.ReferenceDetails {
		lines = append(lines, v.styles.Muted.Render(fmt.Sprintf("  [%s] %s", ref.Label, ref.Snippet)))
	}
	return v.styles.Border.Padding(0, 1).Render(strings.Join(lines, "\n"))
}

func (v *View) renderHistory() string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("History (%d)", len(v.history))))
	for i, h := range v.history {
		if i == historyShown {
			b.WriteString("\n" + v.styles.Muted.Render(fmt.Sprintf("  ... %d more", len(v.history)-historyShown)))
			break
		}
		b.WriteString(fmt.Sprintf("\n  %s  %s  %s",
			v.styles.Muted.Render(display.Time(h.CreatedAt)),
			v.styles.Decision(h.Decision),
			v.styles.Normal.Render(h.QueryText)))
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.field.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// SetQuestion sets the question input.
func (v *View) SetQuestion(text string) {
	v.field.SetValue(text)
}

// Question returns the question input.
func (v *View) Question() string {
	return v.field.Value()
}

// Result returns the answer shown, or nil.
func (v *View) Result() *domain.QueryResult {
	return v.result
}

// History returns the saved questions shown.
func (v *View) History() []domain.QueryResult {
	return v.history
}

// Document returns the document questions go to, or nil.
func (v *View) Document() *domain.Document {
	return v.document
}

// Saving reports whether the answer is being saved.
func (v *View) Saving() bool {
	return v.saving
}

// Err returns the last error, if any.
func (v *View) Err() error {
	return v.err
}

// StatusBar exposes the status bar for inspection.
func (v *View) StatusBar() *status.Bar {
	return v.statusbar
}
