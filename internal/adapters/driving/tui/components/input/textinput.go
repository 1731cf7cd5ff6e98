// Package input provides the labelled entry field used by the question,
// upload and document views.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/claims-cli/internal/adapters/driving/tui/styles"
)

const (
	defaultWidth = 50
	minWidth     = 20
	// labelChrome covers the ": " after the label plus the input border
	// and padding.
	labelChrome = 6
)

// Field is a single-line entry with a label and an optional hint line
// rendered underneath, such as "Sample 2 of 5" on the question field.
type Field struct {
	ti     textinput.Model
	styles *styles.Styles
	label  string
	hint   string
	width  int
}

// NewField returns a focused field.
func NewField(s *styles.Styles, label, placeholder string) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 1024
	ti.Focus()

	f := &Field{ti: ti, styles: s, label: label}
	f.SetWidth(defaultWidth)
	return f
}

// Init starts the cursor blinking.
func (f *Field) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards key and blink messages to the underlying input. Typing
// clears any hint.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok && f.ti.Focused() {
		f.hint = ""
	}
	var cmd tea.Cmd
	f.ti, cmd = f.ti.Update(msg)
	return f, cmd
}

// View renders the label beside the input, with the hint below it. The
// label is highlighted while the field has focus.
func (f *Field) View() string {
	labelStyle := f.styles.Muted
	if f.ti.Focused() {
		labelStyle = f.styles.Selected
	}

	row := lipgloss.JoinHorizontal(lipgloss.Center,
		labelStyle.Render(f.label+": "),
		f.styles.InputField.Render(f.ti.View()),
	)
	if f.hint == "" {
		return row
	}
	return lipgloss.JoinVertical(lipgloss.Left, row, f.styles.Muted.Render(f.hint))
}

// Value returns the raw text, untrimmed.
func (f *Field) Value() string {
	return f.ti.Value()
}

// Submission returns the trimmed text and whether there is anything to
// submit.
func (f *Field) Submission() (string, bool) {
	v := strings.TrimSpace(f.ti.Value())
	return v, v != ""
}

// SetValue replaces the text and puts the cursor at the end.
func (f *Field) SetValue(value string) {
	f.ti.SetValue(value)
	f.ti.CursorEnd()
}

// Hint returns the line shown under the input.
func (f *Field) Hint() string {
	return f.hint
}

// SetHint sets the line shown under the input; empty hides it.
func (f *Field) SetHint(hint string) {
	f.hint = hint
}

func (f *Field) Label() string {
	return f.label
}

// SetLabel relabels the field and refits the input to the current width.
func (f *Field) SetLabel(label string) {
	f.label = label
	f.SetWidth(f.width)
}

func (f *Field) Focus() tea.Cmd {
	return f.ti.Focus()
}

func (f *Field) Blur() {
	f.ti.Blur()
}

func (f *Field) Focused() bool {
	return f.ti.Focused()
}

// SetWidth sizes the whole row, label included.
func (f *Field) SetWidth(width int) {
	f.width = width
	inputWidth := width - lipgloss.Width(f.label) - labelChrome
	if inputWidth < minWidth {
		inputWidth = minWidth
	}
	f.ti.Width = inputWidth
}

func (f *Field) Width() int {
	return f.width
}

// Reset clears the text and the hint.
func (f *Field) Reset() {
	f.ti.Reset()
	f.hint = ""
}
