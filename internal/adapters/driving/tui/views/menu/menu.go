// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/claims-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/claims-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/claims-cli/internal/adapters/driving/tui/styles"
)

// Item is one menu entry.
type Item struct {
	Label       string
	Description string
	View        messages.ViewType
	Quit        bool
}

// View is the main menu.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	items    []Item
	selected int
	current  string
	width    int
	height   int
	ready    bool
}

// NewView creates a new menu view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles: s,
		keymap: km,
		items: []Item{
			{Label: "Upload policy", Description: "Send a PDF policy to the backend", View: messages.ViewUpload},
			{Label: "Ask a question", Description: "Check a claim against the current document", View: messages.ViewQuery},
			{Label: "Documents", Description: "Browse, rename, reanalyse or delete", View: messages.ViewDocuments},
			{Label: "Claim statistics", Description: "Approval rate and amounts", View: messages.ViewStats},
			{Label: "Help", Description: "Key bindings", View: messages.ViewHelp},
			{Label: "Quit", Quit: true},
		},
		width:  80,
		height: 24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg.String())
	}
	return v, nil
}

func (v *View) handleKey(k string) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(k, v.keymap.Up):
		v.selected = max(0, v.selected-1)
	case keymap.Matches(k, v.keymap.Down):
		v.selected = min(len(v.items)-1, v.selected+1)
	case keymap.Matches(k, v.keymap.Select):
		return v, v.choose(v.selected)
	case k == "q":
		return v, tea.Quit
	case len(k) == 1 && k[0] >= '1' && k[0] <= '9':
		// Digits jump straight to an entry.
		i := int(k[0] - '1')
		if i < len(v.items) {
			v.selected = i
			return v, v.choose(i)
		}
	}
	return v, nil
}

func (v *View) choose(i int) tea.Cmd {
	item := v.items[i]
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: item.View}
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Claims"))
	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render("AI insurance claims assistant"))
	b.WriteString("\n\n")

	if v.current != "" {
		b.WriteString(v.styles.Muted.Render("Current document: "))
		b.WriteString(v.styles.Normal.Render(v.current))
		b.WriteString("\n\n")
	}

	for i, item := range v.items {
		label := fmt.Sprintf("%d. %s", i+1, item.Label)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + label))
			if item.Description != "" {
				b.WriteString("  " + v.styles.Muted.Render(item.Description))
			}
		} else {
			b.WriteString("  " + v.styles.Normal.Render(label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter/1-6] Select  [?] Help  [q] Quit"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// SetCurrentDocument shows the name of the document questions go to.
func (v *View) SetCurrentDocument(name string) {
	v.current = name
}

// Items returns the menu items.
func (v *View) Items() []Item {
	return v.items
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}
