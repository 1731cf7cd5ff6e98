// Package stats provides the claim statistics view for the TUI.
package stats

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/claims-cli/internal/adapters/driving/display"
	"github.com/custodia-labs/claims-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/claims-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/claims-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/claims-cli/internal/core/domain"
	"github.com/custodia-labs/claims-cli/internal/core/ports/driving"
)

// ErrNoInsightsService is returned when the insights service is not available.
var ErrNoInsightsService = errors.New("insights service not available")

// barWidth is the width of the approval bar.
const barWidth = 30

// View shows claim analytics and backend health.
type View struct {
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	insightsService driving.InsightsService
	ctx             context.Context

	analytics *domain.Analytics
	health    *domain.HealthStatus
	err       error
	healthErr error
	loading   bool

	width  int
	height int
	ready  bool
}

// NewView creates a new stats view.
func NewView(s *styles.Styles, km *keymap.KeyMap, insightsService driving.InsightsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:          s,
		keymap:          km,
		insightsService: insightsService,
		ctx:             context.Background(),
	}
}

// WithContext sets the context of backend calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads analytics and health.
func (v *View) Init() tea.Cmd {
	v.loading = true
	service := v.insightsService
	ctx := v.ctx
	return func() tea.Msg {
		if service == nil {
			return messages.StatsLoaded{Err: ErrNoInsightsService}
		}
		analytics, err := service.Analytics(ctx)
		health, healthErr := service.Health(ctx)
		return messages.StatsLoaded{Analytics: analytics, Health: health, Err: err, HealthErr: healthErr}
	}
}

// Update handles messages for the stats view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		key := msg.String()
		switch {
		case keymap.Matches(key, v.keymap.Back):
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case keymap.Matches(key, v.keymap.Reload):
			if !v.loading {
				return v, v.Init()
			}
		}

	case messages.StatsLoaded:
		v.loading = false
		v.err = msg.Err
		v.healthErr = msg.HealthErr
		if msg.Err == nil {
			v.analytics = msg.Analytics
		}
		v.health = msg.Health
	}
	return v, nil
}

// View renders the stats view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Claim statistics"))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading statistics..."))
		b.WriteString("\n\n")
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	if a := v.analytics; a != nil {
		row := func(label, value string) {
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("%-16s", label)))
			b.WriteString(v.styles.Normal.Render(value))
			b.WriteString("\n")
		}
		row("Total claims", fmt.Sprint(a.TotalClaims))
		row("Approved", v.styles.Approved.Render(fmt.Sprint(a.ApprovedClaims)))
		row("Rejected", v.styles.Rejected.Render(fmt.Sprint(a.RejectedClaims)))
		row("Total amount", display.Money(a.TotalAmount))
		rate := a.ApprovalRate()
		row("Approval rate", v.styles.ProgressBar(int(rate*100), barWidth)+" "+display.Percent(rate))
		b.WriteString("\n")
	}

	b.WriteString(v.renderHealth())
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[r] reload  [esc] back"))
	return b.String()
}

func (v *View) renderHealth() string {
	label := v.styles.Muted.Render("Backend         ")
	switch {
	case v.healthErr != nil:
		return label + v.styles.Error.Render("unreachable: "+v.healthErr.Error())
	case v.health == nil:
		return label + v.styles.Muted.Render("-")
	case v.health.Healthy():
		return label + v.styles.Success.Render(v.health.Status)
	default:
		out := label + v.styles.Warning.Render(v.health.Status)
		if v.health.Message != "" {
			out += v.styles.Muted.Render(" (" + v.health.Message + ")")
		}
		return out
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Analytics returns the loaded analytics, or nil.
func (v *View) Analytics() *domain.Analytics {
	return v.analytics
}

// Health returns the loaded health status, or nil.
func (v *View) Health() *domain.HealthStatus {
	return v.health
}

// Loading reports whether statistics are being fetched.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the analytics failure, if any.
func (v *View) Err() error {
	return v.err
}
