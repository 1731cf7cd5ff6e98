// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/claims-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewUpload is the policy upload view.
	ViewUpload
	// ViewQuery asks claim questions about the current document.
	ViewQuery
	// ViewDocuments lists uploaded documents.
	ViewDocuments
	// ViewStats shows claim statistics and backend health.
	ViewStats
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewUpload:
		return "upload"
	case ViewQuery:
		return "query"
	case ViewDocuments:
		return "documents"
	case ViewStats:
		return "stats"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// UploadProgressed carries one progress update of an upload attempt.
type UploadProgressed struct {
	Attempt  int
	Progress domain.UploadProgress
}

// UploadCompleted ends an upload attempt.
type UploadCompleted struct {
	Attempt  int
	Document *domain.Document
	Err      error
}

// QueryAnswered carries the answer to a question before it is saved.
type QueryAnswered struct {
	Attempt int
	Result  domain.QueryResult
}

// QueryCompleted ends a question, after the save finished or failed.
type QueryCompleted struct {
	Attempt int
	Outcome *domain.QueryOutcome
	Err     error
}

// HistoryLoaded carries the saved questions of a document.
type HistoryLoaded struct {
	DocumentID string
	Results    []domain.QueryResult
	Err        error
}

// DocumentsLoaded carries the document list.
type DocumentsLoaded struct {
	Documents []domain.Document
	Err       error
}

// DocumentSelected signals a document became the current one.
type DocumentSelected struct {
	Document domain.Document
}

// DocumentUpdated signals an update or reanalysis finished.
type DocumentUpdated struct {
	DocumentID string
	Err        error
}

// DocumentDeleted signals a deletion finished.
type DocumentDeleted struct {
	DocumentID string
	Err        error
}

// StatsLoaded carries claim statistics and backend health.
type StatsLoaded struct {
	Analytics *domain.Analytics
	Health    *domain.HealthStatus
	Err       error
	HealthErr error
}

// Listen returns a command that delivers the next message from ch.
// A closed channel yields nil, which Bubbletea ignores.
func Listen(ch <-chan tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}
