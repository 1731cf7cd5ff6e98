package documents

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/claims-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/claims-cli/internal/core/domain"
)

// MockDocumentService implements driving.DocumentService for testing.
type MockDocumentService struct {
	ActivateFunc  func(ctx context.Context) error
	RefreshFunc   func(ctx context.Context) ([]domain.Document, error)
	UpdateFunc    func(ctx context.Context, id string, patch domain.DocumentPatch) error
	ReanalyzeFunc func(ctx context.Context, id string) error
	DeleteFunc    func(ctx context.Context, id string) error

	docs    []domain.Document
	current *domain.Document
}

func (m *MockDocumentService) Activate(ctx context.Context) error {
	if m.ActivateFunc != nil {
		return m.ActivateFunc(ctx)
	}
	return nil
}

func (m *MockDocumentService) Refresh(ctx context.Context) ([]domain.Document, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx)
	}
	return m.docs, nil
}

func (m *MockDocumentService) Documents() []domain.Document { return m.docs }

func (m *MockDocumentService) Filter(term string) []domain.Document {
	var out []domain.Document
	for _, d := range m.docs {
		if strings.Contains(strings.ToLower(d.Name), strings.ToLower(term)) {
			out = append(out, d)
		}
	}
	return out
}

func (m *MockDocumentService) Get(_ context.Context, id string) (*domain.Document, error) {
	for i := range m.docs {
		if m.docs[i].ID == id {
			return &m.docs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockDocumentService) Update(ctx context.Context, id string, patch domain.DocumentPatch) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	for i := range m.docs {
		if m.docs[i].ID == id && patch.Name != nil {
			m.docs[i].Name = *patch.Name
		}
	}
	return nil
}

func (m *MockDocumentService) Reanalyze(ctx context.Context, id string) error {
	if m.ReanalyzeFunc != nil {
		return m.ReanalyzeFunc(ctx, id)
	}
	return nil
}

func (m *MockDocumentService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	kept := m.docs[:0]
	for _, d := range m.docs {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	m.docs = kept
	return nil
}

func (m *MockDocumentService) Select(id string) (*domain.Document, error) {
	for _, d := range m.docs {
		if d.ID == id {
			m.current = &d
			return &d, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockDocumentService) Current() *domain.Document { return m.current }
func (m *MockDocumentService) Loading() bool             { return false }
func (m *MockDocumentService) Err() error                { return nil }

func sampleDocs() []domain.Document {
	uploaded := time.Date(2026, 2, 3, 9, 30, 0, 0, time.Local)
	return []domain.Document{
		{ID: "1", Name: "health-policy.pdf", FileSize: 2048, Status: domain.DocumentCompleted, UploadedAt: uploaded},
		{ID: "2", Name: "motor-policy.pdf", FileSize: 4096, Status: domain.DocumentProcessing, UploadedAt: uploaded},
		{ID: "3", Name: "travel-cover.pdf", FileSize: 1024, Status: domain.DocumentFailed, UploadedAt: uploaded},
	}
}

func newLoadedView(t *testing.T, svc *MockDocumentService) *View {
	t.Helper()
	v := NewView(nil, nil, svc)
	v.SetDimensions(100, 40)
	cmd := v.Init()
	require.NotNil(t, cmd)
	v.Update(cmd())
	return v
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(v *View, s string) {
	for _, r := range s {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, &MockDocumentService{})

	require.NotNil(t, v)
	assert.Empty(t, v.Documents())
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_InitLoadsDocuments(t *testing.T) {
	v := newLoadedView(t, &MockDocumentService{docs: sampleDocs()})

	assert.Len(t, v.Documents(), 3)
	assert.False(t, v.Loading())

	view := v.View()
	assert.Contains(t, view, "Documents (3)")
	assert.Contains(t, view, "[1] health-policy.pdf")
	assert.Contains(t, view, "completed")
	assert.Contains(t, view, "2.0 KB")
}

func TestView_InitError(t *testing.T) {
	svc := &MockDocumentService{
		ActivateFunc: func(context.Context) error { return errors.New("No response from server") },
	}
	v := newLoadedView(t, svc)

	assert.EqualError(t, v.Err(), "No response from server")
	assert.Contains(t, v.View(), "Error: No response from server")
}

func TestView_ReloadFailureKeepsList(t *testing.T) {
	svc := &MockDocumentService{docs: sampleDocs()}
	v := newLoadedView(t, svc)
	svc.RefreshFunc = func(context.Context) ([]domain.Document, error) {
		return nil, errors.New("boom")
	}

	_, cmd := v.Update(key("r"))
	require.NotNil(t, cmd)
	assert.True(t, v.Loading())
	v.Update(cmd())

	assert.Len(t, v.Documents(), 3)
	assert.EqualError(t, v.Err(), "boom")
}

func TestView_EmptyState(t *testing.T) {
	v := newLoadedView(t, &MockDocumentService{})

	assert.Contains(t, v.View(), "No documents found")
}

func TestView_Navigation(t *testing.T) {
	v := newLoadedView(t, &MockDocumentService{docs: sampleDocs()})

	v.Update(key("down"))
	v.Update(key("j"))
	assert.Equal(t, 2, v.SelectedIndex())

	v.Update(key("down"))
	assert.Equal(t, 2, v.SelectedIndex())

	v.Update(key("k"))
	assert.Equal(t, 1, v.SelectedIndex())
	assert.Equal(t, "2", v.SelectedDocument().ID)
}

func TestView_Filter(t *testing.T) {
	v := newLoadedView(t, &MockDocumentService{docs: sampleDocs()})

	v.Update(key("/"))
	typeText(v, "policy")
	v.Update(key("enter"))

	assert.Equal(t, "policy", v.Filter())
	assert.Len(t, v.Documents(), 2)
	assert.Contains(t, v.View(), `Documents matching "policy" (2)`)

	// Esc clears the filter before leaving the view.
	_, cmd := v.Update(key("esc"))
	assert.Nil(t, cmd)
	assert.Empty(t, v.Filter())
	assert.Len(t, v.Documents(), 3)
}

func TestView_Back(t *testing.T) {
	v := newLoadedView(t, &MockDocumentService{docs: sampleDocs()})

	_, cmd := v.Update(key("esc"))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_MenuNavigation(t *testing.T) {
	v := newLoadedView(t, &MockDocumentService{docs: sampleDocs()})

	v.Update(key("enter"))
	require.True(t, v.IsShowingMenu())
	assert.Contains(t, v.View(), "Actions for: health-policy.pdf")

	v.Update(key("up"))
	assert.Equal(t, ActionAsk, v.menuSelected)
	for range 10 {
		v.Update(key("down"))
	}
	assert.Equal(t, ActionCancel, v.menuSelected)

	v.Update(key("esc"))
	assert.False(t, v.IsShowingMenu())
}

func TestView_AskSelectsDocument(t *testing.T) {
	svc := &MockDocumentService{docs: sampleDocs()}
	v := newLoadedView(t, svc)

	v.Update(key("enter"))
	_, cmd := v.Update(key("enter"))

	require.NotNil(t, cmd)
	require.NotNil(t, svc.Current())
	assert.Equal(t, "1", svc.Current().ID)
	assert.False(t, v.IsShowingMenu())
}

func TestView_Rename(t *testing.T) {
	var patched domain.DocumentPatch
	svc := &MockDocumentService{docs: sampleDocs()}
	svc.UpdateFunc = func(_ context.Context, id string, patch domain.DocumentPatch) error {
		patched = patch
		svc.docs[0].Name = *patch.Name
		return nil
	}
	v := newLoadedView(t, svc)

	v.Update(key("enter"))
	v.Update(key("down"))
	v.Update(key("enter"))
	v.field.SetValue("renamed.pdf")
	_, cmd := v.Update(key("enter"))
	require.NotNil(t, cmd)
	v.Update(cmd())

	require.NotNil(t, patched.Name)
	assert.Equal(t, "renamed.pdf", *patched.Name)
	assert.NoError(t, v.Err())
	assert.Equal(t, "renamed.pdf", v.Documents()[0].Name)
	assert.Contains(t, v.View(), "Updated document 1")
}

func TestView_RenameUnchangedDoesNothing(t *testing.T) {
	v := newLoadedView(t, &MockDocumentService{docs: sampleDocs()})

	v.Update(key("enter"))
	v.Update(key("down"))
	v.Update(key("enter"))
	_, cmd := v.Update(key("enter"))

	assert.Nil(t, cmd)
}

func TestView_Reanalyze(t *testing.T) {
	var reanalysed string
	svc := &MockDocumentService{
		docs: sampleDocs(),
		ReanalyzeFunc: func(_ context.Context, id string) error {
			reanalysed = id
			return nil
		},
	}
	v := newLoadedView(t, svc)

	v.Update(key("j"))
	v.Update(key("enter"))
	v.Update(key("j"))
	v.Update(key("j"))
	_, cmd := v.Update(key("enter"))
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.Equal(t, "2", reanalysed)
}

func TestView_DeleteRequiresConfirmation(t *testing.T) {
	svc := &MockDocumentService{docs: sampleDocs()}
	v := newLoadedView(t, svc)

	openDelete := func() {
		v.Update(key("enter"))
		for range 3 {
			v.Update(key("down"))
		}
		v.Update(key("enter"))
	}

	openDelete()
	assert.Contains(t, v.View(), "Delete health-policy.pdf?")
	_, cmd := v.Update(key("n"))
	assert.Nil(t, cmd)
	assert.Len(t, svc.docs, 3)

	openDelete()
	_, cmd = v.Update(key("y"))
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.Len(t, v.Documents(), 2)
	assert.Contains(t, v.View(), "Deleted document 1")
}

func TestView_MutationError(t *testing.T) {
	v := newLoadedView(t, &MockDocumentService{docs: sampleDocs()})

	v.Update(messages.DocumentDeleted{DocumentID: "1", Err: errors.New("Document not found")})

	assert.EqualError(t, v.Err(), "Document not found")
	assert.Len(t, v.Documents(), 3)
}

func TestView_NilService(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.SetDimensions(80, 24)

	v.Update(v.Init()())

	assert.ErrorIs(t, v.Err(), ErrNoDocumentService)
}

func TestView_AdjustScroll(t *testing.T) {
	docs := make([]domain.Document, 30)
	for i := range docs {
		docs[i] = domain.Document{ID: string(rune('a' + i%26)), Name: "doc.pdf"}
	}
	v := newLoadedView(t, &MockDocumentService{docs: docs})
	v.SetDimensions(80, 20)

	for range 10 {
		v.Update(key("down"))
	}

	assert.Equal(t, 10, v.SelectedIndex())
	assert.Greater(t, v.scrollOffset, 0)
	assert.Contains(t, v.View(), "of 30]")
}
