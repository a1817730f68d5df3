// ABOUTME: Tests for session persistence: save/load round trip, listing order, export/import
// ABOUTME: Uses t.TempDir stores

package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/goclaw/goclaw/pkg/ai"
)

func TestNewSessionIDs(t *testing.T) {
	t.Parallel()

	a, b := New("m"), New("m")
	if len(a.ID) != 8 {
		t.Errorf("id length = %d, want 8", len(a.ID))
	}
	if a.ID == b.ID {
		t.Error("two sessions share an id")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	st := NewStore(t.TempDir())
	s := New("test-model")
	s.Messages = []ai.Message{
		ai.NewTextMessage(ai.RoleUser, "question"),
		{Role: ai.RoleAssistant, Content: "answer", ToolCalls: []ai.ToolCall{
			{ID: "call_1", Name: "bash", Arguments: []byte(`{"command":"ls"}`)},
		}},
		ai.NewToolResultMessage("call_1", "files..."),
	}
	s.Stats.InputTokens = 100
	s.Stats.RequestCount = 2

	if err := st.Save(s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := st.Load(s.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Model != "test-model" || len(got.Messages) != 3 {
		t.Errorf("loaded session = %+v", got)
	}
	if got.Messages[1].ToolCalls[0].Name != "bash" {
		t.Errorf("tool call lost in round trip: %+v", got.Messages[1])
	}
	if got.Stats.InputTokens != 100 || got.Stats.RequestCount != 2 {
		t.Errorf("stats lost: %+v", got.Stats)
	}
}

func TestListNewestFirst(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	step := 0
	orig := timeNow
	timeNow = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Minute)
	}
	defer func() { timeNow = orig }()

	st := NewStore(t.TempDir())
	first, second := New("m"), New("m")
	if err := st.Save(first); err != nil {
		t.Fatal(err)
	}
	if err := st.Save(second); err != nil {
		t.Fatal(err)
	}

	sessions, err := st.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}
	if sessions[0].ID != second.ID {
		t.Errorf("newest session not first: %s, %s", sessions[0].ID, sessions[1].ID)
	}
}

func TestListEmptyStore(t *testing.T) {
	t.Parallel()

	st := NewStore(filepath.Join(t.TempDir(), "missing"))
	sessions, err := st.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("got %d sessions from missing dir", len(sessions))
	}
}

func TestExportImport(t *testing.T) {
	t.Parallel()

	st := NewStore(t.TempDir())
	s := New("m")
	s.Messages = []ai.Message{ai.NewTextMessage(ai.RoleUser, "hi")}
	if err := st.Save(s); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(t.TempDir(), "exported.json")
	if err := st.Export(s.ID, dest); err != nil {
		t.Fatalf("Export: %v", err)
	}

	other := NewStore(t.TempDir())
	imported, err := other.Import(dest)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if imported.ID != s.ID || len(imported.Messages) != 1 {
		t.Errorf("imported = %+v", imported)
	}
	if _, err := other.Load(s.ID); err != nil {
		t.Errorf("imported session not saved in new store: %v", err)
	}
}

func TestTitle(t *testing.T) {
	t.Parallel()

	s := New("m")
	if s.Title() != "(empty session)" {
		t.Errorf("Title = %q", s.Title())
	}
	s.Messages = []ai.Message{ai.NewTextMessage(ai.RoleUser, "fix the flaky test in queue_test.go")}
	if s.Title() != "fix the flaky test in queue_test.go" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	st := NewStore(t.TempDir())
	s := New("m")
	if err := st.Save(s); err != nil {
		t.Fatal(err)
	}

	if err := st.Delete(s.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := st.Load(s.ID); err == nil {
		t.Error("session still loadable after Delete")
	}
	if err := st.Delete(s.ID); err == nil {
		t.Error("deleting a missing session should error")
	}
}
