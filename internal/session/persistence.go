// ABOUTME: Session persistence: pretty JSON files in a sessions directory
// ABOUTME: Save/Load by id, List newest first, Export/Import to arbitrary paths

package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// timeNow is swappable in tests that need deterministic ordering.
var timeNow = func() time.Time { return time.Now().UTC() }

// Store reads and writes sessions under a single directory.
type Store struct {
	Dir string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

func (st *Store) path(id string) string {
	return filepath.Join(st.Dir, id+".json")
}

// Save writes the session, bumping UpdatedAt.
func (st *Store) Save(s *Session) error {
	if err := os.MkdirAll(st.Dir, 0o755); err != nil {
		return fmt.Errorf("creating sessions directory: %w", err)
	}
	s.UpdatedAt = timeNow()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", s.ID, err)
	}
	if err := os.WriteFile(st.path(s.ID), data, 0o644); err != nil {
		return fmt.Errorf("writing session %s: %w", s.ID, err)
	}
	return nil
}

// Load reads a session by id.
func (st *Store) Load(id string) (*Session, error) {
	data, err := os.ReadFile(st.path(id))
	if err != nil {
		return nil, fmt.Errorf("reading session %s: %w", id, err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", id, err)
	}
	return &s, nil
}

// List returns all sessions, newest first by UpdatedAt.
// Unreadable files are skipped.
func (st *Store) List() ([]*Session, error) {
	entries, err := os.ReadDir(st.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading sessions directory: %w", err)
	}

	var sessions []*Session
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		s, err := st.Load(strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			continue
		}
		sessions = append(sessions, s)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
	return sessions, nil
}

// Delete removes a session file.
func (st *Store) Delete(id string) error {
	if err := os.Remove(st.path(id)); err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	return nil
}

// Export writes a session to an arbitrary path.
func (st *Store) Export(id, dest string) error {
	s, err := st.Load(id)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", id, err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("exporting session %s: %w", id, err)
	}
	return nil
}

// Import reads a session file from an arbitrary path and saves it here.
func (st *Store) Import(src string) (*Session, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src, err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", src, err)
	}
	if s.ID == "" {
		return nil, fmt.Errorf("%s has no session id", src)
	}
	if err := st.Save(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
