// ABOUTME: Tests for write_file and edit tools: parent creation, unique-match editing
// ABOUTME: Uses t.TempDir fixtures

package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileCreatesParents(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "f.txt")
	res, err := executeWrite(context.Background(), map[string]any{
		"path": path, "content": "hello",
	})
	if err != nil {
		t.Fatalf("executeWrite: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %s", res.Content)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("readback: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("file content = %q", data)
	}
}

func TestWriteFileOverwrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "f.txt")
	for _, content := range []string{"first", "second"} {
		res, err := executeWrite(context.Background(), map[string]any{
			"path": path, "content": content,
		})
		if err != nil || res.IsError {
			t.Fatalf("executeWrite(%q): %v / %+v", content, err, res)
		}
	}
	data, _ := os.ReadFile(path)
	if string(data) != "second" {
		t.Errorf("file content = %q, want second", data)
	}
}

func TestEditReplacesUniqueMatch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "f.go")
	if err := os.WriteFile(path, []byte("func old() {}\nfunc keep() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := executeEdit(context.Background(), map[string]any{
		"path": path, "old_text": "func old()", "new_text": "func renamed()",
	})
	if err != nil {
		t.Fatalf("executeEdit: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %s", res.Content)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "func renamed()") {
		t.Errorf("file content = %q", data)
	}
}

func TestEditRejectsAmbiguousMatch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(path, []byte("x\nx\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, _ := executeEdit(context.Background(), map[string]any{
		"path": path, "old_text": "x", "new_text": "y",
	})
	if !res.IsError || !strings.Contains(res.Content, "2 times") {
		t.Errorf("result = %+v, want ambiguity error", res)
	}
}

func TestEditReplaceAll(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(path, []byte("x x x"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, _ := executeEdit(context.Background(), map[string]any{
		"path": path, "old_text": "x", "new_text": "y", "replace_all": true,
	})
	if res.IsError {
		t.Fatalf("unexpected error result: %s", res.Content)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "y y y" {
		t.Errorf("file content = %q", data)
	}
}

func TestEditMissingMatch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, _ := executeEdit(context.Background(), map[string]any{
		"path": path, "old_text": "absent", "new_text": "y",
	})
	if !res.IsError || !strings.Contains(res.Content, "not found") {
		t.Errorf("result = %+v, want not-found error", res)
	}
}
