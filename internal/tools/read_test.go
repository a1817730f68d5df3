// ABOUTME: Tests for the read_file tool: offset/limit, binary detection, missing files
// ABOUTME: Uses t.TempDir fixtures

package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := executeRead(context.Background(), map[string]any{"path": path})
	if err != nil {
		t.Fatalf("executeRead: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %s", res.Content)
	}
	if res.Content != "one\ntwo\nthree\n" {
		t.Errorf("content = %q", res.Content)
	}
}

func TestReadFileOffsetLimit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(path, []byte("one\ntwo\nthree\nfour\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := executeRead(context.Background(), map[string]any{
		"path": path, "offset": float64(1), "limit": float64(2),
	})
	if err != nil {
		t.Fatalf("executeRead: %v", err)
	}
	if res.Content != "two\nthree\n" {
		t.Errorf("content = %q, want lines two+three", res.Content)
	}
}

func TestReadFileBinary(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bin")
	if err := os.WriteFile(path, []byte{0x7f, 'E', 'L', 'F', 0x00, 0x01}, 0o644); err != nil {
		t.Fatal(err)
	}

	res, _ := executeRead(context.Background(), map[string]any{"path": path})
	if !res.IsError || !strings.Contains(res.Content, "binary") {
		t.Errorf("result = %+v, want binary-file error", res)
	}
}

func TestReadFileMissing(t *testing.T) {
	t.Parallel()

	res, err := executeRead(context.Background(), map[string]any{
		"path": filepath.Join(t.TempDir(), "nope.txt"),
	})
	if err != nil {
		t.Fatalf("executeRead returned hard error: %v", err)
	}
	if !res.IsError {
		t.Error("expected error result for missing file")
	}
}

func TestReadFileMissingParam(t *testing.T) {
	t.Parallel()

	res, _ := executeRead(context.Background(), map[string]any{})
	if !res.IsError || !strings.Contains(res.Content, "path") {
		t.Errorf("result = %+v, want missing-parameter error", res)
	}
}
