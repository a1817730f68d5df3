// ABOUTME: Tests for rule file discovery order and combined context building
// ABOUTME: Uses nested temp directories to simulate ancestor rule files

package rules

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadOrderAncestorsFirst(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	project := filepath.Join(base, "work", "repo")
	write(t, filepath.Join(base, "CLAUDE.md"), "ancestor rules")
	write(t, filepath.Join(project, "CLAUDE.md"), "project rules")
	write(t, filepath.Join(project, ".claude", "CLAUDE.md"), "claude dir rules")

	rules := Load(project)
	if len(rules) != 3 {
		t.Fatalf("got %d rule files, want 3", len(rules))
	}
	if rules[0].Content != "ancestor rules" {
		t.Errorf("first rule = %q, want ancestor rules", rules[0].Content)
	}
	if rules[1].Content != "project rules" {
		t.Errorf("second rule = %q, want project rules", rules[1].Content)
	}
	if rules[2].Content != "claude dir rules" {
		t.Errorf("third rule = %q, want claude dir rules", rules[2].Content)
	}
}

func TestLoadSkipsEmptyFiles(t *testing.T) {
	t.Parallel()

	project := t.TempDir()
	write(t, filepath.Join(project, "CLAUDE.md"), "   \n\t\n")

	if rules := Load(project); len(rules) != 0 {
		t.Errorf("got %d rule files, want 0 for whitespace-only content", len(rules))
	}
}

func TestContext(t *testing.T) {
	t.Parallel()

	project := t.TempDir()
	write(t, filepath.Join(project, "CLAUDE.md"), "always run tests\n")

	ctx := Context(project)
	if !strings.Contains(ctx, "always run tests") {
		t.Errorf("context missing rule content: %q", ctx)
	}
	if !strings.Contains(ctx, "# Rules from ") {
		t.Errorf("context missing source header: %q", ctx)
	}
}

func TestContextEmptyWhenNoRules(t *testing.T) {
	t.Parallel()

	if ctx := Context(t.TempDir()); ctx != "" {
		t.Errorf("Context = %q, want empty", ctx)
	}
}
