// ABOUTME: Project rule file discovery (CLAUDE.md convention) for system prompt injection
// ABOUTME: Walks ancestor directories, then the project root and its .claude subdirectory

package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RuleFile is a single rule file discovered on disk.
type RuleFile struct {
	Path    string
	Content string
}

// Load discovers rule files relative to projectRoot.
// Search order: earliest ancestor first, then <root>/CLAUDE.md, then
// <root>/.claude/CLAUDE.md. Empty files are skipped.
func Load(projectRoot string) []RuleFile {
	root := projectRoot
	if abs, err := filepath.Abs(projectRoot); err == nil {
		root = abs
	}

	var ancestors []RuleFile
	for dir := filepath.Dir(root); ; dir = filepath.Dir(dir) {
		var found []RuleFile
		tryLoad(filepath.Join(dir, "CLAUDE.md"), &found)
		tryLoad(filepath.Join(dir, ".claude", "CLAUDE.md"), &found)
		ancestors = append(found, ancestors...)
		if dir == filepath.Dir(dir) {
			break
		}
	}

	rules := ancestors
	tryLoad(filepath.Join(root, "CLAUDE.md"), &rules)
	tryLoad(filepath.Join(root, ".claude", "CLAUDE.md"), &rules)
	return rules
}

// Context builds a combined rules string ready for system prompt injection.
// Returns "" when no rule files exist.
func Context(projectRoot string) string {
	rules := Load(projectRoot)
	if len(rules) == 0 {
		return ""
	}
	parts := make([]string, 0, len(rules))
	for _, r := range rules {
		parts = append(parts, fmt.Sprintf("# Rules from %s\n\n%s", r.Path, strings.TrimSpace(r.Content)))
	}
	return strings.Join(parts, "\n\n---\n\n")
}

func tryLoad(path string, out *[]RuleFile) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil || strings.TrimSpace(string(data)) == "" {
		return
	}
	*out = append(*out, RuleFile{Path: path, Content: string(data)})
}
