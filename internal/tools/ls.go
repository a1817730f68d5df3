// ABOUTME: List-directory tool with optional bounded recursion
// ABOUTME: Skips well-known vendor/cache directories and caps entry count

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goclaw/goclaw/internal/agent"
)

const (
	maxListEntries = 500
	maxListDepth   = 8
)

// NewListTool creates a read-only tool that lists directory contents.
func NewListTool() *agent.AgentTool {
	return &agent.AgentTool{
		Name:        "list_directory",
		Description: "List directory contents. Set recursive to walk subdirectories (bounded depth and entry count).",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"path":      {"type": "string", "description": "Directory to list (default: current directory)"},
				"recursive": {"type": "boolean", "description": "Walk subdirectories"},
				"max_depth": {"type": "integer", "description": "Recursion depth limit (default: 8)"}
			}
		}`),
		Execute: executeList,
	}
}

func executeList(_ context.Context, params map[string]any) (agent.ToolResult, error) {
	root := stringParam(params, "path", ".")
	recursive := boolParam(params, "recursive", false)
	maxDepth := intParam(params, "max_depth", maxListDepth)
	if maxDepth <= 0 || maxDepth > maxListDepth {
		maxDepth = maxListDepth
	}

	info, err := os.Stat(root)
	if err != nil {
		return errResult(fmt.Errorf("listing %s: %w", root, err)), nil
	}
	if !info.IsDir() {
		return errResult(fmt.Errorf("%s is not a directory", root)), nil
	}

	var b strings.Builder
	count := 0
	truncated := false

	walk := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		depth := strings.Count(rel, string(filepath.Separator))

		if count >= maxListEntries {
			truncated = true
			return fs.SkipAll
		}
		count++

		if d.IsDir() {
			fmt.Fprintf(&b, "%s/\n", rel)
			if shouldSkipDir(d.Name()) || !recursive || depth+1 >= maxDepth {
				return fs.SkipDir
			}
			return nil
		}
		size := int64(0)
		if fi, err := d.Info(); err == nil {
			size = fi.Size()
		}
		fmt.Fprintf(&b, "%s (%d bytes)\n", rel, size)
		return nil
	}

	if err := filepath.WalkDir(root, walk); err != nil {
		return errResult(fmt.Errorf("walking %s: %w", root, err)), nil
	}

	out := b.String()
	if out == "" {
		out = "(empty directory)"
	}
	if truncated {
		out += fmt.Sprintf("\n... [listing truncated at %d entries]", maxListEntries)
	}
	return agent.ToolResult{Content: out}, nil
}
