// ABOUTME: Edit tool: exact-match text replacement within a file
// ABOUTME: Requires a unique match unless replace_all is set

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/goclaw/goclaw/internal/agent"
)

// NewEditTool creates a tool that replaces exact text in a file.
func NewEditTool() *agent.AgentTool {
	return &agent.AgentTool{
		Name:        "edit",
		Description: "Replace an exact text match in a file. old_text must appear exactly once unless replace_all is true.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"required": ["path", "old_text", "new_text"],
			"properties": {
				"path":        {"type": "string", "description": "Path to the file"},
				"old_text":    {"type": "string", "description": "Exact text to replace"},
				"new_text":    {"type": "string", "description": "Replacement text"},
				"replace_all": {"type": "boolean", "description": "Replace every occurrence"}
			}
		}`),
		Execute: executeEdit,
	}
}

func executeEdit(_ context.Context, params map[string]any) (agent.ToolResult, error) {
	path, err := requireStringParam(params, "path")
	if err != nil {
		return errResult(err), nil
	}
	oldText, err := requireStringParam(params, "old_text")
	if err != nil {
		return errResult(err), nil
	}
	newText, err := requireStringParam(params, "new_text")
	if err != nil {
		return errResult(err), nil
	}
	if oldText == "" {
		return errResult(fmt.Errorf("old_text must not be empty")), nil
	}
	replaceAll := boolParam(params, "replace_all", false)

	data, err := os.ReadFile(path)
	if err != nil {
		return errResult(fmt.Errorf("reading file %s: %w", path, err)), nil
	}
	content := string(data)

	count := strings.Count(content, oldText)
	switch {
	case count == 0:
		return errResult(fmt.Errorf("old_text not found in %s", path)), nil
	case count > 1 && !replaceAll:
		return errResult(fmt.Errorf("old_text appears %d times in %s; provide more context or set replace_all", count, path)), nil
	}

	replaced := count
	if replaceAll {
		content = strings.ReplaceAll(content, oldText, newText)
	} else {
		content = strings.Replace(content, oldText, newText, 1)
		replaced = 1
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errResult(fmt.Errorf("writing file %s: %w", path, err)), nil
	}

	return agent.ToolResult{Content: fmt.Sprintf("replaced %d occurrence(s) in %s", replaced, path)}, nil
}
