// ABOUTME: Write-file tool: writes content to a path, creating parent directories
// ABOUTME: Overwrites existing files; reports bytes written

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goclaw/goclaw/internal/agent"
)

// NewWriteTool creates a tool that writes file contents.
func NewWriteTool() *agent.AgentTool {
	return &agent.AgentTool{
		Name:        "write_file",
		Description: "Write content to a file, creating parent directories as needed. Overwrites existing content.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"required": ["path", "content"],
			"properties": {
				"path":    {"type": "string", "description": "Path to the file"},
				"content": {"type": "string", "description": "Content to write"}
			}
		}`),
		Execute: executeWrite,
	}
}

func executeWrite(_ context.Context, params map[string]any) (agent.ToolResult, error) {
	path, err := requireStringParam(params, "path")
	if err != nil {
		return errResult(err), nil
	}
	content, err := requireStringParam(params, "content")
	if err != nil {
		return errResult(err), nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errResult(fmt.Errorf("creating directory %s: %w", dir, err)), nil
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errResult(fmt.Errorf("writing file %s: %w", path, err)), nil
	}

	return agent.ToolResult{Content: fmt.Sprintf("wrote %d bytes to %s", len(content), path)}, nil
}
