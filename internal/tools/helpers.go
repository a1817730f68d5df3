// ABOUTME: Shared helper functions for tool parameter extraction and output shaping
// ABOUTME: Type-safe accessors over JSON-decoded params plus middle-out truncation

package tools

import (
	"fmt"
	"math"

	"github.com/goclaw/goclaw/internal/agent"
)

// requireStringParam extracts a required string parameter from the args map.
func requireStringParam(params map[string]any, key string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", fmt.Errorf("missing required parameter %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("parameter %q must be a string, got %T", key, v)
	}
	return s, nil
}

// stringParam extracts an optional string parameter with a default value.
func stringParam(params map[string]any, key, defaultVal string) string {
	v, ok := params[key]
	if !ok {
		return defaultVal
	}
	s, ok := v.(string)
	if !ok {
		return defaultVal
	}
	return s
}

// intParam extracts an optional integer parameter with a default value.
// Handles both float64 (from JSON unmarshal) and int types.
func intParam(params map[string]any, key string, defaultVal int) int {
	v, ok := params[key]
	if !ok {
		return defaultVal
	}
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n > float64(math.MaxInt) || n < float64(math.MinInt) {
			return defaultVal
		}
		return int(n)
	case int:
		return n
	default:
		return defaultVal
	}
}

// boolParam extracts an optional boolean parameter with a default value.
func boolParam(params map[string]any, key string, defaultVal bool) bool {
	v, ok := params[key]
	if !ok {
		return defaultVal
	}
	b, ok := v.(bool)
	if !ok {
		return defaultVal
	}
	return b
}

// errResult builds a ToolResult that signals an error.
func errResult(err error) agent.ToolResult {
	return agent.ToolResult{Content: err.Error(), IsError: true}
}

// truncateMiddle keeps the head and tail of s within maxBytes, noting how
// much was omitted. Large command output usually matters at both ends.
func truncateMiddle(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	half := maxBytes / 2
	head := s[:half]
	tail := s[len(s)-half:]
	omitted := len(s) - len(head) - len(tail)
	return fmt.Sprintf("%s\n\n... (%d bytes omitted) ...\n\n%s", head, omitted, tail)
}

// truncateTail limits s to maxBytes, appending a truncation notice.
func truncateTail(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	return s[:maxBytes] + "\n... [output truncated]"
}

// skipDirs contains directory names to skip during recursive walks.
var skipDirs = map[string]bool{
	".git":         true,
	"vendor":       true,
	"node_modules": true,
	"__pycache__":  true,
	".venv":        true,
	"target":       true,
	"dist":         true,
	"build":        true,
}

// shouldSkipDir reports whether a directory name should be skipped during walks.
func shouldSkipDir(name string) bool {
	return skipDirs[name]
}
