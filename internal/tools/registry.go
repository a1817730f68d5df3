// ABOUTME: Tool registry: creates, stores, and resolves agent tools
// ABOUTME: Implements the loop's Router; supports enabling a configured subset

package tools

import (
	"sort"

	"github.com/goclaw/goclaw/internal/agent"
	"github.com/goclaw/goclaw/pkg/ai"
)

// Registry manages the collection of available agent tools.
type Registry struct {
	tools map[string]*agent.AgentTool
}

// NewRegistry creates a Registry with all built-in tools registered.
// enabled, when non-empty, restricts the set to the named tools.
func NewRegistry(enabled []string) *Registry {
	r := &Registry{tools: make(map[string]*agent.AgentTool)}
	builtins := []*agent.AgentTool{
		NewReadTool(),
		NewWriteTool(),
		NewEditTool(),
		NewListTool(),
		NewBashTool(),
	}
	allow := make(map[string]bool, len(enabled))
	for _, name := range enabled {
		allow[name] = true
	}
	for _, t := range builtins {
		if len(allow) == 0 || allow[t.Name] {
			r.Register(t)
		}
	}
	return r
}

// Register adds a tool, replacing any existing tool with the same name.
func (r *Registry) Register(tool *agent.AgentTool) {
	r.tools[tool.Name] = tool
}

// Resolve returns the named tool.
func (r *Registry) Resolve(name string) (*agent.AgentTool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Definitions returns the provider-facing tool definitions, sorted by name
// for a stable surface.
func (r *Registry) Definitions() []ai.ToolDefinition {
	defs := make([]ai.ToolDefinition, 0, len(r.tools))
	for _, t := range r.tools {
		defs = append(defs, t.Definition())
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// All returns every registered tool, sorted by name.
func (r *Registry) All() []*agent.AgentTool {
	out := make([]*agent.AgentTool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
