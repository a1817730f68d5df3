// ABOUTME: Tool contract for the agent loop: definition, schema validation, execution
// ABOUTME: Run validates raw arguments against the tool's JSON schema before executing

package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/goclaw/goclaw/pkg/ai"
)

// ToolResult holds the outcome of a single tool execution.
type ToolResult struct {
	Content string
	IsError bool
}

// AgentTool defines a tool the loop can invoke. Parameters is a JSON Schema
// object describing the argument shape.
type AgentTool struct {
	Name        string
	Description string
	Parameters  json.RawMessage
	Execute     func(ctx context.Context, params map[string]any) (ToolResult, error)
}

// Run validates raw against the tool's schema, decodes it, and executes.
// Validation and execution failures both come back as error results rather
// than errors: the loop feeds them to the model and keeps going.
func (t *AgentTool) Run(ctx context.Context, raw json.RawMessage) ToolResult {
	if len(raw) == 0 {
		raw = json.RawMessage(`{}`)
	}

	if len(t.Parameters) > 0 {
		result, err := gojsonschema.Validate(
			gojsonschema.NewBytesLoader(t.Parameters),
			gojsonschema.NewBytesLoader(raw),
		)
		if err != nil {
			return ToolResult{Content: fmt.Sprintf("validating arguments: %v", err), IsError: true}
		}
		if !result.Valid() {
			msgs := make([]string, 0, len(result.Errors()))
			for _, desc := range result.Errors() {
				msgs = append(msgs, desc.String())
			}
			return ToolResult{Content: "invalid arguments: " + strings.Join(msgs, "; "), IsError: true}
		}
	}

	var params map[string]any
	if err := json.Unmarshal(raw, &params); err != nil {
		return ToolResult{Content: fmt.Sprintf("decoding arguments: %v", err), IsError: true}
	}

	res, err := t.Execute(ctx, params)
	if err != nil {
		return ToolResult{Content: err.Error(), IsError: true}
	}
	return res
}

// Definition converts the tool into the provider-facing shape.
func (t *AgentTool) Definition() ai.ToolDefinition {
	schema := t.Parameters
	if schema == nil {
		schema = json.RawMessage(`{"type":"object","properties":{}}`)
	}
	return ai.ToolDefinition{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  schema,
	}
}

// Router resolves tool names to implementations and describes the tool
// surface offered to the model.
type Router interface {
	Resolve(name string) (*AgentTool, bool)
	Definitions() []ai.ToolDefinition
}
