// ABOUTME: Tests for Anthropic param conversion
// ABOUTME: Covers system prompt lifting, assistant blocks, and schema splitting

package anthropic

import (
	"testing"

	"github.com/goclaw/goclaw/pkg/ai"
)

func TestBuildParamsMessageMapping(t *testing.T) {
	t.Parallel()

	req := &ai.ChatRequest{
		Model: "claude-sonnet-4-20250514",
		Messages: []ai.Message{
			ai.NewTextMessage(ai.RoleSystem, "be terse"),
			ai.NewTextMessage(ai.RoleUser, "list files"),
			{Role: ai.RoleAssistant, ToolCalls: []ai.ToolCall{
				{ID: "toolu_1", Name: "bash", Arguments: []byte(`{"command":"ls"}`)},
			}},
			ai.NewToolResultMessage("toolu_1", "a.txt"),
		},
		Tools: []ai.ToolDefinition{{
			Name:        "bash",
			Description: "run a command",
			Parameters:  []byte(`{"type":"object","properties":{"command":{"type":"string"}},"required":["command"]}`),
		}},
		MaxTokens: 512,
	}

	params, err := buildParams(req)
	if err != nil {
		t.Fatalf("buildParams: %v", err)
	}
	if len(params.System) != 1 || params.System[0].Text != "be terse" {
		t.Errorf("system prompt not lifted: %+v", params.System)
	}
	// The system message is removed from the turn list.
	if len(params.Messages) != 3 {
		t.Fatalf("got %d messages, want 3", len(params.Messages))
	}
	if params.MaxTokens != 512 {
		t.Errorf("MaxTokens = %d", params.MaxTokens)
	}
	if len(params.Tools) != 1 || params.Tools[0].OfTool == nil {
		t.Fatalf("tools not converted: %+v", params.Tools)
	}
	tool := params.Tools[0].OfTool
	if tool.Name != "bash" {
		t.Errorf("tool name = %q", tool.Name)
	}
	if len(tool.InputSchema.Required) != 1 || tool.InputSchema.Required[0] != "command" {
		t.Errorf("required fields = %v", tool.InputSchema.Required)
	}
}

func TestBuildParamsDefaultMaxTokens(t *testing.T) {
	t.Parallel()

	params, err := buildParams(&ai.ChatRequest{
		Model:    "m",
		Messages: []ai.Message{ai.NewTextMessage(ai.RoleUser, "hi")},
	})
	if err != nil {
		t.Fatalf("buildParams: %v", err)
	}
	if params.MaxTokens != defaultMaxTokens {
		t.Errorf("MaxTokens = %d, want %d", params.MaxTokens, defaultMaxTokens)
	}
}

func TestBuildParamsSkipsEmptyAssistantTurn(t *testing.T) {
	t.Parallel()

	params, err := buildParams(&ai.ChatRequest{
		Model: "m",
		Messages: []ai.Message{
			ai.NewTextMessage(ai.RoleUser, "hi"),
			ai.NewTextMessage(ai.RoleAssistant, ""),
		},
	})
	if err != nil {
		t.Fatalf("buildParams: %v", err)
	}
	if len(params.Messages) != 1 {
		t.Errorf("empty assistant turn kept: %d messages", len(params.Messages))
	}
}

func TestToolParamNilSchema(t *testing.T) {
	t.Parallel()

	tool, err := toolParam(ai.ToolDefinition{Name: "ping", Description: "ping"})
	if err != nil {
		t.Fatalf("toolParam: %v", err)
	}
	if tool.OfTool.InputSchema.Properties == nil {
		t.Error("nil schema should produce an empty properties map")
	}
}
