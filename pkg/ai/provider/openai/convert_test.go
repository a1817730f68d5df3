// ABOUTME: Tests for OpenAI param conversion
// ABOUTME: Covers role mapping, tool schema passthrough, and argument validation

package openai

import (
	"errors"
	"testing"

	"github.com/goclaw/goclaw/pkg/ai"
)

func TestBuildParamsMessageMapping(t *testing.T) {
	t.Parallel()

	req := &ai.ChatRequest{
		Model: "gpt-4o",
		Messages: []ai.Message{
			ai.NewTextMessage(ai.RoleSystem, "be terse"),
			ai.NewTextMessage(ai.RoleUser, "list files"),
			{Role: ai.RoleAssistant, ToolCalls: []ai.ToolCall{
				{ID: "call_1", Name: "bash", Arguments: []byte(`{"command":"ls"}`)},
			}},
			ai.NewToolResultMessage("call_1", "a.txt"),
		},
		Tools: []ai.ToolDefinition{{
			Name:        "bash",
			Description: "run a command",
			Parameters:  []byte(`{"type":"object","properties":{"command":{"type":"string"}}}`),
		}},
		MaxTokens: 512,
	}

	params, err := buildParams(req)
	if err != nil {
		t.Fatalf("buildParams: %v", err)
	}
	if len(params.Messages) != 4 {
		t.Errorf("got %d messages, want 4", len(params.Messages))
	}
	if len(params.Tools) != 1 || params.Tools[0].Function.Name != "bash" {
		t.Errorf("tools not converted: %+v", params.Tools)
	}
}

func TestToMessageParamUnknownRole(t *testing.T) {
	t.Parallel()

	if _, err := toMessageParam(ai.Message{Role: "weird"}); err == nil {
		t.Error("unknown role accepted")
	}
}

func TestToToolCall(t *testing.T) {
	t.Parallel()

	call, err := toToolCall("call_1", "bash", `{"command":"ls"}`)
	if err != nil {
		t.Fatalf("toToolCall: %v", err)
	}
	if call.Name != "bash" {
		t.Errorf("name = %q", call.Name)
	}

	call, err = toToolCall("call_2", "bash", "")
	if err != nil {
		t.Fatalf("toToolCall empty args: %v", err)
	}
	if string(call.Arguments) != "{}" {
		t.Errorf("empty arguments = %q, want {}", call.Arguments)
	}

	var perr *ai.ParseError
	if _, err := toToolCall("call_3", "bash", `{"broken`); !errors.As(err, &perr) {
		t.Errorf("malformed arguments error = %v, want ParseError", err)
	}
}
