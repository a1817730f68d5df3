// ABOUTME: Conversion between provider-neutral chat types and OpenAI SDK params
// ABOUTME: Assistant tool calls round-trip through ChatCompletionMessage.ToParam

package openai

import (
	"encoding/json"
	"fmt"

	sdk "github.com/openai/openai-go"

	"github.com/goclaw/goclaw/pkg/ai"
)

func buildParams(req *ai.ChatRequest) (sdk.ChatCompletionNewParams, error) {
	params := sdk.ChatCompletionNewParams{
		Model: sdk.ChatModel(req.Model),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = sdk.Int(req.MaxTokens)
	}

	for _, m := range req.Messages {
		converted, err := toMessageParam(m)
		if err != nil {
			return sdk.ChatCompletionNewParams{}, err
		}
		params.Messages = append(params.Messages, converted)
	}

	for _, t := range req.Tools {
		tool, err := toolParam(t)
		if err != nil {
			return sdk.ChatCompletionNewParams{}, err
		}
		params.Tools = append(params.Tools, tool)
	}
	return params, nil
}

func toMessageParam(m ai.Message) (sdk.ChatCompletionMessageParamUnion, error) {
	switch m.Role {
	case ai.RoleSystem:
		return sdk.SystemMessage(m.Content), nil
	case ai.RoleUser:
		return sdk.UserMessage(m.Content), nil
	case ai.RoleAssistant:
		if len(m.ToolCalls) == 0 {
			return sdk.AssistantMessage(m.Content), nil
		}
		assistant := sdk.ChatCompletionMessage{
			Role:    "assistant",
			Content: m.Content,
		}
		for _, tc := range m.ToolCalls {
			assistant.ToolCalls = append(assistant.ToolCalls, sdk.ChatCompletionMessageToolCall{
				ID:   tc.ID,
				Type: "function",
				Function: sdk.ChatCompletionMessageToolCallFunction{
					Name:      tc.Name,
					Arguments: string(tc.Arguments),
				},
			})
		}
		return assistant.ToParam(), nil
	case ai.RoleTool:
		return sdk.ToolMessage(m.ToolCallID, m.Content), nil
	default:
		return sdk.ChatCompletionMessageParamUnion{}, fmt.Errorf("unsupported message role %q", m.Role)
	}
}

func toolParam(t ai.ToolDefinition) (sdk.ChatCompletionToolParam, error) {
	var schema map[string]interface{}
	if len(t.Parameters) > 0 {
		if err := json.Unmarshal(t.Parameters, &schema); err != nil {
			return sdk.ChatCompletionToolParam{}, fmt.Errorf("tool %s: invalid parameter schema: %w", t.Name, err)
		}
	}
	if schema == nil {
		schema = map[string]interface{}{"type": "object", "properties": map[string]interface{}{}}
	}
	return sdk.ChatCompletionToolParam{
		Type: "function",
		Function: sdk.FunctionDefinitionParam{
			Name:        t.Name,
			Description: sdk.String(t.Description),
			Parameters:  sdk.FunctionParameters(schema),
		},
	}, nil
}

// toToolCall validates the argument payload before it enters the history.
func toToolCall(id, name, args string) (ai.ToolCall, error) {
	if args == "" {
		args = "{}"
	}
	if !json.Valid([]byte(args)) {
		return ai.ToolCall{}, &ai.ParseError{
			Reason: fmt.Sprintf("tool call %s has malformed arguments", id),
		}
	}
	return ai.ToolCall{ID: id, Name: name, Arguments: json.RawMessage(args)}, nil
}
