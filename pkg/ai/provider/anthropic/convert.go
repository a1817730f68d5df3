// ABOUTME: Conversion between provider-neutral chat types and Anthropic SDK params
// ABOUTME: System messages become the system prompt; tool schemas split into properties/required

package anthropic

import (
	"encoding/json"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"

	"github.com/goclaw/goclaw/pkg/ai"
)

const defaultMaxTokens = 4096

func buildParams(req *ai.ChatRequest) (sdk.MessageNewParams, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	params := sdk.MessageNewParams{
		Model:     sdk.Model(req.Model),
		MaxTokens: maxTokens,
	}

	for _, m := range req.Messages {
		switch m.Role {
		case ai.RoleSystem:
			params.System = append(params.System, sdk.TextBlockParam{Text: m.Content})
		case ai.RoleUser:
			params.Messages = append(params.Messages, sdk.NewUserMessage(sdk.NewTextBlock(m.Content)))
		case ai.RoleAssistant:
			blocks := assistantBlocks(m)
			if len(blocks) == 0 {
				continue
			}
			params.Messages = append(params.Messages, sdk.MessageParam{
				Role:    sdk.MessageParamRoleAssistant,
				Content: blocks,
			})
		case ai.RoleTool:
			isErr := strings.HasPrefix(m.Content, "Error:")
			params.Messages = append(params.Messages,
				sdk.NewUserMessage(sdk.NewToolResultBlock(m.ToolCallID, m.Content, isErr)))
		default:
			return sdk.MessageNewParams{}, fmt.Errorf("unsupported message role %q", m.Role)
		}
	}

	for _, t := range req.Tools {
		tool, err := toolParam(t)
		if err != nil {
			return sdk.MessageNewParams{}, err
		}
		params.Tools = append(params.Tools, tool)
	}
	return params, nil
}

func assistantBlocks(m ai.Message) []sdk.ContentBlockParamUnion {
	var blocks []sdk.ContentBlockParamUnion
	if m.Content != "" {
		blocks = append(blocks, sdk.NewTextBlock(m.Content))
	}
	for _, tc := range m.ToolCalls {
		var input any
		if err := json.Unmarshal(tc.Arguments, &input); err != nil || input == nil {
			input = map[string]any{}
		}
		blocks = append(blocks, sdk.NewToolUseBlock(tc.ID, input, tc.Name))
	}
	return blocks
}

// toolParam splits a JSON-schema tool definition into the properties and
// required fields the Messages API expects.
func toolParam(t ai.ToolDefinition) (sdk.ToolUnionParam, error) {
	var schema struct {
		Properties map[string]any `json:"properties"`
		Required   []string       `json:"required"`
	}
	if len(t.Parameters) > 0 {
		if err := json.Unmarshal(t.Parameters, &schema); err != nil {
			return sdk.ToolUnionParam{}, fmt.Errorf("tool %s: invalid parameter schema: %w", t.Name, err)
		}
	}
	if schema.Properties == nil {
		schema.Properties = map[string]any{}
	}
	return sdk.ToolUnionParam{
		OfTool: &sdk.ToolParam{
			Name:        t.Name,
			Description: sdk.String(t.Description),
			InputSchema: sdk.ToolInputSchemaParam{
				Properties: schema.Properties,
				Required:   schema.Required,
			},
		},
	}, nil
}
