// ABOUTME: OpenAI Chat Completions provider over the official SDK
// ABOUTME: Also serves OpenAI-compatible backends via a base URL override

package openai

import (
	"context"
	"errors"

	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/goclaw/goclaw/pkg/ai"
)

func init() {
	factory := func(cfg ai.ProviderConfig) ai.Provider {
		return New(cfg)
	}
	ai.RegisterProvider("openai", factory)
	ai.RegisterProvider("openai_compatible", factory)
}

// Provider talks to the OpenAI Chat Completions API or any
// compatible backend.
type Provider struct {
	client sdk.Client
}

// New creates a Provider from connection settings.
func New(cfg ai.ProviderConfig) *Provider {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Provider{client: sdk.NewClient(opts...)}
}

func (p *Provider) Name() string { return "openai" }

// Complete performs one non-streamed exchange.
func (p *Provider) Complete(ctx context.Context, req *ai.ChatRequest) (*ai.ChatResponse, error) {
	params, err := buildParams(req)
	if err != nil {
		return nil, err
	}

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}
	if len(completion.Choices) == 0 {
		return nil, &ai.ParseError{Reason: "response has no choices"}
	}

	msg := completion.Choices[0].Message
	resp := &ai.ChatResponse{
		Content: msg.Content,
		Usage: &ai.Usage{
			InputTokens:  completion.Usage.PromptTokens,
			OutputTokens: completion.Usage.CompletionTokens,
		},
	}
	for _, tc := range msg.ToolCalls {
		call, err := toToolCall(tc.ID, tc.Function.Name, tc.Function.Arguments)
		if err != nil {
			return nil, err
		}
		resp.ToolCalls = append(resp.ToolCalls, call)
	}
	return resp, nil
}

// Stream performs a streamed exchange. The wire protocol already carries
// per-call indexes, so deltas pass through with minimal reshaping.
func (p *Provider) Stream(ctx context.Context, req *ai.ChatRequest) *ai.ChunkStream {
	out := ai.NewChunkStream(64)

	params, err := buildParams(req)
	if err != nil {
		out.FinishWithError(err)
		return out
	}
	params.StreamOptions = sdk.ChatCompletionStreamOptionsParam{
		IncludeUsage: sdk.Bool(true),
	}

	stream := p.client.Chat.Completions.NewStreaming(ctx, params)
	go func() {
		asm := ai.NewAssembler()
		var feedErr error
		send := func(c ai.StreamChunk) {
			out.Send(c)
			if feedErr == nil {
				feedErr = asm.Feed(c)
			}
		}

		for stream.Next() {
			chunk := stream.Current()
			if len(chunk.Choices) > 0 {
				delta := chunk.Choices[0].Delta
				if delta.Content != "" {
					send(ai.StreamChunk{Type: ai.ChunkTextDelta, Text: delta.Content})
				}
				for _, tc := range delta.ToolCalls {
					send(ai.StreamChunk{
						Type:         ai.ChunkToolCallDelta,
						Index:        int(tc.Index),
						ToolID:       tc.ID,
						ToolName:     tc.Function.Name,
						ArgsFragment: tc.Function.Arguments,
					})
				}
			}
			// The usage chunk arrives last, with an empty choice list.
			if chunk.Usage.PromptTokens > 0 || chunk.Usage.CompletionTokens > 0 {
				send(ai.StreamChunk{Type: ai.ChunkUsage, Usage: &ai.Usage{
					InputTokens:  chunk.Usage.PromptTokens,
					OutputTokens: chunk.Usage.CompletionTokens,
				}})
			}
		}
		if err := stream.Err(); err != nil {
			out.FinishWithError(wrapError(err))
			return
		}

		send(ai.StreamChunk{Type: ai.ChunkDone})
		if feedErr != nil {
			out.FinishWithError(feedErr)
			return
		}
		resp, err := asm.Finalize()
		if err != nil {
			out.FinishWithError(err)
			return
		}
		out.Finish(resp)
	}()

	return out
}

// wrapError maps SDK failures onto the provider error taxonomy.
func wrapError(err error) error {
	var apierr *sdk.Error
	if errors.As(err, &apierr) {
		return &ai.ProviderError{StatusCode: apierr.StatusCode, Message: apierr.Error()}
	}
	return &ai.NetworkError{Err: err}
}
