// ABOUTME: Anthropic Messages API provider over the official SDK
// ABOUTME: Maps streaming events onto provider-neutral chunks with ordinal tool-call slots

package anthropic

import (
	"context"
	"errors"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/goclaw/goclaw/pkg/ai"
)

func init() {
	ai.RegisterProvider("anthropic", func(cfg ai.ProviderConfig) ai.Provider {
		return New(cfg)
	})
}

// Provider talks to the Anthropic Messages API.
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

func (p *Provider) Name() string { return "anthropic" }

// Complete performs one non-streamed exchange.
func (p *Provider) Complete(ctx context.Context, req *ai.ChatRequest) (*ai.ChatResponse, error) {
	params, err := buildParams(req)
	if err != nil {
		return nil, err
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}

	resp := &ai.ChatResponse{
		Usage: &ai.Usage{
			InputTokens:  msg.Usage.InputTokens,
			OutputTokens: msg.Usage.OutputTokens,
		},
	}
	for _, block := range msg.Content {
		switch b := block.AsAny().(type) {
		case sdk.TextBlock:
			resp.Content += b.Text
		case sdk.ToolUseBlock:
			resp.ToolCalls = append(resp.ToolCalls, ai.ToolCall{
				ID:        b.ID,
				Name:      b.Name,
				Arguments: []byte(b.JSON.Input.Raw()),
			})
		}
	}
	return resp, nil
}

// Stream performs a streamed exchange. Anthropic addresses tool_use blocks
// by content-block index; those are remapped to dense ordinal slots here.
func (p *Provider) Stream(ctx context.Context, req *ai.ChatRequest) *ai.ChunkStream {
	out := ai.NewChunkStream(64)

	params, err := buildParams(req)
	if err != nil {
		out.FinishWithError(err)
		return out
	}

	stream := p.client.Messages.NewStreaming(ctx, params)
	go func() {
		asm := ai.NewAssembler()
		var feedErr error
		send := func(c ai.StreamChunk) {
			out.Send(c)
			if feedErr == nil {
				feedErr = asm.Feed(c)
			}
		}

		slotByBlock := make(map[int64]int)
		nextSlot := 0
		var reportedOutput int64

		for stream.Next() {
			switch ev := stream.Current().AsAny().(type) {
			case sdk.MessageStartEvent:
				send(ai.StreamChunk{Type: ai.ChunkUsage, Usage: &ai.Usage{
					InputTokens:  ev.Message.Usage.InputTokens,
					OutputTokens: ev.Message.Usage.OutputTokens,
				}})
				reportedOutput = ev.Message.Usage.OutputTokens
			case sdk.ContentBlockStartEvent:
				if blk, ok := ev.ContentBlock.AsAny().(sdk.ToolUseBlock); ok {
					slot := nextSlot
					nextSlot++
					slotByBlock[ev.Index] = slot
					send(ai.StreamChunk{
						Type:     ai.ChunkToolCallDelta,
						Index:    slot,
						ToolID:   blk.ID,
						ToolName: blk.Name,
					})
				}
			case sdk.ContentBlockDeltaEvent:
				switch d := ev.Delta.AsAny().(type) {
				case sdk.TextDelta:
					send(ai.StreamChunk{Type: ai.ChunkTextDelta, Text: d.Text})
				case sdk.InputJSONDelta:
					if slot, ok := slotByBlock[ev.Index]; ok {
						send(ai.StreamChunk{Type: ai.ChunkToolCallDelta, Index: slot, ArgsFragment: d.PartialJSON})
					}
				}
			case sdk.MessageDeltaEvent:
				// Output token counts arrive cumulative; emit the delta.
				if d := ev.Usage.OutputTokens - reportedOutput; d > 0 {
					reportedOutput = ev.Usage.OutputTokens
					send(ai.StreamChunk{Type: ai.ChunkUsage, Usage: &ai.Usage{OutputTokens: d}})
				}
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
