// ABOUTME: Stream assembler: folds incremental chunks into a complete ChatResponse
// ABOUTME: Accumulates per-index tool-call fragments and validates IDs and argument JSON

package ai

import (
	"encoding/json"
	"strings"
)

// toolCallSlot accumulates fragments for one tool-call index.
type toolCallSlot struct {
	id   string
	name string
	args strings.Builder
}

// Assembler folds a chunk sequence into a ChatResponse. Feed each chunk in
// arrival order, then call Finalize after the Done chunk. Argument fragments
// are buffered raw and parsed exactly once at finalize time, so partial JSON
// mid-stream is never an error while malformed complete JSON is.
type Assembler struct {
	text    strings.Builder
	slots   []*toolCallSlot
	order   []int // slot indexes in first-seen order
	seenIDs map[string]int
	usage   *Usage
	done    bool
}

// NewAssembler creates an empty assembler for one model turn.
func NewAssembler() *Assembler {
	return &Assembler{seenIDs: make(map[string]int)}
}

// Feed incorporates one chunk. The only feed-time failures are tool-call
// identity conflicts; everything else is deferred to Finalize.
func (a *Assembler) Feed(c StreamChunk) error {
	switch c.Type {
	case ChunkTextDelta:
		a.text.WriteString(c.Text)
	case ChunkToolCallDelta:
		return a.feedToolCall(c)
	case ChunkUsage:
		if c.Usage != nil {
			if a.usage == nil {
				a.usage = &Usage{}
			}
			a.usage.InputTokens += c.Usage.InputTokens
			a.usage.OutputTokens += c.Usage.OutputTokens
		}
	case ChunkDone:
		a.done = true
	case ChunkError:
		return c.Err
	}
	return nil
}

func (a *Assembler) feedToolCall(c StreamChunk) error {
	if c.Index < 0 {
		return parseErrorf("tool call delta with negative index %d", c.Index)
	}
	for len(a.slots) <= c.Index {
		a.slots = append(a.slots, nil)
	}
	slot := a.slots[c.Index]
	if slot == nil {
		slot = &toolCallSlot{}
		a.slots[c.Index] = slot
		a.order = append(a.order, c.Index)
	}
	if c.ToolID != "" {
		if slot.id != "" && slot.id != c.ToolID {
			return parseErrorf("tool call index %d changed id from %q to %q", c.Index, slot.id, c.ToolID)
		}
		if prev, ok := a.seenIDs[c.ToolID]; ok && prev != c.Index {
			return parseErrorf("duplicate tool call id %q at indexes %d and %d", c.ToolID, prev, c.Index)
		}
		slot.id = c.ToolID
		a.seenIDs[c.ToolID] = c.Index
	}
	if c.ToolName != "" {
		slot.name += c.ToolName
	}
	slot.args.WriteString(c.ArgsFragment)
	return nil
}

// Finalize validates the accumulated state and returns the response.
// Tool calls come out in slot-index arrival order. Empty argument buffers
// become the empty JSON object.
func (a *Assembler) Finalize() (*ChatResponse, error) {
	if !a.done {
		return nil, parseErrorf("stream ended without a done chunk")
	}

	calls := make([]ToolCall, 0, len(a.order))
	for _, idx := range a.order {
		slot := a.slots[idx]
		if slot.id == "" {
			return nil, parseErrorf("tool call index %d has no id", idx)
		}
		if slot.name == "" {
			return nil, parseErrorf("tool call %s has no name", slot.id)
		}
		raw := slot.args.String()
		if strings.TrimSpace(raw) == "" {
			raw = "{}"
		}
		if !json.Valid([]byte(raw)) {
			return nil, parseErrorf("tool call %s has malformed arguments: %.80s", slot.id, raw)
		}
		calls = append(calls, ToolCall{ID: slot.id, Name: slot.name, Arguments: json.RawMessage(raw)})
	}

	return &ChatResponse{
		Content:   a.text.String(),
		ToolCalls: calls,
		Usage:     a.usage,
	}, nil
}

// ReplayResponse exposes a non-streamed response as a minimal chunk
// sequence: one text delta, each tool call delivered whole, usage, done.
// Lets callers treat non-streaming providers uniformly.
func ReplayResponse(resp *ChatResponse) *ChunkStream {
	stream := NewChunkStream(len(resp.ToolCalls) + 4)
	go func() {
		if resp.Content != "" {
			stream.Send(StreamChunk{Type: ChunkTextDelta, Text: resp.Content})
		}
		for i, tc := range resp.ToolCalls {
			stream.Send(StreamChunk{
				Type:         ChunkToolCallDelta,
				Index:        i,
				ToolID:       tc.ID,
				ToolName:     tc.Name,
				ArgsFragment: string(tc.Arguments),
			})
		}
		if resp.Usage != nil {
			u := *resp.Usage
			stream.Send(StreamChunk{Type: ChunkUsage, Usage: &u})
		}
		stream.Send(StreamChunk{Type: ChunkDone})
		stream.Finish(resp)
	}()
	return stream
}
