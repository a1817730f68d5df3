// ABOUTME: Agent loop: prompt -> stream -> tool execution -> repeat, with iteration cap
// ABOUTME: Emits events through an unbounded queue so the loop never blocks on consumers

package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/goclaw/goclaw/internal/eventbus"
	"github.com/goclaw/goclaw/internal/log"
	"github.com/goclaw/goclaw/pkg/ai"
)

// ErrIterationLimit is the terminal failure when the model keeps requesting
// tools past the configured iteration cap.
var ErrIterationLimit = errors.New("iteration limit exceeded")

// PermCheckFunc validates whether a tool call may execute.
// Returns nil to allow; an error becomes the tool's error result.
type PermCheckFunc func(tool string, args map[string]any) error

// Options configures an Agent.
type Options struct {
	Model         string
	SystemPrompt  string
	MaxTokens     int64
	MaxIterations int
	ContextWindow int  // estimated-token budget for history trimming; 0 disables
	Stream        bool // use the provider's streaming path
	PermCheck     PermCheckFunc
}

// Agent orchestrates the prompt-stream-tool loop against a provider.
type Agent struct {
	provider  ai.Provider
	router    Router
	opts      Options
	observers *eventbus.Bus[AgentEvent]

	mu       sync.Mutex
	messages []ai.Message

	state atomic.Int32
}

// New creates an Agent. The system prompt, when set, becomes the first
// history entry.
func New(provider ai.Provider, router Router, opts Options) *Agent {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 20
	}
	a := &Agent{
		provider:  provider,
		router:    router,
		opts:      opts,
		observers: eventbus.NewBus[AgentEvent](),
	}
	if opts.SystemPrompt != "" {
		a.messages = append(a.messages, ai.NewTextMessage(ai.RoleSystem, opts.SystemPrompt))
	}
	return a
}

// Subscribe registers an observer for every emitted event, independent of
// the per-run channel. Returns an unsubscribe function.
func (a *Agent) Subscribe(handler func(AgentEvent)) func() {
	return a.observers.Subscribe(handler)
}

// emit delivers an event to the run's consumer and to observers.
func (a *Agent) emit(queue *eventbus.Queue[AgentEvent], evt AgentEvent) {
	queue.Push(evt)
	a.observers.Publish(evt)
}

// State returns the lifecycle state of the most recent prompt run.
func (a *Agent) State() AgentState {
	return AgentState(a.state.Load())
}

// History returns a copy of the conversation history.
func (a *Agent) History() []ai.Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]ai.Message, len(a.messages))
	copy(out, a.messages)
	return out
}

// SetHistory replaces the conversation history, e.g. when resuming a session.
func (a *Agent) SetHistory(msgs []ai.Message) {
	a.mu.Lock()
	a.messages = append([]ai.Message(nil), msgs...)
	a.mu.Unlock()
}

// Prompt appends the user input and starts the loop in a goroutine.
// The returned channel preserves emission order exactly and is closed when
// the run reaches a terminal state. tok may be nil for uncancellable runs.
func (a *Agent) Prompt(ctx context.Context, input string, tok *CancelToken) <-chan AgentEvent {
	a.mu.Lock()
	a.messages = append(a.messages, ai.NewTextMessage(ai.RoleUser, input))
	a.mu.Unlock()

	a.state.Store(int32(StateRunning))
	queue := eventbus.NewQueue[AgentEvent]()
	go a.loop(ctx, tok, queue)
	return queue.Out()
}

func (a *Agent) loop(ctx context.Context, tok *CancelToken, queue *eventbus.Queue[AgentEvent]) {
	defer queue.Close()

	for iter := 1; ; iter++ {
		if tok.Cancelled() {
			a.finish(queue, StateCancelled, AgentEvent{Type: EventCancelled})
			return
		}

		a.trimHistory()

		resp, err := a.callModel(ctx, queue)
		if err != nil {
			a.finish(queue, StateFailed, AgentEvent{Type: EventError, Error: err})
			return
		}

		a.appendMessage(assistantMessage(resp))

		if !resp.HasToolCalls() {
			a.finish(queue, StateFinalized, AgentEvent{Type: EventDone, Text: resp.Content})
			return
		}

		if cancelled := a.runTools(ctx, queue, tok, resp.ToolCalls); cancelled {
			a.finish(queue, StateCancelled, AgentEvent{Type: EventCancelled})
			return
		}

		if iter >= a.opts.MaxIterations {
			a.finish(queue, StateFailed, AgentEvent{
				Type:  EventError,
				Error: fmt.Errorf("%w after %d iterations", ErrIterationLimit, iter),
			})
			return
		}
	}
}

func (a *Agent) finish(queue *eventbus.Queue[AgentEvent], state AgentState, evt AgentEvent) {
	a.state.Store(int32(state))
	a.emit(queue, evt)
}

// callModel performs one provider exchange, forwarding text and usage
// chunks as events while the assembler folds the full response.
func (a *Agent) callModel(ctx context.Context, queue *eventbus.Queue[AgentEvent]) (*ai.ChatResponse, error) {
	req := a.buildRequest()

	var stream *ai.ChunkStream
	if a.opts.Stream {
		stream = a.provider.Stream(ctx, req)
	} else {
		resp, err := a.provider.Complete(ctx, req)
		if err != nil {
			return nil, err
		}
		stream = ai.ReplayResponse(resp)
	}

	asm := ai.NewAssembler()
	var feedErr error
	for chunk := range stream.Chunks() {
		switch chunk.Type {
		case ai.ChunkTextDelta:
			a.emit(queue, AgentEvent{Type: EventStreamDelta, Text: chunk.Text})
		case ai.ChunkUsage:
			if chunk.Usage != nil {
				u := *chunk.Usage
				a.emit(queue, AgentEvent{Type: EventUsage, Usage: &u})
			}
		}
		if feedErr == nil {
			// Keep draining after a failure so the producer can finish.
			feedErr = asm.Feed(chunk)
		}
	}
	if feedErr != nil {
		return nil, feedErr
	}
	return asm.Finalize()
}

func (a *Agent) buildRequest() *ai.ChatRequest {
	a.mu.Lock()
	msgs := make([]ai.Message, len(a.messages))
	copy(msgs, a.messages)
	a.mu.Unlock()

	return &ai.ChatRequest{
		Model:     a.opts.Model,
		Messages:  msgs,
		Tools:     a.router.Definitions(),
		MaxTokens: a.opts.MaxTokens,
	}
}

// runTools dispatches tool calls sequentially in model order. Returns true
// when cancellation interrupted the dispatch; remaining calls then get stub
// results so no assistant message references an unanswered call.
func (a *Agent) runTools(ctx context.Context, queue *eventbus.Queue[AgentEvent], tok *CancelToken, calls []ai.ToolCall) bool {
	for i, call := range calls {
		if tok.Cancelled() {
			for _, rest := range calls[i:] {
				a.appendMessage(ai.NewToolResultMessage(rest.ID, "cancelled before execution"))
			}
			return true
		}
		a.runTool(ctx, queue, call)
	}
	return false
}

func (a *Agent) runTool(ctx context.Context, queue *eventbus.Queue[AgentEvent], call ai.ToolCall) {
	a.emit(queue, AgentEvent{
		Type:     EventToolStart,
		ToolID:   call.ID,
		ToolName: call.Name,
		ToolArgs: preview(string(call.Arguments)),
	})

	result := a.execute(ctx, call)

	a.emit(queue, AgentEvent{
		Type:       EventToolEnd,
		ToolID:     call.ID,
		ToolName:   call.Name,
		ToolResult: preview(result.Content),
		Success:    !result.IsError,
	})

	content := result.Content
	if result.IsError {
		content = "Error: " + content
	}
	a.appendMessage(ai.NewToolResultMessage(call.ID, content))
}

func (a *Agent) execute(ctx context.Context, call ai.ToolCall) ToolResult {
	tool, ok := a.router.Resolve(call.Name)
	if !ok {
		log.Debug("model requested unknown tool %q", call.Name)
		return ToolResult{Content: fmt.Sprintf("unknown tool: %s", call.Name), IsError: true}
	}

	if a.opts.PermCheck != nil {
		var params map[string]any
		_ = json.Unmarshal(call.Arguments, &params)
		if err := a.opts.PermCheck(call.Name, params); err != nil {
			return ToolResult{Content: err.Error(), IsError: true}
		}
	}

	return tool.Run(ctx, call.Arguments)
}

func (a *Agent) appendMessage(msg ai.Message) {
	a.mu.Lock()
	a.messages = append(a.messages, msg)
	a.mu.Unlock()
}

// assistantMessage converts an assembled response into a history entry.
func assistantMessage(resp *ai.ChatResponse) ai.Message {
	return ai.Message{
		Role:      ai.RoleAssistant,
		Content:   resp.Content,
		ToolCalls: resp.ToolCalls,
	}
}

// Rough token estimate: about 3 characters per token plus per-message
// framing overhead.
const (
	charsPerToken   = 3
	perMessageToken = 4
	trimThreshold   = 0.85
)

func estimateTokens(msgs []ai.Message) int {
	total := 0
	for _, m := range msgs {
		total += len(m.Content)/charsPerToken + perMessageToken
		for _, tc := range m.ToolCalls {
			total += len(tc.Arguments)/charsPerToken + perMessageToken
		}
	}
	return total
}

// trimHistory drops the oldest non-system messages once the estimated size
// crosses the threshold, along with any tool results orphaned by the drop.
func (a *Agent) trimHistory() {
	if a.opts.ContextWindow <= 0 {
		return
	}
	budget := int(float64(a.opts.ContextWindow) * trimThreshold)

	a.mu.Lock()
	defer a.mu.Unlock()

	start := 0
	if len(a.messages) > 0 && a.messages[0].Role == ai.RoleSystem {
		start = 1
	}

	dropped := 0
	for len(a.messages)-start > 1 && estimateTokens(a.messages) > budget {
		a.messages = append(a.messages[:start], a.messages[start+1:]...)
		dropped++
		for len(a.messages) > start && a.messages[start].Role == ai.RoleTool {
			a.messages = append(a.messages[:start], a.messages[start+1:]...)
			dropped++
		}
	}
	if dropped > 0 {
		log.Debug("trimmed %d messages from history", dropped)
	}
}
