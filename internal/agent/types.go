// ABOUTME: Core agent types: events, states, and preview helpers
// ABOUTME: Wire-format agnostic; used by the loop, tools, and both UI modes

package agent

import (
	"strings"

	"github.com/goclaw/goclaw/pkg/ai"
)

// AgentEventType identifies the kind of agent event emitted during execution.
type AgentEventType int

const (
	EventStreamDelta AgentEventType = iota // Streamed text from the model
	EventToolStart                         // Tool execution began
	EventToolEnd                           // Tool execution completed
	EventUsage                             // Token usage delta
	EventDone                              // Turn finished; Text holds the final answer
	EventCancelled                         // Cooperative cancellation honored
	EventError                             // Loop-terminating failure
)

// AgentEvent is a single event emitted by the agent loop. Tool previews are
// truncated for display; the conversation history keeps full content.
type AgentEvent struct {
	Type       AgentEventType
	Text       string
	ToolID     string
	ToolName   string
	ToolArgs   string // preview of the argument JSON
	ToolResult string // preview of the result
	Success    bool   // EventToolEnd: execution outcome
	Usage      *ai.Usage
	Error      error
}

// AgentState is the lifecycle state of one prompt run.
type AgentState int32

const (
	StateIdle AgentState = iota
	StateRunning
	StateFinalized
	StateCancelled
	StateFailed
)

func (s AgentState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinalized:
		return "finalized"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

const previewLimit = 200

// preview flattens s to one line and truncates it for event display.
func preview(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > previewLimit {
		return s[:previewLimit] + "..."
	}
	return s
}
