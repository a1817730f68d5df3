// ABOUTME: Custom tea.Msg types for the interactive TUI
// ABOUTME: Agent events, the permission flow, and internal messages

package interactive

import (
	"github.com/goclaw/goclaw/pkg/ai"
)

// --- Agent events (sent by the bridge goroutine via Program.Send) ---

// agentTextMsg carries streamed assistant text.
type agentTextMsg struct{ Text string }

// agentToolStartMsg signals that a tool execution has begun.
type agentToolStartMsg struct {
	ToolID   string
	ToolName string
	Args     string
}

// agentToolEndMsg signals that a tool execution has completed.
type agentToolEndMsg struct {
	ToolID   string
	ToolName string
	Result   string
	Success  bool
}

// agentUsageMsg carries a token usage delta.
type agentUsageMsg struct{ Usage *ai.Usage }

// agentDoneMsg signals a finalized turn.
type agentDoneMsg struct{ Text string }

// agentCancelledMsg signals the turn stopped at a cancellation point.
type agentCancelledMsg struct{}

// agentErrorMsg carries a fatal turn error.
type agentErrorMsg struct{ Err error }

// runFinishedMsg is sent after the event channel closes.
type runFinishedMsg struct{}

// --- Permission flow ---

// permReply is the user's response to a permission request.
type permReply struct {
	Allowed bool
	Always  bool
}

// permRequestMsg asks the user to approve a dangerous tool invocation.
// The agent goroutine blocks on ReplyCh until the user responds.
type permRequestMsg struct {
	Tool        string
	Description string
	ReplyCh     chan<- permReply
}
