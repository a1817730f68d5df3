// ABOUTME: Agent-to-Bubble Tea bridge goroutine converting agent events to tea.Msg
// ABOUTME: Reads the event channel until close, then sends runFinishedMsg

package interactive

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/goclaw/goclaw/internal/agent"
)

// ProgramSender matches *tea.Program's Send method.
type ProgramSender interface {
	Send(msg tea.Msg)
}

// runAgentBridge forwards agent events into the program. Blocks until the
// event channel closes.
func runAgentBridge(program ProgramSender, events <-chan agent.AgentEvent) {
	for evt := range events {
		switch evt.Type {
		case agent.EventStreamDelta:
			program.Send(agentTextMsg{Text: evt.Text})
		case agent.EventToolStart:
			program.Send(agentToolStartMsg{
				ToolID:   evt.ToolID,
				ToolName: evt.ToolName,
				Args:     evt.ToolArgs,
			})
		case agent.EventToolEnd:
			program.Send(agentToolEndMsg{
				ToolID:   evt.ToolID,
				ToolName: evt.ToolName,
				Result:   evt.ToolResult,
				Success:  evt.Success,
			})
		case agent.EventUsage:
			program.Send(agentUsageMsg{Usage: evt.Usage})
		case agent.EventDone:
			program.Send(agentDoneMsg{Text: evt.Text})
		case agent.EventCancelled:
			program.Send(agentCancelledMsg{})
		case agent.EventError:
			program.Send(agentErrorMsg{Err: evt.Error})
		}
	}
	program.Send(runFinishedMsg{})
}
