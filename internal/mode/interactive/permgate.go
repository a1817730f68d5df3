// ABOUTME: Permission gate bridging the agent goroutine and the TUI dialog
// ABOUTME: Dangerous tool calls block until the user replies; approvals can stick

package interactive

import (
	"errors"
	"sync"

	"github.com/goclaw/goclaw/internal/tools"
)

// errDenied is returned to the agent when the user rejects a tool call.
var errDenied = errors.New("denied by user")

// PermGate implements the agent's permission check. The program sender is
// injected after tea.NewProgram, so the gate starts disconnected.
type PermGate struct {
	mu     sync.Mutex
	sender ProgramSender
	always map[string]bool
	yolo   bool
}

// NewPermGate creates a gate. With yolo set every call is allowed.
func NewPermGate(yolo bool) *PermGate {
	return &PermGate{
		always: make(map[string]bool),
		yolo:   yolo,
	}
}

// SetSender connects the gate to a running program.
func (g *PermGate) SetSender(p ProgramSender) {
	g.mu.Lock()
	g.sender = p
	g.mu.Unlock()
}

// Check blocks until the user approves or denies a dangerous tool call.
// Runs on the agent goroutine, never on the UI loop.
func (g *PermGate) Check(tool string, args map[string]any) error {
	if tools.Assess(tool, args) != tools.RiskDangerous {
		return nil
	}

	g.mu.Lock()
	if g.yolo || g.always[tool] {
		g.mu.Unlock()
		return nil
	}
	sender := g.sender
	g.mu.Unlock()

	if sender == nil {
		return errDenied
	}

	replyCh := make(chan permReply, 1)
	sender.Send(permRequestMsg{
		Tool:        tool,
		Description: tools.Describe(tool, args),
		ReplyCh:     replyCh,
	})
	reply := <-replyCh

	if reply.Allowed && reply.Always {
		g.mu.Lock()
		g.always[tool] = true
		g.mu.Unlock()
	}
	if !reply.Allowed {
		return errDenied
	}
	return nil
}
