// ABOUTME: Tests for the permission gate
// ABOUTME: Risk-based short circuits, yolo, sticky approvals, and denial

package interactive

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// autoReplier answers every permission request with a fixed reply.
type autoReplier struct {
	reply permReply
}

func (r *autoReplier) Send(m tea.Msg) {
	if req, ok := m.(permRequestMsg); ok {
		req.ReplyCh <- r.reply
	}
}

func dangerousArgs() map[string]any {
	return map[string]any{"command": "rm -rf /tmp/scratch"}
}

func TestCheckAllowsSafeTools(t *testing.T) {
	t.Parallel()

	g := NewPermGate(false)
	if err := g.Check("read_file", map[string]any{"path": "a.txt"}); err != nil {
		t.Errorf("safe tool blocked: %v", err)
	}
}

func TestCheckYoloAllowsEverything(t *testing.T) {
	t.Parallel()

	g := NewPermGate(true)
	if err := g.Check("bash", dangerousArgs()); err != nil {
		t.Errorf("yolo gate blocked: %v", err)
	}
}

func TestCheckDeniesWithoutSender(t *testing.T) {
	t.Parallel()

	g := NewPermGate(false)
	if err := g.Check("bash", dangerousArgs()); !errors.Is(err, errDenied) {
		t.Errorf("err = %v, want denial", err)
	}
}

func TestCheckDenialFromDialog(t *testing.T) {
	t.Parallel()

	g := NewPermGate(false)
	g.SetSender(&autoReplier{reply: permReply{Allowed: false}})
	if err := g.Check("bash", dangerousArgs()); !errors.Is(err, errDenied) {
		t.Errorf("err = %v, want denial", err)
	}
}

func TestCheckAlwaysSticks(t *testing.T) {
	t.Parallel()

	g := NewPermGate(false)
	g.SetSender(&autoReplier{reply: permReply{Allowed: true, Always: true}})
	if err := g.Check("bash", dangerousArgs()); err != nil {
		t.Fatalf("first check: %v", err)
	}

	// A sender that would deny must not be consulted again.
	g.SetSender(&autoReplier{reply: permReply{Allowed: false}})
	if err := g.Check("bash", dangerousArgs()); err != nil {
		t.Errorf("sticky approval not honored: %v", err)
	}
}
