// ABOUTME: Non-interactive print mode: run one prompt to completion and exit
// ABOUTME: Output goes through a Formatter so text and JSON share one event loop

package print

import (
	"context"
	"errors"

	"github.com/goclaw/goclaw/internal/agent"
)

// Formatter renders agent events for one run.
type Formatter interface {
	Text(s string)
	ToolStart(name, args string)
	ToolEnd(name, result string, ok bool)
	Error(err error)
	End(finalText string, stats agent.SessionStats)
}

// ErrCancelled reports a run stopped by the cancellation token.
var ErrCancelled = errors.New("run cancelled")

// Run executes one prompt and renders its events. The returned stats
// cover only this run.
func Run(ctx context.Context, a *agent.Agent, prompt string, f Formatter) (agent.SessionStats, error) {
	tok := agent.NewCancelToken()
	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-ctx.Done():
			tok.Cancel()
		case <-tok.Done():
		case <-watchDone:
		}
	}()

	var stats agent.SessionStats
	var runErr error
	var finalText string
	cancelled := false

	for evt := range a.Prompt(ctx, prompt, tok) {
		stats.Apply(evt)
		switch evt.Type {
		case agent.EventStreamDelta:
			f.Text(evt.Text)
		case agent.EventToolStart:
			f.ToolStart(evt.ToolName, evt.ToolArgs)
		case agent.EventToolEnd:
			f.ToolEnd(evt.ToolName, evt.ToolResult, evt.Success)
		case agent.EventError:
			runErr = evt.Error
			f.Error(evt.Error)
		case agent.EventCancelled:
			cancelled = true
		case agent.EventDone:
			finalText = evt.Text
		}
	}

	f.End(finalText, stats)
	if cancelled && runErr == nil {
		runErr = ErrCancelled
	}
	return stats, runErr
}
