// ABOUTME: One-line status bar: model, session id, request and token counters
// ABOUTME: Truncated by display width so wide runes never wrap the bar

package interactive

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/goclaw/goclaw/internal/agent"
)

func statusLine(model, sessionID string, stats agent.SessionStats, running bool, width int) string {
	state := "idle"
	if running {
		state = "working"
	}
	line := fmt.Sprintf(" %s | %s | %s | %d req | %d tok",
		model, sessionID, state, stats.RequestCount, stats.TotalTokens())
	if width > 1 {
		line = runewidth.Truncate(line, width-1, "…")
	}
	return styles.Status.Render(line)
}
