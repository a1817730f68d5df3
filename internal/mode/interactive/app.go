// ABOUTME: Root Bubble Tea model for the interactive TUI
// ABOUTME: Transcript viewport, input line, spinner, status bar, and permission overlay

package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/goclaw/goclaw/internal/agent"
	"github.com/goclaw/goclaw/internal/session"
	"github.com/goclaw/goclaw/pkg/ai"
)

// Deps holds everything the app needs from the outside.
type Deps struct {
	Agent *agent.Agent
	Store *session.Store
	Sess  *session.Session
	Model string
	Gate  *PermGate
}

type entryKind int

const (
	entryUser entryKind = iota
	entryAssistant
	entryTool
	entryToolErr
	entryInfo
	entryError
)

type entry struct {
	kind entryKind
	text string
}

// App is the root model. Used as a pointer so the bridge goroutine's
// program reference stays valid across updates.
type App struct {
	deps    Deps
	program ProgramSender

	vp      viewport.Model
	input   textinput.Model
	spin    spinner.Model
	md      *markdownRenderer
	width   int
	height  int
	ready   bool
	history []entry

	running  bool
	tok      *agent.CancelToken
	partial  strings.Builder
	stats    agent.SessionStats
	dialog   *permDialog
	quitting bool
}

// NewApp creates the root model from its dependencies.
func NewApp(deps Deps) *App {
	input := textinput.New()
	input.Placeholder = "ask anything, / for commands"
	input.Prompt = "> "
	input.Focus()

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))

	a := &App{
		deps:  deps,
		input: input,
		spin:  spin,
		md:    newMarkdownRenderer(),
		stats: deps.Sess.Stats,
	}
	a.restoreTranscript()
	return a
}

// restoreTranscript replays a resumed session into the transcript.
func (a *App) restoreTranscript() {
	for _, m := range a.deps.Sess.Messages {
		switch m.Role {
		case ai.RoleUser:
			a.history = append(a.history, entry{entryUser, m.Content})
		case ai.RoleAssistant:
			if m.Content != "" {
				a.history = append(a.history, entry{entryAssistant, m.Content})
			}
		}
	}
	if len(a.history) > 0 {
		a.history = append(a.history, entry{entryInfo, fmt.Sprintf("resumed session %s", a.deps.Sess.ID)})
	}
}

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		vpHeight := msg.Height - 3
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !a.ready {
			a.vp = viewport.New(msg.Width, vpHeight)
			a.ready = true
		} else {
			a.vp.Width = msg.Width
			a.vp.Height = vpHeight
		}
		a.input.Width = msg.Width - 4
		a.refresh()
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case spinner.TickMsg:
		if !a.running {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case agentTextMsg:
		a.partial.WriteString(msg.Text)
		a.refresh()
		return a, nil

	case agentToolStartMsg:
		a.history = append(a.history, entry{entryTool, fmt.Sprintf("• %s %s", msg.ToolName, msg.Args)})
		a.refresh()
		return a, nil

	case agentToolEndMsg:
		if !msg.Success {
			a.history = append(a.history, entry{entryToolErr, fmt.Sprintf("  ✗ %s", msg.Result)})
			a.refresh()
		}
		return a, nil

	case agentUsageMsg:
		a.stats.Apply(agent.AgentEvent{Type: agent.EventUsage, Usage: msg.Usage})
		return a, nil

	case agentDoneMsg:
		a.stats.Apply(agent.AgentEvent{Type: agent.EventDone})
		a.partial.Reset()
		if msg.Text != "" {
			a.history = append(a.history, entry{entryAssistant, msg.Text})
		}
		a.refresh()
		return a, nil

	case agentCancelledMsg:
		a.partial.Reset()
		a.history = append(a.history, entry{entryInfo, "cancelled"})
		a.refresh()
		return a, nil

	case agentErrorMsg:
		a.partial.Reset()
		a.history = append(a.history, entry{entryError, fmt.Sprintf("error: %v", msg.Err)})
		a.refresh()
		return a, nil

	case runFinishedMsg:
		a.running = false
		a.tok = nil
		a.syncSession()
		return a, nil

	case permRequestMsg:
		d := newPermDialog(msg, a.width)
		a.dialog = &d
		return a, nil

	case dismissDialogMsg:
		a.dialog = nil
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.dialog != nil {
		d, cmd := a.dialog.update(msg)
		a.dialog = &d
		return a, cmd
	}

	switch msg.Type {
	case tea.KeyCtrlC:
		if a.tok != nil {
			a.tok.Cancel()
		}
		a.quitting = true
		return a, tea.Quit

	case tea.KeyEsc:
		if a.running && a.tok != nil {
			a.tok.Cancel()
			a.history = append(a.history, entry{entryInfo, "cancelling..."})
			a.refresh()
		}
		return a, nil

	case tea.KeyTab:
		if matches := completeCommand(a.input.Value()); len(matches) > 0 {
			a.input.SetValue(matches[0])
			a.input.CursorEnd()
		}
		return a, nil

	case tea.KeyEnter:
		return a.submit()
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(a.input.Value())
	if text == "" || a.running {
		return a, nil
	}
	a.input.SetValue("")

	if strings.HasPrefix(text, "/") {
		return a.runCommand(text)
	}

	a.history = append(a.history, entry{entryUser, text})
	a.running = true
	a.tok = agent.NewCancelToken()
	a.refresh()

	events := a.deps.Agent.Prompt(context.Background(), text, a.tok)
	program := a.program
	go runAgentBridge(program, events)
	return a, a.spin.Tick
}

func (a *App) runCommand(text string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(text)
	switch fields[0] {
	case "/help":
		a.history = append(a.history, entry{entryInfo, helpText()})
	case "/clear":
		a.clearConversation()
		a.history = append(a.history, entry{entryInfo, "conversation cleared"})
	case "/save":
		a.syncSession()
		if err := a.deps.Store.Save(a.deps.Sess); err != nil {
			a.history = append(a.history, entry{entryError, fmt.Sprintf("save failed: %v", err)})
		} else {
			a.history = append(a.history, entry{entryInfo, fmt.Sprintf("saved session %s", a.deps.Sess.ID)})
		}
	case "/sessions":
		if len(fields) == 3 && fields[1] == "delete" {
			a.deleteSession(fields[2])
		} else {
			a.listSessions()
		}
	case "/quit":
		a.quitting = true
		return a, tea.Quit
	default:
		a.history = append(a.history, entry{entryError, fmt.Sprintf("unknown command %s (try /help)", text)})
	}
	a.refresh()
	return a, nil
}

// clearConversation drops everything but the system prompt.
func (a *App) clearConversation() {
	var kept []ai.Message
	if h := a.deps.Agent.History(); len(h) > 0 && h[0].Role == ai.RoleSystem {
		kept = h[:1]
	}
	a.deps.Agent.SetHistory(kept)
	a.history = nil
	a.deps.Sess.Messages = nil
}

func (a *App) deleteSession(id string) {
	if err := a.deps.Store.Delete(id); err != nil {
		a.history = append(a.history, entry{entryError, fmt.Sprintf("deleting session %s: %v", id, err)})
		return
	}
	a.history = append(a.history, entry{entryInfo, fmt.Sprintf("deleted session %s", id)})
}

func (a *App) listSessions() {
	sessions, err := a.deps.Store.List()
	if err != nil {
		a.history = append(a.history, entry{entryError, fmt.Sprintf("listing sessions: %v", err)})
		return
	}
	if len(sessions) == 0 {
		a.history = append(a.history, entry{entryInfo, "no saved sessions"})
		return
	}
	var b strings.Builder
	b.WriteString("Saved sessions:\n")
	for _, s := range sessions {
		fmt.Fprintf(&b, "  %s  %s  %s\n", s.ID, s.UpdatedAt.Format("2006-01-02 15:04"), s.Title())
	}
	a.history = append(a.history, entry{entryInfo, strings.TrimRight(b.String(), "\n")})
}

// syncSession copies the live conversation into the session model.
func (a *App) syncSession() {
	a.deps.Sess.Messages = a.deps.Agent.History()
	a.deps.Sess.Stats = a.stats
}

// refresh rebuilds the viewport content and scrolls to the bottom.
func (a *App) refresh() {
	if !a.ready {
		return
	}
	width := a.vp.Width
	var b strings.Builder
	for _, e := range a.history {
		switch e.kind {
		case entryUser:
			b.WriteString(styles.User.Render("> " + e.text))
		case entryAssistant:
			b.WriteString(a.md.render(e.text, width))
		case entryTool:
			b.WriteString(styles.Tool.Render(e.text))
		case entryToolErr:
			b.WriteString(styles.ToolErr.Render(e.text))
		case entryInfo:
			b.WriteString(styles.Info.Render(e.text))
		case entryError:
			b.WriteString(styles.Error.Render(e.text))
		}
		b.WriteString("\n\n")
	}
	// The in-progress turn streams as raw text; markdown comes at Done.
	if a.partial.Len() > 0 {
		b.WriteString(a.partial.String())
		b.WriteByte('\n')
	}
	a.vp.SetContent(b.String())
	a.vp.GotoBottom()
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	if !a.ready {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(a.vp.View())
	b.WriteByte('\n')

	switch {
	case a.dialog != nil:
		b.WriteString(a.dialog.view())
	case a.running:
		b.WriteString(a.spin.View() + styles.Dim.Render(" working (esc to cancel)"))
	default:
		b.WriteString(a.input.View())
		if matches := completeCommand(a.input.Value()); len(matches) > 0 {
			b.WriteByte('\n')
			b.WriteString(styles.Dim.Render(strings.Join(matches, "  ")))
		}
	}

	b.WriteByte('\n')
	b.WriteString(statusLine(a.deps.Model, a.deps.Sess.ID, a.stats, a.running, a.width))
	return b.String()
}
