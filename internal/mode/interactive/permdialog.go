// ABOUTME: Overlay dialog for dangerous tool approvals
// ABOUTME: y allows once, a allows for the session, n or esc denies

package interactive

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// dismissDialogMsg signals that the dialog should be removed.
type dismissDialogMsg struct{}

// permDialog presents one pending permission request.
type permDialog struct {
	tool        string
	description string
	replyCh     chan<- permReply
	width       int
}

func newPermDialog(req permRequestMsg, width int) permDialog {
	return permDialog{
		tool:        req.Tool,
		description: req.Description,
		replyCh:     req.ReplyCh,
		width:       width,
	}
}

// reply sends without blocking in case the agent goroutine has moved on.
func (d permDialog) reply(r permReply) {
	select {
	case d.replyCh <- r:
	default:
	}
}

func (d permDialog) update(msg tea.KeyMsg) (permDialog, tea.Cmd) {
	dismiss := func() tea.Msg { return dismissDialogMsg{} }
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			break
		}
		switch msg.Runes[0] {
		case 'y':
			d.reply(permReply{Allowed: true})
			return d, dismiss
		case 'a':
			d.reply(permReply{Allowed: true, Always: true})
			return d, dismiss
		case 'n':
			d.reply(permReply{Allowed: false})
			return d, dismiss
		}
	case tea.KeyEsc, tea.KeyCtrlC:
		d.reply(permReply{Allowed: false})
		return d, dismiss
	}
	return d, nil
}

func (d permDialog) view() string {
	var b strings.Builder
	b.WriteString(styles.Warning.Render("Allow this action?"))
	b.WriteByte('\n')
	b.WriteString(fmt.Sprintf("%s\n", d.description))
	b.WriteString(styles.Dim.Render("[y] allow once  [a] always this session  [n/esc] deny"))

	box := styles.DialogBox
	if d.width > 4 {
		box = box.MaxWidth(d.width - 2)
	}
	return box.Render(b.String())
}
