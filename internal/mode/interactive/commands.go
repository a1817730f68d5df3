// ABOUTME: Slash command table and fuzzy completion for the input line
// ABOUTME: Commands operate on the app model and return info lines for the transcript

package interactive

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

type slashCommand struct {
	Name        string
	Description string
}

var slashCommands = []slashCommand{
	{Name: "/clear", Description: "clear the conversation"},
	{Name: "/help", Description: "show available commands"},
	{Name: "/quit", Description: "exit"},
	{Name: "/save", Description: "save the session"},
	{Name: "/sessions", Description: "list saved sessions (delete <id> to remove)"},
}

// completeCommand fuzzy-matches input against the command table and
// returns matching names, best first.
func completeCommand(input string) []string {
	if !strings.HasPrefix(input, "/") {
		return nil
	}
	names := make([]string, len(slashCommands))
	for i, c := range slashCommands {
		names[i] = c.Name
	}
	if input == "/" {
		return names
	}

	matches := fuzzy.Find(input, names)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}
	return out
}

func helpText() string {
	cmds := append([]slashCommand(nil), slashCommands...)
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })

	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "  %-10s %s\n", c.Name, c.Description)
	}
	b.WriteString("Keys:\n")
	b.WriteString("  esc        cancel the running turn\n")
	b.WriteString("  ctrl+c     exit\n")
	return strings.TrimRight(b.String(), "\n")
}
