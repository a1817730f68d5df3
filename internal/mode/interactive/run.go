// ABOUTME: Entry point for the interactive TUI
// ABOUTME: Creates the tea.Program, injects it into the model and gate, blocks until exit

package interactive

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive app and blocks until the user exits.
func Run(deps Deps) error {
	app := NewApp(deps)

	p := tea.NewProgram(app, tea.WithAltScreen())
	app.program = p
	if deps.Gate != nil {
		deps.Gate.SetSender(p)
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("bubble tea: %w", err)
	}
	return nil
}
