package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/propchat/propchat/config"
	"github.com/propchat/propchat/store"
)

// Start launches the chat TUI against the given storage engine.
func Start(cfg *config.Config, st store.Executor) error {
	app, err := NewApp(cfg, st)
	if err != nil {
		return err
	}
	p := tea.NewProgram(app, tea.WithAltScreen())

	_, err = p.Run()
	return err
}
