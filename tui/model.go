// Package tui renders an interactive, scrollable outline tree in the
// terminal for the browse command.
package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lexcodex/outlinify/outline"
)

// Run opens the outline browser for one file's Def forest.
func Run(path string, defs []outline.Def) error {
	program := tea.NewProgram(NewModel(path, defs), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// Model implements the Bubble Tea model for the outline browser.
type Model struct {
	path string
	defs []outline.Def

	view   viewport.Model
	width  int
	height int
	ready  bool
}

// NewModel builds the browser model.
func NewModel(path string, defs []outline.Def) Model {
	return Model{path: path, defs: defs}
}

func (m Model) Init() tea.Cmd {
	return nil
}
