package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// Run shows the page full screen until the user quits.
func Run(svc PostService, log zerolog.Logger, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(New(svc, log), opts...)
	_, err := p.Run()
	return err
}
