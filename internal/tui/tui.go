// Package tui is an interactive terminal browser for the API catalog: a
// search box, a category facet bar and the live filtered list.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"APIDirectory/internal/client"
)

// Run starts the browser full-screen and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, load client.Loader, hint string) error {
	m := New(load)
	m.Hint = hint

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
