package main

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"APIDirectory/internal/catalog"
	"APIDirectory/internal/client"
	"APIDirectory/internal/config"
	"APIDirectory/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog interactively",
	Long: `Opens a full-screen browser. Type to search names and descriptions,
tab / shift+tab to move between categories, esc to clear, ctrl+c to quit.

With --local the catalog is read straight from the configured source
instead of a catalog server.`,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().Bool("local", false, "read the configured catalog source directly")
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	// Log lines on stderr would tear the full-screen UI.
	s.client.Log = nil
	load := s.client.Loader()
	hint := serverHint(s.client.BaseURL)

	if local, _ := cmd.Flags().GetBool("local"); local {
		store, closeStore, err := openLocal(s.cfg)
		if err != nil {
			return err
		}
		defer func() { _ = closeStore() }()
		load = client.StoreLoader(store)
		hint = "Check the catalog source in your configuration"
	}

	err = tui.Run(cmd.Context(), load, hint)
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func openLocal(cfg config.Config) (catalog.Store, func() error, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg.OpenStore()
}
