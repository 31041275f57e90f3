package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"APIDirectory/internal/catalog"
	"APIDirectory/internal/client"
	"APIDirectory/internal/query"
)

const (
	defaultLoadTimeout = 10 * time.Second
	entryLines         = 4
	chromeLines        = 10
)

// MsgCatalogLoaded carries a freshly loaded snapshot.
type MsgCatalogLoaded struct {
	Snapshot *catalog.Snapshot
}

// MsgCatalogFailed carries a load failure.
type MsgCatalogFailed struct {
	Err error
}

// Model is the catalog browser. Loading is delegated to the injected
// Loader; filtering is delegated to a query.Session.
type Model struct {
	load    client.Loader
	timeout time.Duration
	memo    *query.Memo
	keys    KeyMap

	input   textinput.Model
	session *query.Session
	loading bool
	err     error
	offset  int
	width   int
	height  int

	// Hint is shown under load errors.
	Hint string
}

func New(load client.Loader) Model {
	ti := textinput.New()
	ti.Prompt = "⌕ "
	ti.Placeholder = "Search APIs by name or description..."
	ti.CharLimit = 128
	ti.Focus()

	return Model{
		load:    load,
		timeout: defaultLoadTimeout,
		memo:    query.NewMemo(0),
		keys:    DefaultKeyMap(),
		input:   ti,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), textinput.Blink)
}

func (m Model) loadCmd() tea.Cmd {
	load, timeout := m.load, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		snap, err := load(ctx)
		if err != nil {
			return MsgCatalogFailed{Err: err}
		}
		return MsgCatalogLoaded{Snapshot: snap}
	}
}

// Session returns the active browsing session, nil until the catalog loads.
func (m Model) Session() *query.Session { return m.session }

func (m Model) Err() error { return m.err }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.clampOffset()
		return m, nil

	case MsgCatalogLoaded:
		m.loading = false
		m.err = nil
		if m.session == nil {
			m.session = query.NewSession(msg.Snapshot, m.memo)
			m.session.SetSearch(m.input.Value())
		} else {
			m.session.Replace(msg.Snapshot)
		}
		m.clampOffset()
		return m, nil

	case MsgCatalogFailed:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.err != nil {
		if key.Matches(msg, m.keys.Retry) {
			m.err = nil
			m.loading = true
			return m, m.loadCmd()
		}
		return m, nil
	}
	if m.session == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Reload):
		// The current view stays up until the new snapshot arrives.
		return m, m.loadCmd()
	case key.Matches(msg, m.keys.NextCategory):
		m.session.CycleCategory(1)
		m.offset = 0
		return m, nil
	case key.Matches(msg, m.keys.PrevCategory):
		m.session.CycleCategory(-1)
		m.offset = 0
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.offset++
		m.clampOffset()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.offset--
		m.clampOffset()
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		m.input.SetValue("")
		m.session.Reset()
		m.offset = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != m.session.State().Search {
		m.session.SetSearch(v)
		m.offset = 0
	}
	return m, cmd
}

// visibleEntries is how many entries fit on screen; all of them when the
// terminal size is not known yet.
func (m Model) visibleEntries() int {
	if m.height <= 0 {
		return -1
	}
	n := (m.height - chromeLines) / entryLines
	if n < 1 {
		n = 1
	}
	return n
}

func (m *Model) clampOffset() {
	if m.session == nil {
		m.offset = 0
		return
	}
	maxOffset := m.session.View().Count - 1
	if vis := m.visibleEntries(); vis > 0 {
		maxOffset = m.session.View().Count - vis
	}
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}
