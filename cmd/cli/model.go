package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eci-voterfind/voterfind/internal/candidate"
	"github.com/eci-voterfind/voterfind/internal/config"
	"github.com/eci-voterfind/voterfind/internal/diagnostics"
	"github.com/eci-voterfind/voterfind/internal/engine"
	"github.com/eci-voterfind/voterfind/internal/rank"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// resultItem adapts one engine.RankedRow to bubbles/list's DefaultItem.
type resultItem struct {
	row engine.RankedRow
}

func (i resultItem) Title() string {
	return fmt.Sprintf("%s  (serial %d, ac %s)", i.row.Row.VoterNameRaw, i.row.Row.SerialNo, i.row.AC)
}

func (i resultItem) Description() string {
	crumb := diagnostics.Explain("match", rank.Result{OK: true, Key: i.row.Key, Detail: i.row.Detail})
	if i.row.Row.RelativeNameRaw == "" {
		return crumb
	}
	return fmt.Sprintf("rel: %s | %s", i.row.Row.RelativeNameRaw, crumb)
}

func (i resultItem) FilterValue() string {
	return i.row.Row.VoterNameRaw + " " + i.row.Row.RelativeNameRaw
}

// searchResultMsg carries one Search call's outcome back into Update.
type searchResultMsg struct {
	rows []engine.RankedRow
	errs []engine.ACError
	err  error
}

// model is the bubbletea program state: a query box feeding a ranked
// result list via the standard textinput+list wiring.
type model struct {
	input textinput.Model
	list  list.Model
	eng   *engine.Engine
	cfg   *config.Config
	scope candidate.Scope
	acs   []string

	width, height int
	searching     bool
	lastErr       error
}

func newModel(eng *engine.Engine, cfg *config.Config, acs []string) model {
	ti := textinput.New()
	ti.Placeholder = "टाइप करें... (query in Devanagari or romanized Hindi)"
	ti.Focus()
	ti.CharLimit = 128
	ti.Width = 60

	l := list.New(nil, list.NewDefaultDelegate(), 80, 20)
	l.Title = "Results"
	l.SetShowStatusBar(false)

	return model{
		input: ti,
		list:  l,
		eng:   eng,
		cfg:   cfg,
		scope: cfg.ParseScope(),
		acs:   acs,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) runSearch() tea.Cmd {
	query := m.input.Value()
	eng, scope, acs := m.eng, m.scope, m.acs
	return func() tea.Msg {
		if query == "" {
			return searchResultMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		rows, errs, err := eng.Search(ctx, query, acs, scope, nil)
		return searchResultMsg{rows: rows, errs: errs, err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		inputHeight := 3
		m.list.SetSize(msg.Width, msg.Height-inputHeight)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			m.searching = true
			m.lastErr = nil
			return m, m.runSearch()
		}

	case searchResultMsg:
		m.searching = false
		m.lastErr = msg.err
		items := make([]list.Item, 0, len(msg.rows))
		for _, r := range msg.rows {
			items = append(items, resultItem{row: r})
		}
		cmd := m.list.SetItems(items)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m model) View() string {
	header := titleStyle.Render("Electoral roll search") + "\n" + m.input.View()
	if m.searching {
		header += detailStyle.Render("  searching...")
	}
	if m.lastErr != nil {
		header += "\n" + errorStyle.Render("error: "+m.lastErr.Error())
	}
	return header + "\n" + m.list.View()
}
