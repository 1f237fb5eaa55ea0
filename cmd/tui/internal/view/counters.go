package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/orgdesk/admin/internal/counter"
	"github.com/orgdesk/admin/internal/enterprise"
)

// CountersModel lists the accountants and links one to the enterprise.
type CountersModel struct {
	CommonModel
	counters    *counter.Store
	enterprises *enterprise.Store

	cursor  int
	loading bool
}

func NewCountersModel(counters *counter.Store, enterprises *enterprise.Store) CountersModel {
	return CountersModel{counters: counters, enterprises: enterprises}
}

func (m CountersModel) Title() string { return "Counters" }

func (m CountersModel) ShortHelp() string {
	return "Esc: back | l: link | u: unlink | r: refresh"
}

func (m CountersModel) Init() tea.Cmd {
	return run(m.counters.Load)
}

func (m CountersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.loading = false
		m.cursor = min(m.cursor, max(m.counters.Len()-1, 0))

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "up", "k":
			m.cursor = max(m.cursor-1, 0)
		case "down", "j":
			m.cursor = min(m.cursor+1, max(m.counters.Len()-1, 0))
		case "r":
			m.loading = true
			return m, run(m.counters.Load)
		case "l", "u":
			items := m.counters.Items()
			if m.cursor >= len(items) {
				return m, nil
			}

			op := m.counters.Link
			if msg.String() == "u" {
				op = m.counters.Unlink
			}

			id := items[m.cursor].ID
			m.loading = true

			return m, func() tea.Msg {
				ctx, cancel := APICtx()
				defer cancel()

				return doneMsg{err: op(ctx, id)}
			}
		}
	}

	return m, nil
}

func (m CountersModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading counters...")
	}

	var b strings.Builder

	linkage := "none"
	if id, ok := m.enterprises.CounterLinkage(); ok && !id.IsZero() {
		linkage = id.String()
	}

	fmt.Fprintf(&b, "Linked counter: %s\n\n", activeStyle(linkage))

	for i, c := range m.counters.Items() {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}

		fmt.Fprintf(&b, "%s [%s] %s  %s\n", cursor, mark(bool(c.Linked)), c.Name, c.Email)
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}
