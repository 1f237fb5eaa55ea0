package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/orgdesk/admin/internal/bus"
	"github.com/orgdesk/admin/internal/enterprise"
	"github.com/orgdesk/admin/internal/session"
)

// EnterprisesModel switches the enterprise the session is viewing.
type EnterprisesModel struct {
	CommonModel
	enterprises *enterprise.Store
	session     *session.Service
	bus         *bus.Bus

	cursor  int
	loading bool
}

func NewEnterprisesModel(enterprises *enterprise.Store, sess *session.Service, b *bus.Bus) EnterprisesModel {
	return EnterprisesModel{enterprises: enterprises, session: sess, bus: b}
}

func (m EnterprisesModel) Title() string { return "Enterprises" }

func (m EnterprisesModel) ShortHelp() string {
	return "Esc: back | Enter: view enterprise | r: refresh"
}

func (m EnterprisesModel) Init() tea.Cmd {
	return run(m.enterprises.Load)
}

func (m EnterprisesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.loading = false
		m.cursor = min(m.cursor, max(m.enterprises.Len()-1, 0))

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "up", "k":
			m.cursor = max(m.cursor-1, 0)
		case "down", "j":
			m.cursor = min(m.cursor+1, max(m.enterprises.Len()-1, 0))
		case "r":
			m.loading = true
			return m, run(m.enterprises.Load)
		case "enter":
			ordered := m.enterprises.Ordered()
			if m.cursor >= len(ordered) {
				return m, nil
			}

			e := ordered[m.cursor]
			m.loading = true

			return m, func() tea.Msg {
				ctx, cancel := APICtx()
				defer cancel()

				return doneMsg{err: m.session.SelectEnterprise(ctx, e)}
			}
		}
	}

	return m, nil
}

func (m EnterprisesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading enterprises...")
	}

	var b strings.Builder

	view := m.session.State().EnterpriseView()
	if view == "" {
		view = "none"
	}

	fmt.Fprintf(&b, "Viewing: %s | Headquarters: %s | Data complete: %s\n\n",
		activeStyle(view), mark(m.enterprises.Headquarters()), mark(m.bus.DataComplete()))

	for i, e := range m.enterprises.Ordered() {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}

		hq := ""
		if e.Headquarters {
			hq = " (HQ)"
		}

		fmt.Fprintf(&b, "%s %s%s  %s\n", cursor, e.Name, hq, e.Document)
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}
