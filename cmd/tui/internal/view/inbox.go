package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/orgdesk/admin/internal/bus"
	"github.com/orgdesk/admin/internal/inbox"
)

type InboxModel struct {
	CommonModel
	inbox *inbox.Store
	bus   *bus.Bus

	cursor  int
	loading bool
}

func NewInboxModel(store *inbox.Store, b *bus.Bus) InboxModel {
	return InboxModel{inbox: store, bus: b}
}

func (m InboxModel) Title() string { return "Inbox" }

func (m InboxModel) ShortHelp() string {
	return "Esc: back | Enter: mark read | a: mark all read | r: refresh"
}

func (m InboxModel) Init() tea.Cmd {
	return run(m.inbox.Load)
}

func (m InboxModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.loading = false
		m.cursor = min(m.cursor, max(m.inbox.Len()-1, 0))

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "up", "k":
			m.cursor = max(m.cursor-1, 0)
		case "down", "j":
			m.cursor = min(m.cursor+1, max(m.inbox.Len()-1, 0))
		case "r":
			m.loading = true
			return m, run(m.inbox.Load)
		case "a":
			m.loading = true
			return m, run(m.inbox.MarkAllRead)
		case "enter":
			items := m.inbox.Items()
			if m.cursor >= len(items) {
				return m, nil
			}

			id := items[m.cursor].ID
			m.loading = true

			return m, func() tea.Msg {
				ctx, cancel := APICtx()
				defer cancel()

				return doneMsg{err: m.inbox.MarkRead(ctx, id)}
			}
		}
	}

	return m, nil
}

func (m InboxModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading notifications...")
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Unread: %s\n\n", activeStyle(fmt.Sprint(m.bus.Unread())))

	for i, msg := range m.inbox.Items() {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}

		line := fmt.Sprintf("%s %s  %s", cursor, msg.CreatedAt, msg.Title)
		if !msg.Read {
			line = lipgloss.NewStyle().Bold(true).Render(line)
		}

		b.WriteString(line + "\n")
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}
