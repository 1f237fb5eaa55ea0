package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/orgdesk/admin/internal/movement"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateEdit
)

var typeFilters = []movement.Type{"", movement.TypeIncome, movement.TypeExpense}

type ListModel struct {
	CommonModel
	movements *movement.Store

	state listState
	table table.Model
	rows  []movement.Movement
	form  *huh.Form

	timeframe     Timeframe
	typeFilterIdx int
	loading       bool
}

func NewListModel(movements *movement.Store) ListModel {
	columns := []table.Column{
		{Title: "Date", Width: 20},
		{Title: "Type", Width: 8},
		{Title: "Amount", Width: 12},
		{Title: "Paid", Width: 4},
		{Title: "Description", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := ListModel{movements: movements, table: t}
	m.refreshTable()

	return m
}

func (m ListModel) Title() string { return "Movements" }

func (m ListModel) ShortHelp() string {
	if m.state == listStateEdit {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | e: edit | d: date filter | t: type filter | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.loading = false
		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case listStateBrowse:
		return m.updateBrowse(msg)
	case listStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "e":
			return m.enterEditMode()
		case "d":
			m.timeframe = (m.timeframe + 1) % timeframeCount
			m.loading = true

			return m, m.loadCmd()
		case "t":
			m.typeFilterIdx = (m.typeFilterIdx + 1) % len(typeFilters)
			m.loading = true

			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) enterEditMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return m, nil
	}

	mv := m.rows[idx]
	desc, paid := mv.Description, bool(mv.Paid)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&desc).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("description cannot be empty")
					}

					return nil
				}),

			huh.NewConfirm().
				Key("paid").
				Title("Paid").
				Value(&paid),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = listStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m ListModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = listStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m ListModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading movements...")
	}

	typeLabel := "All"
	if f := typeFilters[m.typeFilterIdx]; f != "" {
		typeLabel = string(f)
	}

	totals := m.movements.Totals()

	header := fmt.Sprintf(
		"Filter: [d] Date: %s | [t] Type: %s\nIncome %s  Expense %s  Balance %s",
		activeStyle(m.timeframe.String()),
		activeStyle(typeLabel),
		FormatAmount(totals.Income),
		FormatAmount(totals.Expense),
		FormatAmount(totals.Balance),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == listStateEdit && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Edit Movement\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m ListModel) filter() movement.ListFilter {
	start, end := m.timeframe.DateRange(time.Now())

	return movement.ListFilter{
		StartDate: start,
		EndDate:   end,
		Type:      typeFilters[m.typeFilterIdx],
	}
}

func (m *ListModel) refreshTable() {
	m.rows = m.movements.Newest()

	rows := make([]table.Row, 0, len(m.rows))
	for _, mv := range m.rows {
		rows = append(rows, table.Row{
			mv.Date,
			string(mv.Type),
			FormatAmount(mv.Amount),
			mark(bool(mv.Paid)),
			mv.Description,
		})
	}

	m.table.SetRows(rows)
}

// Commands

func (m ListModel) loadCmd() tea.Cmd {
	filter := m.filter()

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		return doneMsg{err: m.movements.Load(ctx, filter)}
	}
}

func (m ListModel) saveCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return nil
	}

	mv := m.rows[idx]
	params := movement.CreateParams{
		Description: strings.TrimSpace(m.form.GetString("description")),
		Amount:      mv.Amount,
		Type:        mv.Type,
		Date:        mv.Date,
		AccountID:   mv.AccountID,
		CategoryID:  mv.CategoryID,
		Paid:        m.form.GetBool("paid"),
	}

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		return doneMsg{err: m.movements.Update(ctx, mv.ID, params)}
	}
}
