package view

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/orgdesk/admin/internal/account"
	"github.com/orgdesk/admin/internal/importer"
	"github.com/orgdesk/admin/internal/options"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateAccountSelect importState = iota
	importStateFilePick
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	accounts      *account.Store
	importService *importer.Service

	state         importState
	filePicker    filepicker.Model
	accountCursor int
	selected      options.Option

	status string
	err    error
}

func NewImportModel(accounts *account.Store, impSvc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		accounts:      accounts,
		importService: impSvc,
		filePicker:    fp,
	}
}

func (m ImportModel) Title() string { return "Import Statement" }

func (m ImportModel) ShortHelp() string {
	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return run(m.accounts.Load)
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateAccountSelect {
			return m.updateAccountSelect(msg)
		}

	case importResultMsg:
		m.state = importStateResult
		m.err = msg.err

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d movements into %s.", msg.count, m.selected.Label)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick:
		m.state = importStateAccountSelect
		return m, nil
	case importStateResult:
		m.state = importStateAccountSelect
		m.err = nil
		m.status = ""

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateAccountSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	opts := m.accounts.Options()

	switch msg.Type {
	case tea.KeyUp:
		if m.accountCursor > 0 {
			m.accountCursor--
		}
	case tea.KeyDown:
		if m.accountCursor < len(opts)-1 {
			m.accountCursor++
		}
	case tea.KeyEnter:
		if m.accountCursor >= len(opts) {
			return m, nil
		}

		m.selected = opts[m.accountCursor]
		m.state = importStateFilePick

		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateAccountSelect:
		return m.viewAccountSelect()
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select statement for %s:\n\n%s", m.selected.Label, m.filePicker.View()),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewAccountSelect() string {
	s := "Select Account:\n\n"

	opts := m.accounts.Options()
	if len(opts) == 0 {
		s += "No active accounts."
	}

	for i, o := range opts {
		cursor := " "
		if i == m.accountCursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, o.Label)
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func (m ImportModel) viewResult() string {
	color := lipgloss.Color("46")
	if m.err != nil {
		color = lipgloss.Color("196")
	}

	return lipgloss.NewStyle().Padding(2).Render(
		lipgloss.NewStyle().Foreground(color).Render(m.status) + "\n\n(Esc to go back)",
	)
}

type importResultMsg struct {
	count int
	err   error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	accountID := m.selected.Value

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		n, err := m.importService.Import(ctx, importer.FormatStatement, f, accountID)

		return importResultMsg{count: n, err: err}
	}
}
