package view

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/orgdesk/admin/internal/category"
	"github.com/orgdesk/admin/internal/hierarchy"
	"github.com/orgdesk/admin/internal/record"
)

type CategoriesModel struct {
	CommonModel
	categories *category.Store

	form    *huh.Form
	loading bool
}

func NewCategoriesModel(categories *category.Store) CategoriesModel {
	return CategoriesModel{categories: categories}
}

func (m CategoriesModel) Title() string { return "Categories" }

func (m CategoriesModel) ShortHelp() string {
	if m.form != nil {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new | r: refresh"
}

func (m CategoriesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m CategoriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(doneMsg); ok {
		m.loading = false
		m.form = nil

		return m, nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			return m.openForm()
		}
	}

	return m, nil
}

func (m CategoriesModel) openForm() (tea.Model, tea.Cmd) {
	var (
		name   string
		typ    = category.TypeExpense
		parent record.ID
	)

	parents := []huh.Option[record.ID]{huh.NewOption("(none)", record.ID(""))}
	for _, o := range m.categories.Options() {
		parents = append(parents, huh.NewOption(o.Label, o.Value))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name cannot be empty")
					}

					return nil
				}),

			huh.NewSelect[category.Type]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", category.TypeExpense),
					huh.NewOption("Income", category.TypeIncome),
				).
				Value(&typ),

			huh.NewSelect[record.ID]().
				Key("parent").
				Title("Parent").
				Options(parents...).
				Value(&parent),
		),
	).WithWidth(45).WithShowHelp(false)

	return m, m.form.Init()
}

func (m CategoriesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.loading = true

	return m, m.createCmd()
}

func (m CategoriesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Saving...")
	}

	var b strings.Builder

	hierarchy.Walk(m.categories.Tree(), func(n *hierarchy.Node, depth int) {
		fmt.Fprintf(&b, "%s%s\n", strings.Repeat("  ", depth), n.Label)
	})

	if b.Len() == 0 {
		b.WriteString("No categories.")
	}

	content := b.String()

	if m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("New Category\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m CategoriesModel) loadCmd() tea.Cmd {
	return run(m.categories.Load)
}

func (m CategoriesModel) createCmd() tea.Cmd {
	typ, _ := m.form.Get("type").(category.Type)
	parent, _ := m.form.Get("parent").(record.ID)

	params := category.CreateParams{
		Name:     strings.TrimSpace(m.form.GetString("name")),
		Type:     typ,
		ParentID: parent,
		Active:   true,
	}

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		return doneMsg{err: m.categories.Create(ctx, params)}
	}
}
