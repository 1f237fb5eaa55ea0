package view

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/orgdesk/admin/internal/session"
)

// LoggedInMsg is sent once the backend accepted the credentials.
type LoggedInMsg struct {
	User session.User
}

type loginFailedMsg struct{}

type LoginModel struct {
	CommonModel
	session *session.Service

	form       *huh.Form
	submitting bool
}

func NewLoginModel(sess *session.Service) LoginModel {
	var email, password string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("email").
				Title("Email").
				Value(&email).
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return errors.New("enter a valid email")
					}

					return nil
				}),

			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password),
		),
	).WithWidth(45).WithShowHelp(false)

	return LoginModel{session: sess, form: form}
}

func (m LoginModel) Title() string { return "Login" }

func (m LoginModel) ShortHelp() string { return "Enter: next | Ctrl+C: quit" }

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(loginFailedMsg); ok {
		next := NewLoginModel(m.session)
		return next, next.Init()
	}

	if m.submitting {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.submitting = true

	creds := session.Credentials{
		Email:    strings.TrimSpace(m.form.GetString("email")),
		Password: m.form.GetString("password"),
	}

	return m, func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		user, err := m.session.Login(ctx, creds)
		if err != nil {
			return loginFailedMsg{}
		}

		return LoggedInMsg{User: user}
	}
}

func (m LoginModel) View() string {
	if m.submitting {
		return lipgloss.NewStyle().Padding(2).Render("Signing in...")
	}

	return lipgloss.NewStyle().Padding(2).Render("Orgdesk Admin\n\n" + m.form.View())
}
