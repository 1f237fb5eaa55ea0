package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/orgdesk/admin/cmd/tui/internal/view"
	"github.com/orgdesk/admin/internal/app"
	"github.com/orgdesk/admin/internal/config"
	"github.com/orgdesk/admin/internal/database"
	"github.com/orgdesk/admin/internal/notify"
	"github.com/orgdesk/admin/internal/session"
	sessionStore "github.com/orgdesk/admin/internal/session/store"
	"github.com/orgdesk/admin/internal/transport"
)

type model struct {
	stores *app.Stores
	toasts view.Toasts
	title  string

	currentView View

	loginView       view.LoginModel
	listView        view.ListModel
	categoriesView  view.CategoriesModel
	importView      view.ImportModel
	inboxView       view.InboxModel
	countersView    view.CountersModel
	enterprisesView view.EnterprisesModel
}

type View int

const (
	ViewLogin       View = 0
	ViewMenu        View = 1
	ViewList        View = 2
	ViewCategories  View = 3
	ViewImport      View = 4
	ViewInbox       View = 5
	ViewCounters    View = 6
	ViewEnterprises View = 7
)

type refreshedMsg struct{}

type loggedOutMsg struct{}

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logFile, err := tea.LogToFile("orgdesk-tui.log", "tui")
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	db, err := database.New(cfg.Session.Driver, cfg.Session.DSN)
	if err != nil {
		slog.Error("failed to open session database", "error", err)
		os.Exit(1)
	}

	ctx, cancel := view.APICtx()
	defer cancel()

	repo := sessionStore.New(db)
	if err := repo.Migrate(ctx); err != nil {
		slog.Error("failed to migrate session database", "error", err)
		os.Exit(1)
	}

	state := session.NewState(repo)
	if err := state.Restore(ctx); err != nil && !errors.Is(err, session.ErrNoSession) {
		slog.Error("failed to restore session", "error", err)
		os.Exit(1)
	}

	toasts := &notify.Buffer{}

	stores := app.New(app.Options{
		Invoker: transport.New(transport.Config{
			BaseURL:     cfg.API.BaseURL,
			Timeout:     cfg.API.Timeout,
			RateLimit:   cfg.API.RateLimit,
			Burst:       cfg.API.RateBurst,
			Credentials: state,
			Logger:      logger,
		}),
		Notifier: toasts,
		Logger:   logger,
		Session:  state,
		Locale:   cfg.App.Locale,
		Fenced:   cfg.Sync.Fencing,
	})

	m := model{
		stores:          stores,
		toasts:          view.NewToasts(toasts),
		title:           cfg.App.Name,
		currentView:     ViewLogin,
		loginView:       view.NewLoginModel(stores.Session),
		listView:        view.NewListModel(stores.Movements),
		categoriesView:  view.NewCategoriesModel(stores.Categories),
		importView:      view.NewImportModel(stores.Accounts, stores.Importer),
		inboxView:       view.NewInboxModel(stores.Inbox, stores.Bus),
		countersView:    view.NewCountersModel(stores.Counters, stores.Enterprises),
		enterprisesView: view.NewEnterprisesModel(stores.Enterprises, stores.Session, stores.Bus),
	}

	if state.Token() != "" && !state.Expired(time.Now()) {
		m.currentView = ViewMenu
	}

	return m
}

func (m model) Init() tea.Cmd {
	if m.currentView == ViewLogin {
		return tea.Batch(m.toasts.Tick(), m.loginView.Init())
	}

	return tea.Batch(m.toasts.Tick(), m.refreshCmd())
}

func (m model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		_ = m.stores.Refresh(ctx)

		return refreshedMsg{}
	}
}

func (m model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := view.APICtx()
		defer cancel()

		_ = m.stores.Logout(ctx)

		return loggedOutMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case view.ToastTickMsg:
		m.toasts = m.toasts.Advance(time.Time(msg))
		return m, m.toasts.Tick()
	case refreshedMsg:
		return m, nil
	case view.LoggedInMsg:
		slog.Info("logged in", "user", msg.User.Email)
		m.currentView = ViewMenu

		return m, m.refreshCmd()
	case loggedOutMsg:
		m.currentView = ViewLogin
		m.loginView = view.NewLoginModel(m.stores.Session)

		return m, m.loginView.Init()
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewList
				return m, m.listView.Init()
			case "2":
				m.currentView = ViewCategories
				return m, m.categoriesView.Init()
			case "3":
				m.currentView = ViewImport
				return m, m.importView.Init()
			case "4":
				m.currentView = ViewInbox
				return m, m.inboxView.Init()
			case "5":
				m.currentView = ViewCounters
				return m, m.countersView.Init()
			case "6":
				m.currentView = ViewEnterprises
				return m, m.enterprisesView.Init()
			case "r":
				return m, m.refreshCmd()
			case "l":
				return m, m.logoutCmd()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewCategories:
		var newModel tea.Model
		newModel, cmd = m.categoriesView.Update(msg)
		m.categoriesView = newModel.(view.CategoriesModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewInbox:
		var newModel tea.Model
		newModel, cmd = m.inboxView.Update(msg)
		m.inboxView = newModel.(view.InboxModel)
	case ViewCounters:
		var newModel tea.Model
		newModel, cmd = m.countersView.Update(msg)
		m.countersView = newModel.(view.CountersModel)
	case ViewEnterprises:
		var newModel tea.Model
		newModel, cmd = m.enterprisesView.Update(msg)
		m.enterprisesView = newModel.(view.EnterprisesModel)
	}

	return m, cmd
}

func (m model) current() view.View {
	switch m.currentView {
	case ViewLogin:
		return m.loginView
	case ViewList:
		return m.listView
	case ViewCategories:
		return m.categoriesView
	case ViewImport:
		return m.importView
	case ViewInbox:
		return m.inboxView
	case ViewCounters:
		return m.countersView
	case ViewEnterprises:
		return m.enterprisesView
	}

	return nil
}

func (m model) View() string {
	var body string

	if v := m.current(); v != nil {
		help := lipgloss.NewStyle().Faint(true).Render(v.ShortHelp())
		body = lipgloss.JoinVertical(lipgloss.Left, v.View(), help)
	} else {
		body = lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("%s  (%d unread)\n\n", m.title, m.stores.Bus.Unread()) +
				"1. Movements\n" +
				"2. Categories\n" +
				"3. Import Statement\n" +
				"4. Inbox\n" +
				"5. Counters\n" +
				"6. Enterprises\n\n" +
				"r. Refresh | l. Logout | q. Quit",
		)
	}

	if m.toasts.Len() == 0 {
		return body
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.toasts.View())
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
