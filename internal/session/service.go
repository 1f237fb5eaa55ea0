package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/orgdesk/admin/internal/enterprise"
	"github.com/orgdesk/admin/internal/notify"
	"github.com/orgdesk/admin/internal/transport"
)

type Service struct {
	state    *State
	invoker  transport.Invoker
	view     enterprise.ViewSink
	notifier notify.Notifier
	logger   *slog.Logger
}

func NewService(state *State, invoker transport.Invoker, view enterprise.ViewSink, notifier notify.Notifier) *Service {
	if notifier == nil {
		notifier = notify.LogNotifier{Logger: slog.Default()}
	}

	return &Service{
		state:    state,
		invoker:  invoker,
		view:     view,
		notifier: notifier,
		logger:   slog.Default().With("kind", "session"),
	}
}

func (s *Service) State() *State {
	return s.state
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token and persists the new session.
func (s *Service) Login(ctx context.Context, creds Credentials) (User, error) {
	user, err := s.login(ctx, creds)
	if err != nil {
		s.logger.Warn("login failed", "error", err)
		notify.ReportError(s.notifier, err)

		return User{}, err
	}

	return user, nil
}

func (s *Service) login(ctx context.Context, creds Credentials) (User, error) {
	resp, err := s.invoker.Invoke(ctx, http.MethodPost, "/auth/login", creds)
	if err != nil {
		return User{}, transport.Generic(err)
	}

	if resp == nil {
		return User{}, transport.Generic(errors.New("empty response"))
	}

	if resp.Status != http.StatusOK {
		return User{}, transport.StatusError(resp)
	}

	token := resp.Get("data.token").String()
	if token == "" {
		return User{}, transport.Generic(errors.New("login response has no token"))
	}

	var user User

	if raw := resp.Get("data.user"); raw.IsObject() {
		if err := user.decode(raw.Raw); err != nil {
			return User{}, transport.Generic(err)
		}
	}

	if err := s.state.Save(ctx, user, token); err != nil {
		return User{}, transport.Generic(err)
	}

	return user, nil
}

// Logout ends the session on the server and forgets it locally. The local
// session is cleared even when the server call fails.
func (s *Service) Logout(ctx context.Context) error {
	if s.state.Token() != "" {
		if _, err := s.invoker.Invoke(ctx, http.MethodPost, "/auth/logout", nil); err != nil {
			s.logger.Warn("server logout failed", "error", err)
		}
	}

	if err := s.state.Clear(ctx); err != nil {
		notify.ReportError(s.notifier, err)
		return err
	}

	return nil
}

// SelectEnterprise puts an enterprise in view and hands it to the enterprise
// store, which mirrors its headquarters flag and linked counter.
func (s *Service) SelectEnterprise(ctx context.Context, e enterprise.Enterprise) error {
	if err := s.state.SetEnterpriseView(ctx, e.ID.String()); err != nil {
		notify.ReportError(s.notifier, err)
		return err
	}

	s.view.SetView(e)

	return nil
}
