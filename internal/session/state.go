package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// State is the in-memory copy of the persisted session. It is what the
// transport reads credentials from.
type State struct {
	repo Repository

	mu    sync.RWMutex
	user  *User
	token string
	view  string
}

func NewState(repo Repository) *State {
	return &State{repo: repo}
}

// Restore reads the persisted session. It returns ErrNoSession when there is
// no token; the other values are restored regardless.
func (s *State) Restore(ctx context.Context) error {
	token, _, err := s.repo.Get(ctx, KeyToken)
	if err != nil {
		return fmt.Errorf("restoring token: %w", err)
	}

	view, _, err := s.repo.Get(ctx, KeyEnterpriseView)
	if err != nil {
		return fmt.Errorf("restoring enterprise view: %w", err)
	}

	raw, ok, err := s.repo.Get(ctx, KeyUser)
	if err != nil {
		return fmt.Errorf("restoring user: %w", err)
	}

	var user *User

	if ok && raw != "" {
		user = &User{}
		if err := user.decode(raw); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.token, s.view, s.user = token, view, user
	s.mu.Unlock()

	if token == "" {
		return ErrNoSession
	}

	return nil
}

// Save persists the user and token of a new session.
func (s *State) Save(ctx context.Context, user User, token string) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}

	if err := s.repo.Put(ctx, KeyUser, string(raw)); err != nil {
		return fmt.Errorf("saving user: %w", err)
	}

	if err := s.repo.Put(ctx, KeyToken, token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}

	s.mu.Lock()
	s.user, s.token = &user, token
	s.mu.Unlock()

	return nil
}

// SetEnterpriseView persists the enterprise in view.
func (s *State) SetEnterpriseView(ctx context.Context, view string) error {
	if err := s.repo.Put(ctx, KeyEnterpriseView, view); err != nil {
		return fmt.Errorf("saving enterprise view: %w", err)
	}

	s.mu.Lock()
	s.view = view
	s.mu.Unlock()

	return nil
}

// Clear forgets the session, in memory and on disk.
func (s *State) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.user, s.token, s.view = nil, "", ""
	s.mu.Unlock()

	if err := s.repo.Delete(ctx, KeyUser, KeyToken, KeyEnterpriseView); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	return nil
}

func (s *State) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

func (s *State) EnterpriseView() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.view
}

// User returns the signed-in user.
func (s *State) User() (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil || s.token == "" {
		return User{}, ErrNoSession
	}

	return *s.user, nil
}

// Expired reports whether the token carries an expiry that has passed.
// Opaque tokens never expire client-side; the server decides.
func (s *State) Expired(now time.Time) bool {
	token := s.Token()
	if token == "" {
		return true
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return !now.Before(exp.Time)
}
