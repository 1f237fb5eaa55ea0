// Package session keeps the signed-in user, the API token and the enterprise
// in view. These three values are the only client state that survives a
// restart.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/orgdesk/admin/internal/record"
)

// ErrNoSession is returned when no token has been persisted.
var ErrNoSession = errors.New("no session")

// Persisted keys.
const (
	KeyUser           = "user"
	KeyToken          = "token"
	KeyEnterpriseView = "enterprise_view"
)

// User is the signed-in administrator.
type User struct {
	ID    record.ID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role,omitempty"`
}

//go:generate mockgen -source=session.go -destination=repository_mock.go -package=session
type Repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

func (u *User) decode(raw string) error {
	if err := json.Unmarshal([]byte(raw), u); err != nil {
		return fmt.Errorf("decoding user: %w", err)
	}

	return nil
}
