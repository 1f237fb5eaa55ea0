// Package counter manages the accountants ("counters") an enterprise can
// link to. Linking and unlinking mirror the result into the enterprise
// store so it does not have to re-fetch.
package counter

import (
	"context"
	"net/http"

	"github.com/orgdesk/admin/internal/enterprise"
	"github.com/orgdesk/admin/internal/record"
	"github.com/orgdesk/admin/internal/store"
)

// Counter is an accounting office.
type Counter struct {
	ID       record.ID   `json:"id"`
	Name     string      `json:"name"`
	Document string      `json:"document,omitempty"`
	Email    string      `json:"email,omitempty"`
	Phone    string      `json:"phone,omitempty"`
	Linked   record.Flag `json:"linked"`
}

var Endpoint = store.Endpoint[Counter]{
	Kind: "counter",
	Path: "/counters",
	ID:   func(c Counter) record.ID { return c.ID },
}

type Store struct {
	*store.Store[Counter]

	linkage enterprise.LinkageSink
}

func NewStore(deps store.Deps, linkage enterprise.LinkageSink) *Store {
	return &Store{
		Store:   store.New(deps, Endpoint, nil),
		linkage: linkage,
	}
}

func (s *Store) Load(ctx context.Context) error {
	return s.Store.Load(ctx, nil)
}

// Link links the counter to the enterprise in view.
func (s *Store) Link(ctx context.Context, id record.ID) error {
	_, err := s.Do(ctx, store.Call{
		Op:       "link",
		Method:   http.MethodPost,
		Path:     s.Path(id, "link"),
		Expect:   []int{http.StatusOK, http.StatusCreated},
		Sync:     store.SyncReplaceOrFetch,
		Announce: true,
	})
	if err != nil {
		return err
	}

	s.linkage.SetCounterLinkage(id)

	return nil
}

// Unlink removes the counter from the enterprise in view and clears the
// enterprise's linkage.
func (s *Store) Unlink(ctx context.Context, id record.ID) error {
	_, err := s.Do(ctx, store.Call{
		Op:       "unlink",
		Method:   http.MethodDelete,
		Path:     s.Path(id, "link"),
		Expect:   []int{http.StatusOK, http.StatusNoContent},
		Sync:     store.SyncReplaceOrFetch,
		Announce: true,
	})
	if err != nil {
		return err
	}

	s.linkage.SetCounterLinkage("")

	return nil
}
