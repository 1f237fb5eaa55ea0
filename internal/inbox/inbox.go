// Package inbox is the user's notification inbox. Every successful read or
// mark-read overwrites the global unread counter: with the server's count
// when the response carries one, with the local count otherwise.
package inbox

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/orgdesk/admin/internal/bus"
	"github.com/orgdesk/admin/internal/record"
	"github.com/orgdesk/admin/internal/store"
	"github.com/orgdesk/admin/internal/transport"
)

const unreadKey = "unread_count"

// Message is one inbox entry.
type Message struct {
	ID        record.ID   `json:"id"`
	Title     string      `json:"title"`
	Body      string      `json:"body,omitempty"`
	Read      record.Flag `json:"read"`
	CreatedAt string      `json:"created_at"`
}

var Endpoint = store.Endpoint[Message]{
	Kind: "inbox",
	Path: "/notifications",
	ID:   func(m Message) record.ID { return m.ID },
}

type Store struct {
	*store.Store[Message]

	signals bus.Signals
	unread  atomic.Int64
}

func NewStore(deps store.Deps) *Store {
	s := &Store{signals: deps.Signals}
	s.Store = store.New(deps, Endpoint, func(items []Message) {
		var n int64

		for _, m := range items {
			if !m.Read {
				n++
			}
		}

		s.unread.Store(n)
	})

	return s
}

// Unread is the number of unread messages in the collection.
func (s *Store) Unread() int {
	return int(s.unread.Load())
}

func (s *Store) Load(ctx context.Context) error {
	return s.do(ctx, store.Call{
		Op:     "load",
		Method: http.MethodGet,
		Path:   s.Path(""),
		Expect: []int{http.StatusOK},
		Sync:   store.SyncReplace,
	})
}

func (s *Store) MarkRead(ctx context.Context, id record.ID) error {
	return s.do(ctx, store.Call{
		Op:     "mark_read",
		Method: http.MethodPut,
		Path:   s.Path(id, "read"),
		Expect: []int{http.StatusOK, http.StatusNoContent},
		Sync:   store.SyncReplaceOrFetch,
	})
}

func (s *Store) MarkAllRead(ctx context.Context) error {
	return s.do(ctx, store.Call{
		Op:       "mark_all_read",
		Method:   http.MethodPut,
		Path:     s.Path("", "read-all"),
		Expect:   []int{http.StatusOK, http.StatusNoContent},
		Sync:     store.SyncReplaceOrFetch,
		Announce: true,
	})
}

func (s *Store) do(ctx context.Context, call store.Call) error {
	resp, err := s.Do(ctx, call)
	if err != nil {
		return err
	}

	if s.signals != nil && !reportsUnread(resp) {
		s.signals.SetUnread(s.Unread())
	}

	return nil
}

func reportsUnread(resp *transport.Response) bool {
	return resp.Get(unreadKey).Exists()
}
