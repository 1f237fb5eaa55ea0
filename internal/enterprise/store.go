package enterprise

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/orgdesk/admin/internal/record"
	"github.com/orgdesk/admin/internal/store"
)

var Endpoint = store.Endpoint[Enterprise]{
	Kind: "enterprise",
	Path: "/enterprises",
	ID:   func(e Enterprise) record.ID { return e.ID },
}

type Store struct {
	*store.Store[Enterprise]

	ordered atomic.Pointer[[]Enterprise]

	mu           sync.RWMutex
	view         record.ID
	linkage      record.ID
	headquarters bool
}

func NewStore(deps store.Deps) *Store {
	s := &Store{}
	s.Store = store.New(deps, Endpoint, func(items []Enterprise) {
		slices.SortStableFunc(items, func(a, b Enterprise) int {
			switch {
			case a.Headquarters == b.Headquarters:
				return 0
			case bool(a.Headquarters):
				return -1
			default:
				return 1
			}
		})
		s.ordered.Store(&items)
		s.refreshView(items)
	})

	return s
}

// Ordered returns the enterprises with the headquarters first and the rest
// in server order.
func (s *Store) Ordered() []Enterprise {
	return slices.Clone(*s.ordered.Load())
}

func (s *Store) Load(ctx context.Context) error {
	return s.Store.Load(ctx, nil)
}

func (s *Store) Create(ctx context.Context, params CreateParams) error {
	return s.Store.Create(ctx, params)
}

func (s *Store) Update(ctx context.Context, id record.ID, params CreateParams) error {
	return s.Store.Update(ctx, id, params)
}

// SetCounterLinkage is written by counter.Store after a link or unlink.
func (s *Store) SetCounterLinkage(id record.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.linkage = id
}

// CounterLinkage is the counter linked to the enterprise in view, if any.
func (s *Store) CounterLinkage() (record.ID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.linkage, !s.linkage.IsZero()
}

// SetView is written by session.Service when the enterprise in view
// changes. The headquarters flag and the linkage follow the enterprise; a
// zero enterprise clears both.
func (s *Store) SetView(e Enterprise) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.view = e.ID
	s.headquarters = bool(e.Headquarters)
	s.linkage = e.CounterID
}

// refreshView re-reads the mirror slots from the loaded record of the
// enterprise in view, when there is one.
func (s *Store) refreshView(items []Enterprise) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view.IsZero() {
		return
	}

	for _, e := range items {
		if e.ID == s.view {
			s.headquarters = bool(e.Headquarters)
			s.linkage = e.CounterID

			return
		}
	}
}

func (s *Store) Headquarters() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.headquarters
}
