package movement

import (
	"context"
	"net/http"
	"slices"
	"sync/atomic"

	"github.com/orgdesk/admin/internal/chrono"
	"github.com/orgdesk/admin/internal/record"
	"github.com/orgdesk/admin/internal/store"
)

var Endpoint = store.Endpoint[Movement]{
	Kind: "movement",
	Path: "/movements",
	ID:   func(m Movement) record.ID { return m.ID },
}

type views struct {
	newest []Movement
	totals Totals
}

type Store struct {
	*store.Store[Movement]

	views atomic.Pointer[views]
}

func NewStore(deps store.Deps) *Store {
	s := &Store{}
	s.Store = store.New(deps, Endpoint, s.rebuild)

	return s
}

func (s *Store) rebuild(items []Movement) {
	chrono.SortNewestFirst(items, func(m Movement) string { return m.Date })

	s.views.Store(&views{newest: items, totals: computeTotals(items)})
}

// Newest returns the movements, most recent first. Movements with an
// unreadable date keep their server order relative to each other.
func (s *Store) Newest() []Movement {
	return slices.Clone(s.views.Load().newest)
}

func (s *Store) Totals() Totals {
	return s.views.Load().totals
}

func (s *Store) Load(ctx context.Context, filter ListFilter) error {
	return s.Store.Load(ctx, filter.Values())
}

func (s *Store) Create(ctx context.Context, params CreateParams) error {
	return s.Store.Create(ctx, params)
}

func (s *Store) Update(ctx context.Context, id record.ID, params CreateParams) error {
	return s.Store.Update(ctx, id, params)
}

type importRequest struct {
	AccountID record.ID      `json:"account_id"`
	Movements []CreateParams `json:"movements"`
}

// Import posts a batch of parsed statement lines to the account. Nothing is
// sent for an empty batch.
func (s *Store) Import(ctx context.Context, accountID record.ID, params []CreateParams) error {
	if len(params) == 0 {
		return nil
	}

	_, err := s.Do(ctx, store.Call{
		Op:       "import",
		Method:   http.MethodPost,
		Path:     s.Path("", "import"),
		Body:     importRequest{AccountID: accountID, Movements: params},
		Expect:   []int{http.StatusCreated},
		Sync:     store.SyncReplaceOrFetch,
		Announce: true,
	})

	return err
}
