package subscription

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/orgdesk/admin/internal/record"
	"github.com/orgdesk/admin/internal/store"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusPending  Status = "pending"
	StatusCanceled Status = "canceled"
	StatusExpired  Status = "expired"
)

// Subscription is the enterprise's plan with the platform.
type Subscription struct {
	ID        record.ID       `json:"id"`
	Plan      string          `json:"plan"`
	Status    Status          `json:"status"`
	Price     decimal.Decimal `json:"price"`
	StartedAt string          `json:"started_at"`
	ExpiresAt string          `json:"expires_at,omitempty"`
}

type CreateParams struct {
	Plan string `json:"plan"`
}

var Endpoint = store.Endpoint[Subscription]{
	Kind: "subscription",
	Path: "/subscriptions",
	ID:   func(s Subscription) record.ID { return s.ID },
}

type Store struct {
	*store.Store[Subscription]

	active atomic.Pointer[Subscription]
}

func NewStore(deps store.Deps) *Store {
	s := &Store{}
	s.Store = store.New(deps, Endpoint, func(items []Subscription) {
		s.active.Store(nil)

		for _, sub := range items {
			if sub.Status == StatusActive {
				s.active.Store(&sub)
				return
			}
		}
	})

	return s
}

// Active returns the first active subscription in server order.
func (s *Store) Active() (Subscription, bool) {
	sub := s.active.Load()
	if sub == nil {
		return Subscription{}, false
	}

	return *sub, true
}

func (s *Store) Load(ctx context.Context) error {
	return s.Store.Load(ctx, nil)
}

func (s *Store) Create(ctx context.Context, params CreateParams) error {
	return s.Store.Create(ctx, params)
}

// Cancel ends a subscription. The server answers with the updated list.
func (s *Store) Cancel(ctx context.Context, id record.ID) error {
	_, err := s.Do(ctx, store.Call{
		Op:       "cancel",
		Method:   http.MethodPost,
		Path:     s.Path(id, "cancel"),
		Expect:   []int{http.StatusOK},
		Sync:     store.SyncReplaceOrFetch,
		Announce: true,
	})

	return err
}
