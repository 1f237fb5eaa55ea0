package account

import (
	"context"
	"net/url"
	"slices"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/orgdesk/admin/internal/options"
	"github.com/orgdesk/admin/internal/record"
	"github.com/orgdesk/admin/internal/store"
)

// Endpoint is where accounts live on the backend.
var Endpoint = store.Endpoint[Account]{
	Kind: "account",
	Path: "/accounts",
	ID:   func(a Account) record.ID { return a.ID },
}

type views struct {
	options []options.Option
	total   decimal.Decimal
}

type Store struct {
	*store.Store[Account]

	projector *options.Projector
	views     atomic.Pointer[views]
}

func NewStore(deps store.Deps, projector *options.Projector) *Store {
	s := &Store{projector: projector}
	s.Store = store.New(deps, Endpoint, s.rebuild)

	return s
}

func (s *Store) rebuild(items []Account) {
	total := decimal.Zero
	for _, a := range items {
		total = total.Add(a.Balance)
	}

	s.views.Store(&views{
		options: options.Project(s.projector, items, nil, Account.Label, func(a Account) record.ID { return a.ID }),
		total:   total,
	})
}

// Options is the account selection list, ordered by label.
func (s *Store) Options() []options.Option {
	return slices.Clone(s.views.Load().options)
}

// TotalBalance sums the balance of every account in the collection.
func (s *Store) TotalBalance() decimal.Decimal {
	return s.views.Load().total
}

func (s *Store) Load(ctx context.Context) error {
	return s.Store.Load(ctx, url.Values{})
}

func (s *Store) Create(ctx context.Context, params CreateParams) error {
	return s.Store.Create(ctx, params)
}

func (s *Store) Update(ctx context.Context, id record.ID, params CreateParams) error {
	return s.Store.Update(ctx, id, params)
}
