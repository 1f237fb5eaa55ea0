package report

import (
	"context"
	"net/url"
	"slices"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/orgdesk/admin/internal/chrono"
	"github.com/orgdesk/admin/internal/record"
	"github.com/orgdesk/admin/internal/store"
)

// Monthly is the income and expense summary of one "M/YYYY" period.
type Monthly struct {
	Period  string          `json:"period"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Balance is income minus expense.
func (m Monthly) Balance() decimal.Decimal {
	return m.Income.Sub(m.Expense)
}

// Endpoint keys reports by their period; the backend sends no id.
var Endpoint = store.Endpoint[Monthly]{
	Kind: "report",
	Path: "/reports/monthly",
	ID:   func(m Monthly) record.ID { return record.ID(m.Period) },
}

type Store struct {
	*store.Store[Monthly]

	ordered atomic.Pointer[[]Monthly]
}

func NewStore(deps store.Deps) *Store {
	s := &Store{}
	s.Store = store.New(deps, Endpoint, func(items []Monthly) {
		chrono.SortPeriodsAscending(items, func(m Monthly) string { return m.Period })
		s.ordered.Store(&items)
	})

	return s
}

// Ordered returns the reports oldest period first.
func (s *Store) Ordered() []Monthly {
	return slices.Clone(*s.ordered.Load())
}

// Load fetches the monthly summaries, for one account when accountID is set.
func (s *Store) Load(ctx context.Context, accountID record.ID) error {
	params := url.Values{}
	if !accountID.IsZero() {
		params.Set("account_id", accountID.String())
	}

	return s.Store.Load(ctx, params)
}
