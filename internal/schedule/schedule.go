package schedule

import (
	"context"
	"slices"
	"sync/atomic"

	"github.com/orgdesk/admin/internal/chrono"
	"github.com/orgdesk/admin/internal/record"
	"github.com/orgdesk/admin/internal/store"
)

// Status is the lifecycle state of a scheduled delivery.
type Status string

const (
	StatusPending   Status = "pending"
	StatusDelivered Status = "delivered"
	StatusCanceled  Status = "canceled"
)

// Schedule is a delivery booked for a member.
type Schedule struct {
	ID          record.ID `json:"id"`
	Title       string    `json:"title"`
	MemberID    record.ID `json:"member_id"`
	ScheduledAt string    `json:"scheduled_at"`
	Status      Status    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
}

type CreateParams struct {
	Title       string    `json:"title"`
	MemberID    record.ID `json:"member_id"`
	ScheduledAt string    `json:"scheduled_at"`
	Notes       string    `json:"notes,omitempty"`
}

var Endpoint = store.Endpoint[Schedule]{
	Kind: "schedule",
	Path: "/schedules",
	ID:   func(s Schedule) record.ID { return s.ID },
}

type Store struct {
	*store.Store[Schedule]

	newest atomic.Pointer[[]Schedule]
}

func NewStore(deps store.Deps) *Store {
	s := &Store{}
	s.Store = store.New(deps, Endpoint, func(items []Schedule) {
		chrono.SortNewestFirst(items, func(sc Schedule) string { return sc.ScheduledAt })
		s.newest.Store(&items)
	})

	return s
}

// Newest returns the schedules, latest first.
func (s *Store) Newest() []Schedule {
	return slices.Clone(*s.newest.Load())
}

// Pending returns the schedules still to be delivered, latest first.
func (s *Store) Pending() []Schedule {
	return slices.DeleteFunc(s.Newest(), func(sc Schedule) bool { return sc.Status != StatusPending })
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
