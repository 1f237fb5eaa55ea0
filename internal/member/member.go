package member

import (
	"context"
	"slices"
	"sync/atomic"

	"github.com/orgdesk/admin/internal/options"
	"github.com/orgdesk/admin/internal/record"
	"github.com/orgdesk/admin/internal/store"
)

// Member is a person registered in the organization.
type Member struct {
	ID           record.ID   `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email,omitempty"`
	Phone        string      `json:"phone,omitempty"`
	DepartmentID record.ID   `json:"department_id"`
	BirthDate    string      `json:"birth_date,omitempty"`
	Active       record.Flag `json:"active"`
}

type CreateParams struct {
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	DepartmentID record.ID `json:"department_id"`
	BirthDate    string    `json:"birth_date,omitempty"`
	Active       bool      `json:"active"`
}

var Endpoint = store.Endpoint[Member]{
	Kind: "member",
	Path: "/members",
	ID:   func(m Member) record.ID { return m.ID },
}

type Store struct {
	*store.Store[Member]

	projector *options.Projector
	options   atomic.Pointer[[]options.Option]
}

func NewStore(deps store.Deps, projector *options.Projector) *Store {
	s := &Store{projector: projector}
	s.Store = store.New(deps, Endpoint, func(items []Member) {
		opts := options.Project(s.projector, items, nil,
			func(m Member) string { return m.Name },
			func(m Member) record.ID { return m.ID },
		)
		s.options.Store(&opts)
	})

	return s
}

// Options lists every member by name.
func (s *Store) Options() []options.Option {
	return slices.Clone(*s.options.Load())
}

// InDepartment returns the members assigned to a department.
func (s *Store) InDepartment(id record.ID) []Member {
	return slices.DeleteFunc(s.Items(), func(m Member) bool { return m.DepartmentID != id })
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
