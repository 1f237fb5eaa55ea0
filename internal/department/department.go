package department

import (
	"context"
	"sync/atomic"

	"github.com/orgdesk/admin/internal/hierarchy"
	"github.com/orgdesk/admin/internal/record"
	"github.com/orgdesk/admin/internal/store"
)

// Department is an organizational unit. Departments nest through ParentID.
type Department struct {
	ID        record.ID `json:"id"`
	Name      string    `json:"name"`
	ParentID  record.ID `json:"parent_id"`
	ManagerID record.ID `json:"manager_id,omitempty"`
}

type CreateParams struct {
	Name      string    `json:"name"`
	ParentID  record.ID `json:"parent_id"`
	ManagerID record.ID `json:"manager_id,omitempty"`
}

var Endpoint = store.Endpoint[Department]{
	Kind: "department",
	Path: "/departments",
	ID:   func(d Department) record.ID { return d.ID },
}

var treeKeys = hierarchy.Keys[Department]{
	ID:     func(d Department) record.ID { return d.ID },
	Parent: func(d Department) record.ID { return d.ParentID },
	Label:  func(d Department) string { return d.Name },
}

type Store struct {
	*store.Store[Department]

	tree atomic.Pointer[[]*hierarchy.Node]
}

func NewStore(deps store.Deps) *Store {
	s := &Store{}
	s.Store = store.New(deps, Endpoint, func(items []Department) {
		tree := hierarchy.Build(items, treeKeys)
		s.tree.Store(&tree)
	})

	return s
}

// Tree is the department forest. The nodes are shared and must not be
// modified.
func (s *Store) Tree() []*hierarchy.Node {
	return *s.tree.Load()
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
