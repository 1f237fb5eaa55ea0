package category

import (
	"context"
	"slices"
	"sync/atomic"

	"github.com/orgdesk/admin/internal/hierarchy"
	"github.com/orgdesk/admin/internal/options"
	"github.com/orgdesk/admin/internal/record"
	"github.com/orgdesk/admin/internal/store"
)

var Endpoint = store.Endpoint[Category]{
	Kind: "category",
	Path: "/categories",
	ID:   func(c Category) record.ID { return c.ID },
}

var treeKeys = hierarchy.Keys[Category]{
	ID:     func(c Category) record.ID { return c.ID },
	Parent: func(c Category) record.ID { return c.ParentID },
	Label:  func(c Category) string { return c.Name },
}

type views struct {
	options []options.Option
	tree    []*hierarchy.Node
}

type Store struct {
	*store.Store[Category]

	projector *options.Projector
	views     atomic.Pointer[views]
}

func NewStore(deps store.Deps, projector *options.Projector) *Store {
	s := &Store{projector: projector}
	s.Store = store.New(deps, Endpoint, s.rebuild)

	return s
}

func (s *Store) rebuild(items []Category) {
	s.views.Store(&views{
		options: options.Project(s.projector, items,
			func(c Category) bool { return bool(c.Active) },
			func(c Category) string { return c.Name },
			func(c Category) record.ID { return c.ID },
		),
		tree: hierarchy.Build(items, treeKeys),
	})
}

// Options lists the active categories, ordered by name.
func (s *Store) Options() []options.Option {
	return slices.Clone(s.views.Load().options)
}

// Tree is the category forest. Inactive categories are kept so that their
// active children stay reachable. The nodes are shared and must not be
// modified.
func (s *Store) Tree() []*hierarchy.Node {
	return s.views.Load().tree
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
