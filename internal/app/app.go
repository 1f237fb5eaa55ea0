// Package app builds every store once and hands the set to the consumers.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/orgdesk/admin/internal/account"
	"github.com/orgdesk/admin/internal/bus"
	"github.com/orgdesk/admin/internal/category"
	"github.com/orgdesk/admin/internal/counter"
	"github.com/orgdesk/admin/internal/department"
	"github.com/orgdesk/admin/internal/enterprise"
	"github.com/orgdesk/admin/internal/importer"
	"github.com/orgdesk/admin/internal/inbox"
	"github.com/orgdesk/admin/internal/member"
	"github.com/orgdesk/admin/internal/movement"
	"github.com/orgdesk/admin/internal/notify"
	"github.com/orgdesk/admin/internal/options"
	"github.com/orgdesk/admin/internal/record"
	"github.com/orgdesk/admin/internal/report"
	"github.com/orgdesk/admin/internal/schedule"
	"github.com/orgdesk/admin/internal/session"
	"github.com/orgdesk/admin/internal/store"
	"github.com/orgdesk/admin/internal/subscription"
	"github.com/orgdesk/admin/internal/transport"
)

type Options struct {
	Invoker  transport.Invoker
	Notifier notify.Notifier
	Recorder store.Recorder
	Logger   *slog.Logger
	Session  *session.State
	Locale   string
	Fenced   bool
}

type Stores struct {
	Bus      *bus.Bus
	Session  *session.Service
	Importer *importer.Service

	Accounts      *account.Store
	Categories    *category.Store
	Movements     *movement.Store
	Departments   *department.Store
	Members       *member.Store
	Schedules     *schedule.Store
	Reports       *report.Store
	Subscriptions *subscription.Store
	Inbox         *inbox.Store
	Counters      *counter.Store
	Enterprises   *enterprise.Store

	logger *slog.Logger
}

func New(opts Options) *Stores {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	b := bus.New()

	deps := store.Deps{
		Invoker:  opts.Invoker,
		Notifier: opts.Notifier,
		Signals:  b,
		Recorder: opts.Recorder,
		Logger:   logger,
		Fenced:   opts.Fenced,
	}

	projector := options.NewProjector(opts.Locale)
	enterprises := enterprise.NewStore(deps)
	movements := movement.NewStore(deps)

	if opts.Session != nil {
		if view := opts.Session.EnterpriseView(); view != "" {
			enterprises.SetView(enterprise.Enterprise{ID: record.ID(view)})
		}
	}

	return &Stores{
		Bus:      b,
		Session:  session.NewService(opts.Session, opts.Invoker, enterprises, opts.Notifier),
		Importer: importer.NewService(movements),

		Accounts:      account.NewStore(deps, projector),
		Categories:    category.NewStore(deps, projector),
		Movements:     movements,
		Departments:   department.NewStore(deps),
		Members:       member.NewStore(deps, projector),
		Schedules:     schedule.NewStore(deps),
		Reports:       report.NewStore(deps),
		Subscriptions: subscription.NewStore(deps),
		Inbox:         inbox.NewStore(deps),
		Counters:      counter.NewStore(deps, enterprises),
		Enterprises:   enterprises,

		logger: logger,
	}
}

// Refresh loads every store concurrently. Each store reports its own
// failure; the returned error names how many failed.
func (s *Stores) Refresh(ctx context.Context) error {
	loads := map[string]func(context.Context) error{
		"enterprise":   s.Enterprises.Load,
		"account":      s.Accounts.Load,
		"category":     s.Categories.Load,
		"department":   s.Departments.Load,
		"member":       s.Members.Load,
		"schedule":     s.Schedules.Load,
		"subscription": s.Subscriptions.Load,
		"inbox":        s.Inbox.Load,
		"counter":      s.Counters.Load,
		"movement": func(ctx context.Context) error {
			return s.Movements.Load(ctx, movement.ListFilter{})
		},
		"report": func(ctx context.Context) error {
			return s.Reports.Load(ctx, "")
		},
	}

	failed := make(chan string, len(loads))

	var g errgroup.Group

	for kind, load := range loads {
		g.Go(func() error {
			if err := load(ctx); err != nil {
				failed <- kind
			}

			return nil
		})
	}

	_ = g.Wait()
	close(failed)

	var kinds []string
	for kind := range failed {
		kinds = append(kinds, kind)
	}

	if len(kinds) > 0 {
		s.logger.Warn("refresh incomplete", "failed", kinds)
		return fmt.Errorf("refresh: %d of %d stores failed", len(kinds), len(loads))
	}

	return nil
}

// Reset empties every store, e.g. after logout.
func (s *Stores) Reset() {
	s.Accounts.Reset()
	s.Categories.Reset()
	s.Movements.Reset()
	s.Departments.Reset()
	s.Members.Reset()
	s.Schedules.Reset()
	s.Reports.Reset()
	s.Subscriptions.Reset()
	s.Inbox.Reset()
	s.Counters.Reset()
	s.Enterprises.Reset()
	s.Enterprises.SetView(enterprise.Enterprise{})
	s.Bus.SetUnread(0)
	s.Bus.SetDataComplete(true)
}

// Logout ends the session and forgets all loaded data.
func (s *Stores) Logout(ctx context.Context) error {
	err := s.Session.Logout(ctx)
	s.Reset()

	return err
}
