// Package store is the engine behind every entity store: one authoritative
// collection per kind, replaced wholesale from server responses, with
// derived views rebuilt in the same step.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"sync"
	"time"

	"github.com/tidwall/gjson"

	"github.com/orgdesk/admin/internal/bus"
	"github.com/orgdesk/admin/internal/notify"
	"github.com/orgdesk/admin/internal/record"
	"github.com/orgdesk/admin/internal/transport"
)

// ErrNotFound is returned by lookups for ids that are not in the collection.
var ErrNotFound = errors.New("record not found")

const (
	defaultListKey = "data"

	unreadKey       = "unread_count"
	dataCompleteKey = "data_complete"
)

// Endpoint describes one kind of record on the backend.
type Endpoint[T any] struct {
	Kind    string
	Path    string
	ListKey string // gjson path of the list in response bodies, "data" when empty
	ID      func(T) record.ID
}

// Recorder observes store operations.
type Recorder interface {
	ObserveOperation(kind, op string, ok bool, d time.Duration)
	SetLoading(kind string, loading bool)
}

// Deps are the collaborators shared by all stores.
type Deps struct {
	Invoker  transport.Invoker
	Notifier notify.Notifier
	Signals  bus.Signals
	Recorder Recorder
	Logger   *slog.Logger

	// Fenced makes stores discard responses to requests older than the
	// last one applied. Off, the last response to arrive wins.
	Fenced bool
}

// Sync says how a successful response affects the collection.
type Sync int

const (
	// SyncNone leaves the collection alone.
	SyncNone Sync = iota
	// SyncReplace requires a list in the response and replaces with it.
	SyncReplace
	// SyncReplaceOrFetch replaces with the response list, or re-fetches
	// when the response carries none.
	SyncReplaceOrFetch
	// SyncReplaceOrRemove replaces with the response list, or removes
	// Call.RemoveID locally when the response carries none.
	SyncReplaceOrRemove
)

// Call is one request a store makes.
type Call struct {
	Op       string
	Method   string
	Path     string
	Query    url.Values
	Body     any
	Expect   []int
	Sync     Sync
	RemoveID record.ID
	// Announce shows the server message as a success notification.
	Announce bool
}

type Store[T any] struct {
	endpoint Endpoint[T]
	invoker  transport.Invoker
	notifier notify.Notifier
	signals  bus.Signals
	recorder Recorder
	logger   *slog.Logger
	fenced   bool
	rebuild  func([]T)

	mu       sync.RWMutex
	items    []T
	query    url.Values
	inflight int
	issued   uint64
	applied  uint64
}

// New builds a store. rebuild, when not nil, is called with a private copy
// of the collection every time it is replaced, while the replacement is
// still exclusive; it is where derived views get recomputed.
func New[T any](deps Deps, endpoint Endpoint[T], rebuild func([]T)) *Store[T] {
	if endpoint.ListKey == "" {
		endpoint.ListKey = defaultListKey
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	notifier := deps.Notifier
	if notifier == nil {
		notifier = notify.LogNotifier{Logger: logger}
	}

	s := &Store[T]{
		endpoint: endpoint,
		invoker:  deps.Invoker,
		notifier: notifier,
		signals:  deps.Signals,
		recorder: deps.Recorder,
		logger:   logger.With("kind", endpoint.Kind),
		fenced:   deps.Fenced,
		rebuild:  rebuild,
		items:    []T{},
	}

	if rebuild != nil {
		rebuild([]T{})
	}

	return s
}

func (s *Store[T]) Kind() string { return s.endpoint.Kind }

// Path returns the endpoint path, or the path of one record when id is set,
// followed by any extra segments.
func (s *Store[T]) Path(id record.ID, segments ...string) string {
	p := s.endpoint.Path
	if !id.IsZero() {
		p += "/" + url.PathEscape(id.String())
	}

	for _, seg := range segments {
		p += "/" + seg
	}

	return p
}

// Items returns a copy of the collection.
func (s *Store[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.items)
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

// Find returns the record with the given id.
func (s *Store[T]) Find(id record.ID) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if s.endpoint.ID(item) == id {
			return item, nil
		}
	}

	var zero T

	return zero, fmt.Errorf("%s %s: %w", s.endpoint.Kind, id, ErrNotFound)
}

// Loading reports whether a request is in flight. It is advisory only.
func (s *Store[T]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.inflight > 0
}

// Reset empties the collection, e.g. after the session ends.
func (s *Store[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.replaceLocked([]T{})
	s.query = nil
	s.applied = s.issued
}

// Load fetches the collection. params, when not empty, go in the query and,
// once a load with them succeeds, are reused by the re-fetch that follows a
// mutation without a list.
func (s *Store[T]) Load(ctx context.Context, params url.Values) error {
	_, err := s.load(ctx, params)
	return err
}

func (s *Store[T]) load(ctx context.Context, params url.Values) (*transport.Response, error) {
	resp, err := s.Do(ctx, Call{
		Op:     "load",
		Method: http.MethodGet,
		Path:   s.Path(""),
		Query:  params,
		Expect: []int{http.StatusOK},
		Sync:   SyncReplace,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.query = params
	s.mu.Unlock()

	return resp, nil
}

// Create posts a new record; the collection becomes the server's list.
func (s *Store[T]) Create(ctx context.Context, payload any) error {
	_, err := s.Do(ctx, Call{
		Op:       "create",
		Method:   http.MethodPost,
		Path:     s.Path(""),
		Body:     payload,
		Expect:   []int{http.StatusCreated},
		Sync:     SyncReplaceOrFetch,
		Announce: true,
	})

	return err
}

// Update replaces the record with the given id.
func (s *Store[T]) Update(ctx context.Context, id record.ID, payload any) error {
	_, err := s.Do(ctx, Call{
		Op:       "update",
		Method:   http.MethodPut,
		Path:     s.Path(id),
		Body:     payload,
		Expect:   []int{http.StatusOK},
		Sync:     SyncReplaceOrFetch,
		Announce: true,
	})

	return err
}

// Delete removes the record with the given id. A list in the response wins
// over removing the record locally.
func (s *Store[T]) Delete(ctx context.Context, id record.ID) error {
	_, err := s.Do(ctx, Call{
		Op:       "delete",
		Method:   http.MethodDelete,
		Path:     s.Path(id),
		Expect:   []int{http.StatusOK, http.StatusNoContent},
		Sync:     SyncReplaceOrRemove,
		RemoveID: id,
		Announce: true,
	})

	return err
}

// Do runs a call through the store: the loading flag is held for its
// duration, a failure is reported and leaves the collection untouched, and a
// success updates the collection according to call.Sync. The returned error
// has already been shown to the user. When a re-fetch followed, the returned
// response is the re-fetch's.
func (s *Store[T]) Do(ctx context.Context, call Call) (*transport.Response, error) {
	seq := s.acquire()
	defer s.release()

	start := time.Now()

	resp, fetch, err := s.run(ctx, seq, call)
	s.observe(call.Op, err == nil, time.Since(start))

	if err != nil {
		s.logger.Warn("store operation failed", "op", call.Op, "error", err)
		notify.ReportError(s.notifier, err)

		return nil, err
	}

	s.logger.Debug("store operation", "op", call.Op, "status", resp.Status)
	s.forward(resp)

	if call.Announce {
		notify.ReportSuccess(s.notifier, resp.Message())
	}

	if fetch {
		s.mu.RLock()
		query := s.query
		s.mu.RUnlock()

		if refetched, err := s.load(ctx, query); err == nil {
			resp = refetched
		}
	}

	return resp, nil
}

func (s *Store[T]) run(ctx context.Context, seq uint64, call Call) (*transport.Response, bool, error) {
	path := call.Path
	if len(call.Query) > 0 {
		path += "?" + call.Query.Encode()
	}

	resp, err := s.invoker.Invoke(ctx, call.Method, path, call.Body)
	if err != nil {
		return nil, false, transport.Generic(err)
	}

	if resp == nil {
		return nil, false, transport.Generic(errors.New("empty response"))
	}

	if len(call.Expect) > 0 && !slices.Contains(call.Expect, resp.Status) {
		return nil, false, transport.StatusError(resp)
	}

	if call.Sync == SyncNone {
		return resp, false, nil
	}

	items, found, err := s.decode(resp)
	if err != nil {
		return nil, false, transport.Generic(err)
	}

	switch {
	case found:
		s.apply(seq, items)
	case call.Sync == SyncReplace:
		return nil, false, transport.Generic(fmt.Errorf("%s response has no %q list", s.endpoint.Kind, s.endpoint.ListKey))
	case call.Sync == SyncReplaceOrRemove:
		s.remove(call.RemoveID)
	case call.Sync == SyncReplaceOrFetch:
		return resp, true, nil
	}

	return resp, false, nil
}

func (s *Store[T]) decode(resp *transport.Response) ([]T, bool, error) {
	res := resp.Get(s.endpoint.ListKey)
	if !res.Exists() || res.Type == gjson.Null {
		return nil, false, nil
	}

	if !res.IsArray() {
		return nil, false, fmt.Errorf("decoding %s: %q is not a list", s.endpoint.Kind, s.endpoint.ListKey)
	}

	items := []T{}
	if err := json.Unmarshal([]byte(res.Raw), &items); err != nil {
		return nil, false, fmt.Errorf("decoding %s: %w", s.endpoint.Kind, err)
	}

	return items, true, nil
}

func (s *Store[T]) apply(seq uint64, items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fenced && seq <= s.applied {
		s.logger.Debug("discarding stale response", "seq", seq, "applied", s.applied)
		return
	}

	s.applied = seq
	s.replaceLocked(items)
}

func (s *Store[T]) remove(id record.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]T, 0, len(s.items))

	for _, item := range s.items {
		if s.endpoint.ID(item) != id {
			kept = append(kept, item)
		}
	}

	s.replaceLocked(kept)
}

func (s *Store[T]) replaceLocked(items []T) {
	s.items = items

	if s.rebuild != nil {
		s.rebuild(slices.Clone(items))
	}
}

func (s *Store[T]) forward(resp *transport.Response) {
	if s.signals == nil {
		return
	}

	if n := resp.Get(unreadKey); n.Exists() && n.Type == gjson.Number {
		s.signals.SetUnread(int(n.Int()))
	}

	if c := resp.Get(dataCompleteKey); c.Exists() && c.Type != gjson.Null {
		s.signals.SetDataComplete(c.Bool())
	}
}

func (s *Store[T]) acquire() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inflight++
	s.issued++

	if s.recorder != nil {
		s.recorder.SetLoading(s.endpoint.Kind, true)
	}

	return s.issued
}

func (s *Store[T]) release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inflight--

	if s.recorder != nil {
		s.recorder.SetLoading(s.endpoint.Kind, s.inflight > 0)
	}
}

func (s *Store[T]) observe(op string, ok bool, d time.Duration) {
	if s.recorder != nil {
		s.recorder.ObserveOperation(s.endpoint.Kind, op, ok, d)
	}
}
