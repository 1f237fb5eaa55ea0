// Package bus holds the state that is shared across stores: the global
// unread counter and the enterprise data-completeness flag.
//
// Both values have exactly one setter. Stores never increment or decrement
// the counter; they overwrite it with what the server reported. The writes
// between stores themselves are not routed here: they go through the typed
// sinks each receiving store exposes (see enterprise.LinkageSink and
// enterprise.ViewSink), and the full list of those relationships is
//
//   - counter.Store.Link / Unlink   -> enterprise.Store.SetCounterLinkage
//   - session.Service.SelectEnterprise -> enterprise.Store.SetView
//   - any response carrying unread_count -> Bus.SetUnread
//   - any response carrying data_complete -> Bus.SetDataComplete
package bus

import (
	"sync"
)

// Signals is what a store forwards response-level counters to.
type Signals interface {
	SetUnread(n int)
	SetDataComplete(complete bool)
}

// State is a snapshot of the bus.
type State struct {
	Unread       int  `json:"unread"`
	DataComplete bool `json:"data_complete"`
}

type Bus struct {
	mu          sync.RWMutex
	state       State
	subscribers []chan State
}

func New() *Bus {
	return &Bus{state: State{DataComplete: true}}
}

// SetUnread overwrites the unread counter.
func (b *Bus) SetUnread(n int) {
	b.update(func(s *State) { s.Unread = max(n, 0) })
}

// SetDataComplete overwrites the data-completeness flag.
func (b *Bus) SetDataComplete(complete bool) {
	b.update(func(s *State) { s.DataComplete = complete })
}

func (b *Bus) Unread() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.state.Unread
}

func (b *Bus) DataComplete() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.state.DataComplete
}

func (b *Bus) Snapshot() State {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.state
}

// Subscribe returns a channel that receives the state after every change.
// A slow reader only ever sees the latest state; intermediate ones are
// dropped.
func (b *Bus) Subscribe() <-chan State {
	ch := make(chan State, 1)

	b.mu.Lock()
	b.subscribers = append(b.subscribers, ch)
	b.mu.Unlock()

	return ch
}

func (b *Bus) update(fn func(*State)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	prev := b.state
	fn(&b.state)

	if prev == b.state {
		return
	}

	for _, ch := range b.subscribers {
		select {
		case <-ch:
		default:
		}

		ch <- b.state
	}
}
