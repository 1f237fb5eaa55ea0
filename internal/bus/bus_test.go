package bus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orgdesk/admin/internal/bus"
)

func TestBus_Setters(t *testing.T) {
	b := bus.New()

	assert.Zero(t, b.Unread())
	assert.True(t, b.DataComplete())

	b.SetUnread(5)
	b.SetUnread(2)
	b.SetDataComplete(false)

	assert.Equal(t, 2, b.Unread())
	assert.False(t, b.DataComplete())
	assert.Equal(t, bus.State{Unread: 2, DataComplete: false}, b.Snapshot())

	b.SetUnread(-3)
	assert.Zero(t, b.Unread())
}

func TestBus_SubscribeKeepsLatest(t *testing.T) {
	b := bus.New()
	ch := b.Subscribe()

	b.SetUnread(1)
	b.SetUnread(7)

	assert.Equal(t, bus.State{Unread: 7, DataComplete: true}, <-ch)

	b.SetUnread(7)

	select {
	case s := <-ch:
		t.Fatalf("unexpected notification for unchanged state: %+v", s)
	default:
	}
}
