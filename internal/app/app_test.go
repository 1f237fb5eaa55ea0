package app_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/orgdesk/admin/internal/app"
	"github.com/orgdesk/admin/internal/notify"
	"github.com/orgdesk/admin/internal/session"
	"github.com/orgdesk/admin/internal/transport"
)

func newStores(t *testing.T, failing string) (*app.Stores, *notify.Buffer) {
	t.Helper()

	ctrl := gomock.NewController(t)
	inv := transport.NewMockInvoker(ctrl)
	notes := &notify.Buffer{}

	inv.EXPECT().
		Invoke(gomock.Any(), http.MethodGet, gomock.Any(), nil).
		DoAndReturn(func(_ context.Context, _, path string, _ any) (*transport.Response, error) {
			if failing != "" && strings.HasPrefix(path, failing) {
				return nil, &transport.Error{Kind: transport.KindTransport, Status: http.StatusInternalServerError}
			}

			body := `{"data":[{"id":1,"name":"one","period":"1/2024","headquarters":1}]}`
			if path == "/notifications" {
				body = `{"unread_count":5,"data_complete":false,"data":[]}`
			}

			return &transport.Response{Status: http.StatusOK, Data: json.RawMessage(body)}, nil
		}).
		AnyTimes()

	stores := app.New(app.Options{
		Invoker:  inv,
		Notifier: notes,
		Session:  session.NewState(session.NewMockRepository(ctrl)),
		Locale:   "pt-BR",
	})

	return stores, notes
}

func TestStores_Refresh(t *testing.T) {
	stores, notes := newStores(t, "")

	require.NoError(t, stores.Refresh(context.Background()))

	assert.Equal(t, 1, stores.Accounts.Len())
	assert.Equal(t, 1, stores.Enterprises.Len())
	assert.Len(t, stores.Reports.Ordered(), 1)
	assert.Equal(t, 5, stores.Bus.Unread())
	assert.False(t, stores.Bus.DataComplete())
	assert.Zero(t, notes.Len())

	stores.Reset()

	assert.Zero(t, stores.Accounts.Len())
	assert.Zero(t, stores.Bus.Unread())
	assert.True(t, stores.Bus.DataComplete())
}

func TestStores_RefreshPartialFailure(t *testing.T) {
	stores, notes := newStores(t, "/movements")

	err := stores.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 11")

	assert.Equal(t, 1, stores.Accounts.Len())
	assert.Zero(t, stores.Movements.Len())
	assert.Equal(t, []notify.Notification{{Kind: notify.KindNegative, Message: "Error"}}, notes.Drain())
}

func TestStores_SelectEnterpriseSwitchesLinkage(t *testing.T) {
	ctrl := gomock.NewController(t)
	inv := transport.NewMockInvoker(ctrl)
	repo := session.NewMockRepository(ctrl)

	stores := app.New(app.Options{
		Invoker:  inv,
		Notifier: &notify.Buffer{},
		Session:  session.NewState(repo),
	})

	inv.EXPECT().
		Invoke(gomock.Any(), http.MethodGet, "/enterprises", nil).
		Return(&transport.Response{Status: http.StatusOK, Data: json.RawMessage(`{"data":[
			{"id":1,"name":"Head Office","headquarters":1,"counter_id":5},
			{"id":2,"name":"Branch","headquarters":0,"counter_id":null}
		]}`)}, nil)
	inv.EXPECT().
		Invoke(gomock.Any(), http.MethodPost, "/counters/5/link", nil).
		Return(&transport.Response{Status: http.StatusOK, Data: json.RawMessage(`{"data":[{"id":5,"linked":1}]}`)}, nil)
	repo.EXPECT().Put(gomock.Any(), session.KeyEnterpriseView, gomock.Any()).Return(nil).Times(2)

	ctx := context.Background()
	require.NoError(t, stores.Enterprises.Load(ctx))

	ordered := stores.Enterprises.Ordered()
	require.Len(t, ordered, 2)

	require.NoError(t, stores.Session.SelectEnterprise(ctx, ordered[0]))

	id, linked := stores.Enterprises.CounterLinkage()
	assert.True(t, linked)
	assert.Equal(t, "5", id.String())

	require.NoError(t, stores.Counters.Link(ctx, "5"))
	require.NoError(t, stores.Session.SelectEnterprise(ctx, ordered[1]))

	_, linked = stores.Enterprises.CounterLinkage()
	assert.False(t, linked)
	assert.False(t, stores.Enterprises.Headquarters())

	stores.Reset()

	_, linked = stores.Enterprises.CounterLinkage()
	assert.False(t, linked)
}
