package account_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/orgdesk/admin/internal/account"
	"github.com/orgdesk/admin/internal/notify"
	"github.com/orgdesk/admin/internal/options"
	"github.com/orgdesk/admin/internal/store"
	"github.com/orgdesk/admin/internal/transport"
)

func TestAccount_Label(t *testing.T) {
	tests := []struct {
		name    string
		account account.Account
		want    string
	}{
		{
			name:    "BothNumbers",
			account: account.Account{Name: "Main", AccountNumber: "12345-6", AgencyNumber: "0001"},
			want:    "Main - Account № 12345-6 / Agency № 0001",
		},
		{
			name:    "MissingAgency",
			account: account.Account{Name: "Main", AccountNumber: "12345-6"},
			want:    "Main",
		},
		{
			name:    "NoNumbers",
			account: account.Account{Name: "Cash"},
			want:    "Cash",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.account.Label())
		})
	}
}

func TestStore_Load(t *testing.T) {
	ctrl := gomock.NewController(t)
	invoker := transport.NewMockInvoker(ctrl)

	s := account.NewStore(store.Deps{Invoker: invoker, Notifier: &notify.Buffer{}}, options.NewProjector("pt-BR"))

	assert.Empty(t, s.Options())
	assert.True(t, s.TotalBalance().IsZero())

	invoker.EXPECT().
		Invoke(gomock.Any(), http.MethodGet, "/accounts", nil).
		Return(&transport.Response{Status: http.StatusOK, Data: json.RawMessage(`{"data":[
			{"id":1,"name":"Savings","account_number":"9","agency_number":"2","balance":"100.10","active":1},
			{"id":2,"name":"Cash","balance":"0.20","active":true}
		]}`)}, nil)

	require.NoError(t, s.Load(context.Background()))

	assert.Equal(t, []options.Option{
		{Label: "Cash", Value: "2"},
		{Label: "Savings - Account № 9 / Agency № 2", Value: "1"},
	}, s.Options())
	assert.True(t, decimal.RequireFromString("100.30").Equal(s.TotalBalance()))
}
