package movement_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/orgdesk/admin/internal/movement"
	"github.com/orgdesk/admin/internal/notify"
	"github.com/orgdesk/admin/internal/record"
	"github.com/orgdesk/admin/internal/store"
	"github.com/orgdesk/admin/internal/transport"
)

func TestListFilter_Values(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter movement.ListFilter
		want   string
	}{
		{
			name: "Empty",
			want: "",
		},
		{
			name: "Full",
			filter: movement.ListFilter{
				StartDate:  &start,
				EndDate:    &end,
				AccountID:  "3",
				CategoryID: "7",
				Type:       movement.TypeExpense,
				Paid:       new(false),
			},
			want: "account_id=3&category_id=7&end_date=2024-01-31&paid=0&start_date=2024-01-01&type=expense",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Values().Encode())
		})
	}
}

func TestStore_LoadViews(t *testing.T) {
	ctrl := gomock.NewController(t)
	invoker := transport.NewMockInvoker(ctrl)

	s := movement.NewStore(store.Deps{Invoker: invoker, Notifier: &notify.Buffer{}})

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	invoker.EXPECT().
		Invoke(gomock.Any(), http.MethodGet, "/movements?start_date=2024-03-01", nil).
		Return(&transport.Response{Status: http.StatusOK, Data: json.RawMessage(`{"data":[
			{"id":1,"description":"Rent","amount":"1200.00","type":"expense","date":"01-03-2024 09:00:00"},
			{"id":2,"description":"Sale","amount":"3000.50","type":"income","date":"15-03-2024 10:30:00"},
			{"id":4,"description":"Sale","amount":"99.50","type":"income","date":"2024-03-10T08:00:00Z"},
			{"id":3,"description":"Fee","amount":"-2.25","type":"expense","date":"bad"}
		]}`)}, nil)

	require.NoError(t, s.Load(context.Background(), movement.ListFilter{StartDate: &start}))

	// The server order is kept in the collection itself.
	ids := func(ms []movement.Movement) []record.ID {
		out := make([]record.ID, len(ms))
		for i, m := range ms {
			out[i] = m.ID
		}

		return out
	}

	assert.Equal(t, []record.ID{"1", "2", "4", "3"}, ids(s.Items()))
	assert.Equal(t, []record.ID{"2", "4", "1", "3"}, ids(s.Newest()))

	totals := s.Totals()
	assert.True(t, decimal.RequireFromString("3100").Equal(totals.Income), totals.Income.String())
	assert.True(t, decimal.RequireFromString("1202.25").Equal(totals.Expense), totals.Expense.String())
	assert.True(t, decimal.RequireFromString("1897.75").Equal(totals.Balance), totals.Balance.String())
}

func TestStore_Import(t *testing.T) {
	params := []movement.CreateParams{
		{Description: "TFI Wise", Amount: decimal.RequireFromString("10.00"), Type: movement.TypeIncome, Date: "09-01-2026 00:00:00"},
	}

	t.Run("PostsBatch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		invoker := transport.NewMockInvoker(ctrl)
		notes := &notify.Buffer{}

		s := movement.NewStore(store.Deps{Invoker: invoker, Notifier: notes})

		invoker.EXPECT().
			Invoke(gomock.Any(), http.MethodPost, "/movements/import", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, body any) (*transport.Response, error) {
				raw, err := json.Marshal(body)
				require.NoError(t, err)
				assert.JSONEq(t, `{"account_id":5,"movements":[{"description":"TFI Wise","amount":"10","type":"income","date":"09-01-2026 00:00:00","account_id":null,"category_id":null,"paid":false}]}`, string(raw))

				return &transport.Response{Status: http.StatusCreated, Data: json.RawMessage(`{"message":"1 movement imported","data":[{"id":9,"amount":"10","type":"income","date":"09-01-2026 00:00:00"}]}`)}, nil
			})

		require.NoError(t, s.Import(context.Background(), "5", params))
		assert.Equal(t, 1, s.Len())
		assert.Equal(t, []notify.Notification{{Kind: notify.KindPositive, Message: "1 movement imported"}}, notes.Drain())
	})

	t.Run("EmptyBatch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		invoker := transport.NewMockInvoker(ctrl)

		s := movement.NewStore(store.Deps{Invoker: invoker, Notifier: &notify.Buffer{}})

		require.NoError(t, s.Import(context.Background(), "5", nil))
	})
}
