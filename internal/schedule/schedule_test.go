package schedule_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/orgdesk/admin/internal/notify"
	"github.com/orgdesk/admin/internal/record"
	"github.com/orgdesk/admin/internal/schedule"
	"github.com/orgdesk/admin/internal/store"
	"github.com/orgdesk/admin/internal/transport"
)

func TestStore_Newest(t *testing.T) {
	ctrl := gomock.NewController(t)
	invoker := transport.NewMockInvoker(ctrl)

	s := schedule.NewStore(store.Deps{Invoker: invoker, Notifier: &notify.Buffer{}})

	invoker.EXPECT().
		Invoke(gomock.Any(), http.MethodGet, "/schedules", nil).
		Return(&transport.Response{Status: http.StatusOK, Data: json.RawMessage(`{"data":[
			{"id":1,"title":"a","scheduled_at":"01-02-2024 08:00:00","status":"delivered"},
			{"id":2,"title":"b","scheduled_at":"03-02-2024 08:00:00","status":"pending"},
			{"id":3,"title":"c","scheduled_at":"02-02-2024 18:30:00","status":"pending"}
		]}`)}, nil)

	require.NoError(t, s.Load(context.Background()))

	var ids []record.ID
	for _, sc := range s.Newest() {
		ids = append(ids, sc.ID)
	}

	assert.Equal(t, []record.ID{"2", "3", "1"}, ids)
	assert.Len(t, s.Pending(), 2)
	assert.Equal(t, record.ID("1"), s.Items()[0].ID)
}
