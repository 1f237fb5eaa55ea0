package transport_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/orgdesk/admin/internal/transport"
)

func TestClient_Invoke(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/categories":
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			assert.Equal(t, "ent-1", r.Header.Get("X-Enterprise-View"))
			assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

			if r.Method == http.MethodPost {
				body, _ := io.ReadAll(r.Body)
				assert.JSONEq(t, `{"name":"Food"}`, string(body))
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(`{"message":"Created","data":[{"id":1}]}`))

				return
			}

			_, _ = w.Write([]byte(`{"data":[{"id":1},{"id":2}]}`))
		case "/api/missing":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Category not found"}`))
		case "/api/broken":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`<html>oops</html>`))
		case "/api/empty":
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer ts.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	creds := transport.NewMockCredentials(ctrl)
	creds.EXPECT().Token().Return("tok").AnyTimes()
	creds.EXPECT().EnterpriseView().Return("ent-1").AnyTimes()

	client := transport.New(transport.Config{
		BaseURL:     ts.URL + "/api/",
		RateLimit:   100,
		Burst:       10,
		Credentials: creds,
	})

	ctx := context.Background()

	t.Run("Get", func(t *testing.T) {
		resp, err := client.Invoke(ctx, http.MethodGet, "/categories", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.Status)
		assert.Len(t, resp.Get("data").Array(), 2)
	})

	t.Run("PostWithMessage", func(t *testing.T) {
		resp, err := client.Invoke(ctx, http.MethodPost, "/categories", map[string]string{"name": "Food"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.Status)
		assert.Equal(t, "Created", resp.Message())
	})

	t.Run("ServerMessageOnError", func(t *testing.T) {
		_, err := client.Invoke(ctx, http.MethodGet, "/missing", nil)
		require.Error(t, err)

		var te *transport.Error
		require.True(t, errors.As(err, &te))
		assert.Equal(t, transport.KindTransport, te.Kind)
		assert.Equal(t, http.StatusNotFound, te.Status)
		assert.Equal(t, "Category not found", te.Message)
		assert.True(t, transport.IsStatus(err, http.StatusNotFound))
	})

	t.Run("NonJSONErrorBody", func(t *testing.T) {
		_, err := client.Invoke(ctx, http.MethodGet, "/broken", nil)

		var te *transport.Error
		require.True(t, errors.As(err, &te))
		assert.Equal(t, http.StatusInternalServerError, te.Status)
		assert.Empty(t, te.Message)
	})

	t.Run("NoContent", func(t *testing.T) {
		resp, err := client.Invoke(ctx, http.MethodDelete, "/empty", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.Status)
		assert.Empty(t, resp.Data)
		assert.False(t, resp.Get("data").Exists())
	})

	t.Run("UnencodableBody", func(t *testing.T) {
		_, err := client.Invoke(ctx, http.MethodPost, "/categories", map[string]any{"bad": make(chan int)})

		var te *transport.Error
		require.True(t, errors.As(err, &te))
		assert.Equal(t, transport.KindGeneric, te.Kind)
	})
}

func TestClient_Invoke_NetworkFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	client := transport.New(transport.Config{BaseURL: url})

	_, err := client.Invoke(context.Background(), http.MethodGet, "/categories", nil)

	var te *transport.Error
	require.True(t, errors.As(err, &te))
	assert.Equal(t, transport.KindTransport, te.Kind)
	assert.Empty(t, te.Message)
	assert.Zero(t, te.Status)
}

func TestResponse_Get(t *testing.T) {
	resp := &transport.Response{Status: 200, Data: json.RawMessage(`{"unread_count": 4}`)}
	assert.Equal(t, int64(4), resp.Get("unread_count").Int())

	var nilResp *transport.Response
	assert.False(t, nilResp.Get("anything").Exists())
}
