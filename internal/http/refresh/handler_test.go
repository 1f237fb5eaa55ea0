package refresh_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgdesk/admin/internal/http/refresh"
)

type refresherFunc func(ctx context.Context) error

func (f refresherFunc) Refresh(ctx context.Context) error { return f(ctx) }

type observer struct {
	runs []bool
}

func (o *observer) ObserveSync(ok bool, _ time.Duration) {
	o.runs = append(o.runs, ok)
}

func TestHandler_Refresh(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "AllStoresLoaded",
			wantStatus: http.StatusOK,
			wantBody:   `"status":"ok"`,
		},
		{
			name:       "SomeStoresFailed",
			err:        errors.New("refresh: 2 of 11 stores failed"),
			wantStatus: http.StatusBadGateway,
			wantBody:   `"error":"refresh: 2 of 11 stores failed"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := &observer{}

			var hadDeadline bool

			h := refresh.NewHandler(refresherFunc(func(ctx context.Context) error {
				_, hadDeadline = ctx.Deadline()
				return tt.err
			}), obs, time.Minute)

			r := chi.NewRouter()
			r.Route("/sync", h.Routes)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sync", nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.True(t, hadDeadline)
			assert.Equal(t, []bool{tt.err == nil}, obs.runs)
		})
	}
}

func TestHandler_NilObserver(t *testing.T) {
	h := refresh.NewHandler(refresherFunc(func(context.Context) error { return nil }), nil, time.Second)

	r := chi.NewRouter()
	r.Route("/sync", h.Routes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sync", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
