package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/orgdesk/admin/internal/http/importcsv"
	"github.com/orgdesk/admin/internal/http/refresh"
	"github.com/orgdesk/admin/internal/http/views"
	"github.com/orgdesk/admin/internal/metrics"
)

func New(
	viewsV1 *views.Handler,
	refreshV1 *refresh.Handler,
	importV1 *importcsv.Handler,
	m *metrics.Metrics,
	allowedOrigins []string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	router.Method(http.MethodGet, "/metrics", m.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(m.Instrument)

		r.Group(viewsV1.Routes)
		r.Route("/sync", refreshV1.Routes)
		r.Route("/import", importV1.Routes)
	})

	return router
}
