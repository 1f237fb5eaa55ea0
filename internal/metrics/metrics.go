package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/orgdesk/admin/internal/bus"
)

const namespace = "orgdesk"

// Metrics holds the collectors of one process. It implements store.Recorder.
type Metrics struct {
	registry *prometheus.Registry

	operations   *prometheus.CounterVec
	opDuration   *prometheus.HistogramVec
	loading      *prometheus.GaugeVec
	unread       prometheus.Gauge
	dataComplete prometheus.Gauge
	syncRuns     *prometheus.CounterVec
	syncDuration prometheus.Histogram
	httpRequests *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "operations_total",
				Help:      "Total number of store operations.",
			},
			[]string{"kind", "op", "result"},
		),
		opDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "operation_duration_seconds",
				Help:      "Duration of store operations, including the request.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
			},
			[]string{"kind", "op"},
		),
		loading: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "loading",
				Help:      "Whether a store has a request in flight.",
			},
			[]string{"kind"},
		),
		unread: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "bus",
			Name:      "unread",
			Help:      "Unread notification count last reported by the server.",
		}),
		dataComplete: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "bus",
			Name:      "data_complete",
			Help:      "Whether the enterprise in view has complete registration data.",
		}),
		syncRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "sync",
				Name:      "runs_total",
				Help:      "Total number of full refreshes.",
			},
			[]string{"result"},
		),
		syncDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "run_duration_seconds",
			Help:      "Duration of full refreshes.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of sidecar HTTP requests handled.",
			},
			[]string{"method", "route", "status"},
		),
	}

	m.registry.MustRegister(
		m.operations,
		m.opDuration,
		m.loading,
		m.unread,
		m.dataComplete,
		m.syncRuns,
		m.syncDuration,
		m.httpRequests,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the registered collectors.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveOperation(kind, op string, ok bool, d time.Duration) {
	m.operations.WithLabelValues(kind, op, result(ok)).Inc()
	m.opDuration.WithLabelValues(kind, op).Observe(d.Seconds())
}

func (m *Metrics) SetLoading(kind string, loading bool) {
	m.loading.WithLabelValues(kind).Set(gauge(loading))
}

// ObserveBus mirrors a bus snapshot into the bus gauges.
func (m *Metrics) ObserveBus(s bus.State) {
	m.unread.Set(float64(s.Unread))
	m.dataComplete.Set(gauge(s.DataComplete))
}

func (m *Metrics) ObserveSync(ok bool, d time.Duration) {
	m.syncRuns.WithLabelValues(result(ok)).Inc()
	m.syncDuration.Observe(d.Seconds())
}

// Instrument counts requests by their chi route pattern.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		m.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func result(ok bool) string {
	if ok {
		return "success"
	}

	return "failure"
}

func gauge(b bool) float64 {
	if b {
		return 1
	}

	return 0
}
