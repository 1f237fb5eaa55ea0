package refresh

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type Refresher interface {
	Refresh(ctx context.Context) error
}

// Observer records refresh outcomes.
type Observer interface {
	ObserveSync(ok bool, d time.Duration)
}

// Handler triggers a full refresh on demand.
type Handler struct {
	refresher Refresher
	observer  Observer
	timeout   time.Duration
}

func NewHandler(refresher Refresher, observer Observer, timeout time.Duration) *Handler {
	return &Handler{refresher: refresher, observer: observer, timeout: timeout}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.refresh)
}

type refreshResponse struct {
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
	Duration string `json:"duration"`
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	start := time.Now()
	err := h.refresher.Refresh(ctx)
	elapsed := time.Since(start)

	if h.observer != nil {
		h.observer.ObserveSync(err == nil, elapsed)
	}

	resp := refreshResponse{Status: "ok", Duration: elapsed.Round(time.Millisecond).String()}
	status := http.StatusOK

	if err != nil {
		resp.Status, resp.Error = "partial", err.Error()
		status = http.StatusBadGateway
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
