package views

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/orgdesk/admin/internal/app"
	"github.com/orgdesk/admin/internal/bus"
	"github.com/orgdesk/admin/internal/record"
)

// Handler serves read-only snapshots of the derived views.
type Handler struct {
	stores *app.Stores
}

func NewHandler(stores *app.Stores) *Handler {
	return &Handler{stores: stores}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/movements", h.movements)
	r.Get("/movements/totals", h.movementTotals)
	r.Get("/accounts/options", h.accountOptions)
	r.Get("/categories/options", h.categoryOptions)
	r.Get("/categories/tree", h.categoryTree)
	r.Get("/departments/tree", h.departmentTree)
	r.Get("/reports/monthly", h.monthlyReports)
	r.Get("/inbox/unread", h.unread)
	r.Get("/state", h.state)
}

func (h *Handler) movements(w http.ResponseWriter, _ *http.Request) {
	respond(w, h.stores.Movements.Newest())
}

func (h *Handler) movementTotals(w http.ResponseWriter, _ *http.Request) {
	respond(w, h.stores.Movements.Totals())
}

func (h *Handler) accountOptions(w http.ResponseWriter, _ *http.Request) {
	respond(w, h.stores.Accounts.Options())
}

func (h *Handler) categoryOptions(w http.ResponseWriter, _ *http.Request) {
	respond(w, h.stores.Categories.Options())
}

func (h *Handler) categoryTree(w http.ResponseWriter, _ *http.Request) {
	respond(w, h.stores.Categories.Tree())
}

func (h *Handler) departmentTree(w http.ResponseWriter, _ *http.Request) {
	respond(w, h.stores.Departments.Tree())
}

func (h *Handler) monthlyReports(w http.ResponseWriter, _ *http.Request) {
	respond(w, h.stores.Reports.Ordered())
}

type unreadResponse struct {
	Server int `json:"server"`
	Local  int `json:"local"`
}

func (h *Handler) unread(w http.ResponseWriter, _ *http.Request) {
	respond(w, unreadResponse{Server: h.stores.Bus.Unread(), Local: h.stores.Inbox.Unread()})
}

type storeState struct {
	Count   int  `json:"count"`
	Loading bool `json:"loading"`
}

type stateResponse struct {
	Bus            bus.State             `json:"bus"`
	Headquarters   bool                  `json:"headquarters"`
	CounterLinkage record.ID             `json:"counter_linkage"`
	EnterpriseView string                `json:"enterprise_view"`
	Stores         map[string]storeState `json:"stores"`
}

type storeStatus interface {
	Kind() string
	Len() int
	Loading() bool
}

func (h *Handler) state(w http.ResponseWriter, _ *http.Request) {
	s := h.stores
	linkage, _ := s.Enterprises.CounterLinkage()

	resp := stateResponse{
		Bus:            s.Bus.Snapshot(),
		Headquarters:   s.Enterprises.Headquarters(),
		CounterLinkage: linkage,
		EnterpriseView: s.Session.State().EnterpriseView(),
		Stores:         map[string]storeState{},
	}

	for _, st := range []storeStatus{
		s.Accounts, s.Categories, s.Movements, s.Departments, s.Members, s.Schedules,
		s.Reports, s.Subscriptions, s.Inbox, s.Counters, s.Enterprises,
	} {
		resp.Stores[st.Kind()] = storeState{Count: st.Len(), Loading: st.Loading()}
	}

	respond(w, resp)
}

func respond(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
