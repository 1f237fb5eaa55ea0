package importcsv

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/orgdesk/admin/internal/importer"
	"github.com/orgdesk/admin/internal/record"
	"github.com/orgdesk/admin/internal/transport"
)

type Importer interface {
	Import(ctx context.Context, format importer.Format, r io.Reader, accountID record.ID) (int, error)
}

type Handler struct {
	importer Importer
}

func NewHandler(importer Importer) *Handler {
	return &Handler{importer: importer}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importResponse struct {
	Imported int `json:"imported"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	accountID := record.ID(r.FormValue("account_id"))
	if accountID.IsZero() {
		http.Error(w, "account_id field is required", http.StatusBadRequest)
		return
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatStatement
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	n, err := h.importer.Import(r.Context(), format, file, accountID)
	if err != nil {
		var te *transport.Error
		if errors.As(err, &te) {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(importResponse{Imported: n}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
