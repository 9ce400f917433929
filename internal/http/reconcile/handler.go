package reconcile

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/averson/marketpay/internal/accountmapping"
	"github.com/averson/marketpay/internal/marketplace"
	"github.com/averson/marketpay/internal/reconcile"
)

type Handler struct {
	svc      *reconcile.Service
	mappings *accountmapping.Service
	validate *validator.Validate
}

func NewHandler(svc *reconcile.Service, mappings *accountmapping.Service) *Handler {
	return &Handler{
		svc:      svc,
		mappings: mappings,
		validate: validator.New(),
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/orders", h.orders)
	r.Post("/invoices", h.invoices)
	r.Post("/refunds", h.refunds)
	r.Post("/debits", h.debits)
	r.Post("/shops", h.shops)
}

// runRequest optionally narrows a pass to records changed since a date, given
// in the marketplace date format.
type runRequest struct {
	Since string `json:"since" validate:"omitempty,datetime=2006-01-02T15:04:05-0700"`
}

func (h *Handler) decodeRun(w http.ResponseWriter, r *http.Request) (*time.Time, bool) {
	var req runRequest

	// An absent body means a full pass. Chunked requests report no length, so
	// decode unconditionally and let EOF stand in for "no body".
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	if req.Since == "" {
		return nil, true
	}

	since, err := marketplace.ParseDate(req.Since)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	return &since, true
}

func (h *Handler) respond(w http.ResponseWriter, result any, err error) {
	if err != nil {
		slog.Error("reconciliation pass failed", "error", err)
		http.Error(w, "reconciliation failed", http.StatusBadGateway)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(result); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) orders(w http.ResponseWriter, r *http.Request) {
	since, ok := h.decodeRun(w, r)
	if !ok {
		return
	}

	result, err := h.svc.ProcessOrders(r.Context(), since)
	h.respond(w, result, err)
}

func (h *Handler) invoices(w http.ResponseWriter, r *http.Request) {
	since, ok := h.decodeRun(w, r)
	if !ok {
		return
	}

	result, err := h.svc.ProcessInvoices(r.Context(), since)
	h.respond(w, result, err)
}

func (h *Handler) refunds(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ProcessRefunds(r.Context())
	h.respond(w, result, err)
}

func (h *Handler) debits(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ValidatePendingDebits(r.Context())
	h.respond(w, result, err)
}

func (h *Handler) shops(w http.ResponseWriter, r *http.Request) {
	since, ok := h.decodeRun(w, r)
	if !ok {
		return
	}

	result, err := h.mappings.SyncShops(r.Context(), since)
	h.respond(w, result, err)
}
