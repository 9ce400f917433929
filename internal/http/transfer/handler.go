package transfer

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/averson/marketpay/internal/transfer"
)

type Handler struct {
	transfers transfer.Repository
}

func NewHandler(transfers transfer.Repository) *Handler {
	return &Handler{transfers: transfers}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{type}/{marketplaceID}", h.get)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := transfer.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		status := transfer.Status(s)
		filter.Status = &status
	}

	if s := r.URL.Query().Get("type"); s != "" {
		typ := transfer.Type(s)
		filter.Type = &typ
	}

	recs, err := h.transfers.ListTransfers(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(recs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	typ := transfer.Type(chi.URLParam(r, "type"))
	marketplaceID := chi.URLParam(r, "marketplaceID")

	rec, err := h.transfers.GetByTypeAndMarketplaceID(r.Context(), typ, marketplaceID)
	if err != nil {
		if errors.Is(err, transfer.ErrNotFound) {
			http.Error(w, "transfer not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(rec)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
