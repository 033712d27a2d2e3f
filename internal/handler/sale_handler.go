package handler

import (
	"net/http"

	"duka/manager/internal/service"
)

func (h *Handler) RecordSale(w http.ResponseWriter, r *http.Request) {
	var req service.SaleInput
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	// Default quantity to 1 if not provided
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	rec, err := h.svc.Inventory.RecordSale(r.Context(), actor(r), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.svc.Inventory.ListSales(r.Context(), actor(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sales)
}

func (h *Handler) SalesHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.svc.Reports.SalesHistory(r.Context(), actor(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}
