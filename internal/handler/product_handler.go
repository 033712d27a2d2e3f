package handler

import (
	"net/http"

	"duka/manager/internal/service"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.Inventory.ListProducts(r.Context(), actor(r), r.URL.Query().Get("q"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) LowStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.Inventory.LowStock(r.Context(), actor(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req service.ProductInput
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	p, err := h.svc.Inventory.AddProduct(r.Context(), actor(r), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req service.ProductInput
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	p, err := h.svc.Inventory.UpdateProduct(r.Context(), actor(r), chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Inventory.DeleteProduct(r.Context(), actor(r), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
