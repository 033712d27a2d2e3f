package handler

import (
	"net/http"

	"duka/manager/internal/service"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.svc.Shops.ListEmployees(r.Context(), actor(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, employees)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req service.EmployeeInput
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	e, err := h.svc.Shops.CreateEmployee(r.Context(), actor(r), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *Handler) RemoveEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Shops.RemoveEmployee(r.Context(), actor(r), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
