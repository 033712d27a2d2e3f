package handler

import (
	"net/http"

	"duka/manager/internal/model"
	"duka/manager/internal/report"
	"duka/manager/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type expensesResponse struct {
	Expenses []model.Expense `json:"expenses"`
	Total    decimal.Decimal `json:"total"`
}

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.Expenses.ListExpenses(r.Context(), actor(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, expensesResponse{Expenses: expenses, Total: report.TotalExpenses(expenses)})
}

func (h *Handler) AddExpense(w http.ResponseWriter, r *http.Request) {
	var req service.ExpenseInput
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	e, err := h.svc.Expenses.AddExpense(r.Context(), actor(r), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *Handler) QuickAddTOT(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.Expenses.QuickAddTOT(r.Context(), actor(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Expenses.DeleteExpense(r.Context(), actor(r), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
