package handler

import (
	"fmt"
	"net/http"

	"duka/manager/internal/model"
	"duka/manager/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type paymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	// Full settles the whole remaining balance and ignores Amount.
	Full bool `json:"full"`
}

type balanceResponse struct {
	CustomerID string          `json:"customer_id"`
	Owed       decimal.Decimal `json:"owed"`
}

func (h *Handler) AddCustomer(w http.ResponseWriter, r *http.Request) {
	var req service.CustomerInput
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	c, err := h.svc.Credits.AddCustomer(r.Context(), actor(r), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.svc.Credits.ListCustomers(r.Context(), actor(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (h *Handler) CustomerBalance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	owed, err := h.svc.Credits.CustomerOwed(r.Context(), actor(r), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{CustomerID: id, Owed: owed})
}

func (h *Handler) ListCredits(w http.ResponseWriter, r *http.Request) {
	credits, err := h.svc.Credits.ListCredits(r.Context(), actor(r), r.URL.Query().Get("customer_id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, credits)
}

func (h *Handler) CreditSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Credits.Summary(r.Context(), actor(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.svc.Credits.Payments(r.Context(), actor(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	var (
		view service.CreditView
		err  error
	)
	id := chi.URLParam(r, "id")
	switch {
	case req.Full:
		view, err = h.svc.Credits.PayInFull(r.Context(), actor(r), id)
	case req.Amount.IsZero():
		err = fmt.Errorf("%w: amount is required", model.ErrInvalidInput)
	default:
		view, err = h.svc.Credits.RecordPayment(r.Context(), actor(r), id, req.Amount)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
