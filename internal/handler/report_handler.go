package handler

import "net/http"

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Reports.Dashboard(r.Context(), actor(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) SalesReport(w http.ResponseWriter, r *http.Request) {
	rep, err := h.svc.Reports.SalesReport(r.Context(), actor(r), r.URL.Query().Get("range"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (h *Handler) MonthSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Reports.MonthSummary(r.Context(), actor(r), r.URL.Query().Get("month"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
