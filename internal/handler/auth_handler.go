package handler

import (
	"net/http"
	"strings"

	"duka/manager/internal/auth"
	"duka/manager/internal/model"
	"duka/manager/internal/service"
)

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req service.SignUpInput
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	acc, err := h.svc.Shops.SignUp(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, acc)
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	session, err := h.svc.Shops.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	acc, err := h.svc.Shops.Account(r.Context(), actor(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

// authenticate resolves the bearer token to a shop member and stores it on the context.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			h.writeError(w, r, model.ErrUnauthorized)
			return
		}

		user, err := h.authn.GetUser(r.Context(), strings.TrimSpace(token))
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		member, err := h.svc.Shops.Membership(r.Context(), user.ID)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithMember(r.Context(), member)))
	})
}

// actor returns the member set by authenticate. Routes using it are always behind that middleware.
func actor(r *http.Request) model.Member {
	m, _ := auth.MemberFrom(r.Context())
	return m
}
