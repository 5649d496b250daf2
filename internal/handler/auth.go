package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/campusevents/backend/internal/model"
	"github.com/campusevents/backend/internal/repository"
	"github.com/campusevents/backend/internal/service"
)

// AuthHandler holds the HTTP handlers for account and session endpoints.
type AuthHandler struct {
	svc *service.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Success bool        `json:"success"`
	User    *model.User `json:"user"`
	Token   string      `json:"token"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "invalid request body: "+err.Error())
		return
	}

	user, token, err := h.svc.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, codeConflict, "email already registered")
			return
		}
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{Success: true, User: user, Token: token})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "invalid request body: "+err.Error())
		return
	}

	user, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, codeUnauthorized, err.Error())
		case errors.Is(err, service.ErrAccountDeactivated),
			errors.Is(err, service.ErrOrganizerNotApproved):
			writeError(w, http.StatusForbidden, codeForbidden, err.Error())
		default:
			log.Printf("login: %v", err)
			writeError(w, http.StatusInternalServerError, codeInternal, "login failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Success: true, User: user, Token: token})
}

// Me handles GET /api/auth/me
// Returns the authenticated account's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": user})
}
