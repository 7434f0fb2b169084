package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ademgunay/nest-api-sandbox/internal/auth"
	"github.com/ademgunay/nest-api-sandbox/internal/metrics"
	"github.com/ademgunay/nest-api-sandbox/internal/middleware"
)

// AuthService is the part of auth.Service the HTTP layer calls.
type AuthService interface {
	Signup(ctx context.Context, c auth.Credentials) (string, error)
	Signin(ctx context.Context, c auth.Credentials) (string, error)
}

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Service AuthService
	Log     *zap.Logger
}

type authRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// ==========================
// Signup
// ==========================
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input authRequest
	if !decodeAndValidate(w, r, &input) {
		metrics.IncAuthAttempt("signup", "invalid_input")
		return
	}

	token, err := h.Service.Signup(r.Context(), auth.Credentials{Email: input.Email, Password: input.Password})
	metrics.IncAuthAttempt("signup", outcome(err))
	if err != nil {
		writeAuthError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{AccessToken: token})
}

// ==========================
// Signin
// ==========================
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var input authRequest
	if !decodeAndValidate(w, r, &input) {
		metrics.IncAuthAttempt("signin", "invalid_input")
		return
	}

	token, err := h.Service.Signin(r.Context(), auth.Credentials{Email: input.Email, Password: input.Password})
	metrics.IncAuthAttempt("signin", outcome(err))
	if err != nil {
		writeAuthError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token})
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, auth.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, auth.ErrEmailTaken):
		return "taken"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "bad_credentials"
	default:
		return "error"
	}
}

// identity returns the caller set by middleware.Authenticate, answering 401 when absent.
func identity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
	}
	return id, ok
}
