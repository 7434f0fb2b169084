package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ademgunay/nest-api-sandbox/internal/auth"
	"github.com/ademgunay/nest-api-sandbox/internal/models"
	"github.com/ademgunay/nest-api-sandbox/internal/repo"
)

// ==========================
// UserHandler
// ==========================
type UserHandler struct {
	Repo *repo.UserRepo
	Log  *zap.Logger
}

type editUserRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"firstName" validate:"omitempty,max=255"`
	LastName  *string `json:"lastName" validate:"omitempty,max=255"`
}

// ==========================
// Get Me
// ==========================
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	user, err := h.Repo.GetByID(r.Context(), id.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		internalError(w, h.Log, "get current user", err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// ==========================
// Edit Me
// ==========================
func (h *UserHandler) EditMe(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var input editUserRequest
	if !decodeAndValidate(w, r, &input) {
		return
	}

	user, err := h.Repo.Update(r.Context(), id.UserID, models.UserUpdate{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicate):
			JSONError(w, auth.ErrEmailTaken.Error(), http.StatusForbidden)
		case errors.Is(err, repo.ErrNotFound):
			JSONError(w, "unauthorized", http.StatusUnauthorized)
		default:
			internalError(w, h.Log, "update current user", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, user)
}
