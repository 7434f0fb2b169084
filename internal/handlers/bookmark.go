package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ademgunay/nest-api-sandbox/internal/models"
	"github.com/ademgunay/nest-api-sandbox/internal/repo"
)

// BookmarkHandler serves the caller's bookmarks. The owner always comes from the
// authenticated identity, never from the request.
type BookmarkHandler struct {
	Repo *repo.BookmarkRepo
	Log  *zap.Logger
}

type createBookmarkRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Link        string  `json:"link" validate:"required,max=2048"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type editBookmarkRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Link        *string `json:"link" validate:"omitempty,min=1,max=2048"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

//
// ==========================
// List Bookmarks
// ==========================
//

func (h *BookmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	bookmarks, err := h.Repo.ListByUser(r.Context(), id.UserID)
	if err != nil {
		internalError(w, h.Log, "list bookmarks", err)
		return
	}

	writeJSON(w, http.StatusOK, bookmarks)
}

//
// ==========================
// Create Bookmark
// ==========================
//

func (h *BookmarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var input createBookmarkRequest
	if !decodeAndValidate(w, r, &input) {
		return
	}

	b, err := h.Repo.Create(r.Context(), id.UserID, input.Title, input.Link, input.Description)
	if err != nil {
		internalError(w, h.Log, "create bookmark", err)
		return
	}

	writeJSON(w, http.StatusCreated, b)
}

//
// ==========================
// Get Bookmark By ID
// ==========================
//

func (h *BookmarkHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	bookmarkID, ok := pathID(r)
	if !ok {
		JSONError(w, "invalid bookmark id", http.StatusBadRequest)
		return
	}

	b, err := h.Repo.GetByID(r.Context(), id.UserID, bookmarkID)
	if err != nil {
		h.repoError(w, "get bookmark", err)
		return
	}

	writeJSON(w, http.StatusOK, b)
}

//
// ==========================
// Edit Bookmark By ID
// ==========================
//

func (h *BookmarkHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	bookmarkID, ok := pathID(r)
	if !ok {
		JSONError(w, "invalid bookmark id", http.StatusBadRequest)
		return
	}

	var input editBookmarkRequest
	if !decodeAndValidate(w, r, &input) {
		return
	}

	b, err := h.Repo.UpdateByID(r.Context(), id.UserID, bookmarkID, models.BookmarkUpdate{
		Title:       input.Title,
		Link:        input.Link,
		Description: input.Description,
	})
	if err != nil {
		h.repoError(w, "update bookmark", err)
		return
	}

	writeJSON(w, http.StatusOK, b)
}

//
// ==========================
// Delete Bookmark By ID
// ==========================
//

func (h *BookmarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	bookmarkID, ok := pathID(r)
	if !ok {
		JSONError(w, "invalid bookmark id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.DeleteByID(r.Context(), id.UserID, bookmarkID); err != nil {
		h.repoError(w, "delete bookmark", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// repoError answers ErrNotFound with 404; a bookmark of another user lands here too.
func (h *BookmarkHandler) repoError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, repo.ErrNotFound) {
		JSONError(w, "bookmark not found", http.StatusNotFound)
		return
	}
	internalError(w, h.Log, op, err)
}
