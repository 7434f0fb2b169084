package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/ademgunay/nest-api-sandbox/internal/repo"
)

var userCols = []string{"id", "email", "hash", "first_name", "last_name", "created_at", "updated_at"}

func TestUserHandler_GetMe(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, email, hash`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "vlad@gmail.com", "$argon2id$secret", nil, nil, now, now))

	h := &UserHandler{Repo: repo.NewUserRepo(db)}
	rr := httptest.NewRecorder()
	h.GetMe(rr, authedRequest("GET", "/users/me", nil, 1, nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("GetMe status: got %d, want 200", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "argon2id") || strings.Contains(rr.Body.String(), `"hash"`) {
		t.Errorf("hash leaked in response: %s", rr.Body.String())
	}
	var user struct {
		ID    int    `json:"id"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&user); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if user.ID != 1 || user.Email != "vlad@gmail.com" {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserHandler_GetMe_NoIdentity(t *testing.T) {
	h := &UserHandler{}
	rr := httptest.NewRecorder()
	h.GetMe(rr, httptest.NewRequest("GET", "/users/me", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("GetMe status: got %d, want 401", rr.Code)
	}
}

func TestUserHandler_EditMe(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`UPDATE users`).
		WithArgs("vlad@codewithvlad.com", "Vladimir", nil, 1).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "vlad@codewithvlad.com", "digest", "Vladimir", nil, now, now))

	h := &UserHandler{Repo: repo.NewUserRepo(db)}
	body := []byte(`{"firstName":"Vladimir","email":"vlad@codewithvlad.com"}`)
	rr := httptest.NewRecorder()
	h.EditMe(rr, authedRequest("PATCH", "/users/edit", body, 1, nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("EditMe status: got %d, want 200 (%s)", rr.Code, rr.Body.String())
	}
	var user struct {
		Email     string `json:"email"`
		FirstName string `json:"firstName"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&user); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if user.Email != "vlad@codewithvlad.com" || user.FirstName != "Vladimir" {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserHandler_EditMe_EmailTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`UPDATE users`).
		WithArgs("taken@mail.com", nil, nil, 1).
		WillReturnError(&pq.Error{Code: "23505"})

	h := &UserHandler{Repo: repo.NewUserRepo(db)}
	rr := httptest.NewRecorder()
	h.EditMe(rr, authedRequest("PATCH", "/users/edit", []byte(`{"email":"taken@mail.com"}`), 1, nil))

	if rr.Code != http.StatusForbidden {
		t.Errorf("EditMe status: got %d, want 403", rr.Code)
	}
}

func TestUserHandler_EditMe_BadEmail(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	h := &UserHandler{Repo: repo.NewUserRepo(db)}
	rr := httptest.NewRecorder()
	h.EditMe(rr, authedRequest("PATCH", "/users/edit", []byte(`{"email":"nope"}`), 1, nil))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("EditMe status: got %d, want 400", rr.Code)
	}
	var out struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Fields["email"] != "email" {
		t.Errorf("expected email field error, got %v", out.Fields)
	}
}
