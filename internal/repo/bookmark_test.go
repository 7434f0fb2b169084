package repo

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/ademgunay/nest-api-sandbox/internal/models"
)

var bookmarkCols = []string{"id", "user_id", "title", "link", "description", "created_at", "updated_at"}

func TestBookmarkRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO bookmarks \(user_id, title, link, description\)`).
		WithArgs(7, "first bookmark", "www.google.com", nil).
		WillReturnRows(sqlmock.NewRows(bookmarkCols).AddRow(1, 7, "first bookmark", "www.google.com", nil, now, now))

	r := NewBookmarkRepo(db)
	b, err := r.Create(context.Background(), 7, "first bookmark", "www.google.com", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if b.ID != 1 || b.UserID != 7 || b.Link != "www.google.com" || b.Description != nil {
		t.Errorf("unexpected bookmark: %+v", b)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBookmarkRepo_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, user_id, title, link, description, created_at, updated_at FROM bookmarks WHERE user_id = \$1 ORDER BY id`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(bookmarkCols).
			AddRow(1, 7, "a", "www.a.com", "desc", now, now).
			AddRow(2, 7, "b", "www.b.com", nil, now, now))

	r := NewBookmarkRepo(db)
	list, err := r.ListByUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 items, got %d", len(list))
	}
	if list[0].Description == nil || *list[0].Description != "desc" || list[1].Description != nil {
		t.Errorf("unexpected descriptions: %+v", list)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBookmarkRepo_ListByUser_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, user_id, title, link`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(bookmarkCols))

	r := NewBookmarkRepo(db)
	list, err := r.ListByUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", list)
	}
}

func TestBookmarkRepo_GetByID_OtherOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, user_id, title, link`).
		WithArgs(1, 8).
		WillReturnError(sql.ErrNoRows)

	r := NewBookmarkRepo(db)
	_, err = r.GetByID(context.Background(), 8, 1)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBookmarkRepo_UpdateByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`UPDATE bookmarks`).
		WithArgs("Edit title", nil, "Just a google page", 1, 7).
		WillReturnRows(sqlmock.NewRows(bookmarkCols).AddRow(1, 7, "Edit title", "www.google.com", "Just a google page", now, now))

	title, desc := "Edit title", "Just a google page"
	r := NewBookmarkRepo(db)
	b, err := r.UpdateByID(context.Background(), 7, 1, models.BookmarkUpdate{Title: &title, Description: &desc})
	if err != nil {
		t.Fatalf("UpdateByID: %v", err)
	}
	if b.Title != "Edit title" || b.Link != "www.google.com" {
		t.Errorf("unexpected bookmark: %+v", b)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBookmarkRepo_DeleteByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM bookmarks WHERE id = \$1 AND user_id = \$2`).
		WithArgs(1, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := NewBookmarkRepo(db)
	if err := r.DeleteByID(context.Background(), 7, 1); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBookmarkRepo_DeleteByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM bookmarks`).
		WithArgs(1, 8).
		WillReturnResult(sqlmock.NewResult(0, 0))

	r := NewBookmarkRepo(db)
	if err := r.DeleteByID(context.Background(), 8, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}
