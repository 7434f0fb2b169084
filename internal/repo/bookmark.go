package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ademgunay/nest-api-sandbox/internal/models"
)

// ========================
// REPOSITORY STRUCT
// ========================

// BookmarkRepo stores bookmarks. Every method takes the owner's user id and only touches
// that owner's rows; a bookmark of another user is reported as ErrNotFound.
type BookmarkRepo struct {
	DB *sql.DB
}

func NewBookmarkRepo(db *sql.DB) *BookmarkRepo {
	return &BookmarkRepo{DB: db}
}

const bookmarkColumns = `id, user_id, title, link, description, created_at, updated_at`

func scanBookmark(row interface{ Scan(...any) error }) (models.Bookmark, error) {
	var b models.Bookmark
	err := row.Scan(&b.ID, &b.UserID, &b.Title, &b.Link, &b.Description, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return b, ErrNotFound
	}
	return b, err
}

// ========================
// CREATE BOOKMARK
// ========================

func (r *BookmarkRepo) Create(ctx context.Context, userID int, title, link string, description *string) (models.Bookmark, error) {
	b, err := scanBookmark(r.DB.QueryRowContext(ctx,
		`INSERT INTO bookmarks (user_id, title, link, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+bookmarkColumns,
		userID, title, link, description,
	))
	if err != nil {
		return b, fmt.Errorf("insert bookmark: %w", err)
	}
	return b, nil
}

// ========================
// LIST BOOKMARKS OF A USER
// ========================

// ListByUser returns the user's bookmarks oldest first. The result is never nil.
func (r *BookmarkRepo) ListByUser(ctx context.Context, userID int) ([]models.Bookmark, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks WHERE user_id = $1 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("select bookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := []models.Bookmark{}
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}

// ========================
// GET BOOKMARK BY ID
// ========================

func (r *BookmarkRepo) GetByID(ctx context.Context, userID, id int) (models.Bookmark, error) {
	b, err := scanBookmark(r.DB.QueryRowContext(ctx,
		`SELECT `+bookmarkColumns+`
		 FROM bookmarks
		 WHERE id = $1 AND user_id = $2`,
		id, userID,
	))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return b, fmt.Errorf("select bookmark: %w", err)
	}
	return b, err
}

// ========================
// UPDATE BOOKMARK BY ID
// ========================

func (r *BookmarkRepo) UpdateByID(ctx context.Context, userID, id int, u models.BookmarkUpdate) (models.Bookmark, error) {
	b, err := scanBookmark(r.DB.QueryRowContext(ctx,
		`UPDATE bookmarks
		 SET title = COALESCE($1, title),
		     link = COALESCE($2, link),
		     description = COALESCE($3, description),
		     updated_at = now()
		 WHERE id = $4 AND user_id = $5
		 RETURNING `+bookmarkColumns,
		u.Title, u.Link, u.Description, id, userID,
	))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return b, fmt.Errorf("update bookmark: %w", err)
	}
	return b, err
}

// ========================
// DELETE BOOKMARK BY ID
// ========================

func (r *BookmarkRepo) DeleteByID(ctx context.Context, userID, id int) error {
	result, err := r.DB.ExecContext(ctx,
		"DELETE FROM bookmarks WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
