package models

import "time"

type Bookmark struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BookmarkUpdate carries a partial edit. Nil fields are left unchanged.
type BookmarkUpdate struct {
	Title       *string
	Link        *string
	Description *string
}
