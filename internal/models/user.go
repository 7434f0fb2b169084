package models

import "time"

type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Hash      string    `json:"-"`
	FirstName *string   `json:"firstName"`
	LastName  *string   `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserUpdate carries the profile fields of an edit. Nil fields are left unchanged.
type UserUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
}
