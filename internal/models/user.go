package models

import "time"

// Author is the slice of the external user record that posts reference.
type Author struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username" validate:"required,max=150"`
	Email     string    `json:"email"    validate:"omitempty,email,max=254"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *Author) Validate() error {
	return validate.Struct(a)
}
