// Package model defines domain entities for the application.
package model

import "time"

// User is an account that owns tasks.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           *string   `json:"name,omitempty"`
	HashedPassword string    `json:"-"` // Never serialize
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DisplayName returns the user's name or an empty string when unset.
func (u *User) DisplayName() string {
	if u.Name == nil {
		return ""
	}
	return *u.Name
}
