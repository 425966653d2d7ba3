// Package models defines the identity records exchanged between the
// repositories, the service layer and the transport binding.
package models

import "time"

// User is the stored identity record. Email is unique across all users and
// serves as the login key. PasswordHash and IsActive never leave the
// storage/service boundary; replies carry the PublicUser view instead.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	IsActive     bool
	Roles        []string
	CreatedAt    time.Time
}

// PublicUser is the reply-safe view of a User: no password hash, no
// activation flag.
type PublicUser struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Roles       []string  `json:"roles,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Public converts u to its reply-safe view. Every outgoing payload goes
// through this single conversion; there is no other redaction point.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Roles:       u.Roles,
		CreatedAt:   u.CreatedAt,
	}
}
