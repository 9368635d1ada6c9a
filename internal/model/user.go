package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a clinic account: practitioner, patient or admin. A patient is
// bound to at most one practitioner through PractitionerID; nil means
// unassigned.
type User struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	Name           string     `db:"name" json:"name"`
	Email          string     `db:"email" json:"email"`
	PasswordHash   string     `db:"password_hash" json:"-"`
	Role           Role       `db:"role" json:"role"`
	PractitionerID *uuid.UUID `db:"practitioner_id" json:"practitioner_id,omitempty"`
	IsActive       bool       `db:"is_active" json:"is_active"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// Actor converts a persisted user into the caller identity threaded
// through service calls.
func (u *User) Actor() Actor {
	return Actor{
		ID:             u.ID,
		Role:           u.Role,
		PractitionerID: u.PractitionerID,
	}
}

// PublicProfile is the safe projection of a user returned in responses
// and dashboards.
type PublicProfile struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	Name           string     `db:"name" json:"name"`
	Email          string     `db:"email" json:"email"`
	Role           Role       `db:"role" json:"role"`
	PractitionerID *uuid.UUID `db:"practitioner_id" json:"practitioner_id,omitempty"`
}

func (u *User) Public() *PublicProfile {
	return &PublicProfile{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
		PractitionerID: u.PractitionerID,
	}
}

type RegisterRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	Role           string `json:"role" binding:"omitempty,oneof=patient practitioner admin"`
	PractitionerID string `json:"practitioner_id" binding:"omitempty,uuid"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string         `json:"token"`
	User  *PublicProfile `json:"user"`
}
