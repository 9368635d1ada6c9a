package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Role is the set of caller roles known to the scheduling engine. It is a
// closed enum: every dispatch on it must switch exhaustively so a new role
// forces each call site to be revisited.
type Role string

const (
	RolePatient      Role = "patient"
	RolePractitioner Role = "practitioner"
	RoleAdmin        Role = "admin"
)

// ParseRole validates a wire-level role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RolePatient, RolePractitioner, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Actor is the authenticated caller of an operation. It is resolved by the
// auth middleware and threaded through each call; never held in package
// state.
type Actor struct {
	ID             uuid.UUID
	Role           Role
	PractitionerID *uuid.UUID
}
