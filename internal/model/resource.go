package model

import (
	"time"

	"github.com/google/uuid"
)

type ResourceType string

const (
	ResourceTypeTherapyRoom        ResourceType = "therapy_room"
	ResourceTypeEquipment          ResourceType = "equipment"
	ResourceTypeTherapistAssistant ResourceType = "therapist_assistant"
	ResourceTypeOther              ResourceType = "other"
)

// Resource is a bookable room or equipment unit. Its lifecycle is owned
// outside the booking engine; the engine only existence-checks it and
// treats it as an independent conflict domain.
type Resource struct {
	ID          uuid.UUID    `db:"id" json:"id"`
	Name        string       `db:"name" json:"name"`
	Type        ResourceType `db:"type" json:"type"`
	Location    string       `db:"location" json:"location,omitempty"`
	Description string       `db:"description" json:"description,omitempty"`
	Capacity    int          `db:"capacity" json:"capacity"`
	IsActive    bool         `db:"is_active" json:"is_active"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updated_at"`
}
