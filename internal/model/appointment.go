package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	switch AppointmentStatus(s) {
	case AppointmentStatusScheduled, AppointmentStatusCompleted,
		AppointmentStatusCancelled, AppointmentStatusNoShow:
		return AppointmentStatus(s), true
	default:
		return "", false
	}
}

// Appointment is a booked session on a practitioner calendar, optionally
// reserving a resource. Created exactly once by the booking engine;
// cancelled rows leave the conflict domain.
type Appointment struct {
	ID             uuid.UUID         `db:"id" json:"id"`
	PractitionerID uuid.UUID         `db:"practitioner_id" json:"practitioner_id"`
	PatientID      uuid.UUID         `db:"patient_id" json:"patient_id"`
	ResourceID     *uuid.UUID        `db:"resource_id" json:"resource_id,omitempty"`
	TreatmentID    *string           `db:"treatment_id" json:"treatment_id,omitempty"`
	Title          string            `db:"title" json:"title"`
	Description    string            `db:"description" json:"description,omitempty"`
	Notes          string            `db:"notes" json:"notes,omitempty"`
	StartTime      time.Time         `db:"start_time" json:"start_time"`
	EndTime        time.Time         `db:"end_time" json:"end_time"`
	Status         AppointmentStatus `db:"status" json:"status"`
	CreatedBy      uuid.UUID         `db:"created_by" json:"created_by"`
	CreatedAt      time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time         `db:"updated_at" json:"updated_at"`
}

// AppointmentDetail is the flat read model returned to clients: the
// appointment row joined with the display fields of its participants.
// Joins happen in the store's query, not through lazy population.
type AppointmentDetail struct {
	Appointment
	PractitionerName string  `db:"practitioner_name" json:"practitioner_name"`
	PractitionerMail string  `db:"practitioner_email" json:"practitioner_email"`
	PatientName      string  `db:"patient_name" json:"patient_name"`
	PatientEmail     string  `db:"patient_email" json:"patient_email"`
	ResourceName     *string `db:"resource_name" json:"resource_name,omitempty"`
	ResourceType     *string `db:"resource_type" json:"resource_type,omitempty"`
	ResourceLocation *string `db:"resource_location" json:"resource_location,omitempty"`
}

// CreateAppointmentRequest is the practitioner/admin booking payload.
type CreateAppointmentRequest struct {
	PractitionerID string  `json:"practitioner_id" binding:"omitempty,uuid"`
	PatientID      string  `json:"patient_id" binding:"required,uuid"`
	StartTime      Instant `json:"start_time" binding:"required"`
	EndTime        Instant `json:"end_time" binding:"required"`
	TreatmentID    string  `json:"treatment_id" binding:"omitempty"`
	ResourceID     string  `json:"resource_id" binding:"omitempty,uuid"`
	Status         string  `json:"status" binding:"omitempty,oneof=scheduled"`
	Title          string  `json:"title" binding:"omitempty,max=200"`
	Description    string  `json:"description" binding:"omitempty,max=2000"`
	Notes          string  `json:"notes" binding:"omitempty,max=2000"`
}

// RequestAppointmentRequest is the patient self-serve booking payload.
type RequestAppointmentRequest struct {
	StartTime      Instant `json:"start_time" binding:"required"`
	EndTime        Instant `json:"end_time" binding:"required"`
	TreatmentID    string  `json:"treatment_id" binding:"omitempty"`
	ResourceID     string  `json:"resource_id" binding:"omitempty,uuid"`
	PractitionerID string  `json:"practitioner_id" binding:"omitempty,uuid"`
	Title          string  `json:"title" binding:"omitempty,max=200"`
	Description    string  `json:"description" binding:"omitempty,max=2000"`
	Notes          string  `json:"notes" binding:"omitempty,max=2000"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=completed cancelled no_show"`
}

// ListWindow bounds a list query by start time. Zero bounds are open.
type ListWindow struct {
	Start time.Time
	End   time.Time
	Limit int
}

const (
	// DefaultListLimit applies when a list query carries no limit.
	DefaultListLimit = 50
	// MaxListLimit caps any caller-supplied limit.
	MaxListLimit = 200
	// DashboardFetchLimit bounds upcoming/recent dashboard lists.
	DashboardFetchLimit = 10
)
