package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ayursutra/clinic-api/internal/model"
)

// Sentinel errors the store implementations translate driver failures into.
var (
	// ErrNotFound reports a missing row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate reports a unique-constraint violation (e.g. email).
	ErrDuplicate = errors.New("duplicate record")
	// ErrOverlap reports an insert rejected by the calendar exclusion
	// constraint. The booking engine surfaces it as a scheduling conflict.
	ErrOverlap = errors.New("overlapping appointment")
)

type (
	// AppointmentRepository is the narrow query/command interface of the
	// appointment store. Detail queries perform the read-side join and
	// return flat values.
	AppointmentRepository interface {
		Create(ctx context.Context, apt *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		GetDetail(ctx context.Context, id uuid.UUID) (*model.AppointmentDetail, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error

		ListForPractitioner(ctx context.Context, practitionerID uuid.UUID, window model.ListWindow) ([]*model.AppointmentDetail, error)
		ListForPatient(ctx context.Context, patientID uuid.UUID, window model.ListWindow) ([]*model.AppointmentDetail, error)
		ListUpcomingForPractitioner(ctx context.Context, practitionerID uuid.UUID, from time.Time, limit int) ([]*model.AppointmentDetail, error)
		ListUpcomingForPatient(ctx context.Context, patientID uuid.UUID, from time.Time, limit int) ([]*model.AppointmentDetail, error)
		ListRecentForPatient(ctx context.Context, patientID uuid.UUID, before time.Time, limit int) ([]*model.AppointmentDetail, error)

		CountUpcomingForPractitioner(ctx context.Context, practitionerID uuid.UUID, from time.Time) (int, error)
		CountForPatient(ctx context.Context, patientID uuid.UUID) (int, error)
		CountUpcomingForPatient(ctx context.Context, patientID uuid.UUID, from time.Time) (int, error)
		DistinctPatientIDs(ctx context.Context, practitionerID uuid.UUID) ([]uuid.UUID, error)

		// FindOverlapping returns non-cancelled appointments whose
		// [start_time, end_time) window overlaps [start, end) for the
		// practitioner, or for the resource when one is given.
		FindOverlapping(ctx context.Context, practitionerID uuid.UUID, resourceID *uuid.UUID, start, end time.Time) ([]*model.Appointment, error)
	}

	// UserRepository handles practitioner/patient/admin accounts.
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		ListPractitioners(ctx context.Context) ([]*model.User, error)
		ListPatientsForPractitioner(ctx context.Context, practitionerID uuid.UUID) ([]*model.User, error)
		AssignPractitioner(ctx context.Context, patientID, practitionerID uuid.UUID) error
	}

	// ResourceRepository exposes the bookable rooms/equipment. Lifecycle
	// is owned externally; the engine reads only.
	ResourceRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Resource, error)
		ListActive(ctx context.Context) ([]*model.Resource, error)
	}
)
