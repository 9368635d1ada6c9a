package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ayursutra/clinic-api/internal/model"
	"github.com/ayursutra/clinic-api/internal/repository"
	"github.com/ayursutra/clinic-api/internal/treatment"
	apperrors "github.com/ayursutra/clinic-api/pkg/errors"
	"github.com/ayursutra/clinic-api/pkg/lock"
	"github.com/ayursutra/clinic-api/pkg/logger"
)

// DefaultTitle is used when neither the caller nor a treatment supplies one.
const DefaultTitle = "Therapy session"

// Notifier delivers booking confirmations. Failures are logged, never
// surfaced: mail must not fail a booking.
type Notifier interface {
	BookingConfirmed(ctx context.Context, apt *model.AppointmentDetail) error
}

// Service is the booking engine: it decides whether a requested
// appointment is legal, who may request it, which catalog entry backs it,
// and stores it without violating the calendar invariants.
type Service struct {
	appointments repository.AppointmentRepository
	users        repository.UserRepository
	resources    repository.ResourceRepository
	locker       lock.Locker
	notifier     Notifier
	log          *logger.Logger
}

func NewService(
	appointments repository.AppointmentRepository,
	users repository.UserRepository,
	resources repository.ResourceRepository,
	locker lock.Locker,
	notifier Notifier,
	log *logger.Logger,
) *Service {
	return &Service{
		appointments: appointments,
		users:        users,
		resources:    resources,
		locker:       locker,
		notifier:     notifier,
		log:          log,
	}
}

// CreateAppointment is the practitioner/admin booking path.
func (s *Service) CreateAppointment(ctx context.Context, actor model.Actor, req *model.CreateAppointmentRequest) (*model.AppointmentDetail, error) {
	explicitID, err := parseOptionalID(req.PractitionerID, "practitionerId")
	if err != nil {
		return nil, err
	}

	practitionerID, err := ResolvePractitionerTarget(actor, explicitID)
	if err != nil {
		return nil, err
	}
	practitioner, err := s.ensurePractitioner(ctx, practitionerID)
	if err != nil {
		return nil, err
	}

	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, apperrors.Validation("patientId must be a valid id")
	}
	patient, err := s.ensurePatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	if actor.Role == model.RolePractitioner &&
		patient.PractitionerID != nil && *patient.PractitionerID != practitioner.ID {
		return nil, apperrors.Unauthorized("you cannot schedule for a patient assigned to another practitioner")
	}

	start, end, err := ValidateWindow(req.StartTime.Time, req.EndTime.Time)
	if err != nil {
		return nil, err
	}

	bound, err := bindTreatment(req.TreatmentID)
	if err != nil {
		return nil, err
	}

	resourceID, err := parseOptionalID(req.ResourceID, "resourceId")
	if err != nil {
		return nil, err
	}
	if err := s.ensureResource(ctx, resourceID); err != nil {
		return nil, err
	}

	if req.Status != "" && model.AppointmentStatus(req.Status) != model.AppointmentStatusScheduled {
		return nil, apperrors.Validation("new appointments must be scheduled")
	}

	// An unassigned patient becomes bound to this practitioner by the
	// booking itself.
	if patient.PractitionerID == nil {
		if err := s.users.AssignPractitioner(ctx, patient.ID, practitioner.ID); err != nil {
			return nil, fmt.Errorf("failed to assign practitioner: %w", err)
		}
	}

	apt := &model.Appointment{
		PractitionerID: practitioner.ID,
		PatientID:      patient.ID,
		ResourceID:     resourceID,
		StartTime:      start,
		EndTime:        end,
		Status:         model.AppointmentStatusScheduled,
		Notes:          req.Notes,
		CreatedBy:      actor.ID,
	}
	applyTreatmentDefaults(apt, bound, req.Title, req.Description)

	return s.book(ctx, apt)
}

// RequestAppointment is the patient self-serve booking path.
func (s *Service) RequestAppointment(ctx context.Context, actor model.Actor, req *model.RequestAppointmentRequest) (*model.AppointmentDetail, error) {
	switch actor.Role {
	case model.RolePatient:
		// proceeds as self
	case model.RoleAdmin:
		return nil, apperrors.Validation("admins must specify a patient context to create appointments")
	case model.RolePractitioner:
		return nil, apperrors.Unauthorized("")
	default:
		return nil, apperrors.Unauthorized("")
	}

	patient, err := s.ensurePatient(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	requestedID, err := parseOptionalID(req.PractitionerID, "practitionerId")
	if err != nil {
		return nil, err
	}

	assignment, err := s.resolveAssignment(ctx, patient, requestedID)
	if err != nil {
		return nil, err
	}
	practitioner := assignment.Practitioner

	start, end, err := ValidateWindow(req.StartTime.Time, req.EndTime.Time)
	if err != nil {
		return nil, err
	}

	bound, err := bindTreatment(req.TreatmentID)
	if err != nil {
		return nil, err
	}

	resourceID, err := parseOptionalID(req.ResourceID, "resourceId")
	if err != nil {
		return nil, err
	}
	if err := s.ensureResource(ctx, resourceID); err != nil {
		return nil, err
	}

	// Establish the long-lived binding before the appointment lands so
	// every later cross-entity check sees it.
	if assignment.ShouldAssign {
		if err := s.users.AssignPractitioner(ctx, patient.ID, practitioner.ID); err != nil {
			return nil, fmt.Errorf("failed to assign practitioner: %w", err)
		}
	}

	apt := &model.Appointment{
		PractitionerID: practitioner.ID,
		PatientID:      patient.ID,
		ResourceID:     resourceID,
		StartTime:      start,
		EndTime:        end,
		Status:         model.AppointmentStatusScheduled,
		Notes:          req.Notes,
		CreatedBy:      patient.ID,
	}
	applyTreatmentDefaults(apt, bound, req.Title, req.Description)

	return s.book(ctx, apt)
}

// book runs the conflict check and insert under the calendar locks, so two
// concurrent bookings for the same practitioner or resource serialize. The
// storage exclusion constraint catches anything that slips through and is
// reported the same way.
func (s *Service) book(ctx context.Context, apt *model.Appointment) (*model.AppointmentDetail, error) {
	keys := []string{lock.PractitionerKey(apt.PractitionerID)}
	if apt.ResourceID != nil {
		keys = append(keys, lock.ResourceKey(*apt.ResourceID))
	}

	err := s.locker.WithLock(ctx, keys, func(ctx context.Context) error {
		conflicts, err := s.appointments.FindOverlapping(ctx, apt.PractitionerID, apt.ResourceID, apt.StartTime, apt.EndTime)
		if err != nil {
			return fmt.Errorf("failed to check conflicts: %w", err)
		}
		if len(conflicts) > 0 {
			return apperrors.Conflict("")
		}

		if err := s.appointments.Create(ctx, apt); err != nil {
			if errors.Is(err, repository.ErrOverlap) {
				return apperrors.Conflict("")
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			observeBooking("conflict")
			return nil, apperrors.Conflict("the calendar is busy, please retry")
		}
		if apperrors.IsConflict(err) {
			observeBooking("conflict")
		} else {
			observeBooking("error")
		}
		return nil, err
	}
	observeBooking("created")

	detail, err := s.appointments.GetDetail(ctx, apt.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.BookingConfirmed(ctx, detail); err != nil {
			s.log.Error(err, "booking confirmation not sent",
				"appointment_id", detail.ID.String())
		}
	}

	return detail, nil
}

// ListForPractitioner returns a practitioner's appointments ordered by
// start time.
func (s *Service) ListForPractitioner(ctx context.Context, actor model.Actor, explicitID *uuid.UUID, start, end time.Time, limit int) ([]*model.AppointmentDetail, error) {
	practitionerID, err := ResolvePractitionerTarget(actor, explicitID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ensurePractitioner(ctx, practitionerID); err != nil {
		return nil, err
	}

	window, err := BuildListWindow(start, end, limit)
	if err != nil {
		return nil, err
	}
	return s.appointments.ListForPractitioner(ctx, practitionerID, window)
}

// ListForPatient returns a patient's appointments, subject to the
// cross-entity access rule.
func (s *Service) ListForPatient(ctx context.Context, actor model.Actor, explicitID *uuid.UUID, start, end time.Time, limit int) ([]*model.AppointmentDetail, error) {
	patientID, err := ResolvePatientTarget(actor, explicitID)
	if err != nil {
		return nil, err
	}
	patient, err := s.ensurePatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if err := AssertPatientAccess(actor, patient); err != nil {
		return nil, err
	}

	window, err := BuildListWindow(start, end, limit)
	if err != nil {
		return nil, err
	}
	return s.appointments.ListForPatient(ctx, patientID, window)
}

// UpdateStatus is the explicit state-transition operation: the owning
// practitioner (or an admin) moves a scheduled session to completed,
// cancelled or no_show. Cancelled rows leave the conflict domain.
func (s *Service) UpdateStatus(ctx context.Context, actor model.Actor, id uuid.UUID, status model.AppointmentStatus) (*model.AppointmentDetail, error) {
	apt, err := s.appointments.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("appointment")
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	switch actor.Role {
	case model.RoleAdmin:
		// full access
	case model.RolePractitioner:
		if apt.PractitionerID != actor.ID {
			return nil, apperrors.Unauthorized("")
		}
	case model.RolePatient:
		return nil, apperrors.Unauthorized("")
	default:
		return nil, apperrors.Unauthorized("")
	}

	switch status {
	case model.AppointmentStatusCompleted, model.AppointmentStatusCancelled, model.AppointmentStatusNoShow:
	default:
		return nil, apperrors.Validationf("cannot transition an appointment to %s", status)
	}
	if apt.Status != model.AppointmentStatusScheduled {
		return nil, apperrors.Validationf("appointment is already %s", apt.Status)
	}

	if err := s.appointments.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}
	return s.appointments.GetDetail(ctx, id)
}

func (s *Service) ensurePractitioner(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("practitioner")
		}
		return nil, fmt.Errorf("failed to get practitioner: %w", err)
	}
	if user.Role != model.RolePractitioner {
		return nil, apperrors.NotFound("practitioner")
	}
	return user, nil
}

func (s *Service) ensurePatient(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("patient")
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	if user.Role != model.RolePatient {
		return nil, apperrors.NotFound("patient")
	}
	return user, nil
}

func (s *Service) ensureResource(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if _, err := s.resources.Get(ctx, *id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("resource")
		}
		return fmt.Errorf("failed to get resource: %w", err)
	}
	return nil
}

// bindTreatment resolves an optional catalog id. Absent ids bind nothing.
func bindTreatment(id string) (*model.Treatment, error) {
	if id == "" {
		return nil, nil
	}
	t, ok := treatment.ByID(id)
	if !ok {
		return nil, apperrors.NotFound("treatment")
	}
	return &t, nil
}

// applyTreatmentDefaults fills title and description from the explicit
// payload first, then the bound treatment, then the generic placeholder.
func applyTreatmentDefaults(apt *model.Appointment, t *model.Treatment, title, description string) {
	apt.Title = title
	apt.Description = description
	if t != nil {
		apt.TreatmentID = &t.ID
		if apt.Title == "" {
			apt.Title = t.Name
		}
		if apt.Description == "" {
			apt.Description = t.Description
		}
	}
	if apt.Title == "" {
		apt.Title = DefaultTitle
	}
}

func parseOptionalID(s, field string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, apperrors.Validationf("%s must be a valid id", field)
	}
	return &id, nil
}
