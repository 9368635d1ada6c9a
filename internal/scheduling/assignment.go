package scheduling

import (
	"context"

	"github.com/google/uuid"

	"github.com/ayursutra/clinic-api/internal/model"
	apperrors "github.com/ayursutra/clinic-api/pkg/errors"
)

// Assignment is the outcome of resolving the practitioner for a
// patient-initiated booking. ShouldAssign is true when this booking
// establishes the long-lived patient/practitioner binding; the caller must
// persist it before or with the appointment.
type Assignment struct {
	Practitioner *model.User
	ShouldAssign bool
}

// resolveAssignment applies the assignment rules: an assigned patient may
// only name their own practitioner; an unassigned patient must pick one,
// and that pick becomes the assignment.
func (s *Service) resolveAssignment(ctx context.Context, patient *model.User, requestedID *uuid.UUID) (Assignment, error) {
	assignedID := patient.PractitionerID

	if requestedID != nil && assignedID != nil && *requestedID != *assignedID {
		return Assignment{}, apperrors.Validation("please request time with your assigned practitioner")
	}

	if assignedID != nil {
		practitioner, err := s.ensurePractitioner(ctx, *assignedID)
		if err != nil {
			return Assignment{}, err
		}
		return Assignment{Practitioner: practitioner}, nil
	}

	if requestedID == nil {
		return Assignment{}, apperrors.Validation("select a practitioner to request a session")
	}

	practitioner, err := s.ensurePractitioner(ctx, *requestedID)
	if err != nil {
		return Assignment{}, err
	}
	return Assignment{Practitioner: practitioner, ShouldAssign: true}, nil
}
