package scheduling

import (
	"github.com/google/uuid"

	"github.com/ayursutra/clinic-api/internal/model"
	apperrors "github.com/ayursutra/clinic-api/pkg/errors"
)

// ResolvePractitionerTarget decides which practitioner a practitioner-scoped
// operation acts upon. Practitioners may only act as themselves; admins must
// name an explicit target; patients have no business here.
func ResolvePractitionerTarget(actor model.Actor, explicitID *uuid.UUID) (uuid.UUID, error) {
	switch actor.Role {
	case model.RolePractitioner:
		if explicitID != nil && *explicitID != actor.ID {
			return uuid.Nil, apperrors.Unauthorized("you are not allowed to act on behalf of another practitioner")
		}
		return actor.ID, nil

	case model.RoleAdmin:
		if explicitID == nil {
			return uuid.Nil, apperrors.Validation("practitionerId is required")
		}
		return *explicitID, nil

	case model.RolePatient:
		return uuid.Nil, apperrors.Unauthorized("")

	default:
		return uuid.Nil, apperrors.Unauthorized("")
	}
}

// ResolvePatientTarget decides which patient a patient-scoped read acts
// upon. Patients always resolve to themselves; practitioners and admins may
// look up an explicit target, subject to AssertPatientAccess.
func ResolvePatientTarget(actor model.Actor, explicitID *uuid.UUID) (uuid.UUID, error) {
	switch actor.Role {
	case model.RolePatient:
		return actor.ID, nil

	case model.RolePractitioner, model.RoleAdmin:
		if explicitID == nil {
			return uuid.Nil, apperrors.Validation("patientId is required")
		}
		return *explicitID, nil

	default:
		return uuid.Nil, apperrors.Unauthorized("")
	}
}

// AssertPatientAccess enforces the cross-entity rule: a practitioner may
// only touch patients currently assigned to them; a patient only
// themselves; admins pass.
func AssertPatientAccess(actor model.Actor, patient *model.User) error {
	switch actor.Role {
	case model.RolePatient:
		if patient.ID != actor.ID {
			return apperrors.Unauthorized("")
		}
		return nil

	case model.RolePractitioner:
		if patient.PractitionerID == nil || *patient.PractitionerID != actor.ID {
			return apperrors.Unauthorized("you cannot access this patient")
		}
		return nil

	case model.RoleAdmin:
		return nil

	default:
		return apperrors.Unauthorized("")
	}
}
