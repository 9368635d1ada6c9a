package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ayursutra/clinic-api/internal/model"
	"github.com/ayursutra/clinic-api/internal/repository"
)

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{BaseRepository: NewBaseRepository(db)}
}

const appointmentColumns = `
	a.id, a.practitioner_id, a.patient_id, a.resource_id, a.treatment_id,
	a.title, a.description, a.notes, a.start_time, a.end_time,
	a.status, a.created_by, a.created_at, a.updated_at
`

// detailSelect joins the display fields of both participants and the
// optional resource in one query; the caller gets a flat row.
const detailSelect = `
	SELECT ` + appointmentColumns + `,
		   pr.name AS practitioner_name, pr.email AS practitioner_email,
		   pa.name AS patient_name, pa.email AS patient_email,
		   r.name AS resource_name, r.type AS resource_type, r.location AS resource_location
	FROM appointments a
	JOIN users pr ON pr.id = a.practitioner_id
	JOIN users pa ON pa.id = a.patient_id
	LEFT JOIN resources r ON r.id = a.resource_id
`

func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, practitioner_id, patient_id, resource_id, treatment_id,
			title, description, notes, start_time, end_time,
			status, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	if apt.ID == uuid.Nil {
		apt.ID = uuid.New()
	}
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = apt.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		apt.ID,
		apt.PractitionerID,
		apt.PatientID,
		apt.ResourceID,
		apt.TreatmentID,
		apt.Title,
		apt.Description,
		apt.Notes,
		apt.StartTime,
		apt.EndTime,
		apt.Status,
		apt.CreatedBy,
		apt.CreatedAt,
		apt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", translateError(err))
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT id, practitioner_id, patient_id, resource_id, treatment_id,
			   title, description, notes, start_time, end_time,
			   status, created_by, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`
	var apt model.Appointment
	if err := r.db.GetContext(ctx, &apt, query, id); err != nil {
		return nil, translateError(err)
	}
	return &apt, nil
}

func (r *appointmentRepository) GetDetail(ctx context.Context, id uuid.UUID) (*model.AppointmentDetail, error) {
	query := detailSelect + ` WHERE a.id = $1`

	var detail model.AppointmentDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, translateError(err)
	}
	return &detail, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error {
	query := `
		UPDATE appointments
		SET status = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", translateError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *appointmentRepository) ListForPractitioner(ctx context.Context, practitionerID uuid.UUID, window model.ListWindow) ([]*model.AppointmentDetail, error) {
	return r.listFor(ctx, "a.practitioner_id", practitionerID, window)
}

func (r *appointmentRepository) ListForPatient(ctx context.Context, patientID uuid.UUID, window model.ListWindow) ([]*model.AppointmentDetail, error) {
	return r.listFor(ctx, "a.patient_id", patientID, window)
}

func (r *appointmentRepository) listFor(ctx context.Context, column string, id uuid.UUID, window model.ListWindow) ([]*model.AppointmentDetail, error) {
	query := detailSelect + ` WHERE ` + column + ` = $1`
	args := []interface{}{id}
	argCount := 2

	if !window.Start.IsZero() {
		query += fmt.Sprintf(" AND a.start_time >= $%d", argCount)
		args = append(args, window.Start)
		argCount++
	}

	if !window.End.IsZero() {
		query += fmt.Sprintf(" AND a.start_time <= $%d", argCount)
		args = append(args, window.End)
		argCount++
	}

	limit := window.Limit
	if limit <= 0 {
		limit = model.DefaultListLimit
	}
	query += fmt.Sprintf(" ORDER BY a.start_time ASC LIMIT $%d", argCount)
	args = append(args, limit)

	var appointments []*model.AppointmentDetail
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// Upcoming is defined by start time alone; status never narrows it, so a
// future cancelled session still shows on the dashboard with its status.
func (r *appointmentRepository) ListUpcomingForPractitioner(ctx context.Context, practitionerID uuid.UUID, from time.Time, limit int) ([]*model.AppointmentDetail, error) {
	query := detailSelect + `
		WHERE a.practitioner_id = $1 AND a.start_time >= $2
		ORDER BY a.start_time ASC
		LIMIT $3
	`
	var appointments []*model.AppointmentDetail
	if err := r.db.SelectContext(ctx, &appointments, query, practitionerID, from, limit); err != nil {
		return nil, fmt.Errorf("failed to list upcoming appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListUpcomingForPatient(ctx context.Context, patientID uuid.UUID, from time.Time, limit int) ([]*model.AppointmentDetail, error) {
	query := detailSelect + `
		WHERE a.patient_id = $1 AND a.start_time >= $2
		ORDER BY a.start_time ASC
		LIMIT $3
	`
	var appointments []*model.AppointmentDetail
	if err := r.db.SelectContext(ctx, &appointments, query, patientID, from, limit); err != nil {
		return nil, fmt.Errorf("failed to list upcoming appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListRecentForPatient(ctx context.Context, patientID uuid.UUID, before time.Time, limit int) ([]*model.AppointmentDetail, error) {
	query := detailSelect + `
		WHERE a.patient_id = $1 AND a.start_time < $2
		ORDER BY a.start_time DESC
		LIMIT $3
	`
	var appointments []*model.AppointmentDetail
	if err := r.db.SelectContext(ctx, &appointments, query, patientID, before, limit); err != nil {
		return nil, fmt.Errorf("failed to list recent appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) CountUpcomingForPractitioner(ctx context.Context, practitionerID uuid.UUID, from time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM appointments
		WHERE practitioner_id = $1 AND start_time >= $2
	`
	var count int
	if err := r.db.GetContext(ctx, &count, query, practitionerID, from); err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}

func (r *appointmentRepository) CountForPatient(ctx context.Context, patientID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM appointments WHERE patient_id = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, patientID); err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}

func (r *appointmentRepository) CountUpcomingForPatient(ctx context.Context, patientID uuid.UUID, from time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM appointments
		WHERE patient_id = $1 AND start_time >= $2
	`
	var count int
	if err := r.db.GetContext(ctx, &count, query, patientID, from); err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}

func (r *appointmentRepository) DistinctPatientIDs(ctx context.Context, practitionerID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT DISTINCT patient_id FROM appointments
		WHERE practitioner_id = $1
	`
	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, query, practitionerID); err != nil {
		return nil, fmt.Errorf("failed to list distinct patients: %w", err)
	}
	return ids, nil
}

// FindOverlapping uses the half-open interval test: [s1,e1) and [s2,e2)
// overlap iff s1 < e2 AND s2 < e1. Cancelled rows are out of the conflict
// domain.
func (r *appointmentRepository) FindOverlapping(ctx context.Context, practitionerID uuid.UUID, resourceID *uuid.UUID, start, end time.Time) ([]*model.Appointment, error) {
	query := `
		SELECT id, practitioner_id, patient_id, resource_id, treatment_id,
			   title, description, notes, start_time, end_time,
			   status, created_by, created_at, updated_at
		FROM appointments
		WHERE status != $1
		AND start_time < $2 AND end_time > $3
		AND (practitioner_id = $4
	`
	args := []interface{}{model.AppointmentStatusCancelled, end, start, practitionerID}

	if resourceID != nil {
		query += " OR resource_id = $5"
		args = append(args, *resourceID)
	}
	query += ")"

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to find overlapping appointments: %w", err)
	}
	return appointments, nil
}
