package scheduling

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayursutra/clinic-api/internal/model"
	apperrors "github.com/ayursutra/clinic-api/pkg/errors"
)

func instant(t time.Time) model.Instant {
	return model.Instant{Time: t}
}

func TestCreateAppointment(t *testing.T) {
	ctx := context.Background()

	setup := func() (*fixture, *model.User, *model.User) {
		practitioner := newPractitioner("Dr Meera Iyer")
		patient := newPatient("Asha Rao", &practitioner.ID)
		users := newFakeUserRepo(practitioner, patient)
		return newFixture(users, newFakeResourceRepo()), practitioner, patient
	}

	t.Run("practitioner books for assigned patient", func(t *testing.T) {
		fx, practitioner, patient := setup()
		actor := practitioner.Actor()

		detail, err := fx.svc.CreateAppointment(ctx, actor, &model.CreateAppointmentRequest{
			PatientID: patient.ID.String(),
			StartTime: instant(base),
			EndTime:   instant(base.Add(time.Hour)),
		})
		require.NoError(t, err)
		assert.Equal(t, practitioner.ID, detail.PractitionerID)
		assert.Equal(t, patient.ID, detail.PatientID)
		assert.Equal(t, model.AppointmentStatusScheduled, detail.Status)
		assert.Equal(t, DefaultTitle, detail.Title)
		assert.Equal(t, practitioner.ID, detail.CreatedBy)
		assert.Equal(t, []uuid.UUID{detail.ID}, fx.notifier.sent)
	})

	t.Run("treatment supplies title and description", func(t *testing.T) {
		fx, practitioner, patient := setup()

		detail, err := fx.svc.CreateAppointment(ctx, practitioner.Actor(), &model.CreateAppointmentRequest{
			PatientID:   patient.ID.String(),
			TreatmentID: "shirodhara",
			StartTime:   instant(base),
			EndTime:     instant(base.Add(time.Hour)),
		})
		require.NoError(t, err)
		assert.Equal(t, "Shirodhara Calming Stream", detail.Title)
		require.NotNil(t, detail.TreatmentID)
		assert.Equal(t, "shirodhara", *detail.TreatmentID)
		assert.NotEmpty(t, detail.Description)
	})

	t.Run("explicit title wins over treatment", func(t *testing.T) {
		fx, practitioner, patient := setup()

		detail, err := fx.svc.CreateAppointment(ctx, practitioner.Actor(), &model.CreateAppointmentRequest{
			PatientID:   patient.ID.String(),
			TreatmentID: "shirodhara",
			Title:       "Follow-up session",
			StartTime:   instant(base),
			EndTime:     instant(base.Add(time.Hour)),
		})
		require.NoError(t, err)
		assert.Equal(t, "Follow-up session", detail.Title)
	})

	t.Run("unknown treatment", func(t *testing.T) {
		fx, practitioner, patient := setup()

		_, err := fx.svc.CreateAppointment(ctx, practitioner.Actor(), &model.CreateAppointmentRequest{
			PatientID:   patient.ID.String(),
			TreatmentID: "crystal_healing",
			StartTime:   instant(base),
			EndTime:     instant(base.Add(time.Hour)),
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("overlapping booking rejected", func(t *testing.T) {
		fx, practitioner, patient := setup()
		actor := practitioner.Actor()

		_, err := fx.svc.CreateAppointment(ctx, actor, &model.CreateAppointmentRequest{
			PatientID: patient.ID.String(),
			StartTime: instant(base),
			EndTime:   instant(base.Add(time.Hour)),
		})
		require.NoError(t, err)

		_, err = fx.svc.CreateAppointment(ctx, actor, &model.CreateAppointmentRequest{
			PatientID: patient.ID.String(),
			StartTime: instant(base.Add(30 * time.Minute)),
			EndTime:   instant(base.Add(90 * time.Minute)),
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("back to back sessions allowed", func(t *testing.T) {
		fx, practitioner, patient := setup()
		actor := practitioner.Actor()

		_, err := fx.svc.CreateAppointment(ctx, actor, &model.CreateAppointmentRequest{
			PatientID: patient.ID.String(),
			StartTime: instant(base),
			EndTime:   instant(base.Add(time.Hour)),
		})
		require.NoError(t, err)

		_, err = fx.svc.CreateAppointment(ctx, actor, &model.CreateAppointmentRequest{
			PatientID: patient.ID.String(),
			StartTime: instant(base.Add(time.Hour)),
			EndTime:   instant(base.Add(2 * time.Hour)),
		})
		assert.NoError(t, err)
	})

	t.Run("cancelled slot can be rebooked", func(t *testing.T) {
		fx, practitioner, patient := setup()
		actor := practitioner.Actor()

		first, err := fx.svc.CreateAppointment(ctx, actor, &model.CreateAppointmentRequest{
			PatientID: patient.ID.String(),
			StartTime: instant(base),
			EndTime:   instant(base.Add(time.Hour)),
		})
		require.NoError(t, err)

		_, err = fx.svc.UpdateStatus(ctx, actor, first.ID, model.AppointmentStatusCancelled)
		require.NoError(t, err)

		_, err = fx.svc.CreateAppointment(ctx, actor, &model.CreateAppointmentRequest{
			PatientID: patient.ID.String(),
			StartTime: instant(base),
			EndTime:   instant(base.Add(time.Hour)),
		})
		assert.NoError(t, err)
	})

	t.Run("resource conflict across practitioners", func(t *testing.T) {
		room := &model.Resource{ID: uuid.New(), Name: "Therapy Room 1", Type: model.ResourceTypeTherapyRoom, IsActive: true}
		pr1 := newPractitioner("Dr Meera Iyer")
		pr2 := newPractitioner("Dr Vikram Shenoy")
		pa1 := newPatient("Asha Rao", &pr1.ID)
		pa2 := newPatient("Kiran Dev", &pr2.ID)
		fx := newFixture(newFakeUserRepo(pr1, pr2, pa1, pa2), newFakeResourceRepo(room))

		_, err := fx.svc.CreateAppointment(ctx, pr1.Actor(), &model.CreateAppointmentRequest{
			PatientID:  pa1.ID.String(),
			ResourceID: room.ID.String(),
			StartTime:  instant(base),
			EndTime:    instant(base.Add(time.Hour)),
		})
		require.NoError(t, err)

		_, err = fx.svc.CreateAppointment(ctx, pr2.Actor(), &model.CreateAppointmentRequest{
			PatientID:  pa2.ID.String(),
			ResourceID: room.ID.String(),
			StartTime:  instant(base.Add(30 * time.Minute)),
			EndTime:    instant(base.Add(90 * time.Minute)),
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))

		// Same window without the contested room is fine.
		_, err = fx.svc.CreateAppointment(ctx, pr2.Actor(), &model.CreateAppointmentRequest{
			PatientID: pa2.ID.String(),
			StartTime: instant(base.Add(30 * time.Minute)),
			EndTime:   instant(base.Add(90 * time.Minute)),
		})
		assert.NoError(t, err)
	})

	t.Run("practitioner cannot act as another practitioner", func(t *testing.T) {
		fx, practitioner, patient := setup()
		other := newPractitioner("Dr Vikram Shenoy")
		fx.users.byID[other.ID] = other

		_, err := fx.svc.CreateAppointment(ctx, practitioner.Actor(), &model.CreateAppointmentRequest{
			PractitionerID: other.ID.String(),
			PatientID:      patient.ID.String(),
			StartTime:      instant(base),
			EndTime:        instant(base.Add(time.Hour)),
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsUnauthorized(err))
	})

	t.Run("practitioner cannot book another practitioner's patient", func(t *testing.T) {
		fx, _, _ := setup()
		other := newPractitioner("Dr Vikram Shenoy")
		foreign := newPatient("Kiran Dev", ptr(uuid.New()))
		fx.users.byID[other.ID] = other
		fx.users.byID[foreign.ID] = foreign

		_, err := fx.svc.CreateAppointment(ctx, other.Actor(), &model.CreateAppointmentRequest{
			PatientID: foreign.ID.String(),
			StartTime: instant(base),
			EndTime:   instant(base.Add(time.Hour)),
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsUnauthorized(err))
		assert.EqualError(t, err, "you cannot schedule for a patient assigned to another practitioner")
	})

	t.Run("booking assigns an unassigned patient", func(t *testing.T) {
		practitioner := newPractitioner("Dr Meera Iyer")
		unassigned := newPatient("Bela Nair", nil)
		fx := newFixture(newFakeUserRepo(practitioner, unassigned), newFakeResourceRepo())

		_, err := fx.svc.CreateAppointment(ctx, practitioner.Actor(), &model.CreateAppointmentRequest{
			PatientID: unassigned.ID.String(),
			StartTime: instant(base),
			EndTime:   instant(base.Add(time.Hour)),
		})
		require.NoError(t, err)

		stored, err := fx.users.Get(ctx, unassigned.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.PractitionerID)
		assert.Equal(t, practitioner.ID, *stored.PractitionerID)
	})

	t.Run("admin must name a practitioner", func(t *testing.T) {
		fx, _, patient := setup()
		admin := newAdmin()
		fx.users.byID[admin.ID] = admin

		_, err := fx.svc.CreateAppointment(ctx, admin.Actor(), &model.CreateAppointmentRequest{
			PatientID: patient.ID.String(),
			StartTime: instant(base),
			EndTime:   instant(base.Add(time.Hour)),
		})
		require.Error(t, err)
		assert.EqualError(t, err, "practitionerId is required")
	})

	t.Run("admin books with explicit practitioner", func(t *testing.T) {
		fx, practitioner, patient := setup()
		admin := newAdmin()
		fx.users.byID[admin.ID] = admin

		detail, err := fx.svc.CreateAppointment(ctx, admin.Actor(), &model.CreateAppointmentRequest{
			PractitionerID: practitioner.ID.String(),
			PatientID:      patient.ID.String(),
			StartTime:      instant(base),
			EndTime:        instant(base.Add(time.Hour)),
		})
		require.NoError(t, err)
		assert.Equal(t, practitioner.ID, detail.PractitionerID)
		assert.Equal(t, admin.ID, detail.CreatedBy)
	})

	t.Run("invalid window", func(t *testing.T) {
		fx, practitioner, patient := setup()

		_, err := fx.svc.CreateAppointment(ctx, practitioner.Actor(), &model.CreateAppointmentRequest{
			PatientID: patient.ID.String(),
			StartTime: instant(base.Add(time.Hour)),
			EndTime:   instant(base),
		})
		require.Error(t, err)
		assert.EqualError(t, err, "endTime must be after startTime")
	})

	t.Run("status other than scheduled rejected", func(t *testing.T) {
		fx, practitioner, patient := setup()

		_, err := fx.svc.CreateAppointment(ctx, practitioner.Actor(), &model.CreateAppointmentRequest{
			PatientID: patient.ID.String(),
			Status:    "completed",
			StartTime: instant(base),
			EndTime:   instant(base.Add(time.Hour)),
		})
		require.Error(t, err)
		assert.EqualError(t, err, "new appointments must be scheduled")
	})

	t.Run("unknown patient", func(t *testing.T) {
		fx, practitioner, _ := setup()

		_, err := fx.svc.CreateAppointment(ctx, practitioner.Actor(), &model.CreateAppointmentRequest{
			PatientID: uuid.New().String(),
			StartTime: instant(base),
			EndTime:   instant(base.Add(time.Hour)),
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("unknown resource", func(t *testing.T) {
		fx, practitioner, patient := setup()

		_, err := fx.svc.CreateAppointment(ctx, practitioner.Actor(), &model.CreateAppointmentRequest{
			PatientID:  patient.ID.String(),
			ResourceID: uuid.New().String(),
			StartTime:  instant(base),
			EndTime:    instant(base.Add(time.Hour)),
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("mail failure does not fail the booking", func(t *testing.T) {
		fx, practitioner, patient := setup()
		fx.notifier.fail = errors.New("smtp down")

		_, err := fx.svc.CreateAppointment(ctx, practitioner.Actor(), &model.CreateAppointmentRequest{
			PatientID: patient.ID.String(),
			StartTime: instant(base),
			EndTime:   instant(base.Add(time.Hour)),
		})
		assert.NoError(t, err)
	})
}

func TestRequestAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("assigned patient books without naming anyone", func(t *testing.T) {
		practitioner := newPractitioner("Dr Meera Iyer")
		patient := newPatient("Asha Rao", &practitioner.ID)
		fx := newFixture(newFakeUserRepo(practitioner, patient), newFakeResourceRepo())

		detail, err := fx.svc.RequestAppointment(ctx, patient.Actor(), &model.RequestAppointmentRequest{
			StartTime: instant(base),
			EndTime:   instant(base.Add(time.Hour)),
		})
		require.NoError(t, err)
		assert.Equal(t, practitioner.ID, detail.PractitionerID)
		assert.Equal(t, patient.ID, detail.CreatedBy)
	})

	t.Run("assigned patient cannot pick another practitioner", func(t *testing.T) {
		practitioner := newPractitioner("Dr Meera Iyer")
		other := newPractitioner("Dr Vikram Shenoy")
		patient := newPatient("Asha Rao", &practitioner.ID)
		fx := newFixture(newFakeUserRepo(practitioner, other, patient), newFakeResourceRepo())

		_, err := fx.svc.RequestAppointment(ctx, patient.Actor(), &model.RequestAppointmentRequest{
			PractitionerID: other.ID.String(),
			StartTime:      instant(base),
			EndTime:        instant(base.Add(time.Hour)),
		})
		require.Error(t, err)
		assert.EqualError(t, err, "please request time with your assigned practitioner")
	})

	t.Run("unassigned patient must pick", func(t *testing.T) {
		patient := newPatient("Bela Nair", nil)
		fx := newFixture(newFakeUserRepo(patient), newFakeResourceRepo())

		_, err := fx.svc.RequestAppointment(ctx, patient.Actor(), &model.RequestAppointmentRequest{
			StartTime: instant(base),
			EndTime:   instant(base.Add(time.Hour)),
		})
		require.Error(t, err)
		assert.EqualError(t, err, "select a practitioner to request a session")
	})

	t.Run("first booking establishes the assignment", func(t *testing.T) {
		practitioner := newPractitioner("Dr Meera Iyer")
		patient := newPatient("Bela Nair", nil)
		fx := newFixture(newFakeUserRepo(practitioner, patient), newFakeResourceRepo())

		_, err := fx.svc.RequestAppointment(ctx, patient.Actor(), &model.RequestAppointmentRequest{
			PractitionerID: practitioner.ID.String(),
			StartTime:      instant(base),
			EndTime:        instant(base.Add(time.Hour)),
		})
		require.NoError(t, err)

		stored, err := fx.users.Get(ctx, patient.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.PractitionerID)
		assert.Equal(t, practitioner.ID, *stored.PractitionerID)

		// The binding now constrains later requests.
		other := newPractitioner("Dr Vikram Shenoy")
		fx.users.byID[other.ID] = other
		_, err = fx.svc.RequestAppointment(ctx, patient.Actor(), &model.RequestAppointmentRequest{
			PractitionerID: other.ID.String(),
			StartTime:      instant(base.Add(2 * time.Hour)),
			EndTime:        instant(base.Add(3 * time.Hour)),
		})
		require.Error(t, err)
		assert.EqualError(t, err, "please request time with your assigned practitioner")
	})

	t.Run("admin rejected with guidance", func(t *testing.T) {
		admin := newAdmin()
		fx := newFixture(newFakeUserRepo(admin), newFakeResourceRepo())

		_, err := fx.svc.RequestAppointment(ctx, admin.Actor(), &model.RequestAppointmentRequest{
			StartTime: instant(base),
			EndTime:   instant(base.Add(time.Hour)),
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.EqualError(t, err, "admins must specify a patient context to create appointments")
	})

	t.Run("practitioner rejected", func(t *testing.T) {
		practitioner := newPractitioner("Dr Meera Iyer")
		fx := newFixture(newFakeUserRepo(practitioner), newFakeResourceRepo())

		_, err := fx.svc.RequestAppointment(ctx, practitioner.Actor(), &model.RequestAppointmentRequest{
			StartTime: instant(base),
			EndTime:   instant(base.Add(time.Hour)),
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsUnauthorized(err))
	})

	t.Run("conflicting request rejected", func(t *testing.T) {
		practitioner := newPractitioner("Dr Meera Iyer")
		patient := newPatient("Asha Rao", &practitioner.ID)
		fx := newFixture(newFakeUserRepo(practitioner, patient), newFakeResourceRepo())
		actor := patient.Actor()

		_, err := fx.svc.RequestAppointment(ctx, actor, &model.RequestAppointmentRequest{
			StartTime: instant(base),
			EndTime:   instant(base.Add(time.Hour)),
		})
		require.NoError(t, err)

		_, err = fx.svc.RequestAppointment(ctx, actor, &model.RequestAppointmentRequest{
			StartTime: instant(base.Add(15 * time.Minute)),
			EndTime:   instant(base.Add(45 * time.Minute)),
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	setup := func() (*fixture, *model.User, uuid.UUID) {
		practitioner := newPractitioner("Dr Meera Iyer")
		patient := newPatient("Asha Rao", &practitioner.ID)
		fx := newFixture(newFakeUserRepo(practitioner, patient), newFakeResourceRepo())

		detail, err := fx.svc.CreateAppointment(ctx, practitioner.Actor(), &model.CreateAppointmentRequest{
			PatientID: patient.ID.String(),
			StartTime: instant(base),
			EndTime:   instant(base.Add(time.Hour)),
		})
		require.NoError(t, err)
		return fx, practitioner, detail.ID
	}

	t.Run("owner completes", func(t *testing.T) {
		fx, practitioner, id := setup()
		detail, err := fx.svc.UpdateStatus(ctx, practitioner.Actor(), id, model.AppointmentStatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, model.AppointmentStatusCompleted, detail.Status)
	})

	t.Run("admin may transition any appointment", func(t *testing.T) {
		fx, _, id := setup()
		admin := newAdmin()
		fx.users.byID[admin.ID] = admin

		detail, err := fx.svc.UpdateStatus(ctx, admin.Actor(), id, model.AppointmentStatusNoShow)
		require.NoError(t, err)
		assert.Equal(t, model.AppointmentStatusNoShow, detail.Status)
	})

	t.Run("other practitioner rejected", func(t *testing.T) {
		fx, _, id := setup()
		other := newPractitioner("Dr Vikram Shenoy")
		fx.users.byID[other.ID] = other

		_, err := fx.svc.UpdateStatus(ctx, other.Actor(), id, model.AppointmentStatusCompleted)
		require.Error(t, err)
		assert.True(t, apperrors.IsUnauthorized(err))
	})

	t.Run("patient rejected", func(t *testing.T) {
		fx, _, id := setup()
		patient := model.Actor{ID: uuid.New(), Role: model.RolePatient}

		_, err := fx.svc.UpdateStatus(ctx, patient, id, model.AppointmentStatusCancelled)
		require.Error(t, err)
		assert.True(t, apperrors.IsUnauthorized(err))
	})

	t.Run("terminal states are final", func(t *testing.T) {
		fx, practitioner, id := setup()
		_, err := fx.svc.UpdateStatus(ctx, practitioner.Actor(), id, model.AppointmentStatusCompleted)
		require.NoError(t, err)

		_, err = fx.svc.UpdateStatus(ctx, practitioner.Actor(), id, model.AppointmentStatusCancelled)
		require.Error(t, err)
		assert.EqualError(t, err, "appointment is already completed")
	})

	t.Run("scheduled is not a transition target", func(t *testing.T) {
		fx, practitioner, id := setup()
		_, err := fx.svc.UpdateStatus(ctx, practitioner.Actor(), id, model.AppointmentStatusScheduled)
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("unknown appointment", func(t *testing.T) {
		fx, practitioner, _ := setup()
		_, err := fx.svc.UpdateStatus(ctx, practitioner.Actor(), uuid.New(), model.AppointmentStatusCompleted)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

// TestConcurrentBookingSerializes drives the check-then-insert race: two
// bookings for the same slot racing through the engine must produce
// exactly one appointment.
func TestConcurrentBookingSerializes(t *testing.T) {
	ctx := context.Background()
	practitioner := newPractitioner("Dr Meera Iyer")
	pa1 := newPatient("Asha Rao", &practitioner.ID)
	pa2 := newPatient("Kiran Dev", &practitioner.ID)
	fx := newFixture(newFakeUserRepo(practitioner, pa1, pa2), newFakeResourceRepo())

	const attempts = 8
	results := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			patient := pa1
			if i%2 == 1 {
				patient = pa2
			}
			_, err := fx.svc.CreateAppointment(ctx, practitioner.Actor(), &model.CreateAppointmentRequest{
				PatientID: patient.ID.String(),
				StartTime: instant(base),
				EndTime:   instant(base.Add(time.Hour)),
			})
			results[i] = err
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range results {
		if err == nil {
			created++
			continue
		}
		assert.True(t, apperrors.IsConflict(err), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, created)
	assert.Len(t, fx.appointments.all(), 1)
}

// TestUpcomingIgnoresStatus pins the dashboard aggregate semantics:
// upcoming is defined by start time alone, so a future session that was
// cancelled still lists and counts as upcoming.
func TestUpcomingIgnoresStatus(t *testing.T) {
	ctx := context.Background()
	practitioner := newPractitioner("Dr Meera Iyer")
	patient := newPatient("Asha Rao", &practitioner.ID)
	fx := newFixture(newFakeUserRepo(practitioner, patient), newFakeResourceRepo())

	detail, err := fx.svc.CreateAppointment(ctx, practitioner.Actor(), &model.CreateAppointmentRequest{
		PatientID: patient.ID.String(),
		StartTime: instant(base),
		EndTime:   instant(base.Add(time.Hour)),
	})
	require.NoError(t, err)

	_, err = fx.svc.UpdateStatus(ctx, practitioner.Actor(), detail.ID, model.AppointmentStatusCancelled)
	require.NoError(t, err)

	from := base.Add(-24 * time.Hour)

	count, err := fx.appointments.CountUpcomingForPractitioner(ctx, practitioner.ID, from)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	upcoming, err := fx.appointments.ListUpcomingForPractitioner(ctx, practitioner.ID, from, model.DashboardFetchLimit)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, model.AppointmentStatusCancelled, upcoming[0].Status)

	count, err = fx.appointments.CountUpcomingForPatient(ctx, patient.ID, from)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	upcoming, err = fx.appointments.ListUpcomingForPatient(ctx, patient.ID, from, model.DashboardFetchLimit)
	require.NoError(t, err)
	assert.Len(t, upcoming, 1)
}

func TestListForPractitioner(t *testing.T) {
	ctx := context.Background()
	practitioner := newPractitioner("Dr Meera Iyer")
	patient := newPatient("Asha Rao", &practitioner.ID)
	fx := newFixture(newFakeUserRepo(practitioner, patient), newFakeResourceRepo())
	actor := practitioner.Actor()

	for i := 0; i < 3; i++ {
		_, err := fx.svc.CreateAppointment(ctx, actor, &model.CreateAppointmentRequest{
			PatientID: patient.ID.String(),
			StartTime: instant(base.Add(time.Duration(i) * 2 * time.Hour)),
			EndTime:   instant(base.Add(time.Duration(i)*2*time.Hour + time.Hour)),
		})
		require.NoError(t, err)
	}

	t.Run("ordered by start", func(t *testing.T) {
		list, err := fx.svc.ListForPractitioner(ctx, actor, nil, time.Time{}, time.Time{}, 0)
		require.NoError(t, err)
		require.Len(t, list, 3)
		for i := 1; i < len(list); i++ {
			assert.True(t, list[i-1].StartTime.Before(list[i].StartTime))
		}
	})

	t.Run("window filters", func(t *testing.T) {
		list, err := fx.svc.ListForPractitioner(ctx, actor, nil, base.Add(time.Hour), time.Time{}, 0)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("limit applies", func(t *testing.T) {
		list, err := fx.svc.ListForPractitioner(ctx, actor, nil, time.Time{}, time.Time{}, 1)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})
}

func TestListForPatient(t *testing.T) {
	ctx := context.Background()
	practitioner := newPractitioner("Dr Meera Iyer")
	patient := newPatient("Asha Rao", &practitioner.ID)
	stranger := newPatient("Kiran Dev", nil)
	fx := newFixture(newFakeUserRepo(practitioner, patient, stranger), newFakeResourceRepo())

	_, err := fx.svc.CreateAppointment(ctx, practitioner.Actor(), &model.CreateAppointmentRequest{
		PatientID: patient.ID.String(),
		StartTime: instant(base),
		EndTime:   instant(base.Add(time.Hour)),
	})
	require.NoError(t, err)

	t.Run("patient sees own appointments", func(t *testing.T) {
		list, err := fx.svc.ListForPatient(ctx, patient.Actor(), nil, time.Time{}, time.Time{}, 0)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("assigned practitioner sees them", func(t *testing.T) {
		list, err := fx.svc.ListForPatient(ctx, practitioner.Actor(), &patient.ID, time.Time{}, time.Time{}, 0)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("unrelated practitioner rejected", func(t *testing.T) {
		other := newPractitioner("Dr Vikram Shenoy")
		fx.users.byID[other.ID] = other

		_, err := fx.svc.ListForPatient(ctx, other.Actor(), &patient.ID, time.Time{}, time.Time{}, 0)
		require.Error(t, err)
		assert.True(t, apperrors.IsUnauthorized(err))
	})
}

func ptr(id uuid.UUID) *uuid.UUID {
	return &id
}
