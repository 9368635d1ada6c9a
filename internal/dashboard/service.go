// Package dashboard composes read-only aggregates for the practitioner and
// patient home views. It never mutates persisted state; any failing fetch
// fails the whole aggregate.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/google/uuid"

	"github.com/ayursutra/clinic-api/internal/model"
	"github.com/ayursutra/clinic-api/internal/repository"
	"github.com/ayursutra/clinic-api/internal/scheduling"
	"github.com/ayursutra/clinic-api/internal/treatment"
	apperrors "github.com/ayursutra/clinic-api/pkg/errors"
)

const (
	resourcesCacheKey     = "resources:active"
	practitionersCacheKey = "practitioners:active"
)

type Service struct {
	appointments repository.AppointmentRepository
	users        repository.UserRepository
	resources    repository.ResourceRepository
	cache        *gocache.Cache
}

// NewService builds the aggregator. cache may be nil; reference data is
// then fetched on every call.
func NewService(
	appointments repository.AppointmentRepository,
	users repository.UserRepository,
	resources repository.ResourceRepository,
	cache *gocache.Cache,
) *Service {
	return &Service{
		appointments: appointments,
		users:        users,
		resources:    resources,
		cache:        cache,
	}
}

// ForPractitioner aggregates the practitioner view: upcoming sessions, the
// assigned roster, reference data and derived counts.
func (s *Service) ForPractitioner(ctx context.Context, actor model.Actor, explicitID *uuid.UUID) (*model.PractitionerDashboard, error) {
	practitionerID, err := scheduling.ResolvePractitionerTarget(actor, explicitID)
	if err != nil {
		return nil, err
	}
	practitioner, err := s.getUser(ctx, practitionerID, model.RolePractitioner)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	var (
		upcoming      []*model.AppointmentDetail
		upcomingCount int
		patients      []*model.User
		distinctIDs   []uuid.UUID
		resources     []*model.Resource
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		upcoming, err = s.appointments.ListUpcomingForPractitioner(gctx, practitioner.ID, now, model.DashboardFetchLimit)
		return err
	})
	g.Go(func() error {
		var err error
		upcomingCount, err = s.appointments.CountUpcomingForPractitioner(gctx, practitioner.ID, now)
		return err
	})
	g.Go(func() error {
		var err error
		patients, err = s.users.ListPatientsForPractitioner(gctx, practitioner.ID)
		return err
	})
	g.Go(func() error {
		var err error
		distinctIDs, err = s.appointments.DistinctPatientIDs(gctx, practitioner.ID)
		return err
	})
	g.Go(func() error {
		var err error
		resources, err = s.activeResources(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to aggregate practitioner dashboard: %w", err)
	}

	treatments := treatment.All()

	// Roster size, falling back to the appointment history when the
	// roster is empty.
	patientCount := len(patients)
	if patientCount == 0 {
		patientCount = len(distinctIDs)
	}

	return &model.PractitionerDashboard{
		Practitioner: practitioner.Public(),
		Stats: model.PractitionerStats{
			UpcomingCount:  upcomingCount,
			PatientCount:   patientCount,
			TreatmentCount: len(treatments),
			ResourceCount:  len(resources),
		},
		Upcoming:   upcoming,
		Patients:   publicProfiles(patients),
		Treatments: treatments,
		Resources:  resources,
	}, nil
}

// ForPatient aggregates the patient view, including the assigned
// practitioner's public profile when one exists.
func (s *Service) ForPatient(ctx context.Context, actor model.Actor, explicitID *uuid.UUID) (*model.PatientDashboard, error) {
	patientID, err := scheduling.ResolvePatientTarget(actor, explicitID)
	if err != nil {
		return nil, err
	}
	patient, err := s.getUser(ctx, patientID, model.RolePatient)
	if err != nil {
		return nil, err
	}
	if err := scheduling.AssertPatientAccess(actor, patient); err != nil {
		return nil, err
	}

	var assigned *model.User
	if patient.PractitionerID != nil {
		assigned, err = s.getUser(ctx, *patient.PractitionerID, model.RolePractitioner)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()

	var (
		upcoming      []*model.AppointmentDetail
		recent        []*model.AppointmentDetail
		total         int
		upcomingCount int
		resources     []*model.Resource
		practitioners []*model.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		upcoming, err = s.appointments.ListUpcomingForPatient(gctx, patient.ID, now, model.DashboardFetchLimit)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.appointments.ListRecentForPatient(gctx, patient.ID, now, model.DashboardFetchLimit)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.appointments.CountForPatient(gctx, patient.ID)
		return err
	})
	g.Go(func() error {
		var err error
		upcomingCount, err = s.appointments.CountUpcomingForPatient(gctx, patient.ID, now)
		return err
	})
	g.Go(func() error {
		var err error
		resources, err = s.activeResources(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		practitioners, err = s.activePractitioners(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to aggregate patient dashboard: %w", err)
	}

	dash := &model.PatientDashboard{
		Patient: patient.Public(),
		Stats: model.PatientStats{
			TotalAppointments: total,
			UpcomingCount:     upcomingCount,
		},
		Upcoming:      upcoming,
		Recent:        recent,
		Treatments:    treatment.All(),
		Resources:     resources,
		Practitioners: publicProfiles(practitioners),
	}
	if assigned != nil {
		dash.Practitioner = assigned.Public()
	}
	return dash, nil
}

func (s *Service) getUser(ctx context.Context, id uuid.UUID, role model.Role) (*model.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound(string(role))
		}
		return nil, fmt.Errorf("failed to get %s: %w", role, err)
	}
	if user.Role != role {
		return nil, apperrors.NotFound(string(role))
	}
	return user, nil
}

// activeResources serves the resource list through the short-TTL cache;
// it is reference data read on every dashboard.
func (s *Service) activeResources(ctx context.Context) ([]*model.Resource, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(resourcesCacheKey); ok {
			return cached.([]*model.Resource), nil
		}
	}

	resources, err := s.resources.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetDefault(resourcesCacheKey, resources)
	}
	return resources, nil
}

func (s *Service) activePractitioners(ctx context.Context) ([]*model.User, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(practitionersCacheKey); ok {
			return cached.([]*model.User), nil
		}
	}

	practitioners, err := s.users.ListPractitioners(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetDefault(practitionersCacheKey, practitioners)
	}
	return practitioners, nil
}

func publicProfiles(users []*model.User) []*model.PublicProfile {
	profiles := make([]*model.PublicProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Public())
	}
	return profiles
}
