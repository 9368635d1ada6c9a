package scheduling

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayursutra/clinic-api/internal/model"
	"github.com/ayursutra/clinic-api/internal/repository"
	"github.com/ayursutra/clinic-api/pkg/lock"
	"github.com/ayursutra/clinic-api/pkg/logger"
)

// fakeAppointmentRepo is an in-memory store that enforces the same
// exclusion rule as the database constraint: a non-cancelled insert that
// overlaps an existing row on the practitioner or resource is rejected
// with ErrOverlap.
type fakeAppointmentRepo struct {
	mu        sync.Mutex
	byID      map[uuid.UUID]*model.Appointment
	users     *fakeUserRepo
	resources *fakeResourceRepo
}

func newFakeAppointmentRepo(users *fakeUserRepo, resources *fakeResourceRepo) *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		byID:      make(map[uuid.UUID]*model.Appointment),
		users:     users,
		resources: resources,
	}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, apt *model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.Status == model.AppointmentStatusCancelled {
			continue
		}
		if !Overlaps(existing.StartTime, existing.EndTime, apt.StartTime, apt.EndTime) {
			continue
		}
		if existing.PractitionerID == apt.PractitionerID {
			return repository.ErrOverlap
		}
		if apt.ResourceID != nil && existing.ResourceID != nil && *existing.ResourceID == *apt.ResourceID {
			return repository.ErrOverlap
		}
	}

	if apt.ID == uuid.Nil {
		apt.ID = uuid.New()
	}
	now := time.Now()
	apt.CreatedAt = now
	apt.UpdatedAt = now
	stored := *apt
	r.byID[apt.ID] = &stored
	return nil
}

func (r *fakeAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	apt, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *apt
	return &copy, nil
}

func (r *fakeAppointmentRepo) GetDetail(ctx context.Context, id uuid.UUID) (*model.AppointmentDetail, error) {
	apt, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.detail(apt), nil
}

func (r *fakeAppointmentRepo) detail(apt *model.Appointment) *model.AppointmentDetail {
	d := &model.AppointmentDetail{Appointment: *apt}
	if pr, ok := r.users.byID[apt.PractitionerID]; ok {
		d.PractitionerName = pr.Name
		d.PractitionerMail = pr.Email
	}
	if pa, ok := r.users.byID[apt.PatientID]; ok {
		d.PatientName = pa.Name
		d.PatientEmail = pa.Email
	}
	if apt.ResourceID != nil && r.resources != nil {
		if res, ok := r.resources.byID[*apt.ResourceID]; ok {
			name := res.Name
			typ := string(res.Type)
			loc := res.Location
			d.ResourceName = &name
			d.ResourceType = &typ
			d.ResourceLocation = &loc
		}
	}
	return d
}

func (r *fakeAppointmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.AppointmentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	apt, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	apt.Status = status
	apt.UpdatedAt = time.Now()
	return nil
}

func (r *fakeAppointmentRepo) all() []*model.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.Appointment, 0, len(r.byID))
	for _, apt := range r.byID {
		copy := *apt
		out = append(out, &copy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

func (r *fakeAppointmentRepo) ListForPractitioner(_ context.Context, practitionerID uuid.UUID, window model.ListWindow) ([]*model.AppointmentDetail, error) {
	var out []*model.AppointmentDetail
	for _, apt := range r.all() {
		if apt.PractitionerID != practitionerID {
			continue
		}
		if !window.Start.IsZero() && apt.StartTime.Before(window.Start) {
			continue
		}
		if !window.End.IsZero() && apt.StartTime.After(window.End) {
			continue
		}
		out = append(out, r.detail(apt))
		if len(out) >= window.Limit {
			break
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) ListForPatient(_ context.Context, patientID uuid.UUID, window model.ListWindow) ([]*model.AppointmentDetail, error) {
	var out []*model.AppointmentDetail
	for _, apt := range r.all() {
		if apt.PatientID != patientID {
			continue
		}
		if !window.Start.IsZero() && apt.StartTime.Before(window.Start) {
			continue
		}
		if !window.End.IsZero() && apt.StartTime.After(window.End) {
			continue
		}
		out = append(out, r.detail(apt))
		if len(out) >= window.Limit {
			break
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) ListUpcomingForPractitioner(_ context.Context, practitionerID uuid.UUID, from time.Time, limit int) ([]*model.AppointmentDetail, error) {
	var out []*model.AppointmentDetail
	for _, apt := range r.all() {
		if apt.PractitionerID == practitionerID && !apt.StartTime.Before(from) {
			out = append(out, r.detail(apt))
			if len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) ListUpcomingForPatient(_ context.Context, patientID uuid.UUID, from time.Time, limit int) ([]*model.AppointmentDetail, error) {
	var out []*model.AppointmentDetail
	for _, apt := range r.all() {
		if apt.PatientID == patientID && !apt.StartTime.Before(from) {
			out = append(out, r.detail(apt))
			if len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) ListRecentForPatient(_ context.Context, patientID uuid.UUID, before time.Time, limit int) ([]*model.AppointmentDetail, error) {
	var out []*model.AppointmentDetail
	all := r.all()
	for i := len(all) - 1; i >= 0; i-- {
		apt := all[i]
		if apt.PatientID == patientID && apt.StartTime.Before(before) {
			out = append(out, r.detail(apt))
			if len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) CountUpcomingForPractitioner(_ context.Context, practitionerID uuid.UUID, from time.Time) (int, error) {
	count := 0
	for _, apt := range r.all() {
		if apt.PractitionerID == practitionerID && !apt.StartTime.Before(from) {
			count++
		}
	}
	return count, nil
}

func (r *fakeAppointmentRepo) CountForPatient(_ context.Context, patientID uuid.UUID) (int, error) {
	count := 0
	for _, apt := range r.all() {
		if apt.PatientID == patientID {
			count++
		}
	}
	return count, nil
}

func (r *fakeAppointmentRepo) CountUpcomingForPatient(_ context.Context, patientID uuid.UUID, from time.Time) (int, error) {
	count := 0
	for _, apt := range r.all() {
		if apt.PatientID == patientID && !apt.StartTime.Before(from) {
			count++
		}
	}
	return count, nil
}

func (r *fakeAppointmentRepo) DistinctPatientIDs(_ context.Context, practitionerID uuid.UUID) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]bool)
	var out []uuid.UUID
	for _, apt := range r.all() {
		if apt.PractitionerID == practitionerID && !seen[apt.PatientID] {
			seen[apt.PatientID] = true
			out = append(out, apt.PatientID)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) FindOverlapping(_ context.Context, practitionerID uuid.UUID, resourceID *uuid.UUID, start, end time.Time) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, apt := range r.all() {
		if apt.Status == model.AppointmentStatusCancelled {
			continue
		}
		if !Overlaps(apt.StartTime, apt.EndTime, start, end) {
			continue
		}
		if apt.PractitionerID == practitionerID ||
			(resourceID != nil && apt.ResourceID != nil && *apt.ResourceID == *resourceID) {
			out = append(out, apt)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{byID: make(map[uuid.UUID]*model.User)}
	for _, u := range users {
		r.byID[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if strings.EqualFold(existing.Email, user.Email) {
			return repository.ErrDuplicate
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.byID[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.byID {
		if strings.EqualFold(user.Email, email) {
			copy := *user
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) ListPractitioners(_ context.Context) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.User
	for _, user := range r.byID {
		if user.Role == model.RolePractitioner && user.IsActive {
			copy := *user
			out = append(out, &copy)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeUserRepo) ListPatientsForPractitioner(_ context.Context, practitionerID uuid.UUID) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.User
	for _, user := range r.byID {
		if user.Role == model.RolePatient && user.PractitionerID != nil && *user.PractitionerID == practitionerID {
			copy := *user
			out = append(out, &copy)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeUserRepo) AssignPractitioner(_ context.Context, patientID, practitionerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	patient, ok := r.byID[patientID]
	if !ok || patient.Role != model.RolePatient {
		return repository.ErrNotFound
	}
	id := practitionerID
	patient.PractitionerID = &id
	return nil
}

type fakeResourceRepo struct {
	byID map[uuid.UUID]*model.Resource
}

func newFakeResourceRepo(resources ...*model.Resource) *fakeResourceRepo {
	r := &fakeResourceRepo{byID: make(map[uuid.UUID]*model.Resource)}
	for _, res := range resources {
		r.byID[res.ID] = res
	}
	return r
}

func (r *fakeResourceRepo) Get(_ context.Context, id uuid.UUID) (*model.Resource, error) {
	res, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *res
	return &copy, nil
}

func (r *fakeResourceRepo) ListActive(_ context.Context) ([]*model.Resource, error) {
	var out []*model.Resource
	for _, res := range r.byID {
		if res.IsActive {
			copy := *res
			out = append(out, &copy)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []uuid.UUID
	fail error
}

func (n *recordingNotifier) BookingConfirmed(_ context.Context, apt *model.AppointmentDetail) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail != nil {
		return n.fail
	}
	n.sent = append(n.sent, apt.ID)
	return nil
}

// fixture wires the booking engine against the in-memory stores and the
// in-process locker.
type fixture struct {
	svc          *Service
	appointments *fakeAppointmentRepo
	users        *fakeUserRepo
	resources    *fakeResourceRepo
	notifier     *recordingNotifier
}

func newFixture(users *fakeUserRepo, resources *fakeResourceRepo) *fixture {
	appointments := newFakeAppointmentRepo(users, resources)
	notifier := &recordingNotifier{}
	svc := NewService(
		appointments,
		users,
		resources,
		lock.NewLocalLocker(),
		notifier,
		logger.NewLogger(nil),
	)
	return &fixture{
		svc:          svc,
		appointments: appointments,
		users:        users,
		resources:    resources,
		notifier:     notifier,
	}
}

func newPractitioner(name string) *model.User {
	return &model.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@clinic.local",
		Role:     model.RolePractitioner,
		IsActive: true,
	}
}

func newPatient(name string, practitionerID *uuid.UUID) *model.User {
	return &model.User{
		ID:             uuid.New(),
		Name:           name,
		Email:          strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		Role:           model.RolePatient,
		PractitionerID: practitionerID,
		IsActive:       true,
	}
}

func newAdmin() *model.User {
	return &model.User{
		ID:       uuid.New(),
		Name:     "Admin",
		Email:    "admin@clinic.local",
		Role:     model.RoleAdmin,
		IsActive: true,
	}
}
