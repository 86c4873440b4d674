package appointment

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/model"
	apperr "github.com/AnshVerma23f3001159/MAD-1-HMS/pkg/errors"
)

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, apt *model.Appointment) error {
	if apt.ID == uuid.Nil {
		apt.ID = uuid.New()
	}
	cp := *apt
	r.appointments[apt.ID] = &cp
	return nil
}

func (r *fakeAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, ok := r.appointments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *apt
	return &cp, nil
}

func (r *fakeAppointmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.AppointmentStatus) error {
	apt, ok := r.appointments[id]
	if !ok {
		return sql.ErrNoRows
	}
	apt.Status = status
	return nil
}

func (r *fakeAppointmentRepo) ExistsBooked(_ context.Context, doctorID uuid.UUID, date time.Time, timeLabel string) (bool, error) {
	for _, apt := range r.appointments {
		if apt.DoctorID == doctorID && apt.Date.Equal(date) && apt.Time == timeLabel && apt.Status == model.AppointmentStatusBooked {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAppointmentRepo) ListForDoctor(_ context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, apt := range r.appointments {
		if apt.DoctorID == doctorID {
			out = append(out, apt)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) ListForPatient(_ context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, apt := range r.appointments {
		if apt.PatientID == patientID {
			out = append(out, apt)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) ListHistory(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	return r.ListForPatient(ctx, patientID)
}

func (r *fakeAppointmentRepo) Count(_ context.Context) (int, error) {
	return len(r.appointments), nil
}

type fakeDoctorRepo struct {
	doctors map[uuid.UUID]*model.Doctor
}

func (r *fakeDoctorRepo) Create(_ context.Context, d *model.Doctor) error {
	r.doctors[d.ID] = d
	return nil
}

func (r *fakeDoctorRepo) Get(_ context.Context, id uuid.UUID) (*model.Doctor, error) {
	d, ok := r.doctors[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return d, nil
}

func (r *fakeDoctorRepo) GetByAccount(_ context.Context, accountID uuid.UUID) (*model.Doctor, error) {
	for _, d := range r.doctors {
		if d.AccountID == accountID {
			return d, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeDoctorRepo) Update(_ context.Context, d *model.Doctor) error {
	r.doctors[d.ID] = d
	return nil
}

func (r *fakeDoctorRepo) DeleteWithAccount(_ context.Context, id uuid.UUID) error {
	delete(r.doctors, id)
	return nil
}

func (r *fakeDoctorRepo) List(_ context.Context) ([]*model.Doctor, error) {
	var out []*model.Doctor
	for _, d := range r.doctors {
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeDoctorRepo) Count(_ context.Context) (int, error) {
	return len(r.doctors), nil
}

type fakePatientRepo struct {
	patients map[uuid.UUID]*model.Patient
}

func (r *fakePatientRepo) Create(_ context.Context, p *model.Patient) error {
	r.patients[p.ID] = p
	return nil
}

func (r *fakePatientRepo) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

func (r *fakePatientRepo) GetByAccount(_ context.Context, accountID uuid.UUID) (*model.Patient, error) {
	for _, p := range r.patients {
		if p.AccountID == accountID {
			return p, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakePatientRepo) Count(_ context.Context) (int, error) {
	return len(r.patients), nil
}

type fakeTreatmentRepo struct {
	treatments map[uuid.UUID]*model.Treatment // keyed by appointment ID
}

func newFakeTreatmentRepo() *fakeTreatmentRepo {
	return &fakeTreatmentRepo{treatments: make(map[uuid.UUID]*model.Treatment)}
}

func (r *fakeTreatmentRepo) Create(_ context.Context, t *model.Treatment) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.treatments[t.AppointmentID] = t
	return nil
}

func (r *fakeTreatmentRepo) Update(_ context.Context, t *model.Treatment) error {
	r.treatments[t.AppointmentID] = t
	return nil
}

func (r *fakeTreatmentRepo) GetByAppointment(_ context.Context, appointmentID uuid.UUID) (*model.Treatment, error) {
	t, ok := r.treatments[appointmentID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return t, nil
}

type fixture struct {
	svc        *Service
	repo       *fakeAppointmentRepo
	treatments *fakeTreatmentRepo
	doctor     *model.Doctor
	patient    *model.Patient
	actor      *model.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	doctor := &model.Doctor{ID: uuid.New(), AccountID: uuid.New(), Name: "Gregory House", Specialization: "Diagnostics"}
	patient := &model.Patient{ID: uuid.New(), AccountID: uuid.New(), Name: "John Doe"}

	repo := newFakeAppointmentRepo()
	treatments := newFakeTreatmentRepo()
	doctorRepo := &fakeDoctorRepo{doctors: map[uuid.UUID]*model.Doctor{doctor.ID: doctor}}
	patientRepo := &fakePatientRepo{patients: map[uuid.UUID]*model.Patient{patient.ID: patient}}

	svc := NewService(repo, doctorRepo, patientRepo, treatments, nil, nil, nil, nil)

	return &fixture{
		svc:        svc,
		repo:       repo,
		treatments: treatments,
		doctor:     doctor,
		patient:    patient,
		actor:      &model.Actor{AccountID: patient.AccountID, Username: "johndoe", Role: model.RolePatient},
	}
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestBook(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	apt, err := f.svc.Book(ctx, f.doctor.ID, f.patient.ID, date("2026-09-01"), "10:00")
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusBooked, apt.Status)
	assert.Equal(t, "10:00", apt.Time)
	assert.NotEqual(t, uuid.Nil, apt.ID)
}

func TestBookUnknownDoctor(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Book(context.Background(), uuid.New(), f.patient.ID, date("2026-09-01"), "10:00")
	assert.True(t, apperr.IsCode(err, apperr.ErrNotFound))
}

func TestBookUnknownPatient(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Book(context.Background(), f.doctor.ID, uuid.New(), date("2026-09-01"), "10:00")
	assert.True(t, apperr.IsCode(err, apperr.ErrNotFound))
}

func TestBookSlotConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Book(ctx, f.doctor.ID, f.patient.ID, date("2026-09-01"), "10:00")
	require.NoError(t, err)

	_, err = f.svc.Book(ctx, f.doctor.ID, f.patient.ID, date("2026-09-01"), "10:00")
	assert.True(t, apperr.IsCode(err, apperr.ErrSlotConflict))
}

func TestBookFreedSlotIsReusable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	apt, err := f.svc.Book(ctx, f.doctor.ID, f.patient.ID, date("2026-09-01"), "10:00")
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, apt.ID, f.actor)
	require.NoError(t, err)

	// Only Booked rows block the slot, so the space opens up again.
	_, err = f.svc.Book(ctx, f.doctor.ID, f.patient.ID, date("2026-09-01"), "10:00")
	assert.NoError(t, err)
}

func TestBookDistinctSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Book(ctx, f.doctor.ID, f.patient.ID, date("2026-09-01"), "10:00")
	require.NoError(t, err)

	// Same time, different day.
	_, err = f.svc.Book(ctx, f.doctor.ID, f.patient.ID, date("2026-09-02"), "10:00")
	assert.NoError(t, err)

	// Same day, different time label. Labels are opaque, so "10:30"
	// and even free text pass through untouched.
	_, err = f.svc.Book(ctx, f.doctor.ID, f.patient.ID, date("2026-09-01"), "morning")
	assert.NoError(t, err)
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	apt, err := f.svc.Book(ctx, f.doctor.ID, f.patient.ID, date("2026-09-01"), "10:00")
	require.NoError(t, err)

	cancelled, err := f.svc.Cancel(ctx, apt.ID, f.actor)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, cancelled.Status)
}

func TestCancelIsUnguarded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	apt, err := f.svc.Book(ctx, f.doctor.ID, f.patient.ID, date("2026-09-01"), "10:00")
	require.NoError(t, err)

	_, err = f.svc.Complete(ctx, apt.ID, &model.CompleteAppointmentRequest{Diagnosis: "flu"}, f.actor)
	require.NoError(t, err)

	// A completed appointment can still be cancelled, and cancelling
	// twice lands on the same state.
	cancelled, err := f.svc.Cancel(ctx, apt.ID, f.actor)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, cancelled.Status)

	cancelled, err = f.svc.Cancel(ctx, apt.ID, f.actor)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, cancelled.Status)
}

func TestCancelUnknownAppointment(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Cancel(context.Background(), uuid.New(), f.actor)
	assert.True(t, apperr.IsCode(err, apperr.ErrNotFound))
}

func TestComplete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	apt, err := f.svc.Book(ctx, f.doctor.ID, f.patient.ID, date("2026-09-01"), "10:00")
	require.NoError(t, err)

	treatment, err := f.svc.Complete(ctx, apt.ID, &model.CompleteAppointmentRequest{
		Diagnosis:    "flu",
		Prescription: "rest",
		Notes:        "follow up in a week",
	}, f.actor)
	require.NoError(t, err)
	assert.Equal(t, "flu", treatment.Diagnosis)
	assert.Equal(t, apt.ID, treatment.AppointmentID)

	stored, err := f.repo.Get(ctx, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, stored.Status)
}

func TestCompleteUpsertsTreatment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	apt, err := f.svc.Book(ctx, f.doctor.ID, f.patient.ID, date("2026-09-01"), "10:00")
	require.NoError(t, err)

	first, err := f.svc.Complete(ctx, apt.ID, &model.CompleteAppointmentRequest{Diagnosis: "flu"}, f.actor)
	require.NoError(t, err)

	second, err := f.svc.Complete(ctx, apt.ID, &model.CompleteAppointmentRequest{Diagnosis: "pneumonia"}, f.actor)
	require.NoError(t, err)

	// Same row, updated fields.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "pneumonia", second.Diagnosis)

	stored, err := f.treatments.GetByAppointment(ctx, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, "pneumonia", stored.Diagnosis)
}

func TestBookCancelRebookLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Book(ctx, f.doctor.ID, f.patient.ID, date("2026-09-01"), "10:00")
	require.NoError(t, err)

	_, err = f.svc.Book(ctx, f.doctor.ID, f.patient.ID, date("2026-09-01"), "10:00")
	require.True(t, apperr.IsCode(err, apperr.ErrSlotConflict))

	_, err = f.svc.Cancel(ctx, first.ID, f.actor)
	require.NoError(t, err)

	second, err := f.svc.Book(ctx, f.doctor.ID, f.patient.ID, date("2026-09-01"), "10:00")
	require.NoError(t, err)

	_, err = f.svc.Complete(ctx, second.ID, &model.CompleteAppointmentRequest{Diagnosis: "checkup done"}, f.actor)
	require.NoError(t, err)

	history, err := f.svc.History(ctx, f.patient.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}
