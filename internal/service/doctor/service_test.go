package doctor

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/model"
	apperr "github.com/AnshVerma23f3001159/MAD-1-HMS/pkg/errors"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/pkg/security"
)

type fakeDoctorRepo struct {
	doctors   map[uuid.UUID]*model.Doctor
	listCalls int
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{doctors: make(map[uuid.UUID]*model.Doctor)}
}

func (r *fakeDoctorRepo) Create(_ context.Context, d *model.Doctor) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
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
	r.listCalls++
	out := make([]*model.Doctor, 0, len(r.doctors))
	for _, d := range r.doctors {
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeDoctorRepo) Count(_ context.Context) (int, error) {
	return len(r.doctors), nil
}

type fakeAccountRepo struct {
	accounts map[string]*model.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*model.Account)}
}

func (r *fakeAccountRepo) Create(_ context.Context, a *model.Account) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.accounts[a.Username] = a
	return nil
}

func (r *fakeAccountRepo) Get(_ context.Context, id uuid.UUID) (*model.Account, error) {
	for _, a := range r.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeAccountRepo) GetByUsername(_ context.Context, username string) (*model.Account, error) {
	a, ok := r.accounts[username]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return a, nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, id uuid.UUID) error {
	for username, a := range r.accounts {
		if a.ID == id {
			delete(r.accounts, username)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *fakeAccountRepo) HasAdmin(_ context.Context) (bool, error) {
	return false, nil
}

func newTestService() (*Service, *fakeDoctorRepo, *fakeAccountRepo) {
	doctors := newFakeDoctorRepo()
	accounts := newFakeAccountRepo()
	svc := NewService(doctors, accounts, security.NewBcryptHasher(4), nil)
	return svc, doctors, accounts
}

var admin = &model.Actor{AccountID: uuid.New(), Username: "admin", Role: model.RoleAdmin}

func TestCreateDefaults(t *testing.T) {
	svc, _, accounts := newTestService()

	doc, err := svc.Create(context.Background(), &model.CreateDoctorRequest{
		Username:       "drhouse",
		Name:           "Gregory House",
		Specialization: "Diagnostics",
	}, admin)
	require.NoError(t, err)
	assert.Equal(t, "Gregory House", doc.Name)

	account, err := accounts.GetByUsername(context.Background(), "drhouse")
	require.NoError(t, err)
	assert.Equal(t, model.RoleDoctor, account.Role)
	assert.Equal(t, "drhouse@hospital.com", account.Email)
	assert.NotEmpty(t, account.PasswordHash)
	assert.NotEqual(t, "doctor123", account.PasswordHash)
}

func TestCreateExplicitCredentials(t *testing.T) {
	svc, _, accounts := newTestService()

	_, err := svc.Create(context.Background(), &model.CreateDoctorRequest{
		Username:       "drwilson",
		Email:          "wilson@clinic.example.com",
		Password:       "oncology1",
		Name:           "James Wilson",
		Specialization: "Oncology",
	}, admin)
	require.NoError(t, err)

	account, err := accounts.GetByUsername(context.Background(), "drwilson")
	require.NoError(t, err)
	assert.Equal(t, "wilson@clinic.example.com", account.Email)
}

func TestCreateDuplicateUsername(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, &model.CreateDoctorRequest{Username: "drhouse", Name: "A", Specialization: "X"}, admin)
	require.NoError(t, err)

	_, err = svc.Create(ctx, &model.CreateDoctorRequest{Username: "drhouse", Name: "B", Specialization: "Y"}, admin)
	assert.True(t, apperr.IsCode(err, apperr.ErrDuplicateUsername))
}

func TestDeleteCascades(t *testing.T) {
	svc, doctors, _ := newTestService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, &model.CreateDoctorRequest{Username: "drhouse", Name: "A", Specialization: "X"}, admin)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, doc.ID, admin))
	_, ok := doctors.doctors[doc.ID]
	assert.False(t, ok)

	err = svc.Delete(ctx, doc.ID, admin)
	assert.True(t, apperr.IsCode(err, apperr.ErrNotFound))
}

func TestListCaching(t *testing.T) {
	svc, doctors, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, &model.CreateDoctorRequest{Username: "drhouse", Name: "A", Specialization: "X"}, admin)
	require.NoError(t, err)

	_, err = svc.List(ctx)
	require.NoError(t, err)
	_, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, doctors.listCalls)

	// Mutations invalidate the cached listing.
	_, err = svc.Create(ctx, &model.CreateDoctorRequest{Username: "drwilson", Name: "B", Specialization: "Y"}, admin)
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, doctors.listCalls)
	assert.Len(t, list, 2)
}

func TestGetUnknown(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Get(context.Background(), uuid.New())
	assert.True(t, apperr.IsCode(err, apperr.ErrNotFound))
}
