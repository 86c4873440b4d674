package doctor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/model"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/repository"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/service/audit"
	apperr "github.com/AnshVerma23f3001159/MAD-1-HMS/pkg/errors"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/pkg/security"
)

const (
	defaultDoctorPassword = "doctor123"
	listCacheKey          = "doctors:list"
	listCacheTTL          = 5 * time.Minute
)

// Service is the provider directory: admin-driven doctor management
// with a cached read path for the public listing.
type Service struct {
	repo        repository.DoctorRepository
	accountRepo repository.AccountRepository
	hasher      security.PasswordHasher
	auditor     *audit.Service
	cache       *cache.Cache
}

func NewService(
	repo repository.DoctorRepository,
	accountRepo repository.AccountRepository,
	hasher security.PasswordHasher,
	auditor *audit.Service,
) *Service {
	return &Service{
		repo:        repo,
		accountRepo: accountRepo,
		hasher:      hasher,
		auditor:     auditor,
		cache:       cache.New(listCacheTTL, 10*time.Minute),
	}
}

// Create makes a doctor account plus profile. Email and password fall
// back to the source system's defaults when omitted.
func (s *Service) Create(ctx context.Context, req *model.CreateDoctorRequest, actor *model.Actor) (*model.Doctor, error) {
	if _, err := s.accountRepo.GetByUsername(ctx, req.Username); err == nil {
		return nil, apperr.DuplicateUsername(req.Username)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	emailAddr := req.Email
	if emailAddr == "" {
		emailAddr = fmt.Sprintf("%s@hospital.com", req.Username)
	}
	password := req.Password
	if password == "" {
		password = defaultDoctorPassword
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &model.Account{
		Username:     req.Username,
		Email:        emailAddr,
		PasswordHash: hash,
		Role:         model.RoleDoctor,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create doctor account: %w", err)
	}

	doctor := &model.Doctor{
		AccountID:      account.ID,
		Name:           req.Name,
		Specialization: req.Specialization,
		Availability:   req.Availability,
	}
	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to create doctor profile: %w", err)
	}

	s.cache.Delete(listCacheKey)
	if s.auditor != nil && actor != nil {
		_ = s.auditor.Log(ctx, actor.AccountID, model.AuditActionCreate, model.AuditEntityDoctor, doctor.ID, nil)
	}

	return doctor, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("doctor", err)
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return doctor, nil
}

func (s *Service) GetByAccount(ctx context.Context, accountID uuid.UUID) (*model.Doctor, error) {
	doctor, err := s.repo.GetByAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("doctor profile", err)
		}
		return nil, fmt.Errorf("failed to get doctor profile: %w", err)
	}
	return doctor, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateDoctorRequest, actor *model.Actor) (*model.Doctor, error) {
	doctor, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	doctor.Name = req.Name
	doctor.Specialization = req.Specialization
	doctor.Availability = req.Availability

	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}

	s.cache.Delete(listCacheKey)
	if s.auditor != nil && actor != nil {
		_ = s.auditor.Log(ctx, actor.AccountID, model.AuditActionUpdate, model.AuditEntityDoctor, doctor.ID, nil)
	}

	return doctor, nil
}

// Delete removes the doctor profile and cascades to its account.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, actor *model.Actor) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.repo.DeleteWithAccount(ctx, id); err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	s.cache.Delete(listCacheKey)
	if s.auditor != nil && actor != nil {
		_ = s.auditor.Log(ctx, actor.AccountID, model.AuditActionDelete, model.AuditEntityDoctor, id, nil)
	}
	return nil
}

// List returns the full directory, served from cache between mutations.
func (s *Service) List(ctx context.Context) ([]*model.Doctor, error) {
	if cached, ok := s.cache.Get(listCacheKey); ok {
		if doctors, ok := cached.([]*model.Doctor); ok {
			return doctors, nil
		}
	}

	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}

	s.cache.Set(listCacheKey, doctors, cache.DefaultExpiration)
	return doctors, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
