package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/model"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/repository"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/service/audit"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/pkg/auth"
	apperr "github.com/AnshVerma23f3001159/MAD-1-HMS/pkg/errors"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/pkg/security"
)

type Service struct {
	accountRepo repository.AccountRepository
	patientRepo repository.PatientRepository
	hasher      security.PasswordHasher
	tokens      auth.TokenService
	auditor     *audit.Service
}

func NewService(
	accountRepo repository.AccountRepository,
	patientRepo repository.PatientRepository,
	hasher security.PasswordHasher,
	tokens auth.TokenService,
	auditor *audit.Service,
) *Service {
	return &Service{
		accountRepo: accountRepo,
		patientRepo: patientRepo,
		hasher:      hasher,
		tokens:      tokens,
		auditor:     auditor,
	}
}

// Register creates a patient account plus its profile. Self-registration
// always yields the patient role; doctors are created by admins.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.Account, error) {
	if _, err := s.accountRepo.GetByUsername(ctx, req.Username); err == nil {
		return nil, apperr.DuplicateUsername(req.Username)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &model.Account{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.RolePatient,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	name := req.Name
	if name == "" {
		name = req.Username
	}
	patient := &model.Patient{
		AccountID: account.ID,
		Name:      name,
		Contact:   req.Contact,
	}
	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient profile: %w", err)
	}

	if s.auditor != nil {
		_ = s.auditor.Log(ctx, account.ID, model.AuditActionCreate, model.AuditEntityAccount, account.ID, nil)
	}

	account.PasswordHash = ""
	return account, nil
}

// Login verifies credentials and returns a signed access token carrying
// the account's role.
func (s *Service) Login(ctx context.Context, username, password string) (*model.TokenResponse, error) {
	account, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.AuthFailure(err)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if err := s.hasher.Compare(account.PasswordHash, password); err != nil {
		return nil, apperr.AuthFailure(err)
	}

	token, err := s.tokens.Generate(account)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if s.auditor != nil {
		_ = s.auditor.Log(ctx, account.ID, model.AuditActionLogin, model.AuditEntityAccount, account.ID, nil)
	}

	return &model.TokenResponse{
		AccessToken: token,
		Role:        account.Role,
	}, nil
}
