package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/model"
)

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (
			id, account_id, name, specialization, availability,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	doctor.ID = uuid.New()
	doctor.CreatedAt = time.Now()
	doctor.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		doctor.ID,
		doctor.AccountID,
		doctor.Name,
		doctor.Specialization,
		doctor.Availability,
		doctor.CreatedAt,
		doctor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	query := `
		SELECT id, account_id, name, specialization, availability, created_at, updated_at
		FROM doctors
		WHERE id = $1
	`
	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, id); err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByAccount(ctx context.Context, accountID uuid.UUID) (*model.Doctor, error) {
	query := `
		SELECT id, account_id, name, specialization, availability, created_at, updated_at
		FROM doctors
		WHERE account_id = $1
	`
	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, accountID); err != nil {
		return nil, fmt.Errorf("failed to get doctor by account: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	query := `
		UPDATE doctors
		SET name = $1, specialization = $2, availability = $3, updated_at = $4
		WHERE id = $5
	`
	doctor.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		doctor.Name,
		doctor.Specialization,
		doctor.Availability,
		doctor.UpdatedAt,
		doctor.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("doctor not found")
	}
	return nil
}

// DeleteWithAccount removes the doctor profile and its linked account as
// one transaction so a half-deleted pair can never be observed.
func (r *doctorRepository) DeleteWithAccount(ctx context.Context, id uuid.UUID) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var accountID uuid.UUID
		if err := tx.GetContext(ctx, &accountID,
			`SELECT account_id FROM doctors WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to get doctor account: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM doctors WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete doctor: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM accounts WHERE id = $1`, accountID); err != nil {
			return fmt.Errorf("failed to delete doctor account: %w", err)
		}
		return nil
	})
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	query := `
		SELECT id, account_id, name, specialization, availability, created_at, updated_at
		FROM doctors
		ORDER BY name ASC
	`
	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM doctors`); err != nil {
		return 0, fmt.Errorf("failed to count doctors: %w", err)
	}
	return count, nil
}
