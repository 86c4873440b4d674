package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/model"
)

func (r *treatmentRepository) Create(ctx context.Context, treatment *model.Treatment) error {
	query := `
		INSERT INTO treatments (
			id, appointment_id, diagnosis, prescription, notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	treatment.ID = uuid.New()
	treatment.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		treatment.ID,
		treatment.AppointmentID,
		treatment.Diagnosis,
		treatment.Prescription,
		treatment.Notes,
		treatment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create treatment: %w", err)
	}
	return nil
}

func (r *treatmentRepository) Update(ctx context.Context, treatment *model.Treatment) error {
	query := `
		UPDATE treatments
		SET diagnosis = $1, prescription = $2, notes = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query,
		treatment.Diagnosis,
		treatment.Prescription,
		treatment.Notes,
		treatment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update treatment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("treatment not found")
	}
	return nil
}

func (r *treatmentRepository) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*model.Treatment, error) {
	query := `
		SELECT id, appointment_id, diagnosis, prescription, notes, created_at
		FROM treatments
		WHERE appointment_id = $1
	`
	var treatment model.Treatment
	if err := r.db.GetContext(ctx, &treatment, query, appointmentID); err != nil {
		return nil, fmt.Errorf("failed to get treatment: %w", err)
	}
	return &treatment, nil
}
