package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/model"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/pkg/security"
)

// schema is applied on startup so a fresh database is usable without a
// separate migration step. The appointments table deliberately carries
// no uniqueness constraint on (doctor_id, date, time): slot conflicts
// are arbitrated at write time by the scheduling service.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS doctors (
		id UUID PRIMARY KEY,
		account_id UUID NOT NULL REFERENCES accounts(id),
		name TEXT NOT NULL,
		specialization TEXT NOT NULL DEFAULT '',
		availability TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS patients (
		id UUID PRIMARY KEY,
		account_id UUID NOT NULL REFERENCES accounts(id),
		name TEXT NOT NULL,
		contact TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id UUID PRIMARY KEY,
		patient_id UUID NOT NULL REFERENCES patients(id),
		doctor_id UUID NOT NULL REFERENCES doctors(id),
		date DATE NOT NULL,
		time TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Booked',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS treatments (
		id UUID PRIMARY KEY,
		appointment_id UUID REFERENCES appointments(id),
		diagnosis TEXT NOT NULL DEFAULT '',
		prescription TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS audit_logs (
		id UUID PRIMARY KEY,
		account_id UUID NOT NULL,
		action TEXT NOT NULL,
		entity_type TEXT NOT NULL,
		entity_id UUID NOT NULL,
		metadata JSONB,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS outbox_events (
		id UUID PRIMARY KEY,
		event_type TEXT NOT NULL,
		payload JSONB NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		error TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_slot
		ON appointments (doctor_id, date, time)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_events_status
		ON outbox_events (status, created_at)`,
}

func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// EnsureDefaultAdmin seeds the default admin account when no admin
// exists yet, mirroring the source system's first-run behavior.
func EnsureDefaultAdmin(ctx context.Context, db *sqlx.DB, hasher security.PasswordHasher) error {
	var exists bool
	err := db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE role = $1)`, model.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to check for admin account: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := hasher.Hash("admin123")
	if err != nil {
		return fmt.Errorf("failed to hash default admin password: %w", err)
	}

	now := time.Now()
	_, err = db.ExecContext(ctx, `
		INSERT INTO accounts (id, username, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, uuid.New(), "admin", "admin@hospital.com", hash, model.RoleAdmin, now, now)
	if err != nil {
		return fmt.Errorf("failed to seed default admin: %w", err)
	}
	return nil
}
