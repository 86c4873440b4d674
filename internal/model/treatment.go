package model

import (
	"time"

	"github.com/google/uuid"
)

// Treatment is the encounter record attached 1:1 to a completed
// appointment. Completing the same appointment again updates the
// existing row rather than creating a second one.
type Treatment struct {
	ID            uuid.UUID `json:"id" db:"id"`
	AppointmentID uuid.UUID `json:"appointment_id" db:"appointment_id"`
	Diagnosis     string    `json:"diagnosis" db:"diagnosis"`
	Prescription  string    `json:"prescription" db:"prescription"`
	Notes         string    `json:"notes" db:"notes"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
