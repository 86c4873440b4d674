package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/model"
)

// All repository interfaces in one file
type (
	// AccountRepository handles identity records
	AccountRepository interface {
		Create(ctx context.Context, account *model.Account) error
		Get(ctx context.Context, id uuid.UUID) (*model.Account, error)
		GetByUsername(ctx context.Context, username string) (*model.Account, error)
		Delete(ctx context.Context, id uuid.UUID) error
		HasAdmin(ctx context.Context) (bool, error)
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		GetByAccount(ctx context.Context, accountID uuid.UUID) (*model.Doctor, error)
		Update(ctx context.Context, doctor *model.Doctor) error
		// DeleteWithAccount removes the doctor profile and its linked
		// account in one transaction.
		DeleteWithAccount(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Doctor, error)
		Count(ctx context.Context) (int, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		GetByAccount(ctx context.Context, accountID uuid.UUID) (*model.Patient, error)
		Count(ctx context.Context) (int, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error
		// ExistsBooked reports whether a Booked appointment already
		// occupies the (doctor, date, time) slot.
		ExistsBooked(ctx context.Context, doctorID uuid.UUID, date time.Time, timeLabel string) (bool, error)
		ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error)
		ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error)
		ListHistory(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error)
		Count(ctx context.Context) (int, error)
	}

	TreatmentRepository interface {
		Create(ctx context.Context, treatment *model.Treatment) error
		Update(ctx context.Context, treatment *model.Treatment) error
		GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*model.Treatment, error)
	}

	AuditRepository interface {
		Create(ctx context.Context, log *model.AuditLog) error
		ListForAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]*model.AuditLog, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
