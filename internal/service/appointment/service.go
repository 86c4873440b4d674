package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/model"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/repository"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/service/audit"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/service/event"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/service/notification"
	apperr "github.com/AnshVerma23f3001159/MAD-1-HMS/pkg/errors"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/pkg/logger"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/pkg/metrics"
)

// Service is the scheduling ledger: it arbitrates slot conflicts and
// drives the Booked -> Completed/Cancelled lifecycle.
type Service struct {
	repo          repository.AppointmentRepository
	doctorRepo    repository.DoctorRepository
	patientRepo   repository.PatientRepository
	treatmentRepo repository.TreatmentRepository
	events        *event.Service
	notifier      notification.Service
	auditor       *audit.Service
	logger        *logger.Logger
	metrics       *metrics.Metrics
}

func NewService(
	repo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	treatmentRepo repository.TreatmentRepository,
	events *event.Service,
	notifier notification.Service,
	auditor *audit.Service,
	log *logger.Logger,
) *Service {
	if log == nil {
		log = logger.NewLogger(nil)
	}
	return &Service{
		repo:          repo,
		doctorRepo:    doctorRepo,
		patientRepo:   patientRepo,
		treatmentRepo: treatmentRepo,
		events:        events,
		notifier:      notifier,
		auditor:       auditor,
		logger:        log,
	}
}

// WithMetrics attaches scheduling counters. Optional; the service works
// without them.
func (s *Service) WithMetrics(m *metrics.Metrics) *Service {
	s.metrics = m
	return s
}

// Book creates a Booked appointment for the (doctor, date, time) slot.
// The time label is stored exactly as supplied; it is not validated or
// checked against the doctor's availability text.
//
// The conflict probe and the insert are two separate statements, not a
// serialized transaction: two concurrent bookings for the same slot can
// both pass the probe. This matches the source system's behavior.
func (s *Service) Book(ctx context.Context, doctorID, patientID uuid.UUID, date time.Time, timeLabel string) (*model.Appointment, error) {
	doctor, err := s.doctorRepo.Get(ctx, doctorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("doctor", err)
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	patient, err := s.patientRepo.Get(ctx, patientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("patient", err)
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	taken, err := s.repo.ExistsBooked(ctx, doctorID, date, timeLabel)
	if err != nil {
		return nil, fmt.Errorf("failed to check slot: %w", err)
	}
	if taken {
		if s.metrics != nil {
			s.metrics.SlotConflicts.Inc()
		}
		return nil, apperr.SlotConflict()
	}

	apt := &model.Appointment{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      date,
		Time:      timeLabel,
		Status:    model.AppointmentStatusBooked,
	}
	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	if s.metrics != nil {
		s.metrics.AppointmentsBooked.Inc()
	}

	s.emit(ctx, model.EventAppointmentBooked, apt)
	if s.notifier != nil {
		if err := s.notifier.AppointmentBooked(ctx, apt, doctor, patient); err != nil {
			s.logger.Error(err, "booking notification failed")
		}
	}
	s.auditLog(ctx, patient.AccountID, model.AuditActionBook, apt.ID, map[string]interface{}{
		"doctor_id": doctorID,
		"date":      date.Format("2006-01-02"),
		"time":      timeLabel,
	})

	return apt, nil
}

// Cancel sets the appointment to Cancelled unconditionally: there is no
// guard on the current status, so a Completed appointment can be
// cancelled and repeated calls land on the same state.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, actor *model.Actor) (*model.Appointment, error) {
	apt, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, model.AppointmentStatusCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel appointment: %w", err)
	}
	apt.Status = model.AppointmentStatusCancelled

	s.emit(ctx, model.EventAppointmentCancelled, apt)
	if s.notifier != nil {
		if patient, perr := s.patientRepo.Get(ctx, apt.PatientID); perr == nil {
			if err := s.notifier.AppointmentCancelled(ctx, apt, patient); err != nil {
				s.logger.Error(err, "cancellation notification failed")
			}
		}
	}
	if actor != nil {
		s.auditLog(ctx, actor.AccountID, model.AuditActionCancel, apt.ID, nil)
	}

	return apt, nil
}

// Complete marks the appointment Completed and upserts its treatment
// record: the first completion creates the row, later completions
// overwrite the same row's fields. No guard on the prior status.
func (s *Service) Complete(ctx context.Context, id uuid.UUID, req *model.CompleteAppointmentRequest, actor *model.Actor) (*model.Treatment, error) {
	apt, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, model.AppointmentStatusCompleted); err != nil {
		return nil, fmt.Errorf("failed to complete appointment: %w", err)
	}
	apt.Status = model.AppointmentStatusCompleted

	treatment, err := s.treatmentRepo.GetByAppointment(ctx, id)
	switch {
	case err == nil:
		treatment.Diagnosis = req.Diagnosis
		treatment.Prescription = req.Prescription
		treatment.Notes = req.Notes
		if err := s.treatmentRepo.Update(ctx, treatment); err != nil {
			return nil, fmt.Errorf("failed to update treatment: %w", err)
		}
	case errors.Is(err, sql.ErrNoRows):
		treatment = &model.Treatment{
			AppointmentID: id,
			Diagnosis:     req.Diagnosis,
			Prescription:  req.Prescription,
			Notes:         req.Notes,
		}
		if err := s.treatmentRepo.Create(ctx, treatment); err != nil {
			return nil, fmt.Errorf("failed to create treatment: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to get treatment: %w", err)
	}

	s.emit(ctx, model.EventAppointmentCompleted, apt)
	if s.notifier != nil {
		if patient, perr := s.patientRepo.Get(ctx, apt.PatientID); perr == nil {
			if err := s.notifier.AppointmentCompleted(ctx, apt, patient); err != nil {
				s.logger.Error(err, "completion notification failed")
			}
		}
	}
	if actor != nil {
		s.auditLog(ctx, actor.AccountID, model.AuditActionUpdate, apt.ID, map[string]interface{}{
			"status": apt.Status,
		})
	}

	return treatment, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.get(ctx, id)
}

func (s *Service) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	appointments, err := s.repo.ListForDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctor appointments: %w", err)
	}
	return appointments, nil
}

func (s *Service) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	appointments, err := s.repo.ListForPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient appointments: %w", err)
	}
	return appointments, nil
}

func (s *Service) History(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	appointments, err := s.repo.ListHistory(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointment history: %w", err)
	}
	return appointments, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return apt, nil
}

func (s *Service) emit(ctx context.Context, eventType string, apt *model.Appointment) {
	if s.events == nil {
		return
	}
	if err := s.events.Emit(ctx, eventType, apt); err != nil {
		s.logger.Error(err, "failed to emit event", "event_type", eventType)
	}
}

func (s *Service) auditLog(ctx context.Context, accountID uuid.UUID, action string, entityID uuid.UUID, metadata map[string]interface{}) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Log(ctx, accountID, action, model.AuditEntityAppointment, entityID, metadata); err != nil {
		s.logger.Error(err, "failed to write audit log")
	}
}
