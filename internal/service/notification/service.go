package notification

import (
	"context"
	"fmt"

	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/email"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/model"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/repository"
)

// Service sends best-effort mail on appointment lifecycle transitions.
// Failures are reported to the caller but must never block the
// underlying booking, cancellation, or completion.
type Service interface {
	AppointmentBooked(ctx context.Context, apt *model.Appointment, doctor *model.Doctor, patient *model.Patient) error
	AppointmentCancelled(ctx context.Context, apt *model.Appointment, patient *model.Patient) error
	AppointmentCompleted(ctx context.Context, apt *model.Appointment, patient *model.Patient) error
}

type service struct {
	accounts repository.AccountRepository
	sender   email.Sender
}

func NewService(accounts repository.AccountRepository, sender email.Sender) Service {
	return &service{accounts: accounts, sender: sender}
}

func (s *service) AppointmentBooked(ctx context.Context, apt *model.Appointment, doctor *model.Doctor, patient *model.Patient) error {
	to, err := s.patientEmail(ctx, patient)
	if err != nil {
		return err
	}
	body := fmt.Sprintf(
		"Dear %s,\n\nYour appointment with Dr. %s on %s at %s has been booked.\n",
		patient.Name, doctor.Name, apt.Date.Format("2006-01-02"), apt.Time,
	)
	return s.sender.Send(ctx, to, "Appointment booked", body)
}

func (s *service) AppointmentCancelled(ctx context.Context, apt *model.Appointment, patient *model.Patient) error {
	to, err := s.patientEmail(ctx, patient)
	if err != nil {
		return err
	}
	body := fmt.Sprintf(
		"Dear %s,\n\nYour appointment on %s at %s has been cancelled.\n",
		patient.Name, apt.Date.Format("2006-01-02"), apt.Time,
	)
	return s.sender.Send(ctx, to, "Appointment cancelled", body)
}

func (s *service) AppointmentCompleted(ctx context.Context, apt *model.Appointment, patient *model.Patient) error {
	to, err := s.patientEmail(ctx, patient)
	if err != nil {
		return err
	}
	body := fmt.Sprintf(
		"Dear %s,\n\nYour appointment on %s at %s has been completed. Your treatment record is available.\n",
		patient.Name, apt.Date.Format("2006-01-02"), apt.Time,
	)
	return s.sender.Send(ctx, to, "Appointment completed", body)
}

func (s *service) patientEmail(ctx context.Context, patient *model.Patient) (string, error) {
	account, err := s.accounts.Get(ctx, patient.AccountID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve patient account: %w", err)
	}
	return account.Email, nil
}
