package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

// Status values match the source system's capitalized labels.
const (
	AppointmentStatusBooked    AppointmentStatus = "Booked"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

// Appointment links a patient and a doctor to a slot. Date carries no
// time-zone semantics; Time is an opaque label supplied by the caller
// and is never validated or normalized.
type Appointment struct {
	ID        uuid.UUID         `json:"id" db:"id"`
	PatientID uuid.UUID         `json:"patient_id" db:"patient_id"`
	DoctorID  uuid.UUID         `json:"doctor_id" db:"doctor_id"`
	Date      time.Time         `json:"date" db:"date"`
	Time      string            `json:"time" db:"time"`
	Status    AppointmentStatus `json:"status" db:"status"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" db:"updated_at"`
}

type BookAppointmentRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

type CompleteAppointmentRequest struct {
	Diagnosis    string `json:"diagnosis"`
	Prescription string `json:"prescription"`
	Notes        string `json:"notes"`
}

// AdminDashboard aggregates the counts shown on the admin landing page.
type AdminDashboard struct {
	TotalDoctors      int       `json:"total_doctors"`
	TotalPatients     int       `json:"total_patients"`
	TotalAppointments int       `json:"total_appointments"`
	Doctors           []*Doctor `json:"doctors"`
}
