package model

import (
	"time"

	"github.com/google/uuid"
)

type Doctor struct {
	ID             uuid.UUID `json:"id" db:"id"`
	AccountID      uuid.UUID `json:"account_id" db:"account_id"`
	Name           string    `json:"name" db:"name"`
	Specialization string    `json:"specialization" db:"specialization"`
	Availability   string    `json:"availability" db:"availability"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

type CreateDoctorRequest struct {
	Username       string `json:"username" binding:"required"`
	Email          string `json:"email" binding:"omitempty,email"`
	Password       string `json:"password"`
	Name           string `json:"name" binding:"required"`
	Specialization string `json:"specialization" binding:"required"`
	Availability   string `json:"availability"`
}

type UpdateDoctorRequest struct {
	Name           string `json:"name" binding:"required"`
	Specialization string `json:"specialization" binding:"required"`
	Availability   string `json:"availability"`
}
