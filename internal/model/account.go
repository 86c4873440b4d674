package model

import (
	"time"

	"github.com/google/uuid"
)

// Role determines which part of the system an account may use.
// Roles are fixed at creation; there is no role-change operation.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

type Account struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Actor is the authenticated identity performing a request. Handlers
// receive it through the request context instead of any ambient global.
type Actor struct {
	AccountID uuid.UUID `json:"account_id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
}
