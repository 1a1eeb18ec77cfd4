package models

import (
	"time"

	"github.com/google/uuid"
)

type Player struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Points       int        `json:"points"`
	Streak       int        `json:"streak"`
	LastActive   *time.Time `json:"last_active"`
	CreatedAt    time.Time  `json:"created_at"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
