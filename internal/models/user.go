package models

import (
	"time"

	"github.com/google/uuid"
)

// User captures application-facing fields for a registered account.
// PasswordHash is excluded from JSON responses.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
