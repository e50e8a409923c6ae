package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	RoleAdmin = "admin"
	RoleAgent = "agent"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
