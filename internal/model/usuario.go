package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario is the owner of the weak creator reference on products.
// Identity (login, tokens) is handled outside this service; rows exist so
// product views can resolve the creator's username.
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	Activo       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
