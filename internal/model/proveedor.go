package model

import (
	"time"

	"github.com/google/uuid"
)

// Proveedor represents a pharmacy supplier.
type Proveedor struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre        string    `gorm:"index;not null"`
	Telefono      string    `gorm:"not null"`
	Email         string    `gorm:"uniqueIndex;not null"`
	Direccion     string    `gorm:"not null"`
	FechaCreacion time.Time `gorm:"autoCreateTime"`

	// Products keep the supplier alive: the FK is RESTRICT, so deleting a
	// referenced supplier fails at the constraint level.
	Productos []Producto `gorm:"foreignKey:ProveedorID"`
}

func (Proveedor) TableName() string { return "proveedores" }
