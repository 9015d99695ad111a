package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is an inventory record. Rows are never physically deleted:
// Activo=false is the only form of deletion, and FechaCreacion is written
// exactly once while FechaActualizacion advances on every persisted write.
type Producto struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo       string          `gorm:"uniqueIndex;not null"`
	Nombre       string          `gorm:"index;not null"`
	Descripcion  string          `gorm:"not null"`
	Cantidad     int             `gorm:"not null;default:0"`
	PrecioUnidad decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	// Weak reference: removing the user nulls the column, never the product.
	UsuarioCreadorID *uuid.UUID `gorm:"type:uuid;index"`
	ProveedorID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	CategoriaID      uuid.UUID  `gorm:"type:uuid;not null;index"`

	Activo             bool      `gorm:"not null;default:true;index"`
	FechaCreacion      time.Time `gorm:"autoCreateTime"`
	FechaActualizacion time.Time `gorm:"autoUpdateTime"`

	UsuarioCreador *Usuario   `gorm:"foreignKey:UsuarioCreadorID;constraint:OnDelete:SET NULL"`
	Proveedor      *Proveedor `gorm:"foreignKey:ProveedorID;constraint:OnDelete:RESTRICT"`
	Categoria      *Categoria `gorm:"foreignKey:CategoriaID;constraint:OnDelete:RESTRICT"`
}

func (Producto) TableName() string { return "productos" }
