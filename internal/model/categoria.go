package model

import (
	"github.com/google/uuid"
)

// Category codes form a closed set; rows are seeded at startup and the API
// never creates, updates, or deletes them.
const (
	CategoriaAnalgesicos       = "ANALGESICOS"
	CategoriaAntibioticos      = "ANTIBIOTICOS"
	CategoriaAntigripales      = "ANTIGRIPALES"
	CategoriaVitaminas         = "VITAMINAS"
	CategoriaAntiinflamatorios = "ANTIINFLAMATORIOS"
	CategoriaAntialergicos     = "ANTIALERGICOS"
)

// nombresDisplay maps each category code to its human-readable label.
var nombresDisplay = map[string]string{
	CategoriaAnalgesicos:       "Analgésicos",
	CategoriaAntibioticos:      "Antibióticos",
	CategoriaAntigripales:      "Antigripales",
	CategoriaVitaminas:         "Vitaminas",
	CategoriaAntiinflamatorios: "Antiinflamatorios",
	CategoriaAntialergicos:     "Antialérgicos",
}

// NombresCategoria returns every valid category code, in seed order.
func NombresCategoria() []string {
	return []string{
		CategoriaAnalgesicos,
		CategoriaAntibioticos,
		CategoriaAntigripales,
		CategoriaVitaminas,
		CategoriaAntiinflamatorios,
		CategoriaAntialergicos,
	}
}

// CategoriaValida reports whether nombre belongs to the closed category set.
func CategoriaValida(nombre string) bool {
	_, ok := nombresDisplay[nombre]
	return ok
}

// Categoria classifies products. Nombre is one of the fixed codes above.
type Categoria struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"uniqueIndex;not null"`

	Productos []Producto `gorm:"foreignKey:CategoriaID"`
}

// TableName overrides GORM's default singular → plural logic for Spanish names.
func (Categoria) TableName() string { return "categorias" }

// NombreDisplay returns the display label for the category code,
// or the raw code when it is not in the map.
func (c Categoria) NombreDisplay() string {
	if d, ok := nombresDisplay[c.Nombre]; ok {
		return d
	}
	return c.Nombre
}
