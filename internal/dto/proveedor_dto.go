package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProveedorRequest struct {
	Nombre    string `json:"nombre"    validate:"required,min=2,max=200"`
	Telefono  string `json:"telefono"  validate:"required,max=20"`
	Email     string `json:"email"     validate:"required,email"`
	Direccion string `json:"direccion" validate:"required"`
}

type ActualizarProveedorRequest struct {
	Nombre    *string `json:"nombre"    validate:"omitempty,min=2,max=200"`
	Telefono  *string `json:"telefono"  validate:"omitempty,max=20"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Direccion *string `json:"direccion"`
}

// ProveedorFilter carries the query parameters of GET /v1/proveedores.
type ProveedorFilter struct {
	Busqueda string `form:"busqueda"`
	Ordenar  string `form:"ordenar"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProveedorResponse struct {
	ID            string    `json:"id"`
	Nombre        string    `json:"nombre"`
	Telefono      string    `json:"telefono"`
	Email         string    `json:"email"`
	Direccion     string    `json:"direccion"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}
