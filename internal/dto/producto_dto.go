package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Codigo       string          `json:"codigo"        validate:"required,min=1,max=50"`
	Nombre       string          `json:"nombre"        validate:"required,min=2,max=200"`
	Descripcion  string          `json:"descripcion"   validate:"required"`
	Cantidad     int             `json:"cantidad"`
	PrecioUnidad decimal.Decimal `json:"precio_unidad" validate:"required"`
	ProveedorID  string          `json:"proveedor_id"  validate:"required,uuid"`
	CategoriaID  string          `json:"categoria_id"  validate:"required,uuid"`
}

type ActualizarProductoRequest struct {
	Codigo       *string          `json:"codigo"        validate:"omitempty,min=1,max=50"`
	Nombre       *string          `json:"nombre"        validate:"omitempty,min=2,max=200"`
	Descripcion  *string          `json:"descripcion"`
	Cantidad     *int             `json:"cantidad"`
	PrecioUnidad *decimal.Decimal `json:"precio_unidad"`
	ProveedorID  *string          `json:"proveedor_id"  validate:"omitempty,uuid"`
	CategoriaID  *string          `json:"categoria_id"  validate:"omitempty,uuid"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

// ProductoFilter carries the query parameters of GET /v1/productos.
// Activo accepts "true"/"false"; when empty, inactive rows are hidden unless
// MostrarInactivos is set.
type ProductoFilter struct {
	Categoria        string `form:"categoria"`
	ProveedorID      string `form:"proveedor"          validate:"omitempty,uuid"`
	Activo           string `form:"activo"             validate:"omitempty,oneof=true false"`
	Busqueda         string `form:"busqueda"`
	Ordenar          string `form:"ordenar"`
	MostrarInactivos bool   `form:"mostrar_inactivos"`
	Page             int    `form:"page,default=1"     validate:"min=1"`
	Limit            int    `form:"limit,default=20"   validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ProductoResponse is the detail view: every column plus the denormalized
// supplier name, category display label, and creator username, all resolved
// from the live referenced rows at read time.
type ProductoResponse struct {
	ID                   string          `json:"id"`
	Codigo               string          `json:"codigo"`
	Nombre               string          `json:"nombre"`
	Descripcion          string          `json:"descripcion"`
	Cantidad             int             `json:"cantidad"`
	PrecioUnidad         decimal.Decimal `json:"precio_unidad"`
	ProveedorID          string          `json:"proveedor_id"`
	ProveedorNombre      string          `json:"proveedor_nombre"`
	CategoriaID          string          `json:"categoria_id"`
	CategoriaNombre      string          `json:"categoria_nombre"`
	UsuarioCreadorID     *string         `json:"usuario_creador_id"`
	UsuarioCreadorNombre *string         `json:"usuario_creador_nombre"`
	Activo               bool            `json:"activo"`
	FechaCreacion        time.Time       `json:"fecha_creacion"`
	FechaActualizacion   time.Time       `json:"fecha_actualizacion"`
}

// ProductoListItem is the reduced view used for bulk listings: descriptions
// and audit fields are left out.
type ProductoListItem struct {
	ID              string          `json:"id"`
	Codigo          string          `json:"codigo"`
	Nombre          string          `json:"nombre"`
	Cantidad        int             `json:"cantidad"`
	PrecioUnidad    decimal.Decimal `json:"precio_unidad"`
	ProveedorNombre string          `json:"proveedor_nombre"`
	CategoriaNombre string          `json:"categoria_nombre"`
	Activo          bool            `json:"activo"`
	FechaCreacion   time.Time       `json:"fecha_creacion"`
}

type ProductoListResponse struct {
	Data       []ProductoListItem `json:"data"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}
