package repository

import (
	"context"

	"farmastock/internal/dto"
	"farmastock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProveedorRepository interface {
	Create(ctx context.Context, p *model.Proveedor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error)
	FindByEmail(ctx context.Context, email string) (*model.Proveedor, error)
	List(ctx context.Context, filter dto.ProveedorFilter) ([]model.Proveedor, error)
	Update(ctx context.Context, p *model.Proveedor) error

	// Delete is a hard delete; the FK RESTRICT constraint rejects it while
	// any product references the supplier. Returns rows affected.
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type proveedorRepo struct{ db *gorm.DB }

func NewProveedorRepository(db *gorm.DB) ProveedorRepository { return &proveedorRepo{db: db} }

func (r *proveedorRepo) Create(ctx context.Context, p *model.Proveedor) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *proveedorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error) {
	var p model.Proveedor
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *proveedorRepo) FindByEmail(ctx context.Context, email string) (*model.Proveedor, error) {
	var p model.Proveedor
	err := r.db.WithContext(ctx).Where("lower(email) = lower(?)", email).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *proveedorRepo) List(ctx context.Context, filter dto.ProveedorFilter) ([]model.Proveedor, error) {
	var proveedores []model.Proveedor
	q := r.db.WithContext(ctx).Model(&model.Proveedor{})
	if filter.Busqueda != "" {
		pat := "%" + filter.Busqueda + "%"
		q = q.Where("(nombre ILIKE ? OR email ILIKE ? OR telefono ILIKE ?)", pat, pat, pat)
	}
	err := q.Order(ordenarProveedorSQL(filter.Ordenar)).Find(&proveedores).Error
	return proveedores, err
}

func ordenarProveedorSQL(ordenar string) string {
	dir := "ASC"
	col := ordenar
	if len(col) > 0 && col[0] == '-' {
		dir = "DESC"
		col = col[1:]
	}
	switch col {
	case "nombre", "fecha_creacion":
		return col + " " + dir
	default:
		return "nombre ASC"
	}
}

func (r *proveedorRepo) Update(ctx context.Context, p *model.Proveedor) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *proveedorRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Proveedor{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
