package repository

import (
	"context"

	"farmastock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoriaRepository is read-only: the catalog is seeded at startup and the
// API exposes no write operations for it.
type CategoriaRepository interface {
	List(ctx context.Context) ([]model.Categoria, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Categoria, error)
	FindByNombre(ctx context.Context, nombre string) (*model.Categoria, error)
}

type categoriaRepo struct{ db *gorm.DB }

func NewCategoriaRepository(db *gorm.DB) CategoriaRepository {
	return &categoriaRepo{db: db}
}

func (r *categoriaRepo) List(ctx context.Context) ([]model.Categoria, error) {
	var list []model.Categoria
	err := r.db.WithContext(ctx).Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *categoriaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoriaRepo) FindByNombre(ctx context.Context, nombre string) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}
