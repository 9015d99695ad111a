package repository

import (
	"context"

	"farmastock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UsuarioRepository resolves the weak creator reference on products.
type UsuarioRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error)
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}
