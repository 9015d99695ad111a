package service

import (
	"context"
	"errors"

	"farmastock/internal/apierror"
	"farmastock/internal/dto"
	"farmastock/internal/model"
	"farmastock/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProveedorService interface {
	Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error)
	Listar(ctx context.Context, filter dto.ProveedorFilter) ([]dto.ProveedorResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type proveedorService struct {
	repo         repository.ProveedorRepository
	productoRepo repository.ProductoRepository
}

func NewProveedorService(repo repository.ProveedorRepository, productoRepo repository.ProductoRepository) ProveedorService {
	return &proveedorService{repo: repo, productoRepo: productoRepo}
}

func mapProveedor(p *model.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:            p.ID.String(),
		Nombre:        p.Nombre,
		Telefono:      p.Telefono,
		Email:         p.Email,
		Direccion:     p.Direccion,
		FechaCreacion: p.FechaCreacion,
	}
}

// validarEmailUnico applies the same self-exempt rule as product codes.
func (s *proveedorService) validarEmailUnico(ctx context.Context, email string, exceptoID *uuid.UUID) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if exceptoID != nil && existing.ID == *exceptoID {
		return nil
	}
	return apierror.Duplicate("email", "Ya existe un proveedor con este email.")
}

func (s *proveedorService) Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	if err := s.validarEmailUnico(ctx, req.Email, nil); err != nil {
		return nil, err
	}

	p := &model.Proveedor{
		Nombre:    req.Nombre,
		Telefono:  req.Telefono,
		Email:     req.Email,
		Direccion: req.Direccion,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apierror.Duplicate("email", "Ya existe un proveedor con este email.")
		}
		return nil, err
	}
	return mapProveedor(p), nil
}

func (s *proveedorService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Proveedor no encontrado")
		}
		return nil, err
	}
	return mapProveedor(p), nil
}

func (s *proveedorService) Listar(ctx context.Context, filter dto.ProveedorFilter) ([]dto.ProveedorResponse, error) {
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ProveedorResponse, 0, len(list))
	for i := range list {
		result = append(result, *mapProveedor(&list[i]))
	}
	return result, nil
}

func (s *proveedorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Proveedor no encontrado")
		}
		return nil, err
	}

	if req.Email != nil && *req.Email != p.Email {
		if err := s.validarEmailUnico(ctx, *req.Email, &id); err != nil {
			return nil, err
		}
		p.Email = *req.Email
	}
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Telefono != nil {
		p.Telefono = *req.Telefono
	}
	if req.Direccion != nil {
		p.Direccion = *req.Direccion
	}

	if err := s.repo.Update(ctx, p); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apierror.Duplicate("email", "Ya existe un proveedor con este email.")
		}
		return nil, err
	}
	return mapProveedor(p), nil
}

// Eliminar refuses to remove a supplier while products reference it. The count
// is a friendly pre-check; the FK RESTRICT constraint is the final arbiter.
func (s *proveedorService) Eliminar(ctx context.Context, id uuid.UUID) error {
	n, err := s.productoRepo.CountByProveedor(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apierror.Conflict("El proveedor tiene productos asociados y no puede eliminarse.")
	}

	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return apierror.Conflict("El proveedor tiene productos asociados y no puede eliminarse.")
		}
		return err
	}
	if rows == 0 {
		return apierror.NotFound("Proveedor no encontrado")
	}
	return nil
}
