package service

import (
	"context"
	"errors"

	"farmastock/internal/apierror"
	"farmastock/internal/dto"
	"farmastock/internal/model"
	"farmastock/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductoService defines the business logic contract for products.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest, creadorID *uuid.UUID) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	ListarPorCategoria(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	ListarBajoStock(ctx context.Context, minimo int, mostrarInactivos bool) ([]dto.ProductoListItem, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Activar(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
}

type productoService struct {
	repo          repository.ProductoRepository
	proveedorRepo repository.ProveedorRepository
	categoriaRepo repository.CategoriaRepository
	usuarioRepo   repository.UsuarioRepository
}

func NewProductoService(
	repo repository.ProductoRepository,
	proveedorRepo repository.ProveedorRepository,
	categoriaRepo repository.CategoriaRepository,
	usuarioRepo repository.UsuarioRepository,
) ProductoService {
	return &productoService{
		repo:          repo,
		proveedorRepo: proveedorRepo,
		categoriaRepo: categoriaRepo,
		usuarioRepo:   usuarioRepo,
	}
}

// ─── Mapping ─────────────────────────────────────────────────────────────────

func mapProducto(p *model.Producto) *dto.ProductoResponse {
	resp := &dto.ProductoResponse{
		ID:                 p.ID.String(),
		Codigo:             p.Codigo,
		Nombre:             p.Nombre,
		Descripcion:        p.Descripcion,
		Cantidad:           p.Cantidad,
		PrecioUnidad:       p.PrecioUnidad,
		ProveedorID:        p.ProveedorID.String(),
		CategoriaID:        p.CategoriaID.String(),
		Activo:             p.Activo,
		FechaCreacion:      p.FechaCreacion,
		FechaActualizacion: p.FechaActualizacion,
	}
	if p.Proveedor != nil {
		resp.ProveedorNombre = p.Proveedor.Nombre
	}
	if p.Categoria != nil {
		resp.CategoriaNombre = p.Categoria.NombreDisplay()
	}
	if p.UsuarioCreadorID != nil {
		id := p.UsuarioCreadorID.String()
		resp.UsuarioCreadorID = &id
	}
	if p.UsuarioCreador != nil {
		resp.UsuarioCreadorNombre = &p.UsuarioCreador.Username
	}
	return resp
}

func mapProductoItem(p model.Producto) dto.ProductoListItem {
	item := dto.ProductoListItem{
		ID:            p.ID.String(),
		Codigo:        p.Codigo,
		Nombre:        p.Nombre,
		Cantidad:      p.Cantidad,
		PrecioUnidad:  p.PrecioUnidad,
		Activo:        p.Activo,
		FechaCreacion: p.FechaCreacion,
	}
	if p.Proveedor != nil {
		item.ProveedorNombre = p.Proveedor.Nombre
	}
	if p.Categoria != nil {
		item.CategoriaNombre = p.Categoria.NombreDisplay()
	}
	return item
}

// ─── Validation ──────────────────────────────────────────────────────────────

func validarRangos(cantidad int, precio decimal.Decimal) error {
	fields := make(map[string]string)
	if cantidad < 0 {
		fields["cantidad"] = "La cantidad no puede ser negativa."
	}
	if !precio.IsPositive() {
		fields["precio_unidad"] = "El precio debe ser mayor a 0."
	}
	if len(fields) > 0 {
		return apierror.Validation(fields)
	}
	return nil
}

// validarCodigoUnico rejects a codigo another product already owns. The record
// being updated is exempt from its own current codigo.
func (s *productoService) validarCodigoUnico(ctx context.Context, codigo string, exceptoID *uuid.UUID) error {
	existing, err := s.repo.FindByCodigo(ctx, codigo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if exceptoID != nil && existing.ID == *exceptoID {
		return nil
	}
	return apierror.Duplicate("codigo", "Ya existe un producto con este código.")
}

func (s *productoService) resolverReferencias(ctx context.Context, proveedorID, categoriaID uuid.UUID) error {
	fields := make(map[string]string)
	if _, err := s.proveedorRepo.FindByID(ctx, proveedorID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		fields["proveedor_id"] = "El proveedor no existe."
	}
	if _, err := s.categoriaRepo.FindByID(ctx, categoriaID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		fields["categoria_id"] = "La categoría no existe."
	}
	if len(fields) > 0 {
		return apierror.Validation(fields)
	}
	return nil
}

func validarOrdenar(ordenar string) error {
	if ordenar == "" {
		return nil
	}
	col := ordenar
	if col[0] == '-' {
		col = col[1:]
	}
	switch col {
	case "nombre", "precio_unidad", "cantidad", "fecha_creacion":
		return nil
	}
	return apierror.BadRequest("Parámetro ordenar inválido: " + ordenar)
}

// ─── Operations ──────────────────────────────────────────────────────────────

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest, creadorID *uuid.UUID) (*dto.ProductoResponse, error) {
	if err := validarRangos(req.Cantidad, req.PrecioUnidad); err != nil {
		return nil, err
	}
	if err := s.validarCodigoUnico(ctx, req.Codigo, nil); err != nil {
		return nil, err
	}

	proveedorID, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		return nil, apierror.BadRequest("proveedor_id inválido")
	}
	categoriaID, err := uuid.Parse(req.CategoriaID)
	if err != nil {
		return nil, apierror.BadRequest("categoria_id inválido")
	}
	if err := s.resolverReferencias(ctx, proveedorID, categoriaID); err != nil {
		return nil, err
	}

	p := &model.Producto{
		Codigo:       req.Codigo,
		Nombre:       req.Nombre,
		Descripcion:  req.Descripcion,
		Cantidad:     req.Cantidad,
		PrecioUnidad: req.PrecioUnidad,
		ProveedorID:  proveedorID,
		CategoriaID:  categoriaID,
		Activo:       true,
	}

	// Weak reference: an unknown principal is stored as no creator, never an error.
	if creadorID != nil {
		if _, err := s.usuarioRepo.FindByID(ctx, *creadorID); err == nil {
			p.UsuarioCreadorID = creadorID
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, p); err != nil {
		// The unique index is the authoritative guard; a race loser gets the
		// same duplicate-key failure as the pre-check would have produced.
		if repository.IsUniqueViolation(err) {
			return nil, apierror.Duplicate("codigo", "Ya existe un producto con este código.")
		}
		return nil, err
	}
	return s.ObtenerPorID(ctx, p.ID)
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Producto no encontrado")
		}
		return nil, err
	}
	return mapProducto(p), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if err := validarOrdenar(filter.Ordenar); err != nil {
		return nil, err
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ProductoListItem, 0, len(productos))
	for _, p := range productos {
		items = append(items, mapProductoItem(p))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &dto.ProductoListResponse{
		Data:       items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *productoService) ListarPorCategoria(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Categoria == "" {
		return nil, apierror.BadRequest("Debe proporcionar el parámetro categoria")
	}
	return s.Listar(ctx, filter)
}

func (s *productoService) ListarBajoStock(ctx context.Context, minimo int, mostrarInactivos bool) ([]dto.ProductoListItem, error) {
	productos, err := s.repo.ListBajoStock(ctx, minimo, mostrarInactivos)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoListItem, 0, len(productos))
	for _, p := range productos {
		items = append(items, mapProductoItem(p))
	}
	return items, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Producto no encontrado")
		}
		return nil, err
	}

	if req.Codigo != nil && *req.Codigo != p.Codigo {
		if err := s.validarCodigoUnico(ctx, *req.Codigo, &id); err != nil {
			return nil, err
		}
		p.Codigo = *req.Codigo
	}
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = *req.Descripcion
	}
	if req.Cantidad != nil {
		p.Cantidad = *req.Cantidad
	}
	if req.PrecioUnidad != nil {
		p.PrecioUnidad = *req.PrecioUnidad
	}

	proveedorID := p.ProveedorID
	if req.ProveedorID != nil {
		proveedorID, err = uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, apierror.BadRequest("proveedor_id inválido")
		}
	}
	categoriaID := p.CategoriaID
	if req.CategoriaID != nil {
		categoriaID, err = uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, apierror.BadRequest("categoria_id inválido")
		}
	}
	if proveedorID != p.ProveedorID || categoriaID != p.CategoriaID {
		if err := s.resolverReferencias(ctx, proveedorID, categoriaID); err != nil {
			return nil, err
		}
		p.ProveedorID = proveedorID
		p.CategoriaID = categoriaID
		p.Proveedor = nil
		p.Categoria = nil
	}

	if err := validarRangos(p.Cantidad, p.PrecioUnidad); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apierror.Duplicate("codigo", "Ya existe un producto con este código.")
		}
		return nil, err
	}
	return s.ObtenerPorID(ctx, id)
}

// Desactivar is the logical deletion: the row persists with Activo=false.
// Flipping an already-inactive product succeeds silently.
func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	return s.setActivo(ctx, id, false)
}

// Activar restores a logically deleted product. Idempotent.
func (s *productoService) Activar(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	return s.setActivo(ctx, id, true)
}

func (s *productoService) setActivo(ctx context.Context, id uuid.UUID, activo bool) (*dto.ProductoResponse, error) {
	rows, err := s.repo.SetActivo(ctx, id, activo)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apierror.NotFound("Producto no encontrado")
	}
	return s.ObtenerPorID(ctx, id)
}
