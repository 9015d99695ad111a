package repository

import (
	"context"

	"farmastock/internal/dto"
	"farmastock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error)
	ListBajoStock(ctx context.Context, minimo int, mostrarInactivos bool) ([]model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error

	// SetActivo flips the lifecycle flag and returns the number of rows
	// matched, so callers can distinguish NotFound from a no-op flip.
	SetActivo(ctx context.Context, id uuid.UUID, activo bool) (int64, error)

	CountByProveedor(ctx context.Context, proveedorID uuid.UUID) (int64, error)
	CountByCategoria(ctx context.Context, categoriaID uuid.UUID) (int64, error)
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).
		Preload("Proveedor").
		Preload("Categoria").
		Preload("UsuarioCreador").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Where("codigo = ?", codigo).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var productos []model.Producto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Producto{})

	// Default view hides inactive rows; an explicit activo filter or
	// mostrar_inactivos=true widens it.
	switch {
	case filter.Activo != "":
		q = q.Where("productos.activo = ?", filter.Activo == "true")
	case !filter.MostrarInactivos:
		q = q.Where("productos.activo = true")
	}

	if filter.Categoria != "" {
		q = q.Joins("JOIN categorias ON categorias.id = productos.categoria_id").
			Where("categorias.nombre = ?", filter.Categoria)
	}
	if filter.ProveedorID != "" {
		q = q.Where("productos.proveedor_id = ?", filter.ProveedorID)
	}
	if filter.Busqueda != "" {
		pat := "%" + filter.Busqueda + "%"
		q = q.Where("(productos.codigo ILIKE ? OR productos.nombre ILIKE ? OR productos.descripcion ILIKE ?)", pat, pat, pat)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order(ordenarSQL(filter.Ordenar)).
		Limit(filter.Limit).
		Offset(offset).
		Preload("Proveedor").
		Preload("Categoria").
		Find(&productos).Error
	return productos, total, err
}

// ordenarSQL maps a whitelisted ordering key (optionally "-"-prefixed for
// descending) to an ORDER BY clause. Callers validate the key beforehand.
func ordenarSQL(ordenar string) string {
	dir := "ASC"
	col := ordenar
	if len(col) > 0 && col[0] == '-' {
		dir = "DESC"
		col = col[1:]
	}
	switch col {
	case "nombre", "precio_unidad", "cantidad", "fecha_creacion":
		return "productos." + col + " " + dir
	default:
		return "productos.fecha_creacion DESC"
	}
}

func (r *productoRepo) ListBajoStock(ctx context.Context, minimo int, mostrarInactivos bool) ([]model.Producto, error) {
	var productos []model.Producto
	q := r.db.WithContext(ctx).Where("cantidad < ?", minimo)
	if !mostrarInactivos {
		q = q.Where("activo = true")
	}
	err := q.Order("cantidad ASC").
		Preload("Proveedor").
		Preload("Categoria").
		Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) SetActivo(ctx context.Context, id uuid.UUID, activo bool) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("id = ?", id).
		Update("activo", activo)
	return res.RowsAffected, res.Error
}

func (r *productoRepo) CountByProveedor(ctx context.Context, proveedorID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("proveedor_id = ?", proveedorID).Count(&n).Error
	return n, err
}

func (r *productoRepo) CountByCategoria(ctx context.Context, categoriaID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("categoria_id = ?", categoriaID).Count(&n).Error
	return n, err
}
