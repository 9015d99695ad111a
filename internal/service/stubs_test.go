package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"farmastock/internal/dto"
	"farmastock/internal/model"
	"farmastock/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// In-memory repository stubs mirroring the Postgres-backed implementations,
// including the constraint errors the real store would raise.

func uniqueViolation() error     { return &pgconn.PgError{Code: "23505"} }
func foreignKeyViolation() error { return &pgconn.PgError{Code: "23503"} }

// ── Proveedor ────────────────────────────────────────────────────────────────

type stubProveedorRepo struct {
	proveedores map[uuid.UUID]*model.Proveedor
}

func newStubProveedorRepo() *stubProveedorRepo {
	return &stubProveedorRepo{proveedores: make(map[uuid.UUID]*model.Proveedor)}
}

func (r *stubProveedorRepo) Create(_ context.Context, p *model.Proveedor) error {
	for _, existing := range r.proveedores {
		if strings.EqualFold(existing.Email, p.Email) {
			return uniqueViolation()
		}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.FechaCreacion = time.Now()
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Proveedor, error) {
	p, ok := r.proveedores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProveedorRepo) FindByEmail(_ context.Context, email string) (*model.Proveedor, error) {
	for _, p := range r.proveedores {
		if strings.EqualFold(p.Email, email) {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProveedorRepo) List(_ context.Context, filter dto.ProveedorFilter) ([]model.Proveedor, error) {
	result := make([]model.Proveedor, 0, len(r.proveedores))
	for _, p := range r.proveedores {
		if filter.Busqueda != "" &&
			!strings.Contains(strings.ToLower(p.Nombre+p.Email+p.Telefono), strings.ToLower(filter.Busqueda)) {
			continue
		}
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Nombre < result[j].Nombre })
	return result, nil
}

func (r *stubProveedorRepo) Update(_ context.Context, p *model.Proveedor) error {
	for _, existing := range r.proveedores {
		if existing.ID != p.ID && strings.EqualFold(existing.Email, p.Email) {
			return uniqueViolation()
		}
	}
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := r.proveedores[id]; !ok {
		return 0, nil
	}
	delete(r.proveedores, id)
	return 1, nil
}

var _ repository.ProveedorRepository = (*stubProveedorRepo)(nil)

// ── Categoria ────────────────────────────────────────────────────────────────

type stubCategoriaRepo struct {
	categorias map[uuid.UUID]*model.Categoria
}

func newStubCategoriaRepo() *stubCategoriaRepo {
	r := &stubCategoriaRepo{categorias: make(map[uuid.UUID]*model.Categoria)}
	for _, nombre := range model.NombresCategoria() {
		c := &model.Categoria{ID: uuid.New(), Nombre: nombre}
		r.categorias[c.ID] = c
	}
	return r
}

func (r *stubCategoriaRepo) List(_ context.Context) ([]model.Categoria, error) {
	result := make([]model.Categoria, 0, len(r.categorias))
	for _, c := range r.categorias {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Nombre < result[j].Nombre })
	return result, nil
}

func (r *stubCategoriaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Categoria, error) {
	c, ok := r.categorias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCategoriaRepo) FindByNombre(_ context.Context, nombre string) (*model.Categoria, error) {
	for _, c := range r.categorias {
		if c.Nombre == nombre {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// porNombre is a test helper, not part of the repository contract.
func (r *stubCategoriaRepo) porNombre(nombre string) *model.Categoria {
	c, _ := r.FindByNombre(context.Background(), nombre)
	return c
}

var _ repository.CategoriaRepository = (*stubCategoriaRepo)(nil)

// ── Usuario ──────────────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// ── Producto ─────────────────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos   map[uuid.UUID]*model.Producto
	proveedores *stubProveedorRepo
	categorias  *stubCategoriaRepo
	usuarios    *stubUsuarioRepo

	// forceUniqueErr simulates losing the race against a concurrent insert:
	// the pre-check saw no duplicate but the constraint still fires.
	forceUniqueErr bool
}

func newStubProductoRepo(prov *stubProveedorRepo, cat *stubCategoriaRepo, usr *stubUsuarioRepo) *stubProductoRepo {
	return &stubProductoRepo{
		productos:   make(map[uuid.UUID]*model.Producto),
		proveedores: prov,
		categorias:  cat,
		usuarios:    usr,
	}
}

// resolve emulates GORM preloads by attaching the live referenced rows.
func (r *stubProductoRepo) resolve(p model.Producto) model.Producto {
	if prov, ok := r.proveedores.proveedores[p.ProveedorID]; ok {
		p.Proveedor = prov
	}
	if cat, ok := r.categorias.categorias[p.CategoriaID]; ok {
		p.Categoria = cat
	}
	if p.UsuarioCreadorID != nil {
		if u, ok := r.usuarios.usuarios[*p.UsuarioCreadorID]; ok {
			p.UsuarioCreador = u
		}
	}
	return p
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if r.forceUniqueErr {
		return uniqueViolation()
	}
	for _, existing := range r.productos {
		if existing.Codigo == p.Codigo {
			return uniqueViolation()
		}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now()
	p.FechaCreacion = now
	p.FechaActualizacion = now
	cp := *p
	r.productos[p.ID] = &cp
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	resolved := r.resolve(*p)
	return &resolved, nil
}

func (r *stubProductoRepo) FindByCodigo(_ context.Context, codigo string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.Codigo == codigo {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) List(_ context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var result []model.Producto
	for _, p := range r.productos {
		switch {
		case filter.Activo != "":
			if p.Activo != (filter.Activo == "true") {
				continue
			}
		case !filter.MostrarInactivos:
			if !p.Activo {
				continue
			}
		}
		if filter.Categoria != "" {
			cat := r.categorias.porNombre(filter.Categoria)
			if cat == nil || p.CategoriaID != cat.ID {
				continue
			}
		}
		if filter.ProveedorID != "" && p.ProveedorID.String() != filter.ProveedorID {
			continue
		}
		if filter.Busqueda != "" {
			hay := strings.ToLower(p.Codigo + " " + p.Nombre + " " + p.Descripcion)
			if !strings.Contains(hay, strings.ToLower(filter.Busqueda)) {
				continue
			}
		}
		result = append(result, r.resolve(*p))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].FechaCreacion.After(result[j].FechaCreacion)
	})
	return result, int64(len(result)), nil
}

func (r *stubProductoRepo) ListBajoStock(_ context.Context, minimo int, mostrarInactivos bool) ([]model.Producto, error) {
	var result []model.Producto
	for _, p := range r.productos {
		if p.Cantidad >= minimo {
			continue
		}
		if !mostrarInactivos && !p.Activo {
			continue
		}
		result = append(result, r.resolve(*p))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Cantidad < result[j].Cantidad })
	return result, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	for _, existing := range r.productos {
		if existing.ID != p.ID && existing.Codigo == p.Codigo {
			return uniqueViolation()
		}
	}
	p.FechaActualizacion = time.Now()
	cp := *p
	r.productos[p.ID] = &cp
	return nil
}

func (r *stubProductoRepo) SetActivo(_ context.Context, id uuid.UUID, activo bool) (int64, error) {
	p, ok := r.productos[id]
	if !ok {
		return 0, nil
	}
	p.Activo = activo
	p.FechaActualizacion = time.Now()
	return 1, nil
}

func (r *stubProductoRepo) CountByProveedor(_ context.Context, proveedorID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.productos {
		if p.ProveedorID == proveedorID {
			n++
		}
	}
	return n, nil
}

func (r *stubProductoRepo) CountByCategoria(_ context.Context, categoriaID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.productos {
		if p.CategoriaID == categoriaID {
			n++
		}
	}
	return n, nil
}

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── Fixture helpers ──────────────────────────────────────────────────────────

type fixtures struct {
	productos   *stubProductoRepo
	proveedores *stubProveedorRepo
	categorias  *stubCategoriaRepo
	usuarios    *stubUsuarioRepo
}

func newFixtures() *fixtures {
	prov := newStubProveedorRepo()
	cat := newStubCategoriaRepo()
	usr := newStubUsuarioRepo()
	return &fixtures{
		productos:   newStubProductoRepo(prov, cat, usr),
		proveedores: prov,
		categorias:  cat,
		usuarios:    usr,
	}
}

func (f *fixtures) productoService() ProductoService {
	return NewProductoService(f.productos, f.proveedores, f.categorias, f.usuarios)
}

func (f *fixtures) seedProveedor(nombre, email string) *model.Proveedor {
	p := &model.Proveedor{
		ID:            uuid.New(),
		Nombre:        nombre,
		Telefono:      "011-4000-0000",
		Email:         email,
		Direccion:     "Av. Siempre Viva 742",
		FechaCreacion: time.Now(),
	}
	f.proveedores.proveedores[p.ID] = p
	return p
}

func (f *fixtures) seedUsuario(username string) *model.Usuario {
	u := &model.Usuario{ID: uuid.New(), Username: username, Nombre: username, Activo: true}
	f.usuarios.usuarios[u.ID] = u
	return u
}
