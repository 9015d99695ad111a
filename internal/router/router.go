package router

import (
	"time"

	"farmastock/internal/config"
	"farmastock/internal/handler"
	"farmastock/internal/middleware"
	"farmastock/internal/repository"
	"farmastock/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	productoRepo := repository.NewProductoRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	productoSvc := service.NewProductoService(productoRepo, proveedorRepo, categoriaRepo, usuarioRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo, productoRepo)
	categoriaSvc := service.NewCategoriaService(categoriaRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productosH := handler.NewProductosHandler(productoSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb))

	// Identity is optional: anonymous requests are served, but a valid token's
	// subject becomes the creator reference on product creation.
	v1 := r.Group("/v1", middleware.Identity(cfg.JWTSecret))
	{
		prods := v1.Group("/productos")
		{
			prods.GET("", productosH.Listar)
			prods.POST("", productosH.Crear)
			prods.GET("/por-categoria", productosH.PorCategoria)
			prods.GET("/bajo-stock", productosH.BajoStock)
			prods.GET("/:id", productosH.ObtenerPorID)
			prods.PUT("/:id", productosH.Actualizar)
			prods.PATCH("/:id", productosH.Actualizar)
			prods.POST("/:id/desactivar", productosH.Desactivar)
			prods.POST("/:id/activar", productosH.Activar)
		}

		provs := v1.Group("/proveedores")
		{
			provs.GET("", proveedoresH.Listar)
			provs.POST("", proveedoresH.Crear)
			provs.GET("/:id", proveedoresH.ObtenerPorID)
			provs.PUT("/:id", proveedoresH.Actualizar)
			provs.DELETE("/:id", proveedoresH.Eliminar)
		}

		// Categorías — read-only fixed catalog
		v1.GET("/categorias", categoriasH.Listar)
		v1.GET("/categorias/:id", categoriasH.ObtenerPorID)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
