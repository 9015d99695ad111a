package handler

import (
	"net/http"
	"strconv"

	"farmastock/internal/apierror"
	"farmastock/internal/dto"
	"farmastock/internal/middleware"
	"farmastock/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductosHandler struct{ svc service.ProductoService }

func NewProductosHandler(svc service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

// Crear POST /v1/productos
func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req, middleware.PrincipalID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar GET /v1/productos
func (h *ProductosHandler) Listar(c *gin.Context) {
	var filter dto.ProductoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.BadRequest(err.Error()))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.BadRequest("Parámetros de consulta inválidos"))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerPorID GET /v1/productos/:id
func (h *ProductosHandler) ObtenerPorID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.BadRequest("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar PUT/PATCH /v1/productos/:id
func (h *ProductosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.BadRequest("ID invalido"))
		return
	}
	var req dto.ActualizarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Desactivar POST /v1/productos/:id/desactivar — logical deletion.
func (h *ProductosHandler) Desactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.BadRequest("ID invalido"))
		return
	}
	resp, err := h.svc.Desactivar(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Activar POST /v1/productos/:id/activar
func (h *ProductosHandler) Activar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.BadRequest("ID invalido"))
		return
	}
	resp, err := h.svc.Activar(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PorCategoria GET /v1/productos/por-categoria?categoria=CODE
func (h *ProductosHandler) PorCategoria(c *gin.Context) {
	var filter dto.ProductoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.BadRequest(err.Error()))
		return
	}
	resp, err := h.svc.ListarPorCategoria(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BajoStock GET /v1/productos/bajo-stock?minimo=N (default 10)
func (h *ProductosHandler) BajoStock(c *gin.Context) {
	minimo := 10
	if raw := c.Query("minimo"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, apierror.BadRequest("Parámetro minimo inválido"))
			return
		}
		minimo = n
	}
	mostrarInactivos := c.Query("mostrar_inactivos") == "true"

	resp, err := h.svc.ListarBajoStock(c.Request.Context(), minimo, mostrarInactivos)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
