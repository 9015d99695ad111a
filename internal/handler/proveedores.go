package handler

import (
	"net/http"

	"farmastock/internal/apierror"
	"farmastock/internal/dto"
	"farmastock/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProveedoresHandler struct{ svc service.ProveedorService }

func NewProveedoresHandler(svc service.ProveedorService) *ProveedoresHandler {
	return &ProveedoresHandler{svc: svc}
}

// Crear POST /v1/proveedores
func (h *ProveedoresHandler) Crear(c *gin.Context) {
	var req dto.CrearProveedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar GET /v1/proveedores
func (h *ProveedoresHandler) Listar(c *gin.Context) {
	var filter dto.ProveedorFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.BadRequest(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerPorID GET /v1/proveedores/:id
func (h *ProveedoresHandler) ObtenerPorID(c *gin.Context) {
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

// Actualizar PUT /v1/proveedores/:id
func (h *ProveedoresHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.BadRequest("ID invalido"))
		return
	}
	var req dto.ActualizarProveedorRequest
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

// Eliminar DELETE /v1/proveedores/:id — refused with 409 while referenced.
func (h *ProveedoresHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.BadRequest("ID invalido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
