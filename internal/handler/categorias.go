package handler

import (
	"net/http"

	"farmastock/internal/apierror"
	"farmastock/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CategoriasHandler is read-only: the catalog is fixed and seeded at startup.
type CategoriasHandler struct{ svc service.CategoriaService }

func NewCategoriasHandler(svc service.CategoriaService) *CategoriasHandler {
	return &CategoriasHandler{svc: svc}
}

// Listar GET /v1/categorias
func (h *CategoriasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerPorID GET /v1/categorias/:id
func (h *CategoriasHandler) ObtenerPorID(c *gin.Context) {
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
