package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"farmastock/internal/apierror"
	"farmastock/internal/dto"
	"farmastock/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProductoService records calls and returns canned values, letting these
// tests focus on binding, routing, and status mapping.
type stubProductoService struct {
	resp      *dto.ProductoResponse
	listResp  *dto.ProductoListResponse
	items     []dto.ProductoListItem
	err       error
	gotFilter dto.ProductoFilter
	gotMinimo int
}

func (s *stubProductoService) Crear(_ context.Context, req dto.CrearProductoRequest, _ *uuid.UUID) (*dto.ProductoResponse, error) {
	return s.resp, s.err
}

func (s *stubProductoService) ObtenerPorID(_ context.Context, _ uuid.UUID) (*dto.ProductoResponse, error) {
	return s.resp, s.err
}

func (s *stubProductoService) Listar(_ context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	s.gotFilter = filter
	return s.listResp, s.err
}

func (s *stubProductoService) ListarPorCategoria(_ context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	s.gotFilter = filter
	if filter.Categoria == "" {
		return nil, apierror.BadRequest("Debe proporcionar el parámetro categoria")
	}
	return s.listResp, s.err
}

func (s *stubProductoService) ListarBajoStock(_ context.Context, minimo int, _ bool) ([]dto.ProductoListItem, error) {
	s.gotMinimo = minimo
	return s.items, s.err
}

func (s *stubProductoService) Actualizar(_ context.Context, _ uuid.UUID, _ dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	return s.resp, s.err
}

func (s *stubProductoService) Desactivar(_ context.Context, _ uuid.UUID) (*dto.ProductoResponse, error) {
	return s.resp, s.err
}

func (s *stubProductoService) Activar(_ context.Context, _ uuid.UUID) (*dto.ProductoResponse, error) {
	return s.resp, s.err
}

var _ service.ProductoService = (*stubProductoService)(nil)

func setupRouter(svc service.ProductoService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewProductosHandler(svc)
	prods := r.Group("/v1/productos")
	{
		prods.GET("", h.Listar)
		prods.POST("", h.Crear)
		prods.GET("/por-categoria", h.PorCategoria)
		prods.GET("/bajo-stock", h.BajoStock)
		prods.GET("/:id", h.ObtenerPorID)
		prods.PUT("/:id", h.Actualizar)
		prods.POST("/:id/desactivar", h.Desactivar)
	}
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCrearHandler(t *testing.T) {
	stub := &stubProductoService{resp: &dto.ProductoResponse{ID: uuid.NewString(), Codigo: "V100", Activo: true}}
	r := setupRouter(stub)

	body, _ := json.Marshal(dto.CrearProductoRequest{
		Codigo:       "V100",
		Nombre:       "Vitamina C",
		Descripcion:  "Frasco x 60",
		Cantidad:     10,
		PrecioUnidad: decimal.RequireFromString("9.99"),
		ProveedorID:  uuid.NewString(),
		CategoriaID:  uuid.NewString(),
	})
	w := doRequest(r, http.MethodPost, "/v1/productos", string(body))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCrearHandler_CamposFaltantes(t *testing.T) {
	r := setupRouter(&stubProductoService{})
	w := doRequest(r, http.MethodPost, "/v1/productos", `{"codigo": "V100"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp apierror.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Fields)
}

func TestObtenerHandler_IDInvalido(t *testing.T) {
	r := setupRouter(&stubProductoService{})
	w := doRequest(r, http.MethodGet, "/v1/productos/no-un-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestObtenerHandler_NoEncontrado(t *testing.T) {
	stub := &stubProductoService{err: apierror.NotFound("Producto no encontrado")}
	r := setupRouter(stub)
	w := doRequest(r, http.MethodGet, "/v1/productos/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPorCategoriaHandler_SinParametro(t *testing.T) {
	r := setupRouter(&stubProductoService{})
	w := doRequest(r, http.MethodGet, "/v1/productos/por-categoria", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPorCategoriaHandler(t *testing.T) {
	stub := &stubProductoService{listResp: &dto.ProductoListResponse{Data: []dto.ProductoListItem{}}}
	r := setupRouter(stub)
	w := doRequest(r, http.MethodGet, "/v1/productos/por-categoria?categoria=VITAMINAS", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "VITAMINAS", stub.gotFilter.Categoria)
}

func TestBajoStockHandler_MinimoPorDefecto(t *testing.T) {
	stub := &stubProductoService{items: []dto.ProductoListItem{}}
	r := setupRouter(stub)

	w := doRequest(r, http.MethodGet, "/v1/productos/bajo-stock", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, stub.gotMinimo)

	w = doRequest(r, http.MethodGet, "/v1/productos/bajo-stock?minimo=5", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, stub.gotMinimo)
}

func TestBajoStockHandler_MinimoInvalido(t *testing.T) {
	r := setupRouter(&stubProductoService{})
	w := doRequest(r, http.MethodGet, "/v1/productos/bajo-stock?minimo=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDesactivarHandler(t *testing.T) {
	stub := &stubProductoService{resp: &dto.ProductoResponse{ID: uuid.NewString(), Activo: false}}
	r := setupRouter(stub)
	w := doRequest(r, http.MethodPost, "/v1/productos/"+uuid.NewString()+"/desactivar", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.ProductoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Activo)
}

func TestListarHandler_FiltroInvalido(t *testing.T) {
	r := setupRouter(&stubProductoService{})
	w := doRequest(r, http.MethodGet, "/v1/productos?activo=quizas", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
