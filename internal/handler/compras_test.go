package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/dto"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/middleware"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type stubCompraService struct {
	registrarErr error
	anularErr    error
	anuladas     []uuid.UUID
}

var _ service.CompraService = (*stubCompraService)(nil)

func (s *stubCompraService) Registrar(_ context.Context, _ dto.RegistrarCompraRequest) (*dto.CompraResponse, error) {
	if s.registrarErr != nil {
		return nil, s.registrarErr
	}
	return &dto.CompraResponse{}, nil
}

func (s *stubCompraService) Actualizar(_ context.Context, _ uuid.UUID, _ dto.ActualizarCompraRequest) (*dto.CompraResponse, error) {
	return &dto.CompraResponse{}, nil
}

func (s *stubCompraService) Anular(_ context.Context, id uuid.UUID) error {
	if s.anularErr != nil {
		return s.anularErr
	}
	s.anuladas = append(s.anuladas, id)
	return nil
}

func (s *stubCompraService) Obtener(_ context.Context, _ uuid.UUID) (*dto.CompraResponse, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCompraService) Listar(_ context.Context, _ dto.CompraFilter) (*dto.CompraListResponse, error) {
	return &dto.CompraListResponse{}, nil
}

func (s *stubCompraService) Recepcionar(_ context.Context, _ uuid.UUID, _ dto.RecepcionRequest) error {
	return nil
}

func routerCompras(svc service.CompraService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	h := NewComprasHandler(svc)
	v1 := r.Group("/v1")
	v1.POST("/compras", h.RegistrarCompra)
	v1.DELETE("/compras/:id", h.AnularCompra)
	v1.GET("/compras/:id", h.ObtenerCompra)
	return r
}

const bodyCompraContado = `{
	"socio_de_negocio_id": "7b0d7f1e-802e-4e6e-9d4b-0f8f8d2f5a01",
	"forma_de_pago": "contado",
	"estado": "registrado",
	"productos_por_almacen": [{
		"producto_por_almacen_id": "2f5b1f2c-33ab-4b25-9f47-6f3f2d6f1b02",
		"costo": 10,
		"unidades_derivadas": [{"unidad": "caja", "factor": 1, "cantidad": 2}]
	}]
}`

func TestAnularCompraRespondeOK(t *testing.T) {
	svc := &stubCompraService{}
	r := routerCompras(svc)

	id := uuid.New()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/v1/compras/"+id.String(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data": "ok"}`, w.Body.String())
	assert.Equal(t, []uuid.UUID{id}, svc.anuladas)
}

func TestAnularCompraBloqueadaPorRecepciones(t *testing.T) {
	svc := &stubCompraService{anularErr: service.ErrCompraConRecepciones}
	r := routerCompras(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/v1/compras/"+uuid.NewString(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), service.ErrCompraConRecepciones.Error())
}

func TestAnularCompraTerminalBloqueada(t *testing.T) {
	svc := &stubCompraService{anularErr: service.ErrDocumentoTerminal}
	r := routerCompras(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/v1/compras/"+uuid.NewString(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), service.ErrDocumentoTerminal.Error())
}

func TestAnularCompraNoEncontrada(t *testing.T) {
	svc := &stubCompraService{anularErr: gorm.ErrRecordNotFound}
	r := routerCompras(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/v1/compras/"+uuid.NewString(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegistrarCompraSinFuenteEsErrorOpaco(t *testing.T) {
	svc := &stubCompraService{registrarErr: service.ErrPagoContadoSinFuente}
	r := routerCompras(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/compras", strings.NewReader(bodyCompraContado))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail": "Error interno del servidor"}`, w.Body.String())
}

func TestRegistrarCompraDuplicadaEsErrorOpaco(t *testing.T) {
	svc := &stubCompraService{registrarErr: service.ErrDocumentoDuplicado}
	r := routerCompras(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/compras", strings.NewReader(bodyCompraContado))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail": "Error interno del servidor"}`, w.Body.String())
}

func TestRegistrarCompraValidacionDeCampos(t *testing.T) {
	svc := &stubCompraService{}
	r := routerCompras(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/compras", strings.NewReader(`{"estado": "registrado"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Error de validacion")
}
