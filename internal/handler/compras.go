package handler

import (
	"net/http"

	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/apierror"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/dto"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ComprasHandler struct{ svc service.CompraService }

func NewComprasHandler(svc service.CompraService) *ComprasHandler { return &ComprasHandler{svc: svc} }

// RegistrarCompra godoc
// @Summary      Registrar una nueva compra
// @Description  Crea una compra: valida la fuente de pago, calcula el total con conversión de moneda y aplica el efecto sobre el saldo si el estado es registrado.
// @Tags         compras
// @Accept       json
// @Produce      json
// @Param        body body dto.RegistrarCompraRequest true "Detalle de la compra"
// @Success      201  {object} dto.CompraResponse
// @Failure      422  {object} apierror.APIError
// @Failure      500  {object} apierror.APIError
// @Router       /v1/compras [post]
func (h *ComprasHandler) RegistrarCompra(c *gin.Context) {
	var req dto.RegistrarCompraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		responderErrorDocumento(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ActualizarCompra godoc
// @Summary      Actualizar compra
// @Description  Edición con reversa y reaplicación del efecto monetario dentro de una sola transacción. Documentos procesados o anulados no admiten cambios.
// @Tags         compras
// @Accept       json
// @Produce      json
// @Param        id   path string true "UUID de la compra"
// @Param        body body dto.ActualizarCompraRequest true "Campos a modificar"
// @Success      200  {object} dto.CompraResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/compras/{id} [put]
func (h *ComprasHandler) ActualizarCompra(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarCompraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		responderErrorDocumento(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AnularCompra godoc
// @Summary      Anular compra
// @Description  Revierte el efecto monetario, desactiva el egreso vinculado y deja el documento en estado anulado. Bloqueada si hay recepciones activas.
// @Tags         compras
// @Produce      json
// @Param        id path string true "UUID de la compra"
// @Success      200  {object} map[string]string
// @Failure      400  {object} apierror.APIError
// @Router       /v1/compras/{id} [delete]
func (h *ComprasHandler) AnularCompra(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Anular(c.Request.Context(), id); err != nil {
		responderErrorAnulacion(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": "ok"})
}

// ObtenerCompra godoc
// @Summary      Obtener compra
// @Tags         compras
// @Produce      json
// @Param        id path string true "UUID de la compra"
// @Success      200  {object} dto.CompraResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/compras/{id} [get]
func (h *ComprasHandler) ObtenerCompra(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		responderErrorDocumento(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarCompras godoc
// @Summary      Listar compras
// @Description  Retorna lista paginada de compras filtrada por socio, estado y fechas.
// @Tags         compras
// @Produce      json
// @Param        socio_de_negocio_id query string false "UUID del socio"
// @Param        estado query string false "registrado | en espera | procesado | anulado | all"
// @Param        desde  query string false "Fecha YYYY-MM-DD"
// @Param        hasta  query string false "Fecha YYYY-MM-DD"
// @Param        page   query int    false "Página (default 1)"
// @Param        limit  query int    false "Registros por página (default 50)"
// @Success      200    {object} dto.CompraListResponse
// @Failure      400    {object} apierror.APIError
// @Router       /v1/compras [get]
func (h *ComprasHandler) ListarCompras(c *gin.Context) {
	var filter dto.CompraFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar compras"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RecepcionarCompra godoc
// @Summary      Registrar recepción de mercadería
// @Description  Consume cantidad pendiente de las unidades indicadas e ingresa el stock al almacén.
// @Tags         compras
// @Accept       json
// @Produce      json
// @Param        id   path string true "UUID de la compra"
// @Param        body body dto.RecepcionRequest true "Unidades recibidas"
// @Success      204
// @Failure      400  {object} apierror.APIError
// @Router       /v1/compras/{id}/recepciones [post]
func (h *ComprasHandler) RecepcionarCompra(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.RecepcionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Recepcionar(c.Request.Context(), id, req); err != nil {
		responderErrorDocumento(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
