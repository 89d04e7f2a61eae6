package handler

import (
	"net/http"

	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/apierror"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/dto"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler { return &VentasHandler{svc: svc} }

// RegistrarVenta godoc
// @Summary      Registrar una nueva venta
// @Description  Crea una venta: valida la fuente de cobro, calcula el total con recargos y descuentos y acredita los saldos si el estado es registrado.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        body body dto.RegistrarVentaRequest true "Detalle de la venta"
// @Success      201  {object} dto.VentaResponse
// @Failure      422  {object} apierror.APIError
// @Failure      500  {object} apierror.APIError
// @Router       /v1/ventas [post]
func (h *VentasHandler) RegistrarVenta(c *gin.Context) {
	var req dto.RegistrarVentaRequest
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

// ActualizarVenta godoc
// @Summary      Actualizar venta
// @Description  Edición con reversa y reaplicación del efecto monetario dentro de una sola transacción.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        id   path string true "UUID de la venta"
// @Param        body body dto.ActualizarVentaRequest true "Campos a modificar"
// @Success      200  {object} dto.VentaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/ventas/{id} [put]
func (h *VentasHandler) ActualizarVenta(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarVentaRequest
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

// AnularVenta godoc
// @Summary      Anular venta
// @Description  Revierte los saldos acreditados y deja el documento en estado anulado. Bloqueada si hay entregas activas.
// @Tags         ventas
// @Produce      json
// @Param        id path string true "UUID de la venta"
// @Success      200  {object} map[string]string
// @Failure      400  {object} apierror.APIError
// @Router       /v1/ventas/{id} [delete]
func (h *VentasHandler) AnularVenta(c *gin.Context) {
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

// ObtenerVenta godoc
// @Summary      Obtener venta
// @Tags         ventas
// @Produce      json
// @Param        id path string true "UUID de la venta"
// @Success      200  {object} dto.VentaResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/ventas/{id} [get]
func (h *VentasHandler) ObtenerVenta(c *gin.Context) {
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

// ListarVentas godoc
// @Summary      Listar ventas
// @Description  Retorna lista paginada de ventas filtrada por socio, estado y fechas.
// @Tags         ventas
// @Produce      json
// @Param        socio_de_negocio_id query string false "UUID del socio"
// @Param        estado query string false "registrado | en espera | procesado | anulado | all"
// @Param        desde  query string false "Fecha YYYY-MM-DD"
// @Param        hasta  query string false "Fecha YYYY-MM-DD"
// @Param        page   query int    false "Página (default 1)"
// @Param        limit  query int    false "Registros por página (default 50)"
// @Success      200    {object} dto.VentaListResponse
// @Failure      400    {object} apierror.APIError
// @Router       /v1/ventas [get]
func (h *VentasHandler) ListarVentas(c *gin.Context) {
	var filter dto.VentaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar ventas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EntregarVenta godoc
// @Summary      Registrar entrega de mercadería
// @Description  Consume cantidad pendiente de las unidades indicadas y descuenta el stock del almacén. Dispara alertas de stock bajo tras confirmar.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        id   path string true "UUID de la venta"
// @Param        body body dto.EntregaRequest true "Unidades entregadas"
// @Success      204
// @Failure      400  {object} apierror.APIError
// @Router       /v1/ventas/{id}/entregas [post]
func (h *VentasHandler) EntregarVenta(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.EntregaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Entregar(c.Request.Context(), id, req); err != nil {
		responderErrorDocumento(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
