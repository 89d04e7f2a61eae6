package handler

import (
	"net/http"

	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/apierror"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/dto"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AjustesHandler struct{ svc service.AjusteStockService }

func NewAjustesHandler(svc service.AjusteStockService) *AjustesHandler {
	return &AjustesHandler{svc: svc}
}

// RegistrarAjuste godoc
// @Summary      Registrar ajuste de stock
// @Description  Documento simplificado de ingreso o salida: mueve stock en la misma transacción que lo persiste, sin efecto monetario.
// @Tags         ajustes
// @Accept       json
// @Produce      json
// @Param        body body dto.RegistrarAjusteRequest true "Detalle del ajuste"
// @Success      201  {object} dto.AjusteResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/ajustes-stock [post]
func (h *AjustesHandler) RegistrarAjuste(c *gin.Context) {
	var req dto.RegistrarAjusteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		responderErrorSimple(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ObtenerAjuste godoc
// @Summary      Obtener ajuste de stock
// @Tags         ajustes
// @Produce      json
// @Param        id path string true "UUID del ajuste"
// @Success      200  {object} dto.AjusteResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/ajustes-stock/{id} [get]
func (h *AjustesHandler) ObtenerAjuste(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		responderErrorSimple(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarAjustes godoc
// @Summary      Listar ajustes de stock
// @Tags         ajustes
// @Produce      json
// @Param        tipo  query string false "ingreso | salida"
// @Param        page  query int    false "Página (default 1)"
// @Param        limit query int    false "Registros por página (default 50)"
// @Success      200   {object} dto.AjusteListResponse
// @Failure      400   {object} apierror.APIError
// @Router       /v1/ajustes-stock [get]
func (h *AjustesHandler) ListarAjustes(c *gin.Context) {
	var filter dto.AjusteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
