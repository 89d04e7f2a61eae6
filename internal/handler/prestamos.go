package handler

import (
	"net/http"

	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/apierror"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/dto"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PrestamosHandler struct{ svc service.PrestamoService }

func NewPrestamosHandler(svc service.PrestamoService) *PrestamosHandler {
	return &PrestamosHandler{svc: svc}
}

// RegistrarPrestamo godoc
// @Summary      Registrar préstamo de mercadería
// @Description  Presta stock a un socio de negocio: salida de almacén al registrar, sin efecto monetario.
// @Tags         prestamos
// @Accept       json
// @Produce      json
// @Param        body body dto.RegistrarPrestamoRequest true "Detalle del préstamo"
// @Success      201  {object} dto.PrestamoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/prestamos [post]
func (h *PrestamosHandler) RegistrarPrestamo(c *gin.Context) {
	var req dto.RegistrarPrestamoRequest
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

// DevolverPrestamo godoc
// @Summary      Registrar devolución de préstamo
// @Description  Reingresa el stock prestado y marca el préstamo como devuelto.
// @Tags         prestamos
// @Produce      json
// @Param        id path string true "UUID del préstamo"
// @Success      204
// @Failure      400  {object} apierror.APIError
// @Router       /v1/prestamos/{id}/devolucion [post]
func (h *PrestamosHandler) DevolverPrestamo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Devolver(c.Request.Context(), id); err != nil {
		responderErrorSimple(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AnularPrestamo godoc
// @Summary      Anular préstamo
// @Description  Reingresa el stock y deja el préstamo en estado anulado. Solo válido antes de la devolución.
// @Tags         prestamos
// @Produce      json
// @Param        id path string true "UUID del préstamo"
// @Success      204
// @Failure      400  {object} apierror.APIError
// @Router       /v1/prestamos/{id} [delete]
func (h *PrestamosHandler) AnularPrestamo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Anular(c.Request.Context(), id); err != nil {
		responderErrorSimple(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ObtenerPrestamo godoc
// @Summary      Obtener préstamo
// @Tags         prestamos
// @Produce      json
// @Param        id path string true "UUID del préstamo"
// @Success      200  {object} dto.PrestamoResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/prestamos/{id} [get]
func (h *PrestamosHandler) ObtenerPrestamo(c *gin.Context) {
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

// ListarPrestamos godoc
// @Summary      Listar préstamos
// @Tags         prestamos
// @Produce      json
// @Param        socio_de_negocio_id query string false "UUID del socio"
// @Param        estado query string false "prestado | devuelto | anulado | all"
// @Param        page   query int    false "Página (default 1)"
// @Param        limit  query int    false "Registros por página (default 50)"
// @Success      200    {object} dto.PrestamoListResponse
// @Failure      400    {object} apierror.APIError
// @Router       /v1/prestamos [get]
func (h *PrestamosHandler) ListarPrestamos(c *gin.Context) {
	var filter dto.PrestamoFilter
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
