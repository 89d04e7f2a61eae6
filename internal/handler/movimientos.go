package handler

import (
	"net/http"
	"strconv"

	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/apierror"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/dto"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MovimientosHandler struct{ repo repository.ProductoPorAlmacenRepository }

func NewMovimientosHandler(repo repository.ProductoPorAlmacenRepository) *MovimientosHandler {
	return &MovimientosHandler{repo: repo}
}

// ListarMovimientos godoc
// @Summary      Historial de movimientos de stock
// @Description  Retorna el rastro de auditoría inmutable de un producto por almacén, del más reciente al más antiguo.
// @Tags         stock
// @Produce      json
// @Param        id    path  string true  "UUID del producto por almacén"
// @Param        limit query int    false "Máximo de registros (default 100)"
// @Success      200   {array}  dto.MovimientoStockResponse
// @Failure      400   {object} apierror.APIError
// @Router       /v1/productos-por-almacen/{id}/movimientos [get]
func (h *MovimientosHandler) ListarMovimientos(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit < 1 || limit > 500 {
		limit = 100
	}

	movimientos, err := h.repo.ListMovimientos(c.Request.Context(), id, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	out := make([]dto.MovimientoStockResponse, 0, len(movimientos))
	for _, m := range movimientos {
		out = append(out, dto.MovimientoStockResponse{
			ID:                   m.ID.String(),
			ProductoPorAlmacenID: m.ProductoPorAlmacenID.String(),
			Tipo:                 m.Tipo,
			CantidadFraccion:     m.CantidadFraccion,
			StockAnterior:        m.StockAnterior,
			StockNuevo:           m.StockNuevo,
			Motivo:               m.Motivo,
			ReferenciaID:         optString(m.ReferenciaID),
			CreatedAt:            m.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	c.JSON(http.StatusOK, out)
}

func optString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
