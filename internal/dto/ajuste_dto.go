package dto

import "github.com/shopspring/decimal"

// ─── Ingreso / Salida (stock adjustment) ────────────────────────────────────

type AjusteDetalleRequest struct {
	ProductoPorAlmacenID string          `json:"producto_por_almacen_id" validate:"required,uuid"`
	Unidad               string          `json:"unidad"   validate:"required"`
	Factor               decimal.Decimal `json:"factor"   validate:"required"`
	Cantidad             decimal.Decimal `json:"cantidad" validate:"required"`
}

type RegistrarAjusteRequest struct {
	Tipo      string                 `json:"tipo"   validate:"required,oneof=ingreso salida"`
	Motivo    string                 `json:"motivo" validate:"required"`
	Productos []AjusteDetalleRequest `json:"productos_por_almacen" validate:"required,min=1,dive"`
}

type AjusteDetalleResponse struct {
	ID                   string          `json:"id"`
	ProductoPorAlmacenID string          `json:"producto_por_almacen_id"`
	Producto             string          `json:"producto,omitempty"`
	Unidad               string          `json:"unidad"`
	Factor               decimal.Decimal `json:"factor"`
	Cantidad             decimal.Decimal `json:"cantidad"`
}

type AjusteResponse struct {
	ID        string                  `json:"id"`
	Tipo      string                  `json:"tipo"`
	Motivo    string                  `json:"motivo"`
	Estado    string                  `json:"estado"`
	Productos []AjusteDetalleResponse `json:"productos_por_almacen"`
	CreatedAt string                  `json:"created_at"`
}

type AjusteFilter struct {
	Tipo  string `form:"tipo" validate:"omitempty,oneof=ingreso salida"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type AjusteListResponse struct {
	Data  []AjusteResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
