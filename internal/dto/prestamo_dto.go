package dto

import "github.com/shopspring/decimal"

// ─── Préstamos ──────────────────────────────────────────────────────────────

type PrestamoDetalleRequest struct {
	ProductoPorAlmacenID string          `json:"producto_por_almacen_id" validate:"required,uuid"`
	Unidad               string          `json:"unidad"   validate:"required"`
	Factor               decimal.Decimal `json:"factor"   validate:"required"`
	Cantidad             decimal.Decimal `json:"cantidad" validate:"required"`
}

type RegistrarPrestamoRequest struct {
	SocioDeNegocioID string                   `json:"socio_de_negocio_id" validate:"required,uuid"`
	Observacion      *string                  `json:"observacion"`
	Productos        []PrestamoDetalleRequest `json:"productos_por_almacen" validate:"required,min=1,dive"`
}

type PrestamoDetalleResponse struct {
	ID                   string          `json:"id"`
	ProductoPorAlmacenID string          `json:"producto_por_almacen_id"`
	Producto             string          `json:"producto,omitempty"`
	Unidad               string          `json:"unidad"`
	Factor               decimal.Decimal `json:"factor"`
	Cantidad             decimal.Decimal `json:"cantidad"`
}

type PrestamoResponse struct {
	ID               string                    `json:"id"`
	SocioDeNegocioID string                    `json:"socio_de_negocio_id"`
	Socio            string                    `json:"socio,omitempty"`
	Estado           string                    `json:"estado"`
	Observacion      *string                   `json:"observacion,omitempty"`
	Productos        []PrestamoDetalleResponse `json:"productos_por_almacen"`
	CreatedAt        string                    `json:"created_at"`
}

type PrestamoFilter struct {
	SocioID string `form:"socio_de_negocio_id" validate:"omitempty,uuid"`
	Estado  string `form:"estado" validate:"omitempty,oneof=prestado devuelto anulado all"`
	Page    int    `form:"page,default=1"   validate:"min=1"`
	Limit   int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type PrestamoListResponse struct {
	Data  []PrestamoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
