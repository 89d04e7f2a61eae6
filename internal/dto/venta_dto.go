package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

type VentaFilter struct {
	SocioID string `form:"socio_de_negocio_id" validate:"omitempty,uuid"`
	Estado  string `form:"estado"`
	Desde   string `form:"desde"`
	Hasta   string `form:"hasta"`
	Buscar  string `form:"buscar"`
	Page    int    `form:"page,default=1"   validate:"min=1"`
	Limit   int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type UnidadDerivadaVentaRequest struct {
	Unidad        string          `json:"unidad"    validate:"required"`
	Factor        decimal.Decimal `json:"factor"    validate:"required"`
	Cantidad      decimal.Decimal `json:"cantidad"  validate:"required"`
	Recargo       decimal.Decimal `json:"recargo"   validate:"min=0"`
	Descuento     decimal.Decimal `json:"descuento" validate:"min=0"`
	TipoDescuento string          `json:"tipo_descuento" validate:"omitempty,oneof=porcentaje monto"`
}

type ProductoPorAlmacenVentaRequest struct {
	ProductoPorAlmacenID string                       `json:"producto_por_almacen_id" validate:"required,uuid"`
	Precio               decimal.Decimal              `json:"precio"                  validate:"min=0"`
	UnidadesDerivadas    []UnidadDerivadaVentaRequest `json:"unidades_derivadas"      validate:"required,min=1,dive"`
}

// PagoVentaRequest allocates part of the collection to one despliegue.
type PagoVentaRequest struct {
	DespliegueDePagoID string          `json:"despliegue_de_pago_id" validate:"required,uuid"`
	Monto              decimal.Decimal `json:"monto"                 validate:"required"`
}

type RegistrarVentaRequest struct {
	SocioDeNegocioID string          `json:"socio_de_negocio_id" validate:"required,uuid"`
	Serie            *string         `json:"serie"`
	Numero           *string         `json:"numero"`
	Moneda           string          `json:"moneda"        validate:"omitempty,oneof=soles dolares"`
	TipoDeCambio     decimal.Decimal `json:"tipo_de_cambio"`
	FormaDePago      string          `json:"forma_de_pago" validate:"required,oneof=contado credito"`
	Estado           string          `json:"estado"        validate:"required,oneof=registrado 'en espera' procesado"`
	Observacion      *string         `json:"observacion"`

	// Money source — exactly one of the two for contado, none for credito.
	IngresoDineroID *string            `json:"ingreso_dinero_id" validate:"omitempty,uuid"`
	Pagos           []PagoVentaRequest `json:"despliegue_de_pago_ventas" validate:"omitempty,dive"`

	ProductosPorAlmacen []ProductoPorAlmacenVentaRequest `json:"productos_por_almacen" validate:"required,min=1,dive"`
}

type ActualizarVentaRequest struct {
	SocioDeNegocioID *string          `json:"socio_de_negocio_id" validate:"omitempty,uuid"`
	Serie            *string          `json:"serie"`
	Numero           *string          `json:"numero"`
	Moneda           *string          `json:"moneda"        validate:"omitempty,oneof=soles dolares"`
	TipoDeCambio     *decimal.Decimal `json:"tipo_de_cambio"`
	FormaDePago      *string          `json:"forma_de_pago" validate:"omitempty,oneof=contado credito"`
	Estado           *string          `json:"estado"        validate:"omitempty,oneof=registrado 'en espera' procesado"`
	Observacion      *string          `json:"observacion"`

	IngresoDineroID *string            `json:"ingreso_dinero_id" validate:"omitempty,uuid"`
	Pagos           []PagoVentaRequest `json:"despliegue_de_pago_ventas" validate:"omitempty,dive"`

	ProductosPorAlmacen []ProductoPorAlmacenVentaRequest `json:"productos_por_almacen" validate:"omitempty,min=1,dive"`
}

// EntregaRequest fulfils sale lines: each entry moves cantidad out of
// pendiente and out of warehouse stock.
type EntregaRequest struct {
	Unidades []EntregaUnidadRequest `json:"unidades" validate:"required,min=1,dive"`
}

type EntregaUnidadRequest struct {
	UnidadDeVentaID string          `json:"unidad_de_venta_id" validate:"required,uuid"`
	Cantidad        decimal.Decimal `json:"cantidad"           validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UnidadDerivadaVentaResponse struct {
	ID                string          `json:"id"`
	Unidad            string          `json:"unidad"`
	Factor            decimal.Decimal `json:"factor"`
	Cantidad          decimal.Decimal `json:"cantidad"`
	CantidadPendiente decimal.Decimal `json:"cantidad_pendiente"`
	Recargo           decimal.Decimal `json:"recargo"`
	Descuento         decimal.Decimal `json:"descuento"`
	TipoDescuento     string          `json:"tipo_descuento"`
}

type VentaDetalleResponse struct {
	ID                   string                        `json:"id"`
	ProductoPorAlmacenID string                        `json:"producto_por_almacen_id"`
	Producto             string                        `json:"producto,omitempty"`
	Precio               decimal.Decimal               `json:"precio"`
	UnidadesDerivadas    []UnidadDerivadaVentaResponse `json:"unidades_derivadas"`
}

type PagoVentaResponse struct {
	DespliegueDePagoID string          `json:"despliegue_de_pago_id"`
	Monto              decimal.Decimal `json:"monto"`
}

type VentaResponse struct {
	ID               string                 `json:"id"`
	SocioDeNegocioID string                 `json:"socio_de_negocio_id"`
	Socio            string                 `json:"socio,omitempty"`
	Serie            *string                `json:"serie,omitempty"`
	Numero           *string                `json:"numero,omitempty"`
	Moneda           string                 `json:"moneda"`
	TipoDeCambio     decimal.Decimal        `json:"tipo_de_cambio"`
	FormaDePago      string                 `json:"forma_de_pago"`
	Estado           string                 `json:"estado"`
	Total            decimal.Decimal        `json:"total"`
	IngresoDineroID  *string                `json:"ingreso_dinero_id,omitempty"`
	Observacion      *string                `json:"observacion,omitempty"`
	Pagos            []PagoVentaResponse    `json:"despliegue_de_pago_ventas"`
	Detalles         []VentaDetalleResponse `json:"productos_por_almacen"`
	CreatedAt        string                 `json:"created_at"`
}
