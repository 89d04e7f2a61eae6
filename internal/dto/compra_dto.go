package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// CompraFilter is bound from the query string of GET /v1/compras.
type CompraFilter struct {
	SocioID string `form:"socio_de_negocio_id" validate:"omitempty,uuid"`
	Estado  string `form:"estado"` // registrado | en espera | procesado | anulado | all
	Desde   string `form:"desde"`  // YYYY-MM-DD
	Hasta   string `form:"hasta"`  // YYYY-MM-DD
	Buscar  string `form:"buscar"` // serie/numero free search
	Page    int    `form:"page,default=1"   validate:"min=1"`
	Limit   int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CompraListResponse struct {
	Data  []CompraResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

// UnidadDerivadaCompraRequest is one unit conversion line inside a product
// line. Unidad is the snapshot name — resolved return-or-create at persist
// time, so the request never carries a catalog id.
type UnidadDerivadaCompraRequest struct {
	Unidad         string          `json:"unidad"      validate:"required"`
	Factor         decimal.Decimal `json:"factor"      validate:"required"`
	Cantidad       decimal.Decimal `json:"cantidad"    validate:"required"`
	Lote           *string         `json:"lote"`
	Vencimiento    *string         `json:"vencimiento" validate:"omitempty,datetime=2006-01-02"`
	Flete          decimal.Decimal `json:"flete"       validate:"min=0"`
	EsBonificacion bool            `json:"es_bonificacion"`
}

type ProductoPorAlmacenCompraRequest struct {
	ProductoPorAlmacenID string                        `json:"producto_por_almacen_id" validate:"required,uuid"`
	Costo                decimal.Decimal               `json:"costo"                   validate:"min=0"`
	UnidadesDerivadas    []UnidadDerivadaCompraRequest `json:"unidades_derivadas"      validate:"required,min=1,dive"`
}

type RegistrarCompraRequest struct {
	SocioDeNegocioID string          `json:"socio_de_negocio_id" validate:"required,uuid"`
	Serie            *string         `json:"serie"`
	Numero           *string         `json:"numero"`
	Moneda           string          `json:"moneda"         validate:"omitempty,oneof=soles dolares"`
	TipoDeCambio     decimal.Decimal `json:"tipo_de_cambio"`
	FormaDePago      string          `json:"forma_de_pago"  validate:"required,oneof=contado credito"`
	Estado           string          `json:"estado"         validate:"required,oneof=registrado 'en espera' procesado"`
	Percepcion       decimal.Decimal `json:"percepcion"     validate:"min=0"`
	Observacion      *string         `json:"observacion"`

	// Money source — exactly one for contado, none for credito.
	EgresoDineroID     *string `json:"egreso_dinero_id"      validate:"omitempty,uuid"`
	DespliegueDePagoID *string `json:"despliegue_de_pago_id" validate:"omitempty,uuid"`

	ProductosPorAlmacen []ProductoPorAlmacenCompraRequest `json:"productos_por_almacen" validate:"required,min=1,dive"`
}

// ActualizarCompraRequest is the partial update shape. Header fields left nil
// keep their current value; a non-nil ProductosPorAlmacen fully replaces the
// existing lines.
type ActualizarCompraRequest struct {
	SocioDeNegocioID *string          `json:"socio_de_negocio_id" validate:"omitempty,uuid"`
	Serie            *string          `json:"serie"`
	Numero           *string          `json:"numero"`
	Moneda           *string          `json:"moneda"        validate:"omitempty,oneof=soles dolares"`
	TipoDeCambio     *decimal.Decimal `json:"tipo_de_cambio"`
	FormaDePago      *string          `json:"forma_de_pago" validate:"omitempty,oneof=contado credito"`
	Estado           *string          `json:"estado"        validate:"omitempty,oneof=registrado 'en espera' procesado"`
	Percepcion       *decimal.Decimal `json:"percepcion"`
	Observacion      *string          `json:"observacion"`

	EgresoDineroID     *string `json:"egreso_dinero_id"      validate:"omitempty,uuid"`
	DespliegueDePagoID *string `json:"despliegue_de_pago_id" validate:"omitempty,uuid"`

	ProductosPorAlmacen []ProductoPorAlmacenCompraRequest `json:"productos_por_almacen" validate:"omitempty,min=1,dive"`
}

// RecepcionRequest fulfils purchase lines: each entry moves cantidad from
// pendiente into warehouse stock.
type RecepcionRequest struct {
	Unidades []RecepcionUnidadRequest `json:"unidades" validate:"required,min=1,dive"`
}

type RecepcionUnidadRequest struct {
	UnidadDeCompraID string          `json:"unidad_de_compra_id" validate:"required,uuid"`
	Cantidad         decimal.Decimal `json:"cantidad"            validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UnidadDerivadaCompraResponse struct {
	ID                string          `json:"id"`
	Unidad            string          `json:"unidad"`
	Factor            decimal.Decimal `json:"factor"`
	Cantidad          decimal.Decimal `json:"cantidad"`
	CantidadPendiente decimal.Decimal `json:"cantidad_pendiente"`
	Lote              *string         `json:"lote,omitempty"`
	Vencimiento       *string         `json:"vencimiento,omitempty"`
	Flete             decimal.Decimal `json:"flete"`
	EsBonificacion    bool            `json:"es_bonificacion"`
}

type CompraDetalleResponse struct {
	ID                   string                         `json:"id"`
	ProductoPorAlmacenID string                         `json:"producto_por_almacen_id"`
	Producto             string                         `json:"producto,omitempty"`
	Costo                decimal.Decimal                `json:"costo"`
	UnidadesDerivadas    []UnidadDerivadaCompraResponse `json:"unidades_derivadas"`
}

type CompraResponse struct {
	ID                 string                  `json:"id"`
	SocioDeNegocioID   string                  `json:"socio_de_negocio_id"`
	Socio              string                  `json:"socio,omitempty"`
	Serie              *string                 `json:"serie,omitempty"`
	Numero             *string                 `json:"numero,omitempty"`
	Moneda             string                  `json:"moneda"`
	TipoDeCambio       decimal.Decimal         `json:"tipo_de_cambio"`
	FormaDePago        string                  `json:"forma_de_pago"`
	Estado             string                  `json:"estado"`
	Percepcion         decimal.Decimal         `json:"percepcion"`
	Total              decimal.Decimal         `json:"total"`
	EgresoDineroID     *string                 `json:"egreso_dinero_id,omitempty"`
	DespliegueDePagoID *string                 `json:"despliegue_de_pago_id,omitempty"`
	Observacion        *string                 `json:"observacion,omitempty"`
	Detalles           []CompraDetalleResponse `json:"productos_por_almacen"`
	CreatedAt          string                  `json:"created_at"`
}
