package dto

import "github.com/shopspring/decimal"

// MovimientoStockResponse is one immutable audit entry of the stock trail.
type MovimientoStockResponse struct {
	ID                   string          `json:"id"`
	ProductoPorAlmacenID string          `json:"producto_por_almacen_id"`
	Tipo                 string          `json:"tipo"`
	CantidadFraccion     decimal.Decimal `json:"cantidad_fraccion"`
	StockAnterior        decimal.Decimal `json:"stock_anterior"`
	StockNuevo           decimal.Decimal `json:"stock_nuevo"`
	Motivo               string          `json:"motivo,omitempty"`
	ReferenciaID         *string         `json:"referencia_id,omitempty"`
	CreatedAt            string          `json:"created_at"`
}
