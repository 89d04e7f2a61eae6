package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductoPorAlmacen is the stock counter for one product in one almacen.
// StockFraccion is expressed in the smallest countable unit and must never
// go negative; it is mutated exclusively by the stock mutator, which also
// writes a MovimientoStock audit row for every change.
type ProductoPorAlmacen struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_producto_almacen,unique"`
	AlmacenID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_producto_almacen,unique"`
	StockFraccion decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	CostoUnitario decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
	Almacen  *Almacen  `gorm:"foreignKey:AlmacenID"`
}

func (ProductoPorAlmacen) TableName() string { return "productos_por_almacen" }

// MovimientoStock registra cada cambio de stock. Immutable: rows are never
// updated or deleted — reversals create inverse entries.
// Tipo: "recepcion_compra" | "entrega_venta" | "ajuste_ingreso" |
// "ajuste_salida" | "prestamo" | "devolucion_prestamo" | "anulacion_prestamo"
type MovimientoStock struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoPorAlmacenID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tipo                 string          `gorm:"type:varchar(30);not null"`
	CantidadFraccion     decimal.Decimal `gorm:"type:decimal(14,4);not null"` // signed: positive = entrada
	StockAnterior        decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	StockNuevo           decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Motivo               string
	ReferenciaID         *uuid.UUID `gorm:"type:uuid"` // originating document, if any
	CreatedAt            time.Time

	ProductoPorAlmacen *ProductoPorAlmacen `gorm:"foreignKey:ProductoPorAlmacenID"`
}

func (MovimientoStock) TableName() string { return "movimientos_stock" }
