package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta is a sale document. Money source for pago contado is exactly one of:
// a single IngresoDinero reference, or a list of despliegue allocations
// (Pagos), each with its own amount.
type Venta struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SocioDeNegocioID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Serie            *string         `gorm:"type:varchar(10)"`
	Numero           *string         `gorm:"type:varchar(20)"`
	Moneda           Moneda          `gorm:"type:varchar(10);not null;default:'soles'"`
	TipoDeCambio     decimal.Decimal `gorm:"type:decimal(10,4);not null;default:1"`
	FormaDePago      FormaDePago     `gorm:"type:varchar(10);not null"`
	Estado           EstadoDocumento `gorm:"type:varchar(15);not null;index"`
	Total            decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	IngresoDineroID  *uuid.UUID      `gorm:"type:uuid;uniqueIndex"`
	Observacion      *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	SocioDeNegocio *SocioDeNegocio `gorm:"foreignKey:SocioDeNegocioID"`
	IngresoDinero  *IngresoDinero  `gorm:"foreignKey:IngresoDineroID"`
	Detalles       []VentaDetalle  `gorm:"foreignKey:VentaID"`
	Pagos          []VentaPago     `gorm:"foreignKey:VentaID"`
}

// VentaDetalle is one product line; Precio captured at document time.
type VentaDetalle struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID              uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoPorAlmacenID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Precio               decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	CreatedAt            time.Time

	ProductoPorAlmacen *ProductoPorAlmacen `gorm:"foreignKey:ProductoPorAlmacenID"`
	Unidades           []UnidadDeVenta     `gorm:"foreignKey:VentaDetalleID"`
}

func (VentaDetalle) TableName() string { return "venta_detalles" }

// UnidadDeVenta mirrors UnidadDeCompra with sale-side extras: recargo and a
// percentage-or-fixed descuento applied after the recargo.
// Invariants: Factor > 0; 0 <= CantidadPendiente <= Cantidad.
// CantidadPendiente is decremented only by deliveries.
type UnidadDeVenta struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaDetalleID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	UnidadID          uuid.UUID       `gorm:"type:uuid;not null"`
	Factor            decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Cantidad          decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	CantidadPendiente decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Recargo           decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	Descuento         decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	TipoDescuento     TipoDescuento   `gorm:"type:varchar(12);not null;default:'monto'"`
	CreatedAt         time.Time

	Unidad *Unidad `gorm:"foreignKey:UnidadID"`
}

func (UnidadDeVenta) TableName() string { return "unidades_de_venta" }

// VentaPago allocates part of a sale's collection to one despliegue de pago.
type VentaPago struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	DespliegueDePagoID uuid.UUID       `gorm:"type:uuid;not null"`
	Monto              decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	CreatedAt          time.Time

	DespliegueDePago *DespliegueDePago `gorm:"foreignKey:DespliegueDePagoID"`
}

func (VentaPago) TableName() string { return "venta_pagos" }
