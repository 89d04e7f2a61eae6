package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Compra is a purchase document. Never physically deleted — anulación is a
// state transition that reverses the ledger effect and deactivates the
// linked egreso.
//
// Money source: for pago contado exactly one of EgresoDineroID /
// DespliegueDePagoID is set (enforced by the validator before persistence);
// for crédito both are nil.
type Compra struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SocioDeNegocioID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Serie            *string         `gorm:"type:varchar(10)"`
	Numero           *string         `gorm:"type:varchar(20)"`
	Moneda           Moneda          `gorm:"type:varchar(10);not null;default:'soles'"`
	TipoDeCambio     decimal.Decimal `gorm:"type:decimal(10,4);not null;default:1"`
	FormaDePago      FormaDePago     `gorm:"type:varchar(10);not null"`
	Estado           EstadoDocumento `gorm:"type:varchar(15);not null;index"`
	// Percepcion is the header-level surcharge tax added after line totals.
	Percepcion decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	// Total is in document currency; the base-currency effect applied to the
	// metodo de pago is recomputed from the persisted detalles.
	Total              decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	EgresoDineroID     *uuid.UUID      `gorm:"type:uuid;uniqueIndex"`
	DespliegueDePagoID *uuid.UUID      `gorm:"type:uuid"`
	Observacion        *string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	SocioDeNegocio   *SocioDeNegocio   `gorm:"foreignKey:SocioDeNegocioID"`
	EgresoDinero     *EgresoDinero     `gorm:"foreignKey:EgresoDineroID"`
	DespliegueDePago *DespliegueDePago `gorm:"foreignKey:DespliegueDePagoID"`
	Detalles         []CompraDetalle   `gorm:"foreignKey:CompraID"`
}

// CompraDetalle is one product line. Costo is captured at document time and
// immutable once downstream sub-documents reference the line.
type CompraDetalle struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompraID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoPorAlmacenID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Costo                decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	CreatedAt            time.Time

	ProductoPorAlmacen *ProductoPorAlmacen `gorm:"foreignKey:ProductoPorAlmacenID"`
	Unidades           []UnidadDeCompra    `gorm:"foreignKey:CompraDetalleID"`
}

func (CompraDetalle) TableName() string { return "compra_detalles" }

// UnidadDeCompra is the immutable per-line unit conversion snapshot.
// Invariants: Factor > 0; 0 <= CantidadPendiente <= Cantidad.
// CantidadPendiente is decremented only by warehouse receptions.
type UnidadDeCompra struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompraDetalleID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	UnidadID          uuid.UUID       `gorm:"type:uuid;not null"`
	Factor            decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Cantidad          decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	CantidadPendiente decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Lote              *string         `gorm:"type:varchar(30)"`
	Vencimiento       *time.Time
	Flete             decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	// EsBonificacion lines enter at zero cost: excluded from the monetary
	// total but still counted for stock and flete.
	EsBonificacion bool `gorm:"not null;default:false"`
	CreatedAt      time.Time

	Unidad *Unidad `gorm:"foreignKey:UnidadID"`
}

func (UnidadDeCompra) TableName() string { return "unidades_de_compra" }
