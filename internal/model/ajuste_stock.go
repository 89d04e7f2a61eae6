package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AjusteStock is an ingreso/salida stock-adjustment document: the simplified
// flow that drives the stock mutator directly, with no monetary effect.
// Tipo: "ingreso" | "salida"
type AjusteStock struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Tipo      string    `gorm:"type:varchar(10);not null"`
	Motivo    string    `gorm:"not null"`
	Estado    EstadoDocumento `gorm:"type:varchar(15);not null;default:'registrado'"`
	CreatedAt time.Time

	Detalles []AjusteStockDetalle `gorm:"foreignKey:AjusteStockID"`
}

func (AjusteStock) TableName() string { return "ajustes_stock" }

type AjusteStockDetalle struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AjusteStockID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoPorAlmacenID uuid.UUID       `gorm:"type:uuid;not null"`
	UnidadID             uuid.UUID       `gorm:"type:uuid;not null"`
	Factor               decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Cantidad             decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	CreatedAt            time.Time

	ProductoPorAlmacen *ProductoPorAlmacen `gorm:"foreignKey:ProductoPorAlmacenID"`
	Unidad             *Unidad             `gorm:"foreignKey:UnidadID"`
}

func (AjusteStockDetalle) TableName() string { return "ajuste_stock_detalles" }
