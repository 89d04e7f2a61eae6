package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EgresoDinero is a cash-out record produced by the external cash-drawer
// subsystem: money physically disbursed, with the change handed back.
// Referenced by at most one compra at a time; voiding that compra
// deactivates the egreso.
type EgresoDinero struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Monto              decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Vuelto             decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	DespliegueDePagoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Descripcion        string
	Activo             bool `gorm:"not null;default:true"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	DespliegueDePago *DespliegueDePago `gorm:"foreignKey:DespliegueDePagoID"`
}

func (EgresoDinero) TableName() string { return "egresos_dinero" }

// IngresoDinero is the cash-in counterpart, referenced by at most one venta.
type IngresoDinero struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Monto              decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	DespliegueDePagoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Descripcion        string
	Activo             bool `gorm:"not null;default:true"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	DespliegueDePago *DespliegueDePago `gorm:"foreignKey:DespliegueDePagoID"`
}

func (IngresoDinero) TableName() string { return "ingresos_dinero" }
