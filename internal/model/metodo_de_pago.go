package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MetodoDePago carries the shared running balance that documents affect.
// Saldo equals the net sum of all currently-applied ledger effects and is
// mutated ONLY by the conciliador, always through a single atomic
// "saldo = saldo + ?" update — never read-modify-write.
type MetodoDePago struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string          `gorm:"uniqueIndex;not null"`
	Saldo     decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	Activo    bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Despliegues []DespliegueDePago `gorm:"foreignKey:MetodoDePagoID"`
}

func (MetodoDePago) TableName() string { return "metodos_de_pago" }

// DespliegueDePago is a named channel under a MetodoDePago (a specific bank
// account, a cash drawer). Documents reference despliegues; monetary effects
// flow up to the parent method's saldo.
type DespliegueDePago struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre         string    `gorm:"not null"`
	MetodoDePagoID uuid.UUID `gorm:"type:uuid;not null;index"`
	Activo         bool      `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	MetodoDePago *MetodoDePago `gorm:"foreignKey:MetodoDePagoID"`
}

func (DespliegueDePago) TableName() string { return "despliegues_de_pago" }
