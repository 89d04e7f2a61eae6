package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de préstamo. "anulado" only before devolución.
const (
	PrestamoPrestado = "prestado"
	PrestamoDevuelto = "devuelto"
	PrestamoAnulado  = "anulado"
)

// Prestamo lends stock to a socio: salida on create, entrada on devolución.
// No monetary effect — it is the loan-shaped simplified variant of the
// document flows.
type Prestamo struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SocioDeNegocioID uuid.UUID `gorm:"type:uuid;not null;index"`
	Estado           string    `gorm:"type:varchar(10);not null;default:'prestado'"`
	Observacion      *string
	DevueltoAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	SocioDeNegocio *SocioDeNegocio   `gorm:"foreignKey:SocioDeNegocioID"`
	Detalles       []PrestamoDetalle `gorm:"foreignKey:PrestamoID"`
}

func (Prestamo) TableName() string { return "prestamos" }

type PrestamoDetalle struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PrestamoID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoPorAlmacenID uuid.UUID       `gorm:"type:uuid;not null"`
	UnidadID             uuid.UUID       `gorm:"type:uuid;not null"`
	Factor               decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Cantidad             decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	CreatedAt            time.Time

	ProductoPorAlmacen *ProductoPorAlmacen `gorm:"foreignKey:ProductoPorAlmacenID"`
	Unidad             *Unidad             `gorm:"foreignKey:UnidadID"`
}

func (PrestamoDetalle) TableName() string { return "prestamo_detalles" }
