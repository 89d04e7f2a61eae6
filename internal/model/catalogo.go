package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Almacen is a physical or logical stock location. Plain catalog — managed
// outside this subsystem.
type Almacen struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	Ubicacion *string
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Productos []ProductoPorAlmacen `gorm:"foreignKey:AlmacenID"`
}

func (Almacen) TableName() string { return "almacenes" }

// Producto is the catalog entry. Stock never lives here: all quantities are
// tracked per almacen in ProductoPorAlmacen, in the smallest unit (fracción).
type Producto struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CodigoBarras string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"index;not null"`
	Descripcion  *string
	Categoria    string          `gorm:"not null"`
	Marca        *string
	StockMinimo  decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	Activo       bool            `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
