package model

import (
	"time"

	"github.com/google/uuid"
)

// SocioDeNegocio is the counterparty of a document: proveedor for compras,
// cliente for ventas. CRUD lives outside this subsystem — documents consume
// socios by reference only.
type SocioDeNegocio struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre          string    `gorm:"index;not null"`
	NumeroDocumento string    `gorm:"uniqueIndex;not null"`
	Telefono        *string
	Direccion       *string
	Activo          bool `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (SocioDeNegocio) TableName() string { return "socios_de_negocio" }
