package model

import (
	"time"

	"github.com/google/uuid"
)

// Unidad is the snapshot catalog for derived units ("caja de 12", "docena").
// Rows are keyed by Nombre and created on demand; once created they are never
// mutated or deleted, so historical document lines keep pointing at the name
// they were registered with even if the live unit catalog changes later.
type Unidad struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

func (Unidad) TableName() string { return "unidades" }
