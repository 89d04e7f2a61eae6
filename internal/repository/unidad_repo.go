package repository

import (
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/model"

	"gorm.io/gorm"
)

// UnidadRepository resolves derived-unit names into immutable snapshot rows.
type UnidadRepository interface {
	// FirstOrCreateTx returns the snapshot row for nombre, inserting it on
	// first use. Existing rows are never touched.
	FirstOrCreateTx(tx *gorm.DB, nombre string) (*model.Unidad, error)
}

type unidadRepo struct{ db *gorm.DB }

func NewUnidadRepository(db *gorm.DB) UnidadRepository { return &unidadRepo{db: db} }

func (r *unidadRepo) FirstOrCreateTx(tx *gorm.DB, nombre string) (*model.Unidad, error) {
	var u model.Unidad
	err := tx.Where(model.Unidad{Nombre: nombre}).FirstOrCreate(&u).Error
	return &u, err
}
