package repository

import (
	"context"

	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DineroRepository reads the cash-in / cash-out records produced by the
// external cash-drawer subsystem. The only write this engine ever performs
// on them is deactivating an egreso when its compra is voided.
//
// Note: the reads used to verify amounts against computed totals are plain
// unlocked SELECTs — same discipline as the rest of the engine.
type DineroRepository interface {
	FindEgresoByID(ctx context.Context, id uuid.UUID) (*model.EgresoDinero, error)
	FindEgresoByIDTx(tx *gorm.DB, id uuid.UUID) (*model.EgresoDinero, error)
	FindIngresoByID(ctx context.Context, id uuid.UUID) (*model.IngresoDinero, error)
	FindIngresoByIDTx(tx *gorm.DB, id uuid.UUID) (*model.IngresoDinero, error)
	DesactivarEgresoTx(tx *gorm.DB, id uuid.UUID) error
}

type dineroRepo struct{ db *gorm.DB }

func NewDineroRepository(db *gorm.DB) DineroRepository { return &dineroRepo{db: db} }

func (r *dineroRepo) FindEgresoByID(ctx context.Context, id uuid.UUID) (*model.EgresoDinero, error) {
	var e model.EgresoDinero
	err := r.db.WithContext(ctx).Preload("DespliegueDePago").First(&e, "id = ?", id).Error
	return &e, err
}

func (r *dineroRepo) FindEgresoByIDTx(tx *gorm.DB, id uuid.UUID) (*model.EgresoDinero, error) {
	var e model.EgresoDinero
	err := tx.Preload("DespliegueDePago").First(&e, "id = ?", id).Error
	return &e, err
}

func (r *dineroRepo) FindIngresoByID(ctx context.Context, id uuid.UUID) (*model.IngresoDinero, error) {
	var i model.IngresoDinero
	err := r.db.WithContext(ctx).Preload("DespliegueDePago").First(&i, "id = ?", id).Error
	return &i, err
}

func (r *dineroRepo) FindIngresoByIDTx(tx *gorm.DB, id uuid.UUID) (*model.IngresoDinero, error) {
	var i model.IngresoDinero
	err := tx.Preload("DespliegueDePago").First(&i, "id = ?", id).Error
	return &i, err
}

func (r *dineroRepo) DesactivarEgresoTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Model(&model.EgresoDinero{}).Where("id = ?", id).Update("activo", false).Error
}
