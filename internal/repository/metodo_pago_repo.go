package repository

import (
	"context"

	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MetodoDePagoRepository is the only path to the shared payment-method
// balance. AjustarSaldoTx is a single atomic increment/decrement so that
// concurrent documents touching the same method stay consistent.
type MetodoDePagoRepository interface {
	FindMetodoByID(ctx context.Context, id uuid.UUID) (*model.MetodoDePago, error)
	FindDespliegueByID(ctx context.Context, id uuid.UUID) (*model.DespliegueDePago, error)
	FindDespliegueByIDTx(tx *gorm.DB, id uuid.UUID) (*model.DespliegueDePago, error)
	AjustarSaldoTx(tx *gorm.DB, metodoID uuid.UUID, delta decimal.Decimal) error
	DB() *gorm.DB
}

type metodoPagoRepo struct{ db *gorm.DB }

func NewMetodoDePagoRepository(db *gorm.DB) MetodoDePagoRepository {
	return &metodoPagoRepo{db: db}
}

func (r *metodoPagoRepo) DB() *gorm.DB { return r.db }

func (r *metodoPagoRepo) FindMetodoByID(ctx context.Context, id uuid.UUID) (*model.MetodoDePago, error) {
	var m model.MetodoDePago
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	return &m, err
}

func (r *metodoPagoRepo) FindDespliegueByID(ctx context.Context, id uuid.UUID) (*model.DespliegueDePago, error) {
	var d model.DespliegueDePago
	err := r.db.WithContext(ctx).Preload("MetodoDePago").First(&d, "id = ?", id).Error
	return &d, err
}

func (r *metodoPagoRepo) FindDespliegueByIDTx(tx *gorm.DB, id uuid.UUID) (*model.DespliegueDePago, error) {
	var d model.DespliegueDePago
	err := tx.Preload("MetodoDePago").First(&d, "id = ?", id).Error
	return &d, err
}

func (r *metodoPagoRepo) AjustarSaldoTx(tx *gorm.DB, metodoID uuid.UUID, delta decimal.Decimal) error {
	return tx.Model(&model.MetodoDePago{}).Where("id = ?", metodoID).
		Update("saldo", gorm.Expr("saldo + ?", delta)).Error
}
