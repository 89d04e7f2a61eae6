package repository

import (
	"context"

	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductoPorAlmacenRepository gives the stock mutator its two primitives:
// an atomic counter update and an immutable audit insert. Nothing else in
// the codebase may touch stock_fraccion.
type ProductoPorAlmacenRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.ProductoPorAlmacen, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.ProductoPorAlmacen, error)
	// UpdateStockTx applies a signed fractional delta as a single atomic
	// UPDATE (never read-modify-write).
	UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error
	CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoStock) error
	ListMovimientos(ctx context.Context, productoPorAlmacenID uuid.UUID, limit int) ([]model.MovimientoStock, error)
	DB() *gorm.DB
}

type productoAlmacenRepo struct{ db *gorm.DB }

func NewProductoPorAlmacenRepository(db *gorm.DB) ProductoPorAlmacenRepository {
	return &productoAlmacenRepo{db: db}
}

func (r *productoAlmacenRepo) DB() *gorm.DB { return r.db }

func (r *productoAlmacenRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ProductoPorAlmacen, error) {
	var p model.ProductoPorAlmacen
	err := r.db.WithContext(ctx).Preload("Producto").Preload("Almacen").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productoAlmacenRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.ProductoPorAlmacen, error) {
	var p model.ProductoPorAlmacen
	err := tx.Preload("Producto").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productoAlmacenRepo) UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	return tx.Model(&model.ProductoPorAlmacen{}).Where("id = ?", id).
		Update("stock_fraccion", gorm.Expr("stock_fraccion + ?", delta)).Error
}

func (r *productoAlmacenRepo) CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoStock) error {
	return tx.Create(m).Error
}

func (r *productoAlmacenRepo) ListMovimientos(ctx context.Context, productoPorAlmacenID uuid.UUID, limit int) ([]model.MovimientoStock, error) {
	var movs []model.MovimientoStock
	err := r.db.WithContext(ctx).
		Where("producto_por_almacen_id = ?", productoPorAlmacenID).
		Order("created_at DESC").
		Limit(limit).
		Find(&movs).Error
	return movs, err
}
