package repository

import (
	"context"

	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/dto"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AjusteStockRepository interface {
	Create(ctx context.Context, tx *gorm.DB, a *model.AjusteStock) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AjusteStock, error)
	List(ctx context.Context, filter dto.AjusteFilter) ([]model.AjusteStock, int64, error)
	DB() *gorm.DB
}

type ajusteRepo struct{ db *gorm.DB }

func NewAjusteStockRepository(db *gorm.DB) AjusteStockRepository { return &ajusteRepo{db: db} }

func (r *ajusteRepo) DB() *gorm.DB { return r.db }

func (r *ajusteRepo) Create(ctx context.Context, tx *gorm.DB, a *model.AjusteStock) error {
	return tx.WithContext(ctx).Create(a).Error
}

func (r *ajusteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.AjusteStock, error) {
	var a model.AjusteStock
	err := r.db.WithContext(ctx).
		Preload("Detalles.ProductoPorAlmacen.Producto").
		Preload("Detalles.Unidad").
		First(&a, "id = ?", id).Error
	return &a, err
}

func (r *ajusteRepo) List(ctx context.Context, filter dto.AjusteFilter) ([]model.AjusteStock, int64, error) {
	var ajustes []model.AjusteStock
	var total int64

	q := r.db.WithContext(ctx).Model(&model.AjusteStock{})
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Detalles.ProductoPorAlmacen.Producto").
		Preload("Detalles.Unidad").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ajustes).Error
	return ajustes, total, err
}
