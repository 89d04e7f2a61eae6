package repository

import (
	"context"

	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/dto"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrestamoRepository interface {
	Create(ctx context.Context, tx *gorm.DB, p *model.Prestamo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Prestamo, error)
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error
	MarcarDevueltoTx(tx *gorm.DB, id uuid.UUID) error
	List(ctx context.Context, filter dto.PrestamoFilter) ([]model.Prestamo, int64, error)
	DB() *gorm.DB
}

type prestamoRepo struct{ db *gorm.DB }

func NewPrestamoRepository(db *gorm.DB) PrestamoRepository { return &prestamoRepo{db: db} }

func (r *prestamoRepo) DB() *gorm.DB { return r.db }

func (r *prestamoRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Prestamo) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *prestamoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Prestamo, error) {
	var p model.Prestamo
	err := r.db.WithContext(ctx).
		Preload("SocioDeNegocio").
		Preload("Detalles.ProductoPorAlmacen.Producto").
		Preload("Detalles.Unidad").
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *prestamoRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.Model(&model.Prestamo{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *prestamoRepo) MarcarDevueltoTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Model(&model.Prestamo{}).Where("id = ?", id).Updates(map[string]interface{}{
		"estado":      model.PrestamoDevuelto,
		"devuelto_at": gorm.Expr("NOW()"),
	}).Error
}

func (r *prestamoRepo) List(ctx context.Context, filter dto.PrestamoFilter) ([]model.Prestamo, int64, error) {
	var prestamos []model.Prestamo
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Prestamo{})
	if filter.SocioID != "" {
		q = q.Where("socio_de_negocio_id = ?", filter.SocioID)
	}
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("SocioDeNegocio").
		Preload("Detalles.ProductoPorAlmacen.Producto").
		Preload("Detalles.Unidad").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&prestamos).Error
	return prestamos, total, err
}
