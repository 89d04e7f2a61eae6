package repository

import (
	"context"

	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/dto"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Venta, error)
	UpdateHeaderTx(tx *gorm.DB, v *model.Venta) error
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado model.EstadoDocumento) error
	ReplaceDetallesTx(tx *gorm.DB, ventaID uuid.UUID, detalles []model.VentaDetalle) error
	// ReplacePagosTx swaps the despliegue allocation list wholesale.
	ReplacePagosTx(tx *gorm.DB, ventaID uuid.UUID, pagos []model.VentaPago) error
	ExisteDuplicado(ctx context.Context, socioID uuid.UUID, serie, numero string, excluirID *uuid.UUID) (bool, error)
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)

	FindUnidadTx(tx *gorm.DB, id uuid.UUID) (*model.UnidadDeVenta, error)
	FindDetalleTx(tx *gorm.DB, id uuid.UUID) (*model.VentaDetalle, error)
	DecrementarPendienteTx(tx *gorm.DB, id uuid.UUID, cantidad decimal.Decimal) error

	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return tx.WithContext(ctx).Create(v).Error
}

func preloadVenta(q *gorm.DB) *gorm.DB {
	return q.Preload("SocioDeNegocio").
		Preload("IngresoDinero").
		Preload("Pagos.DespliegueDePago.MetodoDePago").
		Preload("Detalles.ProductoPorAlmacen.Producto").
		Preload("Detalles.Unidades.Unidad")
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := preloadVenta(r.db.WithContext(ctx)).First(&v, "id = ?", id).Error
	return &v, err
}

func (r *ventaRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := preloadVenta(tx).First(&v, "id = ?", id).Error
	return &v, err
}

func (r *ventaRepo) UpdateHeaderTx(tx *gorm.DB, v *model.Venta) error {
	return tx.Model(&model.Venta{}).Where("id = ?", v.ID).Updates(map[string]interface{}{
		"socio_de_negocio_id": v.SocioDeNegocioID,
		"serie":               v.Serie,
		"numero":              v.Numero,
		"moneda":              v.Moneda,
		"tipo_de_cambio":      v.TipoDeCambio,
		"forma_de_pago":       v.FormaDePago,
		"estado":              v.Estado,
		"total":               v.Total,
		"ingreso_dinero_id":   v.IngresoDineroID,
		"observacion":         v.Observacion,
	}).Error
}

func (r *ventaRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado model.EstadoDocumento) error {
	return tx.Model(&model.Venta{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *ventaRepo) ReplaceDetallesTx(tx *gorm.DB, ventaID uuid.UUID, detalles []model.VentaDetalle) error {
	if err := tx.Where("venta_detalle_id IN (?)",
		tx.Model(&model.VentaDetalle{}).Select("id").Where("venta_id = ?", ventaID),
	).Delete(&model.UnidadDeVenta{}).Error; err != nil {
		return err
	}
	if err := tx.Where("venta_id = ?", ventaID).Delete(&model.VentaDetalle{}).Error; err != nil {
		return err
	}
	for i := range detalles {
		detalles[i].VentaID = ventaID
		if err := tx.Create(&detalles[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *ventaRepo) ReplacePagosTx(tx *gorm.DB, ventaID uuid.UUID, pagos []model.VentaPago) error {
	if err := tx.Where("venta_id = ?", ventaID).Delete(&model.VentaPago{}).Error; err != nil {
		return err
	}
	for i := range pagos {
		pagos[i].VentaID = ventaID
		if err := tx.Create(&pagos[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *ventaRepo) ExisteDuplicado(ctx context.Context, socioID uuid.UUID, serie, numero string, excluirID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&model.Venta{}).
		Where("socio_de_negocio_id = ? AND serie = ? AND numero = ?", socioID, serie, numero)
	if excluirID != nil {
		q = q.Where("id <> ?", *excluirID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Venta{})
	if filter.SocioID != "" {
		q = q.Where("socio_de_negocio_id = ?", filter.SocioID)
	}
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Desde != "" {
		q = q.Where("DATE(created_at) >= ?", filter.Desde)
	}
	if filter.Hasta != "" {
		q = q.Where("DATE(created_at) <= ?", filter.Hasta)
	}
	if filter.Buscar != "" {
		q = q.Where("serie ILIKE ? OR numero ILIKE ?", "%"+filter.Buscar+"%", "%"+filter.Buscar+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := preloadVenta(q).
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ventas).Error
	return ventas, total, err
}

func (r *ventaRepo) FindUnidadTx(tx *gorm.DB, id uuid.UUID) (*model.UnidadDeVenta, error) {
	var u model.UnidadDeVenta
	if err := tx.First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *ventaRepo) FindDetalleTx(tx *gorm.DB, id uuid.UUID) (*model.VentaDetalle, error) {
	var d model.VentaDetalle
	if err := tx.First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *ventaRepo) DecrementarPendienteTx(tx *gorm.DB, id uuid.UUID, cantidad decimal.Decimal) error {
	res := tx.Model(&model.UnidadDeVenta{}).
		Where("id = ? AND cantidad_pendiente >= ?", id, cantidad).
		Update("cantidad_pendiente", gorm.Expr("cantidad_pendiente - ?", cantidad))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
