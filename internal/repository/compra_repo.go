package repository

import (
	"context"

	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/dto"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CompraRepository is the data access contract for purchase documents.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling unit testing via in-memory stubs.
type CompraRepository interface {
	Create(ctx context.Context, tx *gorm.DB, c *model.Compra) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Compra, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Compra, error)
	UpdateHeaderTx(tx *gorm.DB, c *model.Compra) error
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado model.EstadoDocumento) error
	// ReplaceDetallesTx deletes all existing lines (snapshots included) and
	// inserts the new ones. Lines are always replaced wholesale, never merged.
	ReplaceDetallesTx(tx *gorm.DB, compraID uuid.UUID, detalles []model.CompraDetalle) error
	// ExisteDuplicado checks the (socio, serie, numero) header uniqueness rule.
	ExisteDuplicado(ctx context.Context, socioID uuid.UUID, serie, numero string, excluirID *uuid.UUID) (bool, error)
	List(ctx context.Context, filter dto.CompraFilter) ([]model.Compra, int64, error)

	FindUnidadTx(tx *gorm.DB, id uuid.UUID) (*model.UnidadDeCompra, error)
	FindDetalleTx(tx *gorm.DB, id uuid.UUID) (*model.CompraDetalle, error)
	DecrementarPendienteTx(tx *gorm.DB, id uuid.UUID, cantidad decimal.Decimal) error

	DB() *gorm.DB // exposes the DB for transaction creation in the service layer
}

type compraRepo struct{ db *gorm.DB }

func NewCompraRepository(db *gorm.DB) CompraRepository { return &compraRepo{db: db} }

func (r *compraRepo) DB() *gorm.DB { return r.db }

func (r *compraRepo) Create(ctx context.Context, tx *gorm.DB, c *model.Compra) error {
	return tx.WithContext(ctx).Create(c).Error
}

const compraPreloads = "Detalles.Unidades.Unidad"

func preloadCompra(q *gorm.DB) *gorm.DB {
	return q.Preload("SocioDeNegocio").
		Preload("EgresoDinero").
		Preload("DespliegueDePago.MetodoDePago").
		Preload("Detalles.ProductoPorAlmacen.Producto").
		Preload(compraPreloads)
}

func (r *compraRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Compra, error) {
	var c model.Compra
	err := preloadCompra(r.db.WithContext(ctx)).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *compraRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Compra, error) {
	var c model.Compra
	err := preloadCompra(tx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *compraRepo) UpdateHeaderTx(tx *gorm.DB, c *model.Compra) error {
	return tx.Model(&model.Compra{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"socio_de_negocio_id":   c.SocioDeNegocioID,
		"serie":                 c.Serie,
		"numero":                c.Numero,
		"moneda":                c.Moneda,
		"tipo_de_cambio":        c.TipoDeCambio,
		"forma_de_pago":         c.FormaDePago,
		"estado":                c.Estado,
		"percepcion":            c.Percepcion,
		"total":                 c.Total,
		"egreso_dinero_id":      c.EgresoDineroID,
		"despliegue_de_pago_id": c.DespliegueDePagoID,
		"observacion":           c.Observacion,
	}).Error
}

func (r *compraRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado model.EstadoDocumento) error {
	return tx.Model(&model.Compra{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *compraRepo) ReplaceDetallesTx(tx *gorm.DB, compraID uuid.UUID, detalles []model.CompraDetalle) error {
	// Snapshots first (FK), then the lines.
	if err := tx.Where("compra_detalle_id IN (?)",
		tx.Model(&model.CompraDetalle{}).Select("id").Where("compra_id = ?", compraID),
	).Delete(&model.UnidadDeCompra{}).Error; err != nil {
		return err
	}
	if err := tx.Where("compra_id = ?", compraID).Delete(&model.CompraDetalle{}).Error; err != nil {
		return err
	}
	for i := range detalles {
		detalles[i].CompraID = compraID
		if err := tx.Create(&detalles[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *compraRepo) ExisteDuplicado(ctx context.Context, socioID uuid.UUID, serie, numero string, excluirID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&model.Compra{}).
		Where("socio_de_negocio_id = ? AND serie = ? AND numero = ?", socioID, serie, numero)
	if excluirID != nil {
		q = q.Where("id <> ?", *excluirID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *compraRepo) List(ctx context.Context, filter dto.CompraFilter) ([]model.Compra, int64, error) {
	var compras []model.Compra
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Compra{})
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
	err := preloadCompra(q).
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&compras).Error
	return compras, total, err
}

func (r *compraRepo) FindUnidadTx(tx *gorm.DB, id uuid.UUID) (*model.UnidadDeCompra, error) {
	var u model.UnidadDeCompra
	if err := tx.First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *compraRepo) FindDetalleTx(tx *gorm.DB, id uuid.UUID) (*model.CompraDetalle, error) {
	var d model.CompraDetalle
	if err := tx.First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// DecrementarPendienteTx atomically consumes pending quantity. The WHERE guard
// keeps cantidad_pendiente from ever dropping below zero under concurrency.
func (r *compraRepo) DecrementarPendienteTx(tx *gorm.DB, id uuid.UUID, cantidad decimal.Decimal) error {
	res := tx.Model(&model.UnidadDeCompra{}).
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
