package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/model"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/repository"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrStockInsuficiente rejects any salida that would leave the counter
// negative. No mutation happens on rejection.
var ErrStockInsuficiente = errors.New("stock insuficiente")

// Direccion of a stock movement: +1 entrada, -1 salida.
type Direccion int

const (
	Entrada Direccion = 1
	Salida  Direccion = -1
)

// MovimientoInput describes one stock mutation in derived units; the mutator
// converts to fracción via the factor.
type MovimientoInput struct {
	ProductoPorAlmacenID uuid.UUID
	Factor               decimal.Decimal
	Cantidad             decimal.Decimal
	Direccion            Direccion
	Tipo                 string
	Motivo               string
	ReferenciaID         *uuid.UUID
}

// StockService is the only mutator of stock counters. Every change writes a
// MovimientoStock audit row with the before/after values.
type StockService interface {
	AplicarMovimientoTx(tx *gorm.DB, in MovimientoInput) (*model.MovimientoStock, error)
	// AlertarStockBajo checks counters after a confirmed salida and enqueues
	// a low-stock alert. Called post-commit — never inside the transaction.
	AlertarStockBajo(ctx context.Context, productoPorAlmacenIDs []uuid.UUID)
}

type stockService struct {
	repo       repository.ProductoPorAlmacenRepository
	dispatcher *worker.Dispatcher
}

func NewStockService(repo repository.ProductoPorAlmacenRepository, dispatcher *worker.Dispatcher) StockService {
	return &stockService{repo: repo, dispatcher: dispatcher}
}

func (s *stockService) AplicarMovimientoTx(tx *gorm.DB, in MovimientoInput) (*model.MovimientoStock, error) {
	if !in.Factor.IsPositive() || !in.Cantidad.IsPositive() {
		return nil, fmt.Errorf("movimiento de stock inválido: factor y cantidad deben ser positivos")
	}

	actual, err := s.repo.FindByIDTx(tx, in.ProductoPorAlmacenID)
	if err != nil {
		return nil, err
	}

	delta := in.Factor.Mul(in.Cantidad)
	if in.Direccion == Salida {
		delta = delta.Neg()
		if actual.StockFraccion.Add(delta).IsNegative() {
			return nil, ErrStockInsuficiente
		}
	}

	if err := s.repo.UpdateStockTx(tx, in.ProductoPorAlmacenID, delta); err != nil {
		return nil, err
	}

	mov := &model.MovimientoStock{
		ProductoPorAlmacenID: in.ProductoPorAlmacenID,
		Tipo:                 in.Tipo,
		CantidadFraccion:     delta,
		StockAnterior:        actual.StockFraccion,
		StockNuevo:           actual.StockFraccion.Add(delta),
		Motivo:               in.Motivo,
		ReferenciaID:         in.ReferenciaID,
	}
	if err := s.repo.CreateMovimientoTx(tx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

func (s *stockService) AlertarStockBajo(ctx context.Context, ids []uuid.UUID) {
	if s.dispatcher == nil {
		return
	}
	for _, id := range ids {
		p, err := s.repo.FindByID(ctx, id)
		if err != nil || p.Producto == nil {
			continue
		}
		if p.StockFraccion.LessThan(p.Producto.StockMinimo) {
			// Fire & forget — an alert that fails to enqueue never blocks a sale.
			_ = s.dispatcher.EnqueueAlertaStock(ctx, worker.AlertaStockPayload{
				ProductoPorAlmacenID: id.String(),
				Producto:             p.Producto.Nombre,
				StockFraccion:        p.StockFraccion.String(),
				StockMinimo:          p.Producto.StockMinimo.String(),
			})
		}
	}
}
