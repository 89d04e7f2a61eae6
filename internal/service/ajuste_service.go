package service

import (
	"context"
	"fmt"

	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/dto"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/model"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AjusteStockService is the simplified adjustment flow: a single-shot document
// with no monetary effect. Stock moves in the same transaction that persists
// the document, so an insufficient-stock salida rolls back everything.
type AjusteStockService interface {
	Registrar(ctx context.Context, req dto.RegistrarAjusteRequest) (*dto.AjusteResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.AjusteResponse, error)
	Listar(ctx context.Context, filter dto.AjusteFilter) (*dto.AjusteListResponse, error)
}

type ajusteStockService struct {
	repo     repository.AjusteStockRepository
	unidades repository.UnidadRepository
	stock    StockService
}

func NewAjusteStockService(
	repo repository.AjusteStockRepository,
	unidades repository.UnidadRepository,
	stock StockService,
) AjusteStockService {
	return &ajusteStockService{repo: repo, unidades: unidades, stock: stock}
}

func (s *ajusteStockService) Registrar(ctx context.Context, req dto.RegistrarAjusteRequest) (*dto.AjusteResponse, error) {
	direccion := Entrada
	if req.Tipo == "salida" {
		direccion = Salida
	}

	var ajuste model.AjusteStock
	var afectados []uuid.UUID
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		detalles := make([]model.AjusteStockDetalle, 0, len(req.Productos))
		for _, p := range req.Productos {
			ppaID, err := uuid.Parse(p.ProductoPorAlmacenID)
			if err != nil {
				return fmt.Errorf("producto_por_almacen_id inválido: %w", err)
			}
			if !p.Factor.IsPositive() || !p.Cantidad.IsPositive() {
				return ErrSnapshotInvalido
			}
			unidad, err := s.unidades.FirstOrCreateTx(tx, p.Unidad)
			if err != nil {
				return err
			}
			detalles = append(detalles, model.AjusteStockDetalle{
				ProductoPorAlmacenID: ppaID,
				UnidadID:             unidad.ID,
				Factor:               p.Factor,
				Cantidad:             p.Cantidad,
			})
		}

		ajuste = model.AjusteStock{
			Tipo:     req.Tipo,
			Motivo:   req.Motivo,
			Estado:   model.EstadoRegistrado,
			Detalles: detalles,
		}
		if err := s.repo.Create(ctx, tx, &ajuste); err != nil {
			return err
		}

		for _, d := range ajuste.Detalles {
			ref := ajuste.ID
			if _, err := s.stock.AplicarMovimientoTx(tx, MovimientoInput{
				ProductoPorAlmacenID: d.ProductoPorAlmacenID,
				Factor:               d.Factor,
				Cantidad:             d.Cantidad,
				Direccion:            direccion,
				Tipo:                 "ajuste_" + req.Tipo,
				Motivo:               req.Motivo,
				ReferenciaID:         &ref,
			}); err != nil {
				return err
			}
			if direccion == Salida {
				afectados = append(afectados, d.ProductoPorAlmacenID)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	s.stock.AlertarStockBajo(ctx, afectados)
	return s.Obtener(ctx, ajuste.ID)
}

func (s *ajusteStockService) Obtener(ctx context.Context, id uuid.UUID) (*dto.AjusteResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ajusteToResponse(a), nil
}

func (s *ajusteStockService) Listar(ctx context.Context, filter dto.AjusteFilter) (*dto.AjusteListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ajustes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AjusteResponse, 0, len(ajustes))
	for i := range ajustes {
		items = append(items, *ajusteToResponse(&ajustes[i]))
	}
	return &dto.AjusteListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func ajusteToResponse(a *model.AjusteStock) *dto.AjusteResponse {
	productos := make([]dto.AjusteDetalleResponse, 0, len(a.Detalles))
	for _, d := range a.Detalles {
		nombre := ""
		if d.Unidad != nil {
			nombre = d.Unidad.Nombre
		}
		producto := ""
		if d.ProductoPorAlmacen != nil && d.ProductoPorAlmacen.Producto != nil {
			producto = d.ProductoPorAlmacen.Producto.Nombre
		}
		productos = append(productos, dto.AjusteDetalleResponse{
			ID:                   d.ID.String(),
			ProductoPorAlmacenID: d.ProductoPorAlmacenID.String(),
			Producto:             producto,
			Unidad:               nombre,
			Factor:               d.Factor,
			Cantidad:             d.Cantidad,
		})
	}
	return &dto.AjusteResponse{
		ID:        a.ID.String(),
		Tipo:      a.Tipo,
		Motivo:    a.Motivo,
		Estado:    string(a.Estado),
		Productos: productos,
		CreatedAt: a.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
