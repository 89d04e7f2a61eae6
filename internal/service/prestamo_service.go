package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/dto"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/model"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPrestamoNoPrestado = errors.New("el préstamo no está en estado prestado")
)

// PrestamoService lends stock to a socio de negocio: salida at registration,
// entrada on devolución or anulación. No balances are touched.
type PrestamoService interface {
	Registrar(ctx context.Context, req dto.RegistrarPrestamoRequest) (*dto.PrestamoResponse, error)
	Devolver(ctx context.Context, id uuid.UUID) error
	Anular(ctx context.Context, id uuid.UUID) error
	Obtener(ctx context.Context, id uuid.UUID) (*dto.PrestamoResponse, error)
	Listar(ctx context.Context, filter dto.PrestamoFilter) (*dto.PrestamoListResponse, error)
}

type prestamoService struct {
	repo     repository.PrestamoRepository
	unidades repository.UnidadRepository
	stock    StockService
}

func NewPrestamoService(
	repo repository.PrestamoRepository,
	unidades repository.UnidadRepository,
	stock StockService,
) PrestamoService {
	return &prestamoService{repo: repo, unidades: unidades, stock: stock}
}

func (s *prestamoService) Registrar(ctx context.Context, req dto.RegistrarPrestamoRequest) (*dto.PrestamoResponse, error) {
	socioID, err := uuid.Parse(req.SocioDeNegocioID)
	if err != nil {
		return nil, fmt.Errorf("socio_de_negocio_id inválido: %w", err)
	}

	var prestamo model.Prestamo
	var afectados []uuid.UUID
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		detalles := make([]model.PrestamoDetalle, 0, len(req.Productos))
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
			detalles = append(detalles, model.PrestamoDetalle{
				ProductoPorAlmacenID: ppaID,
				UnidadID:             unidad.ID,
				Factor:               p.Factor,
				Cantidad:             p.Cantidad,
			})
		}

		prestamo = model.Prestamo{
			SocioDeNegocioID: socioID,
			Estado:           model.PrestamoPrestado,
			Observacion:      req.Observacion,
			Detalles:         detalles,
		}
		if err := s.repo.Create(ctx, tx, &prestamo); err != nil {
			return err
		}

		for _, d := range prestamo.Detalles {
			ref := prestamo.ID
			if _, err := s.stock.AplicarMovimientoTx(tx, MovimientoInput{
				ProductoPorAlmacenID: d.ProductoPorAlmacenID,
				Factor:               d.Factor,
				Cantidad:             d.Cantidad,
				Direccion:            Salida,
				Tipo:                 "prestamo",
				Motivo:               "Préstamo a socio de negocio",
				ReferenciaID:         &ref,
			}); err != nil {
				return err
			}
			afectados = append(afectados, d.ProductoPorAlmacenID)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	s.stock.AlertarStockBajo(ctx, afectados)
	return s.Obtener(ctx, prestamo.ID)
}

// Devolver returns the lent stock: one entrada per detalle, then the estado
// flips to devuelto with the timestamp set by the database.
func (s *prestamoService) Devolver(ctx context.Context, id uuid.UUID) error {
	prestamo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if prestamo.Estado != model.PrestamoPrestado {
		return ErrPrestamoNoPrestado
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.reponerStockTx(tx, prestamo, "devolucion_prestamo", "Devolución de préstamo"); err != nil {
			return err
		}
		return s.repo.MarcarDevueltoTx(tx, id)
	})
}

// Anular undoes a loan that never happened: stock returns just like a
// devolución, but the document ends in anulado. Only valid before devolución.
func (s *prestamoService) Anular(ctx context.Context, id uuid.UUID) error {
	prestamo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if prestamo.Estado != model.PrestamoPrestado {
		return ErrPrestamoNoPrestado
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.reponerStockTx(tx, prestamo, "anulacion_prestamo", "Anulación de préstamo"); err != nil {
			return err
		}
		return s.repo.UpdateEstadoTx(tx, id, model.PrestamoAnulado)
	})
}

func (s *prestamoService) reponerStockTx(tx *gorm.DB, prestamo *model.Prestamo, tipo, motivo string) error {
	for _, d := range prestamo.Detalles {
		ref := prestamo.ID
		if _, err := s.stock.AplicarMovimientoTx(tx, MovimientoInput{
			ProductoPorAlmacenID: d.ProductoPorAlmacenID,
			Factor:               d.Factor,
			Cantidad:             d.Cantidad,
			Direccion:            Entrada,
			Tipo:                 tipo,
			Motivo:               motivo,
			ReferenciaID:         &ref,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *prestamoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.PrestamoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return prestamoToResponse(p), nil
}

func (s *prestamoService) Listar(ctx context.Context, filter dto.PrestamoFilter) (*dto.PrestamoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	prestamos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PrestamoResponse, 0, len(prestamos))
	for i := range prestamos {
		items = append(items, *prestamoToResponse(&prestamos[i]))
	}
	return &dto.PrestamoListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func prestamoToResponse(p *model.Prestamo) *dto.PrestamoResponse {
	productos := make([]dto.PrestamoDetalleResponse, 0, len(p.Detalles))
	for _, d := range p.Detalles {
		nombre := ""
		if d.Unidad != nil {
			nombre = d.Unidad.Nombre
		}
		producto := ""
		if d.ProductoPorAlmacen != nil && d.ProductoPorAlmacen.Producto != nil {
			producto = d.ProductoPorAlmacen.Producto.Nombre
		}
		productos = append(productos, dto.PrestamoDetalleResponse{
			ID:                   d.ID.String(),
			ProductoPorAlmacenID: d.ProductoPorAlmacenID.String(),
			Producto:             producto,
			Unidad:               nombre,
			Factor:               d.Factor,
			Cantidad:             d.Cantidad,
		})
	}
	socio := ""
	if p.SocioDeNegocio != nil {
		socio = p.SocioDeNegocio.Nombre
	}
	return &dto.PrestamoResponse{
		ID:               p.ID.String(),
		SocioDeNegocioID: p.SocioDeNegocioID.String(),
		Socio:            socio,
		Estado:           p.Estado,
		Observacion:      p.Observacion,
		Productos:        productos,
		CreatedAt:        p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
