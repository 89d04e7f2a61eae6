package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/dto"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/model"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VentaService is the sale document state machine, mirror of CompraService
// with the ledger polarity flipped: a registered sale credits the metodo de
// pago, anulación debits it back.
type VentaService interface {
	Registrar(ctx context.Context, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarVentaRequest) (*dto.VentaResponse, error)
	Anular(ctx context.Context, id uuid.UUID) error
	Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
	Entregar(ctx context.Context, id uuid.UUID, req dto.EntregaRequest) error
}

type ventaService struct {
	repo        repository.VentaRepository
	unidades    repository.UnidadRepository
	conciliador *Conciliador
	stock       StockService
	monedaBase  model.Moneda
}

func NewVentaService(
	repo repository.VentaRepository,
	unidades repository.UnidadRepository,
	conciliador *Conciliador,
	stock StockService,
	monedaBase model.Moneda,
) VentaService {
	return &ventaService{
		repo:        repo,
		unidades:    unidades,
		conciliador: conciliador,
		stock:       stock,
		monedaBase:  monedaBase,
	}
}

var ErrVentaConEntregas = errors.New("la venta tiene entregas activas y no puede anularse")

// ── Registrar ────────────────────────────────────────────────────────────────

func (s *ventaService) Registrar(ctx context.Context, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	socioID, err := uuid.Parse(req.SocioDeNegocioID)
	if err != nil {
		return nil, fmt.Errorf("socio_de_negocio_id inválido: %w", err)
	}
	ingresoID, err := parseOptUUID(req.IngresoDineroID)
	if err != nil {
		return nil, fmt.Errorf("ingreso_dinero_id inválido: %w", err)
	}
	pagos, err := pagosDeRequest(req.Pagos)
	if err != nil {
		return nil, err
	}

	estado := model.EstadoDocumento(req.Estado)
	forma := model.FormaDePago(req.FormaDePago)
	moneda := model.Moneda(req.Moneda)
	if moneda == "" {
		moneda = s.monedaBase
	}
	tipoCambio := req.TipoDeCambio
	if tipoCambio.IsZero() {
		tipoCambio = decimal.NewFromInt(1)
	}

	if err := ValidarPagoVenta(estado, forma, ingresoID, len(pagos)); err != nil {
		return nil, err
	}
	if DebeVerificarDuplicado(estado, req.Serie, req.Numero) {
		dup, err := s.repo.ExisteDuplicado(ctx, socioID, *req.Serie, *req.Numero, nil)
		if err != nil {
			return nil, err
		}
		if dup {
			return nil, ErrDocumentoDuplicado
		}
	}

	total := TotalVenta(LineasVentaDeRequest(req.ProductosPorAlmacen))
	totalBase := ATotalBase(total, moneda, s.monedaBase, tipoCambio)

	var venta model.Venta
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		detalles, err := s.armarDetallesTx(tx, req.ProductosPorAlmacen)
		if err != nil {
			return err
		}
		venta = model.Venta{
			SocioDeNegocioID: socioID,
			Serie:            req.Serie,
			Numero:           req.Numero,
			Moneda:           moneda,
			TipoDeCambio:     tipoCambio,
			FormaDePago:      forma,
			Estado:           estado,
			Total:            total,
			IngresoDineroID:  ingresoID,
			Observacion:      req.Observacion,
			Detalles:         detalles,
			Pagos:            pagos,
		}
		if err := s.repo.Create(ctx, tx, &venta); err != nil {
			return err
		}
		if estado == model.EstadoRegistrado {
			return s.conciliador.AplicarVentaTx(tx, &venta, totalBase)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Obtener(ctx, venta.ID)
}

func (s *ventaService) armarDetallesTx(tx *gorm.DB, productos []dto.ProductoPorAlmacenVentaRequest) ([]model.VentaDetalle, error) {
	detalles := make([]model.VentaDetalle, 0, len(productos))
	for _, p := range productos {
		ppaID, err := uuid.Parse(p.ProductoPorAlmacenID)
		if err != nil {
			return nil, fmt.Errorf("producto_por_almacen_id inválido: %w", err)
		}
		det := model.VentaDetalle{ProductoPorAlmacenID: ppaID, Precio: p.Precio}
		for _, u := range p.UnidadesDerivadas {
			if !u.Factor.IsPositive() || !u.Cantidad.IsPositive() {
				return nil, ErrSnapshotInvalido
			}
			unidad, err := s.unidades.FirstOrCreateTx(tx, u.Unidad)
			if err != nil {
				return nil, err
			}
			tipoDesc := model.TipoDescuento(u.TipoDescuento)
			if tipoDesc == "" {
				tipoDesc = model.DescuentoMonto
			}
			det.Unidades = append(det.Unidades, model.UnidadDeVenta{
				UnidadID:          unidad.ID,
				Factor:            u.Factor,
				Cantidad:          u.Cantidad,
				CantidadPendiente: u.Cantidad,
				Recargo:           u.Recargo,
				Descuento:         u.Descuento,
				TipoDescuento:     tipoDesc,
			})
		}
		detalles = append(detalles, det)
	}
	return detalles, nil
}

func pagosDeRequest(pagos []dto.PagoVentaRequest) ([]model.VentaPago, error) {
	out := make([]model.VentaPago, 0, len(pagos))
	for _, p := range pagos {
		despliegueID, err := uuid.Parse(p.DespliegueDePagoID)
		if err != nil {
			return nil, fmt.Errorf("despliegue_de_pago_id inválido: %w", err)
		}
		out = append(out, model.VentaPago{DespliegueDePagoID: despliegueID, Monto: p.Monto})
	}
	return out, nil
}

// ── Actualizar ───────────────────────────────────────────────────────────────

func (s *ventaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarVentaRequest) (*dto.VentaResponse, error) {
	existente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existente.Estado.EsTerminal() {
		return nil, ErrDocumentoTerminal
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// The pre-update effect is undone with pre-update data: the prior
		// allocations (or ingreso) as persisted, not as requested.
		if existente.Estado == model.EstadoRegistrado {
			if err := s.conciliador.RevertirVentaTx(tx, existente); err != nil {
				return err
			}
		}

		merged := *existente
		if err := s.fusionarHeader(&merged, req); err != nil {
			return err
		}

		if req.Pagos != nil {
			pagos, err := pagosDeRequest(req.Pagos)
			if err != nil {
				return err
			}
			if err := s.repo.ReplacePagosTx(tx, id, pagos); err != nil {
				return err
			}
			merged.Pagos = pagos
		}
		if merged.FormaDePago == model.PagoCredito && len(merged.Pagos) > 0 {
			if err := s.repo.ReplacePagosTx(tx, id, nil); err != nil {
				return err
			}
			merged.Pagos = nil
		}

		if err := ValidarPagoVenta(merged.Estado, merged.FormaDePago, merged.IngresoDineroID, len(merged.Pagos)); err != nil {
			return err
		}
		if DebeVerificarDuplicado(merged.Estado, merged.Serie, merged.Numero) {
			dup, err := s.repo.ExisteDuplicado(ctx, merged.SocioDeNegocioID, *merged.Serie, *merged.Numero, &id)
			if err != nil {
				return err
			}
			if dup {
				return ErrDocumentoDuplicado
			}
		}

		lineas := LineasVentaDeModelo(existente.Detalles)
		if req.ProductosPorAlmacen != nil {
			detalles, err := s.armarDetallesTx(tx, req.ProductosPorAlmacen)
			if err != nil {
				return err
			}
			if err := s.repo.ReplaceDetallesTx(tx, id, detalles); err != nil {
				return err
			}
			lineas = LineasVentaDeRequest(req.ProductosPorAlmacen)
		}

		merged.Total = TotalVenta(lineas)
		totalBase := ATotalBase(merged.Total, merged.Moneda, s.monedaBase, merged.TipoDeCambio)

		if err := s.repo.UpdateHeaderTx(tx, &merged); err != nil {
			return err
		}
		if merged.Estado == model.EstadoRegistrado {
			return s.conciliador.AplicarVentaTx(tx, &merged, totalBase)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Obtener(ctx, id)
}

func (s *ventaService) fusionarHeader(v *model.Venta, req dto.ActualizarVentaRequest) error {
	if req.SocioDeNegocioID != nil {
		socioID, err := uuid.Parse(*req.SocioDeNegocioID)
		if err != nil {
			return fmt.Errorf("socio_de_negocio_id inválido: %w", err)
		}
		v.SocioDeNegocioID = socioID
	}
	if req.Serie != nil {
		v.Serie = req.Serie
	}
	if req.Numero != nil {
		v.Numero = req.Numero
	}
	if req.Moneda != nil {
		v.Moneda = model.Moneda(*req.Moneda)
	}
	if req.TipoDeCambio != nil {
		v.TipoDeCambio = *req.TipoDeCambio
	}
	if req.FormaDePago != nil {
		v.FormaDePago = model.FormaDePago(*req.FormaDePago)
	}
	if req.Estado != nil {
		v.Estado = model.EstadoDocumento(*req.Estado)
	}
	if req.Observacion != nil {
		v.Observacion = req.Observacion
	}
	if req.IngresoDineroID != nil {
		ingresoID, err := parseOptUUID(req.IngresoDineroID)
		if err != nil {
			return fmt.Errorf("ingreso_dinero_id inválido: %w", err)
		}
		v.IngresoDineroID = ingresoID
	}
	if v.FormaDePago == model.PagoCredito {
		v.IngresoDineroID = nil
	}
	return nil
}

// ── Anular ───────────────────────────────────────────────────────────────────

func (s *ventaService) Anular(ctx context.Context, id uuid.UUID) error {
	existente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existente.Estado.EsTerminal() {
		return ErrDocumentoTerminal
	}
	for _, d := range existente.Detalles {
		for _, u := range d.Unidades {
			if u.CantidadPendiente.LessThan(u.Cantidad) {
				return ErrVentaConEntregas
			}
		}
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if existente.Estado == model.EstadoRegistrado {
			if err := s.conciliador.RevertirVentaTx(tx, existente); err != nil {
				return err
			}
		}
		return s.repo.UpdateEstadoTx(tx, id, model.EstadoAnulado)
	})
}

// ── Entregar ─────────────────────────────────────────────────────────────────
// Warehouse delivery: consumes pending snapshot quantity and moves stock out.
// Insufficient stock fails the whole request, nothing is partially delivered.

func (s *ventaService) Entregar(ctx context.Context, id uuid.UUID, req dto.EntregaRequest) error {
	existente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existente.Estado == model.EstadoAnulado {
		return errors.New("no se puede entregar una venta anulada")
	}

	var afectados []uuid.UUID
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, r := range req.Unidades {
			uid, err := uuid.Parse(r.UnidadDeVentaID)
			if err != nil {
				return fmt.Errorf("unidad_de_venta_id inválido: %w", err)
			}
			unidad, err := s.repo.FindUnidadTx(tx, uid)
			if err != nil {
				return err
			}
			if !r.Cantidad.IsPositive() || r.Cantidad.GreaterThan(unidad.CantidadPendiente) {
				return errors.New("la cantidad excede lo pendiente por entregar")
			}
			det, err := s.repo.FindDetalleTx(tx, unidad.VentaDetalleID)
			if err != nil {
				return err
			}
			if det.VentaID != id {
				return errors.New("la unidad no pertenece a esta venta")
			}
			if err := s.repo.DecrementarPendienteTx(tx, uid, r.Cantidad); err != nil {
				return err
			}
			ref := id
			if _, err := s.stock.AplicarMovimientoTx(tx, MovimientoInput{
				ProductoPorAlmacenID: det.ProductoPorAlmacenID,
				Factor:               unidad.Factor,
				Cantidad:             r.Cantidad,
				Direccion:            Salida,
				Tipo:                 "entrega_venta",
				Motivo:               fmt.Sprintf("Entrega de venta %s", etiquetaDoc(existente.Serie, existente.Numero)),
				ReferenciaID:         &ref,
			}); err != nil {
				return err
			}
			afectados = append(afectados, det.ProductoPorAlmacenID)
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}
	// Alerts only after the movements are committed.
	s.stock.AlertarStockBajo(ctx, afectados)
	return nil
}

// ── Lectura ──────────────────────────────────────────────────────────────────

func (s *ventaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ventaToResponse(v), nil
}

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		items = append(items, *ventaToResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	detalles := make([]dto.VentaDetalleResponse, 0, len(v.Detalles))
	for _, d := range v.Detalles {
		unidades := make([]dto.UnidadDerivadaVentaResponse, 0, len(d.Unidades))
		for _, u := range d.Unidades {
			nombre := ""
			if u.Unidad != nil {
				nombre = u.Unidad.Nombre
			}
			unidades = append(unidades, dto.UnidadDerivadaVentaResponse{
				ID:                u.ID.String(),
				Unidad:            nombre,
				Factor:            u.Factor,
				Cantidad:          u.Cantidad,
				CantidadPendiente: u.CantidadPendiente,
				Recargo:           u.Recargo,
				Descuento:         u.Descuento,
				TipoDescuento:     string(u.TipoDescuento),
			})
		}
		producto := ""
		if d.ProductoPorAlmacen != nil && d.ProductoPorAlmacen.Producto != nil {
			producto = d.ProductoPorAlmacen.Producto.Nombre
		}
		detalles = append(detalles, dto.VentaDetalleResponse{
			ID:                   d.ID.String(),
			ProductoPorAlmacenID: d.ProductoPorAlmacenID.String(),
			Producto:             producto,
			Precio:               d.Precio,
			UnidadesDerivadas:    unidades,
		})
	}
	pagos := make([]dto.PagoVentaResponse, 0, len(v.Pagos))
	for _, p := range v.Pagos {
		pagos = append(pagos, dto.PagoVentaResponse{
			DespliegueDePagoID: p.DespliegueDePagoID.String(),
			Monto:              p.Monto,
		})
	}
	socio := ""
	if v.SocioDeNegocio != nil {
		socio = v.SocioDeNegocio.Nombre
	}
	return &dto.VentaResponse{
		ID:               v.ID.String(),
		SocioDeNegocioID: v.SocioDeNegocioID.String(),
		Socio:            socio,
		Serie:            v.Serie,
		Numero:           v.Numero,
		Moneda:           string(v.Moneda),
		TipoDeCambio:     v.TipoDeCambio,
		FormaDePago:      string(v.FormaDePago),
		Estado:           string(v.Estado),
		Total:            v.Total,
		IngresoDineroID:  optUUIDString(v.IngresoDineroID),
		Observacion:      v.Observacion,
		Pagos:            pagos,
		Detalles:         detalles,
		CreatedAt:        v.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
