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

// CompraService is the purchase document state machine. Every Registrar /
// Actualizar / Anular call runs as one transaction: validate, compute,
// reverse prior effects when editing, persist lines with fresh unit
// snapshots, reapply — any failure rolls everything back.
type CompraService interface {
	Registrar(ctx context.Context, req dto.RegistrarCompraRequest) (*dto.CompraResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCompraRequest) (*dto.CompraResponse, error)
	Anular(ctx context.Context, id uuid.UUID) error
	Obtener(ctx context.Context, id uuid.UUID) (*dto.CompraResponse, error)
	Listar(ctx context.Context, filter dto.CompraFilter) (*dto.CompraListResponse, error)
	Recepcionar(ctx context.Context, id uuid.UUID, req dto.RecepcionRequest) error
}

type compraService struct {
	repo        repository.CompraRepository
	unidades    repository.UnidadRepository
	dinero      repository.DineroRepository
	conciliador *Conciliador
	stock       StockService
	monedaBase  model.Moneda
}

func NewCompraService(
	repo repository.CompraRepository,
	unidades repository.UnidadRepository,
	dinero repository.DineroRepository,
	conciliador *Conciliador,
	stock StockService,
	monedaBase model.Moneda,
) CompraService {
	return &compraService{
		repo:        repo,
		unidades:    unidades,
		dinero:      dinero,
		conciliador: conciliador,
		stock:       stock,
		monedaBase:  monedaBase,
	}
}

var ErrCompraConRecepciones = errors.New("la compra tiene recepciones activas y no puede anularse")

// ── Registrar ────────────────────────────────────────────────────────────────

func (s *compraService) Registrar(ctx context.Context, req dto.RegistrarCompraRequest) (*dto.CompraResponse, error) {
	socioID, err := uuid.Parse(req.SocioDeNegocioID)
	if err != nil {
		return nil, fmt.Errorf("socio_de_negocio_id inválido: %w", err)
	}
	egresoID, err := parseOptUUID(req.EgresoDineroID)
	if err != nil {
		return nil, fmt.Errorf("egreso_dinero_id inválido: %w", err)
	}
	despliegueID, err := parseOptUUID(req.DespliegueDePagoID)
	if err != nil {
		return nil, fmt.Errorf("despliegue_de_pago_id inválido: %w", err)
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

	if err := ValidarPagoCompra(estado, forma, egresoID, despliegueID); err != nil {
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

	total := TotalCompra(LineasCompraDeRequest(req.ProductosPorAlmacen), req.Percepcion)
	totalBase := ATotalBase(total, moneda, s.monedaBase, tipoCambio)

	var compra model.Compra
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		detalles, err := s.armarDetallesTx(tx, req.ProductosPorAlmacen)
		if err != nil {
			return err
		}
		compra = model.Compra{
			SocioDeNegocioID:   socioID,
			Serie:              req.Serie,
			Numero:             req.Numero,
			Moneda:             moneda,
			TipoDeCambio:       tipoCambio,
			FormaDePago:        forma,
			Estado:             estado,
			Percepcion:         req.Percepcion,
			Total:              total,
			EgresoDineroID:     egresoID,
			DespliegueDePagoID: despliegueID,
			Observacion:        req.Observacion,
			Detalles:           detalles,
		}
		// Lines and snapshots persist before the ledger effect so the
		// conciliador always works against persisted data.
		if err := s.repo.Create(ctx, tx, &compra); err != nil {
			return err
		}
		if estado == model.EstadoRegistrado {
			return s.conciliador.AplicarCompraTx(tx, &compra, totalBase)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Obtener(ctx, compra.ID)
}

// armarDetallesTx builds the line models for a request, resolving each unit
// name into its immutable snapshot row (inserting on first use).
func (s *compraService) armarDetallesTx(tx *gorm.DB, productos []dto.ProductoPorAlmacenCompraRequest) ([]model.CompraDetalle, error) {
	detalles := make([]model.CompraDetalle, 0, len(productos))
	for _, p := range productos {
		ppaID, err := uuid.Parse(p.ProductoPorAlmacenID)
		if err != nil {
			return nil, fmt.Errorf("producto_por_almacen_id inválido: %w", err)
		}
		det := model.CompraDetalle{ProductoPorAlmacenID: ppaID, Costo: p.Costo}
		for _, u := range p.UnidadesDerivadas {
			if !u.Factor.IsPositive() || !u.Cantidad.IsPositive() {
				return nil, ErrSnapshotInvalido
			}
			unidad, err := s.unidades.FirstOrCreateTx(tx, u.Unidad)
			if err != nil {
				return nil, err
			}
			venc, err := parsearFecha(u.Vencimiento)
			if err != nil {
				return nil, fmt.Errorf("vencimiento inválido: %w", err)
			}
			det.Unidades = append(det.Unidades, model.UnidadDeCompra{
				UnidadID:          unidad.ID,
				Factor:            u.Factor,
				Cantidad:          u.Cantidad,
				CantidadPendiente: u.Cantidad,
				Lote:              u.Lote,
				Vencimiento:       venc,
				Flete:             u.Flete,
				EsBonificacion:    u.EsBonificacion,
			})
		}
		detalles = append(detalles, det)
	}
	return detalles, nil
}

// ── Actualizar ───────────────────────────────────────────────────────────────
// Reverse-then-reapply: the pre-update effect is undone with the pre-update
// data, the merged header revalidated, lines replaced wholesale when new ones
// arrive, and the post-update effect applied — all in one transaction, so a
// late validation failure can never leave the saldo half-reversed.

func (s *compraService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCompraRequest) (*dto.CompraResponse, error) {
	existente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existente.Estado.EsTerminal() {
		return nil, ErrDocumentoTerminal
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if existente.Estado == model.EstadoRegistrado {
			totalBasePrev := ATotalBase(
				TotalCompra(LineasCompraDeModelo(existente.Detalles), existente.Percepcion),
				existente.Moneda, s.monedaBase, existente.TipoDeCambio)
			if err := s.conciliador.RevertirCompraTx(tx, existente, totalBasePrev); err != nil {
				return err
			}
		}

		merged := *existente
		if err := s.fusionarHeader(&merged, req); err != nil {
			return err
		}

		if err := ValidarPagoCompra(merged.Estado, merged.FormaDePago, merged.EgresoDineroID, merged.DespliegueDePagoID); err != nil {
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

		lineas := LineasCompraDeModelo(existente.Detalles)
		if req.ProductosPorAlmacen != nil {
			detalles, err := s.armarDetallesTx(tx, req.ProductosPorAlmacen)
			if err != nil {
				return err
			}
			if err := s.repo.ReplaceDetallesTx(tx, id, detalles); err != nil {
				return err
			}
			lineas = LineasCompraDeRequest(req.ProductosPorAlmacen)
		}

		merged.Total = TotalCompra(lineas, merged.Percepcion)
		totalBase := ATotalBase(merged.Total, merged.Moneda, s.monedaBase, merged.TipoDeCambio)

		if err := s.repo.UpdateHeaderTx(tx, &merged); err != nil {
			return err
		}
		if merged.Estado == model.EstadoRegistrado {
			return s.conciliador.AplicarCompraTx(tx, &merged, totalBase)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Obtener(ctx, id)
}

// fusionarHeader overlays non-nil request fields onto the current header.
// The two money-source fields are merged as a pair: sending either replaces
// both, so a source switch never leaves the old reference behind.
func (s *compraService) fusionarHeader(c *model.Compra, req dto.ActualizarCompraRequest) error {
	if req.SocioDeNegocioID != nil {
		socioID, err := uuid.Parse(*req.SocioDeNegocioID)
		if err != nil {
			return fmt.Errorf("socio_de_negocio_id inválido: %w", err)
		}
		c.SocioDeNegocioID = socioID
	}
	if req.Serie != nil {
		c.Serie = req.Serie
	}
	if req.Numero != nil {
		c.Numero = req.Numero
	}
	if req.Moneda != nil {
		c.Moneda = model.Moneda(*req.Moneda)
	}
	if req.TipoDeCambio != nil {
		c.TipoDeCambio = *req.TipoDeCambio
	}
	if req.FormaDePago != nil {
		c.FormaDePago = model.FormaDePago(*req.FormaDePago)
	}
	if req.Estado != nil {
		c.Estado = model.EstadoDocumento(*req.Estado)
	}
	if req.Percepcion != nil {
		c.Percepcion = *req.Percepcion
	}
	if req.Observacion != nil {
		c.Observacion = req.Observacion
	}
	if req.EgresoDineroID != nil || req.DespliegueDePagoID != nil {
		egresoID, err := parseOptUUID(req.EgresoDineroID)
		if err != nil {
			return fmt.Errorf("egreso_dinero_id inválido: %w", err)
		}
		despliegueID, err := parseOptUUID(req.DespliegueDePagoID)
		if err != nil {
			return fmt.Errorf("despliegue_de_pago_id inválido: %w", err)
		}
		c.EgresoDineroID = egresoID
		c.DespliegueDePagoID = despliegueID
	}
	if c.FormaDePago == model.PagoCredito {
		c.EgresoDineroID = nil
		c.DespliegueDePagoID = nil
	}
	return nil
}

// ── Anular ───────────────────────────────────────────────────────────────────

func (s *compraService) Anular(ctx context.Context, id uuid.UUID) error {
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
				return ErrCompraConRecepciones
			}
		}
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if existente.Estado == model.EstadoRegistrado {
			totalBase := ATotalBase(
				TotalCompra(LineasCompraDeModelo(existente.Detalles), existente.Percepcion),
				existente.Moneda, s.monedaBase, existente.TipoDeCambio)
			if err := s.conciliador.RevertirCompraTx(tx, existente, totalBase); err != nil {
				return err
			}
		}
		if existente.EgresoDineroID != nil {
			if err := s.dinero.DesactivarEgresoTx(tx, *existente.EgresoDineroID); err != nil {
				return err
			}
		}
		return s.repo.UpdateEstadoTx(tx, id, model.EstadoAnulado)
	})
}

// ── Recepcionar ──────────────────────────────────────────────────────────────
// Warehouse reception: consumes pending snapshot quantity and moves stock in.

func (s *compraService) Recepcionar(ctx context.Context, id uuid.UUID, req dto.RecepcionRequest) error {
	existente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existente.Estado == model.EstadoAnulado {
		return errors.New("no se puede recepcionar una compra anulada")
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, r := range req.Unidades {
			uid, err := uuid.Parse(r.UnidadDeCompraID)
			if err != nil {
				return fmt.Errorf("unidad_de_compra_id inválido: %w", err)
			}
			unidad, err := s.repo.FindUnidadTx(tx, uid)
			if err != nil {
				return err
			}
			if !r.Cantidad.IsPositive() || r.Cantidad.GreaterThan(unidad.CantidadPendiente) {
				return errors.New("la cantidad excede lo pendiente por recibir")
			}
			det, err := s.repo.FindDetalleTx(tx, unidad.CompraDetalleID)
			if err != nil {
				return err
			}
			if det.CompraID != id {
				return errors.New("la unidad no pertenece a esta compra")
			}
			if err := s.repo.DecrementarPendienteTx(tx, uid, r.Cantidad); err != nil {
				return err
			}
			ref := id
			if _, err := s.stock.AplicarMovimientoTx(tx, MovimientoInput{
				ProductoPorAlmacenID: det.ProductoPorAlmacenID,
				Factor:               unidad.Factor,
				Cantidad:             r.Cantidad,
				Direccion:            Entrada,
				Tipo:                 "recepcion_compra",
				Motivo:               fmt.Sprintf("Recepción de compra %s", etiquetaDoc(existente.Serie, existente.Numero)),
				ReferenciaID:         &ref,
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

// ── Lectura ──────────────────────────────────────────────────────────────────

func (s *compraService) Obtener(ctx context.Context, id uuid.UUID) (*dto.CompraResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return compraToResponse(c), nil
}

func (s *compraService) Listar(ctx context.Context, filter dto.CompraFilter) (*dto.CompraListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	compras, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompraResponse, 0, len(compras))
	for i := range compras {
		items = append(items, *compraToResponse(&compras[i]))
	}
	return &dto.CompraListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func parseOptUUID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func etiquetaDoc(serie, numero *string) string {
	if serie != nil && numero != nil {
		return *serie + "-" + *numero
	}
	return "s/n"
}

func optUUIDString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func compraToResponse(c *model.Compra) *dto.CompraResponse {
	detalles := make([]dto.CompraDetalleResponse, 0, len(c.Detalles))
	for _, d := range c.Detalles {
		unidades := make([]dto.UnidadDerivadaCompraResponse, 0, len(d.Unidades))
		for _, u := range d.Unidades {
			nombre := ""
			if u.Unidad != nil {
				nombre = u.Unidad.Nombre
			}
			unidades = append(unidades, dto.UnidadDerivadaCompraResponse{
				ID:                u.ID.String(),
				Unidad:            nombre,
				Factor:            u.Factor,
				Cantidad:          u.Cantidad,
				CantidadPendiente: u.CantidadPendiente,
				Lote:              u.Lote,
				Vencimiento:       formatearFecha(u.Vencimiento),
				Flete:             u.Flete,
				EsBonificacion:    u.EsBonificacion,
			})
		}
		producto := ""
		if d.ProductoPorAlmacen != nil && d.ProductoPorAlmacen.Producto != nil {
			producto = d.ProductoPorAlmacen.Producto.Nombre
		}
		detalles = append(detalles, dto.CompraDetalleResponse{
			ID:                   d.ID.String(),
			ProductoPorAlmacenID: d.ProductoPorAlmacenID.String(),
			Producto:             producto,
			Costo:                d.Costo,
			UnidadesDerivadas:    unidades,
		})
	}
	socio := ""
	if c.SocioDeNegocio != nil {
		socio = c.SocioDeNegocio.Nombre
	}
	return &dto.CompraResponse{
		ID:                 c.ID.String(),
		SocioDeNegocioID:   c.SocioDeNegocioID.String(),
		Socio:              socio,
		Serie:              c.Serie,
		Numero:             c.Numero,
		Moneda:             string(c.Moneda),
		TipoDeCambio:       c.TipoDeCambio,
		FormaDePago:        string(c.FormaDePago),
		Estado:             string(c.Estado),
		Percepcion:         c.Percepcion,
		Total:              c.Total,
		EgresoDineroID:     optUUIDString(c.EgresoDineroID),
		DespliegueDePagoID: optUUIDString(c.DespliegueDePagoID),
		Observacion:        c.Observacion,
		Detalles:           detalles,
		CreatedAt:          c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
