package service

// stubs_test.go
// In-memory repository stubs shared by the service tests. runTx receives a
// nil *gorm.DB from DB() and calls the closure directly, so every stub works
// without a database.

import (
	"context"
	"time"

	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/dto"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/model"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── MetodoDePagoRepository ───────────────────────────────────────────────────

type stubMetodoPagoRepo struct {
	metodos     map[uuid.UUID]*model.MetodoDePago
	despliegues map[uuid.UUID]*model.DespliegueDePago
}

var _ repository.MetodoDePagoRepository = (*stubMetodoPagoRepo)(nil)

func newStubMetodoPagoRepo() *stubMetodoPagoRepo {
	return &stubMetodoPagoRepo{
		metodos:     make(map[uuid.UUID]*model.MetodoDePago),
		despliegues: make(map[uuid.UUID]*model.DespliegueDePago),
	}
}

// agregarMetodo registers a payment method with one despliegue and returns
// the despliegue id.
func (r *stubMetodoPagoRepo) agregarMetodo(saldo decimal.Decimal) uuid.UUID {
	m := &model.MetodoDePago{ID: uuid.New(), Nombre: "met-" + uuid.NewString()[:8], Saldo: saldo, Activo: true}
	d := &model.DespliegueDePago{ID: uuid.New(), Nombre: "desp", MetodoDePagoID: m.ID, MetodoDePago: m, Activo: true}
	r.metodos[m.ID] = m
	r.despliegues[d.ID] = d
	return d.ID
}

func (r *stubMetodoPagoRepo) saldoDe(despliegueID uuid.UUID) decimal.Decimal {
	return r.metodos[r.despliegues[despliegueID].MetodoDePagoID].Saldo
}

func (r *stubMetodoPagoRepo) FindMetodoByID(_ context.Context, id uuid.UUID) (*model.MetodoDePago, error) {
	m, ok := r.metodos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *stubMetodoPagoRepo) FindDespliegueByID(_ context.Context, id uuid.UUID) (*model.DespliegueDePago, error) {
	return r.FindDespliegueByIDTx(nil, id)
}

func (r *stubMetodoPagoRepo) FindDespliegueByIDTx(_ *gorm.DB, id uuid.UUID) (*model.DespliegueDePago, error) {
	d, ok := r.despliegues[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

func (r *stubMetodoPagoRepo) AjustarSaldoTx(_ *gorm.DB, metodoID uuid.UUID, delta decimal.Decimal) error {
	m, ok := r.metodos[metodoID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.Saldo = m.Saldo.Add(delta)
	return nil
}

func (r *stubMetodoPagoRepo) DB() *gorm.DB { return nil }

// ── DineroRepository ─────────────────────────────────────────────────────────

type stubDineroRepo struct {
	egresos  map[uuid.UUID]*model.EgresoDinero
	ingresos map[uuid.UUID]*model.IngresoDinero
}

var _ repository.DineroRepository = (*stubDineroRepo)(nil)

func newStubDineroRepo() *stubDineroRepo {
	return &stubDineroRepo{
		egresos:  make(map[uuid.UUID]*model.EgresoDinero),
		ingresos: make(map[uuid.UUID]*model.IngresoDinero),
	}
}

func (r *stubDineroRepo) agregarEgreso(despliegueID uuid.UUID, monto, vuelto decimal.Decimal) uuid.UUID {
	e := &model.EgresoDinero{ID: uuid.New(), Monto: monto, Vuelto: vuelto, DespliegueDePagoID: despliegueID, Activo: true}
	r.egresos[e.ID] = e
	return e.ID
}

func (r *stubDineroRepo) agregarIngreso(despliegueID uuid.UUID, monto decimal.Decimal) uuid.UUID {
	i := &model.IngresoDinero{ID: uuid.New(), Monto: monto, DespliegueDePagoID: despliegueID, Activo: true}
	r.ingresos[i.ID] = i
	return i.ID
}

func (r *stubDineroRepo) FindEgresoByID(_ context.Context, id uuid.UUID) (*model.EgresoDinero, error) {
	return r.FindEgresoByIDTx(nil, id)
}

func (r *stubDineroRepo) FindEgresoByIDTx(_ *gorm.DB, id uuid.UUID) (*model.EgresoDinero, error) {
	e, ok := r.egresos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (r *stubDineroRepo) FindIngresoByID(_ context.Context, id uuid.UUID) (*model.IngresoDinero, error) {
	return r.FindIngresoByIDTx(nil, id)
}

func (r *stubDineroRepo) FindIngresoByIDTx(_ *gorm.DB, id uuid.UUID) (*model.IngresoDinero, error) {
	i, ok := r.ingresos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return i, nil
}

func (r *stubDineroRepo) DesactivarEgresoTx(_ *gorm.DB, id uuid.UUID) error {
	e, ok := r.egresos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.Activo = false
	return nil
}

// ── UnidadRepository ─────────────────────────────────────────────────────────

type stubUnidadRepo struct {
	porNombre map[string]*model.Unidad
}

var _ repository.UnidadRepository = (*stubUnidadRepo)(nil)

func newStubUnidadRepo() *stubUnidadRepo {
	return &stubUnidadRepo{porNombre: make(map[string]*model.Unidad)}
}

func (r *stubUnidadRepo) FirstOrCreateTx(_ *gorm.DB, nombre string) (*model.Unidad, error) {
	if u, ok := r.porNombre[nombre]; ok {
		return u, nil
	}
	u := &model.Unidad{ID: uuid.New(), Nombre: nombre}
	r.porNombre[nombre] = u
	return u, nil
}

// ── ProductoPorAlmacenRepository ─────────────────────────────────────────────

type stubProductoAlmacenRepo struct {
	productos   map[uuid.UUID]*model.ProductoPorAlmacen
	movimientos []model.MovimientoStock
}

var _ repository.ProductoPorAlmacenRepository = (*stubProductoAlmacenRepo)(nil)

func newStubProductoAlmacenRepo() *stubProductoAlmacenRepo {
	return &stubProductoAlmacenRepo{productos: make(map[uuid.UUID]*model.ProductoPorAlmacen)}
}

func (r *stubProductoAlmacenRepo) agregarProducto(stock, stockMinimo decimal.Decimal) uuid.UUID {
	p := &model.ProductoPorAlmacen{
		ID:            uuid.New(),
		ProductoID:    uuid.New(),
		AlmacenID:     uuid.New(),
		StockFraccion: stock,
		Producto:      &model.Producto{ID: uuid.New(), Nombre: "producto", StockMinimo: stockMinimo},
	}
	r.productos[p.ID] = p
	return p.ID
}

func (r *stubProductoAlmacenRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ProductoPorAlmacen, error) {
	return r.FindByIDTx(nil, id)
}

func (r *stubProductoAlmacenRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.ProductoPorAlmacen, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clon := *p
	return &clon, nil
}

func (r *stubProductoAlmacenRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.StockFraccion = p.StockFraccion.Add(delta)
	return nil
}

func (r *stubProductoAlmacenRepo) CreateMovimientoTx(_ *gorm.DB, m *model.MovimientoStock) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubProductoAlmacenRepo) ListMovimientos(_ context.Context, id uuid.UUID, limit int) ([]model.MovimientoStock, error) {
	var out []model.MovimientoStock
	for i := len(r.movimientos) - 1; i >= 0 && len(out) < limit; i-- {
		if r.movimientos[i].ProductoPorAlmacenID == id {
			out = append(out, r.movimientos[i])
		}
	}
	return out, nil
}

func (r *stubProductoAlmacenRepo) DB() *gorm.DB { return nil }

// ── CompraRepository ─────────────────────────────────────────────────────────

type stubCompraRepo struct {
	compras map[uuid.UUID]*model.Compra
}

var _ repository.CompraRepository = (*stubCompraRepo)(nil)

func newStubCompraRepo() *stubCompraRepo {
	return &stubCompraRepo{compras: make(map[uuid.UUID]*model.Compra)}
}

func asignarIDsCompra(c *model.Compra) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	for i := range c.Detalles {
		d := &c.Detalles[i]
		if d.ID == uuid.Nil {
			d.ID = uuid.New()
		}
		d.CompraID = c.ID
		for j := range d.Unidades {
			u := &d.Unidades[j]
			if u.ID == uuid.Nil {
				u.ID = uuid.New()
			}
			u.CompraDetalleID = d.ID
		}
	}
}

func (r *stubCompraRepo) Create(_ context.Context, _ *gorm.DB, c *model.Compra) error {
	asignarIDsCompra(c)
	c.CreatedAt = time.Now()
	clon := *c
	r.compras[c.ID] = &clon
	return nil
}

func (r *stubCompraRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Compra, error) {
	return r.FindByIDTx(nil, id)
}

func (r *stubCompraRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Compra, error) {
	c, ok := r.compras[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clon := *c
	return &clon, nil
}

func (r *stubCompraRepo) UpdateHeaderTx(_ *gorm.DB, c *model.Compra) error {
	actual, ok := r.compras[c.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	actual.SocioDeNegocioID = c.SocioDeNegocioID
	actual.Serie = c.Serie
	actual.Numero = c.Numero
	actual.Moneda = c.Moneda
	actual.TipoDeCambio = c.TipoDeCambio
	actual.FormaDePago = c.FormaDePago
	actual.Estado = c.Estado
	actual.Percepcion = c.Percepcion
	actual.Total = c.Total
	actual.EgresoDineroID = c.EgresoDineroID
	actual.DespliegueDePagoID = c.DespliegueDePagoID
	actual.Observacion = c.Observacion
	return nil
}

func (r *stubCompraRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado model.EstadoDocumento) error {
	c, ok := r.compras[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Estado = estado
	return nil
}

func (r *stubCompraRepo) ReplaceDetallesTx(_ *gorm.DB, compraID uuid.UUID, detalles []model.CompraDetalle) error {
	c, ok := r.compras[compraID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Detalles = detalles
	asignarIDsCompra(c)
	return nil
}

func (r *stubCompraRepo) ExisteDuplicado(_ context.Context, socioID uuid.UUID, serie, numero string, excluirID *uuid.UUID) (bool, error) {
	for _, c := range r.compras {
		if excluirID != nil && c.ID == *excluirID {
			continue
		}
		if c.SocioDeNegocioID == socioID && c.Serie != nil && c.Numero != nil &&
			*c.Serie == serie && *c.Numero == numero {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubCompraRepo) List(_ context.Context, filter dto.CompraFilter) ([]model.Compra, int64, error) {
	var out []model.Compra
	for _, c := range r.compras {
		if filter.Estado != "" && filter.Estado != "all" && string(c.Estado) != filter.Estado {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCompraRepo) FindUnidadTx(_ *gorm.DB, id uuid.UUID) (*model.UnidadDeCompra, error) {
	for _, c := range r.compras {
		for _, d := range c.Detalles {
			for _, u := range d.Unidades {
				if u.ID == id {
					clon := u
					return &clon, nil
				}
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCompraRepo) FindDetalleTx(_ *gorm.DB, id uuid.UUID) (*model.CompraDetalle, error) {
	for _, c := range r.compras {
		for _, d := range c.Detalles {
			if d.ID == id {
				clon := d
				return &clon, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCompraRepo) DecrementarPendienteTx(_ *gorm.DB, id uuid.UUID, cantidad decimal.Decimal) error {
	for _, c := range r.compras {
		for i := range c.Detalles {
			for j := range c.Detalles[i].Unidades {
				u := &c.Detalles[i].Unidades[j]
				if u.ID == id {
					if u.CantidadPendiente.LessThan(cantidad) {
						return gorm.ErrRecordNotFound
					}
					u.CantidadPendiente = u.CantidadPendiente.Sub(cantidad)
					return nil
				}
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubCompraRepo) DB() *gorm.DB { return nil }

// ── VentaRepository ──────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas map[uuid.UUID]*model.Venta
}

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func asignarIDsVenta(v *model.Venta) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	for i := range v.Detalles {
		d := &v.Detalles[i]
		if d.ID == uuid.Nil {
			d.ID = uuid.New()
		}
		d.VentaID = v.ID
		for j := range d.Unidades {
			u := &d.Unidades[j]
			if u.ID == uuid.Nil {
				u.ID = uuid.New()
			}
			u.VentaDetalleID = d.ID
		}
	}
	for i := range v.Pagos {
		if v.Pagos[i].ID == uuid.Nil {
			v.Pagos[i].ID = uuid.New()
		}
		v.Pagos[i].VentaID = v.ID
	}
}

func (r *stubVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	asignarIDsVenta(v)
	v.CreatedAt = time.Now()
	clon := *v
	r.ventas[v.ID] = &clon
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	return r.FindByIDTx(nil, id)
}

func (r *stubVentaRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clon := *v
	return &clon, nil
}

func (r *stubVentaRepo) UpdateHeaderTx(_ *gorm.DB, v *model.Venta) error {
	actual, ok := r.ventas[v.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	actual.SocioDeNegocioID = v.SocioDeNegocioID
	actual.Serie = v.Serie
	actual.Numero = v.Numero
	actual.Moneda = v.Moneda
	actual.TipoDeCambio = v.TipoDeCambio
	actual.FormaDePago = v.FormaDePago
	actual.Estado = v.Estado
	actual.Total = v.Total
	actual.IngresoDineroID = v.IngresoDineroID
	actual.Observacion = v.Observacion
	return nil
}

func (r *stubVentaRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado model.EstadoDocumento) error {
	v, ok := r.ventas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Estado = estado
	return nil
}

func (r *stubVentaRepo) ReplaceDetallesTx(_ *gorm.DB, ventaID uuid.UUID, detalles []model.VentaDetalle) error {
	v, ok := r.ventas[ventaID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Detalles = detalles
	asignarIDsVenta(v)
	return nil
}

func (r *stubVentaRepo) ReplacePagosTx(_ *gorm.DB, ventaID uuid.UUID, pagos []model.VentaPago) error {
	v, ok := r.ventas[ventaID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Pagos = pagos
	asignarIDsVenta(v)
	return nil
}

func (r *stubVentaRepo) ExisteDuplicado(_ context.Context, socioID uuid.UUID, serie, numero string, excluirID *uuid.UUID) (bool, error) {
	for _, v := range r.ventas {
		if excluirID != nil && v.ID == *excluirID {
			continue
		}
		if v.SocioDeNegocioID == socioID && v.Serie != nil && v.Numero != nil &&
			*v.Serie == serie && *v.Numero == numero {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubVentaRepo) List(_ context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		if filter.Estado != "" && filter.Estado != "all" && string(v.Estado) != filter.Estado {
			continue
		}
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) FindUnidadTx(_ *gorm.DB, id uuid.UUID) (*model.UnidadDeVenta, error) {
	for _, v := range r.ventas {
		for _, d := range v.Detalles {
			for _, u := range d.Unidades {
				if u.ID == id {
					clon := u
					return &clon, nil
				}
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubVentaRepo) FindDetalleTx(_ *gorm.DB, id uuid.UUID) (*model.VentaDetalle, error) {
	for _, v := range r.ventas {
		for _, d := range v.Detalles {
			if d.ID == id {
				clon := d
				return &clon, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubVentaRepo) DecrementarPendienteTx(_ *gorm.DB, id uuid.UUID, cantidad decimal.Decimal) error {
	for _, v := range r.ventas {
		for i := range v.Detalles {
			for j := range v.Detalles[i].Unidades {
				u := &v.Detalles[i].Unidades[j]
				if u.ID == id {
					if u.CantidadPendiente.LessThan(cantidad) {
						return gorm.ErrRecordNotFound
					}
					u.CantidadPendiente = u.CantidadPendiente.Sub(cantidad)
					return nil
				}
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

// ── AjusteStockRepository ────────────────────────────────────────────────────

type stubAjusteRepo struct {
	ajustes map[uuid.UUID]*model.AjusteStock
}

var _ repository.AjusteStockRepository = (*stubAjusteRepo)(nil)

func newStubAjusteRepo() *stubAjusteRepo {
	return &stubAjusteRepo{ajustes: make(map[uuid.UUID]*model.AjusteStock)}
}

func (r *stubAjusteRepo) Create(_ context.Context, _ *gorm.DB, a *model.AjusteStock) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	for i := range a.Detalles {
		if a.Detalles[i].ID == uuid.Nil {
			a.Detalles[i].ID = uuid.New()
		}
		a.Detalles[i].AjusteStockID = a.ID
	}
	a.CreatedAt = time.Now()
	clon := *a
	r.ajustes[a.ID] = &clon
	return nil
}

func (r *stubAjusteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.AjusteStock, error) {
	a, ok := r.ajustes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clon := *a
	return &clon, nil
}

func (r *stubAjusteRepo) List(_ context.Context, filter dto.AjusteFilter) ([]model.AjusteStock, int64, error) {
	var out []model.AjusteStock
	for _, a := range r.ajustes {
		if filter.Tipo != "" && a.Tipo != filter.Tipo {
			continue
		}
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (r *stubAjusteRepo) DB() *gorm.DB { return nil }

// ── PrestamoRepository ───────────────────────────────────────────────────────

type stubPrestamoRepo struct {
	prestamos map[uuid.UUID]*model.Prestamo
}

var _ repository.PrestamoRepository = (*stubPrestamoRepo)(nil)

func newStubPrestamoRepo() *stubPrestamoRepo {
	return &stubPrestamoRepo{prestamos: make(map[uuid.UUID]*model.Prestamo)}
}

func (r *stubPrestamoRepo) Create(_ context.Context, _ *gorm.DB, p *model.Prestamo) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range p.Detalles {
		if p.Detalles[i].ID == uuid.Nil {
			p.Detalles[i].ID = uuid.New()
		}
		p.Detalles[i].PrestamoID = p.ID
	}
	p.CreatedAt = time.Now()
	clon := *p
	r.prestamos[p.ID] = &clon
	return nil
}

func (r *stubPrestamoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Prestamo, error) {
	p, ok := r.prestamos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clon := *p
	return &clon, nil
}

func (r *stubPrestamoRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado string) error {
	p, ok := r.prestamos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Estado = estado
	return nil
}

func (r *stubPrestamoRepo) MarcarDevueltoTx(_ *gorm.DB, id uuid.UUID) error {
	p, ok := r.prestamos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Estado = model.PrestamoDevuelto
	ahora := time.Now()
	p.DevueltoAt = &ahora
	return nil
}

func (r *stubPrestamoRepo) List(_ context.Context, filter dto.PrestamoFilter) ([]model.Prestamo, int64, error) {
	var out []model.Prestamo
	for _, p := range r.prestamos {
		if filter.Estado != "" && filter.Estado != "all" && p.Estado != filter.Estado {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPrestamoRepo) DB() *gorm.DB { return nil }
