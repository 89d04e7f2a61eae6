package service

import (
	"errors"

	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/model"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// conciliacion.go — the ledger mutator. One parameterized strategy covers
// both document kinds: a tipoDocumento descriptor fixes the polarity (a
// purchase is money out, a sale money in) and the document resolves into a
// list of (despliegue, monto) allocations — a single element for compras, one
// per allocation for ventas. Reversal is the same walk with the sign negated,
// over the same persisted amounts, so reverse(apply(saldo)) == saldo exactly.
//
// When the money source is an external egreso/ingreso record instead of a
// despliegue, applying only VERIFIES the record's amount against the computed
// total (the cash drawer already moved the money); reversal credits the money
// back to the record's channel. The verification read is not row-locked —
// two concurrent documents referencing the same record can both pass before
// either commits. Known gap, kept as-is.

var (
	ErrEgresoNoCoincide  = errors.New("el egreso de dinero no coincide con el total de la compra")
	ErrIngresoNoCoincide = errors.New("el ingreso de dinero no coincide con el total de la venta")
	ErrEgresoInactivo    = errors.New("el egreso de dinero ya no está activo")
	ErrIngresoInactivo   = errors.New("el ingreso de dinero ya no está activo")
)

// tipoDocumento describes how one document kind hits the ledger.
type tipoDocumento struct {
	nombre string
	signo  decimal.Decimal // effect of APPLYING the document on the saldo
}

var (
	docCompra = tipoDocumento{nombre: "compra", signo: decimal.NewFromInt(-1)}
	docVenta  = tipoDocumento{nombre: "venta", signo: decimal.NewFromInt(1)}
)

// asignacion is one monetary allocation against a despliegue, in base currency.
type asignacion struct {
	despliegueID uuid.UUID
	monto        decimal.Decimal
}

type Conciliador struct {
	metodos repository.MetodoDePagoRepository
	dinero  repository.DineroRepository
}

func NewConciliador(metodos repository.MetodoDePagoRepository, dinero repository.DineroRepository) *Conciliador {
	return &Conciliador{metodos: metodos, dinero: dinero}
}

// mutarSaldosTx applies every allocation to its backing metodo's saldo with
// the given sign. Each saldo change is one atomic UPDATE.
func (c *Conciliador) mutarSaldosTx(tx *gorm.DB, asigs []asignacion, signo decimal.Decimal) error {
	for _, a := range asigs {
		d, err := c.metodos.FindDespliegueByIDTx(tx, a.despliegueID)
		if err != nil {
			return err
		}
		if err := c.metodos.AjustarSaldoTx(tx, d.MetodoDePagoID, a.monto.Mul(signo)); err != nil {
			return err
		}
	}
	return nil
}

// AplicarCompraTx applies a registered purchase's monetary effect. With a
// despliegue source the saldo drops by totalBase; with an egreso source the
// record's net amount is verified against totalBase and nothing is mutated.
func (c *Conciliador) AplicarCompraTx(tx *gorm.DB, compra *model.Compra, totalBase decimal.Decimal) error {
	switch {
	case compra.DespliegueDePagoID != nil:
		return c.mutarSaldosTx(tx, []asignacion{{*compra.DespliegueDePagoID, totalBase}}, docCompra.signo)
	case compra.EgresoDineroID != nil:
		egreso, err := c.dinero.FindEgresoByIDTx(tx, *compra.EgresoDineroID)
		if err != nil {
			return err
		}
		if !egreso.Activo {
			return ErrEgresoInactivo
		}
		neto := egreso.Monto.Sub(egreso.Vuelto)
		if !MontosIguales(neto, totalBase) {
			return ErrEgresoNoCoincide
		}
		return nil
	}
	return nil
}

// RevertirCompraTx undoes AplicarCompra. Callers invoke it only when the
// document's pre-change state is "registrado". With an egreso source the net
// amount flows back to the egreso's channel when positive.
func (c *Conciliador) RevertirCompraTx(tx *gorm.DB, compra *model.Compra, totalBase decimal.Decimal) error {
	switch {
	case compra.DespliegueDePagoID != nil:
		return c.mutarSaldosTx(tx, []asignacion{{*compra.DespliegueDePagoID, totalBase}}, docCompra.signo.Neg())
	case compra.EgresoDineroID != nil:
		egreso, err := c.dinero.FindEgresoByIDTx(tx, *compra.EgresoDineroID)
		if err != nil {
			return err
		}
		neto := egreso.Monto.Sub(egreso.Vuelto)
		if neto.IsPositive() {
			return c.mutarSaldosTx(tx, []asignacion{{egreso.DespliegueDePagoID, neto}}, docCompra.signo.Neg())
		}
		return nil
	}
	return nil
}

// AplicarVentaTx applies a registered sale: every allocation credits its
// despliegue's metodo by its own monto. With an ingreso source the record's
// amount is verified against totalBase and nothing is mutated.
func (c *Conciliador) AplicarVentaTx(tx *gorm.DB, venta *model.Venta, totalBase decimal.Decimal) error {
	if venta.IngresoDineroID != nil {
		ingreso, err := c.dinero.FindIngresoByIDTx(tx, *venta.IngresoDineroID)
		if err != nil {
			return err
		}
		if !ingreso.Activo {
			return ErrIngresoInactivo
		}
		if !MontosIguales(ingreso.Monto, totalBase) {
			return ErrIngresoNoCoincide
		}
		return nil
	}
	asigs := make([]asignacion, 0, len(venta.Pagos))
	for _, p := range venta.Pagos {
		asigs = append(asigs, asignacion{p.DespliegueDePagoID, p.Monto})
	}
	return c.mutarSaldosTx(tx, asigs, docVenta.signo)
}

// RevertirVentaTx undoes AplicarVenta over the persisted allocations.
func (c *Conciliador) RevertirVentaTx(tx *gorm.DB, venta *model.Venta) error {
	if venta.IngresoDineroID != nil {
		ingreso, err := c.dinero.FindIngresoByIDTx(tx, *venta.IngresoDineroID)
		if err != nil {
			return err
		}
		return c.mutarSaldosTx(tx, []asignacion{{ingreso.DespliegueDePagoID, ingreso.Monto}}, docVenta.signo.Neg())
	}
	asigs := make([]asignacion, 0, len(venta.Pagos))
	for _, p := range venta.Pagos {
		asigs = append(asigs, asignacion{p.DespliegueDePagoID, p.Monto})
	}
	return c.mutarSaldosTx(tx, asigs, docVenta.signo.Neg())
}
