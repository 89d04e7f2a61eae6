package service

import (
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/dto"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/model"

	"github.com/shopspring/decimal"
)

// calculo.go — the pure line-item total calculator. No I/O: everything here
// is deterministic decimal arithmetic so that apply/reverse pairs on the
// payment-method saldo cancel exactly, with no float drift.
//
// The same formulas run over two input shapes: raw request DTOs (pre-persist
// validation) and persisted models (reconciliation on update/void). The
// Lineas* constructors normalize both into the value structs below.

// LineaCompra is one unit-conversion line of a purchase.
type LineaCompra struct {
	Costo        decimal.Decimal
	Cantidad     decimal.Decimal
	Factor       decimal.Decimal
	Flete        decimal.Decimal
	Bonificacion bool
}

// LineaVenta is one unit-conversion line of a sale.
type LineaVenta struct {
	Precio        decimal.Decimal
	Cantidad      decimal.Decimal
	Factor        decimal.Decimal
	Recargo       decimal.Decimal
	Descuento     decimal.Decimal
	TipoDescuento model.TipoDescuento
}

var cien = decimal.NewFromInt(100)

// TotalCompra reduces purchase lines to one total in document currency.
// Bonificación lines contribute zero cost but keep their flete; percepción
// is the header-level surcharge added once, after all lines.
func TotalCompra(lineas []LineaCompra, percepcion decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lineas {
		monto := decimal.Zero
		if !l.Bonificacion {
			monto = l.Costo.Mul(l.Cantidad).Mul(l.Factor)
		}
		total = total.Add(monto.Add(l.Flete))
	}
	return total.Add(percepcion)
}

// TotalVenta reduces sale lines to one total in document currency.
// Per line: subtotal + recargo, then the descuento — percentage over the
// recargo-inclusive amount, or a fixed amount.
func TotalVenta(lineas []LineaVenta) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lineas {
		subtotal := l.Precio.Mul(l.Cantidad).Mul(l.Factor)
		conRecargo := subtotal.Add(l.Recargo)
		var monto decimal.Decimal
		if l.TipoDescuento == model.DescuentoPorcentaje {
			monto = conRecargo.Sub(conRecargo.Mul(l.Descuento).Div(cien))
		} else {
			monto = conRecargo.Sub(l.Descuento)
		}
		total = total.Add(monto)
	}
	return total
}

// ATotalBase converts an aggregated total to the base currency. Conversion
// happens exactly once, here — never per line.
func ATotalBase(total decimal.Decimal, moneda, monedaBase model.Moneda, tipoDeCambio decimal.Decimal) decimal.Decimal {
	if moneda == monedaBase {
		return total
	}
	return total.Mul(tipoDeCambio)
}

// MontosIguales compares two amounts at 2 decimals — the rounding used when
// checking computed totals against external money-source records.
func MontosIguales(a, b decimal.Decimal) bool {
	return a.Round(2).Equal(b.Round(2))
}

// ─── Input-shape constructors ────────────────────────────────────────────────

func LineasCompraDeRequest(productos []dto.ProductoPorAlmacenCompraRequest) []LineaCompra {
	var lineas []LineaCompra
	for _, p := range productos {
		for _, u := range p.UnidadesDerivadas {
			lineas = append(lineas, LineaCompra{
				Costo:        p.Costo,
				Cantidad:     u.Cantidad,
				Factor:       u.Factor,
				Flete:        u.Flete,
				Bonificacion: u.EsBonificacion,
			})
		}
	}
	return lineas
}

func LineasCompraDeModelo(detalles []model.CompraDetalle) []LineaCompra {
	var lineas []LineaCompra
	for _, d := range detalles {
		for _, u := range d.Unidades {
			lineas = append(lineas, LineaCompra{
				Costo:        d.Costo,
				Cantidad:     u.Cantidad,
				Factor:       u.Factor,
				Flete:        u.Flete,
				Bonificacion: u.EsBonificacion,
			})
		}
	}
	return lineas
}

func LineasVentaDeRequest(productos []dto.ProductoPorAlmacenVentaRequest) []LineaVenta {
	var lineas []LineaVenta
	for _, p := range productos {
		for _, u := range p.UnidadesDerivadas {
			tipo := model.TipoDescuento(u.TipoDescuento)
			if tipo == "" {
				tipo = model.DescuentoMonto
			}
			lineas = append(lineas, LineaVenta{
				Precio:        p.Precio,
				Cantidad:      u.Cantidad,
				Factor:        u.Factor,
				Recargo:       u.Recargo,
				Descuento:     u.Descuento,
				TipoDescuento: tipo,
			})
		}
	}
	return lineas
}

func LineasVentaDeModelo(detalles []model.VentaDetalle) []LineaVenta {
	var lineas []LineaVenta
	for _, d := range detalles {
		for _, u := range d.Unidades {
			lineas = append(lineas, LineaVenta{
				Precio:        d.Precio,
				Cantidad:      u.Cantidad,
				Factor:        u.Factor,
				Recargo:       u.Recargo,
				Descuento:     u.Descuento,
				TipoDescuento: u.TipoDescuento,
			})
		}
	}
	return lineas
}
