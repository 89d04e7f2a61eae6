package model

// Moneda is the document currency. Totals are converted to the base currency
// (soles) exactly once, on the aggregated total.
type Moneda string

const (
	MonedaSoles   Moneda = "soles"
	MonedaDolares Moneda = "dolares"
)

// FormaDePago: "contado" requires a money source, "credito" forbids one.
type FormaDePago string

const (
	PagoContado FormaDePago = "contado"
	PagoCredito FormaDePago = "credito"
)

// EstadoDocumento is the document lifecycle state.
// "procesado" and "anulado" are terminal: no edits, no void.
type EstadoDocumento string

const (
	EstadoRegistrado EstadoDocumento = "registrado"
	EstadoEnEspera   EstadoDocumento = "en espera"
	EstadoProcesado  EstadoDocumento = "procesado"
	EstadoAnulado    EstadoDocumento = "anulado"
)

// EsTerminal reports whether no further transitions are accepted.
func (e EstadoDocumento) EsTerminal() bool {
	return e == EstadoProcesado || e == EstadoAnulado
}

// TipoDescuento applies to sale unit lines.
type TipoDescuento string

const (
	DescuentoPorcentaje TipoDescuento = "porcentaje"
	DescuentoMonto      TipoDescuento = "monto"
)
