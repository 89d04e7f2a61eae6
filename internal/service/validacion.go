package service

import (
	"errors"

	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/model"

	"github.com/google/uuid"
)

// validacion.go — payment-consistency rules. These run before any persistence
// or ledger mutation; a violation aborts the whole operation.

var (
	ErrPagoContadoSinFuente = errors.New("una compra al contado requiere un egreso de dinero o un despliegue de pago")
	ErrPagoContadoAmbiguo   = errors.New("no se puede indicar egreso de dinero y despliegue de pago a la vez")
	ErrPagoCreditoConFuente = errors.New("una operación al crédito no puede llevar fuente de dinero")
	ErrVentaContadoSinPago  = errors.New("una venta al contado requiere un ingreso de dinero o despliegues de pago")
	ErrVentaContadoAmbigua  = errors.New("no se puede indicar ingreso de dinero y despliegues de pago a la vez")
	ErrDocumentoDuplicado   = errors.New("ya existe un documento con la misma serie y número para este socio")
	ErrDocumentoTerminal    = errors.New("el documento está procesado o anulado y no admite cambios")
)

// ValidarPagoCompra enforces the money-source rules for a purchase header.
// Only "registrado" documents carry a monetary effect, so only they are
// checked for contado sources; crédito never allows one.
func ValidarPagoCompra(estado model.EstadoDocumento, forma model.FormaDePago, egresoID, despliegueID *uuid.UUID) error {
	if forma == model.PagoCredito && (egresoID != nil || despliegueID != nil) {
		return ErrPagoCreditoConFuente
	}
	if estado != model.EstadoRegistrado {
		return nil
	}
	if forma == model.PagoContado {
		switch {
		case egresoID != nil && despliegueID != nil:
			return ErrPagoContadoAmbiguo
		case egresoID == nil && despliegueID == nil:
			return ErrPagoContadoSinFuente
		}
	}
	return nil
}

// ValidarPagoVenta is the sale-side mirror: single cash-in reference vs a
// non-empty despliegue allocation list.
func ValidarPagoVenta(estado model.EstadoDocumento, forma model.FormaDePago, ingresoID *uuid.UUID, numPagos int) error {
	if forma == model.PagoCredito && (ingresoID != nil || numPagos > 0) {
		return ErrPagoCreditoConFuente
	}
	if estado != model.EstadoRegistrado {
		return nil
	}
	if forma == model.PagoContado {
		switch {
		case ingresoID != nil && numPagos > 0:
			return ErrVentaContadoAmbigua
		case ingresoID == nil && numPagos == 0:
			return ErrVentaContadoSinPago
		}
	}
	return nil
}

// DebeVerificarDuplicado reports whether the (socio, serie, numero) header
// uniqueness rule applies: always for "registrado", and for "en espera" once
// the header is complete. Staging documents with a half-filled header are
// allowed to coexist.
func DebeVerificarDuplicado(estado model.EstadoDocumento, serie, numero *string) bool {
	// An absent serie or numero maps to NULL in the partial unique index,
	// and NULL never matches NULL, so the lookup would be a no-op anyway.
	if serie == nil || numero == nil || *serie == "" || *numero == "" {
		return false
	}
	return estado == model.EstadoRegistrado || estado == model.EstadoEnEspera
}
