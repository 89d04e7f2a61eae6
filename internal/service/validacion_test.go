package service

import (
	"testing"

	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func ptrUUID() *uuid.UUID {
	id := uuid.New()
	return &id
}

func ptrStr(s string) *string { return &s }

func TestValidarPagoCompra(t *testing.T) {
	t.Run("contado registrado sin fuente", func(t *testing.T) {
		err := ValidarPagoCompra(model.EstadoRegistrado, model.PagoContado, nil, nil)
		assert.ErrorIs(t, err, ErrPagoContadoSinFuente)
	})

	t.Run("contado registrado con ambas fuentes", func(t *testing.T) {
		err := ValidarPagoCompra(model.EstadoRegistrado, model.PagoContado, ptrUUID(), ptrUUID())
		assert.ErrorIs(t, err, ErrPagoContadoAmbiguo)
	})

	t.Run("contado registrado con una fuente", func(t *testing.T) {
		assert.NoError(t, ValidarPagoCompra(model.EstadoRegistrado, model.PagoContado, ptrUUID(), nil))
		assert.NoError(t, ValidarPagoCompra(model.EstadoRegistrado, model.PagoContado, nil, ptrUUID()))
	})

	t.Run("credito nunca lleva fuente, sea cual sea el estado", func(t *testing.T) {
		err := ValidarPagoCompra(model.EstadoEnEspera, model.PagoCredito, ptrUUID(), nil)
		assert.ErrorIs(t, err, ErrPagoCreditoConFuente)
	})

	t.Run("en espera no exige fuente", func(t *testing.T) {
		assert.NoError(t, ValidarPagoCompra(model.EstadoEnEspera, model.PagoContado, nil, nil))
	})
}

func TestValidarPagoVenta(t *testing.T) {
	t.Run("contado registrado sin pago", func(t *testing.T) {
		err := ValidarPagoVenta(model.EstadoRegistrado, model.PagoContado, nil, 0)
		assert.ErrorIs(t, err, ErrVentaContadoSinPago)
	})

	t.Run("ingreso y pagos a la vez es ambiguo", func(t *testing.T) {
		err := ValidarPagoVenta(model.EstadoRegistrado, model.PagoContado, ptrUUID(), 2)
		assert.ErrorIs(t, err, ErrVentaContadoAmbigua)
	})

	t.Run("credito con pagos es invalido", func(t *testing.T) {
		err := ValidarPagoVenta(model.EstadoRegistrado, model.PagoCredito, nil, 1)
		assert.ErrorIs(t, err, ErrPagoCreditoConFuente)
	})

	t.Run("contado con asignaciones", func(t *testing.T) {
		assert.NoError(t, ValidarPagoVenta(model.EstadoRegistrado, model.PagoContado, nil, 3))
	})
}

func TestDebeVerificarDuplicado(t *testing.T) {
	assert.True(t, DebeVerificarDuplicado(model.EstadoRegistrado, ptrStr("F001"), ptrStr("123")))
	assert.True(t, DebeVerificarDuplicado(model.EstadoEnEspera, ptrStr("F001"), ptrStr("123")))
	assert.False(t, DebeVerificarDuplicado(model.EstadoProcesado, ptrStr("F001"), ptrStr("123")))

	// Cabecera incompleta: el documento en preparación puede coexistir.
	assert.False(t, DebeVerificarDuplicado(model.EstadoRegistrado, nil, ptrStr("123")))
	assert.False(t, DebeVerificarDuplicado(model.EstadoRegistrado, ptrStr(""), ptrStr("123")))
	assert.False(t, DebeVerificarDuplicado(model.EstadoEnEspera, ptrStr("F001"), nil))
}
