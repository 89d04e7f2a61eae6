package service

import (
	"context"
	"testing"

	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type prestamoFixture struct {
	svc       PrestamoService
	repo      *stubPrestamoRepo
	productos *stubProductoAlmacenRepo
}

func newPrestamoFixture() *prestamoFixture {
	f := &prestamoFixture{
		repo:      newStubPrestamoRepo(),
		productos: newStubProductoAlmacenRepo(),
	}
	f.svc = NewPrestamoService(f.repo, newStubUnidadRepo(), NewStockService(f.productos, nil))
	return f
}

func reqPrestamo(ppaID uuid.UUID) dto.RegistrarPrestamoRequest {
	return dto.RegistrarPrestamoRequest{
		SocioDeNegocioID: uuid.NewString(),
		Productos: []dto.PrestamoDetalleRequest{{
			ProductoPorAlmacenID: ppaID.String(),
			Unidad:               "unidad",
			Factor:               d("1"),
			Cantidad:             d("5"),
		}},
	}
}

func TestRegistrarPrestamoSacaStock(t *testing.T) {
	f := newPrestamoFixture()
	ppaID := f.productos.agregarProducto(d("20"), decimal.Zero)

	resp, err := f.svc.Registrar(context.Background(), reqPrestamo(ppaID))
	require.NoError(t, err)

	assert.Equal(t, "prestado", resp.Estado)
	assert.True(t, f.productos.productos[ppaID].StockFraccion.Equal(d("15")))

	require.Len(t, f.productos.movimientos, 1)
	mov := f.productos.movimientos[0]
	assert.Equal(t, "prestamo", mov.Tipo)
	require.NotNil(t, mov.ReferenciaID)
	assert.Equal(t, resp.ID, mov.ReferenciaID.String())
}

func TestRegistrarPrestamoSinStock(t *testing.T) {
	f := newPrestamoFixture()
	ppaID := f.productos.agregarProducto(d("2"), decimal.Zero)

	_, err := f.svc.Registrar(context.Background(), reqPrestamo(ppaID))
	require.ErrorIs(t, err, ErrStockInsuficiente)
	assert.True(t, f.productos.productos[ppaID].StockFraccion.Equal(d("2")))
	assert.Empty(t, f.productos.movimientos)
}

func TestDevolverPrestamoReponeStock(t *testing.T) {
	f := newPrestamoFixture()
	ppaID := f.productos.agregarProducto(d("20"), decimal.Zero)

	resp, err := f.svc.Registrar(context.Background(), reqPrestamo(ppaID))
	require.NoError(t, err)

	id := uuid.MustParse(resp.ID)
	require.NoError(t, f.svc.Devolver(context.Background(), id))

	assert.True(t, f.productos.productos[ppaID].StockFraccion.Equal(d("20")))
	assert.Equal(t, "devuelto", f.repo.prestamos[id].Estado)
	assert.NotNil(t, f.repo.prestamos[id].DevueltoAt)

	require.Len(t, f.productos.movimientos, 2)
	assert.Equal(t, "devolucion_prestamo", f.productos.movimientos[1].Tipo)
}

func TestDevolverDosVeces(t *testing.T) {
	f := newPrestamoFixture()
	ppaID := f.productos.agregarProducto(d("20"), decimal.Zero)

	resp, err := f.svc.Registrar(context.Background(), reqPrestamo(ppaID))
	require.NoError(t, err)

	id := uuid.MustParse(resp.ID)
	require.NoError(t, f.svc.Devolver(context.Background(), id))
	err = f.svc.Devolver(context.Background(), id)
	assert.ErrorIs(t, err, ErrPrestamoNoPrestado)
	assert.True(t, f.productos.productos[ppaID].StockFraccion.Equal(d("20")), "sin doble reposición")
}

func TestAnularPrestamoReponeStock(t *testing.T) {
	f := newPrestamoFixture()
	ppaID := f.productos.agregarProducto(d("20"), decimal.Zero)

	resp, err := f.svc.Registrar(context.Background(), reqPrestamo(ppaID))
	require.NoError(t, err)

	id := uuid.MustParse(resp.ID)
	require.NoError(t, f.svc.Anular(context.Background(), id))

	assert.True(t, f.productos.productos[ppaID].StockFraccion.Equal(d("20")))
	assert.Equal(t, "anulado", f.repo.prestamos[id].Estado)
	require.Len(t, f.productos.movimientos, 2)
	assert.Equal(t, "anulacion_prestamo", f.productos.movimientos[1].Tipo)
}

func TestAnularPrestamoDevuelto(t *testing.T) {
	f := newPrestamoFixture()
	ppaID := f.productos.agregarProducto(d("20"), decimal.Zero)

	resp, err := f.svc.Registrar(context.Background(), reqPrestamo(ppaID))
	require.NoError(t, err)

	id := uuid.MustParse(resp.ID)
	require.NoError(t, f.svc.Devolver(context.Background(), id))

	err = f.svc.Anular(context.Background(), id)
	assert.ErrorIs(t, err, ErrPrestamoNoPrestado)
}

func TestListarPrestamosFiltraPorEstado(t *testing.T) {
	f := newPrestamoFixture()
	ppaID := f.productos.agregarProducto(d("100"), decimal.Zero)

	a, err := f.svc.Registrar(context.Background(), reqPrestamo(ppaID))
	require.NoError(t, err)
	_, err = f.svc.Registrar(context.Background(), reqPrestamo(ppaID))
	require.NoError(t, err)
	require.NoError(t, f.svc.Devolver(context.Background(), uuid.MustParse(a.ID)))

	out, err := f.svc.Listar(context.Background(), dto.PrestamoFilter{Estado: "prestado"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
}
