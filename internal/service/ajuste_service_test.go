package service

import (
	"context"
	"testing"

	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ajusteFixture struct {
	svc       AjusteStockService
	repo      *stubAjusteRepo
	productos *stubProductoAlmacenRepo
}

func newAjusteFixture() *ajusteFixture {
	f := &ajusteFixture{
		repo:      newStubAjusteRepo(),
		productos: newStubProductoAlmacenRepo(),
	}
	f.svc = NewAjusteStockService(f.repo, newStubUnidadRepo(), NewStockService(f.productos, nil))
	return f
}

func TestRegistrarAjusteIngreso(t *testing.T) {
	f := newAjusteFixture()
	ppaID := f.productos.agregarProducto(d("10"), decimal.Zero)

	resp, err := f.svc.Registrar(context.Background(), dto.RegistrarAjusteRequest{
		Tipo:   "ingreso",
		Motivo: "Inventario inicial",
		Productos: []dto.AjusteDetalleRequest{{
			ProductoPorAlmacenID: ppaID.String(),
			Unidad:               "caja",
			Factor:               d("12"),
			Cantidad:             d("2"),
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, "ingreso", resp.Tipo)
	assert.Equal(t, "registrado", resp.Estado)
	assert.True(t, f.productos.productos[ppaID].StockFraccion.Equal(d("34")))

	require.Len(t, f.productos.movimientos, 1)
	mov := f.productos.movimientos[0]
	assert.Equal(t, "ajuste_ingreso", mov.Tipo)
	assert.Equal(t, "Inventario inicial", mov.Motivo)
	require.NotNil(t, mov.ReferenciaID)
	assert.Equal(t, resp.ID, mov.ReferenciaID.String())
}

func TestRegistrarAjusteSalida(t *testing.T) {
	f := newAjusteFixture()
	ppaID := f.productos.agregarProducto(d("10"), decimal.Zero)

	_, err := f.svc.Registrar(context.Background(), dto.RegistrarAjusteRequest{
		Tipo:   "salida",
		Motivo: "Merma",
		Productos: []dto.AjusteDetalleRequest{{
			ProductoPorAlmacenID: ppaID.String(),
			Unidad:               "unidad",
			Factor:               d("1"),
			Cantidad:             d("4"),
		}},
	})
	require.NoError(t, err)

	assert.True(t, f.productos.productos[ppaID].StockFraccion.Equal(d("6")))
	require.Len(t, f.productos.movimientos, 1)
	assert.Equal(t, "ajuste_salida", f.productos.movimientos[0].Tipo)
}

func TestRegistrarAjusteSalidaSinStock(t *testing.T) {
	f := newAjusteFixture()
	ppaID := f.productos.agregarProducto(d("3"), decimal.Zero)

	_, err := f.svc.Registrar(context.Background(), dto.RegistrarAjusteRequest{
		Tipo:   "salida",
		Motivo: "Merma",
		Productos: []dto.AjusteDetalleRequest{{
			ProductoPorAlmacenID: ppaID.String(),
			Unidad:               "unidad",
			Factor:               d("1"),
			Cantidad:             d("5"),
		}},
	})
	require.ErrorIs(t, err, ErrStockInsuficiente)
	assert.True(t, f.productos.productos[ppaID].StockFraccion.Equal(d("3")))
}

func TestRegistrarAjusteSnapshotInvalido(t *testing.T) {
	f := newAjusteFixture()
	ppaID := f.productos.agregarProducto(d("10"), decimal.Zero)

	_, err := f.svc.Registrar(context.Background(), dto.RegistrarAjusteRequest{
		Tipo:   "ingreso",
		Motivo: "x",
		Productos: []dto.AjusteDetalleRequest{{
			ProductoPorAlmacenID: ppaID.String(),
			Unidad:               "unidad",
			Factor:               decimal.Zero,
			Cantidad:             d("1"),
		}},
	})
	assert.ErrorIs(t, err, ErrSnapshotInvalido)
	assert.Empty(t, f.repo.ajustes)
}

func TestListarAjustesFiltraPorTipo(t *testing.T) {
	f := newAjusteFixture()
	ppaID := f.productos.agregarProducto(d("100"), decimal.Zero)

	for _, tipo := range []string{"ingreso", "salida"} {
		_, err := f.svc.Registrar(context.Background(), dto.RegistrarAjusteRequest{
			Tipo:   tipo,
			Motivo: "m",
			Productos: []dto.AjusteDetalleRequest{{
				ProductoPorAlmacenID: ppaID.String(),
				Unidad:               "unidad",
				Factor:               d("1"),
				Cantidad:             d("1"),
			}},
		})
		require.NoError(t, err)
	}

	out, err := f.svc.Listar(context.Background(), dto.AjusteFilter{Tipo: "salida"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
	assert.Equal(t, "salida", out.Data[0].Tipo)
}
