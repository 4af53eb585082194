package service_test

import (
	"context"
	"testing"
	"time"

	"salonpos/internal/dto"
	"salonpos/internal/model"
	"salonpos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrearIngreso_SinCaja(t *testing.T) {
	f := newFixture()
	_, err := f.libro().CrearIngreso(context.Background(), dto.CrearIngresoRequest{
		Fecha: "2025-03-10", MetodoPago: "Efectivo", Concepto: model.ConceptoNinguno, PrecioUnitario: dec("10"),
	})
	assert.ErrorIs(t, err, service.ErrSinSesion)
	assert.Empty(t, f.ingresoRepo.ingresos)
}

func TestCrearIngreso_CajaCerrada(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	abrir(t, f.caja(), "2025-03-10", "0")
	_, err := f.caja().Cerrar(ctx, dto.CerrarCajaRequest{Fecha: "2025-03-10", MontoCierre: dec("0")})
	require.NoError(t, err)

	_, err = f.libro().CrearIngreso(ctx, dto.CrearIngresoRequest{
		Fecha: "2025-03-10", MetodoPago: "Efectivo", Concepto: model.ConceptoNinguno, PrecioUnitario: dec("10"),
	})
	assert.ErrorIs(t, err, service.ErrCajaCerrada)

	_, err = f.libro().CrearEgreso(ctx, dto.EgresoRequest{
		Fecha: "2025-03-10", MetodoPago: "Efectivo", Detalle: "x", Monto: dec("10"),
	})
	assert.ErrorIs(t, err, service.ErrCajaCerrada)
	assert.Empty(t, f.ingresoRepo.ingresos)
	assert.Empty(t, f.egresoRepo.egresos)
}

func TestCrearIngreso_Tratamiento(t *testing.T) {
	f := newFixture()
	abrir(t, f.caja(), "2025-03-10", "0")

	resp, err := f.libro().CrearIngreso(context.Background(), dto.CrearIngresoRequest{
		Fecha: "2025-03-10", MetodoPago: "  Cash ", Concepto: model.ConceptoTratamiento,
		PrecioUnitario: dec("1000"), Multiplicador: 3, ClienteID: uuid.NewString(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Cash", resp.MetodoPago, "label is trimmed, case kept")
	assert.True(t, resp.Monto.Equal(dec("3000")))
	require.NotNil(t, resp.PrecioUnitario)
	assert.True(t, resp.PrecioUnitario.Equal(dec("1000")))
	assert.NotNil(t, resp.ClienteID)
}

func TestCrearIngreso_ProductoSeGuardaMultiplicado(t *testing.T) {
	f := newFixture()
	abrir(t, f.caja(), "2025-03-10", "0")

	resp, err := f.libro().CrearIngreso(context.Background(), dto.CrearIngresoRequest{
		Fecha: "2025-03-10", MetodoPago: "Debito", Concepto: model.ConceptoProducto,
		PrecioUnitario: dec("250"), Multiplicador: 4,
	})
	require.NoError(t, err)
	assert.True(t, resp.Monto.Equal(dec("1000")))

	require.Len(t, f.ingresoRepo.ingresos, 1)
	stored := f.ingresoRepo.ingresos[0]
	assert.True(t, stored.PrecioUnitario.Decimal.Equal(dec("1000")))
	assert.True(t, service.ResolverMonto(&stored).Equal(dec("1000")), "resolver must not multiply again")
}

func TestCrearIngreso_Validaciones(t *testing.T) {
	f := newFixture()
	abrir(t, f.caja(), "2025-03-10", "0")
	ctx := context.Background()

	_, err := f.libro().CrearIngreso(ctx, dto.CrearIngresoRequest{
		Fecha: "2025-03-10", MetodoPago: "Efectivo", Concepto: model.ConceptoNinguno, PrecioUnitario: dec("-1"),
	})
	assert.ErrorIs(t, err, service.ErrMontoInvalido)

	_, err = f.libro().CrearIngreso(ctx, dto.CrearIngresoRequest{
		Fecha: "2025-03-10", MetodoPago: "   ", Concepto: model.ConceptoNinguno, PrecioUnitario: dec("1"),
	})
	assert.ErrorIs(t, err, service.ErrDatoInvalido)

	_, err = f.libro().CrearIngreso(ctx, dto.CrearIngresoRequest{
		Fecha: "2025-03-10", MetodoPago: "Efectivo", Concepto: "gift card", PrecioUnitario: dec("1"),
	})
	assert.ErrorIs(t, err, service.ErrDatoInvalido)

	_, err = f.libro().CrearIngreso(ctx, dto.CrearIngresoRequest{
		Fecha: "2025-03-10", MetodoPago: "Efectivo", Concepto: model.ConceptoNinguno, PrecioUnitario: dec("1"),
		ClienteID: "not-a-uuid",
	})
	assert.ErrorIs(t, err, service.ErrDatoInvalido)
	assert.Empty(t, f.ingresoRepo.ingresos)
}

func TestEliminarIngreso(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	abrir(t, f.caja(), "2025-03-10", "0")
	resp, err := f.libro().CrearIngreso(ctx, dto.CrearIngresoRequest{
		Fecha: "2025-03-10", MetodoPago: "Efectivo", Concepto: model.ConceptoNinguno, PrecioUnitario: dec("10"),
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	require.NoError(t, f.libro().EliminarIngreso(ctx, id))
	assert.ErrorIs(t, f.libro().EliminarIngreso(ctx, id), service.ErrNoEncontrado)
}

func TestActualizarEgreso(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	abrir(t, f.caja(), "2025-03-10", "0")
	abrir(t, f.caja(), "2025-03-11", "0")

	creado, err := f.libro().CrearEgreso(ctx, dto.EgresoRequest{
		Fecha: "2025-03-10", MetodoPago: "Efectivo", Detalle: "insumos", Monto: dec("100"),
	})
	require.NoError(t, err)
	id := uuid.MustParse(creado.ID)

	act, err := f.libro().ActualizarEgreso(ctx, id, dto.EgresoRequest{
		Fecha: "2025-03-11", MetodoPago: "Transferencia", Detalle: "insumos", Monto: dec("120"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-11", act.Fecha)
	assert.True(t, act.Monto.Equal(dec("120")))

	// Moving it onto a closed date is refused.
	_, err = f.caja().Cerrar(ctx, dto.CerrarCajaRequest{Fecha: "2025-03-10", MontoCierre: dec("0")})
	require.NoError(t, err)
	_, err = f.libro().ActualizarEgreso(ctx, id, dto.EgresoRequest{
		Fecha: "2025-03-10", MetodoPago: "Transferencia", Detalle: "insumos", Monto: dec("120"),
	})
	assert.ErrorIs(t, err, service.ErrCajaCerrada)

	_, err = f.libro().ActualizarEgreso(ctx, uuid.New(), dto.EgresoRequest{
		Fecha: "2025-03-11", MetodoPago: "Efectivo", Detalle: "x", Monto: dec("1"),
	})
	assert.ErrorIs(t, err, service.ErrNoEncontrado)
}

func TestEliminarEgreso_CajaCerrada(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	abrir(t, f.caja(), "2025-03-10", "0")
	creado, err := f.libro().CrearEgreso(ctx, dto.EgresoRequest{
		Fecha: "2025-03-10", MetodoPago: "Efectivo", Detalle: "insumos", Monto: dec("100"),
	})
	require.NoError(t, err)
	_, err = f.caja().Cerrar(ctx, dto.CerrarCajaRequest{Fecha: "2025-03-10", MontoCierre: dec("0")})
	require.NoError(t, err)

	assert.ErrorIs(t, f.libro().EliminarEgreso(ctx, uuid.MustParse(creado.ID)), service.ErrCajaCerrada)
	assert.Len(t, f.egresoRepo.egresos, 1)
}

// sesionSiempreAbierta answers the pre-check as if it ran before a close that
// lands ahead of the write.
type sesionSiempreAbierta struct{ service.CajaService }

func (sesionSiempreAbierta) SesionAbierta(context.Context, time.Time) error { return nil }

func TestEscrituras_CajaCerradaTrasElChequeo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	abrir(t, f.caja(), "2025-03-10", "0")
	abrir(t, f.caja(), "2025-03-11", "0")
	ingreso, err := f.libro().CrearIngreso(ctx, dto.CrearIngresoRequest{
		Fecha: "2025-03-10", MetodoPago: "Efectivo", Concepto: model.ConceptoNinguno, PrecioUnitario: dec("10"),
	})
	require.NoError(t, err)
	egreso, err := f.libro().CrearEgreso(ctx, dto.EgresoRequest{
		Fecha: "2025-03-10", MetodoPago: "Efectivo", Detalle: "insumos", Monto: dec("5"),
	})
	require.NoError(t, err)
	_, err = f.caja().Cerrar(ctx, dto.CerrarCajaRequest{Fecha: "2025-03-10", MontoCierre: dec("0")})
	require.NoError(t, err)

	libro := service.NewLibroService(f.ingresoRepo, f.egresoRepo, sesionSiempreAbierta{f.caja()})

	_, err = libro.CrearIngreso(ctx, dto.CrearIngresoRequest{
		Fecha: "2025-03-10", MetodoPago: "Efectivo", Concepto: model.ConceptoNinguno, PrecioUnitario: dec("99"),
	})
	assert.ErrorIs(t, err, service.ErrCajaCerrada)
	_, err = libro.CrearEgreso(ctx, dto.EgresoRequest{
		Fecha: "2025-03-10", MetodoPago: "Efectivo", Detalle: "x", Monto: dec("1"),
	})
	assert.ErrorIs(t, err, service.ErrCajaCerrada)
	assert.ErrorIs(t, libro.EliminarIngreso(ctx, uuid.MustParse(ingreso.ID)), service.ErrCajaCerrada)
	assert.ErrorIs(t, libro.EliminarEgreso(ctx, uuid.MustParse(egreso.ID)), service.ErrCajaCerrada)

	// Moving a row out of a closed day is refused too, even into an open one.
	_, err = libro.ActualizarEgreso(ctx, uuid.MustParse(egreso.ID), dto.EgresoRequest{
		Fecha: "2025-03-11", MetodoPago: "Efectivo", Detalle: "insumos", Monto: dec("5"),
	})
	assert.ErrorIs(t, err, service.ErrCajaCerrada)

	require.Len(t, f.ingresoRepo.ingresos, 1)
	assert.True(t, f.ingresoRepo.ingresos[0].PrecioUnitario.Decimal.Equal(dec("10")))
	require.Len(t, f.egresoRepo.egresos, 1)
	assert.Equal(t, "2025-03-10", f.egresoRepo.egresos[0].Fecha.Format(model.LayoutFecha))
}

func TestListarAsientos(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	abrir(t, f.caja(), "2025-03-10", "0")
	abrir(t, f.caja(), "2025-03-11", "0")

	for _, d := range []string{"2025-03-10", "2025-03-10", "2025-03-11"} {
		_, err := f.libro().CrearIngreso(ctx, dto.CrearIngresoRequest{
			Fecha: d, MetodoPago: "Efectivo", Concepto: model.ConceptoNinguno, PrecioUnitario: dec("1"),
		})
		require.NoError(t, err)
	}
	ingresos, err := f.libro().ListarIngresos(ctx, fecha("2025-03-10"))
	require.NoError(t, err)
	assert.Len(t, ingresos, 2)

	egresos, err := f.libro().ListarEgresos(ctx, fecha("2025-03-10"))
	require.NoError(t, err)
	assert.NotNil(t, egresos)
	assert.Empty(t, egresos)
}
