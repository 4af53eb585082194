package service

import (
	"salonpos/internal/model"
	"salonpos/internal/observability"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ResolverMonto returns the line total of a ledger entry.
//
//   - Egreso: the stored amount.
//   - Ingreso tratamiento: precio unitario × sesiones; a missing or zero
//     multiplier yields 0.
//   - Ingreso producto: the stored precio, which the writer already multiplied
//     by the quantity. It is never multiplied again here.
//   - Ingreso ninguno: the stored precio.
//
// A NULL price counts as 0 and is logged as a data-quality warning.
func ResolverMonto(a model.Asiento) decimal.Decimal {
	switch e := a.(type) {
	case *model.Egreso:
		return e.Monto
	case *model.Ingreso:
		return resolverIngreso(e)
	default:
		return decimal.Zero
	}
}

func resolverIngreso(i *model.Ingreso) decimal.Decimal {
	precio := i.PrecioUnitario.Decimal
	if !i.PrecioUnitario.Valid {
		advertirNormalizacion(i, "precio_unitario")
		precio = decimal.Zero
	}

	switch i.Concepto {
	case model.ConceptoTratamiento:
		if i.Multiplicador == nil {
			advertirNormalizacion(i, "multiplicador")
			return decimal.Zero
		}
		if *i.Multiplicador <= 0 {
			return decimal.Zero
		}
		return precio.Mul(decimal.NewFromInt(int64(*i.Multiplicador)))
	case model.ConceptoProducto, model.ConceptoNinguno:
		return precio
	default:
		log.Warn().
			Str("ingreso_id", i.ID.String()).
			Str("concepto", i.Concepto).
			Msg("concepto desconocido: se toma el precio sin multiplicar")
		observability.Normalizacion("concepto")
		return precio
	}
}

func advertirNormalizacion(i *model.Ingreso, campo string) {
	log.Warn().
		Str("ingreso_id", i.ID.String()).
		Str("fecha", i.Fecha.Format(model.LayoutFecha)).
		Str("campo", campo).
		Msg("dato faltante en ingreso: se toma como 0")
	observability.Normalizacion(campo)
}

// MontoProductoDesdeUnitario is the writer-side half of the producto contract:
// it turns a true per-unit price and a quantity into the stored precio.
func MontoProductoDesdeUnitario(unitario decimal.Decimal, cantidad int) decimal.Decimal {
	if cantidad <= 0 {
		return decimal.Zero
	}
	return unitario.Mul(decimal.NewFromInt(int64(cantidad)))
}
