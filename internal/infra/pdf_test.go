package infra

import (
	"os"
	"path/filepath"
	"testing"

	"salonpos/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerarResumenPDF(t *testing.T) {
	dir := t.TempDir()
	r := &dto.ResumenMensualResponse{
		Mes: "2025-03",
		IngresosPorMetodo: []dto.MontoMetodo{
			{MetodoPago: "Efectivo", Monto: decimal.RequireFromString("4300")},
			{MetodoPago: "Débito", Monto: decimal.RequireFromString("1200")},
		},
		TotalIngresos: decimal.RequireFromString("5500"),
		Egresos:       decimal.RequireFromString("400"),
		TotalGastos:   decimal.RequireFromString("400"),
		GananciaNeta:  decimal.RequireFromString("5100"),
		Dias: []dto.ResumenDiario{
			{Fecha: "2025-03-03", Ingresos: decimal.RequireFromString("5500"), Egresos: decimal.Zero, Neto: decimal.RequireFromString("5500")},
			{Fecha: "2025-03-04", Ingresos: decimal.Zero, Egresos: decimal.Zero, Neto: decimal.Zero},
		},
	}

	path, err := GenerarResumenPDF(r, "Salón Norte", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "resumen_2025-03.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, len(data) > 4 && string(data[:4]) == "%PDF")
}

func TestFormatearMonto(t *testing.T) {
	assert.Equal(t, "$ 1.234.567,50", FormatearMonto(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "$ 0,00", FormatearMonto(decimal.Zero))
}
