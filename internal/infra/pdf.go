package infra

// pdf.go — monthly summary report rendered with go-pdf/fpdf.
// A4 portrait: header, income by payment method, cost breakdown, result,
// and the per-day table. Written to storagePath/resumen_{YYYY-MM}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"salonpos/internal/dto"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Spanish)

// FormatearMonto renders an amount with Spanish separators: "$ 1.234.567,50".
func FormatearMonto(d decimal.Decimal) string {
	return printer.Sprintf("$ %.2f", d.Round(2).InexactFloat64())
}

// GenerarResumenPDF renders the summary and returns the path of the file.
func GenerarResumenPDF(r *dto.ResumenMensualResponse, nombreSalon, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("resumen_%s.pdf", r.Mes))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30
	colL := contentW * 0.65
	colR := contentW - colL

	linea := func(label string, monto decimal.Decimal, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(colL, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(colR, 6, tr(FormatearMonto(monto)), "", 1, "R", false, 0, "")
	}
	seccion := func(titulo string) {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW, 7, tr(titulo), "B", 1, "L", false, 0, "")
		pdf.Ln(1)
	}

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, tr(nombreSalon), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, tr("Resumen mensual "+r.Mes), "", 1, "C", false, 0, "")

	// ── Ingresos ─────────────────────────────────────────────────────────────
	seccion("Ingresos por método de pago")
	for _, m := range r.IngresosPorMetodo {
		linea(m.MetodoPago, m.Monto, false)
	}
	linea("Total ingresos", r.TotalIngresos, true)

	// ── Gastos ───────────────────────────────────────────────────────────────
	seccion("Gastos")
	linea("Egresos de caja", r.Egresos, false)
	linea("Comisiones", r.Comisiones, false)
	linea("Alquiler", r.Alquiler, false)
	linea("Servicios", r.Servicios, false)
	linea("Total gastos", r.TotalGastos, true)

	// ── Resultado ────────────────────────────────────────────────────────────
	seccion("Resultado")
	linea("Ganancia neta", r.GananciaNeta, true)
	linea("Total retirado de caja", r.TotalRetirado, false)

	// ── Detalle diario ───────────────────────────────────────────────────────
	seccion("Detalle diario")
	w := contentW / 4
	pdf.SetFont("Helvetica", "B", 9)
	for _, h := range []string{"Fecha", "Ingresos", "Egresos", "Neto"} {
		pdf.CellFormat(w, 6, h, "B", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	for _, d := range r.Dias {
		if d.Ingresos.IsZero() && d.Egresos.IsZero() {
			continue
		}
		pdf.CellFormat(w, 5, d.Fecha, "", 0, "C", false, 0, "")
		pdf.CellFormat(w, 5, tr(FormatearMonto(d.Ingresos)), "", 0, "R", false, 0, "")
		pdf.CellFormat(w, 5, tr(FormatearMonto(d.Egresos)), "", 0, "R", false, 0, "")
		pdf.CellFormat(w, 5, tr(FormatearMonto(d.Neto)), "", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
