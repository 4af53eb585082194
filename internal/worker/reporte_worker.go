package worker

// reporte_worker.go
// Builds the monthly summary PDF and hands it to the email queue.

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"salonpos/internal/dto"
	"salonpos/internal/infra"
	"salonpos/internal/model"

	"github.com/rs/zerolog/log"
)

// ReporteJobPayload is the job envelope sent to QueueReportes.
type ReporteJobPayload struct {
	Mes   string `json:"mes"`
	Email string `json:"email"`
}

// Resumidor is the part of service.ResumenService the worker needs.
type Resumidor interface {
	Resumen(ctx context.Context, mes model.Mes) (*dto.ResumenMensualResponse, error)
}

type emailEnqueuer interface {
	EnqueueEmail(ctx context.Context, payload EmailJobPayload) error
}

type ReporteWorker struct {
	resumen     Resumidor
	emails      emailEnqueuer
	nombreSalon string
	storagePath string
}

func NewReporteWorker(resumen Resumidor, emails emailEnqueuer, nombreSalon, storagePath string) *ReporteWorker {
	return &ReporteWorker{resumen: resumen, emails: emails, nombreSalon: nombreSalon, storagePath: storagePath}
}

// Process recomputes the summary from the ledger, so a report always reflects
// the rows present when the job runs.
func (w *ReporteWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReporteJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("reporte_worker: invalid payload: %w", err)
	}
	mes, err := model.ParseMes(payload.Mes)
	if err != nil {
		return fmt.Errorf("reporte_worker: %w", err)
	}

	resumen, err := w.resumen.Resumen(ctx, mes)
	if err != nil {
		return fmt.Errorf("reporte_worker: resumen %s: %w", payload.Mes, err)
	}

	pdfPath, err := infra.GenerarResumenPDF(resumen, w.nombreSalon, w.storagePath)
	if err != nil {
		return fmt.Errorf("reporte_worker: %w", err)
	}
	log.Info().Str("pdf", pdfPath).Str("mes", payload.Mes).Msg("reporte_worker: PDF generated")

	return w.emails.EnqueueEmail(ctx, EmailJobPayload{
		ToEmail: payload.Email,
		Subject: fmt.Sprintf("%s — resumen mensual %s", w.nombreSalon, payload.Mes),
		Body:    cuerpoResumen(resumen),
		PDFPath: pdfPath,
	})
}

func cuerpoResumen(r *dto.ResumenMensualResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Resumen del mes %s\n\n", r.Mes)
	fmt.Fprintf(&b, "Ingresos:       %s\n", infra.FormatearMonto(r.TotalIngresos))
	fmt.Fprintf(&b, "Gastos:         %s\n", infra.FormatearMonto(r.TotalGastos))
	fmt.Fprintf(&b, "Ganancia neta:  %s\n", infra.FormatearMonto(r.GananciaNeta))
	fmt.Fprintf(&b, "Retirado:       %s\n\n", infra.FormatearMonto(r.TotalRetirado))
	b.WriteString("El detalle por método de pago y por día va adjunto en PDF.\n")
	return b.String()
}
