package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"salonpos/internal/dto"
	"salonpos/internal/model"
	"salonpos/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Column order of the legacy export.
var columnasImportacion = []string{"tipo", "fecha", "metodo_pago", "concepto", "precio", "multiplicador", "detalle"}

// ImportacionService backfills historical ledger rows from a CSV export.
// It bypasses the open-caja barrier: the caja for the row date only has to
// exist, closed ones included.
type ImportacionService interface {
	Importar(ctx context.Context, r io.Reader) (*dto.ImportacionResponse, error)
}

type importacionService struct {
	cajaRepo    repository.CajaRepository
	ingresoRepo repository.IngresoRepository
	egresoRepo  repository.EgresoRepository
}

func NewImportacionService(cajaRepo repository.CajaRepository, ingresoRepo repository.IngresoRepository, egresoRepo repository.EgresoRepository) ImportacionService {
	return &importacionService{cajaRepo: cajaRepo, ingresoRepo: ingresoRepo, egresoRepo: egresoRepo}
}

func (s *importacionService) Importar(ctx context.Context, r io.Reader) (*dto.ImportacionResponse, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(columnasImportacion)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: cabecera: %v", ErrDatoInvalido, err)
	}
	for i, col := range columnasImportacion {
		if strings.ToLower(strings.TrimSpace(header[i])) != col {
			return nil, fmt.Errorf("%w: columna %d es %q, se esperaba %q", ErrDatoInvalido, i+1, header[i], col)
		}
	}

	resp := &dto.ImportacionResponse{Errores: []dto.ImportacionError{}}
	sesiones := make(map[time.Time]bool)
	linea := 1

	for {
		rec, err := cr.Read()
		linea++
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			resp.Errores = append(resp.Errores, dto.ImportacionError{Linea: linea, Detalle: err.Error()})
			continue
		}
		if err := ctx.Err(); err != nil {
			return resp, err
		}

		normalizado, err := s.importarFila(ctx, rec, sesiones)
		if err != nil {
			// Storage failures abort the run; data problems are reported per line.
			if !errors.Is(err, ErrDatoInvalido) && !errors.Is(err, ErrSinSesion) && !errors.Is(err, ErrMontoInvalido) {
				return resp, fmt.Errorf("línea %d: %w", linea, err)
			}
			resp.Errores = append(resp.Errores, dto.ImportacionError{Linea: linea, Detalle: err.Error()})
			continue
		}
		resp.Importados++
		if normalizado {
			resp.Normalizados++
			log.Warn().Int("linea", linea).Msg("importación: precio o multiplicador ilegible guardado como NULL")
		}
	}

	log.Info().
		Int("importados", resp.Importados).
		Int("normalizados", resp.Normalizados).
		Int("errores", len(resp.Errores)).
		Msg("importación finalizada")
	return resp, nil
}

// importarFila stores one record. The bool reports whether a numeric field
// was unreadable and stored as NULL.
func (s *importacionService) importarFila(ctx context.Context, rec []string, sesiones map[time.Time]bool) (bool, error) {
	tipo := strings.ToLower(strings.TrimSpace(rec[0]))
	fecha, err := parseFecha(strings.TrimSpace(rec[1]))
	if err != nil {
		return false, err
	}
	if err := s.exigirSesion(ctx, fecha, sesiones); err != nil {
		return false, err
	}
	// Blank methods are kept blank and grouped as "Sin especificar" on read.
	metodo := strings.TrimSpace(rec[2])
	concepto := strings.ToLower(strings.TrimSpace(rec[3]))

	switch tipo {
	case "ingreso":
		return s.importarIngreso(ctx, fecha, metodo, concepto, rec[4], rec[5])
	case "egreso":
		monto, ok := parseDecimalLegacy(rec[4])
		if !ok {
			return false, fmt.Errorf("%w: egreso con monto ilegible %q", ErrDatoInvalido, rec[4])
		}
		if monto.IsNegative() {
			return false, ErrMontoInvalido
		}
		detalle := strings.TrimSpace(rec[6])
		if detalle == "" {
			return false, fmt.Errorf("%w: egreso sin detalle", ErrDatoInvalido)
		}
		return false, s.egresoRepo.Create(ctx, &model.Egreso{
			Fecha:      fecha,
			MetodoPago: metodo,
			Detalle:    detalle,
			Monto:      monto,
		})
	default:
		return false, fmt.Errorf("%w: tipo %q", ErrDatoInvalido, rec[0])
	}
}

// importarIngreso follows the storage contract: producto rows carry the line
// total in precio, exactly as the legacy system exported them.
func (s *importacionService) importarIngreso(ctx context.Context, fecha time.Time, metodo, concepto, precioRaw, multRaw string) (bool, error) {
	switch concepto {
	case "":
		concepto = model.ConceptoNinguno
	case model.ConceptoTratamiento, model.ConceptoProducto, model.ConceptoNinguno:
	default:
		return false, fmt.Errorf("%w: concepto %q", ErrDatoInvalido, concepto)
	}

	ingreso := &model.Ingreso{Fecha: fecha, MetodoPago: metodo, Concepto: concepto}
	normalizado := false

	if precio, ok := parseDecimalLegacy(precioRaw); ok {
		if precio.IsNegative() {
			return false, ErrMontoInvalido
		}
		ingreso.PrecioUnitario = decimal.NewNullDecimal(precio)
	} else {
		normalizado = true
	}

	if n, err := strconv.Atoi(strings.TrimSpace(multRaw)); err == nil && n >= 0 {
		ingreso.Multiplicador = &n
	} else if concepto == model.ConceptoTratamiento || strings.TrimSpace(multRaw) != "" {
		normalizado = true
	}

	return normalizado, s.ingresoRepo.Create(ctx, ingreso)
}

func (s *importacionService) exigirSesion(ctx context.Context, fecha time.Time, vistas map[time.Time]bool) error {
	if vistas[fecha] {
		return nil
	}
	_, err := s.cajaRepo.FindSesion(ctx, fecha)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrSinSesion, fecha.Format(model.LayoutFecha))
	}
	if err != nil {
		return err
	}
	vistas[fecha] = true
	return nil
}

// parseDecimalLegacy accepts "1500.50" and the comma-decimal "1500,50".
func parseDecimalLegacy(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
