package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"salonpos/internal/dto"
	"salonpos/internal/model"
	"salonpos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LibroService owns writes to the ledger. Every write needs an open caja for
// each date it touches.
type LibroService interface {
	CrearIngreso(ctx context.Context, req dto.CrearIngresoRequest) (*dto.IngresoResponse, error)
	EliminarIngreso(ctx context.Context, id uuid.UUID) error
	ListarIngresos(ctx context.Context, fecha time.Time) ([]dto.IngresoResponse, error)

	CrearEgreso(ctx context.Context, req dto.EgresoRequest) (*dto.EgresoResponse, error)
	ActualizarEgreso(ctx context.Context, id uuid.UUID, req dto.EgresoRequest) (*dto.EgresoResponse, error)
	EliminarEgreso(ctx context.Context, id uuid.UUID) error
	ListarEgresos(ctx context.Context, fecha time.Time) ([]dto.EgresoResponse, error)
}

type libroService struct {
	ingresoRepo repository.IngresoRepository
	egresoRepo  repository.EgresoRepository
	caja        CajaService
}

func NewLibroService(ingresoRepo repository.IngresoRepository, egresoRepo repository.EgresoRepository, caja CajaService) LibroService {
	return &libroService{ingresoRepo: ingresoRepo, egresoRepo: egresoRepo, caja: caja}
}

// ── Ingresos ──────────────────────────────────────────────────────────────────

func (s *libroService) CrearIngreso(ctx context.Context, req dto.CrearIngresoRequest) (*dto.IngresoResponse, error) {
	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, err
	}
	metodo, err := validarMetodo(req.MetodoPago)
	if err != nil {
		return nil, err
	}
	if req.PrecioUnitario.IsNegative() || req.Multiplicador < 0 {
		return nil, ErrMontoInvalido
	}

	ingreso := &model.Ingreso{
		Fecha:       fecha,
		MetodoPago:  metodo,
		Concepto:    req.Concepto,
		Observacion: req.Observacion,
	}
	precio := req.PrecioUnitario
	switch req.Concepto {
	case model.ConceptoTratamiento:
		n := req.Multiplicador
		ingreso.Multiplicador = &n
	case model.ConceptoProducto:
		// Stored pre-multiplied; ResolverMonto takes it as the line total.
		n := req.Multiplicador
		ingreso.Multiplicador = &n
		precio = MontoProductoDesdeUnitario(req.PrecioUnitario, req.Multiplicador)
	case model.ConceptoNinguno:
		zero := 0
		ingreso.Multiplicador = &zero
	default:
		return nil, fmt.Errorf("%w: concepto %q", ErrDatoInvalido, req.Concepto)
	}
	ingreso.PrecioUnitario = decimal.NewNullDecimal(precio)

	if ingreso.ClienteID, err = parseUUIDOpcional(req.ClienteID); err != nil {
		return nil, err
	}
	if ingreso.ReferenciaID, err = parseUUIDOpcional(req.ReferenciaID); err != nil {
		return nil, err
	}

	// Pre-check for the precise error; the repository re-checks under lock.
	if err := s.caja.SesionAbierta(ctx, fecha); err != nil {
		return nil, err
	}
	if err := s.ingresoRepo.CreateEnCajaAbierta(ctx, ingreso); err != nil {
		return nil, errorEscritura(err, "ingreso")
	}

	log.Info().
		Str("ingreso_id", ingreso.ID.String()).
		Str("fecha", req.Fecha).
		Str("metodo_pago", metodo).
		Msg("ingreso registrado")
	return toIngresoResponse(ingreso), nil
}

func (s *libroService) EliminarIngreso(ctx context.Context, id uuid.UUID) error {
	ingreso, err := s.ingresoRepo.FindByID(ctx, id)
	if err != nil {
		return notFound(err, "ingreso")
	}
	if err := s.caja.SesionAbierta(ctx, ingreso.Fecha); err != nil {
		return err
	}
	if err := s.ingresoRepo.Delete(ctx, id); err != nil {
		return errorEscritura(err, "ingreso")
	}
	return nil
}

func (s *libroService) ListarIngresos(ctx context.Context, fecha time.Time) ([]dto.IngresoResponse, error) {
	fecha = model.Dia(fecha)
	ingresos, err := s.ingresoRepo.ListByRango(ctx, fecha, fecha)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IngresoResponse, 0, len(ingresos))
	for i := range ingresos {
		out = append(out, *toIngresoResponse(&ingresos[i]))
	}
	return out, nil
}

// ── Egresos ───────────────────────────────────────────────────────────────────

func (s *libroService) CrearEgreso(ctx context.Context, req dto.EgresoRequest) (*dto.EgresoResponse, error) {
	egreso, err := egresoDesdeRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.caja.SesionAbierta(ctx, egreso.Fecha); err != nil {
		return nil, err
	}
	if err := s.egresoRepo.CreateEnCajaAbierta(ctx, egreso); err != nil {
		return nil, errorEscritura(err, "egreso")
	}

	log.Info().
		Str("egreso_id", egreso.ID.String()).
		Str("fecha", req.Fecha).
		Str("monto", egreso.Monto.String()).
		Msg("egreso registrado")
	return toEgresoResponse(egreso), nil
}

// ActualizarEgreso rewrites an expense. Both the original date and the new one
// must still be open.
func (s *libroService) ActualizarEgreso(ctx context.Context, id uuid.UUID, req dto.EgresoRequest) (*dto.EgresoResponse, error) {
	nuevo, err := egresoDesdeRequest(req)
	if err != nil {
		return nil, err
	}
	actual, err := s.egresoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "egreso")
	}
	if err := s.caja.SesionAbierta(ctx, actual.Fecha); err != nil {
		return nil, err
	}
	if !nuevo.Fecha.Equal(model.Dia(actual.Fecha)) {
		if err := s.caja.SesionAbierta(ctx, nuevo.Fecha); err != nil {
			return nil, err
		}
	}

	nuevo.ID = actual.ID
	nuevo.CreatedAt = actual.CreatedAt
	if err := s.egresoRepo.Update(ctx, nuevo); err != nil {
		return nil, errorEscritura(err, "egreso")
	}
	return toEgresoResponse(nuevo), nil
}

func (s *libroService) EliminarEgreso(ctx context.Context, id uuid.UUID) error {
	egreso, err := s.egresoRepo.FindByID(ctx, id)
	if err != nil {
		return notFound(err, "egreso")
	}
	if err := s.caja.SesionAbierta(ctx, egreso.Fecha); err != nil {
		return err
	}
	if err := s.egresoRepo.Delete(ctx, id); err != nil {
		return errorEscritura(err, "egreso")
	}
	return nil
}

func (s *libroService) ListarEgresos(ctx context.Context, fecha time.Time) ([]dto.EgresoResponse, error) {
	fecha = model.Dia(fecha)
	egresos, err := s.egresoRepo.ListByRango(ctx, fecha, fecha)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EgresoResponse, 0, len(egresos))
	for i := range egresos {
		out = append(out, *toEgresoResponse(&egresos[i]))
	}
	return out, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func egresoDesdeRequest(req dto.EgresoRequest) (*model.Egreso, error) {
	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, err
	}
	metodo, err := validarMetodo(req.MetodoPago)
	if err != nil {
		return nil, err
	}
	if req.Monto.IsNegative() {
		return nil, ErrMontoInvalido
	}
	detalle := strings.TrimSpace(req.Detalle)
	if detalle == "" {
		return nil, fmt.Errorf("%w: detalle vacío", ErrDatoInvalido)
	}
	return &model.Egreso{
		Fecha:       fecha,
		MetodoPago:  metodo,
		Detalle:     detalle,
		Monto:       req.Monto,
		Observacion: req.Observacion,
	}, nil
}

func validarMetodo(metodo string) (string, error) {
	m, ok := model.NormalizarMetodo(metodo)
	if !ok {
		return "", fmt.Errorf("%w: método de pago vacío", ErrDatoInvalido)
	}
	return m, nil
}

func parseUUIDOpcional(s string) (*uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatoInvalido, err)
	}
	return &id, nil
}

func notFound(err error, entidad string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNoEncontrado, entidad)
	}
	return err
}

// errorEscritura maps a guarded repository write. A session closed between the
// pre-check and the write surfaces as ErrCajaCerrada.
func errorEscritura(err error, entidad string) error {
	if errors.Is(err, repository.ErrCajaNoAbierta) {
		return fmt.Errorf("%w: %v", ErrCajaCerrada, err)
	}
	return notFound(err, entidad)
}

func toIngresoResponse(i *model.Ingreso) *dto.IngresoResponse {
	resp := &dto.IngresoResponse{
		ID:            i.ID.String(),
		Fecha:         i.Fecha.Format(model.LayoutFecha),
		MetodoPago:    i.MetodoPago,
		Concepto:      i.Concepto,
		Multiplicador: i.Multiplicador,
		Monto:         ResolverMonto(i),
		Observacion:   i.Observacion,
	}
	if i.PrecioUnitario.Valid {
		p := i.PrecioUnitario.Decimal
		resp.PrecioUnitario = &p
	}
	if i.ClienteID != nil {
		c := i.ClienteID.String()
		resp.ClienteID = &c
	}
	if i.ReferenciaID != nil {
		r := i.ReferenciaID.String()
		resp.ReferenciaID = &r
	}
	return resp
}

func toEgresoResponse(e *model.Egreso) *dto.EgresoResponse {
	return &dto.EgresoResponse{
		ID:          e.ID.String(),
		Fecha:       e.Fecha.Format(model.LayoutFecha),
		MetodoPago:  e.MetodoPago,
		Detalle:     e.Detalle,
		Monto:       e.Monto,
		Observacion: e.Observacion,
	}
}
