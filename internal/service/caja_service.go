package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salonpos/internal/dto"
	"salonpos/internal/model"
	"salonpos/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CajaService interface {
	Abrir(ctx context.Context, req dto.AbrirCajaRequest) (*dto.SesionCajaResponse, error)
	Cerrar(ctx context.Context, req dto.CerrarCajaRequest) (*dto.SesionCajaResponse, error)
	Obtener(ctx context.Context, fecha time.Time) (*dto.SesionCajaResponse, error)
	// SaldoCalculado = monto de apertura − egresos en efectivo del día.
	SaldoCalculado(ctx context.Context, fecha time.Time) (decimal.Decimal, error)
	Arqueo(ctx context.Context, fecha time.Time) (*dto.ArqueoResponse, error)
	Historial(ctx context.Context, mes model.Mes) ([]dto.SesionCajaResponse, error)
	Eliminar(ctx context.Context, fecha time.Time) error
	// SesionAbierta is the write barrier used by LibroService.
	SesionAbierta(ctx context.Context, fecha time.Time) error
}

type cajaService struct {
	repo        repository.CajaRepository
	ingresoRepo repository.IngresoRepository
	egresoRepo  repository.EgresoRepository
	now         func() time.Time
}

func NewCajaService(repo repository.CajaRepository, ingresoRepo repository.IngresoRepository, egresoRepo repository.EgresoRepository) CajaService {
	return &cajaService{repo: repo, ingresoRepo: ingresoRepo, egresoRepo: egresoRepo, now: time.Now}
}

// ── Abrir ─────────────────────────────────────────────────────────────────────

func (s *cajaService) Abrir(ctx context.Context, req dto.AbrirCajaRequest) (*dto.SesionCajaResponse, error) {
	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, err
	}
	if req.MontoApertura.IsNegative() {
		return nil, ErrMontoInvalido
	}

	sesion := &model.SesionCaja{
		Fecha:         fecha,
		MontoApertura: req.MontoApertura,
		MontoCierre:   decimal.Zero,
		Estado:        model.EstadoAbierta,
		OpenedAt:      s.now(),
	}
	// Uniqueness is decided by the insert itself, never by a prior lookup.
	creada, err := s.repo.InsertSesion(ctx, sesion)
	if err != nil {
		return nil, err
	}
	if !creada {
		return nil, fmt.Errorf("%w: %s", ErrSesionDuplicada, req.Fecha)
	}

	log.Info().Str("fecha", req.Fecha).Str("monto_apertura", req.MontoApertura.String()).Msg("caja abierta")
	return toSesionResponse(sesion), nil
}

// ── Cerrar ────────────────────────────────────────────────────────────────────

func (s *cajaService) Cerrar(ctx context.Context, req dto.CerrarCajaRequest) (*dto.SesionCajaResponse, error) {
	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, err
	}
	if req.MontoCierre.IsNegative() {
		return nil, ErrMontoInvalido
	}

	cerrada, err := s.repo.CerrarSesion(ctx, fecha, req.MontoCierre, s.now())
	if err != nil {
		return nil, err
	}
	if !cerrada {
		// Nothing matched: tell apart a missing session from a closed one.
		sesion, err := s.repo.FindSesion(ctx, fecha)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSinSesion, req.Fecha)
		}
		if err != nil {
			return nil, err
		}
		if !sesion.Abierta() {
			return nil, fmt.Errorf("%w: %s", ErrSesionCerrada, req.Fecha)
		}
		return nil, fmt.Errorf("caja %s: cierre no aplicado", req.Fecha)
	}

	sesion, err := s.repo.FindSesion(ctx, fecha)
	if err != nil {
		return nil, err
	}
	log.Info().Str("fecha", req.Fecha).Str("monto_cierre", req.MontoCierre.String()).Msg("caja cerrada")
	return toSesionResponse(sesion), nil
}

// ── Consultas ─────────────────────────────────────────────────────────────────

func (s *cajaService) Obtener(ctx context.Context, fecha time.Time) (*dto.SesionCajaResponse, error) {
	sesion, err := s.findSesion(ctx, fecha)
	if err != nil {
		return nil, err
	}
	return toSesionResponse(sesion), nil
}

func (s *cajaService) SaldoCalculado(ctx context.Context, fecha time.Time) (decimal.Decimal, error) {
	sesion, err := s.findSesion(ctx, fecha)
	if err != nil {
		return decimal.Zero, err
	}
	egresos, err := s.egresosEfectivo(ctx, sesion.Fecha)
	if err != nil {
		return decimal.Zero, err
	}
	return sesion.MontoApertura.Sub(egresos), nil
}

// Arqueo surfaces the gap between the declared closing amount and the
// computed balance. Open sessions have nothing declared yet.
func (s *cajaService) Arqueo(ctx context.Context, fecha time.Time) (*dto.ArqueoResponse, error) {
	sesion, err := s.findSesion(ctx, fecha)
	if err != nil {
		return nil, err
	}
	egresos, err := s.egresosEfectivo(ctx, sesion.Fecha)
	if err != nil {
		return nil, err
	}
	calculado := sesion.MontoApertura.Sub(egresos)

	resp := &dto.ArqueoResponse{
		Fecha:           sesion.Fecha.Format(model.LayoutFecha),
		Estado:          sesion.Estado,
		MontoApertura:   sesion.MontoApertura,
		EgresosEfectivo: egresos,
		SaldoCalculado:  calculado,
	}
	if sesion.Abierta() {
		return resp, nil
	}

	declarado := sesion.MontoCierre
	desvio := declarado.Sub(calculado)
	var pct decimal.Decimal
	if !calculado.IsZero() {
		pct = desvio.Div(calculado.Abs()).Mul(decimal.NewFromInt(100)).Round(2)
	}
	resp.MontoDeclarado = &declarado
	resp.Desvio = &dto.DesvioResponse{
		Monto:         desvio,
		Porcentaje:    pct,
		Clasificacion: clasificarDesvio(desvio, calculado),
	}
	return resp, nil
}

func (s *cajaService) Historial(ctx context.Context, mes model.Mes) ([]dto.SesionCajaResponse, error) {
	sesiones, err := s.repo.ListSesiones(ctx, mes.Inicio(), mes.Fin())
	if err != nil {
		return nil, err
	}
	out := make([]dto.SesionCajaResponse, 0, len(sesiones))
	for i := range sesiones {
		out = append(out, *toSesionResponse(&sesiones[i]))
	}
	return out, nil
}

// ── Eliminar ──────────────────────────────────────────────────────────────────
// Administrative removal only. A date that still carries ledger rows is kept.

func (s *cajaService) Eliminar(ctx context.Context, fecha time.Time) error {
	fecha = model.Dia(fecha)
	if _, err := s.findSesion(ctx, fecha); err != nil {
		return err
	}
	ni, err := s.ingresoRepo.CountByFecha(ctx, fecha)
	if err != nil {
		return err
	}
	ne, err := s.egresoRepo.CountByFecha(ctx, fecha)
	if err != nil {
		return err
	}
	if ni+ne > 0 {
		return fmt.Errorf("%w: %d asientos", ErrSesionConAsientos, ni+ne)
	}
	if err := s.repo.DeleteSesion(ctx, fecha); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoEncontrado
		}
		return err
	}
	log.Warn().Str("fecha", fecha.Format(model.LayoutFecha)).Msg("caja eliminada")
	return nil
}

// ── SesionAbierta ─────────────────────────────────────────────────────────────

func (s *cajaService) SesionAbierta(ctx context.Context, fecha time.Time) error {
	sesion, err := s.repo.FindSesion(ctx, model.Dia(fecha))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrSinSesion, fecha.Format(model.LayoutFecha))
	}
	if err != nil {
		return err
	}
	if !sesion.Abierta() {
		return fmt.Errorf("%w: %s", ErrCajaCerrada, fecha.Format(model.LayoutFecha))
	}
	return nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *cajaService) findSesion(ctx context.Context, fecha time.Time) (*model.SesionCaja, error) {
	sesion, err := s.repo.FindSesion(ctx, model.Dia(fecha))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: caja %s", ErrNoEncontrado, fecha.Format(model.LayoutFecha))
	}
	return sesion, err
}

func (s *cajaService) egresosEfectivo(ctx context.Context, fecha time.Time) (decimal.Decimal, error) {
	egresos, err := s.egresoRepo.ListByRango(ctx, fecha, fecha)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for i := range egresos {
		if model.EsEfectivo(egresos[i].MetodoPago) {
			total = total.Add(ResolverMonto(&egresos[i]))
		}
	}
	return total, nil
}

// clasificarDesvio returns "normal" | "advertencia" | "critico"
// normal: |desvio| <= 1%, advertencia: <= 5%, critico: > 5%.
// With a zero computed balance any non-zero gap is critico. The ratio is
// compared unrounded so a tiny gap on a large balance stays normal.
func clasificarDesvio(monto, calculado decimal.Decimal) string {
	if monto.IsZero() {
		return "normal"
	}
	if calculado.IsZero() {
		return "critico"
	}
	ratio := monto.Abs().Mul(decimal.NewFromInt(100)).Div(calculado.Abs())
	switch {
	case ratio.LessThanOrEqual(decimal.NewFromInt(1)):
		return "normal"
	case ratio.LessThanOrEqual(decimal.NewFromInt(5)):
		return "advertencia"
	default:
		return "critico"
	}
}

func toSesionResponse(s *model.SesionCaja) *dto.SesionCajaResponse {
	resp := &dto.SesionCajaResponse{
		Fecha:         s.Fecha.Format(model.LayoutFecha),
		MontoApertura: s.MontoApertura,
		MontoCierre:   s.MontoCierre,
		Estado:        s.Estado,
		OpenedAt:      s.OpenedAt.UTC().Format(time.RFC3339),
	}
	if s.ClosedAt != nil {
		t := s.ClosedAt.UTC().Format(time.RFC3339)
		resp.ClosedAt = &t
	}
	return resp
}

func parseFecha(s string) (time.Time, error) {
	f, err := model.ParseFecha(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrDatoInvalido, err)
	}
	return f, nil
}
