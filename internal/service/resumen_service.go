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

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ReporteDispatcher enqueues the monthly report job. Implemented by worker.Dispatcher.
type ReporteDispatcher interface {
	EnqueueReporteMensual(ctx context.Context, mes, email string) error
}

type ResumenService interface {
	Resumen(ctx context.Context, mes model.Mes) (*dto.ResumenMensualResponse, error)
	GuardarGastosFijos(ctx context.Context, mes model.Mes, req dto.GastosFijosRequest) (*dto.GastosFijosResponse, error)
	ObtenerGastosFijos(ctx context.Context, mes model.Mes) (*dto.GastosFijosResponse, error)
	EnviarResumen(ctx context.Context, mes model.Mes, email string) error
}

type resumenService struct {
	conciliacion ConciliacionService
	cajaRepo     repository.CajaRepository
	gastoRepo    repository.GastoFijoRepository
	comisiones   repository.ComisionRepository
	dispatcher   ReporteDispatcher
	emailDestino string
}

// NewResumenService wires the monthly rollup. comisiones and dispatcher may be
// nil: commissions then count as zero and EnviarResumen is unavailable.
func NewResumenService(
	conciliacion ConciliacionService,
	cajaRepo repository.CajaRepository,
	gastoRepo repository.GastoFijoRepository,
	comisiones repository.ComisionRepository,
	dispatcher ReporteDispatcher,
	emailDestino string,
) ResumenService {
	return &resumenService{
		conciliacion: conciliacion,
		cajaRepo:     cajaRepo,
		gastoRepo:    gastoRepo,
		comisiones:   comisiones,
		dispatcher:   dispatcher,
		emailDestino: emailDestino,
	}
}

// ── Resumen ───────────────────────────────────────────────────────────────────
// total gastos = egresos + comisiones + alquiler + servicios
// ganancia neta = total ingresos − total gastos
// Commissions come from their own subsystem and are never derived from egresos.

func (s *resumenService) Resumen(ctx context.Context, mes model.Mes) (*dto.ResumenMensualResponse, error) {
	desde, hasta := mes.Inicio(), mes.Fin()

	var (
		dias       []dto.ConciliacionResponse
		gastos     *dto.GastosFijosResponse
		comisiones = decimal.Zero
		retirado   = decimal.Zero
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dias, err = s.conciliacion.ConciliarPorDia(gctx, desde, hasta)
		return err
	})
	g.Go(func() error {
		var err error
		gastos, err = s.ObtenerGastosFijos(gctx, mes)
		return err
	})
	g.Go(func() error {
		if s.comisiones == nil {
			return nil
		}
		total, err := s.comisiones.Total(gctx, desde, hasta)
		if err != nil {
			return fmt.Errorf("comisiones %s: %w", mes, err)
		}
		comisiones = total
		return nil
	})
	g.Go(func() error {
		sesiones, err := s.cajaRepo.ListSesiones(gctx, desde, hasta)
		if err != nil {
			return fmt.Errorf("sesiones %s: %w", mes, err)
		}
		for _, ses := range sesiones {
			retirado = retirado.Add(ses.MontoCierre)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &dto.ResumenMensualResponse{
		Mes:               mes.String(),
		IngresosPorMetodo: []dto.MontoMetodo{},
		TotalIngresos:     decimal.Zero,
		Egresos:           decimal.Zero,
		Comisiones:        comisiones,
		Alquiler:          gastos.Alquiler,
		Servicios:         gastos.Servicios,
		TotalRetirado:     retirado,
		Dias:              make([]dto.ResumenDiario, 0, len(dias)),
	}

	idx := make(map[string]int)
	for _, dia := range dias {
		for _, fila := range dia.Metodos {
			pos, ok := idx[fila.MetodoPago]
			if !ok {
				pos = len(resp.IngresosPorMetodo)
				idx[fila.MetodoPago] = pos
				resp.IngresosPorMetodo = append(resp.IngresosPorMetodo, dto.MontoMetodo{MetodoPago: fila.MetodoPago, Monto: decimal.Zero})
			}
			resp.IngresosPorMetodo[pos].Monto = resp.IngresosPorMetodo[pos].Monto.Add(fila.Ingresos)
		}
		resp.TotalIngresos = resp.TotalIngresos.Add(dia.Total.Ingresos)
		resp.Egresos = resp.Egresos.Add(dia.Total.Egresos)
		resp.Dias = append(resp.Dias, dto.ResumenDiario{
			Fecha:    dia.Desde,
			Ingresos: dia.Total.Ingresos,
			Egresos:  dia.Total.Egresos,
			Neto:     dia.Total.Neto,
		})
	}

	resp.TotalGastos = resp.Egresos.Add(resp.Comisiones).Add(resp.Alquiler).Add(resp.Servicios)
	resp.GananciaNeta = resp.TotalIngresos.Sub(resp.TotalGastos)
	return resp, nil
}

// ── Gastos fijos ──────────────────────────────────────────────────────────────

func (s *resumenService) GuardarGastosFijos(ctx context.Context, mes model.Mes, req dto.GastosFijosRequest) (*dto.GastosFijosResponse, error) {
	if req.Alquiler.IsNegative() || req.Servicios.IsNegative() {
		return nil, ErrMontoInvalido
	}
	g := &model.GastoFijo{
		Mes:       mes.String(),
		Alquiler:  req.Alquiler,
		Servicios: req.Servicios,
		UpdatedAt: time.Now(),
	}
	if err := s.gastoRepo.Upsert(ctx, g); err != nil {
		return nil, err
	}
	log.Info().
		Str("mes", g.Mes).
		Str("alquiler", g.Alquiler.String()).
		Str("servicios", g.Servicios.String()).
		Msg("gastos fijos guardados")
	return &dto.GastosFijosResponse{Mes: g.Mes, Alquiler: g.Alquiler, Servicios: g.Servicios, Registrado: true}, nil
}

// ObtenerGastosFijos reports zeros for a month without a record.
func (s *resumenService) ObtenerGastosFijos(ctx context.Context, mes model.Mes) (*dto.GastosFijosResponse, error) {
	g, err := s.gastoRepo.FindByMes(ctx, mes.String())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &dto.GastosFijosResponse{Mes: mes.String(), Alquiler: decimal.Zero, Servicios: decimal.Zero}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("gastos fijos %s: %w", mes, err)
	}
	return &dto.GastosFijosResponse{Mes: g.Mes, Alquiler: g.Alquiler, Servicios: g.Servicios, Registrado: true}, nil
}

// ── EnviarResumen ─────────────────────────────────────────────────────────────

func (s *resumenService) EnviarResumen(ctx context.Context, mes model.Mes, email string) error {
	if s.dispatcher == nil {
		return errors.New("envío de reportes no configurado")
	}
	destino := strings.TrimSpace(email)
	if destino == "" {
		destino = s.emailDestino
	}
	if destino == "" {
		return fmt.Errorf("%w: sin destinatario para el reporte", ErrDatoInvalido)
	}
	return s.dispatcher.EnqueueReporteMensual(ctx, mes.String(), destino)
}
