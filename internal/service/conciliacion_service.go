package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"salonpos/internal/dto"
	"salonpos/internal/model"
	"salonpos/internal/observability"
	"salonpos/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ConciliacionService groups ledger entries by payment method. Results are
// always recomputed from the stored rows; nothing is cached.
type ConciliacionService interface {
	Conciliar(ctx context.Context, desde, hasta time.Time) (*dto.ConciliacionResponse, error)
	ConciliarDia(ctx context.Context, fecha time.Time) (*dto.ConciliacionResponse, error)
	// ConciliarPorDia returns one reconciliation per calendar day in the range,
	// empty days included, from a single read of the ledger.
	ConciliarPorDia(ctx context.Context, desde, hasta time.Time) ([]dto.ConciliacionResponse, error)
}

type conciliacionService struct {
	ingresoRepo repository.IngresoRepository
	egresoRepo  repository.EgresoRepository
}

func NewConciliacionService(ingresoRepo repository.IngresoRepository, egresoRepo repository.EgresoRepository) ConciliacionService {
	return &conciliacionService{ingresoRepo: ingresoRepo, egresoRepo: egresoRepo}
}

func (s *conciliacionService) ConciliarDia(ctx context.Context, fecha time.Time) (*dto.ConciliacionResponse, error) {
	return s.Conciliar(ctx, fecha, fecha)
}

func (s *conciliacionService) Conciliar(ctx context.Context, desde, hasta time.Time) (*dto.ConciliacionResponse, error) {
	desde, hasta = model.Dia(desde), model.Dia(hasta)
	if hasta.Before(desde) {
		return nil, fmt.Errorf("%w: rango %s..%s", ErrDatoInvalido,
			desde.Format(model.LayoutFecha), hasta.Format(model.LayoutFecha))
	}

	asientos, err := s.asientos(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	resp := agrupar(asientos)
	resp.Desde = desde.Format(model.LayoutFecha)
	resp.Hasta = hasta.Format(model.LayoutFecha)
	return resp, nil
}

func (s *conciliacionService) ConciliarPorDia(ctx context.Context, desde, hasta time.Time) ([]dto.ConciliacionResponse, error) {
	desde, hasta = model.Dia(desde), model.Dia(hasta)
	if hasta.Before(desde) {
		return nil, fmt.Errorf("%w: rango %s..%s", ErrDatoInvalido,
			desde.Format(model.LayoutFecha), hasta.Format(model.LayoutFecha))
	}

	asientos, err := s.asientos(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	porDia := make(map[time.Time][]model.Asiento)
	for _, a := range asientos {
		d := model.Dia(a.AsientoFecha())
		porDia[d] = append(porDia[d], a)
	}

	var out []dto.ConciliacionResponse
	for d := desde; !d.After(hasta); d = d.AddDate(0, 0, 1) {
		resp := agrupar(porDia[d])
		resp.Desde = d.Format(model.LayoutFecha)
		resp.Hasta = resp.Desde
		out = append(out, *resp)
	}
	return out, nil
}

// asientos merges incomes and expenses into one stream ordered by date and
// insertion time. Ties keep incomes ahead of expenses.
func (s *conciliacionService) asientos(ctx context.Context, desde, hasta time.Time) ([]model.Asiento, error) {
	ingresos, err := s.ingresoRepo.ListByRango(ctx, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("listar ingresos: %w", err)
	}
	egresos, err := s.egresoRepo.ListByRango(ctx, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("listar egresos: %w", err)
	}

	stream := make([]model.Asiento, 0, len(ingresos)+len(egresos))
	for i := range ingresos {
		stream = append(stream, &ingresos[i])
	}
	for i := range egresos {
		stream = append(stream, &egresos[i])
	}
	sort.SliceStable(stream, func(i, j int) bool {
		fi, fj := model.Dia(stream[i].AsientoFecha()), model.Dia(stream[j].AsientoFecha())
		if !fi.Equal(fj) {
			return fi.Before(fj)
		}
		return stream[i].AsientoCreado().Before(stream[j].AsientoCreado())
	})
	return stream, nil
}

// agrupar sums a stream of entries per payment method. The trimmed label is
// the grouping key as typed, so "Cash" and "cash" are separate rows.
func agrupar(stream []model.Asiento) *dto.ConciliacionResponse {
	resp := &dto.ConciliacionResponse{
		Metodos: []dto.TotalesMetodo{},
		Total:   dto.TotalesMetodo{MetodoPago: "Total", Ingresos: decimal.Zero, Egresos: decimal.Zero, Neto: decimal.Zero},
	}
	idx := make(map[string]int)

	for _, a := range stream {
		metodo, ok := model.NormalizarMetodo(a.AsientoMetodoPago())
		if !ok {
			log.Warn().Str("asiento_id", a.AsientoID().String()).Msg("asiento sin método de pago: agrupado como sin especificar")
			observability.Normalizacion("metodo_pago")
		}
		pos, existe := idx[metodo]
		if !existe {
			pos = len(resp.Metodos)
			idx[metodo] = pos
			resp.Metodos = append(resp.Metodos, dto.TotalesMetodo{
				MetodoPago: metodo,
				Ingresos:   decimal.Zero,
				Egresos:    decimal.Zero,
				Neto:       decimal.Zero,
			})
		}

		monto := ResolverMonto(a)
		fila := &resp.Metodos[pos]
		if _, esEgreso := a.(*model.Egreso); esEgreso {
			fila.Egresos = fila.Egresos.Add(monto)
			resp.Total.Egresos = resp.Total.Egresos.Add(monto)
		} else {
			fila.Ingresos = fila.Ingresos.Add(monto)
			resp.Total.Ingresos = resp.Total.Ingresos.Add(monto)
		}
	}

	for i := range resp.Metodos {
		resp.Metodos[i].Neto = resp.Metodos[i].Ingresos.Sub(resp.Metodos[i].Egresos)
	}
	resp.Total.Neto = resp.Total.Ingresos.Sub(resp.Total.Egresos)
	return resp
}
