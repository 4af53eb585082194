package service_test

import (
	"context"
	"sync"
	"time"

	"salonpos/internal/model"
	"salonpos/internal/repository"
	"salonpos/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── In-memory repositories ───────────────────────────────────────────────────
// Guarded by a mutex: the monthly rollup reads them from several goroutines.

type memCajaRepo struct {
	mu       sync.Mutex
	sesiones map[time.Time]model.SesionCaja
}

func newMemCajaRepo() *memCajaRepo {
	return &memCajaRepo{sesiones: make(map[time.Time]model.SesionCaja)}
}

func (r *memCajaRepo) InsertSesion(_ context.Context, s *model.SesionCaja) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := model.Dia(s.Fecha)
	if _, ok := r.sesiones[k]; ok {
		return false, nil
	}
	r.sesiones[k] = *s
	return true, nil
}

func (r *memCajaRepo) FindSesion(_ context.Context, fecha time.Time) (*model.SesionCaja, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sesiones[model.Dia(fecha)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (r *memCajaRepo) CerrarSesion(_ context.Context, fecha time.Time, monto decimal.Decimal, closedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := model.Dia(fecha)
	s, ok := r.sesiones[k]
	if !ok || s.Estado != model.EstadoAbierta {
		return false, nil
	}
	s.MontoCierre = monto
	s.Estado = model.EstadoCerrada
	s.ClosedAt = &closedAt
	r.sesiones[k] = s
	return true, nil
}

func (r *memCajaRepo) ListSesiones(_ context.Context, desde, hasta time.Time) ([]model.SesionCaja, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.SesionCaja
	for d := desde; !d.After(hasta); d = d.AddDate(0, 0, 1) {
		if s, ok := r.sesiones[d]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memCajaRepo) DeleteSesion(_ context.Context, fecha time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := model.Dia(fecha)
	if _, ok := r.sesiones[k]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.sesiones, k)
	return nil
}

// exigirAbiertas mirrors the FOR SHARE check the guarded writes run in Postgres.
func (r *memCajaRepo) exigirAbiertas(fechas ...time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range fechas {
		if s, ok := r.sesiones[model.Dia(f)]; !ok || !s.Abierta() {
			return repository.ErrCajaNoAbierta
		}
	}
	return nil
}

var _ repository.CajaRepository = (*memCajaRepo)(nil)

type memIngresoRepo struct {
	mu       sync.Mutex
	ingresos []model.Ingreso
	reloj    time.Time
	cajas    *memCajaRepo
}

func newMemIngresoRepo(cajas *memCajaRepo) *memIngresoRepo {
	return &memIngresoRepo{reloj: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC), cajas: cajas}
}

func (r *memIngresoRepo) Create(_ context.Context, i *model.Ingreso) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	r.reloj = r.reloj.Add(time.Second)
	i.CreatedAt = r.reloj
	r.ingresos = append(r.ingresos, *i)
	return nil
}

func (r *memIngresoRepo) CreateEnCajaAbierta(ctx context.Context, i *model.Ingreso) error {
	if err := r.cajas.exigirAbiertas(i.Fecha); err != nil {
		return err
	}
	return r.Create(ctx, i)
}

func (r *memIngresoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Ingreso, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.ingresos {
		if i.ID == id {
			return &i, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memIngresoRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for idx, i := range r.ingresos {
		if i.ID == id {
			if err := r.cajas.exigirAbiertas(i.Fecha); err != nil {
				return err
			}
			r.ingresos = append(r.ingresos[:idx], r.ingresos[idx+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memIngresoRepo) ListByRango(_ context.Context, desde, hasta time.Time) ([]model.Ingreso, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Ingreso
	for _, i := range r.ingresos {
		d := model.Dia(i.Fecha)
		if !d.Before(desde) && !d.After(hasta) {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *memIngresoRepo) CountByFecha(ctx context.Context, fecha time.Time) (int64, error) {
	l, _ := r.ListByRango(ctx, fecha, fecha)
	return int64(len(l)), nil
}

var _ repository.IngresoRepository = (*memIngresoRepo)(nil)

type memEgresoRepo struct {
	mu      sync.Mutex
	egresos []model.Egreso
	reloj   time.Time
	cajas   *memCajaRepo
}

func newMemEgresoRepo(cajas *memCajaRepo) *memEgresoRepo {
	// Expenses are stamped after incomes of the same day.
	return &memEgresoRepo{reloj: time.Date(2025, 1, 1, 18, 0, 0, 0, time.UTC), cajas: cajas}
}

func (r *memEgresoRepo) Create(_ context.Context, e *model.Egreso) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.reloj = r.reloj.Add(time.Second)
	e.CreatedAt = r.reloj
	r.egresos = append(r.egresos, *e)
	return nil
}

func (r *memEgresoRepo) CreateEnCajaAbierta(ctx context.Context, e *model.Egreso) error {
	if err := r.cajas.exigirAbiertas(e.Fecha); err != nil {
		return err
	}
	return r.Create(ctx, e)
}

func (r *memEgresoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Egreso, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.egresos {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memEgresoRepo) Update(_ context.Context, e *model.Egreso) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for idx := range r.egresos {
		if r.egresos[idx].ID == e.ID {
			if err := r.cajas.exigirAbiertas(r.egresos[idx].Fecha, e.Fecha); err != nil {
				return err
			}
			r.egresos[idx] = *e
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memEgresoRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for idx, e := range r.egresos {
		if e.ID == id {
			if err := r.cajas.exigirAbiertas(e.Fecha); err != nil {
				return err
			}
			r.egresos = append(r.egresos[:idx], r.egresos[idx+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memEgresoRepo) ListByRango(_ context.Context, desde, hasta time.Time) ([]model.Egreso, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Egreso
	for _, e := range r.egresos {
		d := model.Dia(e.Fecha)
		if !d.Before(desde) && !d.After(hasta) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memEgresoRepo) CountByFecha(ctx context.Context, fecha time.Time) (int64, error) {
	l, _ := r.ListByRango(ctx, fecha, fecha)
	return int64(len(l)), nil
}

var _ repository.EgresoRepository = (*memEgresoRepo)(nil)

type memGastoFijoRepo struct {
	mu     sync.Mutex
	gastos map[string]model.GastoFijo
}

func newMemGastoFijoRepo() *memGastoFijoRepo {
	return &memGastoFijoRepo{gastos: make(map[string]model.GastoFijo)}
}

func (r *memGastoFijoRepo) Upsert(_ context.Context, g *model.GastoFijo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gastos[g.Mes] = *g
	return nil
}

func (r *memGastoFijoRepo) FindByMes(_ context.Context, mes string) (*model.GastoFijo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.gastos[mes]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &g, nil
}

var _ repository.GastoFijoRepository = (*memGastoFijoRepo)(nil)

// stubComisiones returns a fixed total, or err when set.
type stubComisiones struct {
	total decimal.Decimal
	err   error
}

func (s stubComisiones) Total(context.Context, time.Time, time.Time) (decimal.Decimal, error) {
	return s.total, s.err
}

type stubDispatcher struct {
	mes, email string
	calls      int
}

func (d *stubDispatcher) EnqueueReporteMensual(_ context.Context, mes, email string) error {
	d.mes, d.email = mes, email
	d.calls++
	return nil
}

// ── Fixture ───────────────────────────────────────────────────────────────────

type fixture struct {
	cajaRepo    *memCajaRepo
	ingresoRepo *memIngresoRepo
	egresoRepo  *memEgresoRepo
	gastoRepo   *memGastoFijoRepo
}

func newFixture() *fixture {
	cajas := newMemCajaRepo()
	return &fixture{
		cajaRepo:    cajas,
		ingresoRepo: newMemIngresoRepo(cajas),
		egresoRepo:  newMemEgresoRepo(cajas),
		gastoRepo:   newMemGastoFijoRepo(),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fecha(s string) time.Time {
	t, err := model.ParseFecha(s)
	if err != nil {
		panic(err)
	}
	return t
}

func intPtr(n int) *int { return &n }

func (f *fixture) caja() service.CajaService {
	return service.NewCajaService(f.cajaRepo, f.ingresoRepo, f.egresoRepo)
}

func (f *fixture) libro() service.LibroService {
	return service.NewLibroService(f.ingresoRepo, f.egresoRepo, f.caja())
}

func (f *fixture) conciliacion() service.ConciliacionService {
	return service.NewConciliacionService(f.ingresoRepo, f.egresoRepo)
}
