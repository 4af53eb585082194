package worker

// resumen_cron.go
// On the first day of each month, queues the previous month's report once.
// Several server replicas may run the cron; a Redis SETNX key elects one.

import (
	"context"
	"time"

	"salonpos/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	cronTickInterval = time.Hour
	cronLockTTL      = 40 * 24 * time.Hour
	cronLockPrefix   = "cron:resumen:"
)

type reporteEnqueuer interface {
	EnqueueReporteMensual(ctx context.Context, mes, email string) error
}

type ResumenCronConfig struct {
	RDB        *redis.Client
	Dispatcher reporteEnqueuer
	Destino    string
	Now        func() time.Time
}

// StartResumenCron launches the hourly ticker. It respects ctx for shutdown.
func StartResumenCron(ctx context.Context, cfg ResumenCronConfig) {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	go func() {
		ticker := time.NewTicker(cronTickInterval)
		defer ticker.Stop()

		log.Info().Msg("resumen_cron: started")
		tickResumen(ctx, cfg)
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("resumen_cron: shutting down")
				return
			case <-ticker.C:
				tickResumen(ctx, cfg)
			}
		}
	}()
}

// tickResumen reports whether this call enqueued the report.
func tickResumen(ctx context.Context, cfg ResumenCronConfig) bool {
	now := cfg.Now()
	if now.Day() != 1 {
		return false
	}
	if cfg.Destino == "" {
		log.Warn().Msg("resumen_cron: REPORTE_EMAIL_DESTINO vacío, no se envía")
		return false
	}
	mes := model.MesDe(now).Anterior()

	ok, err := cfg.RDB.SetNX(ctx, cronLockPrefix+mes.String(), now.UTC().Format(time.RFC3339), cronLockTTL).Result()
	if err != nil {
		log.Error().Err(err).Msg("resumen_cron: lock failed")
		return false
	}
	if !ok {
		return false
	}

	if err := cfg.Dispatcher.EnqueueReporteMensual(ctx, mes.String(), cfg.Destino); err != nil {
		// Release the lock so the next tick can try again.
		_ = cfg.RDB.Del(ctx, cronLockPrefix+mes.String()).Err()
		log.Error().Err(err).Str("mes", mes.String()).Msg("resumen_cron: enqueue failed")
		return false
	}
	log.Info().Str("mes", mes.String()).Msg("resumen_cron: monthly report enqueued")
	return true
}
