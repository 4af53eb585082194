package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"salonpos/internal/observability"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueReportes = "jobs:reportes"
	QueueEmail    = "jobs:email"

	JobReporteMensual = "reporte_mensual"
	JobEmail          = "email"

	maxAttempts = 3
)

// retryBase is the first backoff step; later steps double it.
var retryBase = time.Second

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Handler processes one job payload. A returned error triggers a retry.
type Handler interface {
	Process(ctx context.Context, raw json.RawMessage) error
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueReporteMensual queues the monthly report for mes ("2006-01").
func (d *Dispatcher) EnqueueReporteMensual(ctx context.Context, mes, email string) error {
	return d.enqueue(ctx, QueueReportes, JobReporteMensual, ReporteJobPayload{Mes: mes, Email: email})
}

// EnqueueEmail pushes an email job to Redis.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload EmailJobPayload) error {
	return d.enqueue(ctx, QueueEmail, JobEmail, payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{Type: jobType, Payload: data})
	if err != nil {
		return err
	}
	if err := d.rdb.LPush(ctx, queue, encoded).Err(); err != nil {
		return fmt.Errorf("enqueue %s: %w", jobType, err)
	}
	observability.Job(jobType, "encolado")
	return nil
}

// WorkerHandlers maps job types to their processors.
type WorkerHandlers struct {
	Reporte Handler
	Email   Handler
}

func (h *WorkerHandlers) forType(jobType string) Handler {
	switch jobType {
	case JobReporteMensual:
		return h.Reporte
	case JobEmail:
		return h.Email
	}
	return nil
}

// StartWorkerPool launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP, so idle workers cost nothing.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, id int) {
	queues := []string{QueueReportes, QueueEmail}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop: waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
					log.Warn().Err(err).Int("worker", id).Msg("worker: BRPOP failed")
					time.Sleep(time.Second)
				}
				continue
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

// processJob runs the handler for one raw job with retries; a job that still
// fails is parked in the dead letter queue of its source queue.
func processJob(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		SendToDLQ(ctx, rdb, queue, "desconocido", json.RawMessage(fmt.Sprintf("%q", raw)), "payload ilegible: "+err.Error(), 0)
		return
	}

	h := handlers.forType(job.Type)
	if h == nil {
		log.Error().Str("type", job.Type).Str("queue", queue).Msg("no handler for job type")
		SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, "sin handler", 0)
		return
	}

	attempts := 0
	err := withRetry(ctx, maxAttempts, func(attempt int) error {
		attempts = attempt + 1
		err := h.Process(ctx, job.Payload)
		if err != nil {
			log.Warn().Err(err).Str("type", job.Type).Int("attempt", attempts).Msg("job attempt failed")
		}
		return err
	})
	if err != nil {
		observability.Job(job.Type, "error")
		SendToDLQ(ctx, rdb, queue, job.Type, job.Payload,
			fmt.Sprintf("max retries (%d) exceeded: %v", maxAttempts, err), attempts)
		return
	}
	observability.Job(job.Type, "ok")
	log.Info().Str("type", job.Type).Str("queue", queue).Int("attempts", attempts).Msg("job processed")
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = retryBase, 3 = 2×retryBase.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := retryBase * time.Duration(1<<uint(i-1))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
