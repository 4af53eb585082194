package worker

// email_worker.go
// Sends queued emails through the SMTP mailer, behind a circuit breaker.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"salonpos/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path"`
}

// Sender is satisfied by *infra.Mailer.
type Sender interface {
	Send(to, subject, body, adjunto string) error
}

type EmailWorker struct {
	sender Sender
	cb     *infra.CircuitBreaker
}

func NewEmailWorker(sender Sender, cb *infra.CircuitBreaker) *EmailWorker {
	return &EmailWorker{sender: sender, cb: cb}
}

func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("email_worker: invalid payload: %w", err)
	}
	if payload.ToEmail == "" {
		// Nothing to retry.
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return nil
	}

	err := w.cb.Execute(func() error {
		return w.sender.Send(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath)
	})
	if errors.Is(err, infra.ErrCircuitOpen) {
		return fmt.Errorf("email_worker: smtp breaker open: %w", err)
	}
	if err != nil {
		return fmt.Errorf("email_worker: send to %s: %w", payload.ToEmail, err)
	}
	log.Info().Str("to", payload.ToEmail).Str("subject", payload.Subject).Msg("email_worker: email sent")
	return nil
}
