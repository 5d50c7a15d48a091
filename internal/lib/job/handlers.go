package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/invoice-dashboard/internal/config"
	"github.com/deppfellow/invoice-dashboard/internal/lib/email"
	"github.com/deppfellow/invoice-dashboard/internal/model"
)

// NoticeLookup loads the data of an invoice email.
type NoticeLookup interface {
	GetNotice(ctx context.Context, invoiceID string) (*model.InvoiceNotice, error)
}

// InvoiceMailer delivers invoice emails.
type InvoiceMailer interface {
	SendInvoiceCreatedEmail(ctx context.Context, n model.InvoiceNotice) error
}

// InitHandlers wires the dependencies of the task handlers. It must run
// before Start.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger, notices NoticeLookup) {
	j.notices = notices
	j.mailer = email.NewClient(cfg, logger)
}

func (j *JobService) handleInvoiceCreatedTask(ctx context.Context, t *asynq.Task) error {
	var p InvoiceCreatedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal invoice created payload: %v: %w", err, asynq.SkipRetry)
	}

	j.logger.Info().
		Str("type", TaskInvoiceCreated).
		Str("invoice_id", p.InvoiceID).
		Msg("Processing invoice created task")

	notice, err := j.notices.GetNotice(ctx, p.InvoiceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			j.logger.Warn().
				Str("invoice_id", p.InvoiceID).
				Msg("Invoice no longer exists, dropping email")
			return fmt.Errorf("invoice %s not found: %w", p.InvoiceID, asynq.SkipRetry)
		}
		return err
	}

	if err := j.mailer.SendInvoiceCreatedEmail(ctx, *notice); err != nil {
		j.logger.Error().
			Str("type", TaskInvoiceCreated).
			Str("invoice_id", p.InvoiceID).
			Err(err).
			Msg("Failed to send invoice email")
		return err
	}

	j.logger.Info().
		Str("type", TaskInvoiceCreated).
		Str("invoice_id", p.InvoiceID).
		Msg("Successfully sent invoice email")

	return nil
}
