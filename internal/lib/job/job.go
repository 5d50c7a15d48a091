// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - You enqueue tasks (producer) using asynq.Client.
//   - A server runs workers that process those tasks (consumer) using asynq.Server.
package job

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/invoice-dashboard/internal/config"
)

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	logger *zerolog.Logger

	notices NoticeLookup
	mailer  InvoiceMailer
}

// NewJobService creates a JobService configured to use Redis from cfg.
// Workers are split across the critical, default and low queues 6:3:1.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		logger: logger,
	}
}

// Start registers the task handlers and starts the workers in the
// background.
func (j *JobService) Start() error {
	if j.notices == nil || j.mailer == nil {
		return errors.New("job handlers not initialized")
	}

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskInvoiceCreated, j.handleInvoiceCreatedTask)

	j.logger.Info().Msg("Starting background job server")

	return j.server.Start(mux)
}

// EnqueueInvoiceCreated schedules the email announcing invoiceID.
func (j *JobService) EnqueueInvoiceCreated(ctx context.Context, invoiceID string) error {
	task, err := NewInvoiceCreatedTask(invoiceID)
	if err != nil {
		return errors.Wrap(err, "build invoice created task")
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return errors.Wrapf(err, "enqueue invoice created task for %s", invoiceID)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("invoice_id", invoiceID).
		Msg("Enqueued invoice created task")

	return nil
}

// Stop gracefully stops the workers and closes the enqueue client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}
