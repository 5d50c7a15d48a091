package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// TaskInvoiceCreated is the task type of the new invoice email.
const TaskInvoiceCreated = "email:invoice_created"

// InvoiceCreatedPayload is the JSON payload of TaskInvoiceCreated.
//
// Only the id travels through Redis; the handler reloads the invoice so the
// email reflects the row as it is when the task runs.
type InvoiceCreatedPayload struct {
	InvoiceID string `json:"invoice_id"`
}

// NewInvoiceCreatedTask builds the task announcing invoice invoiceID.
func NewInvoiceCreatedTask(invoiceID string) (*asynq.Task, error) {
	payload, err := json.Marshal(InvoiceCreatedPayload{InvoiceID: invoiceID})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskInvoiceCreated,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
