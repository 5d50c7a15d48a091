package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/deppfellow/invoice-dashboard/internal/lib/utils"
	"github.com/deppfellow/invoice-dashboard/internal/model"
	"github.com/deppfellow/invoice-dashboard/internal/sqlerr"
)

const (
	insertInvoiceSQL = `
INSERT INTO invoices (customer_id, amount, status, date)
VALUES ($1, $2, $3, $4)
RETURNING id::text`

	updateInvoiceSQL = `
UPDATE invoices
SET customer_id = $1, amount = $2, status = $3
WHERE id = $4`

	deleteInvoiceSQL = `DELETE FROM invoices WHERE id = $1`

	selectInvoiceSQL = `
SELECT id::text, customer_id::text, amount, status, to_char(date, 'YYYY-MM-DD')
FROM invoices
WHERE id = $1`

	listInvoicesSQL = `
SELECT
	i.id::text AS id,
	i.customer_id::text AS customer_id,
	c.name,
	c.email,
	c.image_url,
	i.amount,
	i.status,
	to_char(i.date, 'YYYY-MM-DD') AS date
FROM invoices i
JOIN customers c ON c.id = i.customer_id
ORDER BY i.date DESC, i.id`

	selectInvoiceNoticeSQL = `
SELECT i.id::text, c.name, c.email, i.amount, i.status, to_char(i.date, 'YYYY-MM-DD')
FROM invoices i
JOIN customers c ON c.id = i.customer_id
WHERE i.id = $1`
)

// InvoiceRepository persists invoices in PostgreSQL.
type InvoiceRepository struct {
	db DBTX
}

func NewInvoiceRepository(db DBTX) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create inserts an invoice and returns its generated id.
func (r *InvoiceRepository) Create(ctx context.Context, inv model.NewInvoice) (string, error) {
	date, err := time.Parse(utils.ISODate, inv.Date)
	if err != nil {
		return "", errors.Wrapf(err, "invalid invoice date %q", inv.Date)
	}

	var id string
	err = r.db.QueryRow(ctx, insertInvoiceSQL,
		inv.CustomerID,
		inv.Amount,
		string(inv.Status),
		date,
	).Scan(&id)
	if err != nil {
		return "", errors.Wrap(err, "insert invoice")
	}

	return id, nil
}

// Update overwrites customer, amount and status of invoice id. The date is
// left untouched and an unknown id is not an error.
func (r *InvoiceRepository) Update(ctx context.Context, id string, fields model.InvoiceFields) error {
	_, err := r.db.Exec(ctx, updateInvoiceSQL,
		fields.CustomerID,
		fields.Amount,
		string(fields.Status),
		id,
	)
	if err != nil {
		return errors.Wrapf(err, "update invoice %s", id)
	}
	return nil
}

// Delete removes invoice id. Deleting an id that does not exist succeeds.
func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, deleteInvoiceSQL, id); err != nil {
		return errors.Wrapf(err, "delete invoice %s", id)
	}
	return nil
}

// GetByID returns invoice id. A missing invoice is reported as a wrapped
// pgx.ErrNoRows that sqlerr.HandleError turns into a 404.
func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.db.QueryRow(ctx, selectInvoiceSQL, id).Scan(
		&inv.ID,
		&inv.CustomerID,
		&inv.Amount,
		&inv.Status,
		&inv.Date,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%sinvoices:%w", sqlerr.TablePrefix, err)
		}
		return nil, errors.Wrapf(err, "get invoice %s", id)
	}
	return &inv, nil
}

// List returns every invoice joined with its customer, newest first.
func (r *InvoiceRepository) List(ctx context.Context) ([]model.InvoiceRow, error) {
	rows, err := r.db.Query(ctx, listInvoicesSQL)
	if err != nil {
		return nil, errors.Wrap(err, "list invoices")
	}

	invoices, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.InvoiceRow])
	if err != nil {
		return nil, errors.Wrap(err, "collect invoices")
	}

	for i := range invoices {
		invoices[i].AmountFormatted = utils.FormatCurrency(invoices[i].Amount)
	}
	return invoices, nil
}

// GetNotice loads what the invoice email needs for invoice id.
func (r *InvoiceRepository) GetNotice(ctx context.Context, id string) (*model.InvoiceNotice, error) {
	var n model.InvoiceNotice
	err := r.db.QueryRow(ctx, selectInvoiceNoticeSQL, id).Scan(
		&n.InvoiceID,
		&n.CustomerName,
		&n.CustomerEmail,
		&n.Amount,
		&n.Status,
		&n.Date,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%sinvoices:%w", sqlerr.TablePrefix, err)
		}
		return nil, errors.Wrapf(err, "get invoice notice %s", id)
	}
	return &n, nil
}
