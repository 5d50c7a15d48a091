package repository

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/invoice-dashboard/internal/errs"
	"github.com/deppfellow/invoice-dashboard/internal/model"
	"github.com/deppfellow/invoice-dashboard/internal/sqlerr"
)

type call struct {
	sql  string
	args []any
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case *int64:
			*p = r.values[i].(int64)
		case *model.InvoiceStatus:
			*p = model.InvoiceStatus(r.values[i].(string))
		}
	}
	return nil
}

type fakeDB struct {
	calls   []call
	row     fakeRow
	execErr error
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, call{sql: sql, args: args})
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.calls = append(f.calls, call{sql: sql, args: args})
	return nil, errors.New("not supported by fakeDB")
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.calls = append(f.calls, call{sql: sql, args: args})
	return f.row
}

func TestInvoiceRepository_Create(t *testing.T) {
	db := &fakeDB{row: fakeRow{values: []any{"inv-1"}}}
	repo := NewInvoiceRepository(db)

	id, err := repo.Create(context.Background(), model.NewInvoice{
		InvoiceFields: model.InvoiceFields{CustomerID: "c1", Amount: 1250, Status: model.InvoiceStatusPaid},
		Date:          "2024-06-01",
	})

	require.NoError(t, err)
	assert.Equal(t, "inv-1", id)
	require.Len(t, db.calls, 1)
	assert.Contains(t, db.calls[0].sql, "INSERT INTO invoices (customer_id, amount, status, date)")
	assert.Equal(t, []any{"c1", int64(1250), "paid", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}, db.calls[0].args)
}

func TestInvoiceRepository_CreateRejectsBadDate(t *testing.T) {
	db := &fakeDB{}
	repo := NewInvoiceRepository(db)

	_, err := repo.Create(context.Background(), model.NewInvoice{Date: "01/06/2024"})

	require.Error(t, err)
	assert.Empty(t, db.calls)
}

func TestInvoiceRepository_CreateKeepsPgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503", TableName: "invoices", ConstraintName: "invoices_customer_id_fkey"}
	repo := NewInvoiceRepository(&fakeDB{row: fakeRow{err: pgErr}})

	_, err := repo.Create(context.Background(), model.NewInvoice{Date: "2024-06-01"})

	var target *pgconn.PgError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "23503", target.Code)
}

func TestInvoiceRepository_UpdateTouchesBusinessFieldsOnly(t *testing.T) {
	db := &fakeDB{}
	repo := NewInvoiceRepository(db)

	err := repo.Update(context.Background(), "inv-7", model.InvoiceFields{
		CustomerID: "c2",
		Amount:     99,
		Status:     model.InvoiceStatusPending,
	})

	require.NoError(t, err)
	require.Len(t, db.calls, 1)
	assert.NotContains(t, db.calls[0].sql, "date")
	assert.Contains(t, db.calls[0].sql, "WHERE id = $4")
	assert.Equal(t, []any{"c2", int64(99), "pending", "inv-7"}, db.calls[0].args)
}

func TestInvoiceRepository_Delete(t *testing.T) {
	db := &fakeDB{}
	repo := NewInvoiceRepository(db)

	require.NoError(t, repo.Delete(context.Background(), "inv-9"))
	require.Len(t, db.calls, 1)
	assert.Equal(t, deleteInvoiceSQL, db.calls[0].sql)
	assert.Equal(t, []any{"inv-9"}, db.calls[0].args)
}

func TestInvoiceRepository_DeleteError(t *testing.T) {
	repo := NewInvoiceRepository(&fakeDB{execErr: errors.New("connection reset")})

	err := repo.Delete(context.Background(), "inv-9")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestInvoiceRepository_GetByID(t *testing.T) {
	db := &fakeDB{row: fakeRow{values: []any{"inv-1", "c1", int64(1250), "paid", "2024-06-01"}}}
	repo := NewInvoiceRepository(db)

	inv, err := repo.GetByID(context.Background(), "inv-1")

	require.NoError(t, err)
	assert.Equal(t, &model.Invoice{
		ID:         "inv-1",
		CustomerID: "c1",
		Amount:     1250,
		Status:     model.InvoiceStatusPaid,
		Date:       "2024-06-01",
	}, inv)
}

func TestInvoiceRepository_GetByIDNotFound(t *testing.T) {
	repo := NewInvoiceRepository(&fakeDB{row: fakeRow{err: pgx.ErrNoRows}})

	_, err := repo.GetByID(context.Background(), "inv-1")

	require.ErrorIs(t, err, pgx.ErrNoRows)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, sqlerr.HandleError(err), &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Invoice not found", httpErr.Message)
}

func TestInvoiceRepository_GetNotice(t *testing.T) {
	db := &fakeDB{row: fakeRow{values: []any{"inv-1", "Evil Rabbit", "evil@rabbit.com", int64(666), "pending", "2024-06-01"}}}
	repo := NewInvoiceRepository(db)

	n, err := repo.GetNotice(context.Background(), "inv-1")

	require.NoError(t, err)
	assert.Equal(t, "Evil Rabbit", n.CustomerName)
	assert.Equal(t, "evil@rabbit.com", n.CustomerEmail)
	assert.Equal(t, int64(666), n.Amount)
	assert.Equal(t, model.InvoiceStatusPending, n.Status)
}

func TestInvoiceRepository_ListQueryError(t *testing.T) {
	repo := NewInvoiceRepository(&fakeDB{})

	_, err := repo.List(context.Background())

	require.Error(t, err)
}
