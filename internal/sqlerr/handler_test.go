package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/invoice-dashboard/internal/errs"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleError_ForeignKeyViolation(t *testing.T) {
	err := HandleError(fmt.Errorf("insert invoice: %w", &pgconn.PgError{
		Code:           "23503",
		Severity:       "ERROR",
		TableName:      "invoices",
		ColumnName:     "customer_id",
		ConstraintName: "invoices_customer_id_fkey",
	}))

	httpErr := asHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "INVOICE_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "The referenced Customer does not exist", httpErr.Message)
}

func TestHandleError_CheckViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:           "23514",
		TableName:      "invoices",
		ConstraintName: "invoices_amount_check",
	})

	httpErr := asHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "INVOICE_INVALID", httpErr.Code)
	assert.Equal(t, "The Amount value does not meet required conditions", httpErr.Message)
}

func TestHandleError_UniqueViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:           "23505",
		TableName:      "customers",
		ConstraintName: "customers_email_key",
	})

	httpErr := asHTTPError(t, err)
	assert.Equal(t, "CUSTOMER_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A Customer with this Email already exists", httpErr.Message)
	assert.True(t, httpErr.Override)
}

func TestHandleError_NotNullViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:       "23502",
		TableName:  "invoices",
		ColumnName: "status",
	})

	httpErr := asHTTPError(t, err)
	assert.Equal(t, "The Status is required", httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "status", httpErr.Errors[0].Field)
}

func TestHandleError_UnknownPgErrorIsInternal(t *testing.T) {
	err := HandleError(&pgconn.PgError{Code: "53300", Message: "too many connections"})

	httpErr := asHTTPError(t, err)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.NotContains(t, httpErr.Message, "connections")
}

func TestHandleError_NoRowsWithTable(t *testing.T) {
	err := HandleError(fmt.Errorf("%sinvoices:%w", TablePrefix, pgx.ErrNoRows))

	httpErr := asHTTPError(t, err)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Invoice not found", httpErr.Message)
}

func TestHandleError_NoRowsWithoutTable(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(pgx.ErrNoRows))
	assert.Equal(t, "Resource not found", httpErr.Message)
}

func TestHandleError_PassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewForbiddenError("nope", false)
	assert.Same(t, original, HandleError(original))
}

func TestHandleError_UnknownError(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestErrCode(t *testing.T) {
	converted := ConvertPgError(&pgconn.PgError{Code: "23505", Severity: "ERROR"})
	assert.Equal(t, UniqueViolation, ErrCode(fmt.Errorf("wrap: %w", converted)))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
	assert.Equal(t, SeverityError, converted.Severity)
}

func TestMapSeverity_Unknown(t *testing.T) {
	assert.Equal(t, SeverityError, MapSeverity("WEIRD"))
	assert.Equal(t, SeverityWarning, MapSeverity("WARNING"))
}
