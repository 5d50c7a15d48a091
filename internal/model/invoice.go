// Package model holds the domain types shared by the repository, service and
// handler layers.
package model

import (
	"slices"

	"github.com/shopspring/decimal"
)

// ListingPath is the invoices listing route. Every successful mutation
// revalidates it and create/update redirect to it.
const ListingPath = "/dashboard/invoices"

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Valid reports whether s is one of the allowed statuses.
func (s InvoiceStatus) Valid() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusPaid
}

// Invoice is a row of the invoices table. Amount is in cents and Date is
// an ISO calendar date (YYYY-MM-DD).
type Invoice struct {
	ID         string        `json:"id" db:"id"`
	CustomerID string        `json:"customerId" db:"customer_id"`
	Amount     int64         `json:"amount" db:"amount"`
	Status     InvoiceStatus `json:"status" db:"status"`
	Date       string        `json:"date" db:"date"`
}

// InvoiceForm is the raw form submission of the create and edit screens.
// Every value is kept as submitted; validation coerces them. Missing lists
// the keys of fields absent from the submission, which is not the same as
// a field submitted empty.
type InvoiceForm struct {
	CustomerID string   `json:"customerId" form:"customerId"`
	Amount     string   `json:"amount" form:"amount"`
	Status     string   `json:"status" form:"status"`
	Missing    []string `json:"-" form:"-"`
}

// IsMissing reports whether field was absent from the submission.
func (f InvoiceForm) IsMissing(field string) bool {
	return slices.Contains(f.Missing, field)
}

// InvoiceInput is an InvoiceForm that passed validation.
// Amount is in major currency units (dollars).
type InvoiceInput struct {
	CustomerID string
	Amount     decimal.Decimal
	Status     InvoiceStatus
}

// InvoiceFields are the business fields written by create and update.
type InvoiceFields struct {
	CustomerID string
	Amount     int64
	Status     InvoiceStatus
}

// NewInvoice is the payload of an insert; Date is stamped by the service.
type NewInvoice struct {
	InvoiceFields
	Date string
}

// InvoiceRow is one line of the invoices listing.
type InvoiceRow struct {
	ID              string        `json:"id" db:"id"`
	CustomerID      string        `json:"customerId" db:"customer_id"`
	Name            string        `json:"name" db:"name"`
	Email           string        `json:"email" db:"email"`
	ImageURL        string        `json:"imageUrl" db:"image_url"`
	Amount          int64         `json:"amount" db:"amount"`
	AmountFormatted string        `json:"amountFormatted" db:"-"`
	Status          InvoiceStatus `json:"status" db:"status"`
	Date            string        `json:"date" db:"date"`
}

// InvoiceEdit is the edit-form view of an invoice, with Amount in dollars.
type InvoiceEdit struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customerId"`
	Amount     decimal.Decimal `json:"amount"`
	Status     InvoiceStatus   `json:"status"`
	Date       string          `json:"date"`
}

// InvoiceNotice carries what an invoice email needs.
type InvoiceNotice struct {
	InvoiceID     string        `db:"id"`
	CustomerName  string        `db:"name"`
	CustomerEmail string        `db:"email"`
	Amount        int64         `db:"amount"`
	Status        InvoiceStatus `db:"status"`
	Date          string        `db:"date"`
}

// Customer is a row of the customers table as used by the invoice form.
type Customer struct {
	ID    string `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
}
