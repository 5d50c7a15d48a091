package service

import (
	"context"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/deppfellow/invoice-dashboard/internal/lib/utils"
	"github.com/deppfellow/invoice-dashboard/internal/model"
	"github.com/deppfellow/invoice-dashboard/internal/validation"
)

const (
	createFailedMessage  = "Missing Fields. Failed to Create Invoice."
	updateFailedMessage  = "Missing Fields. Failed to Update Invoice."
	createDBErrorMessage = "Database Error: Failed to Create Invoice."
	updateDBErrorMessage = "Database Error: Failed to Update Invoice."
)

// InvoiceStore is the persistence the invoice actions need.
type InvoiceStore interface {
	Create(ctx context.Context, inv model.NewInvoice) (string, error)
	Update(ctx context.Context, id string, fields model.InvoiceFields) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Invoice, error)
	List(ctx context.Context) ([]model.InvoiceRow, error)
}

// CustomerStore lists the customers an invoice can be issued to.
type CustomerStore interface {
	List(ctx context.Context) ([]model.Customer, error)
}

// RouteCache holds cached route payloads keyed by path. Load returns the
// version a rebuilt payload must be stored at; a payload stored at a version
// that Revalidate has since moved past is never served.
type RouteCache interface {
	Load(ctx context.Context, path string, dst any) (int64, bool, error)
	Store(ctx context.Context, path string, version int64, value any) error
	Revalidate(ctx context.Context, path string) error
}

// InvoiceNotifier schedules the email sent for a new invoice.
type InvoiceNotifier interface {
	EnqueueInvoiceCreated(ctx context.Context, invoiceID string) error
}

// InvoiceService implements the invoice form actions and the reads backing
// the dashboard pages.
type InvoiceService struct {
	invoices  InvoiceStore
	customers CustomerStore
	cache     RouteCache
	notifier  InvoiceNotifier
	logger    *zerolog.Logger
	now       func() time.Time
}

func NewInvoiceService(
	invoices InvoiceStore,
	customers CustomerStore,
	cache RouteCache,
	notifier InvoiceNotifier,
	logger *zerolog.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoices:  invoices,
		customers: customers,
		cache:     cache,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateInvoice validates form and inserts a new invoice dated today (UTC).
//
// Validation failures and store failures come back as a failed State and
// leave the listing untouched. On success the listing is revalidated, the
// customer email is queued, and the result redirects to the listing.
func (s *InvoiceService) CreateInvoice(ctx context.Context, form model.InvoiceForm) model.ActionResult {
	defer newrelic.FromContext(ctx).StartSegment("invoice.create").End()

	input, fieldErrors := validation.ValidateInvoiceForm(form)
	if fieldErrors != nil {
		return model.Fail(fieldErrors, createFailedMessage)
	}

	fields, err := toFields(input)
	if err != nil {
		s.log(ctx).Error().Err(err).
			Str("customer_id", input.CustomerID).
			Str("amount", input.Amount.String()).
			Msg("failed to create invoice")
		return model.Fail(nil, createDBErrorMessage)
	}

	inv := model.NewInvoice{
		InvoiceFields: fields,
		Date:          utils.ISODateOf(s.now()),
	}

	id, err := s.invoices.Create(ctx, inv)
	if err != nil {
		s.log(ctx).Error().Err(err).
			Str("customer_id", inv.CustomerID).
			Int64("amount", inv.Amount).
			Msg("failed to create invoice")
		return model.Fail(nil, createDBErrorMessage)
	}

	s.log(ctx).Info().Str("invoice_id", id).Msg("invoice created")

	if err := s.notifier.EnqueueInvoiceCreated(ctx, id); err != nil {
		s.log(ctx).Warn().Err(err).Str("invoice_id", id).Msg("failed to enqueue invoice email")
	}

	s.revalidate(ctx, model.ListingPath)
	return model.RedirectTo(model.ListingPath)
}

// UpdateInvoice validates form and overwrites customer, amount and status of
// invoice id. The invoice date is never changed.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id string, form model.InvoiceForm) model.ActionResult {
	defer newrelic.FromContext(ctx).StartSegment("invoice.update").End()

	input, fieldErrors := validation.ValidateInvoiceForm(form)
	if fieldErrors != nil {
		return model.Fail(fieldErrors, updateFailedMessage)
	}

	fields, err := toFields(input)
	if err != nil {
		s.log(ctx).Error().Err(err).
			Str("invoice_id", id).
			Str("amount", input.Amount.String()).
			Msg("failed to update invoice")
		return model.Fail(nil, updateDBErrorMessage)
	}

	if err := s.invoices.Update(ctx, id, fields); err != nil {
		s.log(ctx).Error().Err(err).Str("invoice_id", id).Msg("failed to update invoice")
		return model.Fail(nil, updateDBErrorMessage)
	}

	s.log(ctx).Info().Str("invoice_id", id).Msg("invoice updated")

	s.revalidate(ctx, model.ListingPath)
	return model.RedirectTo(model.ListingPath)
}

// DeleteInvoice removes invoice id and revalidates the listing. It never
// redirects; store errors are returned to the caller unchanged.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id string) error {
	defer newrelic.FromContext(ctx).StartSegment("invoice.delete").End()

	if err := s.invoices.Delete(ctx, id); err != nil {
		return err
	}

	s.log(ctx).Info().Str("invoice_id", id).Msg("invoice deleted")

	s.revalidate(ctx, model.ListingPath)
	return nil
}

// ListInvoices returns the listing, served from the route cache when a
// fresh copy exists. A rebuilt listing is stored at the version read before
// querying, so a mutation that commits meanwhile still invalidates it.
func (s *InvoiceService) ListInvoices(ctx context.Context) ([]model.InvoiceRow, error) {
	var rows []model.InvoiceRow

	version, hit, cacheErr := s.cache.Load(ctx, model.ListingPath, &rows)
	if cacheErr != nil {
		s.log(ctx).Warn().Err(cacheErr).Str("path", model.ListingPath).Msg("route cache read failed")
	}
	if hit {
		return rows, nil
	}

	rows, err := s.invoices.List(ctx)
	if err != nil {
		return nil, err
	}

	if cacheErr != nil {
		return rows, nil
	}

	if err := s.cache.Store(ctx, model.ListingPath, version, rows); err != nil {
		s.log(ctx).Warn().Err(err).Str("path", model.ListingPath).Msg("route cache write failed")
	}
	return rows, nil
}

// GetInvoice returns invoice id shaped for the edit form.
func (s *InvoiceService) GetInvoice(ctx context.Context, id string) (*model.InvoiceEdit, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.InvoiceEdit{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     utils.FromCents(inv.Amount),
		Status:     inv.Status,
		Date:       inv.Date,
	}, nil
}

// ListCustomers returns the customers offered by the invoice forms.
func (s *InvoiceService) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	return s.customers.List(ctx)
}

// revalidate invalidates the cached payload of path. Failures are logged
// and swallowed; the entry still expires after its TTL.
func (s *InvoiceService) revalidate(ctx context.Context, path string) {
	if err := s.cache.Revalidate(ctx, path); err != nil {
		s.log(ctx).Error().Err(err).Str("path", path).Msg("failed to revalidate route")
	}
}

// log prefers the request logger carried by ctx over the service logger.
func (s *InvoiceService) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return s.logger
}

func toFields(input model.InvoiceInput) (model.InvoiceFields, error) {
	cents, err := utils.ToCents(input.Amount)
	if err != nil {
		return model.InvoiceFields{}, err
	}

	return model.InvoiceFields{
		CustomerID: input.CustomerID,
		Amount:     cents,
		Status:     input.Status,
	}, nil
}
