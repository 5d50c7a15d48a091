package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/invoice-dashboard/internal/model"
	"github.com/deppfellow/invoice-dashboard/internal/server"
	"github.com/deppfellow/invoice-dashboard/internal/validation"
)

// InvoiceActions is the invoice service as seen by the HTTP layer.
type InvoiceActions interface {
	CreateInvoice(ctx context.Context, form model.InvoiceForm) model.ActionResult
	UpdateInvoice(ctx context.Context, id string, form model.InvoiceForm) model.ActionResult
	DeleteInvoice(ctx context.Context, id string) error
	ListInvoices(ctx context.Context) ([]model.InvoiceRow, error)
	GetInvoice(ctx context.Context, id string) (*model.InvoiceEdit, error)
	ListCustomers(ctx context.Context) ([]model.Customer, error)
}

// FormValue is a submitted form value and whether it was submitted at all.
// In JSON bodies it accepts strings, numbers and null, so {"amount": 12.5}
// and {"amount": "12.5"} bind alike; null counts as not submitted.
type FormValue struct {
	Value   string
	Present bool
}

// UnmarshalParam binds a form or query value.
func (v *FormValue) UnmarshalParam(param string) error {
	*v = FormValue{Value: param, Present: true}
	return nil
}

func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = FormValue{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue{Value: s, Present: true}
		return nil
	}
	*v = FormValue{Value: string(data), Present: true}
	return nil
}

// InvoiceFormFields are the fields of the create and edit forms. They are
// validated by the invoice service, which reports failures as form State.
type InvoiceFormFields struct {
	CustomerID FormValue `json:"customerId" form:"customerId"`
	Amount     FormValue `json:"amount" form:"amount"`
	Status     FormValue `json:"status" form:"status"`
}

func (f InvoiceFormFields) form() model.InvoiceForm {
	form := model.InvoiceForm{
		CustomerID: f.CustomerID.Value,
		Amount:     f.Amount.Value,
		Status:     f.Status.Value,
	}

	for field, v := range map[string]FormValue{
		model.FieldCustomerID: f.CustomerID,
		model.FieldAmount:     f.Amount,
		model.FieldStatus:     f.Status,
	} {
		if !v.Present {
			form.Missing = append(form.Missing, field)
		}
	}
	slices.Sort(form.Missing)

	return form
}

type CreateInvoiceRequest struct {
	InvoiceFormFields
}

func (r *CreateInvoiceRequest) Validate() error {
	return nil
}

type UpdateInvoiceRequest struct {
	ID string `param:"id" validate:"required,uuid"`
	InvoiceFormFields
}

func (r *UpdateInvoiceRequest) Validate() error {
	return validation.Struct(r)
}

// InvoiceIDRequest addresses a single invoice by path id.
type InvoiceIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *InvoiceIDRequest) Validate() error {
	return validation.Struct(r)
}

// EmptyRequest is used by endpoints without input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}

type InvoiceListResponse struct {
	Invoices []model.InvoiceRow `json:"invoices"`
}

type InvoiceEditResponse struct {
	Invoice   *model.InvoiceEdit `json:"invoice"`
	Customers []model.Customer   `json:"customers"`
}

type CustomerListResponse struct {
	Customers []model.Customer `json:"customers"`
}

// InvoiceHandler serves the invoice dashboard endpoints.
type InvoiceHandler struct {
	Handler
	invoices InvoiceActions
}

func NewInvoiceHandler(s *server.Server, invoices InvoiceActions) *InvoiceHandler {
	return &InvoiceHandler{
		Handler:  NewHandler(s),
		invoices: invoices,
	}
}

func (h *InvoiceHandler) CreateInvoice(c echo.Context, req *CreateInvoiceRequest) (model.ActionResult, error) {
	return h.invoices.CreateInvoice(c.Request().Context(), req.form()), nil
}

func (h *InvoiceHandler) UpdateInvoice(c echo.Context, req *UpdateInvoiceRequest) (model.ActionResult, error) {
	return h.invoices.UpdateInvoice(c.Request().Context(), req.ID, req.form()), nil
}

func (h *InvoiceHandler) DeleteInvoice(c echo.Context, req *InvoiceIDRequest) error {
	return h.invoices.DeleteInvoice(c.Request().Context(), req.ID)
}

func (h *InvoiceHandler) ListInvoices(c echo.Context, _ *EmptyRequest) (*InvoiceListResponse, error) {
	invoices, err := h.invoices.ListInvoices(c.Request().Context())
	if err != nil {
		return nil, err
	}
	if invoices == nil {
		invoices = []model.InvoiceRow{}
	}
	return &InvoiceListResponse{Invoices: invoices}, nil
}

// GetInvoice returns what the edit form needs: the invoice and the
// customers it can be reassigned to.
func (h *InvoiceHandler) GetInvoice(c echo.Context, req *InvoiceIDRequest) (*InvoiceEditResponse, error) {
	ctx := c.Request().Context()

	invoice, err := h.invoices.GetInvoice(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	customers, err := h.invoices.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}

	return &InvoiceEditResponse{Invoice: invoice, Customers: nonNil(customers)}, nil
}

func (h *InvoiceHandler) ListCustomers(c echo.Context, _ *EmptyRequest) (*CustomerListResponse, error) {
	customers, err := h.invoices.ListCustomers(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return &CustomerListResponse{Customers: nonNil(customers)}, nil
}

func nonNil(customers []model.Customer) []model.Customer {
	if customers == nil {
		return []model.Customer{}
	}
	return customers
}
