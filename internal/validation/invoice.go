package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/deppfellow/invoice-dashboard/internal/model"
)

// invoiceSchema is the validation view of an invoice form submission.
// Amount is coerced to a number the way a browser form would be: an empty
// or missing value counts as zero. A missing status and an empty one fail
// with different messages.
type invoiceSchema struct {
	CustomerID string `form:"customerId" validate:"required"`
	Amount     string `form:"amount" validate:"coerce_number,positive"`
	Status     string `form:"status" validate:"oneof=pending paid"`
}

const statusMissingMessage = "Please select an invoice status."

var invoiceMessages = map[string]string{
	model.FieldCustomerID + ".required":  "Please select a customer.",
	model.FieldAmount + ".coerce_number": "Expected number, received nan",
	model.FieldAmount + ".positive":      "Please enter an amount greater than $0.",
}

func registerInvoiceRules(v *validator.Validate) {
	_ = v.RegisterValidation("coerce_number", func(fl validator.FieldLevel) bool {
		_, ok := coerceAmount(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("positive", func(fl validator.FieldLevel) bool {
		amount, ok := coerceAmount(fl.Field().String())
		return ok && amount.IsPositive()
	})
}

// coerceAmount parses a submitted amount. Surrounding whitespace is ignored
// and an empty value is zero.
func coerceAmount(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, true
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// ValidateInvoiceForm checks a submitted invoice form.
//
// On success it returns the coerced input and nil errors. On failure it
// returns every field's messages keyed by form field name.
func ValidateInvoiceForm(form model.InvoiceForm) (model.InvoiceInput, model.FieldErrors) {
	schema := invoiceSchema{
		CustomerID: form.CustomerID,
		Amount:     form.Amount,
		Status:     form.Status,
	}

	if err := validate.Struct(schema); err != nil {
		return model.InvoiceInput{}, invoiceFieldErrors(form, err)
	}

	amount, _ := coerceAmount(schema.Amount)

	return model.InvoiceInput{
		CustomerID: schema.CustomerID,
		Amount:     amount,
		Status:     model.InvoiceStatus(schema.Status),
	}, nil
}

func invoiceFieldErrors(form model.InvoiceForm, err error) model.FieldErrors {
	fieldErrors := model.FieldErrors{}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fieldErrors.Add("form", err.Error())
		return fieldErrors
	}

	for _, fe := range validationErrors {
		fieldErrors.Add(fe.Field(), invoiceMessage(form, fe))
	}
	return fieldErrors
}

func invoiceMessage(form model.InvoiceForm, fe validator.FieldError) string {
	if fe.Field() == model.FieldStatus && fe.Tag() == "oneof" {
		if form.IsMissing(model.FieldStatus) {
			return statusMissingMessage
		}
		return fmt.Sprintf("Invalid enum value. Expected 'pending' | 'paid', received '%v'", fe.Value())
	}
	if msg, ok := invoiceMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return fmt.Sprintf("Invalid value for %s", fe.Field())
}
