package email

import (
	"context"
	"fmt"

	"github.com/deppfellow/invoice-dashboard/internal/lib/utils"
	"github.com/deppfellow/invoice-dashboard/internal/model"
)

// InvoiceCreatedData builds the template data of the invoice_created email.
func InvoiceCreatedData(n model.InvoiceNotice) map[string]string {
	return map[string]string{
		"CustomerName": n.CustomerName,
		"InvoiceID":    n.InvoiceID,
		"Amount":       utils.FormatCurrency(n.Amount),
		"Status":       string(n.Status),
		"Date":         n.Date,
	}
}

// SendInvoiceCreatedEmail tells the invoiced customer about a new invoice.
func (c *Client) SendInvoiceCreatedEmail(ctx context.Context, n model.InvoiceNotice) error {
	return c.SendEmail(
		ctx,
		n.CustomerEmail,
		fmt.Sprintf("New invoice for %s", utils.FormatCurrency(n.Amount)),
		TemplateInvoiceCreated,
		InvoiceCreatedData(n),
	)
}
