package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/invoice-dashboard/internal/handler"
)

// registerDashboardRoutes maps the invoice pages and form actions. HTML
// forms can only GET and POST, so update and delete also accept POST.
func registerDashboardRoutes(g *echo.Group, h *handler.Handlers) {
	invoices := g.Group("/invoices")

	invoices.GET("", handler.Handle(h.Invoice.ListInvoices, http.StatusOK, handler.Request[handler.EmptyRequest]))
	invoices.POST("", handler.HandleAction(h.Invoice.CreateInvoice, handler.Request[handler.CreateInvoiceRequest]))

	invoices.GET("/:id", handler.Handle(h.Invoice.GetInvoice, http.StatusOK, handler.Request[handler.InvoiceIDRequest]))

	update := handler.HandleAction(h.Invoice.UpdateInvoice, handler.Request[handler.UpdateInvoiceRequest])
	invoices.POST("/:id", update)
	invoices.PUT("/:id", update)

	remove := handler.HandleNoContent(h.Invoice.DeleteInvoice, http.StatusNoContent, handler.Request[handler.InvoiceIDRequest])
	invoices.DELETE("/:id", remove)
	invoices.POST("/:id/delete", remove)

	g.GET("/customers", handler.Handle(h.Invoice.ListCustomers, http.StatusOK, handler.Request[handler.EmptyRequest]))
}
