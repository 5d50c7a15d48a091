// Package handler is the HTTP layer: the first entry point after the
// router.
//
// It binds requests, validates them with the validation package, calls the
// service layer and writes the response.
package handler

import (
	"github.com/deppfellow/invoice-dashboard/internal/server"
	"github.com/deppfellow/invoice-dashboard/internal/service"
)

// Handlers groups all HTTP handlers for the router.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Invoice *InvoiceHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Invoice: NewInvoiceHandler(s, services.Invoices),
	}
}
