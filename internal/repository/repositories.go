package repository

import (
	"github.com/deppfellow/invoice-dashboard/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Invoices  *InvoiceRepository
	Customers *CustomerRepository
}

// NewRepositories builds every repository on top of the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Invoices:  NewInvoiceRepository(s.DB.Pool),
		Customers: NewCustomerRepository(s.DB.Pool),
	}
}
