// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives request
// data from the handlers, applies validation and business rules, and calls
// repository methods to read and persist data.
package service

import (
	"github.com/deppfellow/invoice-dashboard/internal/lib/cache"
	"github.com/deppfellow/invoice-dashboard/internal/lib/job"
	"github.com/deppfellow/invoice-dashboard/internal/repository"
	"github.com/deppfellow/invoice-dashboard/internal/server"
)

type Services struct {
	Auth     *AuthService
	Invoices *InvoiceService
	Job      *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	authService := NewAuthService(s)

	routeCache := cache.NewRouteCache(s.Redis, s.Config.Redis.RouteCacheTTL)

	invoiceService := NewInvoiceService(
		repos.Invoices,
		repos.Customers,
		routeCache,
		s.Job,
		s.Logger,
	)

	return &Services{
		Auth:     authService,
		Invoices: invoiceService,
		Job:      s.Job,
	}, nil
}
