package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/deppfellow/invoice-dashboard/internal/model"
)

const listCustomersSQL = `
SELECT id::text AS id, name, email
FROM customers
ORDER BY name ASC`

// CustomerRepository reads the customers offered by the invoice forms.
type CustomerRepository struct {
	db DBTX
}

func NewCustomerRepository(db DBTX) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// List returns all customers ordered by name.
func (r *CustomerRepository) List(ctx context.Context) ([]model.Customer, error) {
	rows, err := r.db.Query(ctx, listCustomersSQL)
	if err != nil {
		return nil, errors.Wrap(err, "list customers")
	}

	customers, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Customer])
	if err != nil {
		return nil, errors.Wrap(err, "collect customers")
	}
	return customers, nil
}
