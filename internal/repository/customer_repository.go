package repository

import (
	"context"
	"database/sql"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/invoice-dashboard/internal/model"
	"github.com/iliyamo/invoice-dashboard/internal/utils"
)

// CustomerRepo reads the customers table.  Customers have no write path.
type CustomerRepo struct {
	db  *sql.DB
	log logrus.FieldLogger
}

func NewCustomerRepo(db *sql.DB, log logrus.FieldLogger) *CustomerRepo {
	return &CustomerRepo{db: db, log: log}
}

// FetchCustomers lists every customer as an id/name choice, by name.
func (r *CustomerRepo) FetchCustomers(ctx context.Context) ([]model.CustomerField, error) {
	const q = `SELECT id, name FROM customers ORDER BY name ASC`
	var out []model.CustomerField
	err := withConn(ctx, r.db, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, q)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var cf model.CustomerField
			if err := rows.Scan(&cf.ID, &cf.Name); err != nil {
				return err
			}
			out = append(out, cf)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, storeFailure(r.log, "fetch_customers", err, ErrFetchCustomers)
	}
	return out, nil
}

// FetchFilteredCustomers aggregates invoices per customer whose name or
// email contains query.  Customers without invoices are kept with zero
// totals.  Rows are ordered by name.
func (r *CustomerRepo) FetchFilteredCustomers(ctx context.Context, query string) ([]model.FormattedCustomersTable, error) {
	const q = `SELECT
			c.id,
			c.name,
			c.email,
			c.image_url,
			COUNT(i.id) AS total_invoices,
			COALESCE(SUM(CASE WHEN i.status = 'pending' THEN i.amount ELSE 0 END), 0) AS total_pending,
			COALESCE(SUM(CASE WHEN i.status = 'paid' THEN i.amount ELSE 0 END), 0) AS total_paid
		FROM customers c
		LEFT JOIN invoices i ON c.id = i.customer_id
		WHERE LOWER(c.name) LIKE ? OR LOWER(c.email) LIKE ?
		GROUP BY c.id, c.name, c.email, c.image_url
		ORDER BY c.name ASC`
	p := likePattern(query)

	var out []model.FormattedCustomersTable
	err := withConn(ctx, r.db, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, q, p, p)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var row model.CustomersTableRow
			if err := rows.Scan(&row.ID, &row.Name, &row.Email, &row.ImageURL,
				&row.TotalInvoices, &row.TotalPending, &row.TotalPaid); err != nil {
				return err
			}
			out = append(out, formatCustomerRow(row))
		}
		return rows.Err()
	})
	if err != nil {
		return nil, storeFailure(r.log, "fetch_filtered_customers", err, ErrFetchCustomerTable)
	}
	return out, nil
}

func formatCustomerRow(row model.CustomersTableRow) model.FormattedCustomersTable {
	return model.FormattedCustomersTable{
		ID:            row.ID,
		Name:          row.Name,
		Email:         row.Email,
		ImageURL:      row.ImageURL,
		TotalInvoices: row.TotalInvoices,
		TotalPending:  utils.FormatCurrency(row.TotalPending),
		TotalPaid:     utils.FormatCurrency(row.TotalPaid),
	}
}
