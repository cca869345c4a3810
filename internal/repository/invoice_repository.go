package repository

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/invoice-dashboard/internal/model"
	"github.com/iliyamo/invoice-dashboard/internal/utils"
)

// ItemsPerPage is the fixed page size of the invoice listing.
const ItemsPerPage = 6

// LatestInvoicesLimit is the number of rows on the latest invoices card.
const LatestInvoicesLimit = 5

// invoiceFilter is the search predicate shared by the listing and the page
// count.  Both queries must use it unchanged or the pager drifts from the
// rows it pages over.  It binds filterArgs(query).
const invoiceFilter = `(
	LOWER(c.name) LIKE ? OR
	LOWER(c.email) LIKE ? OR
	CAST(i.amount AS CHAR) LIKE ? OR
	CAST(i.date AS CHAR) LIKE ? OR
	LOWER(i.status) LIKE ?
)`

func filterArgs(query string) []any {
	p := likePattern(query)
	return []any{p, p, p, p, p}
}

// InvoiceRepo encapsulates the queries and statements on the invoices
// table.
type InvoiceRepo struct {
	db  *sql.DB
	log logrus.FieldLogger
}

func NewInvoiceRepo(db *sql.DB, log logrus.FieldLogger) *InvoiceRepo {
	return &InvoiceRepo{db: db, log: log}
}

// FetchLatestInvoices returns the most recent invoices joined with their
// customer, amounts formatted for display.
func (r *InvoiceRepo) FetchLatestInvoices(ctx context.Context) ([]model.LatestInvoice, error) {
	const q = `SELECT i.id, i.amount, c.name, c.image_url, c.email
		FROM invoices i
		JOIN customers c ON i.customer_id = c.id
		ORDER BY i.date DESC, i.id
		LIMIT ?`
	out := make([]model.LatestInvoice, 0, LatestInvoicesLimit)
	err := withConn(ctx, r.db, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, q, LatestInvoicesLimit)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var (
				li    model.LatestInvoice
				cents int64
			)
			if err := rows.Scan(&li.ID, &cents, &li.Name, &li.ImageURL, &li.Email); err != nil {
				return err
			}
			li.Amount = utils.FormatCurrency(cents)
			out = append(out, li)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, storeFailure(r.log, "fetch_latest_invoices", err, ErrFetchLatestInvoices)
	}
	return out, nil
}

// FetchFilteredInvoices returns one page of invoices matching query,
// newest first.  page is 1-based; values below 1 are treated as 1.  A page
// whose offset does not fit an int is past any real listing and is empty.
func (r *InvoiceRepo) FetchFilteredInvoices(ctx context.Context, query string, page int) ([]model.InvoicesTable, error) {
	if page < 1 {
		page = 1
	}
	if page-1 > math.MaxInt/ItemsPerPage {
		return []model.InvoicesTable{}, nil
	}
	offset := (page - 1) * ItemsPerPage

	q := `SELECT i.id, i.customer_id, i.amount, CAST(i.date AS CHAR) AS date, i.status,
			c.name, c.email, c.image_url
		FROM invoices i
		JOIN customers c ON i.customer_id = c.id
		WHERE ` + invoiceFilter + `
		ORDER BY i.date DESC, i.id
		LIMIT ? OFFSET ?`
	args := append(filterArgs(query), ItemsPerPage, offset)

	out := make([]model.InvoicesTable, 0, ItemsPerPage)
	err := withConn(ctx, r.db, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var it model.InvoicesTable
			if err := rows.Scan(&it.ID, &it.CustomerID, &it.Amount, &it.Date, &it.Status,
				&it.Name, &it.Email, &it.ImageURL); err != nil {
				return err
			}
			out = append(out, it)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, storeFailure(r.log, "fetch_filtered_invoices", err, ErrFetchInvoices)
	}
	return out, nil
}

// FetchInvoicesPages returns how many pages of ItemsPerPage the listing
// for query spans.  No match yields 0.
func (r *InvoiceRepo) FetchInvoicesPages(ctx context.Context, query string) (int, error) {
	q := `SELECT COUNT(*)
		FROM invoices i
		JOIN customers c ON i.customer_id = c.id
		WHERE ` + invoiceFilter
	var count int64
	err := withConn(ctx, r.db, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, q, filterArgs(query)...).Scan(&count)
	})
	if err != nil {
		return 0, storeFailure(r.log, "fetch_invoices_pages", err, ErrFetchInvoicePages)
	}
	return int((count + ItemsPerPage - 1) / ItemsPerPage), nil
}

// FetchInvoiceByID loads the edit form of one invoice.  The amount is
// returned in major units.  ErrInvoiceNotFound is returned when id is
// unknown.
func (r *InvoiceRepo) FetchInvoiceByID(ctx context.Context, id string) (*model.InvoiceForm, error) {
	const q = `SELECT id, customer_id, amount, status FROM invoices WHERE id = ?`
	var (
		f     model.InvoiceForm
		cents int64
	)
	err := withConn(ctx, r.db, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, q, id).Scan(&f.ID, &f.CustomerID, &cents, &f.Status)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvoiceNotFound
		}
		return nil, storeFailure(r.log, "fetch_invoice_by_id", err, ErrFetchInvoice)
	}
	f.Amount = float64(cents) / 100.0
	return &f, nil
}

// Create inserts inv in a single statement.  When inv.ID is empty a new
// UUID is assigned and written back.
func (r *InvoiceRepo) Create(ctx context.Context, inv *model.Invoice) error {
	const q = `INSERT INTO invoices (id, customer_id, amount, status, date) VALUES (?, ?, ?, ?, ?)`
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	err := withConn(ctx, r.db, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, q, inv.ID, inv.CustomerID, inv.Amount, string(inv.Status), inv.Date)
		return err
	})
	if err != nil {
		return storeFailure(r.log, "create_invoice", err, ErrCreateInvoice)
	}
	return nil
}

// Update rewrites customer, amount and status of the invoice inv.ID.  The
// issue date is left untouched.
func (r *InvoiceRepo) Update(ctx context.Context, inv model.Invoice) error {
	const q = `UPDATE invoices SET customer_id = ?, amount = ?, status = ? WHERE id = ?`
	err := withConn(ctx, r.db, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, q, inv.CustomerID, inv.Amount, string(inv.Status), inv.ID)
		return err
	})
	if err != nil {
		return storeFailure(r.log, "update_invoice", err, ErrUpdateInvoice)
	}
	return nil
}

// Delete removes the invoice with id.  Deleting an id that does not exist
// is not an error.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM invoices WHERE id = ?`
	err := withConn(ctx, r.db, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, q, id)
		return err
	})
	if err != nil {
		return storeFailure(r.log, "delete_invoice", err, ErrDeleteInvoice)
	}
	return nil
}
