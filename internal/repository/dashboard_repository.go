package repository

import (
	"context"
	"database/sql"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/invoice-dashboard/internal/model"
	"github.com/iliyamo/invoice-dashboard/internal/utils"
)

// DashboardRepo serves the overview page: the revenue chart and the
// summary cards.
type DashboardRepo struct {
	db  *sql.DB
	log logrus.FieldLogger
}

func NewDashboardRepo(db *sql.DB, log logrus.FieldLogger) *DashboardRepo {
	return &DashboardRepo{db: db, log: log}
}

// FetchRevenue returns every monthly revenue row.
func (r *DashboardRepo) FetchRevenue(ctx context.Context) ([]model.Revenue, error) {
	const q = `SELECT month, revenue FROM revenue`
	var out []model.Revenue
	err := withConn(ctx, r.db, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, q)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var rv model.Revenue
			if err := rows.Scan(&rv.Month, &rv.Revenue); err != nil {
				return err
			}
			out = append(out, rv)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, storeFailure(r.log, "fetch_revenue", err, ErrFetchRevenue)
	}
	return out, nil
}

// FetchCardData computes the invoice count, the customer count and the
// paid and pending totals.  The three queries run concurrently, each on
// its own pooled connection; the first failure cancels the others and the
// whole aggregate fails.  Empty tables give zeros.
func (r *DashboardRepo) FetchCardData(ctx context.Context) (model.CardData, error) {
	const (
		qInvoices  = `SELECT COUNT(*) FROM invoices`
		qCustomers = `SELECT COUNT(*) FROM customers`
		qStatus    = `SELECT
			COALESCE(SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END), 0) AS paid,
			COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0) AS pending
			FROM invoices`
	)
	var invoices, customers, paid, pending sql.NullInt64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return withConn(gctx, r.db, func(conn *sql.Conn) error {
			return conn.QueryRowContext(gctx, qInvoices).Scan(&invoices)
		})
	})
	g.Go(func() error {
		return withConn(gctx, r.db, func(conn *sql.Conn) error {
			return conn.QueryRowContext(gctx, qCustomers).Scan(&customers)
		})
	})
	g.Go(func() error {
		return withConn(gctx, r.db, func(conn *sql.Conn) error {
			return conn.QueryRowContext(gctx, qStatus).Scan(&paid, &pending)
		})
	})
	if err := g.Wait(); err != nil {
		return model.CardData{}, storeFailure(r.log, "fetch_card_data", err, ErrFetchCardData)
	}

	return model.CardData{
		NumberOfCustomers:    customers.Int64,
		NumberOfInvoices:     invoices.Int64,
		TotalPaidInvoices:    utils.FormatCurrency(paid.Int64),
		TotalPendingInvoices: utils.FormatCurrency(pending.Int64),
	}, nil
}
