// Package seed loads the placeholder users, customers, invoices, revenue
// and events into an empty or partially seeded store.  Running it twice
// does not duplicate rows.
package seed

import (
    "context"
    "database/sql"
    "fmt"

    "github.com/google/uuid"
    "github.com/sirupsen/logrus"

    "github.com/iliyamo/invoice-dashboard/internal/utils"
    "github.com/iliyamo/invoice-dashboard/internal/validation"
)

// Counts reports how many rows of each table were inserted.
type Counts struct {
    Users     int
    Customers int
    Invoices  int
    Revenue   int
    Events    int
}

// Run inserts the placeholder data in one transaction.  Users, customers,
// events and revenue are skipped when their key already exists; invoices
// have no natural key and are only inserted into an empty table.
// Passwords are hashed with bcrypt at cost.
func Run(ctx context.Context, db *sql.DB, cost int, log logrus.FieldLogger) (Counts, error) {
    var n Counts
    tx, err := db.BeginTx(ctx, nil)
    if err != nil {
        return n, fmt.Errorf("begin seed: %w", err)
    }
    defer func() { _ = tx.Rollback() }()

    for _, u := range users {
        hash, err := utils.HashPassword(u.Password, cost)
        if err != nil {
            return n, fmt.Errorf("hash password of %s: %w", u.Email, err)
        }
        ok, err := insertMissing(ctx, tx, `SELECT COUNT(*) FROM users WHERE id = ?`, u.ID,
            `INSERT INTO users (id, name, email, password) VALUES (?, ?, ?, ?)`, u.ID, u.Name, u.Email, hash)
        if err != nil {
            return n, fmt.Errorf("seed user %s: %w", u.Email, err)
        }
        if ok {
            n.Users++
        }
    }

    for _, c := range customers {
        ok, err := insertMissing(ctx, tx, `SELECT COUNT(*) FROM customers WHERE id = ?`, c.ID,
            `INSERT INTO customers (id, name, email, image_url) VALUES (?, ?, ?, ?)`, c.ID, c.Name, c.Email, c.ImageURL)
        if err != nil {
            return n, fmt.Errorf("seed customer %s: %w", c.Name, err)
        }
        if ok {
            n.Customers++
        }
    }

    var existing int
    if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&existing); err != nil {
        return n, fmt.Errorf("count invoices: %w", err)
    }
    if existing == 0 {
        for _, inv := range invoices {
            if _, err := tx.ExecContext(ctx,
                `INSERT INTO invoices (id, customer_id, amount, status, date) VALUES (?, ?, ?, ?, ?)`,
                uuid.NewString(), customers[inv.customer].ID, inv.amount, string(inv.status), inv.date); err != nil {
                return n, fmt.Errorf("seed invoice: %w", err)
            }
            n.Invoices++
        }
    }

    for _, r := range revenue {
        ok, err := insertMissing(ctx, tx, `SELECT COUNT(*) FROM revenue WHERE month = ?`, r.Month,
            `INSERT INTO revenue (month, revenue) VALUES (?, ?)`, r.Month, r.Revenue)
        if err != nil {
            return n, fmt.Errorf("seed revenue %s: %w", r.Month, err)
        }
        if ok {
            n.Revenue++
        }
    }

    for _, e := range events {
        if errs := validation.Event(e); !errs.Empty() {
            return n, fmt.Errorf("event %q is invalid: %v", e.Name, errs)
        }
        ok, err := insertMissing(ctx, tx, `SELECT COUNT(*) FROM events WHERE id = ?`, e.ID,
            `INSERT INTO events (id, name, start_on, start_at, pax, purpose, venue, holdingroom, eventsetup,
                menurequest, typeofservice, servingschedule, timeofserving, foodrestriction,
                foodinstruction, remarks, user_id)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
            e.ID, e.Name, e.StartOn, e.StartAt, e.Pax, e.Purpose, string(e.Venue), e.HoldingRoom,
            string(e.EventSetup), string(e.MenuRequest), string(e.TypeOfService), string(e.ServingSchedule),
            e.TimeOfServing, string(e.FoodRestriction), e.FoodInstruction, e.Remarks, e.UserID)
        if err != nil {
            return n, fmt.Errorf("seed event %s: %w", e.Name, err)
        }
        if ok {
            n.Events++
        }
    }

    if err := tx.Commit(); err != nil {
        return n, fmt.Errorf("commit seed: %w", err)
    }
    log.WithFields(logrus.Fields{
        "users":     n.Users,
        "customers": n.Customers,
        "invoices":  n.Invoices,
        "revenue":   n.Revenue,
        "events":    n.Events,
    }).Info("seed complete")
    return n, nil
}

// insertMissing runs insert unless exists, a COUNT query on key, finds a
// row.  It reports whether a row was inserted.
func insertMissing(ctx context.Context, tx *sql.Tx, exists string, key any, insert string, args ...any) (bool, error) {
    var count int
    if err := tx.QueryRowContext(ctx, exists, key).Scan(&count); err != nil {
        return false, err
    }
    if count > 0 {
        return false, nil
    }
    if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
        return false, err
    }
    return true, nil
}
