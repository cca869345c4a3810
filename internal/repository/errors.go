// Package repository is the data-access layer of the dashboard.  Every
// exported operation reaches the store fresh on each call; nothing is
// memoized here.  Store failures are logged with their cause and replaced
// by one of the generic sentinels below, so callers (and through them the
// browser) never see driver errors.
package repository

import "errors"

// Generic read failures, one per operation.
var (
	ErrFetchRevenue        = errors.New("failed to fetch revenue data")
	ErrFetchLatestInvoices = errors.New("failed to fetch the latest invoices")
	ErrFetchCardData       = errors.New("failed to fetch card data")
	ErrFetchInvoices       = errors.New("failed to fetch invoices")
	ErrFetchInvoicePages   = errors.New("failed to fetch total number of invoices")
	ErrFetchInvoice        = errors.New("failed to fetch invoice")
	ErrFetchCustomers      = errors.New("failed to fetch all customers")
	ErrFetchCustomerTable  = errors.New("failed to fetch customer table")
	ErrFetchUser           = errors.New("failed to fetch user")
)

// Generic write failures.
var (
	ErrCreateInvoice = errors.New("failed to create invoice")
	ErrUpdateInvoice = errors.New("failed to update invoice")
	ErrDeleteInvoice = errors.New("failed to delete invoice")
)

// ErrInvoiceNotFound is returned when no invoice has the requested id.
var ErrInvoiceNotFound = errors.New("invoice not found")

// ErrUserNotFound is returned when no user has the requested email.
var ErrUserNotFound = errors.New("user not found")
