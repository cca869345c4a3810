package model

// InvoiceStatus is the payment state of an invoice.  Only the two values
// below are accepted by the store and by form validation.
type InvoiceStatus string

const (
    StatusPending InvoiceStatus = "pending"
    StatusPaid    InvoiceStatus = "paid"
)

// Valid reports whether s is one of the allowed statuses.
func (s InvoiceStatus) Valid() bool {
    return s == StatusPending || s == StatusPaid
}

// Invoice mirrors the `invoices` table.  Amount is held in cents and is
// always greater than zero.  Date is the issue date in YYYY-MM-DD form.
//
// Fields:
//  ID         – primary key identifier (UUID text).
//  CustomerID – reference to customers.id.
//  Amount     – amount in cents.
//  Status     – pending or paid.
//  Date       – issue date.
type Invoice struct {
    ID         string        // invoices.id
    CustomerID string        // invoices.customer_id
    Amount     int64         // invoices.amount
    Status     InvoiceStatus // invoices.status
    Date       string        // invoices.date
}

// LatestInvoice is one entry of the dashboard's "latest invoices" card.
// Amount is already formatted for display.
type LatestInvoice struct {
    ID       string `json:"id"`
    Name     string `json:"name"`
    ImageURL string `json:"image_url"`
    Email    string `json:"email"`
    Amount   string `json:"amount"`
}

// InvoicesTable is one row of the paged invoice listing: the invoice
// joined with the display fields of its customer.  Amount stays in cents.
type InvoicesTable struct {
    ID         string        `json:"id"`
    CustomerID string        `json:"customer_id"`
    Name       string        `json:"name"`
    Email      string        `json:"email"`
    ImageURL   string        `json:"image_url"`
    Date       string        `json:"date"`
    Amount     int64         `json:"amount"`
    Status     InvoiceStatus `json:"status"`
}

// InvoiceForm pre-fills the edit form.  Amount is in major units
// (dollars), as the operator typed it.
type InvoiceForm struct {
    ID         string        `json:"id"`
    CustomerID string        `json:"customer_id"`
    Amount     float64       `json:"amount"`
    Status     InvoiceStatus `json:"status"`
}

// CardData holds the four dashboard totals.
type CardData struct {
    NumberOfCustomers    int64  `json:"numberOfCustomers"`
    NumberOfInvoices     int64  `json:"numberOfInvoices"`
    TotalPaidInvoices    string `json:"totalPaidInvoices"`
    TotalPendingInvoices string `json:"totalPendingInvoices"`
}
