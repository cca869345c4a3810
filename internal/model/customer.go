package model

// Customer represents a row in the `customers` table.  Customers are
// read-only from the dashboard's point of view.
//
// Fields:
//  ID       – primary key identifier (UUID text).
//  Name     – display name.
//  Email    – contact email.
//  ImageURL – avatar image reference.
type Customer struct {
    ID       string `json:"id"`        // customers.id
    Name     string `json:"name"`      // customers.name
    Email    string `json:"email"`     // customers.email
    ImageURL string `json:"image_url"` // customers.image_url
}

// CustomerField is the id/name pair offered as a choice in invoice forms.
type CustomerField struct {
    ID   string `json:"id"`
    Name string `json:"name"`
}

// CustomersTableRow is one aggregated row of the customers listing as
// read from the store, amounts still in cents.
type CustomersTableRow struct {
    ID            string
    Name          string
    Email         string
    ImageURL      string
    TotalInvoices int64
    TotalPending  int64
    TotalPaid     int64
}

// FormattedCustomersTable is the display form of CustomersTableRow with
// the pending and paid totals rendered as currency strings.
type FormattedCustomersTable struct {
    ID            string `json:"id"`
    Name          string `json:"name"`
    Email         string `json:"email"`
    ImageURL      string `json:"image_url"`
    TotalInvoices int64  `json:"total_invoices"`
    TotalPending  string `json:"total_pending"`
    TotalPaid     string `json:"total_paid"`
}
