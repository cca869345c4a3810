// Package service holds the mutation and authentication layers.  Handlers
// call into it with raw form input and act on the tagged results it
// returns.
package service

import (
    "context"
    "math"
    "strings"
    "time"

    "github.com/shopspring/decimal"
    "github.com/sirupsen/logrus"

    "github.com/iliyamo/invoice-dashboard/internal/model"
    "github.com/iliyamo/invoice-dashboard/internal/utils"
    "github.com/iliyamo/invoice-dashboard/internal/validation"
)

// User facing messages of the invoice mutations.
const (
    MsgSelectCustomer = "Please select a customer."
    MsgAmountPositive = "Please enter an amount greater than $0."
    MsgAmountTooLarge = "Please enter a smaller amount."
    MsgSelectStatus   = "Please select an invoice status."

    MsgMissingCreate = "Missing Fields. Failed to Create Invoice."
    MsgMissingUpdate = "Missing Fields. Failed to Update Invoice."
    MsgStoreCreate   = "Database Error: Failed to Create Invoice."
    MsgStoreUpdate   = "Database Error: Failed to Update Invoice."
    MsgStoreDelete   = "Database Error: Failed to Delete Invoice."
    MsgDeleted       = "Deleted Invoice."
)

// maxCents is the largest amount the invoices.amount INT column holds.
const maxCents = math.MaxInt32

// InvoiceStore is the write side of the invoice repository.
type InvoiceStore interface {
    Create(ctx context.Context, inv *model.Invoice) error
    Update(ctx context.Context, inv model.Invoice) error
    Delete(ctx context.Context, id string) error
}

// InvoiceInput is the untyped form submission for create and update.
// Amount is in dollars exactly as typed.
type InvoiceInput struct {
    CustomerID string `form:"customerId" json:"customerId" validate:"required"`
    Amount     string `form:"amount" json:"amount"`
    Status     string `form:"status" json:"status" validate:"required,oneof=pending paid"`
}

var inputMessages = map[string]string{
    "customerId": MsgSelectCustomer,
    "status":     MsgSelectStatus,
}

// InvoiceService validates invoice forms, writes them and drops the
// cached listing afterwards.
type InvoiceService struct {
    store InvoiceStore
    views ViewInvalidator
    log   logrus.FieldLogger
    now   func() time.Time
}

func NewInvoiceService(store InvoiceStore, views ViewInvalidator, log logrus.FieldLogger) *InvoiceService {
    if views == nil {
        views = NopInvalidator{}
    }
    return &InvoiceService{store: store, views: views, log: log, now: time.Now}
}

// validated is an InvoiceInput that passed validation.
type validated struct {
    customerID string
    cents      int64
    status     model.InvoiceStatus
}

// validate checks the three fields independently so that every problem is
// reported at once.  Customer and status follow the struct tags; the amount
// is converted to cents by rounding amount*100 to the nearest integer.
func validate(in InvoiceInput) (validated, model.FieldErrors) {
    in.CustomerID = strings.TrimSpace(in.CustomerID)
    in.Status = strings.TrimSpace(in.Status)
    errs := validation.Fields(validation.Struct(in), inputMessages)

    v := validated{customerID: in.CustomerID, status: model.InvoiceStatus(in.Status)}

    raw := strings.TrimSpace(in.Amount)
    if raw == "" {
        raw = "0"
    }
    amount, err := decimal.NewFromString(raw)
    switch {
    case err != nil || !amount.IsPositive():
        errs.Add("amount", MsgAmountPositive)
    default:
        cents := amount.Shift(2).Round(0)
        if cents.LessThan(decimal.NewFromInt(1)) {
            errs.Add("amount", MsgAmountPositive)
        } else if cents.GreaterThan(decimal.NewFromInt(maxCents)) {
            errs.Add("amount", MsgAmountTooLarge)
        } else {
            v.cents = cents.IntPart()
        }
    }
    return v, errs
}

// CreateInvoice stamps today's date on a valid submission and inserts it.
func (s *InvoiceService) CreateInvoice(ctx context.Context, in InvoiceInput) Result {
    v, errs := validate(in)
    if !errs.Empty() {
        return invalid(errs, MsgMissingCreate)
    }
    inv := &model.Invoice{
        CustomerID: v.customerID,
        Amount:     v.cents,
        Status:     v.status,
        Date:       utils.Today(s.now()),
    }
    if err := s.store.Create(ctx, inv); err != nil {
        return storeError(MsgStoreCreate)
    }
    s.log.WithFields(logrus.Fields{"invoice_id": inv.ID, "amount": inv.Amount}).Info("invoice created")
    s.invalidate(ctx)
    return redirect(InvoicesView)
}

// UpdateInvoice rewrites customer, amount and status of invoice id.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id string, in InvoiceInput) Result {
    v, errs := validate(in)
    if !errs.Empty() {
        return invalid(errs, MsgMissingUpdate)
    }
    inv := model.Invoice{ID: id, CustomerID: v.customerID, Amount: v.cents, Status: v.status}
    if err := s.store.Update(ctx, inv); err != nil {
        return storeError(MsgStoreUpdate)
    }
    s.log.WithField("invoice_id", id).Info("invoice updated")
    s.invalidate(ctx)
    return redirect(InvoicesView)
}

// DeleteInvoice removes invoice id.  It confirms with a message rather
// than a redirect because it is invoked from the listing itself.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id string) Result {
    if err := s.store.Delete(ctx, id); err != nil {
        return storeError(MsgStoreDelete)
    }
    s.log.WithField("invoice_id", id).Info("invoice deleted")
    s.invalidate(ctx)
    return ok(MsgDeleted)
}

// invalidate never fails the mutation: the row is already written and the
// cache entry expires on its own.
func (s *InvoiceService) invalidate(ctx context.Context) {
    if err := s.views.InvalidateView(ctx, InvoicesView); err != nil {
        s.log.WithFields(logrus.Fields{"view": InvoicesView, "error": err}).Warn("view invalidation failed")
    }
}
