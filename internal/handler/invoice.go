package handler

import (
    "context"
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"
    "golang.org/x/sync/errgroup"

    "github.com/iliyamo/invoice-dashboard/internal/model"
    "github.com/iliyamo/invoice-dashboard/internal/repository"
    "github.com/iliyamo/invoice-dashboard/internal/service"
    "github.com/iliyamo/invoice-dashboard/internal/utils"
)

// InvoiceReader is the read side of the invoice repository.
type InvoiceReader interface {
    FetchFilteredInvoices(ctx context.Context, query string, page int) ([]model.InvoicesTable, error)
    FetchInvoicesPages(ctx context.Context, query string) (int, error)
    FetchInvoiceByID(ctx context.Context, id string) (*model.InvoiceForm, error)
}

// CustomerChoices lists the customers an invoice can be assigned to.
type CustomerChoices interface {
    FetchCustomers(ctx context.Context) ([]model.CustomerField, error)
}

// InvoiceMutator is implemented by *service.InvoiceService.
type InvoiceMutator interface {
    CreateInvoice(ctx context.Context, in service.InvoiceInput) service.Result
    UpdateInvoice(ctx context.Context, id string, in service.InvoiceInput) service.Result
    DeleteInvoice(ctx context.Context, id string) service.Result
}

type InvoiceHandler struct {
    Invoices  InvoiceReader
    Customers CustomerChoices
    Mutations InvoiceMutator
}

func NewInvoiceHandler(inv InvoiceReader, cust CustomerChoices, mut InvoiceMutator) *InvoiceHandler {
    return &InvoiceHandler{Invoices: inv, Customers: cust, Mutations: mut}
}

// invoiceRow adds the display forms of amount and date to a listing row.
type invoiceRow struct {
    model.InvoicesTable
    AmountDisplay string `json:"amount_display"`
    DateDisplay   string `json:"date_display"`
}

type invoiceListResp struct {
    Query      string       `json:"query"`
    Page       int          `json:"page"`
    TotalPages int          `json:"totalPages"`
    Invoices   []invoiceRow `json:"invoices"`
}

// List serves GET /dashboard/invoices?query=&page=.  The page rows and the
// page count use the same filter and are fetched in parallel.
func (h *InvoiceHandler) List(c echo.Context) error {
    query := strings.TrimSpace(c.QueryParam("query"))
    page := parsePage(c.QueryParam("page"))

    ctx, cancel := requestCtx(c)
    defer cancel()

    var rows []model.InvoicesTable
    resp := invoiceListResp{Query: query, Page: page}
    g, gctx := errgroup.WithContext(ctx)
    g.Go(func() (err error) {
        rows, err = h.Invoices.FetchFilteredInvoices(gctx, query, page)
        return err
    })
    g.Go(func() (err error) {
        resp.TotalPages, err = h.Invoices.FetchInvoicesPages(gctx, query)
        return err
    })
    if err := g.Wait(); err != nil {
        return storeFailed(c, err)
    }
    resp.Invoices = make([]invoiceRow, 0, len(rows))
    for _, r := range rows {
        resp.Invoices = append(resp.Invoices, invoiceRow{
            InvoicesTable: r,
            AmountDisplay: utils.FormatCurrency(r.Amount),
            DateDisplay:   utils.FormatDateToLocal(r.Date),
        })
    }
    return c.JSON(http.StatusOK, resp)
}

type invoiceFormResp struct {
    Invoice   *model.InvoiceForm    `json:"invoice,omitempty"`
    Customers []model.CustomerField `json:"customers"`
}

// CreateForm returns the customer choices for a blank invoice form.
func (h *InvoiceHandler) CreateForm(c echo.Context) error {
    ctx, cancel := requestCtx(c)
    defer cancel()

    customers, err := h.Customers.FetchCustomers(ctx)
    if err != nil {
        return storeFailed(c, err)
    }
    return c.JSON(http.StatusOK, invoiceFormResp{Customers: nonNil(customers)})
}

// EditForm returns invoice :id pre-filled together with the customer
// choices.  An unknown id is 404.
func (h *InvoiceHandler) EditForm(c echo.Context) error {
    id := c.Param("id")
    ctx, cancel := requestCtx(c)
    defer cancel()

    // A missing invoice is a normal 404, so it must not cancel the
    // customer lookup running next to it.
    var (
        resp    invoiceFormResp
        g       errgroup.Group
        findErr error
    )
    g.Go(func() error {
        resp.Invoice, findErr = h.Invoices.FetchInvoiceByID(ctx, id)
        return findErr
    })
    g.Go(func() (err error) {
        resp.Customers, err = h.Customers.FetchCustomers(ctx)
        return err
    })
    err := g.Wait()
    if errors.Is(findErr, repository.ErrInvoiceNotFound) {
        return c.JSON(http.StatusNotFound, resultBody{Message: "Invoice not found."})
    }
    if err != nil {
        return storeFailed(c, err)
    }
    resp.Customers = nonNil(resp.Customers)
    return c.JSON(http.StatusOK, resp)
}

// Create handles the new invoice form.
func (h *InvoiceHandler) Create(c echo.Context) error {
    var in service.InvoiceInput
    if err := c.Bind(&in); err != nil {
        in = service.InvoiceInput{}
    }
    ctx, cancel := requestCtx(c)
    defer cancel()
    return writeResult(c, h.Mutations.CreateInvoice(ctx, in))
}

// Update handles the edit form of invoice :id.
func (h *InvoiceHandler) Update(c echo.Context) error {
    var in service.InvoiceInput
    if err := c.Bind(&in); err != nil {
        in = service.InvoiceInput{}
    }
    ctx, cancel := requestCtx(c)
    defer cancel()
    return writeResult(c, h.Mutations.UpdateInvoice(ctx, c.Param("id"), in))
}

// Delete removes invoice :id and confirms with a message.
func (h *InvoiceHandler) Delete(c echo.Context) error {
    ctx, cancel := requestCtx(c)
    defer cancel()
    return writeResult(c, h.Mutations.DeleteInvoice(ctx, c.Param("id")))
}

func nonNil(cs []model.CustomerField) []model.CustomerField {
    if cs == nil {
        return []model.CustomerField{}
    }
    return cs
}
