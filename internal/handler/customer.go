package handler

import (
    "context"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/invoice-dashboard/internal/model"
)

// CustomerTable aggregates invoices per customer.
type CustomerTable interface {
    FetchFilteredCustomers(ctx context.Context, query string) ([]model.FormattedCustomersTable, error)
}

type CustomerHandler struct {
    Customers CustomerTable
}

func NewCustomerHandler(c CustomerTable) *CustomerHandler {
    return &CustomerHandler{Customers: c}
}

// List serves GET /dashboard/customers?query=.
func (h *CustomerHandler) List(c echo.Context) error {
    query := strings.TrimSpace(c.QueryParam("query"))
    ctx, cancel := requestCtx(c)
    defer cancel()

    rows, err := h.Customers.FetchFilteredCustomers(ctx, query)
    if err != nil {
        return storeFailed(c, err)
    }
    if rows == nil {
        rows = []model.FormattedCustomersTable{}
    }
    return c.JSON(http.StatusOK, echo.Map{"query": query, "customers": rows})
}
