package router // router defines how HTTP routes are registered

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/invoice-dashboard/internal/handler" // dashboard handlers
)

// DashboardHandlers groups the handlers mounted under /dashboard.
type DashboardHandlers struct {
	Dashboard *handler.DashboardHandler
	Invoices  *handler.InvoiceHandler
	Customers *handler.CustomerHandler
}

// RegisterDashboard registers the session-protected pages under /dashboard.
// session authenticates every route of the group.  viewCache wraps only
// the invoice listing, which is the view mutations invalidate.
func RegisterDashboard(e *echo.Echo, h DashboardHandlers, session, viewCache echo.MiddlewareFunc) {
	g := e.Group("/dashboard", session)

	g.GET("", h.Dashboard.Overview)

	// ---- Invoices ----
	g.GET("/invoices", h.Invoices.List, viewCache)
	g.GET("/invoices/create", h.Invoices.CreateForm)
	g.GET("/invoices/:id/edit", h.Invoices.EditForm)
	g.POST("/invoices", h.Invoices.Create)
	g.POST("/invoices/:id", h.Invoices.Update)
	g.PUT("/invoices/:id", h.Invoices.Update) // alias for API clients
	g.POST("/invoices/:id/delete", h.Invoices.Delete) // forms cannot send DELETE
	g.DELETE("/invoices/:id", h.Invoices.Delete)

	// ---- Customers ----
	g.GET("/customers", h.Customers.List)
}
