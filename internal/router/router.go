package router // package router defines how HTTP routes are registered

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/invoice-dashboard/internal/handler" // import the handlers that translate HTTP to core operations
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers sign-in and sign-out.  loginLimit guards the
// sign-in endpoint against password guessing; it may be a pass-through.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, loginLimit echo.MiddlewareFunc) {
	e.POST("/login", a.Login, loginLimit)
	// Logout needs no session: clearing an absent cookie is harmless.
	e.POST("/logout", a.Logout)
}
