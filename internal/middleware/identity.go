package middleware

// identity.go defines helpers shared across middleware files and handlers
// for reading the authenticated session out of the Echo context.

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/invoice-dashboard/internal/utils"
)

const sessionKey = "session"

// SessionFrom returns the session stored by SessionAuth.
func SessionFrom(c echo.Context) (utils.Session, bool) {
    s, ok := c.Get(sessionKey).(utils.Session)
    return s, ok
}

// userID returns the signed-in user's id, or "anon" on public routes.
func userID(c echo.Context) string {
    if s, ok := SessionFrom(c); ok && s.UserID != "" {
        return s.UserID
    }
    return "anon"
}
