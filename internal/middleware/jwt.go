package middleware

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/invoice-dashboard/internal/utils"
)

// SessionCookie is the cookie that carries the signed session token.
const SessionCookie = "session"

// LoginPath is where unauthenticated page requests are sent.
const LoginPath = "/login"

// SessionAuth returns an Echo middleware that accepts a session token from
// the session cookie or, for API clients, a Bearer Authorization header.
// A valid session is stored in the context (see SessionFrom).  Without
// one, GET requests are redirected to the login page with 303 and every
// other request is answered with 401.
func SessionAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            raw := sessionToken(c)
            if raw == "" {
                return unauthenticated(c)
            }
            sess, err := utils.ParseSessionToken(secret, raw)
            if err != nil {
                return unauthenticated(c)
            }
            c.Set(sessionKey, sess)
            return next(c)
        }
    }
}

// sessionToken prefers the Authorization header over the cookie.
func sessionToken(c echo.Context) string {
    if auth := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
        return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
    }
    if ck, err := c.Cookie(SessionCookie); err == nil {
        return ck.Value
    }
    return ""
}

func unauthenticated(c echo.Context) error {
    if c.Request().Method == http.MethodGet {
        return c.Redirect(http.StatusSeeOther, LoginPath)
    }
    return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
}
