package handler

import (
    "context"  // context is passed through to the auth service
    "errors"   // errors matches service sentinels
    "net/http" // HTTP status codes and cookies
    "strings"  // trims the submitted email

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/iliyamo/invoice-dashboard/internal/middleware" // session cookie and login path names
    "github.com/iliyamo/invoice-dashboard/internal/service"    // credential verification
    "github.com/iliyamo/invoice-dashboard/internal/utils"      // session token types
)

// DashboardPath is where a successful sign-in lands.
const DashboardPath = "/dashboard"

// Authenticator verifies credentials.  *service.AuthService implements it.
type Authenticator interface {
    Authenticate(ctx context.Context, email, password string) (utils.Session, utils.SessionToken, error)
}

// AuthHandler bundles dependencies for sign-in and sign-out.
type AuthHandler struct {
    Auth         Authenticator
    SecureCookie bool // set the Secure attribute outside local development
}

func NewAuthHandler(auth Authenticator, secureCookie bool) *AuthHandler {
    return &AuthHandler{Auth: auth, SecureCookie: secureCookie}
}

type loginReq struct {
    Email    string `form:"email" json:"email" validate:"required,email"`
    Password string `form:"password" json:"password" validate:"required,min=6"`
}

// Login verifies the submitted credentials.  On success the session token
// is set as an HttpOnly cookie and the browser is sent to the dashboard.
// Every credential problem produces the same 401 message.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusUnauthorized, resultBody{Message: service.ErrInvalidCredentials.Error()})
    }
    req.Email = strings.TrimSpace(req.Email)
    if err := c.Validate(&req); err != nil {
        return c.JSON(http.StatusUnauthorized, resultBody{Message: service.ErrInvalidCredentials.Error()})
    }

    ctx, cancel := requestCtx(c)
    defer cancel()

    _, tok, err := h.Auth.Authenticate(ctx, req.Email, req.Password)
    if err != nil {
        if errors.Is(err, service.ErrInvalidCredentials) {
            return c.JSON(http.StatusUnauthorized, resultBody{Message: err.Error()})
        }
        return c.JSON(http.StatusInternalServerError, resultBody{Message: service.ErrSomethingWentWrong.Error()})
    }

    c.SetCookie(&http.Cookie{
        Name:     middleware.SessionCookie,
        Value:    tok.Token,
        Path:     "/",
        Expires:  tok.Exp,
        HttpOnly: true,
        Secure:   h.SecureCookie,
        SameSite: http.SameSiteLaxMode,
    })
    return c.Redirect(http.StatusSeeOther, DashboardPath)
}

// Logout clears the session cookie and returns to the login page.
func (h *AuthHandler) Logout(c echo.Context) error {
    c.SetCookie(&http.Cookie{
        Name:     middleware.SessionCookie,
        Value:    "",
        Path:     "/",
        MaxAge:   -1,
        HttpOnly: true,
        Secure:   h.SecureCookie,
        SameSite: http.SameSiteLaxMode,
    })
    return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}
