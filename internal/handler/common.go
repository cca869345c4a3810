package handler // handler translates HTTP input into core operations and core results into HTTP

import (
    "context"  // context bounds every store call made by a handler
    "errors"   // errors detects out-of-range page numbers
    "math"     // math bounds the page number
    "net/http" // net/http provides status codes
    "strconv"  // strconv parses the page query parameter
    "strings"  // strings checks the sign of an out-of-range page
    "time"     // time sets the per-request timeout

    "github.com/labstack/echo/v4" // echo defines request context types

    "github.com/iliyamo/invoice-dashboard/internal/service" // service defines the tagged mutation result
)

// requestTimeout bounds the store work of one request.
const requestTimeout = 5 * time.Second

// requestCtx derives the context used for store calls from the request.
func requestCtx(c echo.Context) (context.Context, context.CancelFunc) {
    return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// maxPage caps the page parameter.  Any page this high is past the end
// of the listing.
const maxPage = math.MaxInt32

// parsePage reads the 1-based page parameter.  Anything unparsable or below
// 1 is page 1, and numbers above maxPage (including ones too large for an
// int) are maxPage.
func parsePage(raw string) int {
    n, err := strconv.ParseInt(raw, 10, 64)
    switch {
    case errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-"):
        return maxPage
    case err != nil || n < 1:
        return 1
    case n > maxPage:
        return maxPage
    }
    return int(n)
}

// resultBody is the JSON shape of failure and confirmation responses.
type resultBody struct {
    Errors  map[string][]string `json:"errors,omitempty"`
    Message string              `json:"message"`
}

// writeResult maps a mutation result onto HTTP: a redirect becomes 303 with
// Location, field errors 422, a store failure 500 and a confirmation 200.
func writeResult(c echo.Context, res service.Result) error {
    switch res.Kind {
    case service.KindRedirect:
        return c.Redirect(http.StatusSeeOther, res.Target)
    case service.KindOK:
        return c.JSON(http.StatusOK, resultBody{Message: res.Message})
    case service.KindValidation:
        return c.JSON(http.StatusUnprocessableEntity, resultBody{Errors: res.Errors, Message: res.Message})
    default:
        return c.JSON(http.StatusInternalServerError, resultBody{Message: res.Message})
    }
}

// storeFailed answers a read failure with 500 and the generic message of
// the error.  Repository errors never carry driver detail.
func storeFailed(c echo.Context, err error) error {
    return c.JSON(http.StatusInternalServerError, resultBody{Message: err.Error()})
}
