package handler

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "net/url"
    "strings"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/invoice-dashboard/internal/middleware"
    "github.com/iliyamo/invoice-dashboard/internal/model"
    "github.com/iliyamo/invoice-dashboard/internal/repository"
    "github.com/iliyamo/invoice-dashboard/internal/service"
    "github.com/iliyamo/invoice-dashboard/internal/utils"
    "github.com/iliyamo/invoice-dashboard/internal/validation"
)

type fakeAuth struct{ err error }

func (f fakeAuth) Authenticate(_ context.Context, email, _ string) (utils.Session, utils.SessionToken, error) {
    if f.err != nil {
        return utils.Session{}, utils.SessionToken{}, f.err
    }
    return utils.Session{UserID: "u1", Email: email}, utils.SessionToken{Token: "signed", Exp: time.Now().Add(time.Hour)}, nil
}

type fakeReads struct {
    err      error
    invoice  *model.InvoiceForm
    lastPage int
}

func (f *fakeReads) FetchRevenue(context.Context) ([]model.Revenue, error) {
    return []model.Revenue{{Month: "Jan", Revenue: 2000}}, f.err
}

func (f *fakeReads) FetchCardData(context.Context) (model.CardData, error) {
    return model.CardData{NumberOfCustomers: 1, NumberOfInvoices: 2, TotalPaidInvoices: "$5.00", TotalPendingInvoices: "$0.00"}, f.err
}

func (f *fakeReads) FetchLatestInvoices(context.Context) ([]model.LatestInvoice, error) {
    return []model.LatestInvoice{{ID: "i1", Amount: "$5.00"}}, f.err
}

func (f *fakeReads) FetchFilteredInvoices(_ context.Context, _ string, page int) ([]model.InvoicesTable, error) {
    f.lastPage = page
    return nil, f.err
}

func (f *fakeReads) FetchInvoicesPages(context.Context, string) (int, error) { return 3, f.err }

func (f *fakeReads) FetchInvoiceByID(_ context.Context, id string) (*model.InvoiceForm, error) {
    if f.invoice == nil || f.invoice.ID != id {
        return nil, repository.ErrInvoiceNotFound
    }
    return f.invoice, nil
}

func (f *fakeReads) FetchCustomers(context.Context) ([]model.CustomerField, error) {
    return []model.CustomerField{{ID: "c1", Name: "Lee Robinson"}}, f.err
}

func (f *fakeReads) FetchFilteredCustomers(_ context.Context, query string) ([]model.FormattedCustomersTable, error) {
    return []model.FormattedCustomersTable{{ID: "c1", Name: query, TotalPending: "$203.48", TotalPaid: "$5.00"}}, f.err
}

type fakeMutations struct {
    res service.Result
    in  service.InvoiceInput
    id  string
}

func (f *fakeMutations) CreateInvoice(_ context.Context, in service.InvoiceInput) service.Result {
    f.in = in
    return f.res
}

func (f *fakeMutations) UpdateInvoice(_ context.Context, id string, in service.InvoiceInput) service.Result {
    f.id, f.in = id, in
    return f.res
}

func (f *fakeMutations) DeleteInvoice(_ context.Context, id string) service.Result {
    f.id = id
    return f.res
}

func serve(e *echo.Echo, method, target string, form url.Values) *httptest.ResponseRecorder {
    var req *http.Request
    if form != nil {
        req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
    } else {
        req = httptest.NewRequest(method, target, nil)
    }
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
    t.Helper()
    var m map[string]any
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
    return m
}

func TestParsePage(t *testing.T) {
    cases := map[string]int{
        "":                        1,
        "abc":                     1,
        "0":                       1,
        "-3":                      1,
        "-99999999999999999999":   1,
        "2":                       2,
        "2147483648":              maxPage,
        "99999999999999999999999": maxPage,
    }
    for raw, want := range cases {
        assert.Equal(t, want, parsePage(raw), raw)
    }
}

func TestHealth(t *testing.T) {
    e := echo.New()
    e.GET("/healthz", Health)
    rec := serve(e, http.MethodGet, "/healthz", nil)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "ok", rec.Body.String())
}

func TestLogin(t *testing.T) {
    e := echo.New()
    e.Validator = validation.EchoValidator{}
    e.POST("/login", NewAuthHandler(fakeAuth{}, true).Login)
    e.POST("/bad", NewAuthHandler(fakeAuth{err: service.ErrInvalidCredentials}, false).Login)
    e.POST("/broken", NewAuthHandler(fakeAuth{err: service.ErrSomethingWentWrong}, false).Login)
    form := url.Values{"email": {"user@nextmail.com"}, "password": {"123456"}}

    rec := serve(e, http.MethodPost, "/login", form)
    assert.Equal(t, http.StatusSeeOther, rec.Code)
    assert.Equal(t, DashboardPath, rec.Header().Get(echo.HeaderLocation))
    cookies := rec.Result().Cookies()
    require.Len(t, cookies, 1)
    assert.Equal(t, middleware.SessionCookie, cookies[0].Name)
    assert.Equal(t, "signed", cookies[0].Value)
    assert.True(t, cookies[0].HttpOnly)
    assert.True(t, cookies[0].Secure)

    rec = serve(e, http.MethodPost, "/bad", form)
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
    assert.Equal(t, "Invalid credentials.", decode(t, rec)["message"])
    assert.Empty(t, rec.Result().Cookies())

    rec = serve(e, http.MethodPost, "/broken", form)
    assert.Equal(t, http.StatusInternalServerError, rec.Code)
    assert.Equal(t, "Something went wrong.", decode(t, rec)["message"])
}

func TestLoginRejectsMalformedCredentials(t *testing.T) {
    e := echo.New()
    e.Validator = validation.EchoValidator{}
    // The authenticator would accept anything; the form rules reject first.
    e.POST("/login", NewAuthHandler(fakeAuth{}, false).Login)

    for _, form := range []url.Values{
        {"email": {"not-an-email"}, "password": {"123456"}},
        {"email": {"user@nextmail.com"}, "password": {"12345"}},
        {"password": {"123456"}},
    } {
        rec := serve(e, http.MethodPost, "/login", form)
        assert.Equal(t, http.StatusUnauthorized, rec.Code, form.Encode())
        assert.Equal(t, "Invalid credentials.", decode(t, rec)["message"])
        assert.Empty(t, rec.Result().Cookies())
    }
}

func TestLogout(t *testing.T) {
    e := echo.New()
    e.POST("/logout", NewAuthHandler(fakeAuth{}, false).Logout)
    rec := serve(e, http.MethodPost, "/logout", nil)
    assert.Equal(t, http.StatusSeeOther, rec.Code)
    assert.Equal(t, middleware.LoginPath, rec.Header().Get(echo.HeaderLocation))
    cookies := rec.Result().Cookies()
    require.Len(t, cookies, 1)
    assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestDashboardOverview(t *testing.T) {
    reads := &fakeReads{}
    e := echo.New()
    e.GET("/dashboard", NewDashboardHandler(reads, reads).Overview)

    rec := serve(e, http.MethodGet, "/dashboard", nil)
    assert.Equal(t, http.StatusOK, rec.Code)
    body := decode(t, rec)
    assert.Len(t, body["revenue"], 1)
    assert.Len(t, body["latestInvoices"], 1)
    assert.Equal(t, "$5.00", body["cards"].(map[string]any)["totalPaidInvoices"])

    reads.err = repository.ErrFetchCardData
    rec = serve(e, http.MethodGet, "/dashboard", nil)
    assert.Equal(t, http.StatusInternalServerError, rec.Code)
    assert.Contains(t, rec.Body.String(), "failed to fetch")
}

func TestInvoiceList(t *testing.T) {
    reads := &fakeReads{}
    e := echo.New()
    e.GET("/dashboard/invoices", NewInvoiceHandler(reads, reads, &fakeMutations{}).List)

    rec := serve(e, http.MethodGet, "/dashboard/invoices?query=lee&page=2", nil)
    assert.Equal(t, http.StatusOK, rec.Code)
    body := decode(t, rec)
    assert.Equal(t, "lee", body["query"])
    assert.Equal(t, float64(2), body["page"])
    assert.Equal(t, float64(3), body["totalPages"])
    assert.Equal(t, []any{}, body["invoices"])
    assert.Equal(t, 2, reads.lastPage)

    serve(e, http.MethodGet, "/dashboard/invoices?page=abc", nil)
    assert.Equal(t, 1, reads.lastPage)

    rec = serve(e, http.MethodGet, "/dashboard/invoices?page=9223372036854775807", nil)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, maxPage, reads.lastPage)

    reads.err = repository.ErrFetchInvoices
    rec = serve(e, http.MethodGet, "/dashboard/invoices", nil)
    assert.Equal(t, http.StatusInternalServerError, rec.Code)
    assert.Equal(t, "failed to fetch invoices", decode(t, rec)["message"])
}

func TestInvoiceForms(t *testing.T) {
    reads := &fakeReads{invoice: &model.InvoiceForm{ID: "i1", CustomerID: "c1", Amount: 157.95, Status: model.StatusPending}}
    h := NewInvoiceHandler(reads, reads, &fakeMutations{})
    e := echo.New()
    e.GET("/dashboard/invoices/create", h.CreateForm)
    e.GET("/dashboard/invoices/:id/edit", h.EditForm)

    rec := serve(e, http.MethodGet, "/dashboard/invoices/create", nil)
    assert.Equal(t, http.StatusOK, rec.Code)
    body := decode(t, rec)
    assert.Len(t, body["customers"], 1)
    assert.NotContains(t, body, "invoice")

    rec = serve(e, http.MethodGet, "/dashboard/invoices/i1/edit", nil)
    assert.Equal(t, http.StatusOK, rec.Code)
    body = decode(t, rec)
    assert.Equal(t, 157.95, body["invoice"].(map[string]any)["amount"])

    rec = serve(e, http.MethodGet, "/dashboard/invoices/nope/edit", nil)
    assert.Equal(t, http.StatusNotFound, rec.Code)
}

// slowCustomers answers after a delay and records whether its context had
// been cancelled by then.
type slowCustomers struct{ ctxErr error }

func (s *slowCustomers) FetchCustomers(ctx context.Context) ([]model.CustomerField, error) {
    time.Sleep(30 * time.Millisecond)
    s.ctxErr = ctx.Err()
    return []model.CustomerField{{ID: "c1", Name: "Lee Robinson"}}, s.ctxErr
}

func TestEditFormMissingInvoiceKeepsCustomerLookup(t *testing.T) {
    customers := &slowCustomers{}
    e := echo.New()
    e.GET("/dashboard/invoices/:id/edit", NewInvoiceHandler(&fakeReads{}, customers, &fakeMutations{}).EditForm)

    rec := serve(e, http.MethodGet, "/dashboard/invoices/nope/edit", nil)
    assert.Equal(t, http.StatusNotFound, rec.Code)
    assert.Equal(t, "Invoice not found.", decode(t, rec)["message"])
    assert.NoError(t, customers.ctxErr)
}

func TestInvoiceMutations(t *testing.T) {
    mut := &fakeMutations{}
    h := NewInvoiceHandler(&fakeReads{}, &fakeReads{}, mut)
    e := echo.New()
    e.POST("/dashboard/invoices", h.Create)
    e.POST("/dashboard/invoices/:id", h.Update)
    e.DELETE("/dashboard/invoices/:id", h.Delete)
    form := url.Values{"customerId": {"c1"}, "amount": {"12.50"}, "status": {"paid"}}

    mut.res = service.Result{Kind: service.KindRedirect, Target: service.InvoicesView}
    rec := serve(e, http.MethodPost, "/dashboard/invoices", form)
    assert.Equal(t, http.StatusSeeOther, rec.Code)
    assert.Equal(t, service.InvoicesView, rec.Header().Get(echo.HeaderLocation))
    assert.Equal(t, service.InvoiceInput{CustomerID: "c1", Amount: "12.50", Status: "paid"}, mut.in)

    mut.res = service.Result{
        Kind:    service.KindValidation,
        Errors:  model.FieldErrors{"amount": {service.MsgAmountPositive}},
        Message: service.MsgMissingUpdate,
    }
    rec = serve(e, http.MethodPost, "/dashboard/invoices/i1", form)
    assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
    assert.Equal(t, "i1", mut.id)
    body := decode(t, rec)
    assert.Equal(t, service.MsgMissingUpdate, body["message"])
    assert.Equal(t, []any{service.MsgAmountPositive}, body["errors"].(map[string]any)["amount"])

    mut.res = service.Result{Kind: service.KindStoreError, Message: service.MsgStoreDelete}
    rec = serve(e, http.MethodDelete, "/dashboard/invoices/i2", nil)
    assert.Equal(t, http.StatusInternalServerError, rec.Code)
    assert.Equal(t, "i2", mut.id)
    assert.NotContains(t, decode(t, rec), "errors")

    mut.res = service.Result{Kind: service.KindOK, Message: service.MsgDeleted}
    rec = serve(e, http.MethodDelete, "/dashboard/invoices/i2", nil)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, service.MsgDeleted, decode(t, rec)["message"])
}

func TestCustomerList(t *testing.T) {
    reads := &fakeReads{}
    e := echo.New()
    e.GET("/dashboard/customers", NewCustomerHandler(reads).List)

    rec := serve(e, http.MethodGet, "/dashboard/customers?query=Lee", nil)
    assert.Equal(t, http.StatusOK, rec.Code)
    rows := decode(t, rec)["customers"].([]any)
    require.Len(t, rows, 1)
    assert.Equal(t, "$203.48", rows[0].(map[string]any)["total_pending"])

    reads.err = repository.ErrFetchCustomerTable
    rec = serve(e, http.MethodGet, "/dashboard/customers", nil)
    assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
