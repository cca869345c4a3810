package service

import (
    "context"
    "database/sql"
    "errors"
    "testing"
    "time"

    logtest "github.com/sirupsen/logrus/hooks/test"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/invoice-dashboard/internal/model"
    "github.com/iliyamo/invoice-dashboard/internal/repository"
    "github.com/iliyamo/invoice-dashboard/internal/testutil"
    "github.com/iliyamo/invoice-dashboard/internal/utils"
)

type fakeStore struct {
    created []model.Invoice
    updated []model.Invoice
    deleted []string
    err     error
}

func (f *fakeStore) Create(_ context.Context, inv *model.Invoice) error {
    if f.err != nil {
        return f.err
    }
    inv.ID = "generated"
    f.created = append(f.created, *inv)
    return nil
}

func (f *fakeStore) Update(_ context.Context, inv model.Invoice) error {
    if f.err != nil {
        return f.err
    }
    f.updated = append(f.updated, inv)
    return nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
    if f.err != nil {
        return f.err
    }
    f.deleted = append(f.deleted, id)
    return nil
}

type recordingInvalidator struct {
    paths []string
    err   error
}

func (r *recordingInvalidator) InvalidateView(_ context.Context, path string) error {
    r.paths = append(r.paths, path)
    return r.err
}

func newTestService(store InvoiceStore, views ViewInvalidator) *InvoiceService {
    log, _ := logtest.NewNullLogger()
    s := NewInvoiceService(store, views, log)
    s.now = func() time.Time { return time.Date(2023, 6, 15, 23, 30, 0, 0, time.UTC) }
    return s
}

func TestValidate(t *testing.T) {
    cases := []struct {
        name   string
        in     InvoiceInput
        cents  int64
        fields []string
    }{
        {"valid", InvoiceInput{CustomerID: "c1", Amount: "157.95", Status: "pending"}, 15795, nil},
        {"rounds half cent", InvoiceInput{CustomerID: "c1", Amount: "10.005", Status: "paid"}, 1001, nil},
        {"whole dollars", InvoiceInput{CustomerID: "c1", Amount: " 42 ", Status: "paid"}, 4200, nil},
        {"empty form", InvoiceInput{}, 0, []string{"customerId", "amount", "status"}},
        {"zero amount", InvoiceInput{CustomerID: "c1", Amount: "0", Status: "paid"}, 0, []string{"amount"}},
        {"negative amount", InvoiceInput{CustomerID: "c1", Amount: "-5", Status: "paid"}, 0, []string{"amount"}},
        {"sub cent", InvoiceInput{CustomerID: "c1", Amount: "0.001", Status: "paid"}, 0, []string{"amount"}},
        {"not a number", InvoiceInput{CustomerID: "c1", Amount: "abc", Status: "paid"}, 0, []string{"amount"}},
        {"too large", InvoiceInput{CustomerID: "c1", Amount: "99999999999", Status: "paid"}, 0, []string{"amount"}},
        {"bad status", InvoiceInput{CustomerID: "c1", Amount: "1", Status: "overdue"}, 0, []string{"status"}},
        {"blank customer", InvoiceInput{CustomerID: "   ", Amount: "1", Status: "paid"}, 0, []string{"customerId"}},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            v, errs := validate(tc.in)
            if tc.fields == nil {
                assert.True(t, errs.Empty(), "%v", errs)
                assert.Equal(t, tc.cents, v.cents)
                return
            }
            keys := make([]string, 0, len(errs))
            for k := range errs {
                keys = append(keys, k)
            }
            assert.ElementsMatch(t, tc.fields, keys)
        })
    }
}

func TestCreateInvoice(t *testing.T) {
    store := &fakeStore{}
    views := &recordingInvalidator{}
    s := newTestService(store, views)

    res := s.CreateInvoice(context.Background(), InvoiceInput{CustomerID: "c1", Amount: "12.34", Status: "paid"})
    assert.Equal(t, Result{Kind: KindRedirect, Target: InvoicesView}, res)
    require.Len(t, store.created, 1)
    assert.Equal(t, model.Invoice{ID: "generated", CustomerID: "c1", Amount: 1234, Status: model.StatusPaid, Date: "2023-06-15"}, store.created[0])
    assert.Equal(t, []string{InvoicesView}, views.paths)
}

func TestCreateInvoice_ValidationWritesNothing(t *testing.T) {
    store := &fakeStore{}
    views := &recordingInvalidator{}
    s := newTestService(store, views)

    res := s.CreateInvoice(context.Background(), InvoiceInput{Amount: "0"})
    assert.Equal(t, KindValidation, res.Kind)
    assert.Equal(t, MsgMissingCreate, res.Message)
    assert.Equal(t, []string{MsgSelectCustomer}, res.Errors["customerId"])
    assert.Equal(t, []string{MsgAmountPositive}, res.Errors["amount"])
    assert.Equal(t, []string{MsgSelectStatus}, res.Errors["status"])
    assert.False(t, res.Succeeded())
    assert.Empty(t, store.created)
    assert.Empty(t, views.paths)
}

func TestMutations_StoreError(t *testing.T) {
    store := &fakeStore{err: repository.ErrCreateInvoice}
    views := &recordingInvalidator{}
    s := newTestService(store, views)
    ctx := context.Background()
    good := InvoiceInput{CustomerID: "c1", Amount: "1", Status: "pending"}

    assert.Equal(t, Result{Kind: KindStoreError, Message: MsgStoreCreate}, s.CreateInvoice(ctx, good))
    assert.Equal(t, Result{Kind: KindStoreError, Message: MsgStoreUpdate}, s.UpdateInvoice(ctx, "x", good))
    assert.Equal(t, Result{Kind: KindStoreError, Message: MsgStoreDelete}, s.DeleteInvoice(ctx, "x"))
    assert.Empty(t, views.paths)
}

func TestUpdateAndDeleteInvoice(t *testing.T) {
    store := &fakeStore{}
    views := &recordingInvalidator{}
    s := newTestService(store, views)
    ctx := context.Background()

    res := s.UpdateInvoice(ctx, "inv-1", InvoiceInput{CustomerID: "c2", Amount: "5", Status: "pending"})
    assert.Equal(t, KindRedirect, res.Kind)
    assert.Equal(t, []model.Invoice{{ID: "inv-1", CustomerID: "c2", Amount: 500, Status: model.StatusPending}}, store.updated)

    res = s.UpdateInvoice(ctx, "inv-1", InvoiceInput{CustomerID: "c2", Amount: "5", Status: "void"})
    assert.Equal(t, KindValidation, res.Kind)
    assert.Equal(t, MsgMissingUpdate, res.Message)

    res = s.DeleteInvoice(ctx, "inv-1")
    assert.Equal(t, Result{Kind: KindOK, Message: MsgDeleted}, res)
    assert.True(t, res.Succeeded())
    assert.Equal(t, []string{"inv-1"}, store.deleted)
    assert.Equal(t, []string{InvoicesView, InvoicesView}, views.paths)
}

func TestInvalidationFailureIsLoggedOnly(t *testing.T) {
    log, hook := logtest.NewNullLogger()
    views := &recordingInvalidator{err: errors.New("redis down")}
    s := NewInvoiceService(&fakeStore{}, views, log)

    res := s.DeleteInvoice(context.Background(), "x")
    assert.Equal(t, KindOK, res.Kind)
    require.NotNil(t, hook.LastEntry())
    assert.Equal(t, "view invalidation failed", hook.LastEntry().Message)
}

func TestInvalidators_FanOut(t *testing.T) {
    a := &recordingInvalidator{}
    b := &recordingInvalidator{err: errors.New("broker down")}
    c := &recordingInvalidator{}

    err := Invalidators{a, b, nil, c}.InvalidateView(context.Background(), "/x")
    assert.EqualError(t, err, "broker down")
    assert.Equal(t, []string{"/x"}, a.paths)
    assert.Equal(t, []string{"/x"}, c.paths)

    assert.NoError(t, Invalidators{}.InvalidateView(context.Background(), "/x"))
    assert.NoError(t, NopInvalidator{}.InvalidateView(context.Background(), "/x"))
}

func TestCreateInvoice_PersistsOneRow(t *testing.T) {
    db := testutil.NewDB(t)
    testutil.SeedCustomers(t, db)
    log, _ := logtest.NewNullLogger()
    repo := repository.NewInvoiceRepo(db, log)
    s := newTestService(repo, nil)
    ctx := context.Background()

    res := s.CreateInvoice(ctx, InvoiceInput{CustomerID: testutil.LeeRobinsonID, Amount: "203.48", Status: "pending"})
    require.Equal(t, KindRedirect, res.Kind)

    var (
        n      int
        amount int64
        date   string
    )
    require.NoError(t, db.QueryRow(`SELECT COUNT(*), MAX(amount), MAX(date) FROM invoices`).Scan(&n, &amount, &date))
    assert.Equal(t, 1, n)
    assert.Equal(t, int64(20348), amount)
    assert.Equal(t, "2023-06-15", date)

    var id string
    require.NoError(t, db.QueryRow(`SELECT id FROM invoices`).Scan(&id))
    assert.Equal(t, KindOK, s.DeleteInvoice(ctx, id).Kind)
    _, err := repo.FetchInvoiceByID(ctx, id)
    assert.ErrorIs(t, err, repository.ErrInvoiceNotFound)
    assert.ErrorIs(t, db.QueryRow(`SELECT id FROM invoices`).Scan(&id), sql.ErrNoRows)
}

func TestCreateInvoice_UnknownCustomerIsStoreError(t *testing.T) {
    db := testutil.NewDB(t)
    testutil.SeedCustomers(t, db)
    log, _ := logtest.NewNullLogger()
    views := &recordingInvalidator{}
    s := newTestService(repository.NewInvoiceRepo(db, log), views)

    res := s.CreateInvoice(context.Background(), InvoiceInput{CustomerID: "no-such-customer", Amount: "10", Status: "paid"})
    assert.Equal(t, KindStoreError, res.Kind)
    assert.Equal(t, MsgStoreCreate, res.Message)
    assert.Empty(t, views.paths)

    var n int
    require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM invoices`).Scan(&n))
    assert.Zero(t, n)
}

type failingUsers struct{}

func (failingUsers) GetByEmail(context.Context, string) (model.User, error) {
    return model.User{}, repository.ErrFetchUser
}

func TestAuthenticate(t *testing.T) {
    db := testutil.NewDB(t)
    testutil.InsertUser(t, db, "410544b2-4001-4271-9855-fec4b6a6442a", "User", "user@nextmail.com", "123456")
    log, _ := logtest.NewNullLogger()
    auth := NewAuthService(repository.NewUserRepo(db, log), "test-secret", 30, log)
    ctx := context.Background()

    sess, tok, err := auth.Authenticate(ctx, "user@nextmail.com", "123456")
    require.NoError(t, err)
    assert.Equal(t, "User", sess.Name)
    parsed, err := utils.ParseSessionToken("test-secret", tok.Token)
    require.NoError(t, err)
    assert.Equal(t, sess, parsed)

    for _, tc := range []struct{ email, password string }{
        {"user@nextmail.com", "wrong"},
        {"user@nextmail.com", "1234567"},
        {"nouser@x.com", "123456"},
        {"not-an-email", "123456"},
        {"User <user@nextmail.com>", "123456"},
    } {
        _, _, err := auth.Authenticate(ctx, tc.email, tc.password)
        assert.ErrorIs(t, err, ErrInvalidCredentials, tc.email+" / "+tc.password)
    }

    broken := NewAuthService(failingUsers{}, "test-secret", 30, log)
    _, _, err = broken.Authenticate(ctx, "user@nextmail.com", "123456")
    assert.ErrorIs(t, err, ErrSomethingWentWrong)
}
