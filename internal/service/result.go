package service

import "github.com/iliyamo/invoice-dashboard/internal/model"

// ResultKind tags the outcome of an invoice mutation.
type ResultKind int

const (
    // KindRedirect: the write succeeded and the caller should move to Target.
    KindRedirect ResultKind = iota + 1
    // KindOK: the write succeeded and Message confirms it.
    KindOK
    // KindValidation: the input was rejected; Errors lists the fields.
    KindValidation
    // KindStoreError: the input was valid but the store refused the write.
    KindStoreError
)

// Result is what every mutation returns instead of jumping to another
// page.  The caller decides how to present it.
type Result struct {
    Kind    ResultKind
    Target  string
    Errors  model.FieldErrors
    Message string
}

func redirect(target string) Result { return Result{Kind: KindRedirect, Target: target} }

func ok(message string) Result { return Result{Kind: KindOK, Message: message} }

func invalid(errs model.FieldErrors, message string) Result {
    return Result{Kind: KindValidation, Errors: errs, Message: message}
}

func storeError(message string) Result { return Result{Kind: KindStoreError, Message: message} }

// Succeeded reports whether the mutation was written.
func (r Result) Succeeded() bool { return r.Kind == KindRedirect || r.Kind == KindOK }
