package service

import (
    "context"
    "errors"
)

// InvoicesView is the listing route whose rendered form is dropped after
// every invoice mutation.
const InvoicesView = "/dashboard/invoices"

// ViewInvalidator drops whatever cached representation of a route exists.
// The local Redis view store and the AMQP publisher both implement it.
type ViewInvalidator interface {
    InvalidateView(ctx context.Context, path string) error
}

// Invalidators fans one invalidation out to every member.  All members are
// tried; their errors are joined.
type Invalidators []ViewInvalidator

func (is Invalidators) InvalidateView(ctx context.Context, path string) error {
    var errs []error
    for _, inv := range is {
        if inv == nil {
            continue
        }
        if err := inv.InvalidateView(ctx, path); err != nil {
            errs = append(errs, err)
        }
    }
    return errors.Join(errs...)
}

// NopInvalidator is used when neither Redis nor the broker is configured.
type NopInvalidator struct{}

func (NopInvalidator) InvalidateView(context.Context, string) error { return nil }
