// Package validation holds the shared struct validator.  Rules live in
// `validate` struct tags; failures are reported under the field's form
// (or json) name so they line up with the submitted input.
package validation

import (
    "errors"
    "reflect"
    "strings"
    "time"

    "github.com/go-playground/validator/v10"

    "github.com/iliyamo/invoice-dashboard/internal/model"
)

var std = newValidate()

func newValidate() *validator.Validate {
    v := validator.New(validator.WithRequiredStructEnabled())
    v.RegisterTagNameFunc(fieldName)
    // enum: the field's type lists its accepted values in Valid().
    _ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
        e, ok := fl.Field().Interface().(interface{ Valid() bool })
        return ok && e.Valid()
    })
    // clock: HH:MM or HH:MM:SS.
    _ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
        s := fl.Field().String()
        for _, layout := range []string{"15:04:05", "15:04"} {
            if _, err := time.Parse(layout, s); err == nil {
                return true
            }
        }
        return false
    })
    return v
}

func fieldName(f reflect.StructField) string {
    for _, key := range []string{"form", "json"} {
        name, _, _ := strings.Cut(f.Tag.Get(key), ",")
        if name == "-" {
            return ""
        }
        if name != "" {
            return name
        }
    }
    return f.Name
}

// Struct validates s against its `validate` tags.
func Struct(s any) error { return std.Struct(s) }

// Var validates a single value against tag.
func Var(field any, tag string) error { return std.Var(field, tag) }

// EchoValidator plugs the shared validator into echo.Context.Validate.
type EchoValidator struct{}

func (EchoValidator) Validate(i interface{}) error { return std.Struct(i) }

// Fields turns a validation failure into per-field messages.  messages maps
// a field name to the text shown for it; fields without an entry get a
// generic message naming the failed rule.  A nil err yields an empty map.
func Fields(err error, messages map[string]string) model.FieldErrors {
    errs := model.FieldErrors{}
    if err == nil {
        return errs
    }
    var verrs validator.ValidationErrors
    if !errors.As(err, &verrs) {
        errs.Add("form", err.Error())
        return errs
    }
    for _, fe := range verrs {
        field := fe.Field()
        if _, seen := errs[field]; seen {
            continue
        }
        if msg, ok := messages[field]; ok {
            errs.Add(field, msg)
        } else {
            errs.Add(field, "Invalid value ("+fe.Tag()+").")
        }
    }
    return errs
}
