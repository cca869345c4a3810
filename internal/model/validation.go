package model

// FieldErrors maps a form field name to the messages explaining why its
// value was rejected.  An empty map means the input is valid.
type FieldErrors map[string][]string

// Add appends msg to the messages recorded for field.
func (f FieldErrors) Add(field, msg string) {
    f[field] = append(f[field], msg)
}

// Empty reports whether no field has been rejected.
func (f FieldErrors) Empty() bool { return len(f) == 0 }
