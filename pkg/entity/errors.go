package entity

import (
	"errors"
	"fmt"
)

var ErrRequired = fmt.Errorf("required field missing")
var ErrUnsupportedStore = fmt.Errorf("unsupported store")

type fieldError struct {
	msg    string
	field  string
	target error
}

func (f fieldError) Error() string        { return f.msg }
func (f fieldError) Is(target error) bool { return target == f.target }

// NewRequiredError is returned by the strict accessors when a field has no
// value that can be coerced to the requested type
func NewRequiredError(field string) error {
	return &fieldError{
		msg:    fmt.Sprintf("%s is required", field),
		field:  field,
		target: ErrRequired,
	}
}

func newUnsupportedStoreError(want string, got any) error {
	return &fieldError{
		msg:    fmt.Sprintf("unsupported store %T, expected %s", got, want),
		target: ErrUnsupportedStore,
	}
}

// FieldName extracts the name of the missing field from an error returned by
// one of the strict accessors
func FieldName(err error) (string, bool) {
	var fe *fieldError
	if errors.As(err, &fe) && fe.field != "" {
		return fe.field, true
	}
	return "", false
}
