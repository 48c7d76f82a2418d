package forms

import (
	"github.com/go-openapi/errors"
)

// ErrorMessages flattens a (possibly composite) validation error into the
// human readable messages it carries.
func ErrorMessages(err error) []string {
	msgs := make([]string, 0)
	if err == nil {
		return msgs
	}
	switch e := err.(type) {
	case *errors.CompositeError:
		for _, inner := range e.Errors {
			msgs = append(msgs, ErrorMessages(inner)...)
		}
	default:
		msgs = append(msgs, e.Error())
	}
	return msgs
}

type errorList []error

func (l *errorList) add(v *errors.Validation) {
	if v != nil {
		*l = append(*l, v)
	}
}

func (l errorList) err() error {
	if len(l) == 0 {
		return nil
	}
	return errors.CompositeValidationError(l...)
}
