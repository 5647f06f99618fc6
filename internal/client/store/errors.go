package store

import (
	"errors"

	apiclient "github.com/salafuz/admin-panel/internal/client/api"
	"github.com/salafuz/admin-panel/internal/validation"
)

// Error is a failed store operation as shown to the user.
// Message is the server message when present, else the per-operation default.
type Error struct {
	Err     error
	Fields  map[string]string
	Op      string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// newError builds the user facing error of op from err
func newError(op, defaultMsg string, err error) *Error {
	e := &Error{Op: op, Err: err, Message: defaultMsg}

	var verr *validation.Error
	if errors.As(err, &verr) {
		e.Fields = verr.Fields
		e.Message = verr.Error()
		return e
	}

	if fields := apiclient.FieldErrors(err); len(fields) > 0 {
		e.Fields = fields
	}
	if msg := apiclient.Message(err); msg != "" {
		e.Message = msg
	}

	return e
}
