package storefront

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by Cart, Wishlist and Client matches
// exactly one of these with errors.Is.
var (
	ErrUnauthenticated = errors.New("sign in required")
	ErrRequestFailed   = errors.New("request failed")
	ErrUpstream        = errors.New("payment processor error")
	ErrMisconfigured   = errors.New("payments are not configured")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrDuplicateItem   = errors.New("item already in wishlist")
)

// Error describes a failed storefront operation.
type Error struct {
	Op      string // e.g. "cart.add"
	Kind    error  // one of the Err* kinds above
	Status  int    // HTTP status, 0 when no response was received
	Message string // server-provided message, if any
	Err     error  // underlying transport or decode error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func newError(op string, kind error) *Error {
	return &Error{Op: op, Kind: kind}
}

// asError returns err as an *Error for op, classifying foreign errors as
// ErrRequestFailed.
func asError(op string, err error) *Error {
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	return &Error{Op: op, Kind: ErrRequestFailed, Err: err}
}
