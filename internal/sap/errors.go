package sap

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSessionTimeout is returned when no new session identifier appears on
// the connection within the session-discovery deadline. The engine gives no
// completion signal for session creation, so timing out is the only way the
// poll can fail; it is surfaced distinctly instead of handing back a stale
// handle.
var ErrSessionTimeout = errors.New("sap: timed out waiting for new session")

// NotFoundError is returned when a locator fragment matches no widget.
type NotFoundError struct {
	Fragment string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no element found with id containing %q", e.Fragment)
}

// AmbiguousMatchError is returned when a fragment that must be unique
// matches more than one widget.
type AmbiguousMatchError struct {
	Fragment string
	Matches  []string
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("more than one element found with id containing %q: %s",
		e.Fragment, strings.Join(e.Matches, ", "))
}

// ArityMismatchError is returned by UpdateFields when the field and value
// lists differ in length. No widget has been touched when it is returned.
type ArityMismatchError struct {
	Fields int
	Values int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("got %d fields but %d values; provide the same number of each", e.Fields, e.Values)
}

// UnsupportedTypeError is returned by Table for widgets that are neither a
// table control nor a grid view.
type UnsupportedTypeError struct {
	TypeTag string
	Text    string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("%s (%q) is not a supported table widget", e.TypeTag, e.Text)
	}
	return fmt.Sprintf("%s is not a supported table widget", e.TypeTag)
}

// TransactionError wraps a failure while opening or closing a transaction,
// naming the attempted transaction code.
type TransactionError struct {
	Code string
	Err  error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction %q could not be opened; the code may not exist or the connection may be broken: %v", e.Code, e.Err)
}

func (e *TransactionError) Unwrap() error { return e.Err }
