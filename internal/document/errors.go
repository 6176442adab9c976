package document

import (
	"errors"
	"fmt"
)

// ErrMissingNode is matched by MissingNodeError and MissingAttributeError.
var ErrMissingNode = errors.New("missing node")

// MissingNodeError is returned when a selector that must match does not.
type MissingNodeError struct {
	// Selector is the expression that found nothing.
	Selector string
}

// Error implements the error interface.
func (e *MissingNodeError) Error() string {
	return fmt.Sprintf("no node matches %q", e.Selector)
}

// Is reports whether target is ErrMissingNode.
func (e *MissingNodeError) Is(target error) bool {
	return target == ErrMissingNode
}

// MissingAttributeError is returned when a matched node lacks a required attribute.
type MissingAttributeError struct {
	// Selector is the expression that matched the node.
	Selector string

	// Attr is the attribute that was not present.
	Attr string
}

// Error implements the error interface.
func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("node matching %q has no %q attribute", e.Selector, e.Attr)
}

// Is reports whether target is ErrMissingNode.
func (e *MissingAttributeError) Is(target error) bool {
	return target == ErrMissingNode
}

// SelectorError is returned by CompileSelector for an invalid expression.
type SelectorError struct {
	Expr string
	Err  error
}

// Error implements the error interface.
func (e *SelectorError) Error() string {
	return fmt.Sprintf("invalid selector %q: %v", e.Expr, e.Err)
}

// Unwrap returns the parse error.
func (e *SelectorError) Unwrap() error {
	return e.Err
}

// RowError locates a failure in a table row. Row is 1-based and counts only
// rows that have td cells.
type RowError struct {
	Row int
	Err error
}

// Error implements the error interface.
func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RowError) Unwrap() error {
	return e.Err
}
