package domain

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrUnboundField is returned when a field change carries no state key.
var ErrUnboundField = errors.New("field has no saveInto key")

// ErrExampleNotFound is returned when a library entry does not exist.
var ErrExampleNotFound = errors.New("example not found")

// ErrorKind classifies evaluation failures the way the browser reported them.
type ErrorKind string

const (
	ErrorSyntax    ErrorKind = "SyntaxError"
	ErrorReference ErrorKind = "ReferenceError"
	ErrorType      ErrorKind = "TypeError"
)

// EvaluationError is the single failure kind of a render cycle.
// It is returned as a value; the cycle checks for it explicitly.
type EvaluationError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Line    int       `json:"line,omitempty"`
	Column  int       `json:"column,omitempty"`
}

func (e *EvaluationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %d:%d: %s", e.Kind, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Result is the outcome of evaluating a document: a root node or an error.
// Root may be nil on success when the document evaluates to null.
type Result struct {
	Root *Node
	Err  *EvaluationError
}

// Failed reports whether the result carries an error marker.
func (r Result) Failed() bool {
	return r.Err != nil
}
