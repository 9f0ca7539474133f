package token

import "fmt"

// ErrorKind classifies an Error. Errors the lexer, parser, evaluator and
// function library construct themselves name one of these kinds; failures
// passed up from value conversion (internal/coerce), base64 decoding,
// uuid5 namespace parsing and regex compilation are plain Go errors with
// no kind.
type ErrorKind string

// The fixed set of error kinds the engine ever produces.
const (
	KindLex                ErrorKind = "lex"
	KindParse              ErrorKind = "parse"
	KindPredicatePlacement ErrorKind = "predicate-placement"
	KindArity              ErrorKind = "arity"
	KindType               ErrorKind = "type"
	KindCharset            ErrorKind = "charset"
	KindParseFailed        ErrorKind = "parse-failed"
	KindAlgorithm          ErrorKind = "algorithm"
	KindNoWriteback        ErrorKind = "no-writeback"
)

// Error is a reusable error for problems encountered during lexing,
// parsing, or evaluation of a Record Path.
type Error struct {
	Kind     ErrorKind
	Position Position // zero value for errors with no source position (evaluation errors)
	Message  string
	Cause    error
}

// Error implements error.
func (e *Error) Error() string {
	if e.Position.IsValid() {
		return fmt.Sprintf("%s: %s: %s", e.Position, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is/errors.As to see through to Cause.
func (e *Error) Unwrap() error { return e.Cause }

// ErrorList is a list of *Error, used to aggregate every problem found
// while compiling a path so a host can report more than the first.
type ErrorList []*Error

// Add appends a new Error to the list.
func (l *ErrorList) Add(e *Error) { *l = append(*l, e) }

// Err returns the list as an error, or nil if the list is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Error implements error.
func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0].Error(), len(l)-1)
}
