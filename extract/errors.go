// Package extract recognizes well-known directive patterns inside a
// parsed ast.Config and produces typed, domain-specific records:
// server blocks, listen directives, locations, access/error logs and
// log formats. Extraction is pure: it never mutates the Config it
// walks, and calling an extractor twice on the same Config yields
// equal results.
package extract

import (
	"fmt"

	"github.com/urwithajit9/nginx-discovery/token"
	"go.uber.org/multierr"
)

// ErrorKind tags the fixed set of ways a single directive can fail
// extraction. A failure never aborts extraction of the rest of the
// tree by default (see Option/WithStrict); the error is reported
// alongside the records that did extract. For a failure the offending
// record is omitted; an advisory warning (UnrecognizedLevel, or the
// InvalidListen hostname check in Listens) keeps the record.
type ErrorKind int

const (
	// InvalidListen means a listen directive's endpoint or a key=value
	// flag couldn't be parsed (bad port, unparsable backlog, ...).
	InvalidListen ErrorKind = iota
	// MalformedLogFormat means a log_format directive didn't have the
	// minimum shape of a name followed by a pattern.
	MalformedLogFormat
	// MissingArgument means a directive that requires at least one
	// argument (e.g. listen, access_log) had none.
	MissingArgument
	// UnrecognizedLevel means a directive's severity-level argument
	// (e.g. error_log's second arg) isn't one of the known values. The
	// record is still produced with the value recorded as-is; this is
	// advisory, not fatal.
	UnrecognizedLevel
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidListen:
		return "invalid listen directive"
	case MalformedLogFormat:
		return "malformed log_format directive"
	case MissingArgument:
		return "missing argument"
	case UnrecognizedLevel:
		return "unrecognized severity level"
	default:
		return "extract error"
	}
}

// Error is a single directive's extraction failure.
type Error struct {
	Kind      ErrorKind
	Directive string
	Position  token.Position
	Cause     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%s) at %s: %s", e.Kind, e.Directive, e.Position, e.Cause)
}

func newError(kind ErrorKind, directive string, pos token.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Directive: directive, Position: pos, Cause: fmt.Sprintf(format, args...)}
}

// Combine folds a slice of per-directive warnings into a single error
// using go.uber.org/multierr, so callers can use errors.Is/errors.As
// over the whole batch instead of hand-rolling a join. It returns nil
// for an empty or all-nil slice.
func Combine(warnings []error) error {
	return multierr.Combine(warnings...)
}
