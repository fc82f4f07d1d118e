// Package dberr defines the two error families the engine distinguishes,
// per the storage engine's error handling design: recoverable errors that
// are returned to and handled by the caller, and fatal errors that name a
// structural impossibility and travel up to the shell's top-level dispatch
// loop, which logs them and returns them to cmd/vqlite to end the process.
//
// Nothing in pager, table, lang, or btree calls os.Exit directly — that
// keeps the engine embeddable and testable. Only cmd/vqlite's shell decides
// to actually terminate.
package dberr

import "github.com/pkg/errors"

// Recoverable is one of the two outcomes a caller of Table.Insert must be
// prepared to handle, per the storage engine's collaborator contract.
type Recoverable int

const (
	// DuplicateKey means the exact id already exists in the tree; the row
	// was not inserted and the tree was not mutated.
	DuplicateKey Recoverable = iota
	// TableFull is the legacy leaf-only-table error, superseded by leaf
	// splitting. The B+tree insert path never returns it; it is kept so
	// the shell's statement dispatch can still exhaustively switch on
	// every historical execute result.
	TableFull
)

func (r Recoverable) Error() string {
	switch r {
	case DuplicateKey:
		return "Duplicate Key"
	case TableFull:
		return "Table full"
	}
	return "unknown recoverable error"
}

// Fatal wraps a structural impossibility: corrupt file length, a page
// number out of bounds, flushing a page that was never loaded, or a leaf
// split on a non-root node (an acknowledged unimplemented boundary). The
// shell hands it to cmd/vqlite, which prints Message and exits; nothing
// downstream of dberr.NewFatal
// recovers from it.
type Fatal struct {
	Message string
	cause   error
}

func (f *Fatal) Error() string { return f.Message }

func (f *Fatal) Unwrap() error { return f.cause }

// NewFatal builds a Fatal with no underlying cause — used for structural
// impossibilities detected directly by the engine (bad page number, corrupt
// file length) rather than surfaced from the filesystem.
func NewFatal(message string) error {
	return &Fatal{Message: message}
}

// WrapFatal annotates an I/O error (open/seek/read/write/close) as fatal,
// keeping the original error reachable through the Unwrap chain
// (errors.Is/errors.As). Fatal has no Cause method, so errors.Cause
// returns the Fatal itself.
func WrapFatal(cause error, message string) error {
	if cause == nil {
		return nil
	}
	return &Fatal{Message: message, cause: errors.WithStack(cause)}
}

// IsFatal reports whether err is (or wraps) a *Fatal.
func IsFatal(err error) bool {
	var f *Fatal
	return errors.As(err, &f)
}
