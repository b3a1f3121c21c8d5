package flatfile

import "errors"

var (
	// ErrHitEnd is the scan control signal: no row satisfied the predicate
	// before the scan boundary was reached. It is not a user-facing failure
	// by itself, each operation reinterprets it.
	ErrHitEnd = errors.New("flatfile: hit end of data")

	// ErrNotFound is the domain outcome for a key that has no occupied row.
	ErrNotFound = errors.New("flatfile: item not found")

	ErrIncompleteRead  = errors.New("flatfile: incomplete read")
	ErrIncompleteWrite = errors.New("flatfile: incomplete write")
	ErrOutOfRange      = errors.New("flatfile: scan start out of range")
	ErrFilenameTooLong = errors.New("flatfile: filename too long")

	// ErrSortedMode is returned by every operation on a store opened in
	// sorted mode. Sorted mode is a reserved extension point, it has no
	// implementation yet and fails fast instead of degrading silently.
	ErrSortedMode = errors.New("flatfile: sorted mode is not implemented")
)
