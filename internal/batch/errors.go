package batch

import (
	"errors"
	"fmt"
)

// ErrDuplicateSlug marks a record whose slug was already claimed by an
// earlier record of the same batch.
var ErrDuplicateSlug = errors.New("duplicate slug")

// ErrUnsafeSlug marks a slug that cannot be used as a file name.
var ErrUnsafeSlug = errors.New("slug is not a plain file name")

// RecordError reports a failure confined to one record of a batch.
type RecordError struct {
	// Position is the 1-based index of the record in the task file.
	Position int
	Slug     string
	Err      error
}

func (e *RecordError) Error() string {
	if e.Slug != "" {
		return fmt.Sprintf("record %d (%s): %v", e.Position, e.Slug, e.Err)
	}
	return fmt.Sprintf("record %d: %v", e.Position, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// IsRecordError reports whether err is confined to a single record.
// Uses errors.As to handle wrapped errors.
func IsRecordError(err error) bool {
	var re *RecordError
	return errors.As(err, &re)
}
