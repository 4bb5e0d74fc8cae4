package chart

import (
	"errors"
	"fmt"
)

// NotFoundError reports a query that matched zero entries. The original
// query string is always carried back to the caller.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no chart entries match %q", e.Query)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ErrDataUnavailable signals a query against a dataset that was never
// loaded (e.g. the optional albums chart). The feature degrades; the
// process does not crash.
var ErrDataUnavailable = errors.New("chart dataset not loaded")
