package directory

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned before any network call when the directory
// credential is not configured.
var ErrMissingAPIKey = errors.New("directory: api key not configured")

// DirectoryError carries the upstream status and body for diagnostics when
// the positions API answers with a non-success status.
type DirectoryError struct {
	StatusCode int
	Body       string
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("directory: api request failed: status %d: %s", e.StatusCode, e.Body)
}

// IsDirectoryError reports whether err wraps an upstream directory failure.
func IsDirectoryError(err error) bool {
	var de *DirectoryError
	return errors.As(err, &de)
}
