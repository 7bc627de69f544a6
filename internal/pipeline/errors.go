package pipeline

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for smart-import failures. Field-extraction misses are never
// errors; only input validation and the url fetch path can fail.
const (
	CodeInvalidInput = "invalid_input"
	CodeRobotsDenied = "robots_denied"
	CodeTimeout      = "fetch_timeout"
	CodeTooLarge     = "content_too_large"
	CodeFetchFailed  = "fetch_failed"
)

// ImportError classifies an import failure with an HTTP-style status so the
// caller can decide whether to retry, inform the user, or suggest pasting
// the text instead. The core itself never retries.
type ImportError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// AsImportError unwraps err into an *ImportError if possible
func AsImportError(err error) (*ImportError, bool) {
	var ie *ImportError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

func errInvalidInput(format string, args ...interface{}) *ImportError {
	return &ImportError{
		Status:  http.StatusBadRequest,
		Code:    CodeInvalidInput,
		Message: fmt.Sprintf(format, args...),
	}
}

func errRobotsDenied(url string) *ImportError {
	return &ImportError{
		Status:  http.StatusForbidden,
		Code:    CodeRobotsDenied,
		Message: fmt.Sprintf("robots.txt disallows fetching %s", url),
	}
}

func errTimeout(url string, err error) *ImportError {
	return &ImportError{
		Status:  http.StatusRequestTimeout,
		Code:    CodeTimeout,
		Message: fmt.Sprintf("fetch timed out for %s", url),
		Err:     err,
	}
}

func errTooLarge(url string, limit int64) *ImportError {
	return &ImportError{
		Status:  http.StatusRequestEntityTooLarge,
		Code:    CodeTooLarge,
		Message: fmt.Sprintf("content exceeds %d bytes for %s", limit, url),
	}
}

func errFetchFailed(url string, err error) *ImportError {
	return &ImportError{
		Status:  http.StatusBadGateway,
		Code:    CodeFetchFailed,
		Message: fmt.Sprintf("fetch failed for %s", url),
		Err:     err,
	}
}
