package errors

import "fmt"

// NewHTTPError classifies a non-2xx response for an operation. The body
// is kept for logging only; callers never parse it.
func NewHTTPError(statusCode int, body string, operation string) *ClassifiedError {
	return &ClassifiedError{
		Category:   categoryFor(statusCode),
		StatusCode: statusCode,
		Body:       body,
		Underlying: fmt.Errorf("%s: status %d", operation, statusCode),
	}
}

// NewNetworkError classifies a transport-level failure. Always
// recoverable; the request may succeed on retry.
func NewNetworkError(operation string, err error) *ClassifiedError {
	return &ClassifiedError{
		Category:   Recoverable,
		Underlying: fmt.Errorf("%s: %w", operation, err),
	}
}

func categoryFor(statusCode int) Category {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case 408, 429:
			return Recoverable
		default:
			return Irrecoverable
		}
	default:
		// 5xx and anything unexpected: assume transient.
		return Recoverable
	}
}
