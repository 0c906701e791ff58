package regulations

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Sentinel errors. Every *APIError unwraps to exactly one of the first six.
var (
	// ErrIncorrectIDPattern indicates the identifier does not match the pattern the API requires
	ErrIncorrectIDPattern = errors.New("identifier does not match the required pattern")
	// ErrIncorrectAPIKey indicates the API key is missing or was rejected
	ErrIncorrectAPIKey = errors.New("API key is missing or invalid")
	// ErrBadDocketID indicates the docket ID is well formed but does not exist
	ErrBadDocketID = errors.New("docket not found")
	// ErrBadDocID indicates the document ID is well formed but does not exist
	ErrBadDocID = errors.New("document not found")
	// ErrExceedCallLimit indicates the API key has exhausted its call quota
	ErrExceedCallLimit = errors.New("API call limit exceeded")
	// ErrUnexpectedStatus indicates a status code the API does not document
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrInvalidResponse indicates a successful response could not be decoded
	ErrInvalidResponse = errors.New("invalid response from regulations API")
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid regulations client configuration")
)

// Kind classifies a failed response
type Kind int

const (
	KindUnexpectedStatus Kind = iota
	KindIncorrectIDPattern
	KindIncorrectAPIKey
	KindBadID
	KindExceedCallLimit
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindIncorrectIDPattern:
		return "IncorrectIDPattern"
	case KindIncorrectAPIKey:
		return "IncorrectApiKey"
	case KindBadID:
		return "BadID"
	case KindExceedCallLimit:
		return "ExceedCallLimit"
	default:
		return "UnexpectedStatus"
	}
}

// sentinel resolves the kind to its sentinel error for the given resource
func (k Kind) sentinel(r Resource) error {
	switch k {
	case KindIncorrectIDPattern:
		return ErrIncorrectIDPattern
	case KindIncorrectAPIKey:
		return ErrIncorrectAPIKey
	case KindBadID:
		if r.notFound != nil {
			return r.notFound
		}
		return ErrUnexpectedStatus
	case KindExceedCallLimit:
		return ErrExceedCallLimit
	default:
		return ErrUnexpectedStatus
	}
}

// statusKinds is the status table shared by every resource, in priority order.
var statusKinds = []struct {
	status int
	kind   Kind
}{
	{http.StatusBadRequest, KindIncorrectIDPattern},
	{http.StatusForbidden, KindIncorrectAPIKey},
	{http.StatusNotFound, KindBadID},
	{http.StatusTooManyRequests, KindExceedCallLimit},
}

// KindForStatus returns the error kind for a status code. failed is false
// for 2xx codes, which never produce an error.
func KindForStatus(status int) (kind Kind, failed bool) {
	for _, entry := range statusKinds {
		if entry.status == status {
			return entry.kind, true
		}
	}
	if status >= 200 && status < 300 {
		return KindUnexpectedStatus, false
	}
	return KindUnexpectedStatus, true
}

// APIError represents a failed regulations API response
type APIError struct {
	Resource   Resource
	ID         string
	StatusCode int
	Kind       Kind
	Body       string
	// RetryAfter is the server's Retry-After hint on a 429, zero otherwise.
	// The client never waits on it.
	RetryAfter time.Duration
}

// Error implements the error interface
func (e *APIError) Error() string {
	msg := fmt.Sprintf("regulations: %s %q: %s (status %d)", e.Resource, e.ID, e.Unwrap(), e.StatusCode)
	if e.RetryAfter > 0 {
		msg += fmt.Sprintf(", retry after %s", e.RetryAfter)
	}
	return msg
}

// Unwrap returns the sentinel for the error kind
func (e *APIError) Unwrap() error {
	return e.Kind.sentinel(e.Resource)
}

// IsNotFound checks if the identifier did not resolve to a record
func (e *APIError) IsNotFound() bool {
	return e.Kind == KindBadID
}

// IsRateLimited checks if the call quota was exhausted
func (e *APIError) IsRateLimited() bool {
	return e.Kind == KindExceedCallLimit
}

// classify converts a response into an *APIError, or nil for 2xx codes
func classify(r Resource, id string, status int, header http.Header, body []byte) error {
	kind, failed := KindForStatus(status)
	if !failed {
		return nil
	}

	apiErr := &APIError{
		Resource:   r,
		ID:         id,
		StatusCode: status,
		Kind:       kind,
		Body:       string(body),
	}
	if kind == KindExceedCallLimit {
		apiErr.RetryAfter = parseRetryAfter(header.Get("Retry-After"))
	}
	return apiErr
}

// parseRetryAfter parses the Retry-After header value.
// It handles both seconds (integer) and HTTP-date formats.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}

	if seconds, err := strconv.ParseInt(value, 10, 64); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	if t, err := http.ParseTime(value); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}

	return 0
}
