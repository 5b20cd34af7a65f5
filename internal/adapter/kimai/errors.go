package kimai

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed API call so callers can decide how to
// present it without matching on status codes themselves.
type ErrorKind string

const (
	// KindAuthentication covers 401 and 403 responses.
	KindAuthentication ErrorKind = "authentication"
	// KindNotFound covers 404 responses.
	KindNotFound ErrorKind = "not_found"
	// KindUpstream covers every other non-2xx response, including 2xx
	// responses whose body is not JSON.
	KindUpstream ErrorKind = "upstream"
	// KindNetwork covers transport failures where no HTTP response was
	// received at all.
	KindNetwork ErrorKind = "network"
)

// APIError is returned by Client.Request for every failed call. Status
// holds the upstream HTTP status (0 for network failures), Detail the
// message extracted from the upstream body, and Hint a short suggestion
// for fixing the most likely cause.
type APIError struct {
	Kind   ErrorKind
	Status int
	Detail string
	Hint   string
	Err    error
}

func (e *APIError) Error() string {
	var msg string
	switch e.Kind {
	case KindNetwork:
		msg = fmt.Sprintf("kimai: network error: %v", e.Err)
	case KindAuthentication:
		msg = fmt.Sprintf("kimai: authentication rejected (status %d)", e.Status)
	case KindNotFound:
		msg = fmt.Sprintf("kimai: not found (status %d)", e.Status)
	default:
		msg = fmt.Sprintf("kimai: unexpected status %d", e.Status)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

func (e *APIError) Unwrap() error { return e.Err }

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

func classifyStatus(status int, detail string) *APIError {
	e := &APIError{Status: status, Detail: detail}
	switch status {
	case 401, 403:
		e.Kind = KindAuthentication
		e.Hint = "check that the API token is valid and has API access enabled"
	case 404:
		e.Kind = KindNotFound
		e.Hint = "verify the requested id exists"
	default:
		e.Kind = KindUpstream
		e.Hint = "check the request parameters and try again"
	}
	return e
}

func networkError(err error, baseURL string) *APIError {
	return &APIError{
		Kind: KindNetwork,
		Err:  err,
		Hint: fmt.Sprintf("verify the Kimai instance at %s is reachable", baseURL),
	}
}
