package sheet

import "fmt"

// NetworkError covers transport failures, timeouts, and non-2xx
// responses. It is never retried internally; the caller decides whether
// to retry via an explicit user-triggered refresh or re-submit.
type NetworkError struct {
	Op     string // "fetch" or "submit"
	Status int    // HTTP status, 0 for transport failures
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("sheet %s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("sheet %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// MalformedResponseError reports a GET payload that is not a JSON array
// of row objects. Presented to users like a network failure: the error
// is surfaced and the previous history is left untouched.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("sheet fetch: malformed response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
