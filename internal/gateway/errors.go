package gateway

import (
	"fmt"
	"strings"
)

// TransportError is the single failure kind surfaced by the gateway. It
// covers network failures, non-2xx responses and undecodable bodies alike.
type TransportError struct {
	Op         string // list, get, create, update, delete
	Method     string
	URL        string
	RequestID  string // value sent in the X-Request-Id header
	StatusCode int    // 0 when no response was received
	Body       string // trimmed response body for non-2xx replies
	Err        error
}

func (e *TransportError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s todos: %s %s", e.Op, e.Method, e.URL)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Body != "" {
		fmt.Fprintf(&b, ": %s", e.Body)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *TransportError) Unwrap() error { return e.Err }
