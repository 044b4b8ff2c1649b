package verifier

import (
	"fmt"
	"strings"
	"time"
)

// TransportError means no HTTP response was received: the connection failed, or the request
// timed out. It is never reported as a status mismatch.
type TransportError struct {
	Method  string
	URL     string
	Timeout time.Duration // non-zero if the request was abandoned because it took too long
	Err     error
}

func (e *TransportError) Error() string {
	if e.Timeout > 0 {
		return fmt.Sprintf("%s %s: no response within %s: %s", e.Method, e.URL, e.Timeout, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// TimedOut reports whether the request hit its deadline.
func (e *TransportError) TimedOut() bool { return e.Timeout > 0 }

const maxBodyExcerpt = 200

// DecodeError means a body that should have been JSON could not be parsed.
type DecodeError struct {
	ContentType string
	Body        []byte
	Err         error
}

func (e *DecodeError) Error() string {
	excerpt := string(e.Body)
	if len(excerpt) > maxBodyExcerpt {
		excerpt = excerpt[:maxBodyExcerpt] + "..."
	}
	return fmt.Sprintf("response body is not valid JSON (Content-Type %q): %s; body was %q", e.ContentType, e.Err, excerpt)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Check names one of the independent checks made on a response.
type Check string

const (
	CheckStatus  Check = "status"
	CheckHeader  Check = "header"
	CheckLatency Check = "latency"
	CheckBody    Check = "body"
)

// AssertionMismatch is a failed check, with enough detail to diagnose it without re-running.
type AssertionMismatch struct {
	Check    Check
	Key      string // header name, for CheckHeader
	Expected string
	Actual   string
	Detail   string
}

func (m *AssertionMismatch) Error() string {
	var b strings.Builder
	b.WriteString(string(m.Check))
	if m.Key != "" {
		b.WriteString(" " + m.Key)
	}
	fmt.Fprintf(&b, ": got %s want %s", m.Actual, m.Expected)
	if m.Detail != "" {
		b.WriteString(" (" + m.Detail + ")")
	}
	return b.String()
}
