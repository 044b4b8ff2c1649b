package verifier

import (
	"errors"
	"net/http"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Outcome classifies a Verdict.
type Outcome int

const (
	Pass Outcome = iota
	Fail
	TransportFailure
	DecodeFailure
)

func (o Outcome) String() string {
	switch o {
	case Pass:
		return "pass"
	case Fail:
		return "fail"
	case TransportFailure:
		return "transport error"
	case DecodeFailure:
		return "decode error"
	default:
		return "unknown"
	}
}

// Exchange is what was sent and received for one expectation.
type Exchange struct {
	Method      string
	URL         string
	RequestID   string
	RequestBody []byte
	Status      int
	Header      http.Header
	Body        []byte
	Latency     time.Duration
}

// Verdict is the result of evaluating one Expectation against a live response.
type Verdict struct {
	Expectation Expectation
	Exchange

	// DecodedBody is the JSON body, or null if the body was empty, not JSON, or unparseable.
	DecodedBody ldvalue.Value

	Outcome Outcome

	// Failures holds every failed check in evaluation order: status, headers, latency, body.
	// A transport error is the only failure when there is one.
	Failures []error
}

// OK is true if every check passed.
func (v Verdict) OK() bool {
	return v.Outcome == Pass
}

// Reason returns the first failure, or nil if the verdict passed.
func (v Verdict) Reason() error {
	if len(v.Failures) == 0 {
		return nil
	}
	return v.Failures[0]
}

func outcomeOf(failures []error) Outcome {
	if len(failures) == 0 {
		return Pass
	}
	var te *TransportError
	var de *DecodeError
	switch {
	case errors.As(failures[0], &te):
		return TransportFailure
	case errors.As(failures[0], &de):
		return DecodeFailure
	default:
		return Fail
	}
}
