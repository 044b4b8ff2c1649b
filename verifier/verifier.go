package verifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/contractcheck/reqres-contract-tests/config"
	"github.com/contractcheck/reqres-contract-tests/framework"
	"github.com/contractcheck/reqres-contract-tests/match"
)

// RequestIDHeader carries a unique id on every request, so that a failure can be matched up
// with the service's own logs.
const RequestIDHeader = "X-Request-Id"

const maxLoggedBody = 2000

// Verifier issues the HTTP call for an Expectation and evaluates the response.
//
// A Verifier holds no state between calls other than its configuration and HTTP client, so it
// can be used from several goroutines at once.
type Verifier struct {
	baseURL *url.URL
	timeout time.Duration
	client  *http.Client
	logger  framework.Logger
}

// New creates a Verifier for the base URL and default timeout in cfg. Messages that are not
// associated with a particular test go to logger.
func New(cfg config.Config, logger framework.Logger) (*Verifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Verifier{
		baseURL: cfg.ParsedBaseURL(),
		timeout: cfg.Timeout,
		client:  &http.Client{},
		logger:  logger,
	}, nil
}

// BaseURL returns the configured base URL.
func (v *Verifier) BaseURL() string {
	return v.baseURL.String()
}

// Verify issues exactly one request for the expectation and evaluates every check. It never
// returns an error: transport and decoding problems are reported in the Verdict.
//
// Debug output about the request and response goes to logger, or to the Verifier's own logger
// if logger is nil.
func (v *Verifier) Verify(ctx context.Context, exp Expectation, logger framework.Logger) Verdict {
	if logger == nil {
		logger = v.logger
	}
	if err := exp.Validate(); err != nil {
		return Verdict{
			Expectation: exp,
			DecodedBody: ldvalue.Null(),
			Outcome:     Fail,
			Failures:    []error{err},
		}
	}
	ex, err := v.Do(ctx, exp, logger)
	if err != nil {
		return Verdict{
			Expectation: exp,
			Exchange:    ex,
			DecodedBody: ldvalue.Null(),
			Outcome:     outcomeOf([]error{err}),
			Failures:    []error{err},
		}
	}
	return Evaluate(exp, ex)
}

// Do issues the request for an expectation and returns what was received, without evaluating
// it. The error is a *TransportError if no response arrived.
func (v *Verifier) Do(ctx context.Context, exp Expectation, logger framework.Logger) (Exchange, error) {
	if logger == nil {
		logger = v.logger
	}
	ex := Exchange{
		Method:    exp.Method,
		RequestID: uuid.NewString(),
	}
	target, err := exp.ResolveURL(v.baseURL)
	if err != nil {
		return ex, err
	}
	ex.URL = target

	var body io.Reader
	if !exp.Body.IsNull() {
		ex.RequestBody = []byte(match.JSON(exp.Body))
		body = bytes.NewReader(ex.RequestBody)
	}

	timeout := v.timeout
	if exp.TimeoutMS.IsDefined() {
		timeout = time.Duration(exp.TimeoutMS.IntValue()) * time.Millisecond
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, exp.Method, target, body)
	if err != nil {
		return ex, fmt.Errorf("%w: %s", ErrInvalidExpectation, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(RequestIDHeader, ex.RequestID)

	if exp.Idempotent {
		logger.Printf(">> %s %s (%s)", exp.Method, target, ex.RequestID)
	} else {
		logger.Printf(">> %s %s (%s, not idempotent)", exp.Method, target, ex.RequestID)
	}
	if ex.RequestBody != nil {
		logger.Printf(">> body: %s", ex.RequestBody)
	}

	start := time.Now()
	resp, err := v.client.Do(req)
	if err != nil {
		ex.Latency = time.Since(start)
		return ex, v.transportError(exp, target, timeout, err, logger)
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	ex.Latency = time.Since(start)
	if err != nil {
		return ex, v.transportError(exp, target, timeout, err, logger)
	}

	ex.Status = resp.StatusCode
	ex.Header = resp.Header
	ex.Body = data
	logger.Printf("<< %d after %s, Content-Type %q", ex.Status, ex.Latency, resp.Header.Get("Content-Type"))
	if len(data) > 0 {
		logged := string(data)
		if len(logged) > maxLoggedBody {
			logged = logged[:maxLoggedBody] + "..."
		}
		logger.Printf("<< body: %s", logged)
	}
	return ex, nil
}

func (v *Verifier) transportError(exp Expectation, target string, timeout time.Duration, err error, logger framework.Logger) error {
	te := &TransportError{Method: exp.Method, URL: target, Err: err}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		te.Timeout = timeout
	}
	logger.Printf("<< %s", te)
	return te
}

// Evaluate applies every check of the expectation to an exchange that has already happened.
// The checks are independent and all of them are made; their failures are listed in the
// order status, headers, latency, body.
func Evaluate(exp Expectation, ex Exchange) Verdict {
	verdict := Verdict{
		Expectation: exp,
		Exchange:    ex,
		DecodedBody: ldvalue.Null(),
	}
	var failures []error

	if ex.Status != exp.ExpectedStatus {
		failures = append(failures, &AssertionMismatch{
			Check:    CheckStatus,
			Expected: fmt.Sprint(exp.ExpectedStatus),
			Actual:   fmt.Sprint(ex.Status),
		})
	}

	headerNames := make([]string, 0, len(exp.ExpectedHeaders))
	for name := range exp.ExpectedHeaders {
		headerNames = append(headerNames, name)
	}
	sort.Strings(headerNames)
	for _, name := range headerNames {
		want := exp.ExpectedHeaders[name]
		values := ex.Header.Values(name)
		if len(values) == 0 {
			failures = append(failures, &AssertionMismatch{
				Check:    CheckHeader,
				Key:      name,
				Expected: fmt.Sprintf("%q", want),
				Actual:   "nothing",
				Detail:   "header missing",
			})
			continue
		}
		if got := strings.Join(values, ", "); got != want {
			failures = append(failures, &AssertionMismatch{
				Check:    CheckHeader,
				Key:      name,
				Expected: fmt.Sprintf("%q", want),
				Actual:   fmt.Sprintf("%q", got),
			})
		}
	}

	if exp.MinLatencySeconds.IsDefined() {
		floor := time.Duration(exp.MinLatencySeconds.IntValue()) * time.Second
		if ex.Latency < floor {
			failures = append(failures, &AssertionMismatch{
				Check:    CheckLatency,
				Expected: "at least " + floor.String(),
				Actual:   ex.Latency.String(),
			})
		}
	}

	decoded, decodeErr := decodeBody(exp, ex)
	verdict.DecodedBody = decoded
	switch {
	case decodeErr != nil:
		failures = append(failures, decodeErr)
	case exp.ExpectEmptyBody && len(ex.Body) > 0:
		failures = append(failures, &AssertionMismatch{
			Check:    CheckBody,
			Expected: "no body",
			Actual:   fmt.Sprintf("%d bytes", len(ex.Body)),
		})
	case exp.Matcher != nil:
		if err := exp.Matcher.Match(decoded); err != nil {
			failures = append(failures, &AssertionMismatch{
				Check:    CheckBody,
				Expected: exp.Matcher.String(),
				Actual:   match.JSON(decoded),
				Detail:   err.Error(),
			})
		}
	}

	verdict.Failures = failures
	verdict.Outcome = outcomeOf(failures)
	return verdict
}

// decodeBody parses the body as JSON if the response says it is JSON or the expectation has a
// matcher for it. An empty body is only an error if there is a matcher.
func decodeBody(exp Expectation, ex Exchange) (ldvalue.Value, error) {
	contentType := ex.Header.Get("Content-Type")
	if len(ex.Body) == 0 {
		if exp.Matcher != nil {
			return ldvalue.Null(), &DecodeError{ContentType: contentType, Err: errors.New("body is empty")}
		}
		return ldvalue.Null(), nil
	}
	if exp.Matcher == nil && !IsJSONContentType(contentType) {
		return ldvalue.Null(), nil
	}
	var value ldvalue.Value
	if err := json.Unmarshal(ex.Body, &value); err != nil {
		return ldvalue.Null(), &DecodeError{ContentType: contentType, Body: ex.Body, Err: err}
	}
	return value, nil
}

// IsJSONContentType is true for application/json and for any +json media type.
func IsJSONContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
