package verifier

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/contractcheck/reqres-contract-tests/match"
)

// ErrInvalidExpectation is wrapped by every error from Expectation.Validate.
var ErrInvalidExpectation = errors.New("invalid expectation")

var allowedMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// Expectation describes one HTTP call and the outcome it should have. It is plain data: the
// verifier never modifies it, and evaluating one expectation does not depend on any other.
type Expectation struct {
	// Name identifies the expectation in test output. If empty, Label falls back to method and path.
	Name string

	Method string

	// Path is relative to the configured base URL. It may contain a query string, and {name}
	// placeholders that are filled from PathParams.
	Path       string
	PathParams map[string]string
	Query      map[string]string

	// Body is sent as JSON unless it is null.
	Body ldvalue.Value

	ExpectedStatus int

	// ExpectedHeaders must each be present in the response with exactly this value.
	ExpectedHeaders map[string]string

	// MinLatencySeconds, if defined, is a lower bound on the elapsed time of the call.
	MinLatencySeconds ldvalue.OptionalInt

	// Matcher, if not nil, is applied to the decoded JSON body. A body is required to be
	// JSON whenever there is a matcher.
	Matcher match.Matcher

	// ExpectEmptyBody requires the response to have no body at all, as for a 204.
	ExpectEmptyBody bool

	// TimeoutMS overrides the configured request timeout for this call.
	TimeoutMS ldvalue.OptionalInt

	// Tags are the marker tags used to select subsets of expectations.
	Tags []string

	// Lane pins expectations that share mutable remote state to one ordered sequence. Expectations
	// with the same non-empty lane are never run concurrently or reordered.
	Lane string

	// Idempotent documents whether it is safe to re-run this call without changing the outcome
	// of this or any other expectation.
	Idempotent bool
}

// Label returns the expectation's name, or "METHOD path" if it has none.
func (e Expectation) Label() string {
	if e.Name != "" {
		return e.Name
	}
	return e.Method + " " + e.Path
}

// Validate checks the constraints that must hold before a request can be issued.
func (e Expectation) Validate() error {
	methodOK := false
	for _, m := range allowedMethods {
		if e.Method == m {
			methodOK = true
			break
		}
	}
	if !methodOK {
		return fmt.Errorf("%w: unsupported method %q", ErrInvalidExpectation, e.Method)
	}
	if !strings.HasPrefix(e.Path, "/") {
		return fmt.Errorf("%w: path %q must start with /", ErrInvalidExpectation, e.Path)
	}
	if e.ExpectedStatus < 100 || e.ExpectedStatus > 599 {
		return fmt.Errorf("%w: expected status %d is not an HTTP status code", ErrInvalidExpectation, e.ExpectedStatus)
	}
	if e.MinLatencySeconds.IsDefined() && e.MinLatencySeconds.IntValue() < 0 {
		return fmt.Errorf("%w: negative minimum latency", ErrInvalidExpectation)
	}
	if e.TimeoutMS.IsDefined() && e.TimeoutMS.IntValue() <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidExpectation)
	}
	if e.ExpectEmptyBody && e.Matcher != nil {
		return fmt.Errorf("%w: cannot require an empty body and also match its content", ErrInvalidExpectation)
	}
	return nil
}

// ResolveURL joins the path, path parameters and query parameters onto base.
func (e Expectation) ResolveURL(base *url.URL) (string, error) {
	path := e.Path
	names := make([]string, 0, len(e.PathParams))
	for name := range e.PathParams {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		path = strings.ReplaceAll(path, "{"+name+"}", url.PathEscape(e.PathParams[name]))
	}
	if strings.ContainsAny(path, "{}") {
		return "", fmt.Errorf("%w: unresolved placeholder in path %q", ErrInvalidExpectation, path)
	}
	rel, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidExpectation, err)
	}
	if rel.IsAbs() || rel.Host != "" {
		return "", fmt.Errorf("%w: path %q must be relative to the base URL", ErrInvalidExpectation, path)
	}

	u := *base
	u.Path = strings.TrimSuffix(base.Path, "/") + rel.Path
	u.RawPath = strings.TrimSuffix(base.EscapedPath(), "/") + rel.EscapedPath()
	query := base.Query()
	for k, v := range rel.Query() {
		query[k] = v
	}
	for k, v := range e.Query {
		query.Set(k, v)
	}
	u.RawQuery = query.Encode()
	return u.String(), nil
}

// DefaultIdempotent is the Idempotent value used when an expectation table does not say: only
// reads are assumed to be repeatable against the remote service.
func DefaultIdempotent(method string) bool {
	return method == http.MethodGet
}
