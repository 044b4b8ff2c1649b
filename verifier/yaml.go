package verifier

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
	"gopkg.in/yaml.v3"

	"github.com/contractcheck/reqres-contract-tests/match"
)

type expectationsFile struct {
	Expectations []expectationDef `yaml:"expectations"`
}

type expectationDef struct {
	Name              string            `yaml:"name"`
	Method            string            `yaml:"method"`
	Path              string            `yaml:"path"`
	PathParams        map[string]string `yaml:"path_params"`
	Query             map[string]string `yaml:"query"`
	Body              yaml.Node         `yaml:"body"`
	Status            int               `yaml:"status"`
	Headers           map[string]string `yaml:"headers"`
	MinLatencySeconds *int              `yaml:"min_latency_seconds"`
	TimeoutMS         *int              `yaml:"timeout_ms"`
	EmptyBody         bool              `yaml:"empty_body"`
	Tags              []string          `yaml:"tags"`
	Lane              string            `yaml:"lane"`
	Idempotent        *bool             `yaml:"idempotent"`
	Match             *matchDef         `yaml:"match"`
}

type matchDef struct {
	Equals      yaml.Node            `yaml:"equals"`
	Keys        []string             `yaml:"keys"`
	Fields      map[string]yaml.Node `yaml:"fields"`
	EmptyObject bool                 `yaml:"empty_object"`
	ArraySize   *arraySizeDef        `yaml:"array_size"`
}

type arraySizeDef struct {
	Path string `yaml:"path"`
	Size int    `yaml:"size"`
}

// LoadExpectations reads a YAML table of expectations, such as:
//
//	expectations:
//	  - name: single user
//	    method: GET
//	    path: /api/users/{id}
//	    path_params: {id: "2"}
//	    status: 200
//	    match:
//	      fields: {data.id: 2}
//
// Every loaded expectation is validated; the first invalid one is reported by name or position.
func LoadExpectations(r io.Reader) ([]Expectation, error) {
	var file expectationsFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse expectations: %w", err)
	}

	ret := make([]Expectation, 0, len(file.Expectations))
	for i, def := range file.Expectations {
		exp, err := def.toExpectation()
		if err == nil {
			err = exp.Validate()
		}
		if err != nil {
			label := def.Name
			if label == "" {
				label = fmt.Sprintf("#%d", i+1)
			}
			return nil, fmt.Errorf("expectation %s: %w", label, err)
		}
		ret = append(ret, exp)
	}
	return ret, nil
}

func (d expectationDef) toExpectation() (Expectation, error) {
	method := strings.ToUpper(d.Method)
	exp := Expectation{
		Name:            d.Name,
		Method:          method,
		Path:            d.Path,
		PathParams:      d.PathParams,
		Query:           d.Query,
		ExpectedStatus:  d.Status,
		ExpectedHeaders: d.Headers,
		ExpectEmptyBody: d.EmptyBody,
		Tags:            d.Tags,
		Lane:            d.Lane,
		Idempotent:      DefaultIdempotent(method),
	}
	if d.Idempotent != nil {
		exp.Idempotent = *d.Idempotent
	}
	if d.MinLatencySeconds != nil {
		exp.MinLatencySeconds = ldvalue.NewOptionalInt(*d.MinLatencySeconds)
	}
	if d.TimeoutMS != nil {
		exp.TimeoutMS = ldvalue.NewOptionalInt(*d.TimeoutMS)
	}
	body, err := nodeValue(&d.Body)
	if err != nil {
		return exp, fmt.Errorf("invalid body: %w", err)
	}
	exp.Body = body
	if d.Match != nil {
		m, err := d.Match.toMatcher()
		if err != nil {
			return exp, err
		}
		exp.Matcher = m
	}
	return exp, nil
}

func (d matchDef) toMatcher() (match.Matcher, error) {
	var matchers []match.Matcher
	if d.Equals.Kind != 0 {
		want, err := nodeValue(&d.Equals)
		if err != nil {
			return nil, fmt.Errorf("invalid equals matcher: %w", err)
		}
		matchers = append(matchers, match.Equals(want))
	}
	if d.Keys != nil {
		matchers = append(matchers, match.KeysExactly(d.Keys...))
	}
	if len(d.Fields) > 0 {
		fields := make(map[string]ldvalue.Value, len(d.Fields))
		for path, node := range d.Fields {
			value, err := nodeValue(&node)
			if err != nil {
				return nil, fmt.Errorf("invalid value for field %q: %w", path, err)
			}
			fields[path] = value
		}
		matchers = append(matchers, match.Fields(fields))
	}
	if d.EmptyObject {
		matchers = append(matchers, match.EmptyObject())
	}
	if d.ArraySize != nil {
		if d.ArraySize.Size < 0 {
			return nil, fmt.Errorf("%w: negative array size", ErrInvalidExpectation)
		}
		matchers = append(matchers, match.ArrayOfSize(d.ArraySize.Path, d.ArraySize.Size))
	}
	switch len(matchers) {
	case 0:
		return nil, fmt.Errorf("%w: match block has no matchers", ErrInvalidExpectation)
	case 1:
		return matchers[0], nil
	default:
		return match.All(matchers...), nil
	}
}

// nodeValue converts an arbitrary YAML value to a JSON value. A missing (zero) node is null.
func nodeValue(node *yaml.Node) (ldvalue.Value, error) {
	if node.Kind == 0 {
		return ldvalue.Null(), nil
	}
	var raw interface{}
	if err := node.Decode(&raw); err != nil {
		return ldvalue.Null(), err
	}
	value, err := jsonCompatible(raw)
	if err != nil {
		return ldvalue.Null(), err
	}
	return ldvalue.CopyArbitraryValue(value), nil
}

// jsonCompatible rejects YAML values that have no JSON equivalent, such as maps with
// non-string keys.
func jsonCompatible(raw interface{}) (interface{}, error) {
	switch v := raw.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, item := range v {
			converted, err := jsonCompatible(item)
			if err != nil {
				return nil, err
			}
			out[k] = converted
		}
		return out, nil
	case map[interface{}]interface{}:
		return nil, errors.New("object keys must be strings")
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			converted, err := jsonCompatible(item)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	case nil, bool, string, int, int64, float64:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported value of type %T", raw)
	}
}
