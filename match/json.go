// Package match contains matchers for decoded JSON response bodies.
//
// A Matcher has no concept of tests: it returns an error describing what did not match, and the
// caller decides how to report it. Matchers that take a key accept a gjson path, so nested
// values can be checked directly:
//
//	match.Fields(map[string]ldvalue.Value{
//		"data.id":    ldvalue.Int(2),
//		"data.email": ldvalue.String("janet.weaver@reqres.in"),
//	})
//
// See https://github.com/tidwall/gjson#path-syntax for the path syntax.
package match

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Matcher checks a decoded JSON body.
type Matcher interface {
	// Match returns nil if the body is acceptable.
	Match(body ldvalue.Value) error
	// String describes what the matcher expects, for diagnostics.
	String() string
}

type matcherFunc struct {
	description string
	check       func(body ldvalue.Value) error
}

func (m matcherFunc) Match(body ldvalue.Value) error { return m.check(body) }

func (m matcherFunc) String() string { return m.description }

// Equals returns a matcher which requires the whole body to be deeply equal to want. Object key
// order is irrelevant; array element order is significant.
func Equals(want ldvalue.Value) Matcher {
	return matcherFunc{
		description: "body equal to " + JSON(want),
		check: func(body ldvalue.Value) error {
			if !body.Equal(want) {
				return fmt.Errorf("body got %s want %s", JSON(body), JSON(want))
			}
			return nil
		},
	}
}

// KeysExactly returns a matcher which requires the body to be an object whose set of top-level
// keys is exactly wantKeys. Values are not checked.
func KeysExactly(wantKeys ...string) Matcher {
	want := append([]string(nil), wantKeys...)
	sort.Strings(want)
	return matcherFunc{
		description: fmt.Sprintf("object with exactly the keys [%s]", strings.Join(want, ", ")),
		check: func(body ldvalue.Value) error {
			if body.Type() != ldvalue.ObjectType {
				return fmt.Errorf("body is %s, not an object", body.Type())
			}
			got := body.Keys()
			sort.Strings(got)
			missing, unexpected := diffKeys(got, want)
			if len(missing) == 0 && len(unexpected) == 0 {
				return nil
			}
			var parts []string
			if len(missing) > 0 {
				parts = append(parts, fmt.Sprintf("missing keys [%s]", strings.Join(missing, ", ")))
			}
			if len(unexpected) > 0 {
				parts = append(parts, fmt.Sprintf("unexpected keys [%s]", strings.Join(unexpected, ", ")))
			}
			return fmt.Errorf("body keys got [%s] want [%s]: %s",
				strings.Join(got, ", "), strings.Join(want, ", "), strings.Join(parts, "; "))
		},
	}
}

// Field returns a matcher which requires the value at path to be present and equal to want.
func Field(path string, want ldvalue.Value) Matcher {
	return Fields(map[string]ldvalue.Value{path: want})
}

// Literal escapes a property name so that it is matched as-is rather than read as a gjson path.
// Use it for keys containing '.', '*', '?' or '#', which a path would otherwise traverse or
// treat as a wildcard.
func Literal(name string) string {
	return gjson.Escape(name)
}

// Fields returns a matcher which requires each path in want to be present in the body and equal
// to the corresponding value. Anything in the body that is not named is ignored.
//
// Keys are gjson paths, so "data.id" reaches into the nested object. Wrap a top-level name in
// Literal when it contains path syntax characters.
func Fields(want map[string]ldvalue.Value) Matcher {
	paths := make([]string, 0, len(want))
	for p := range want {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	descs := make([]string, 0, len(paths))
	for _, p := range paths {
		descs = append(descs, fmt.Sprintf("%s=%s", p, JSON(want[p])))
	}
	return matcherFunc{
		description: "fields " + strings.Join(descs, ", "),
		check: func(body ldvalue.Value) error {
			for _, p := range paths {
				got, ok := lookup(body, p)
				if !ok {
					return fmt.Errorf("key '%s' missing", p)
				}
				if !got.Equal(want[p]) {
					return fmt.Errorf("key '%s' got %s want %s", p, JSON(got), JSON(want[p]))
				}
			}
			return nil
		},
	}
}

// EmptyObject returns a matcher which requires the body to be an object with no properties, as
// reqres returns for resources that do not exist.
func EmptyObject() Matcher {
	return matcherFunc{
		description: "empty object {}",
		check: func(body ldvalue.Value) error {
			if body.Type() != ldvalue.ObjectType {
				return fmt.Errorf("body is %s, not an object", body.Type())
			}
			if body.Count() != 0 {
				return fmt.Errorf("object has %d keys, want none: %s", body.Count(), JSON(body))
			}
			return nil
		},
	}
}

// ArrayOfSize returns a matcher which requires the value at path to be an array with the given
// number of elements.
func ArrayOfSize(path string, size int) Matcher {
	return matcherFunc{
		description: fmt.Sprintf("'%s' is an array of %d elements", path, size),
		check: func(body ldvalue.Value) error {
			got, ok := lookup(body, path)
			if !ok {
				return fmt.Errorf("key '%s' missing", path)
			}
			if got.Type() != ldvalue.ArrayType {
				return fmt.Errorf("key '%s' is %s, not an array", path, got.Type())
			}
			if got.Count() != size {
				return fmt.Errorf("key '%s' is an array of the wrong size, got %d want %d", path, got.Count(), size)
			}
			return nil
		},
	}
}

// All returns a matcher which applies every matcher and reports all of their failures.
func All(matchers ...Matcher) Matcher {
	descs := make([]string, 0, len(matchers))
	for _, m := range matchers {
		descs = append(descs, m.String())
	}
	return matcherFunc{
		description: strings.Join(descs, "; "),
		check: func(body ldvalue.Value) error {
			var errs []error
			for _, m := range matchers {
				if err := m.Match(body); err != nil {
					errs = append(errs, err)
				}
			}
			return errors.Join(errs...)
		},
	}
}

func lookup(body ldvalue.Value, path string) (ldvalue.Value, bool) {
	res := gjson.Get(JSON(body), path)
	if !res.Exists() {
		return ldvalue.Null(), false
	}
	var v ldvalue.Value
	if err := json.Unmarshal([]byte(res.Raw), &v); err != nil {
		return ldvalue.Null(), false
	}
	return v, true
}

func diffKeys(got, want []string) (missing, unexpected []string) {
	gotSet := make(map[string]bool, len(got))
	for _, k := range got {
		gotSet[k] = true
	}
	wantSet := make(map[string]bool, len(want))
	for _, k := range want {
		wantSet[k] = true
		if !gotSet[k] {
			missing = append(missing, k)
		}
	}
	for _, k := range got {
		if !wantSet[k] {
			unexpected = append(unexpected, k)
		}
	}
	return missing, unexpected
}
