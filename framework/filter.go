package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter determines which tests to run. Groups only contain other tests, so a group is entered
// unless it is explicitly excluded; the full criteria are applied to tests that do actual work.
type Filter interface {
	AcceptsGroup(TestID) bool
	AcceptsTest(TestID) bool
}

// Filters selects tests by regex patterns on the test path and by marker tags.
type Filters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
	MustHaveTag  TagList
	MustNotTag   TagList
}

func (f Filters) AcceptsGroup(id TestID) bool {
	if f.MustNotMatch.AnyMatch(id.String()) {
		return false
	}
	for _, tag := range f.MustNotTag {
		if id.HasTag(tag) {
			return false
		}
	}
	return true
}

// AcceptsTest accepts a test if its path matches any MustMatch pattern (or there are none) and no
// MustNotMatch pattern, and if it carries any of MustHaveTag (or there are none) and none of
// MustNotTag.
func (f Filters) AcceptsTest(id TestID) bool {
	if !f.AcceptsGroup(id) {
		return false
	}
	if f.MustMatch.IsDefined() && !f.MustMatch.AnyMatch(id.String()) {
		return false
	}
	if len(f.MustHaveTag) == 0 {
		return true
	}
	for _, tag := range f.MustHaveTag {
		if id.HasTag(tag) {
			return true
		}
	}
	return false
}

type RegexList struct {
	patterns []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	r.patterns = append(r.patterns, rx)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// TagList is a set of marker tags. As a flag it can be repeated or given comma-separated values.
type TagList []string

func (t TagList) String() string {
	return strings.Join(t, ",")
}

// Set is called by the command line parser
func (t *TagList) Set(value string) error {
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			*t = append(*t, v)
		}
	}
	return nil
}

func PrintFilterDescription(out io.Writer, filters Filters) {
	if !filters.MustMatch.IsDefined() && !filters.MustNotMatch.IsDefined() &&
		len(filters.MustHaveTag) == 0 && len(filters.MustNotTag) == 0 {
		return
	}
	fmt.Fprintln(out, "Some tests will be skipped based on the filter criteria for this test run:")
	if filters.MustMatch.IsDefined() {
		fmt.Fprintf(out, "  skip any not matching %s\n", filters.MustMatch)
	}
	if filters.MustNotMatch.IsDefined() {
		fmt.Fprintf(out, "  skip any matching %s\n", filters.MustNotMatch)
	}
	if len(filters.MustHaveTag) > 0 {
		fmt.Fprintf(out, "  skip any not tagged %s\n", filters.MustHaveTag)
	}
	if len(filters.MustNotTag) > 0 {
		fmt.Fprintf(out, "  skip any tagged %s\n", filters.MustNotTag)
	}
	fmt.Fprintln(out)
}
