package framework

import (
	"fmt"
	"io"
	"strings"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Skipped  []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// TestID identifies a test by its path of names. Tags are the marker tags attached to the test or
// inherited from any of its parents.
type TestID struct {
	Path []string
	Tags []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

func (t TestID) HasTag(tag string) bool {
	for _, tt := range t.Tags {
		if tt == tag {
			return true
		}
	}
	return false
}

func (t TestID) child(name string, tags []string) TestID {
	return TestID{
		Path: append(append([]string(nil), t.Path...), name),
		Tags: mergeTags(t.Tags, tags),
	}
}

func mergeTags(parent, own []string) []string {
	ret := append([]string(nil), parent...)
	for _, tag := range own {
		found := false
		for _, p := range ret {
			if p == tag {
				found = true
				break
			}
		}
		if !found {
			ret = append(ret, tag)
		}
	}
	return ret
}

// PrintResults writes the final tally of the run, listing every failed test.
func PrintResults(out io.Writer, results Results) {
	fmt.Fprintf(out, "Ran %d tests (%d skipped)\n", len(results.Tests)-len(results.Skipped), len(results.Skipped))
	if results.OK() {
		fmt.Fprintln(out, "All tests passed")
		return
	}
	fmt.Fprintf(out, "FAILED TESTS (%d):\n", len(results.Failures))
	for _, f := range results.Failures {
		fmt.Fprintf(out, "* %s\n", f.TestID)
	}
}
