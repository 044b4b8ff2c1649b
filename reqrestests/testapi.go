package reqrestests

import (
	"github.com/contractcheck/reqres-contract-tests/config"
	"github.com/contractcheck/reqres-contract-tests/framework"
	"github.com/contractcheck/reqres-contract-tests/report"
	"github.com/contractcheck/reqres-contract-tests/verifier"
)

// T represents a test or subtest in the reqres test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is
// outside of the Go test runner, with per-test debug output provided by the framework package.
// It also gives tests access to the Verifier and the run configuration, and records every
// Verdict so that the run can be summarized at the end.
type T struct {
	context *framework.Context
	env     *environment
}

type environment struct {
	verifier  *verifier.Verifier
	config    config.Config
	contracts []verifier.Expectation
	verdicts  []verifier.Verdict
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

func (t *T) Helper() {}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.RunTagged(name, nil, action)
}

// RunTagged runs a subtest that carries marker tags in addition to those of its parents.
func (t *T) RunTagged(name string, tags []string, action func(*T)) {
	t.context.RunTagged(name, tags, func(c *framework.Context) {
		action(&T{context: c, env: t.env})
	})
}

// RunGroup runs a subtest that only contains other subtests.
func (t *T) RunGroup(name string, tags []string, action func(*T)) {
	t.context.RunGroup(name, tags, func(c *framework.Context) {
		action(&T{context: c, env: t.env})
	})
}

// Skip skips the rest of this test.
func (t *T) Skip(reason string) {
	t.context.SkipWithReason(reason)
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Config returns the configuration of the run.
func (t *T) Config() config.Config {
	return t.env.config
}

// Verify verifies an expectation and records the Verdict, without failing the test.
func (t *T) Verify(exp verifier.Expectation) verifier.Verdict {
	v := t.env.verifier.Verify(t.context.RequestContext(), exp, t.context.DebugLogger())
	t.env.verdicts = append(t.env.verdicts, v)
	return v
}

// Expect verifies an expectation and fails the test, without exiting, for every check that did
// not pass.
func (t *T) Expect(exp verifier.Expectation) verifier.Verdict {
	v := t.Verify(exp)
	t.reportFailures(v)
	return v
}

func (t *T) reportFailures(v verifier.Verdict) {
	if v.OK() {
		return
	}
	for _, failure := range v.Failures {
		t.Errorf("%s", failure)
	}
	if cmd := report.CurlCommand(v); cmd != "" {
		t.Debug("reproduce: %s", cmd)
	}
}

// RunTable runs one subtest per expectation, named by its label and tagged with its tags.
//
// The expectations are verified with the configured parallelism, keeping the order of each
// lane, but the subtests are always reported in table order.
func (t *T) RunTable(exps []verifier.Expectation) {
	var selected []verifier.Expectation
	var positions []int
	for i, exp := range exps {
		if t.context.Selected(exp.Label(), exp.Tags) {
			selected = append(selected, exp)
			positions = append(positions, i)
		}
	}

	loggers := make([]*framework.CapturingLogger, len(selected))
	for i := range loggers {
		loggers[i] = &framework.CapturingLogger{}
	}

	next := 0
	// Subtests that the filter excludes still go through RunTagged, so that they are reported
	// as skipped in their proper place.
	skipUpTo := func(limit int) {
		for ; next < limit; next++ {
			exp := exps[next]
			t.context.RunTagged(exp.Label(), exp.Tags, func(*framework.Context) {})
		}
	}

	count := 0
	t.env.verifier.VerifyAll(
		t.context.RequestContext(),
		selected,
		t.env.config.Parallelism,
		func(i int) framework.Logger { return loggers[i] },
		func(v verifier.Verdict) {
			index := count
			count++
			skipUpTo(positions[index])
			next = positions[index] + 1
			t.RunTagged(v.Expectation.Label(), v.Expectation.Tags, func(t *T) {
				for _, m := range loggers[index].Output() {
					t.Debug("%s", m.Message)
				}
				t.env.verdicts = append(t.env.verdicts, v)
				t.reportFailures(v)
			})
		},
	)
	skipUpTo(len(exps))
}
