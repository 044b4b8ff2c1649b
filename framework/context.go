package framework

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
)

type environment struct {
	ctx        context.Context
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context is the state of a single test. It implements the TestingT interfaces of testify's
// assert and require packages.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
}

// Run runs the root of a test tree. The ctx is the lifetime of the whole run; tests can obtain
// it from RequestContext so that outgoing requests are abandoned if the run is cancelled.
func Run(
	ctx context.Context,
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	env := &environment{
		ctx:        ctx,
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil && !c.skipped {
			c.failed = true
			var addError error
			if _, ok := r.(*Context); ok {
				if len(c.errors) == 0 {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.errors = append(c.errors, addError)
				c.env.testLogger.TestError(c.id, addError)
			}
		}
		if len(c.id.Path) == 0 {
			return // the root is not a test in its own right
		}
		result := TestResult{TestID: c.id, Errors: c.errors, Skipped: c.skipped}
		c.env.results.Tests = append(c.env.results.Tests, result)
		if c.skipped {
			c.env.results.Skipped = append(c.env.results.Skipped, result)
		} else if c.failed {
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
	}()

	action(c)
}

func (c *Context) ID() TestID {
	return c.id
}

// RequestContext returns the context of the whole test run.
func (c *Context) RequestContext() context.Context {
	return c.env.ctx
}

// Run runs a subtest with no tags of its own.
func (c *Context) Run(name string, action func(*Context)) {
	c.RunTagged(name, nil, action)
}

// RunTagged runs a subtest carrying the given marker tags in addition to those of its parents.
func (c *Context) RunTagged(name string, tags []string, action func(*Context)) {
	c.runChild(c.id.child(name, tags), false, action)
}

// RunGroup runs a subtest whose only purpose is to contain other subtests. The filter is more
// lenient for groups, since a subtest may match a pattern or tag that the group does not.
func (c *Context) RunGroup(name string, tags []string, action func(*Context)) {
	c.runChild(c.id.child(name, tags), true, action)
}

func (c *Context) runChild(id TestID, group bool, action func(*Context)) {
	c.env.testLogger.TestStarted(id)
	if !c.accepts(id, group) {
		c.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		result := TestResult{TestID: id, Skipped: true}
		c.env.results.Tests = append(c.env.results.Tests, result)
		c.env.results.Skipped = append(c.env.results.Skipped, result)
		return
	}
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	c1.run(action)
	if c1.skipped {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, c1.failed, c1.debugLogger.Output())
	}
}

// Selected reports whether a subtest with this name and these tags would pass the filter.
// A parent can use this to avoid doing any work for subtests that will not be run.
func (c *Context) Selected(name string, tags []string) bool {
	return c.accepts(c.id.child(name, tags), false)
}

func (c *Context) accepts(id TestID, group bool) bool {
	switch {
	case c.env.filter == nil:
		return true
	case group:
		return c.env.filter.AcceptsGroup(id)
	default:
		return c.env.filter.AcceptsTest(id)
	}
}

func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, reformatError(err))
}

// Helper exists so that testify treats Context like *testing.T. It has no effect.
func (c *Context) Helper() {}

func (c *Context) Failed() bool {
	return c.failed
}

func (c *Context) FailNow() {
	panic(c)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
