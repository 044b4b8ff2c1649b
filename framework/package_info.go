// Package framework contains the low-level implementation of test harness infrastructure
// that is not specific to any one API under test.
//
// The general model is:
//
// 1. There is a notion of a test context which is similar to Go's *testing.T, allowing pieces
// of test logic to be associated with a test identifier and to accumulate success/failure
// results. Tests are identified by a path of names, and can carry marker tags that are
// inherited by their subtests.
//
// 2. Tests can be selected or excluded with regex patterns on their path and with marker tags.
//
// 3. Each test has its own debug logger. Its output is kept in memory and handed to the
// TestLogger when the test finishes, so it can be shown only for failed tests.
//
// The domain-specific code that knows what is being tested is responsible for issuing requests
// and for providing a domain-specific test API on top of the test context.
package framework
