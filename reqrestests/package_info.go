// Package reqrestests contains the contract tests for the reqres mock user API.
//
// Each group of tests is a Do*Tests function that receives a *T. Most tests are expressed as
// tables of verifier.Expectation values, which RunTable verifies and reports as one subtest per
// row. Assertions can also be made directly with testify's assert and require packages, passing
// the *T as if it were a *testing.T.
package reqrestests
