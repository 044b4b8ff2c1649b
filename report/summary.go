// Package report presents the verdicts of a run: a human-readable summary of failures, and a
// JSON document describing every verdict.
package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/contractcheck/reqres-contract-tests/verifier"
)

// PrintSummary writes the failed verdicts to out, with every failed check and a command for
// reproducing the request. It returns the number of failed verdicts.
func PrintSummary(out io.Writer, verdicts []verifier.Verdict) int {
	failed := 0
	for _, v := range verdicts {
		if !v.OK() {
			failed++
		}
	}
	fmt.Fprintf(out, "Contracts verified: %d, failed: %d\n", len(verdicts), failed)
	if failed == 0 {
		return 0
	}

	fmt.Fprintln(out, "Failed contracts:")
	for _, v := range verdicts {
		if v.OK() {
			continue
		}
		fmt.Fprintf(out, "  %s (%s)\n", v.Expectation.Label(), v.Outcome)
		for _, failure := range v.Failures {
			var mismatch *verifier.AssertionMismatch
			if errors.As(failure, &mismatch) {
				name := string(mismatch.Check)
				if mismatch.Key != "" {
					name += " " + mismatch.Key
				}
				fmt.Fprintf(out, "    %s\n", name)
				fmt.Fprintf(out, "      expected: %s\n", mismatch.Expected)
				fmt.Fprintf(out, "      actual:   %s\n", mismatch.Actual)
				if mismatch.Detail != "" {
					fmt.Fprintf(out, "      detail:   %s\n", mismatch.Detail)
				}
				continue
			}
			fmt.Fprintf(out, "    %s\n", failure)
		}
		if cmd := CurlCommand(v); cmd != "" {
			fmt.Fprintf(out, "    reproduce: %s\n", cmd)
		}
	}
	return failed
}
