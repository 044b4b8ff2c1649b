package reqrestests

import (
	"fmt"
	"strconv"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/contractcheck/reqres-contract-tests/verifier"
)

// delayMargin is how much longer than the requested delay a delayed request may take.
const delayMargin = 10 * time.Second

func DoDelayTests(t *T) {
	cfg := t.Config()
	var exps []verifier.Expectation
	for _, delay := range cfg.Delays {
		exp := verifier.Expectation{
			Name:              fmt.Sprintf("delay=%d", delay),
			Method:            "GET",
			Path:              usersPath,
			Query:             map[string]string{"delay": strconv.Itoa(delay)},
			ExpectedStatus:    200,
			ExpectedHeaders:   map[string]string{"Content-Type": jsonContentType},
			MinLatencySeconds: ldvalue.NewOptionalInt(delay),
			Idempotent:        true,
		}
		// A delayed request must not be cut off by a default timeout shorter than the delay.
		if needed := time.Duration(delay)*time.Second + delayMargin; cfg.Timeout < needed {
			exp.TimeoutMS = ldvalue.NewOptionalInt(int(needed / time.Millisecond))
		}
		exps = append(exps, exp)
	}
	t.RunTable(exps)
}
