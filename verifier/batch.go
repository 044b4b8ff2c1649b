package verifier

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/contractcheck/reqres-contract-tests/framework"
)

// VerifyAll verifies a list of expectations and calls emit with each Verdict, in the same order
// as exps, on the calling goroutine.
//
// Expectations that share a non-empty Lane run one after another in the order given. Other
// expectations, and different lanes, may run concurrently with at most parallelism requests
// in flight. A parallelism of 1 or less verifies everything sequentially.
//
// Debug output for exps[i] goes to loggerFor(i). If loggerFor is nil, or returns nil, the
// Verifier's own logger is used.
func (v *Verifier) VerifyAll(
	ctx context.Context,
	exps []Expectation,
	parallelism int,
	loggerFor func(int) framework.Logger,
	emit func(Verdict),
) {
	if loggerFor == nil {
		loggerFor = func(int) framework.Logger { return nil }
	}
	if parallelism <= 1 {
		for i, exp := range exps {
			emit(v.Verify(ctx, exp, loggerFor(i)))
		}
		return
	}

	lanes := groupByLane(exps)
	queue := framework.NewSortingQueue[Verdict](len(exps))

	go func() {
		g := new(errgroup.Group)
		g.SetLimit(parallelism)
		for _, lane := range lanes {
			lane := lane
			g.Go(func() error {
				for _, index := range lane {
					queue.Accept(index+1, v.Verify(ctx, exps[index], loggerFor(index)))
				}
				return nil
			})
		}
		_ = g.Wait()
		queue.Close()
	}()

	for verdict := range queue.C {
		emit(verdict)
	}
}

// groupByLane returns the indexes of exps grouped into lanes, in order of each lane's first
// appearance. An expectation without a lane is a lane by itself.
func groupByLane(exps []Expectation) [][]int {
	var lanes [][]int
	byKey := make(map[string]int)
	for i, exp := range exps {
		key := exp.Lane
		if key == "" {
			key = fmt.Sprintf("\x00%d", i)
		}
		pos, ok := byKey[key]
		if !ok {
			pos = len(lanes)
			byKey[key] = pos
			lanes = append(lanes, nil)
		}
		lanes[pos] = append(lanes[pos], i)
	}
	return lanes
}
