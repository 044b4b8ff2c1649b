package reqrestests

import (
	"context"

	"github.com/contractcheck/reqres-contract-tests/config"
	"github.com/contractcheck/reqres-contract-tests/framework"
	"github.com/contractcheck/reqres-contract-tests/verifier"
)

// RunTestSuite runs every test group against the service that v points to, and returns the
// test results along with the Verdict of every expectation that was verified.
//
// The contracts are additional expectations, such as those loaded with
// verifier.LoadExpectations; they run in the "custom" group.
func RunTestSuite(
	ctx context.Context,
	v *verifier.Verifier,
	cfg config.Config,
	contracts []verifier.Expectation,
	filter framework.Filter,
	testLogger framework.TestLogger,
) (framework.Results, []verifier.Verdict) {
	env := &environment{
		verifier:  v,
		config:    cfg,
		contracts: contracts,
	}
	results := framework.Run(ctx, filter, testLogger, func(c *framework.Context) {
		t := &T{context: c, env: env}

		t.RunGroup("users", []string{tagUsers}, DoUserTests)
		t.RunGroup("resources", []string{tagResources}, DoResourceTests)
		t.RunGroup("user lifecycle", []string{tagUsers, tagMutating}, DoUserLifecycleTests)
		t.RunGroup("register", []string{tagAuth}, DoRegisterTests)
		t.RunGroup("login", []string{tagAuth}, DoLoginTests)
		t.RunGroup("delay", []string{tagDelay, tagSlow}, DoDelayTests)
		t.RunGroup("status codes", []string{tagStatusCode}, DoStatusCodeTests)
		t.RunGroup("content type", []string{tagContentType}, DoContentTypeTests)
		t.RunGroup("pagination", []string{tagPagination}, DoPaginationTests)
		t.RunGroup("smoke", []string{tagSmoke}, DoSmokeTests)
		t.RunGroup("custom", []string{tagCustom}, DoCustomTests)
	})
	return results, env.verdicts
}
