package reqrestests

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contractcheck/reqres-contract-tests/config"
	"github.com/contractcheck/reqres-contract-tests/framework"
	"github.com/contractcheck/reqres-contract-tests/verifier"
)

const customContracts = `
expectations:
  - name: second page
    method: GET
    path: /api/users
    query: {page: "2"}
    status: 200
    match:
      fields: {page: 2, data.0.id: 7}
`

func testConfig(baseURL string) config.Config {
	cfg := config.Default()
	cfg.BaseURL = baseURL
	cfg.Timeout = 5 * time.Second
	cfg.Delays = []int{0}
	cfg.Parallelism = 4
	cfg.SmokeURL = baseURL + "/health"
	return cfg
}

func runAgainstFake(t *testing.T, fakeTotal int, modify func(*config.Config), filter framework.Filter) (framework.Results, []verifier.Verdict) {
	var results framework.Results
	var verdicts []verifier.Verdict
	httphelpers.WithServer(newFakeReqres(fakeTotal), func(server *httptest.Server) {
		cfg := testConfig(server.URL)
		if modify != nil {
			modify(&cfg)
		}
		v, err := verifier.New(cfg, nil)
		require.NoError(t, err)
		contracts, err := verifier.LoadExpectations(strings.NewReader(customContracts))
		require.NoError(t, err)
		results, verdicts = RunTestSuite(context.Background(), v, cfg, contracts, filter, nil)
	})
	return results, verdicts
}

func failedIDs(results framework.Results) []string {
	var ret []string
	for _, f := range results.Failures {
		ret = append(ret, f.TestID.String())
	}
	return ret
}

func TestSuitePassesAgainstConformingService(t *testing.T) {
	results, verdicts := runAgainstFake(t, config.DefaultTotalUsers, nil, nil)

	assert.True(t, results.OK(), "failures: %v", failedIDs(results))
	assert.Len(t, results.Skipped, 0)
	assert.Len(t, verdicts, 74)
	for _, v := range verdicts {
		assert.True(t, v.OK(), "%s: %v", v.Expectation.Label(), v.Failures)
	}
}

func TestSuiteSequentialMatchesParallel(t *testing.T) {
	_, parallel := runAgainstFake(t, config.DefaultTotalUsers, nil, nil)
	_, sequential := runAgainstFake(t, config.DefaultTotalUsers, func(c *config.Config) { c.Parallelism = 1 }, nil)

	require.Equal(t, len(sequential), len(parallel))
	for i := range sequential {
		assert.Equal(t, sequential[i].Expectation.Label(), parallel[i].Expectation.Label())
	}
}

func TestSuiteSelectsByTag(t *testing.T) {
	filter := framework.Filters{MustHaveTag: framework.TagList{tagAuth}}
	results, verdicts := runAgainstFake(t, config.DefaultTotalUsers, nil, filter)

	assert.True(t, results.OK(), "failures: %v", failedIDs(results))
	require.Len(t, verdicts, 6)
	for _, v := range verdicts {
		assert.Equal(t, "POST", v.Expectation.Method)
	}
	assert.NotEmpty(t, results.Skipped)
}

func TestSuiteExcludesByTag(t *testing.T) {
	filter := framework.Filters{MustNotTag: framework.TagList{tagSlow, tagStatusCode, tagContentType, tagMutating}}
	results, verdicts := runAgainstFake(t, config.DefaultTotalUsers, nil, filter)

	assert.True(t, results.OK(), "failures: %v", failedIDs(results))
	for _, v := range verdicts {
		assert.NotEqual(t, userLane, v.Expectation.Lane)
		assert.False(t, v.Expectation.MinLatencySeconds.IsDefined())
	}
}

func TestSuiteReportsWrongUserCount(t *testing.T) {
	results, _ := runAgainstFake(t, 10, nil, framework.Filters{MustHaveTag: framework.TagList{tagUsers, tagPagination}})

	failed := failedIDs(results)
	assert.Contains(t, failed, "users/every user id/id=11")
	assert.Contains(t, failed, "users/every user id/id=12")
	assert.Contains(t, failed, "users/list users")
	assert.Contains(t, failed, "pagination/page=1 per_page=12")
	assert.NotContains(t, failed, "users/every user id/id=10")
	assert.NotContains(t, failed, "pagination/page=1 per_page=7")
}

func TestSuiteWithConfiguredUserCount(t *testing.T) {
	results, _ := runAgainstFake(t, 10, func(c *config.Config) { c.TotalUsers = 10 },
		framework.Filters{MustHaveTag: framework.TagList{tagUsers, tagPagination}})
	assert.True(t, results.OK(), "failures: %v", failedIDs(results))
}

func TestSmokeSkippedWithoutURL(t *testing.T) {
	results, _ := runAgainstFake(t, config.DefaultTotalUsers, func(c *config.Config) { c.SmokeURL = "" },
		framework.Filters{MustHaveTag: framework.TagList{tagSmoke}})
	assert.True(t, results.OK())

	var skipped []string
	for _, s := range results.Skipped {
		skipped = append(skipped, s.TestID.String())
	}
	assert.Contains(t, skipped, "smoke")
}

func TestEndpointRowNamesAreStable(t *testing.T) {
	row := endpointRow{"POST", "/api/login", validLogin, 200}
	want := `POST /api/login {"email":"eve.holt@reqres.in","password":"cityslicka"} -> 200`
	for i := 0; i < 20; i++ {
		assert.Equal(t, want, row.expectation().Name)
	}
}

func TestInvalidUserIDs(t *testing.T) {
	assert.Equal(t, []int{13, 23, 24}, invalidUserIDs(12))
	assert.Equal(t, []int{23, 24}, invalidUserIDs(22))
	assert.Equal(t, []int{31}, invalidUserIDs(30))
}
