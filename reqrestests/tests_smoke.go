package reqrestests

import (
	"net/url"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contractcheck/reqres-contract-tests/framework"
	"github.com/contractcheck/reqres-contract-tests/verifier"
)

// DoSmokeTests checks that the configured smoke URL is up at all. This is independent of the
// API contract: any status below 400 passes.
func DoSmokeTests(t *T) {
	cfg := t.Config()
	if cfg.SmokeURL == "" {
		t.Skip("no smoke URL configured")
	}

	t.Run("service is reachable", func(t *T) {
		target, err := url.Parse(cfg.SmokeURL)
		require.NoError(t, err)
		path := target.EscapedPath()
		if path == "" {
			path = "/"
		}
		if target.RawQuery != "" {
			path += "?" + target.RawQuery
		}
		target.Path, target.RawPath, target.RawQuery = "", "", ""

		smokeConfig := cfg
		smokeConfig.BaseURL = target.String()
		logger := framework.LoggerWithPrefix(t.context.DebugLogger(), "smoke: ")
		smokeVerifier, err := verifier.New(smokeConfig, logger)
		require.NoError(t, err)

		ex, err := smokeVerifier.Do(t.context.RequestContext(), verifier.Expectation{Method: "GET", Path: path}, nil)
		require.NoError(t, err)
		assert.Less(t, ex.Status, 400, "status of %s", ex.URL)
	})
}
