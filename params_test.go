package main

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contractcheck/reqres-contract-tests/config"
	"github.com/contractcheck/reqres-contract-tests/framework"
)

func TestParamsOverrideOnlyWhatIsGiven(t *testing.T) {
	var params commandParams
	require.True(t, params.Read([]string{"reqres-contract-tests",
		"-url", "http://localhost:3000",
		"-tag", "users,auth",
		"-parallel", "4",
		"-run", "users/.*",
	}))

	cfg := config.Default()
	cfg.Timeout = 7 * time.Second
	cfg.SkipTags = []string{"slow"}
	params.applyTo(&cfg)

	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.Equal(t, []string{"users", "auth"}, cfg.Tags)
	assert.Equal(t, 4, cfg.Parallelism)
	assert.Equal(t, 7*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"slow"}, cfg.SkipTags)
	assert.Equal(t, config.DefaultTotalUsers, cfg.TotalUsers)

	filters := params.testFilters(cfg)
	assert.Equal(t, framework.TagList{"users", "auth"}, filters.MustHaveTag)
	assert.Equal(t, framework.TagList{"slow"}, filters.MustNotTag)
	assert.True(t, filters.MustMatch.IsDefined())
}

func TestParamsRejectInvalidInput(t *testing.T) {
	var params commandParams
	assert.False(t, params.Read([]string{"reqres-contract-tests", "-parallel", "many"}))
	assert.False(t, params.Read([]string{"reqres-contract-tests", "extra"}))
}

func TestConsoleTestLogger(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	logger := &ConsoleTestLogger{Out: &buf, DebugOutputOnFailure: true}
	id := framework.TestID{Path: []string{"users", "single user"}}

	logger.TestStarted(id)
	logger.TestError(id, errors.New("status: got 404 want 200"))
	logger.TestFinished(id, true, framework.CapturedOutput{{Time: time.Now(), Message: ">> GET /api/users/2"}})
	logger.TestSkipped(framework.TestID{Path: []string{"smoke"}}, "no smoke URL configured")

	out := buf.String()
	assert.Contains(t, out, "[users/single user]\n")
	assert.Contains(t, out, "  status: got 404 want 200\n")
	assert.Contains(t, out, "  FAILED: users/single user\n")
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, ">> GET /api/users/2")
	assert.Contains(t, out, "  SKIPPED: smoke (no smoke URL configured)\n")
}
