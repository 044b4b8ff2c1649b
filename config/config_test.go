package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "https://reqres.in", cfg.BaseURL)
	assert.Equal(t, time.Minute, cfg.Timeout)
	assert.Equal(t, 12, cfg.TotalUsers)
	assert.Equal(t, 1, cfg.Parallelism)
	assert.Equal(t, []int{3, 12, 30}, cfg.Delays)
	assert.NoError(t, cfg.Validate())

	cfg.Delays[0] = 99
	assert.Equal(t, 3, DefaultDelays[0])
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contract.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
base_url: http://localhost:8080
timeout: 5s
tags: [users, pagination]
parallelism: 4
total_users: 20
delays: [1]
smoke_url: http://localhost:8080/health
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"users", "pagination"}, cfg.Tags)
	assert.Equal(t, 4, cfg.Parallelism)
	assert.Equal(t, 20, cfg.TotalUsers)
	assert.Equal(t, []int{1}, cfg.Delays)
	assert.Equal(t, "http://localhost:8080/health", cfg.SmokeURL)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contract.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeout: [not a duration\n"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.applyEnv(lookupFrom(map[string]string{
		EnvBaseURL:     "http://127.0.0.1:3000",
		EnvTimeout:     "250ms",
		EnvTags:        "smoke, users,,",
		EnvSkipTags:    "slow",
		EnvParallelism: "3",
		EnvTotalUsers:  "6",
		EnvSmokeURL:    "http://127.0.0.1:3000/",
		EnvReportPath:  "out.json",
	}))
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:3000", cfg.BaseURL)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	assert.Equal(t, []string{"smoke", "users"}, cfg.Tags)
	assert.Equal(t, []string{"slow"}, cfg.SkipTags)
	assert.Equal(t, 3, cfg.Parallelism)
	assert.Equal(t, 6, cfg.TotalUsers)
	assert.Equal(t, "http://127.0.0.1:3000/", cfg.SmokeURL)
	assert.Equal(t, "out.json", cfg.ReportPath)
}

func TestApplyEnvEmptyBaseURLKeepsDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.applyEnv(lookupFrom(map[string]string{EnvBaseURL: ""})))
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
}

func TestApplyEnvErrors(t *testing.T) {
	for _, name := range []string{EnvTimeout, EnvParallelism, EnvTotalUsers} {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			assert.Error(t, cfg.applyEnv(lookupFrom(map[string]string{name: "lots"})))
		})
	}
}

func TestValidate(t *testing.T) {
	for name, modify := range map[string]func(*Config){
		"relative URL":    func(c *Config) { c.BaseURL = "/api" },
		"unsupported URL": func(c *Config) { c.BaseURL = "ftp://reqres.in" },
		"zero timeout":    func(c *Config) { c.Timeout = 0 },
		"parallelism":     func(c *Config) { c.Parallelism = 0 },
		"total users":     func(c *Config) { c.TotalUsers = 0 },
		"negative delay":  func(c *Config) { c.Delays = []int{3, -1} },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			modify(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestParsedBaseURL(t *testing.T) {
	cfg := Default()
	cfg.BaseURL = "http://localhost:8080/prefix"
	u := cfg.ParsedBaseURL()
	assert.Equal(t, "localhost:8080", u.Host)
	assert.Equal(t, "/prefix", u.Path)
}
