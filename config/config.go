// Package config loads the settings for a contract test run.
//
// Settings are applied in this order, each overriding the one before: built-in defaults, a YAML
// file, a .env file in the working directory, CONTRACT_* environment variables, and finally
// command line flags (applied by the caller). The result is passed around by value and never
// modified after the run starts.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL     = "https://reqres.in"
	DefaultTimeout     = time.Minute
	DefaultTotalUsers  = 12
	DefaultParallelism = 1
)

// DefaultDelays are the values of the delay query parameter exercised by the delay tests.
var DefaultDelays = []int{3, 12, 30}

const (
	EnvBaseURL     = "CONTRACT_BASE_URL"
	EnvTimeout     = "CONTRACT_TIMEOUT"
	EnvTags        = "CONTRACT_TAGS"
	EnvSkipTags    = "CONTRACT_SKIP_TAGS"
	EnvParallelism = "CONTRACT_PARALLELISM"
	EnvTotalUsers  = "CONTRACT_TOTAL_USERS"
	EnvSmokeURL    = "CONTRACT_SMOKE_URL"
	EnvReportPath  = "CONTRACT_REPORT"
)

// Config holds the settings for one run.
type Config struct {
	// BaseURL is where the API under test lives, e.g. a local mock instead of the hosted service.
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each request, so an unreachable service fails the test instead of hanging.
	Timeout time.Duration `yaml:"timeout"`

	// Tags selects expectations carrying any of these marker tags; empty means all.
	Tags []string `yaml:"tags"`

	// SkipTags excludes expectations carrying any of these marker tags.
	SkipTags []string `yaml:"skip_tags"`

	// Parallelism is how many independent lanes of expectations may run at once.
	Parallelism int `yaml:"parallelism"`

	// TotalUsers is the number of users the service is known to hold, for the pagination and
	// per-id tests.
	TotalUsers int `yaml:"total_users"`

	// Delays are the delay query values to test, in seconds.
	Delays []int `yaml:"delays"`

	// SmokeURL, if set, is checked by the smoke tests.
	SmokeURL string `yaml:"smoke_url"`

	// ReportPath, if set, is where a JSON report of every verdict is written.
	ReportPath string `yaml:"report_path"`

	// ContractsPath, if set, is a YAML file of additional expectations.
	ContractsPath string `yaml:"contracts"`
}

// Default returns the configuration used when nothing else is specified.
func Default() Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		Timeout:     DefaultTimeout,
		Parallelism: DefaultParallelism,
		TotalUsers:  DefaultTotalUsers,
		Delays:      append([]int(nil), DefaultDelays...),
	}
}

// Load builds a Config from the defaults, the YAML file at path (if path is not empty), a .env
// file (if one exists) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// godotenv.Load never overrides variables that are already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read .env file: %w", err)
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvBaseURL); ok && v != "" {
		c.BaseURL = v
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v, ok := lookup(EnvTags); ok {
		c.Tags = splitList(v)
	}
	if v, ok := lookup(EnvSkipTags); ok {
		c.SkipTags = splitList(v)
	}
	if v, ok := lookup(EnvParallelism); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvParallelism, err)
		}
		c.Parallelism = n
	}
	if v, ok := lookup(EnvTotalUsers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTotalUsers, err)
		}
		c.TotalUsers = n
	}
	if v, ok := lookup(EnvSmokeURL); ok {
		c.SmokeURL = v
	}
	if v, ok := lookup(EnvReportPath); ok {
		c.ReportPath = v
	}
	return nil
}

// Validate checks that the configuration can be used for a run.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("base URL %q must be an absolute http or https URL", c.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base URL %q must be an absolute http or https URL", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("parallelism must be at least 1, got %d", c.Parallelism)
	}
	if c.TotalUsers < 1 {
		return fmt.Errorf("total users must be at least 1, got %d", c.TotalUsers)
	}
	for _, d := range c.Delays {
		if d < 0 {
			return fmt.Errorf("delays must not be negative, got %d", d)
		}
	}
	return nil
}

// ParsedBaseURL returns BaseURL as a URL. It assumes Validate has passed.
func (c Config) ParsedBaseURL() *url.URL {
	u, _ := url.Parse(c.BaseURL)
	return u
}

func splitList(s string) []string {
	var ret []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ret = append(ret, part)
		}
	}
	return ret
}
