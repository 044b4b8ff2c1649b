package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/contractcheck/reqres-contract-tests/config"
	"github.com/contractcheck/reqres-contract-tests/framework"
)

type commandParams struct {
	configPath string
	filters    framework.Filters
	debug      bool
	debugAll   bool

	// Overrides for the configuration file and environment; applied only if given.
	baseURL       string
	timeout       time.Duration
	tags          framework.TagList
	skipTags      framework.TagList
	parallelism   int
	totalUsers    int
	smokeURL      string
	reportPath    string
	contractsPath string
	setFlags      map[string]bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.StringVar(&c.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&c.baseURL, "url", config.DefaultBaseURL, "base URL of the service under test")
	fs.DurationVar(&c.timeout, "timeout", config.DefaultTimeout, "timeout for each request")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.Var(&c.tags, "tag", "marker tag(s) to select tests to run, comma-separated")
	fs.Var(&c.skipTags, "skip-tag", "marker tag(s) to select tests not to run, comma-separated")
	fs.IntVar(&c.parallelism, "parallel", config.DefaultParallelism, "number of independent requests that may run at once")
	fs.IntVar(&c.totalUsers, "total-users", config.DefaultTotalUsers, "number of users the service holds")
	fs.StringVar(&c.smokeURL, "smoke-url", "", "URL to check in the smoke tests")
	fs.StringVar(&c.reportPath, "report", "", "file to write a JSON report to")
	fs.StringVar(&c.contractsPath, "contracts", "", "YAML file of additional expectations")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		return false // the flag set has already reported the error
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return false
	}
	c.setFlags = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { c.setFlags[f.Name] = true })
	return true
}

// applyTo overrides the loaded configuration with whatever was given on the command line.
func (c *commandParams) applyTo(cfg *config.Config) {
	if c.setFlags["url"] {
		cfg.BaseURL = c.baseURL
	}
	if c.setFlags["timeout"] {
		cfg.Timeout = c.timeout
	}
	if c.setFlags["tag"] {
		cfg.Tags = c.tags
	}
	if c.setFlags["skip-tag"] {
		cfg.SkipTags = c.skipTags
	}
	if c.setFlags["parallel"] {
		cfg.Parallelism = c.parallelism
	}
	if c.setFlags["total-users"] {
		cfg.TotalUsers = c.totalUsers
	}
	if c.setFlags["smoke-url"] {
		cfg.SmokeURL = c.smokeURL
	}
	if c.setFlags["report"] {
		cfg.ReportPath = c.reportPath
	}
	if c.setFlags["contracts"] {
		cfg.ContractsPath = c.contractsPath
	}
}

// testFilters combines the regex filters from the command line with the marker tags from the
// final configuration.
func (c *commandParams) testFilters(cfg config.Config) framework.Filters {
	filters := c.filters
	filters.MustHaveTag = append(framework.TagList(nil), cfg.Tags...)
	filters.MustNotTag = append(framework.TagList(nil), cfg.SkipTags...)
	return filters
}
