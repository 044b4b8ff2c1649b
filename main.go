package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/contractcheck/reqres-contract-tests/config"
	"github.com/contractcheck/reqres-contract-tests/framework"
	"github.com/contractcheck/reqres-contract-tests/report"
	"github.com/contractcheck/reqres-contract-tests/reqrestests"
	"github.com/contractcheck/reqres-contract-tests/verifier"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	var params commandParams
	if !params.Read(args) {
		return 2
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if params.debugAll {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.Load(params.configPath)
	if err != nil {
		log.WithError(err).Error("Invalid configuration")
		return 1
	}
	params.applyTo(&cfg)
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Error("Invalid configuration")
		return 1
	}

	runID := uuid.NewString()
	runLog := log.WithFields(logrus.Fields{"run_id": runID, "base_url": cfg.BaseURL})

	var contracts []verifier.Expectation
	if cfg.ContractsPath != "" {
		contracts, err = loadContracts(cfg.ContractsPath)
		if err != nil {
			runLog.WithError(err).Error("Invalid contracts file")
			return 1
		}
		runLog.Infof("Loaded %d expectations from %s", len(contracts), cfg.ContractsPath)
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = debugLogger{runLog}
	}
	v, err := verifier.New(cfg, mainDebugLogger)
	if err != nil {
		runLog.WithError(err).Error("Could not create verifier")
		return 1
	}

	filters := params.testFilters(cfg)
	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, filters)

	runLog.Info("Running test suite")

	testLogger := &ConsoleTestLogger{
		Out:                  color.Output,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, verdicts := reqrestests.RunTestSuite(ctx, v, cfg, contracts, filters, testLogger)

	fmt.Println()
	report.PrintSummary(os.Stdout, verdicts)
	fmt.Println()
	framework.PrintResults(os.Stdout, results)

	if cfg.ReportPath != "" {
		if err := writeReport(cfg.ReportPath, runID, cfg.BaseURL, verdicts); err != nil {
			runLog.WithError(err).Error("Could not write report")
			return 1
		}
		runLog.Infof("Wrote report to %s", cfg.ReportPath)
	}

	if !results.OK() {
		return 1
	}
	return 0
}

// debugLogger adapts a logrus entry to framework.Logger at debug level.
type debugLogger struct {
	entry *logrus.Entry
}

func (d debugLogger) Printf(message string, args ...interface{}) {
	d.entry.Debugf(message, args...)
}

func loadContracts(path string) ([]verifier.Expectation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return verifier.LoadExpectations(f)
}

func writeReport(path, runID, baseURL string, verdicts []verifier.Verdict) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteJSON(f, runID, baseURL, verdicts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
