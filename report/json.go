package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/sjson"

	"github.com/contractcheck/reqres-contract-tests/match"
	"github.com/contractcheck/reqres-contract-tests/verifier"
)

// WriteJSON writes a JSON report of every verdict to w:
//
//	{"run_id": "...", "base_url": "...", "total": 2, "failed": 1, "verdicts": [...]}
//
// Each verdict has the expectation's name, method, URL, request id, expected and actual status,
// latency in milliseconds, outcome, failure messages, and the decoded body if there was one.
func WriteJSON(w io.Writer, runID, baseURL string, verdicts []verifier.Verdict) error {
	doc := []byte(`{"verdicts":[]}`)
	var err error
	set := func(path string, value interface{}) {
		if err == nil {
			doc, err = sjson.SetBytes(doc, path, value)
		}
	}
	set("run_id", runID)
	set("base_url", baseURL)
	set("total", len(verdicts))

	failed := 0
	for _, v := range verdicts {
		if !v.OK() {
			failed++
		}
		entry, entryErr := verdictJSON(v)
		if entryErr != nil {
			return entryErr
		}
		if err == nil {
			doc, err = sjson.SetRawBytes(doc, "verdicts.-1", entry)
		}
	}
	set("failed", failed)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	doc = append(doc, '\n')
	_, err = w.Write(doc)
	return err
}

func verdictJSON(v verifier.Verdict) ([]byte, error) {
	failures := make([]string, 0, len(v.Failures))
	for _, f := range v.Failures {
		failures = append(failures, f.Error())
	}
	failuresJSON, err := json.Marshal(failures)
	if err != nil {
		return nil, err
	}

	entry := []byte(`{}`)
	fields := []struct {
		path  string
		value interface{}
	}{
		{"name", v.Expectation.Label()},
		{"method", v.Expectation.Method},
		{"url", v.URL},
		{"request_id", v.RequestID},
		{"expected_status", v.Expectation.ExpectedStatus},
		{"status", v.Status},
		{"latency_ms", v.Latency.Milliseconds()},
		{"outcome", v.Outcome.String()},
		{"tags", v.Expectation.Tags},
	}
	for _, f := range fields {
		if entry, err = sjson.SetBytes(entry, f.path, f.value); err != nil {
			return nil, err
		}
	}
	if entry, err = sjson.SetRawBytes(entry, "failures", failuresJSON); err != nil {
		return nil, err
	}
	if !v.DecodedBody.IsNull() {
		if entry, err = sjson.SetRawBytes(entry, "body", []byte(match.JSON(v.DecodedBody))); err != nil {
			return nil, err
		}
	}
	return entry, nil
}
