package reqrestests

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/contractcheck/reqres-contract-tests/match"
	"github.com/contractcheck/reqres-contract-tests/verifier"
)

func DoResourceTests(t *T) {
	t.RunTable([]verifier.Expectation{
		{
			Name:           "list resources",
			Method:         "GET",
			Path:           unknownPath,
			ExpectedStatus: 200,
			Matcher:        match.Field("data", ldvalue.ArrayOf(allResources...)),
			Idempotent:     true,
		},
		{
			Name:           "single resource",
			Method:         "GET",
			Path:           resourcePath,
			PathParams:     map[string]string{"id": "2"},
			ExpectedStatus: 200,
			Matcher: match.All(
				match.Field("data.id", ldvalue.Int(2)),
				match.Field("data", allResources[1]),
			),
			Idempotent: true,
		},
		{
			Name:           "unknown resource",
			Method:         "GET",
			Path:           resourcePath,
			PathParams:     map[string]string{"id": missingResourceID},
			ExpectedStatus: 404,
			Matcher:        match.EmptyObject(),
			Idempotent:     true,
		},
	})
}
