package reqrestests

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/contractcheck/reqres-contract-tests/match"
	"github.com/contractcheck/reqres-contract-tests/verifier"
)

func errorBody(message string) match.Matcher {
	return match.Equals(object("error", message))
}

func DoRegisterTests(t *T) {
	t.RunTable(authExpectations(registerPath, validRegistration, missingPassword, match.KeysExactly("id", "token")))
}

func DoLoginTests(t *T) {
	t.RunTable(authExpectations(loginPath, validLogin, unknownUserOnly, match.KeysExactly("token")))
}

func authExpectations(path string, valid, noPassword ldvalue.Value, success match.Matcher) []verifier.Expectation {
	return []verifier.Expectation{
		{
			Name:           "success",
			Method:         "POST",
			Path:           path,
			Body:           valid,
			ExpectedStatus: 200,
			Matcher:        success,
		},
		{
			Name:           "missing password",
			Method:         "POST",
			Path:           path,
			Body:           noPassword,
			ExpectedStatus: 400,
			Matcher:        errorBody(errMissingPassword),
			Idempotent:     true,
		},
		{
			Name:           "missing email",
			Method:         "POST",
			Path:           path,
			Body:           missingEmail,
			ExpectedStatus: 400,
			Matcher:        errorBody(errMissingEmail),
			Idempotent:     true,
		},
	}
}
