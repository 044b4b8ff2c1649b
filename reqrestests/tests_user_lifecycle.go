package reqrestests

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/contractcheck/reqres-contract-tests/match"
	"github.com/contractcheck/reqres-contract-tests/verifier"
)

func echoes(body ldvalue.Value) match.Matcher {
	fields := make(map[string]ldvalue.Value)
	for _, key := range body.Keys() {
		fields[key] = body.GetByKey(key)
	}
	return match.Fields(fields)
}

// DoUserLifecycleTests creates, changes and deletes a user. These calls share the remote state
// of user 2, so they all run in one lane.
func DoUserLifecycleTests(t *T) {
	t.RunTable([]verifier.Expectation{
		{
			Name:           "create user",
			Method:         "POST",
			Path:           usersPath,
			Body:           createUserBody,
			ExpectedStatus: 201,
			Matcher:        echoes(createUserBody),
			Lane:           userLane,
		},
		{
			Name:           "update user",
			Method:         "PUT",
			Path:           userPath,
			PathParams:     map[string]string{"id": "2"},
			Body:           updateUserBody,
			ExpectedStatus: 200,
			Matcher:        echoes(updateUserBody),
			Lane:           userLane,
			Idempotent:     true,
		},
		{
			Name:           "patch user",
			Method:         "PATCH",
			Path:           userPath,
			PathParams:     map[string]string{"id": "2"},
			Body:           updateUserBody,
			ExpectedStatus: 200,
			Matcher:        echoes(updateUserBody),
			Lane:           userLane,
			Idempotent:     true,
		},
		{
			Name:            "delete user",
			Method:          "DELETE",
			Path:            userPath,
			PathParams:      map[string]string{"id": "2"},
			ExpectedStatus:  204,
			ExpectEmptyBody: true,
			Lane:            userLane,
		},
	})
}
