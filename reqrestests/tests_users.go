package reqrestests

import (
	"fmt"
	"strconv"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/contractcheck/reqres-contract-tests/match"
	"github.com/contractcheck/reqres-contract-tests/verifier"
)

func DoUserTests(t *T) {
	total := t.Config().TotalUsers

	t.Run("single user", func(t *T) {
		t.Expect(verifier.Expectation{
			Method:         "GET",
			Path:           userPath,
			PathParams:     map[string]string{"id": "2"},
			ExpectedStatus: 200,
			Matcher: match.All(
				match.Field("data.id", ldvalue.Int(2)),
				match.Field("data", janetWeaver(t.Config().BaseURL)),
			),
			Idempotent: true,
		})
	})

	t.RunGroup("every user id", nil, func(t *T) {
		var exps []verifier.Expectation
		for id := 1; id <= total; id++ {
			exps = append(exps, verifier.Expectation{
				Name:           fmt.Sprintf("id=%d", id),
				Method:         "GET",
				Path:           userPath,
				PathParams:     map[string]string{"id": strconv.Itoa(id)},
				ExpectedStatus: 200,
				Matcher:        match.Field("data.id", ldvalue.Int(id)),
				Idempotent:     true,
			})
		}
		t.RunTable(exps)
	})

	t.RunGroup("unknown user id", nil, func(t *T) {
		var exps []verifier.Expectation
		for _, id := range invalidUserIDs(total) {
			exps = append(exps, verifier.Expectation{
				Name:           fmt.Sprintf("id=%d", id),
				Method:         "GET",
				Path:           userPath,
				PathParams:     map[string]string{"id": strconv.Itoa(id)},
				ExpectedStatus: 404,
				Matcher:        match.EmptyObject(),
				Idempotent:     true,
			})
		}
		t.RunTable(exps)
	})

	t.Run("list users", func(t *T) {
		t.Expect(verifier.Expectation{
			Method:          "GET",
			Path:            usersPath,
			ExpectedStatus:  200,
			ExpectedHeaders: map[string]string{"Content-Type": jsonContentType},
			Matcher: match.All(
				match.Page(1, defaultPerPage, total),
				match.Field("total", ldvalue.Int(total)),
			),
			Idempotent: true,
		})
	})
}

// invalidUserIDs returns the first id past the end of the user list, plus the ids that the
// service is known to reject, if they are out of range.
func invalidUserIDs(total int) []int {
	ids := []int{total + 1}
	for _, id := range []int{23, 24} {
		if id > total+1 {
			ids = append(ids, id)
		}
	}
	return ids
}
