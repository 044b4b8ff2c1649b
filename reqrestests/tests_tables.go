package reqrestests

import (
	"fmt"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/contractcheck/reqres-contract-tests/match"
	"github.com/contractcheck/reqres-contract-tests/verifier"
)

type endpointRow struct {
	method string
	path   string
	body   ldvalue.Value
	status int
}

// endpointTable covers every endpoint and verb of the API. It is checked twice: once for the
// status code and once for the content type.
func endpointTable() []endpointRow {
	return []endpointRow{
		{"GET", "/api/users", ldvalue.Null(), 200},
		{"GET", "/api/users/2", ldvalue.Null(), 200},
		{"GET", "/api/users/24", ldvalue.Null(), 404},
		{"GET", "/api/unknown", ldvalue.Null(), 200},
		{"GET", "/api/unknown/2", ldvalue.Null(), 200},
		{"GET", "/api/unknown/25", ldvalue.Null(), 404},
		{"POST", "/api/users", createUserBody, 201},
		{"PUT", "/api/users/2", updateUserBody, 200},
		{"PATCH", "/api/users/2", updateUserBody, 200},
		{"DELETE", "/api/users/2", ldvalue.Null(), 204},
		{"POST", "/api/register", validLogin, 200},
		{"POST", "/api/register", missingEmail, 400},
		{"POST", "/api/register", unknownUserOnly, 400},
		{"POST", "/api/login", validLogin, 200},
		{"POST", "/api/login", missingEmail, 400},
		{"POST", "/api/login", unknownUserOnly, 400},
		{"GET", "/api/users?delay=3", ldvalue.Null(), 200},
	}
}

func (r endpointRow) expectation() verifier.Expectation {
	name := r.method + " " + r.path
	if !r.body.IsNull() {
		name += " " + match.JSON(r.body)
	}
	exp := verifier.Expectation{
		Name:           fmt.Sprintf("%s -> %d", name, r.status),
		Method:         r.method,
		Path:           r.path,
		Body:           r.body,
		ExpectedStatus: r.status,
		Idempotent:     verifier.DefaultIdempotent(r.method),
	}
	if r.method != "GET" && r.method != "POST" && strings.HasPrefix(r.path, usersPath) {
		exp.Lane = userLane
	}
	return exp
}

// statusCodeTable is endpointTable, except that updates are sent to the collection rather than
// to a single user; the service accepts both.
func statusCodeTable() []endpointRow {
	rows := endpointTable()
	for i, row := range rows {
		if row.method == "PUT" || row.method == "PATCH" {
			rows[i].path = usersPath
		}
	}
	return rows
}

func DoStatusCodeTests(t *T) {
	var exps []verifier.Expectation
	for _, row := range statusCodeTable() {
		exps = append(exps, row.expectation())
	}
	t.RunTable(exps)
}

func DoContentTypeTests(t *T) {
	var exps []verifier.Expectation
	for _, row := range endpointTable() {
		exp := row.expectation()
		exp.ExpectedHeaders = map[string]string{"Content-Type": jsonContentType}
		exps = append(exps, exp)
	}
	t.RunTable(exps)
}
