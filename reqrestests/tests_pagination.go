package reqrestests

import (
	"fmt"
	"strconv"

	"github.com/contractcheck/reqres-contract-tests/config"
	"github.com/contractcheck/reqres-contract-tests/match"
	"github.com/contractcheck/reqres-contract-tests/verifier"
)

type pageRow struct {
	page, perPage int
	// length is the expected number of items when the service holds the default number of users.
	length int
}

var pageTable = []pageRow{
	{1, 1, 1},
	{1, 4, 4},
	{2, 4, 4},
	{1, 7, 7},
	{2, 7, 5},
	{1, 12, 12},
	{2, 12, 0},
	{2, 15, 0},
}

func DoPaginationTests(t *T) {
	total := t.Config().TotalUsers
	if total == config.DefaultTotalUsers {
		for _, row := range pageTable {
			if got := match.ExpectedPageLength(row.page, row.perPage, total); got != row.length {
				t.Errorf("page table row %+v disagrees with computed length %d", row, got)
			}
		}
	}

	var exps []verifier.Expectation
	for _, row := range pageTable {
		exps = append(exps, verifier.Expectation{
			Name:   fmt.Sprintf("page=%d per_page=%d", row.page, row.perPage),
			Method: "GET",
			Path:   usersPath,
			Query: map[string]string{
				"page":     strconv.Itoa(row.page),
				"per_page": strconv.Itoa(row.perPage),
			},
			ExpectedStatus: 200,
			Matcher:        match.Page(row.page, row.perPage, total),
			Idempotent:     true,
		})
	}
	t.RunTable(exps)
}
