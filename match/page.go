package match

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

// ExpectedPageLength is the number of items a paged listing of total items returns for the
// given 1-based page when each page holds perPage items: everything left after the earlier
// pages, but never more than perPage and never less than zero.
func ExpectedPageLength(page, perPage, total int) int {
	n := total - (page-1)*perPage
	if n < 0 {
		return 0
	}
	if n > perPage {
		return perPage
	}
	return n
}

// Page returns a matcher for one page of a reqres listing: the page and per_page properties
// must echo the request, and the data array must hold ExpectedPageLength items.
func Page(page, perPage, total int) Matcher {
	return All(
		Field("page", ldvalue.Int(page)),
		Field("per_page", ldvalue.Int(perPage)),
		ArrayOfSize("data", ExpectedPageLength(page, perPage, total)),
	)
}
