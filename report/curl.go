package report

import (
	"sort"
	"strings"

	"github.com/alessio/shellescape"

	"github.com/contractcheck/reqres-contract-tests/verifier"
)

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// CurlCommand returns a shell command that repeats the request made for a verdict, so that a
// failure can be reproduced by hand. It returns "" if no request was made.
func CurlCommand(v verifier.Verdict) string {
	if v.URL == "" {
		return ""
	}
	var b commandBuilder
	b.add("curl", "-i", "-X", v.Method)
	headers := map[string]string{verifier.RequestIDHeader: v.RequestID}
	if v.RequestBody != nil {
		headers["Content-Type"] = "application/json"
	}
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.add("-H", name+": "+headers[name])
	}
	if v.RequestBody != nil {
		b.add("--data", string(v.RequestBody))
	}
	b.add(v.URL)
	return b.String()
}
