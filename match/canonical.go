package match

import (
	"encoding/json"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// JSON returns the JSON encoding of v with object keys in sorted order, so that the same value
// always produces the same text in test names and diagnostics.
func JSON(v ldvalue.Value) string {
	data, err := json.Marshal(v.AsArbitraryValue())
	if err != nil {
		return v.JSONString()
	}
	return string(data)
}
