// Package query extracts values from JSON response bodies using gjson
// path expressions.
package query

import (
	"github.com/abdul-hamid-achik/bcurl/packages/http"
	"github.com/tidwall/gjson"
)

// Extract returns the value at path in the response body. It reports
// false when the body is not JSON or the path does not resolve, so the
// caller can fall back to the full body.
func Extract(resp *http.Response, path string) (string, bool) {
	if !resp.IsJSON() && !gjson.ValidBytes(resp.Body) {
		return "", false
	}

	result := gjson.GetBytes(resp.Body, path)
	if !result.Exists() {
		return "", false
	}
	return result.String(), true
}
