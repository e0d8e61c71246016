package api

import (
	"strconv"
	"strings"

	"github.com/erigontech/chainview/validate"
)

// canonicalLimitURL replaces the trailing /limit/<n> segment of path with
// preset, producing the Location the §4.4 redirect step points callers at.
func canonicalLimitURL(path string, preset uint64) string {
	const marker = "/limit/"
	i := strings.LastIndex(path, marker)
	if i < 0 {
		return path
	}
	return path[:i+len(marker)] + strconv.FormatUint(preset, 10)
}

// sanitizeLimit parses the :limit segment and checks it against bounds.
// err is an invalid-argument error when the segment is malformed; redirect
// is true when it parses but falls outside bounds (caller should redirect
// using canonicalLimitURL).
func sanitizeLimit(raw string, bounds validate.LimitBounds) (limit uint64, redirect bool, err error) {
	limit, parsed := validate.ParseLimit(raw)
	if !parsed {
		return 0, false, invalidArgf("malformed limit")
	}
	if !bounds.InRange(limit) {
		return limit, true, nil
	}
	return limit, false, nil
}
