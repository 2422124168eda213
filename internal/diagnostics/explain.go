// Package diagnostics builds human-readable breadcrumbs describing why a
// row matched, for the CLI's result descriptions and the detail field of
// the server's search response rows.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/eci-voterfind/voterfind/internal/rank"
)

// Explain renders a ranking result into a short, greppable breadcrumb:
// which field matched, the ranker's own detail string, and the key's
// elements in order. It never fails — a disqualified result renders as a
// fixed "no match" string rather than an error, the same degrade-to-a-
// fixed-string shape a RunCommand helper uses rather than propagating
// every remote-command failure to the caller.
func Explain(field string, res rank.Result) string {
	if !res.OK {
		return fmt.Sprintf("%s: no match", field)
	}

	parts := make([]string, len(res.Key))
	for i, v := range res.Key {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return fmt.Sprintf("%s: %s [key=%s]", field, res.Detail, strings.Join(parts, ","))
}
