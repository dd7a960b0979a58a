package app

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxTracedQueryLength = 512

// placeholderRun matches three or more consecutive bind parameters, as built
// for IN lists and multi-row inserts.
var placeholderRun = regexp.MustCompile(`\$(\d+)(?:\s*,\s*\$\d+)*\s*,\s*\$(\d+)`)

// formatDBQueryForTrace flattens whitespace, folds long placeholder lists to
// "$first..$last" and caps the result so span attributes stay small.
func formatDBQueryForTrace(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if normalized == "" {
		return ""
	}

	normalized = placeholderRun.ReplaceAllStringFunc(normalized, func(run string) string {
		if strings.Count(run, ",") < 2 {
			return run
		}
		m := placeholderRun.FindStringSubmatch(run)
		return "$" + m[1] + "..$" + m[2]
	})

	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	cut := maxTracedQueryLength
	for cut > 0 && !utf8.RuneStart(normalized[cut]) {
		cut--
	}
	return normalized[:cut] + "..."
}
