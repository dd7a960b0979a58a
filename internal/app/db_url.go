package app

import (
	"net/url"
	"strings"
)

const preparedBinaryParam = "disable_prepared_binary_result"

// normalizeDBURL turns off binary results for prepared statements, which
// pgbouncer in transaction mode cannot serve. Key/value DSNs and URLs that set
// the flag explicitly are returned unchanged.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}
	query := parsed.Query()
	if query.Has(preparedBinaryParam) {
		return raw
	}
	query.Set(preparedBinaryParam, "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// dbNameFromURL reads the database name from a URL path or a dbname= key.
func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Scheme != "" {
		return strings.Trim(parsed.Path, "/ ")
	}
	for _, token := range strings.Fields(trimmed) {
		if key, value, ok := strings.Cut(token, "="); ok && key == "dbname" {
			return strings.Trim(value, `"'`)
		}
	}
	return ""
}

// redactDBURL hides the password of a URL or a password= key so the DSN can
// be logged.
func redactDBURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Scheme != "" {
		return parsed.Redacted()
	}
	tokens := strings.Fields(trimmed)
	for i, token := range tokens {
		if key, _, ok := strings.Cut(token, "="); ok && key == "password" {
			tokens[i] = "password=xxxxx"
		}
	}
	return strings.Join(tokens, " ")
}
