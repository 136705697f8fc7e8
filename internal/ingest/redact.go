package ingest

import (
	"regexp"
	"sort"
)

// Redaction marker strings written into fragment text in place of PII.
const (
	MarkerPhone = "[PHONE_REDACTED]"
	MarkerEmail = "[EMAIL_REDACTED]"
	MarkerSSN   = "[SSN_REDACTED]"
)

var (
	// SSN first so 123-45-6789 is not half-eaten by the phone pattern.
	ssnPattern   = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)
	phonePattern = regexp.MustCompile(`(?:\+?1[-.\s]?)?(?:\(\d{3}\)|\b\d{3})[-.\s]\d{3}[-.\s]\d{4}\b`)
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)
)

// Redact masks phone numbers, email addresses, and SSNs in text,
// returning the redacted text and the sorted set of markers applied.
func Redact(text string) (string, []string) {
	markers := make(map[string]struct{})

	apply := func(s string, pattern *regexp.Regexp, marker string) string {
		if !pattern.MatchString(s) {
			return s
		}
		markers[marker] = struct{}{}
		return pattern.ReplaceAllString(s, marker)
	}

	redacted := apply(text, ssnPattern, MarkerSSN)
	redacted = apply(redacted, emailPattern, MarkerEmail)
	redacted = apply(redacted, phonePattern, MarkerPhone)

	if len(markers) == 0 {
		return redacted, nil
	}

	applied := make([]string, 0, len(markers))
	for m := range markers {
		applied = append(applied, m)
	}
	sort.Strings(applied)

	return redacted, applied
}
