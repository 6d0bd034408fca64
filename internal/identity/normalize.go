package identity

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	colonOffsetRe = regexp.MustCompile(`([+-])(\d{2}):(\d{2})$`)
	isoDateRe     = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
	dayFirstRe    = regexp.MustCompile(`(\d{1,2})\.\s*(\d{1,2})\.\s*(\d{4})`)
)

// NormalizeText replaces non-breaking spaces, applies NFC and collapses
// whitespace runs into single spaces.
func NormalizeText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = norm.NFC.String(s)
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeDate normalizes whitespace and, for ISO datetimes, rewrites the
// timezone offset into the compact form: "+01:00" -> "+0100", "Z" -> "+0000".
func NormalizeDate(s string) string {
	s = NormalizeText(s)
	if !isoDateRe.MatchString(s) || !strings.Contains(s, "T") {
		return s
	}
	if strings.HasSuffix(s, "Z") {
		return strings.TrimSuffix(s, "Z") + "+0000"
	}
	return colonOffsetRe.ReplaceAllString(s, "$1$2$3")
}

// CompactRound removes spaces around dots: "12. kolo" and "12 .kolo" both
// become "12.kolo".
func CompactRound(s string) string {
	s = NormalizeText(s)
	s = strings.ReplaceAll(s, " .", ".")
	s = strings.ReplaceAll(s, ". ", ".")
	return s
}

// DateOnly extracts the calendar date as YYYY-MM-DD from an ISO datetime or a
// day-first display text ("10.01.2025", "pi 10. 1. 2025 18:00").
// It returns "" when no date can be recognised.
func DateOnly(s string) string {
	s = NormalizeText(s)
	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])
	}
	if m := dayFirstRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if day < 1 || day > 31 || month < 1 || month > 12 {
			return ""
		}
		return fmt.Sprintf("%s-%02d-%02d", m[3], month, day)
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
