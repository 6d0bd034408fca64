package identity

import (
	"regexp"
	"strings"

	"club_harvester/internal/domain"
)

// digits:digits with an optional annotation such as "2:1 pp"
var realScoreRe = regexp.MustCompile(`^\d+\s*:\s*\d+(\D.*)?$`)

// IsRealScore reports whether s is a genuine numeric score rather than a
// placeholder such as "VS".
func IsRealScore(s string) bool {
	t := NormalizeText(s)
	if t == "" || strings.EqualFold(t, "vs") {
		return false
	}
	return realScoreRe.MatchString(t)
}

// DeriveStatus decides whether a fixture was played. A recognised explicit
// status is authoritative. Only when it is missing or unknown does a real
// score or a period breakdown imply "played".
func DeriveStatus(rawStatus, score, periods string) domain.FixtureStatus {
	switch strings.ToLower(NormalizeText(rawStatus)) {
	case string(domain.StatusPlayed):
		return domain.StatusPlayed
	case string(domain.StatusUpcoming):
		return domain.StatusUpcoming
	}
	if IsRealScore(score) || NormalizeText(periods) != "" {
		return domain.StatusPlayed
	}
	return domain.StatusUpcoming
}

// applyStatus clears result fields that are only meaningful once played.
func applyStatus(f *domain.Fixture) {
	if f.Status != domain.StatusPlayed {
		f.Score = nil
		f.ScorePeriods = nil
		f.IsWin = nil
		return
	}
	if f.Score != nil && !IsRealScore(*f.Score) {
		f.Score = nil
	}
}
