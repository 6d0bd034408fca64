package identity

import (
	"strings"

	"club_harvester/internal/domain"
)

const keySep = "|"

// Key builds the canonical match key: date, round, home team and away team
// joined by "|", with leading and trailing separators stripped when a field
// is empty. The fixture status never takes part in the key.
func Key(date, round, home, away string) string {
	parts := []string{
		NormalizeDate(date),
		NormalizeText(round),
		NormalizeText(home),
		NormalizeText(away),
	}
	return strings.Trim(strings.Join(parts, keySep), keySep)
}

// FixtureKey derives the key of a stored fixture, preferring the ISO date
// over the display text.
func FixtureKey(f *domain.Fixture) string {
	return Key(keyDate(f.DateISO, f.DateText), deref(f.Round), deref(f.TeamHome), deref(f.TeamAway))
}

// fallbackKey is the date-only key used when the full keys disagree on time
// or round formatting. It returns "" without a recognisable date.
func fallbackKey(date, round, home, away string) string {
	day := DateOnly(date)
	if day == "" {
		return ""
	}
	parts := []string{day, CompactRound(round), NormalizeText(home), NormalizeText(away)}
	return strings.Trim(strings.Join(parts, keySep), keySep)
}

func keyDate(iso, text *string) string {
	if d := strings.TrimSpace(deref(iso)); d != "" {
		return d
	}
	return strings.TrimSpace(deref(text))
}
