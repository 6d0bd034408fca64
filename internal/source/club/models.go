package club

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// feedItem is one object of the fixtures feed. Every field is optional and
// kept raw, because the feed mixes strings, numbers and booleans for the same
// key. Aliases are separate fields; the first non-empty one wins.
type feedItem struct {
	Date          json.RawMessage `json:"date"`
	DateFormatted json.RawMessage `json:"dateFormatted"`
	MatchStatus   json.RawMessage `json:"matchStatus"`
	Round         json.RawMessage `json:"round"`
	HomeTeam      json.RawMessage `json:"homeTeam"`
	AwayTeam      json.RawMessage `json:"awayTeam"`
	IsHome        json.RawMessage `json:"isHome"`

	HomeLogo     json.RawMessage `json:"homeLogo"`
	HomeTeamLogo json.RawMessage `json:"homeTeamLogo"`
	LogoHome     json.RawMessage `json:"logoHome"`
	AwayLogo     json.RawMessage `json:"awayLogo"`
	AwayTeamLogo json.RawMessage `json:"awayTeamLogo"`
	LogoAway     json.RawMessage `json:"logoAway"`

	Score      json.RawMessage `json:"score"`
	Result     json.RawMessage `json:"result"`
	FinalScore json.RawMessage `json:"finalScore"`

	ScorePeriods      json.RawMessage `json:"scorePeriods"`
	Periods           json.RawMessage `json:"periods"`
	ScorePeriodsSnake json.RawMessage `json:"score_periods"`

	IsWin json.RawMessage `json:"isWin"`
	Win   json.RawMessage `json:"win"`
}

func (it *feedItem) homeLogo() *string {
	return first(it.HomeLogo, it.HomeTeamLogo, it.LogoHome)
}

func (it *feedItem) awayLogo() *string {
	return first(it.AwayLogo, it.AwayTeamLogo, it.LogoAway)
}

func (it *feedItem) score() *string {
	return first(it.Score, it.Result, it.FinalScore)
}

func (it *feedItem) periods() *string {
	return first(it.ScorePeriods, it.Periods, it.ScorePeriodsSnake)
}

// win reads the first win alias present, even when its value is unreadable.
func (it *feedItem) win() *bool {
	return firstFlag(it.IsWin, it.Win)
}

// str returns the trimmed string form of a scalar value; nil for a missing
// key, null, empty strings, objects and arrays.
func str(raw json.RawMessage) *string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		return strPtr(s)
	case '{', '[':
		return nil
	default:
		return strPtr(string(raw))
	}
}

// first returns the first non-empty value among aliases.
func first(raws ...json.RawMessage) *string {
	for _, raw := range raws {
		if v := str(raw); v != nil {
			return v
		}
	}
	return nil
}

// flag reads "1"/"0", "true"/"false", numbers and booleans.
func flag(raw json.RawMessage) *bool {
	if raw == nil || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return &b
	}

	s := str(raw)
	if s == nil {
		return nil
	}
	switch strings.ToLower(*s) {
	case "true", "yes":
		b = true
		return &b
	case "false", "no":
		return &b
	}
	if f, err := strconv.ParseFloat(*s, 64); err == nil {
		b = f != 0
		return &b
	}
	return nil
}

// firstFlag reads the first alias present in the item, even when its value
// cannot be read as a flag.
func firstFlag(raws ...json.RawMessage) *bool {
	for _, raw := range raws {
		if raw != nil {
			return flag(raw)
		}
	}
	return nil
}
