package club

import (
	"bytes"
	"encoding/json"
	"fmt"

	"club_harvester/internal/domain"
)

// ParseFixturesFeed decodes the JSON fixtures feed. A payload that is not an
// array yields no fixtures; items that are not objects are skipped. Only
// malformed JSON is an error.
func (e *Extractor) ParseFixturesFeed(body []byte) ([]domain.FixtureFragment, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		if json.Valid(body) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode fixtures feed: %w", err)
	}

	out := make([]domain.FixtureFragment, 0, len(items))
	for _, raw := range items {
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			continue
		}
		var it feedItem
		if err := json.Unmarshal(raw, &it); err != nil {
			continue
		}
		out = append(out, e.fragmentFromFeed(&it))
	}
	return out, nil
}

func (e *Extractor) fragmentFromFeed(it *feedItem) domain.FixtureFragment {
	frag := domain.FixtureFragment{
		DateISO:      str(it.Date),
		DateText:     str(it.DateFormatted),
		MatchStatus:  str(it.MatchStatus),
		Round:        str(it.Round),
		HomeTeam:     str(it.HomeTeam),
		AwayTeam:     str(it.AwayTeam),
		IsHome:       flag(it.IsHome),
		HomeLogo:     it.homeLogo(),
		AwayLogo:     it.awayLogo(),
		Score:        it.score(),
		ScorePeriods: it.periods(),
		IsWin:        it.win(),
	}
	if frag.HomeLogo != nil {
		frag.HomeLogo = strPtr(e.absolutize(*frag.HomeLogo))
	}
	if frag.AwayLogo != nil {
		frag.AwayLogo = strPtr(e.absolutize(*frag.AwayLogo))
	}
	return frag
}
