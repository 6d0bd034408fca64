package identity

import (
	"strings"

	"club_harvester/internal/domain"
)

const (
	venueHome = "Doma"
	venueAway = "Vonku"
)

// Resolve turns one source fragment into a canonical fixture with its key,
// derived status and nulled result fields. Missing fields stay nil.
func Resolve(frag domain.FixtureFragment) domain.Fixture {
	f := domain.Fixture{
		DateISO:      clean(frag.DateISO),
		DateText:     clean(frag.DateText),
		Round:        clean(frag.Round),
		Venue:        clean(frag.Venue),
		TeamHome:     clean(frag.HomeTeam),
		TeamAway:     clean(frag.AwayTeam),
		LogoHomeURL:  clean(frag.HomeLogo),
		LogoAwayURL:  clean(frag.AwayLogo),
		Score:        clean(frag.Score),
		ScorePeriods: clean(frag.ScorePeriods),
		IsWin:        frag.IsWin,
	}

	if f.Venue == nil && frag.IsHome != nil {
		venue := venueAway
		if *frag.IsHome {
			venue = venueHome
		}
		f.Venue = &venue
	}

	f.Status = DeriveStatus(deref(frag.MatchStatus), deref(f.Score), deref(f.ScorePeriods))
	applyStatus(&f)
	f.MatchKey = FixtureKey(&f)

	return f
}

// ReportIndex maps match keys found on the report listing to report URLs.
// Keys are tried in tiers: full datetime before calendar day, and with round
// before without it, so a feed that lacks the round still finds its report.
type ReportIndex struct {
	exact           map[string]string
	exactNoRound    map[string]string
	fallback        map[string]string
	fallbackNoRound map[string]string
}

// NewReportIndex indexes links in listing order; the first link claiming a
// key keeps it. Every key is stored for both team orders.
func NewReportIndex(links []domain.ReportLink) *ReportIndex {
	ix := &ReportIndex{
		exact:           make(map[string]string),
		exactNoRound:    make(map[string]string),
		fallback:        make(map[string]string),
		fallbackNoRound: make(map[string]string),
	}

	for _, link := range links {
		if strings.TrimSpace(link.URL) == "" {
			continue
		}
		date := link.DateISO
		if strings.TrimSpace(date) == "" {
			date = link.DateText
		}
		if NormalizeText(date) == "" {
			continue
		}

		day := date
		if DateOnly(day) == "" {
			day = link.DateText
		}

		for _, teams := range [2][2]string{{link.TeamHome, link.TeamAway}, {link.TeamAway, link.TeamHome}} {
			home, away := teams[0], teams[1]
			putFirst(ix.exact, Key(date, link.Round, home, away), link.URL)
			putFirst(ix.exactNoRound, Key(date, "", home, away), link.URL)
			putFirst(ix.fallback, fallbackKey(day, link.Round, home, away), link.URL)
			putFirst(ix.fallbackNoRound, fallbackKey(day, "", home, away), link.URL)
		}
	}

	return ix
}

// Len returns the number of indexed full keys.
func (ix *ReportIndex) Len() int {
	return len(ix.exact)
}

// Lookup finds the report URL of a fixture. A full-datetime match always wins
// over a date-only one; within each, a match including the round wins.
func (ix *ReportIndex) Lookup(f *domain.Fixture) (string, bool) {
	home, away := deref(f.TeamHome), deref(f.TeamAway)

	date := keyDate(f.DateISO, f.DateText)
	day := deref(f.DateISO)
	if DateOnly(day) == "" {
		day = deref(f.DateText)
	}

	candidates := []struct {
		table map[string]string
		key   string
	}{
		{ix.exact, FixtureKey(f)},
		{ix.exactNoRound, Key(date, "", home, away)},
		{ix.fallback, fallbackKey(day, deref(f.Round), home, away)},
		{ix.fallbackNoRound, fallbackKey(day, "", home, away)},
	}
	for _, c := range candidates {
		if c.key == "" {
			continue
		}
		if url, ok := c.table[c.key]; ok {
			return url, true
		}
	}
	return "", false
}

// Join attaches report URLs to fixtures in place and returns how many were
// attached. Fixtures without a match get a nil report URL.
func Join(fixtures []domain.Fixture, links []domain.ReportLink) int {
	ix := NewReportIndex(links)

	var attached int
	for i := range fixtures {
		fixtures[i].ReportURL = nil
		if url, ok := ix.Lookup(&fixtures[i]); ok {
			u := url
			fixtures[i].ReportURL = &u
			attached++
		}
	}
	return attached
}

func putFirst(m map[string]string, key, value string) {
	if key == "" {
		return
	}
	if _, ok := m[key]; !ok {
		m[key] = value
	}
}

func clean(s *string) *string {
	if s == nil {
		return nil
	}
	t := NormalizeText(*s)
	if t == "" {
		return nil
	}
	return &t
}
