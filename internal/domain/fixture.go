package domain

import "time"

type FixtureStatus string

const (
	StatusUpcoming FixtureStatus = "upcoming"
	StatusPlayed   FixtureStatus = "played"
)

// Fixture is the canonical row of one match. MatchKey never encodes Status,
// so an upcoming fixture becomes played in place.
type Fixture struct {
	MatchKey     string        `db:"match_key" json:"match_key"`
	Status       FixtureStatus `db:"status" json:"status"`
	DateText     *string       `db:"date_text" json:"date_text"`
	DateISO      *string       `db:"date_iso" json:"date_iso"`
	Round        *string       `db:"round" json:"round"`
	Venue        *string       `db:"venue" json:"venue"`
	TeamHome     *string       `db:"team_home" json:"team_home"`
	TeamAway     *string       `db:"team_away" json:"team_away"`
	LogoHomeURL  *string       `db:"logo_home_url" json:"logo_home_url"`
	LogoAwayURL  *string       `db:"logo_away_url" json:"logo_away_url"`
	Score        *string       `db:"score" json:"score"`
	ScorePeriods *string       `db:"score_periods" json:"score_periods"`
	IsWin        *bool         `db:"is_win" json:"is_win"`
	ReportURL    *string       `db:"report_url" json:"report_url"`
	FirstSeenAt  time.Time     `db:"first_seen_at" json:"first_seen_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// FixtureFragment is one fixture as seen by a single source (JSON feed or
// HTML fixture list). Every field is optional; a field missing from the
// payload stays nil.
type FixtureFragment struct {
	DateISO      *string
	DateText     *string
	MatchStatus  *string
	Round        *string
	Venue        *string
	HomeTeam     *string
	AwayTeam     *string
	IsHome       *bool
	HomeLogo     *string
	AwayLogo     *string
	Score        *string
	ScorePeriods *string
	IsWin        *bool
}

// ReportLink is a report URL found on the HTML fixture listing together with
// the attributes needed to identify its fixture. It lives for one run only.
type ReportLink struct {
	URL      string
	DateText string
	DateISO  string
	Round    string
	TeamHome string
	TeamAway string
}
