package domain

import "time"

type ArticleVariant string

const (
	// VariantMatch pages carry a match banner (date, round, score, logos).
	VariantMatch ArticleVariant = "match"
	VariantNews  ArticleVariant = "news"
)

// ArticleCard is one entry of the news listing page.
type ArticleCard struct {
	URL          string
	Title        *string
	DateText     *string
	DateISO      *string
	CardImageURL *string
}

type Article struct {
	URL            string         `db:"url" json:"url"`
	Variant        ArticleVariant `db:"variant" json:"variant"`
	Title          *string        `db:"title" json:"title"`
	DateText       *string        `db:"date_text" json:"date_text"`
	DateISO        *string        `db:"date_iso" json:"date_iso"`
	CardImageURL   *string        `db:"card_image_url" json:"card_image_url"`
	HeaderImageURL *string        `db:"header_image_url" json:"header_image_url"`

	MatchDatetimeText *string `db:"match_datetime_text" json:"match_datetime_text"`
	MatchDatetimeISO  *string `db:"match_datetime_iso" json:"match_datetime_iso"`
	MatchRound        *string `db:"match_round" json:"match_round"`
	MatchScore        *string `db:"match_score" json:"match_score"`
	MatchIsWin        *bool   `db:"match_is_win" json:"match_is_win"`
	MatchLogoHomeURL  *string `db:"match_logo_home_url" json:"match_logo_home_url"`
	MatchLogoAwayURL  *string `db:"match_logo_away_url" json:"match_logo_away_url"`

	ContentHTML string `db:"content_html" json:"content_html,omitempty"`
	ContentText string `db:"content_text" json:"content_text"`

	FirstSeenAt time.Time `db:"first_seen_at" json:"first_seen_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
