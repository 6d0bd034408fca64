package club

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"club_harvester/internal/domain"
	"club_harvester/internal/testutil"
)

const baseURL = "https://www.hckosice.sk"

func newExtractor(t *testing.T) *Extractor {
	t.Helper()
	e, err := NewExtractor(baseURL)
	require.NoError(t, err)
	return e
}

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestNewExtractor_RejectsRelativeBase(t *testing.T) {
	_, err := NewExtractor("/novinky")
	assert.Error(t, err)
}

func TestParseNewsList(t *testing.T) {
	e := newExtractor(t)

	cards, err := e.ParseNewsList(readFixture(t, "novinky.html"), 30)
	require.NoError(t, err)
	require.Len(t, cards, 3)

	assert.Equal(t, "https://www.hckosice.sk/novinky/vyhra-nad-hc-y", cards[0].URL)
	assert.Equal(t, "Výhra nad HC Y", *cards[0].Title)
	assert.Equal(t, "10.01.2025", *cards[0].DateText)
	assert.Equal(t, "2025-01-10T00:00:00", *cards[0].DateISO)
	assert.Equal(t, "https://www.hckosice.sk/media/cards/1.jpg", *cards[0].CardImageURL)

	assert.Equal(t, "https://www.hckosice.sk/novinky/novy-trener", cards[1].URL)
	assert.Equal(t, "Nový tréner", *cards[1].Title)
	assert.Equal(t, "https://www.hckosice.sk/media/cards/2.jpg", *cards[1].CardImageURL)

	assert.Nil(t, cards[2].DateText)
	assert.Nil(t, cards[2].DateISO)
	assert.Nil(t, cards[2].CardImageURL)
}

func TestParseNewsList_Limit(t *testing.T) {
	e := newExtractor(t)

	cards, err := e.ParseNewsList(readFixture(t, "novinky.html"), 1)
	require.NoError(t, err)
	assert.Len(t, cards, 1)
}

func TestParseArticle_MatchVariant(t *testing.T) {
	e := newExtractor(t)
	card := domain.ArticleCard{
		URL:          "https://www.hckosice.sk/novinky/vyhra-nad-hc-y",
		Title:        testutil.Ptr("Card title"),
		DateText:     testutil.Ptr("10.01.2025"),
		DateISO:      testutil.Ptr("2025-01-10T00:00:00"),
		CardImageURL: testutil.Ptr("https://www.hckosice.sk/media/cards/1.jpg"),
	}

	a, err := e.ParseArticle(readFixture(t, "article_match.html"), card)
	require.NoError(t, err)

	assert.Equal(t, domain.VariantMatch, a.Variant)
	assert.Equal(t, card.URL, a.URL)
	assert.Equal(t, "HC X - HC Y 4:3", *a.Title)
	assert.Equal(t, "10.01.2025", *a.DateText)
	assert.Equal(t, "2025-01-10T00:00:00", *a.DateISO)
	assert.Equal(t, card.CardImageURL, a.CardImageURL)
	assert.Nil(t, a.HeaderImageURL)

	assert.Equal(t, "pi 10.01.2025 18:00", *a.MatchDatetimeText)
	assert.Equal(t, "2025-01-10T18:00:00+0100", *a.MatchDatetimeISO)
	assert.Equal(t, "12. kolo", *a.MatchRound)
	assert.Equal(t, "4 : 3", *a.MatchScore)
	require.NotNil(t, a.MatchIsWin)
	assert.True(t, *a.MatchIsWin)
	assert.Equal(t, "https://www.hckosice.sk/logos/x.png", *a.MatchLogoHomeURL)
	assert.Equal(t, "https://www.hckosice.sk/logos/y.png", *a.MatchLogoAwayURL)

	assert.Contains(t, a.ContentHTML, "<p>Prvá tretina</p>")
	assert.Equal(t, "Prvá tretina\nDruhá\ntretina", a.ContentText)
}

func TestParseArticle_NewsVariant(t *testing.T) {
	e := newExtractor(t)
	card := domain.ArticleCard{
		URL:      "https://www.hckosice.sk/novinky/novy-trener",
		Title:    testutil.Ptr("Card title"),
		DateText: testutil.Ptr("08.01.2025"),
		DateISO:  testutil.Ptr("2025-01-08T00:00:00"),
	}

	a, err := e.ParseArticle(readFixture(t, "article_news.html"), card)
	require.NoError(t, err)

	assert.Equal(t, domain.VariantNews, a.Variant)
	assert.Equal(t, "Nový tréner", *a.Title)
	assert.Equal(t, "PRIDANÉ: 09.01.2025", *a.DateText)
	assert.Equal(t, "2025-01-09T00:00:00", *a.DateISO)
	assert.Equal(t, "https://www.hckosice.sk/media/header.jpg", *a.HeaderImageURL)
	assert.Nil(t, a.MatchScore)
	assert.Nil(t, a.MatchIsWin)
	assert.Equal(t, "Klub predstavil nového trénera.\nPodpísal zmluvu na dva roky.", a.ContentText)
}

func TestParseArticle_NewsVariantFallsBackToCard(t *testing.T) {
	e := newExtractor(t)
	card := domain.ArticleCard{
		URL:      "https://www.hckosice.sk/novinky/kratka",
		Title:    testutil.Ptr("Krátka správa"),
		DateText: testutil.Ptr("08.01.2025"),
		DateISO:  testutil.Ptr("2025-01-08T00:00:00"),
	}
	page := []byte(`<html><body><div property="schema:text"><p>Text.</p></div></body></html>`)

	a, err := e.ParseArticle(page, card)
	require.NoError(t, err)

	assert.Equal(t, "Krátka správa", *a.Title)
	assert.Equal(t, "08.01.2025", *a.DateText)
	assert.Equal(t, "2025-01-08T00:00:00", *a.DateISO)
	assert.Equal(t, "Text.", a.ContentText)
}

func TestParseFixtureList(t *testing.T) {
	e := newExtractor(t)

	frags, err := e.ParseFixtureList(readFixture(t, "zapasy.html"))
	require.NoError(t, err)
	require.Len(t, frags, 3)

	played := frags[0]
	assert.Equal(t, "2025-01-10T18:00:00+0100", *played.DateISO)
	assert.Equal(t, "pi 10.01.2025 18:00", *played.DateText)
	assert.Equal(t, "12. kolo", *played.Round)
	assert.Equal(t, "Vonku", *played.Venue)
	assert.Equal(t, "HC Y", *played.HomeTeam)
	assert.Equal(t, "HC X", *played.AwayTeam)
	assert.Equal(t, "https://www.hckosice.sk/logos/y.png", *played.HomeLogo)
	assert.Equal(t, "https://www.hckosice.sk/logos/x.png", *played.AwayLogo)
	assert.Equal(t, "3:4", *played.Score)
	assert.Equal(t, "(1:1, 1:2, 1:1)", *played.ScorePeriods)
	assert.True(t, *played.IsWin)

	upcoming := frags[1]
	assert.Equal(t, "2025-01-18T17:00:00", *upcoming.DateISO)
	assert.Equal(t, "Doma", *upcoming.Venue)
	assert.Equal(t, "VS", *upcoming.Score)
	assert.Nil(t, upcoming.ScorePeriods)
	assert.Nil(t, upcoming.HomeLogo)

	assert.Nil(t, frags[2].DateText)
	assert.Nil(t, frags[2].HomeTeam)
}

func TestParseReportLinks(t *testing.T) {
	e := newExtractor(t)

	links, err := e.ParseReportLinks(readFixture(t, "zapasy.html"))
	require.NoError(t, err)
	require.Len(t, links, 1)

	assert.Equal(t, domain.ReportLink{
		URL:      "https://www.hckosice.sk/zapasy/abc",
		DateText: "pi 10.01.2025 18:00",
		DateISO:  "2025-01-10T18:00:00+0100",
		Round:    "12. kolo",
		TeamHome: "HC Y",
		TeamAway: "HC X",
	}, links[0])
}

func TestIsReportHref(t *testing.T) {
	tests := map[string]bool{
		"/a-muzstvo/zapasy/hc-x-hc-y": true,
		"/zapasy/abc":                 true,
		"/A-MUZSTVO/ZAPASY/ABC":       true,
		"/a-muzstvo/zapasy":           false,
		"/zapasy/":                    false,
		"/novinky/abc":                false,
		"":                            false,
	}
	for href, want := range tests {
		assert.Equal(t, want, isReportHref(href), href)
	}
}

func TestParseFixturesFeed(t *testing.T) {
	e := newExtractor(t)

	frags, err := e.ParseFixturesFeed(readFixture(t, "feed.json"))
	require.NoError(t, err)
	require.Len(t, frags, 3)

	first := frags[0]
	assert.Equal(t, "2025-01-10T18:00:00+0100", *first.DateISO)
	assert.Equal(t, "pi 10.01.2025 18:00", *first.DateText)
	assert.Equal(t, "played", *first.MatchStatus)
	assert.Equal(t, "HC X", *first.HomeTeam)
	assert.Equal(t, "HC Y", *first.AwayTeam)
	assert.True(t, *first.IsHome)
	assert.Equal(t, "https://www.hckosice.sk/logos/x.png", *first.HomeLogo)
	assert.Equal(t, "https://cdn.example/y.png", *first.AwayLogo)
	assert.Equal(t, "4:3", *first.Score)
	assert.Equal(t, "(1:1, 2:1, 1:1)", *first.ScorePeriods)
	assert.True(t, *first.IsWin)

	second := frags[1]
	assert.False(t, *second.IsHome)
	assert.Equal(t, "VS", *second.Score)
	assert.Nil(t, second.DateText)
	assert.Nil(t, second.IsWin)

	empty := frags[2]
	assert.Nil(t, empty.DateISO)
	assert.Nil(t, empty.HomeTeam)
	assert.Nil(t, empty.IsHome)
}

func TestParseFixturesFeed_NonArray(t *testing.T) {
	e := newExtractor(t)

	frags, err := e.ParseFixturesFeed([]byte(`{"matches": []}`))
	require.NoError(t, err)
	assert.Empty(t, frags)

	frags, err = e.ParseFixturesFeed([]byte("   "))
	require.NoError(t, err)
	assert.Empty(t, frags)
}

func TestParseFixturesFeed_InvalidJSON(t *testing.T) {
	e := newExtractor(t)

	_, err := e.ParseFixturesFeed([]byte(`[{"date": `))
	assert.Error(t, err)
}

func TestFlag(t *testing.T) {
	assert.True(t, *flag(json.RawMessage(`"1"`)))
	assert.False(t, *flag(json.RawMessage(`"0"`)))
	assert.True(t, *flag(json.RawMessage(`2`)))
	assert.True(t, *flag(json.RawMessage(`true`)))
	assert.False(t, *flag(json.RawMessage(`"false"`)))
	assert.Nil(t, flag(json.RawMessage(`"maybe"`)))
	assert.Nil(t, flag(json.RawMessage(`null`)))
	assert.Nil(t, flag(nil))
}

func TestFeedItem_Aliases(t *testing.T) {
	var it feedItem
	require.NoError(t, json.Unmarshal([]byte(`{
		"homeLogo": "",
		"logoHome": "/h.png",
		"awayTeamLogo": "/a.png",
		"score": null,
		"finalScore": 3,
		"score_periods": "(1:0)",
		"win": false,
		"extra": {"ignored": true}
	}`), &it))

	assert.Equal(t, "/h.png", *it.homeLogo())
	assert.Equal(t, "/a.png", *it.awayLogo())
	assert.Equal(t, "3", *it.score())
	assert.Equal(t, "(1:0)", *it.periods())
	assert.False(t, *it.win())
	assert.Nil(t, str(it.Round))
}

func TestFeedItem_WinPresentButUnreadable(t *testing.T) {
	var it feedItem
	require.NoError(t, json.Unmarshal([]byte(`{"isWin": "n/a", "win": true}`), &it))

	assert.Nil(t, it.win())
}
