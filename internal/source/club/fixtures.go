package club

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"club_harvester/internal/domain"
)

// ParseFixtureList extracts fixture fragments from the HTML fixture listing.
// Status is left for the resolver to derive from score and periods.
func (e *Extractor) ParseFixtureList(body []byte) ([]domain.FixtureFragment, error) {
	doc, err := parseDocument(body)
	if err != nil {
		return nil, err
	}

	var out []domain.FixtureFragment
	doc.Find(".matches-list__item").Each(func(_ int, item *goquery.Selection) {
		frag := domain.FixtureFragment{
			Round:    textPtr(item.Find(".matches-list__round").First()),
			HomeLogo: e.imageURL(logoNode(item, "home")),
			AwayLogo: e.imageURL(logoNode(item, "away")),
		}

		frag.DateText, frag.DateISO = fixtureDate(item)

		venue := item.Find(".matches-list__button.matches-list__button--primary").First()
		if venue.Length() == 0 {
			venue = item.Find(".matches-list__button").First()
		}
		frag.Venue = textPtr(venue)

		teams := teamNames(item)
		if len(teams) > 0 {
			frag.HomeTeam = strPtr(teams[0])
		}
		if len(teams) > 1 {
			frag.AwayTeam = strPtr(teams[1])
		}

		if score := item.Find(".matches-list__score").First(); score.Length() > 0 {
			frag.Score = textPtr(score)
			win := hasClassSuffix(score, "__score--win")
			frag.IsWin = &win
		}
		frag.ScorePeriods = textPtr(item.Find(".matches-list__score-periods").First())

		out = append(out, frag)
	})

	return out, nil
}

// ParseReportLinks collects report URLs from the fixture listing together
// with the date, round and teams of their row. Rows without a report link or
// without any date are skipped.
func (e *Extractor) ParseReportLinks(body []byte) ([]domain.ReportLink, error) {
	doc, err := parseDocument(body)
	if err != nil {
		return nil, err
	}

	var out []domain.ReportLink
	doc.Find(".matches-list__item").Each(func(_ int, item *goquery.Selection) {
		var href string
		item.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			h, _ := a.Attr("href")
			if isReportHref(h) {
				href = h
				return false
			}
			return true
		})
		if href == "" {
			return
		}

		link := domain.ReportLink{
			URL:   e.absolutize(href),
			Round: text(item.Find(".matches-list__round").First()),
		}
		tm := item.Find("time.matches-list__date").First()
		link.DateText = text(tm)
		if dt, ok := tm.Attr("datetime"); ok {
			link.DateISO = strings.TrimSpace(dt)
		}
		if link.DateText == "" && link.DateISO == "" {
			return
		}

		teams := teamNames(item)
		if len(teams) > 0 {
			link.TeamHome = teams[0]
		}
		if len(teams) > 1 {
			link.TeamAway = teams[1]
		}

		out = append(out, link)
	})

	return out, nil
}

// isReportHref recognises match report links: anything under
// /a-muzstvo/zapasy/, or any other /zapasy/ path that is not the listing.
func isReportHref(href string) bool {
	h := strings.ToLower(strings.TrimSpace(href))
	if h == "" {
		return false
	}
	if strings.Contains(h, "/a-muzstvo/zapasy/") {
		return true
	}
	return strings.Contains(h, "/zapasy/") &&
		!strings.HasSuffix(h, "/zapasy") &&
		!strings.HasSuffix(h, "/zapasy/")
}

func fixtureDate(item *goquery.Selection) (dateText, dateISO *string) {
	tm := item.Find("time.matches-list__date").First()
	if tm.Length() == 0 {
		return nil, nil
	}
	dateText = textPtr(tm)
	if dt, ok := tm.Attr("datetime"); ok {
		dateISO = strPtr(dt)
	}
	if dateISO == nil && dateText != nil {
		dateISO = ParseDate(*dateText)
	}
	return dateText, dateISO
}

func teamNames(item *goquery.Selection) []string {
	var teams []string
	item.Find(".matches-list__team-names > .matches-list__team-name").Each(func(_ int, s *goquery.Selection) {
		teams = append(teams, text(s))
	})
	return teams
}

func logoNode(item *goquery.Selection, side string) *goquery.Selection {
	node := item.Find(".matches-list__team-logo--" + side).First()
	if node.Length() > 0 {
		return node
	}
	return nil
}
