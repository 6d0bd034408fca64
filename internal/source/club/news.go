package club

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"club_harvester/internal/domain"
)

// ParseNewsList extracts up to limit article cards from the news listing.
func (e *Extractor) ParseNewsList(body []byte, limit int) ([]domain.ArticleCard, error) {
	doc, err := parseDocument(body)
	if err != nil {
		return nil, err
	}

	var cards []domain.ArticleCard
	doc.Find("ul.articles-list > li.article").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		href, ok := li.Find("a[href]").First().Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return true
		}

		card := domain.ArticleCard{
			URL:          e.absolutize(href),
			Title:        textPtr(li.Find(".article__title").First()),
			DateText:     textPtr(li.Find(".article__date").First()),
			CardImageURL: e.imageURL(li.Find(".article__image-wrapper").First()),
		}
		if card.DateText != nil {
			card.DateISO = ParseDate(*card.DateText)
		}
		cards = append(cards, card)

		return limit <= 0 || len(cards) < limit
	})

	return cards, nil
}

// ParseArticle extracts a detail page and merges it with its listing card.
// Pages with a match banner are the match variant; everything else is news.
func (e *Extractor) ParseArticle(body []byte, card domain.ArticleCard) (*domain.Article, error) {
	doc, err := parseDocument(body)
	if err != nil {
		return nil, err
	}

	article := &domain.Article{
		URL:          card.URL,
		CardImageURL: card.CardImageURL,
	}

	var content *goquery.Selection
	if banner := doc.Find("div.match-banner").First(); banner.Length() > 0 {
		article.Variant = domain.VariantMatch
		article.Title = textPtr(doc.Find("h1").First())
		article.DateText = card.DateText
		article.DateISO = card.DateISO
		e.parseMatchBanner(banner, article)

		content = doc.Find("div.match-article.block.block--primary").First()
		if content.Length() == 0 {
			content = doc.Find("div.match-article").First()
		}
	} else {
		article.Variant = domain.VariantNews

		title := doc.Find(".article-news h1").First()
		if title.Length() == 0 {
			title = doc.Find("h1").First()
		}
		article.Title = textPtr(title)

		article.DateText = textPtr(doc.Find(".article-news__info").First())
		if article.DateText != nil {
			article.DateISO = ParseDate(*article.DateText)
		}
		if article.DateText == nil {
			article.DateText = card.DateText
		}
		if article.DateISO == nil {
			article.DateISO = card.DateISO
		}
		article.HeaderImageURL = e.imageURL(doc.Find("div.article-news__header-image").First())

		content = doc.Find(`div[property="schema:text"]`).First()
		if content.Length() == 0 {
			content = doc.Find(".article-news main div[property]").First()
		}
	}

	if article.Title == nil {
		article.Title = card.Title
	}

	article.ContentHTML = innerHTML(content)
	article.ContentText = textLines(article.ContentHTML)
	if article.ContentText == "" {
		e.readabilityFallback(body, article)
	}

	return article, nil
}

func (e *Extractor) parseMatchBanner(banner *goquery.Selection, article *domain.Article) {
	if tm := banner.Find(".match-banner__date time[datetime]").First(); tm.Length() > 0 {
		article.MatchDatetimeText = textPtr(tm)
		if dt, ok := tm.Attr("datetime"); ok {
			article.MatchDatetimeISO = strPtr(dt)
		}
		if article.MatchDatetimeISO == nil && article.MatchDatetimeText != nil {
			article.MatchDatetimeISO = ParseDate(*article.MatchDatetimeText)
		}
	}

	article.MatchRound = textPtr(banner.Find(".match-banner__round").First())

	if score := banner.Find(".match-banner__score").First(); score.Length() > 0 {
		article.MatchScore = textPtr(score)
		win := hasClassSuffix(score, "__score--win")
		article.MatchIsWin = &win
	}

	article.MatchLogoHomeURL = e.imageURL(banner.Find(".match-banner__team-home").First())
	article.MatchLogoAwayURL = e.imageURL(banner.Find(".match-banner__team-away").First())
}

// readabilityFallback fills content from the page's main readable block when
// the known content roots are missing or empty.
func (e *Extractor) readabilityFallback(body []byte, article *domain.Article) {
	pageURL := e.base
	if u, err := pageURL.Parse(article.URL); err == nil {
		pageURL = u
	}

	parsed, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return
	}
	if strings.TrimSpace(parsed.Content) == "" {
		return
	}
	article.ContentHTML = strings.TrimSpace(parsed.Content)
	article.ContentText = textLines(parsed.Content)
	if article.ContentText == "" {
		article.ContentText = strings.TrimSpace(parsed.TextContent)
	}
}

func hasClassSuffix(sel *goquery.Selection, suffix string) bool {
	class, _ := sel.Attr("class")
	for _, c := range strings.Fields(class) {
		if strings.HasSuffix(c, suffix) {
			return true
		}
	}
	return false
}
