package club

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var backgroundImageRe = regexp.MustCompile(`(?i)background-image\s*:\s*url\(\s*['"]?([^'")]+)['"]?\s*\)`)

func (e *Extractor) absolutize(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return e.base.ResolveReference(u).String()
}

// imageURL returns the first <img src> inside sel, else the node's own
// inline background-image.
func (e *Extractor) imageURL(sel *goquery.Selection) *string {
	if sel == nil || sel.Length() == 0 {
		return nil
	}
	if src, ok := sel.Find("img[src]").First().Attr("src"); ok && strings.TrimSpace(src) != "" {
		return strPtr(e.absolutize(src))
	}
	if style, ok := sel.Attr("style"); ok {
		if m := backgroundImageRe.FindStringSubmatch(style); m != nil {
			return strPtr(e.absolutize(m[1]))
		}
	}
	return nil
}

// text joins the text nodes under sel with single spaces.
func text(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	var parts []string
	for _, n := range sel.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

func textPtr(sel *goquery.Selection) *string {
	return strPtr(text(sel))
}

func innerHTML(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	h, err := sel.First().Html()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(h)
}

// textLines renders markup as plain text, one non-empty trimmed line per
// text block.
func textLines(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return ""
	}

	var parts []string
	for _, n := range nodes {
		collectText(n, &parts)
	}

	var lines []string
	for _, part := range parts {
		for _, line := range strings.Split(part, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
	}
	return strings.Join(lines, "\n")
}

func collectText(n *html.Node, parts *[]string) {
	switch n.Type {
	case html.TextNode:
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, t)
		}
		return
	case html.ElementNode:
		if n.Data == "script" || n.Data == "style" || n.Data == "noscript" {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

func strPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
