package parser

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// textSelector lists the content-bearing tags whose text is kept.
const textSelector = "h1,h2,h3,h4,h5,h6,p,li,dd,dt,blockquote,td,th"

// noiseSelector lists elements that never contribute article prose.
const noiseSelector = "script,style,sup.reference,.mw-editsection,.reflist,.navbox,table.infobox"

type Parser struct{}

// ArticleText uses go-readability to find the main article content of a full
// HTML page and returns it as plain text.
func (p *Parser) ArticleText(rawURL, html string) (string, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}

	readabilityParser := readability.NewParser()
	article, err := readabilityParser.Parse(strings.NewReader(html), parsedURL)
	if err != nil {
		return "", fmt.Errorf("readability failed for %s: %w", rawURL, err)
	}

	return p.HTMLText(article.Content)
}

// HTMLText converts an HTML fragment (such as a MediaWiki extract) to plain
// text, one block per line.
func (p *Parser) HTMLText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(noiseSelector).Remove()

	var lines []string
	blocks := doc.Find(textSelector)
	if blocks.Length() == 0 {
		if text := normalizeText(doc.Text()); text != "" {
			lines = append(lines, text)
		}
	}
	blocks.Each(func(i int, s *goquery.Selection) {
		// Nested blocks (li inside td, p inside blockquote) are emitted by the
		// innermost match only.
		if s.Find(textSelector).Length() > 0 {
			return
		}
		if text := normalizeText(s.Text()); text != "" {
			lines = append(lines, text)
		}
	})

	return strings.Join(lines, "\n"), nil
}

// normalizeText collapses every run of whitespace, newlines included, to a
// single space.
func normalizeText(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
