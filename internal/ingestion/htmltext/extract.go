// Package htmltext extracts the main text content of fetched HTML pages.
// Readability parsing strips navigation and boilerplate; when readability
// cannot identify an article, the whole document text is used instead.
package htmltext

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

var reWhitespace = regexp.MustCompile(`\s+`)

// Extract returns the main text content of an HTML page.
func Extract(rawHTML []byte, pageURL string) (string, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parsing page url: %w", err)
	}

	article, err := readability.FromReader(bytes.NewReader(rawHTML), parsedURL)
	if err == nil {
		if text := normaliseText(article.TextContent); text != "" {
			return text, nil
		}
	}

	// Readability found no article content. Fall back to the text of the
	// whole document minus non-content elements.
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rawHTML))
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}
	doc.Find("script, style, noscript, template").Remove()

	return normaliseText(doc.Text()), nil
}

// normaliseText collapses runs of whitespace into single spaces.
func normaliseText(text string) string {
	return strings.TrimSpace(reWhitespace.ReplaceAllString(text, " "))
}
