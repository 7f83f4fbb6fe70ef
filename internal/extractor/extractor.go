package extractor

import (
	"bytes"
	"regexp"
	"strings"

	"wikiquiz/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

const (
	// SummaryMaxLen caps the summary built from the leading paragraphs
	SummaryMaxLen = 1000
	// BodyTextMaxLen caps the cleaned body text handed to the generator
	BodyTextMaxLen = 15000
)

var reCitation = regexp.MustCompile(`\[\d+\]`)

// GoqueryExtractor implements domain.ContentExtractor for MediaWiki-style
// article markup.
type GoqueryExtractor struct{}

// NewGoqueryExtractor creates a new extractor instance
func NewGoqueryExtractor() domain.ContentExtractor {
	return &GoqueryExtractor{}
}

// Extract parses raw article markup into a NormalizedDocument.
//
// Landmarks: the title is the h1 with id "firstHeading"; the content region
// is the div with id "bodyContent". Either missing means the page is not a
// recognizable article and extraction fails. Section titles come from h2
// headings whose label sits in a span.mw-headline wrapper; h2 elements
// without that wrapper (navigation, table of contents) are skipped.
//
// The summary accumulates text from the paragraph elements at index 0-2,
// counted over all p elements including blank ones. A blank paragraph in
// that window contributes nothing but still consumes an index slot. The
// behavior is deliberate: lead sections with empty layout paragraphs yield
// shorter summaries rather than pulling in later paragraphs.
func (e *GoqueryExtractor) Extract(rawMarkup []byte) (*domain.NormalizedDocument, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rawMarkup))
	if err != nil {
		return nil, domain.NewExtractionError("failed to parse markup").WithContext("parse_error", err.Error())
	}

	heading := doc.Find("h1#firstHeading").First()
	if heading.Length() == 0 {
		return nil, domain.NewExtractionError("missing title")
	}
	title := heading.Text()

	body := doc.Find("div#bodyContent").First()
	if body.Length() == 0 {
		return nil, domain.NewExtractionError("missing body")
	}

	var sectionTitles []string
	body.Find("h2").Each(func(_ int, h2 *goquery.Selection) {
		span := h2.Find("span.mw-headline").First()
		if span.Length() > 0 {
			sectionTitles = append(sectionTitles, span.Text())
		}
	})

	var textBuf strings.Builder
	var summaryBuf strings.Builder
	body.Find("p").Each(func(i int, p *goquery.Selection) {
		text := p.Text()
		if strings.TrimSpace(text) != "" {
			textBuf.WriteString(text)
			textBuf.WriteString("\n")
			if i < 3 {
				summaryBuf.WriteString(text)
			}
		}
	})

	cleanedText := reCitation.ReplaceAllString(textBuf.String(), "")
	cleanedSummary := strings.TrimSpace(reCitation.ReplaceAllString(summaryBuf.String(), ""))

	return &domain.NormalizedDocument{
		Title:         title,
		Summary:       truncate(cleanedSummary, SummaryMaxLen),
		BodyText:      truncate(cleanedText, BodyTextMaxLen),
		SectionTitles: sectionTitles,
	}, nil
}

// truncate cuts s at max characters. Cuts land wherever the cap falls, mid
// word included, but never inside a rune: the cap counts code points, so
// accented names near the boundary stay valid UTF-8.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}

var _ domain.ContentExtractor = (*GoqueryExtractor)(nil)
