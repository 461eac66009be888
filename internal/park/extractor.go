package park

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/nps-scraper/internal/metadata"
	"github.com/rohmanhakim/nps-scraper/pkg/failure"
	"golang.org/x/net/html"
)

/*
Responsibilities
- Parse a fetched park detail page
- Read each record field from its markup signature
- Substitute the field's sentinel when the signature is absent

Field Rules
- The first element matching a signature wins
- The value is the first child of that element, trimmed
- Address is built from city and state independently
- Category has no sentinel: an absent designation marker fails the
  extraction, an empty one yields ""

The extractor never fetches; the body must already be in hand.
*/

type Extractor struct {
	metadataSink metadata.MetadataSink
}

func NewExtractor(metadataSink metadata.MetadataSink) Extractor {
	if metadataSink == nil {
		metadataSink = &metadata.NoopSink{}
	}
	return Extractor{
		metadataSink: metadataSink,
	}
}

// Extract reads a Record from htmlBody and records any failure against
// sourceUrl.
func (e *Extractor) Extract(sourceUrl string, htmlBody string) (Record, failure.ClassifiedError) {
	record, err := extract(htmlBody)
	if err != nil {
		attrs := []metadata.Attribute{
			metadata.NewAttr(metadata.AttrURL, sourceUrl),
		}
		if err.Field != "" {
			attrs = append(attrs, metadata.NewAttr(metadata.AttrField, err.Field))
		}
		e.metadataSink.RecordError(
			time.Now(),
			"park",
			"Extractor.Extract",
			mapExtractionErrorToMetadataCause(err),
			err.Message,
			attrs,
		)
		return Record{}, err
	}
	return record, nil
}

// Extract reads a Record from htmlBody without recording anything.
func Extract(htmlBody string) (Record, failure.ClassifiedError) {
	record, err := extract(htmlBody)
	if err != nil {
		return Record{}, err
	}
	return record, nil
}

func extract(htmlBody string) (Record, *ExtractionError) {
	root, err := html.Parse(strings.NewReader(htmlBody))
	if err != nil {
		return Record{}, &ExtractionError{
			Message:   fmt.Sprintf("failed to parse HTML: %v", err),
			Retryable: true,
			Cause:     ErrCauseNotHTML,
		}
	}
	doc := goquery.NewDocumentFromNode(root)

	category, ok := firstChildText(doc, selectorCategory)
	if !ok {
		return Record{}, &ExtractionError{
			Message:   fmt.Sprintf("designation marker %q not found", selectorCategory),
			Retryable: true,
			Cause:     ErrCauseMissingMarker,
			Field:     "category",
		}
	}

	city := textOr(doc, selectorCity, NoCity)
	state := textOr(doc, selectorState, NoState)

	return Record{
		Name:     textOr(doc, selectorName, NoName),
		Category: category,
		Address:  city + ", " + state,
		Zipcode:  textOr(doc, selectorZipcode, NoZipcode),
		Phone:    textOr(doc, selectorPhone, NoPhone),
	}, nil
}

// textOr returns the first child text of the first match, or fallback when
// nothing matches or the match has no children.
func textOr(doc *goquery.Document, selector string, fallback string) string {
	text, ok := firstChildText(doc, selector)
	if !ok || text == "" {
		return fallback
	}
	return text
}

// firstChildText reports whether selector matched. An element without
// children yields "".
func firstChildText(doc *goquery.Document, selector string) (string, bool) {
	match := doc.Find(selector).First()
	if match.Length() == 0 {
		return "", false
	}
	child := match.Nodes[0].FirstChild
	if child == nil {
		return "", true
	}
	if child.Type == html.TextNode {
		return strings.TrimSpace(child.Data), true
	}
	return strings.TrimSpace(goquery.NewDocumentFromNode(child).Text()), true
}
