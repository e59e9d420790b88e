package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Info holds the facts extracted from one supplier product page. Every field
// is best-effort: extraction against unknown markup never fails, it just
// leaves fields empty.
type Info struct {
	Price           *float64          `json:"price,omitempty"`
	InStock         bool              `json:"inStock"`
	Quantity        *int              `json:"quantity,omitempty"`
	Description     string            `json:"description,omitempty"`
	Specs           map[string]string `json:"specs,omitempty"`
	RawTables       []string          `json:"rawTables,omitempty"`
	Characteristics map[string]string `json:"characteristics,omitempty"`
	Warranty        string            `json:"warranty,omitempty"`
	BoxContents     string            `json:"boxContents,omitempty"`
	Datasheet       string            `json:"datasheet,omitempty"`
	Image           string            `json:"image,omitempty"`
	Videos          []Video           `json:"videos,omitempty"`
}

// Video is a normalized embedded video reference.
type Video struct {
	URL      string `json:"url"`
	Platform string `json:"platform"`
}

// HasContent reports whether the page yielded anything beyond price/stock.
// Callers use it to tell "page had no usable data" apart from "fetch failed".
func (i Info) HasContent() bool {
	return i.Description != "" ||
		len(i.Specs) > 0 ||
		len(i.Characteristics) > 0 ||
		len(i.Videos) > 0
}

// Extract parses a raw HTML document and returns whatever product facts it
// can find. It is pure, does no I/O and never returns an error: each field
// runs its own matcher cascade and silently stays empty on failure.
func Extract(html string) Info {
	info := Info{InStock: true}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		// html.Parse is tolerant; this only happens on reader failure.
		return info
	}

	info.Price = extractPrice(doc, html)
	info.InStock, info.Quantity = extractStock(html)
	info.Description = extractDescription(doc, html)
	info.Specs, info.RawTables = extractSpecs(doc)
	info.Characteristics = extractCharacteristics(doc)
	info.Warranty = extractWarranty(doc, info.Specs)
	info.BoxContents = extractBoxContents(doc)
	info.Datasheet = extractDatasheet(doc)
	info.Image = extractImage(doc)
	info.Videos = extractVideos(html)

	return info
}

// firstText returns the trimmed text of the first node matching any of the
// selectors, in order.
func firstText(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		if text := strings.TrimSpace(node.Text()); text != "" {
			return text
		}
	}
	return ""
}

// firstAttr returns the first non-empty attribute value across selectors and
// attribute names, in order.
func firstAttr(doc *goquery.Document, selector string, attrs ...string) string {
	var found string
	doc.Find(selector).EachWithBreak(func(_ int, node *goquery.Selection) bool {
		for _, attr := range attrs {
			if val, ok := node.Attr(attr); ok {
				if trimmed := strings.TrimSpace(val); trimmed != "" {
					found = trimmed
					return false
				}
			}
		}
		return true
	})
	return found
}
