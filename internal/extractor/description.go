package extractor

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Description sources in priority order: structured embedded data first
// (JSON-LD, client-side hydration payloads), raw markup last. The first
// matcher that yields text wins and later ones are not consulted.

var descriptionSelectors = []string{
	"#descricao-produto .content",
	".descricao-produto .content",
	".descricao-produto",
	".product-description",
	`[itemprop="description"]`,
	".description-content",
}

var (
	hydrationMarkers = []string{"__NUXT__", "__INITIAL_STATE__", "__NEXT_DATA__"}
	hydrationDescRe  = regexp.MustCompile(`"description"\s*:\s*"((?:[^"\\]|\\.)+)"`)
	scriptRe         = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe          = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	commentRe        = regexp.MustCompile(`(?s)<!--.*?-->`)
	lineBreakTagRe   = regexp.MustCompile(`(?i)<br\s*/?>`)
	listItemTagRe    = regexp.MustCompile(`(?i)<li[^>]*>`)
	blockTagRe       = regexp.MustCompile(`(?i)</?(?:p|div|h[1-6]|ul|ol|li|table|tr|section|article|blockquote|dl|dt|dd)[^>]*>`)
	anyTagRe         = regexp.MustCompile(`<[^>]+>`)
	excessNewlinesRe = regexp.MustCompile(`\n{3,}`)
	trailingSpacesRe = regexp.MustCompile(`[ \t]+\n`)
)

func extractDescription(doc *goquery.Document, html string) string {
	type matcher func() string

	matchers := []matcher{
		func() string { return descriptionFromJSONLD(doc) },
		func() string { return descriptionFromHydration(doc) },
		func() string { return descriptionFromMarkup(doc) },
		func() string { return metaDescription(doc) },
	}

	for _, match := range matchers {
		if text := match(); text != "" {
			return text
		}
	}
	return ""
}

// descriptionFromJSONLD walks every ld+json script looking for a Product
// description. Objects, arrays and @graph containers are all accepted;
// malformed JSON is skipped.
func descriptionFromJSONLD(doc *goquery.Document) string {
	var found string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, node *goquery.Selection) bool {
		var payload any
		if err := json.Unmarshal([]byte(node.Text()), &payload); err != nil {
			return true
		}
		if desc := jsonLDDescription(payload); desc != "" {
			found = strings.TrimSpace(decodeEntities(desc))
			return false
		}
		return true
	})
	return found
}

func jsonLDDescription(payload any) string {
	switch value := payload.(type) {
	case map[string]any:
		if graph, ok := value["@graph"]; ok {
			if desc := jsonLDDescription(graph); desc != "" {
				return desc
			}
		}
		if desc, ok := value["description"].(string); ok && strings.TrimSpace(desc) != "" {
			return desc
		}
	case []any:
		for _, item := range value {
			if desc := jsonLDDescription(item); desc != "" {
				return desc
			}
		}
	}
	return ""
}

// descriptionFromHydration pulls the description field out of client-side
// state payloads (Nuxt/Next style) without evaluating the script.
func descriptionFromHydration(doc *goquery.Document) string {
	var found string
	doc.Find("script").EachWithBreak(func(_ int, node *goquery.Selection) bool {
		text := node.Text()
		marked := false
		for _, marker := range hydrationMarkers {
			if strings.Contains(text, marker) {
				marked = true
				break
			}
		}
		if !marked {
			return true
		}
		if m := hydrationDescRe.FindStringSubmatch(text); m != nil {
			var unescaped string
			if err := json.Unmarshal([]byte(`"`+m[1]+`"`), &unescaped); err == nil {
				if trimmed := strings.TrimSpace(unescaped); trimmed != "" {
					found = decodeEntities(trimmed)
					return false
				}
			}
		}
		return true
	})
	return found
}

func descriptionFromMarkup(doc *goquery.Document) string {
	for _, sel := range descriptionSelectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		inner, err := node.Html()
		if err != nil {
			continue
		}
		if text := htmlToText(inner); text != "" {
			return text
		}
	}
	return ""
}

func metaDescription(doc *goquery.Document) string {
	content, _ := doc.Find(`meta[name="description"]`).First().Attr("content")
	return strings.TrimSpace(decodeEntities(content))
}

// htmlToText flattens a markup fragment to plain text: script/style/comment
// nodes dropped, block boundaries and <br> become newlines, list items become
// bulleted lines, entities decoded, runs of 3+ newlines collapsed to 2.
func htmlToText(fragment string) string {
	text := scriptRe.ReplaceAllString(fragment, "")
	text = styleRe.ReplaceAllString(text, "")
	text = commentRe.ReplaceAllString(text, "")

	text = lineBreakTagRe.ReplaceAllString(text, "\n")
	text = listItemTagRe.ReplaceAllString(text, "\n- ")
	text = blockTagRe.ReplaceAllString(text, "\n")
	text = anyTagRe.ReplaceAllString(text, "")

	text = decodeEntities(text)

	text = trailingSpacesRe.ReplaceAllString(text, "\n")
	text = excessNewlinesRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
