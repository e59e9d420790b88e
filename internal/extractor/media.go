package extractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var warrantyRe = regexp.MustCompile(`(?i)garantia\s*(?:de)?\s*:?\s*(\d+\s*(?:meses|mês|anos?|dias)[^<.\n]*)`)

// extractWarranty prefers an explicit spec/characteristic entry, then a
// free-text pattern.
func extractWarranty(doc *goquery.Document, specs map[string]string) string {
	for key, value := range specs {
		if strings.Contains(strings.ToLower(key), "garantia") {
			return value
		}
	}
	if m := warrantyRe.FindStringSubmatch(doc.Text()); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

var boxContentsTitles = []string{
	"itens inclusos",
	"conteúdo da embalagem",
	"conteudo da embalagem",
	"o que vem na caixa",
}

// extractBoxContents collects the list that follows an "items included"
// style heading, one bulleted line per item.
func extractBoxContents(doc *goquery.Document) string {
	var content string
	doc.Find("h2, h3, h4, strong").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		title := strings.ToLower(strings.TrimSpace(heading.Text()))
		matched := false
		for _, candidate := range boxContentsTitles {
			if strings.Contains(title, candidate) {
				matched = true
				break
			}
		}
		if !matched {
			return true
		}

		var lines []string
		heading.Parent().Find("li").Each(func(_ int, item *goquery.Selection) {
			if text := strings.TrimSpace(item.Text()); text != "" {
				lines = append(lines, "- "+text)
			}
		})
		if len(lines) > 0 {
			content = strings.Join(lines, "\n")
			return false
		}
		return true
	})
	return content
}

var datasheetSelectors = []string{
	`a[href*="datasheet"]`,
	`a[href*="manual"]`,
	`a[href$=".pdf"]`,
}

func extractDatasheet(doc *goquery.Document) string {
	for _, sel := range datasheetSelectors {
		if href, ok := doc.Find(sel).First().Attr("href"); ok {
			if trimmed := strings.TrimSpace(href); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

func extractImage(doc *goquery.Document) string {
	// supplier galleries stash the full-size URL in data attributes
	if src := firstAttr(doc, `[itemprop="image"], .product-image img, .gallery-image img`,
		"data-src-max", "data-img-full", "data-src", "src"); src != "" && strings.HasPrefix(src, "http") {
		return strings.SplitN(src, "?ims=", 2)[0]
	}
	if content, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok {
		return strings.TrimSpace(content)
	}
	return ""
}

var (
	youtubeRe = regexp.MustCompile(`(?:youtube\.com/(?:watch\?v=|embed/|shorts/)|youtu\.be/)([A-Za-z0-9_-]{6,20})`)
	vimeoRe   = regexp.MustCompile(`(?:player\.)?vimeo\.com/(?:video/)?(\d{6,12})`)
)

// extractVideos finds embedded YouTube/Vimeo references, normalizes them to
// canonical embed URLs and deduplicates by normalized URL.
func extractVideos(html string) []Video {
	var videos []Video
	seen := map[string]bool{}

	for _, m := range youtubeRe.FindAllStringSubmatch(html, -1) {
		url := "https://www.youtube.com/embed/" + m[1]
		if !seen[url] {
			seen[url] = true
			videos = append(videos, Video{URL: url, Platform: "youtube"})
		}
	}

	for _, m := range vimeoRe.FindAllStringSubmatch(html, -1) {
		url := "https://player.vimeo.com/video/" + m[1]
		if !seen[url] {
			seen[url] = true
			videos = append(videos, Video{URL: url, Platform: "vimeo"})
		}
	}

	return videos
}
