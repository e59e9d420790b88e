package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractSpecs scans every table in the document. Each row's first two
// non-empty cells become a key/value pair; later duplicate keys overwrite
// earlier ones. Rows with a single non-empty cell are recorded as standalone
// lines instead.
func extractSpecs(doc *goquery.Document) (map[string]string, []string) {
	specs := map[string]string{}
	var rawLines []string

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := nonEmptyCells(row)
		switch {
		case len(cells) >= 2:
			specs[cells[0]] = cells[1]
		case len(cells) == 1:
			rawLines = append(rawLines, cells[0])
		}
	})

	if len(specs) == 0 {
		specs = nil
	}
	return specs, rawLines
}

func nonEmptyCells(row *goquery.Selection) []string {
	var cells []string
	row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		text := strings.TrimSpace(cell.Text())
		if text != "" {
			cells = append(cells, text)
		}
	})
	return cells
}
