package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Characteristics layouts: definition list, two-column table, titled
// section, then a class-name-matched container. First non-empty result wins.
func extractCharacteristics(doc *goquery.Document) map[string]string {
	type matcher func() map[string]string

	matchers := []matcher{
		func() map[string]string { return characteristicsFromDefinitionList(doc) },
		func() map[string]string { return characteristicsFromTable(doc) },
		func() map[string]string { return characteristicsFromTitledSection(doc) },
		func() map[string]string { return characteristicsFromClassContainer(doc) },
	}

	for _, match := range matchers {
		if pairs := match(); len(pairs) > 0 {
			return pairs
		}
	}
	return nil
}

var characteristicsDLSelectors = []string{
	"#caracteristicas dl",
	".caracteristicas-produto dl",
	".caracteristicas-lista-corrida",
	"dl.caracteristicas",
}

func characteristicsFromDefinitionList(doc *goquery.Document) map[string]string {
	for _, sel := range characteristicsDLSelectors {
		section := doc.Find(sel).First()
		if section.Length() == 0 {
			continue
		}

		terms := section.Find("dt")
		defs := section.Find("dd")
		count := terms.Length()
		if defs.Length() < count {
			count = defs.Length()
		}

		pairs := map[string]string{}
		for i := 0; i < count; i++ {
			key := strings.TrimSpace(terms.Eq(i).Text())
			value := strings.TrimSpace(defs.Eq(i).Text())
			if key != "" && value != "" {
				pairs[key] = value
			}
		}
		if len(pairs) > 0 {
			return pairs
		}
	}
	return nil
}

var characteristicsTableSelectors = []string{
	"#caracteristicas table",
	".caracteristicas-produto table",
	".product-characteristics table",
}

func characteristicsFromTable(doc *goquery.Document) map[string]string {
	for _, sel := range characteristicsTableSelectors {
		table := doc.Find(sel).First()
		if table.Length() == 0 {
			continue
		}

		pairs := map[string]string{}
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cells := nonEmptyCells(row)
			if len(cells) >= 2 {
				pairs[cells[0]] = cells[1]
			}
		})
		if len(pairs) > 0 {
			return pairs
		}
	}
	return nil
}

// characteristicsFromTitledSection finds a heading mentioning
// "Características" and parses "Key: Value" lines from its parent section.
func characteristicsFromTitledSection(doc *goquery.Document) map[string]string {
	var pairs map[string]string
	doc.Find("h2, h3, h4").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		title := strings.ToLower(heading.Text())
		if !strings.Contains(title, "característica") && !strings.Contains(title, "caracteristica") {
			return true
		}
		if found := pairsFromColonLines(heading.Parent().Text()); len(found) > 0 {
			pairs = found
			return false
		}
		return true
	})
	return pairs
}

func characteristicsFromClassContainer(doc *goquery.Document) map[string]string {
	var pairs map[string]string
	doc.Find(`[class*="caracteristica"]`).EachWithBreak(func(_ int, container *goquery.Selection) bool {
		if found := pairsFromColonLines(container.Text()); len(found) > 0 {
			pairs = found
			return false
		}
		return true
	})
	return pairs
}

func pairsFromColonLines(text string) map[string]string {
	pairs := map[string]string{}
	for _, line := range strings.Split(text, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		// keys spanning many words are prose, not attribute names
		if key == "" || value == "" || len(strings.Fields(key)) > 6 {
			continue
		}
		pairs[key] = value
	}
	if len(pairs) == 0 {
		return nil
	}
	return pairs
}
