package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Price matchers run in order; the first plausible (positive, numeric) value
// wins. Supplier pages quote prices in the Brazilian format ("1.234,56").
var (
	priceSelectors = []string{
		".price-value",
		".product-price",
		`[itemprop="price"]`,
		".primary-price .valor-big",
		".preco-promocional",
	}
	priceMetaSelectors = []string{
		`meta[itemprop="price"]`,
		`meta[property="product:price:amount"]`,
	}

	currencyPriceRe  = regexp.MustCompile(`R\$\s*((?:\d{1,3}(?:\.\d{3})*|\d+),\d{2})`)
	numberFragmentRe = regexp.MustCompile(`[\d.,]+`)
	thousandsOnlyRe  = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+$`)
)

func extractPrice(doc *goquery.Document, html string) *float64 {
	type matcher func() (float64, bool)

	matchers := []matcher{
		func() (float64, bool) {
			for _, sel := range priceSelectors {
				text := strings.TrimSpace(doc.Find(sel).First().Text())
				if text == "" {
					continue
				}
				if price, ok := parseBRPrice(text); ok {
					return price, true
				}
			}
			return 0, false
		},
		func() (float64, bool) {
			for _, sel := range priceMetaSelectors {
				content, _ := doc.Find(sel).First().Attr("content")
				if content == "" {
					continue
				}
				if price, ok := parseBRPrice(content); ok {
					return price, true
				}
			}
			return 0, false
		},
		func() (float64, bool) {
			if m := currencyPriceRe.FindStringSubmatch(html); m != nil {
				return parseBRPrice(m[1])
			}
			return 0, false
		},
	}

	for _, match := range matchers {
		if price, ok := match(); ok {
			return &price
		}
	}
	return nil
}

// parseBRPrice normalizes a regional number ("1.234,56", "99,90", "2.500")
// to a dot-decimal float. Dotted groups of three with no comma are thousands
// separators ("2.500" is 2500, not 2.5); a plain dot-decimal ("123.45", as
// meta tags carry it) passes through. Non-numeric and non-positive values
// are rejected.
func parseBRPrice(text string) (float64, bool) {
	fragment := strings.Trim(numberFragmentRe.FindString(text), ".,")
	if fragment == "" {
		return 0, false
	}

	switch {
	case strings.Contains(fragment, ","):
		// comma is the decimal separator, dots are thousands
		fragment = strings.ReplaceAll(fragment, ".", "")
		fragment = strings.ReplaceAll(fragment, ",", ".")
	case thousandsOnlyRe.MatchString(fragment):
		fragment = strings.ReplaceAll(fragment, ".", "")
	}

	price, err := strconv.ParseFloat(fragment, 64)
	if err != nil || price <= 0 {
		return 0, false
	}
	return price, true
}
