package extractor

import (
	"regexp"
	"strconv"
	"strings"
)

// unavailablePhrases are authoritative: if any appears anywhere in the
// document (case-insensitive), the product is out of stock regardless of any
// quantity-looking text also present. Supplier pages are Portuguese.
var unavailablePhrases = []string{
	"indisponível",
	"indisponivel",
	"esgotado",
	"fora de estoque",
	"produto inativo",
	"não disponível",
	"nao disponivel",
	"avise-me quando chegar",
}

var quantityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s*(?:unidades?|itens|pe[çc]as)\s*(?:em\s+estoque|dispon[íi]ve)`),
	regexp.MustCompile(`(?i)estoque\s*:?\s*(\d+)`),
	regexp.MustCompile(`(?i)apenas\s+(\d+)\s+(?:restantes?|em\s+estoque)`),
}

// extractStock decides availability before any quantity extraction. Absence
// of a negative signal is treated as availability with unknown quantity.
func extractStock(html string) (inStock bool, quantity *int) {
	lowered := strings.ToLower(html)

	for _, phrase := range unavailablePhrases {
		if strings.Contains(lowered, phrase) {
			zero := 0
			return false, &zero
		}
	}

	for _, pattern := range quantityPatterns {
		if m := pattern.FindStringSubmatch(html); m != nil {
			if qty, err := strconv.Atoi(m[1]); err == nil && qty >= 0 {
				return true, &qty
			}
		}
	}

	return true, nil
}
