package checkout

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitsOnly = regexp.MustCompile(`\D`)
)

// validateRequest accumulates every problem in the payload so the caller can
// fix them all at once.
func validateRequest(req CheckoutRequest) []string {
	var problems []string

	if strings.TrimSpace(req.Customer.Name) == "" {
		problems = append(problems, "customer.name is required")
	}
	email := strings.TrimSpace(req.Customer.Email)
	if email == "" {
		problems = append(problems, "customer.email is required")
	} else if !emailRe.MatchString(email) {
		problems = append(problems, "customer.email is not a valid e-mail address")
	}
	if digitsOnly.ReplaceAllString(req.Customer.Phone, "") == "" {
		problems = append(problems, "customer.phone is required")
	}
	if req.Customer.TaxID != nil && strings.TrimSpace(*req.Customer.TaxID) != "" {
		if !isValidTaxID(*req.Customer.TaxID) {
			problems = append(problems, "customer.tax_id is not a valid CPF or CNPJ")
		}
	}

	if len(req.Items) == 0 {
		problems = append(problems, "items is required")
	}
	for i, item := range req.Items {
		if strings.TrimSpace(item.ID) == "" {
			problems = append(problems, fmt.Sprintf("items[%d].id is required", i))
		}
		if item.Quantity < 1 {
			problems = append(problems, fmt.Sprintf("items[%d].quantity must be at least 1", i))
		}
	}

	if strings.TrimSpace(req.Shipping.CEP) == "" {
		problems = append(problems, "shipping.cep is required")
	}
	if strings.TrimSpace(req.Shipping.City) == "" {
		problems = append(problems, "shipping.city is required")
	}
	if strings.TrimSpace(req.Shipping.State) == "" {
		problems = append(problems, "shipping.state is required")
	}

	return problems
}

// isValidTaxID accepts a CPF (11 digits) or CNPJ (14 digits) with valid
// check digits.
func isValidTaxID(raw string) bool {
	digits := digitsOnly.ReplaceAllString(raw, "")
	switch len(digits) {
	case 11:
		return isValidCPF(digits)
	case 14:
		return isValidCNPJ(digits)
	default:
		return false
	}
}

func isValidCPF(digits string) bool {
	if allSameDigit(digits) {
		return false
	}
	first := cpfCheckDigit(digits[:9], 10)
	second := cpfCheckDigit(digits[:10], 11)
	return digits[9] == first && digits[10] == second
}

func cpfCheckDigit(digits string, startWeight int) byte {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * (startWeight - i)
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		rest = 0
	}
	return byte('0' + rest)
}

var (
	cnpjFirstWeights  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjSecondWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

func isValidCNPJ(digits string) bool {
	if allSameDigit(digits) {
		return false
	}
	first := cnpjCheckDigit(digits[:12], cnpjFirstWeights)
	second := cnpjCheckDigit(digits[:13], cnpjSecondWeights)
	return digits[12] == first && digits[13] == second
}

func cnpjCheckDigit(digits string, weights []int) byte {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * weights[i]
	}
	rest := sum % 11
	if rest < 2 {
		return '0'
	}
	return byte('0' + 11 - rest)
}

func allSameDigit(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}
