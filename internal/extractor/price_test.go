package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBRPrice(t *testing.T) {
	cases := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"1.234,56", 1234.56, true},
		{"99,90", 99.90, true},
		{"R$ 1.234,56", 1234.56, true},
		{"R$ 0,01", 0.01, true},
		{"123.45", 123.45, true},
		{"1.234.567,89", 1234567.89, true},
		{"2.500", 2500, true},
		{"R$ 2.500", 2500, true},
		{"12.500", 12500, true},
		{"1.234.567", 1234567, true},
		{"0,00", 0, false},
		{"grátis", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := parseBRPrice(tc.input)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.InDelta(t, tc.want, got, 0.0001)
			}
		})
	}
}

func TestExtractPriceSelectorTier(t *testing.T) {
	html := `<html><body><span class="price-value">R$ 1.234,56</span></body></html>`
	info := Extract(html)
	require.NotNil(t, info.Price)
	assert.InDelta(t, 1234.56, *info.Price, 0.0001)
}

func TestExtractPriceThousandsWithoutCents(t *testing.T) {
	html := `<html><body><span class="price-value">R$ 2.500</span></body></html>`
	info := Extract(html)
	require.NotNil(t, info.Price)
	assert.InDelta(t, 2500.0, *info.Price, 0.0001)
}

func TestExtractPriceMetaFallback(t *testing.T) {
	html := `<html><head><meta itemprop="price" content="99,90"></head><body></body></html>`
	info := Extract(html)
	require.NotNil(t, info.Price)
	assert.InDelta(t, 99.90, *info.Price, 0.0001)
}

func TestExtractPriceCurrencyPatternFallback(t *testing.T) {
	html := `<html><body><p>Por apenas R$ 459,00 à vista</p></body></html>`
	info := Extract(html)
	require.NotNil(t, info.Price)
	assert.InDelta(t, 459.00, *info.Price, 0.0001)
}

func TestExtractPriceRejectsNonPositive(t *testing.T) {
	html := `<html><body><span class="price-value">R$ 0,00</span></body></html>`
	info := Extract(html)
	assert.Nil(t, info.Price)
}

func TestExtractPriceFirstMatcherWins(t *testing.T) {
	html := `<html><head><meta itemprop="price" content="10,00"></head>
		<body><span class="price-value">R$ 20,00</span></body></html>`
	info := Extract(html)
	require.NotNil(t, info.Price)
	assert.InDelta(t, 20.00, *info.Price, 0.0001)
}
