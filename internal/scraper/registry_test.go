package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/blumenauautomacao/storefront-backend/pkg/errors"
)

func TestRegistryMatch(t *testing.T) {
	registry := NewRegistry(nil)

	supplier, err := registry.Match("https://www.proesi.com.br/sensor-m12", "")
	require.NoError(t, err)
	assert.Equal(t, SupplierProesi, supplier.Name)

	supplier, err = registry.Match("https://lojavale.com.br/produto/x", "")
	require.NoError(t, err)
	assert.Equal(t, SupplierLojaVale, supplier.Name)
}

func TestRegistryMatchRejections(t *testing.T) {
	registry := NewRegistry(nil)

	cases := map[string]string{
		"empty":            "",
		"relative":         "/produto/x",
		"bad scheme":       "ftp://www.proesi.com.br/x",
		"unknown host":     "https://www.amazon.com.br/x",
		"lookalike suffix": "https://www.proesi.com.br.evil.com/x",
	}

	for name, rawURL := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := registry.Match(rawURL, "")
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
		})
	}
}

func TestRegistryMatchSupplierFilter(t *testing.T) {
	registry := NewRegistry(nil)

	// a Proesi URL is not acceptable on the LojaVale-only endpoint
	_, err := registry.Match("https://www.proesi.com.br/x", SupplierLojaVale)
	require.Error(t, err)

	supplier, err := registry.Match("https://www.lojavale.com.br/x", SupplierLojaVale)
	require.NoError(t, err)
	assert.Equal(t, SupplierLojaVale, supplier.Name)
}
