package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnavailablePhraseIsAuthoritative(t *testing.T) {
	// quantity-looking text must not override the negative signal
	html := `<html><body>
		<p>Produto ESGOTADO no momento</p>
		<p>12 unidades em estoque (histórico)</p>
	</body></html>`

	inStock, qty := extractStock(html)
	assert.False(t, inStock)
	require.NotNil(t, qty)
	assert.Equal(t, 0, *qty)
}

func TestUnavailablePhrasesCaseInsensitive(t *testing.T) {
	for _, phrase := range []string{"Indisponível", "FORA DE ESTOQUE", "produto inativo", "Avise-me quando chegar"} {
		inStock, qty := extractStock("<div>" + phrase + "</div>")
		assert.False(t, inStock, phrase)
		require.NotNil(t, qty, phrase)
		assert.Equal(t, 0, *qty, phrase)
	}
}

func TestQuantityPhrase(t *testing.T) {
	inStock, qty := extractStock(`<span class="stock">Estoque: 7</span>`)
	assert.True(t, inStock)
	require.NotNil(t, qty)
	assert.Equal(t, 7, *qty)

	inStock, qty = extractStock(`<p>Apenas 3 restantes</p>`)
	assert.True(t, inStock)
	require.NotNil(t, qty)
	assert.Equal(t, 3, *qty)
}

func TestNoSignalsDefaultsToAvailable(t *testing.T) {
	inStock, qty := extractStock(`<html><body><h1>Sensor Indutivo M12</h1></body></html>`)
	assert.True(t, inStock)
	assert.Nil(t, qty)
}
