package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptionPrefersJSONLD(t *testing.T) {
	html := `<html><head>
		<script type="application/ld+json">
			{"@type":"Product","name":"Inversor","description":"Inversor de frequ&ecirc;ncia 220V"}
		</script>
	</head><body>
		<div class="product-description"><p>Texto do markup que deve ser ignorado</p></div>
	</body></html>`

	info := Extract(html)
	assert.Equal(t, "Inversor de frequência 220V", info.Description)
}

func TestDescriptionJSONLDGraphAndArray(t *testing.T) {
	html := `<html><head>
		<script type="application/ld+json">{"@graph":[{"@type":"WebSite"},{"@type":"Product","description":"Fonte chaveada 24V"}]}</script>
	</head><body></body></html>`

	info := Extract(html)
	assert.Equal(t, "Fonte chaveada 24V", info.Description)
}

func TestDescriptionFirstStructuredSourceWins(t *testing.T) {
	html := `<html><head>
		<script type="application/ld+json">{"@type":"Product","description":"primeira"}</script>
		<script type="application/ld+json">{"@type":"Product","description":"segunda"}</script>
	</head><body></body></html>`

	info := Extract(html)
	assert.Equal(t, "primeira", info.Description)
}

func TestDescriptionFromHydrationPayload(t *testing.T) {
	html := `<html><body>
		<script>window.__INITIAL_STATE__ = {"product":{"description":"Relé de estado sólido 40A"}}</script>
	</body></html>`

	info := Extract(html)
	assert.Equal(t, "Relé de estado sólido 40A", info.Description)
}

func TestDescriptionMarkupFallback(t *testing.T) {
	html := `<html><body>
		<div class="product-description">
			<script>trackView()</script>
			<!-- promo banner -->
			<p>Controlador l&oacute;gico program&aacute;vel.</p>
			<ul><li>8 entradas digitais</li><li>4 sa&iacute;das a rel&eacute;</li></ul>
		</div>
	</body></html>`

	info := Extract(html)
	assert.Contains(t, info.Description, "Controlador lógico programável.")
	assert.Contains(t, info.Description, "- 8 entradas digitais")
	assert.Contains(t, info.Description, "- 4 saídas a relé")
	assert.NotContains(t, info.Description, "trackView")
	assert.NotContains(t, info.Description, "promo banner")
}

func TestDescriptionMetaFallback(t *testing.T) {
	html := `<html><head><meta name="description" content="Borne sak 2,5mm"></head><body></body></html>`
	info := Extract(html)
	assert.Equal(t, "Borne sak 2,5mm", info.Description)
}

func TestHTMLToTextCollapsesNewlines(t *testing.T) {
	text := htmlToText("<p>a</p><p></p><p></p><p>b</p>")
	assert.Equal(t, "a\n\nb", text)
}

func TestEntityDecodingIdempotent(t *testing.T) {
	html := `<html><body><div class="product-description">
		<p>Tens&atilde;o &lt;= 250V &amp; corrente 10A &#8211; IP67</p>
	</div></body></html>`

	info := Extract(html)
	once := info.Description
	twice := decodeEntities(once)
	assert.Equal(t, once, twice)
	assert.Contains(t, once, "Tensão <= 250V & corrente 10A – IP67")

	// double-escaped input resolves fully in one pass and stays put
	doubled := decodeEntities("Tens&amp;atilde;o")
	assert.Equal(t, "Tensão", doubled)
	assert.Equal(t, doubled, decodeEntities(doubled))
}

func TestDecodeEntitiesNumeric(t *testing.T) {
	assert.Equal(t, "aço", decodeEntities("a&#231;o"))
	assert.Equal(t, "aço", decodeEntities("a&#xE7;o"))
	// unknown named entities are left alone
	assert.Equal(t, "&bogus;", decodeEntities("&bogus;"))
}
